package tmx

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeDecodeRaw(t *testing.T) {
	var raws []uint32
	for _, top := range []uint32{0, FlipHorizontal, FlipVertical, FlipDiagonal,
		FlipHorizontal | FlipVertical, FlipHorizontal | FlipDiagonal,
		FlipVertical | FlipDiagonal, flipMask} {
		for _, low := range []uint32{0, 1, 2, 255, 1 << 16, 0x1FFFFFFF} {
			raws = append(raws, top|low)
		}
	}
	for raw := uint64(0); raw <= math.MaxUint32; raw += 104729 * 7919 {
		raws = append(raws, uint32(raw))
	}
	raws = append(raws, math.MaxUint32)

	for _, raw := range raws {
		gid, f := DecodeRaw(raw)
		if got := EncodeRaw(gid, f); got != raw {
			t.Errorf("EncodeRaw(DecodeRaw(%#x)) = %#x", raw, got)
		}
	}
}

func TestDecodeRawFlags(t *testing.T) {
	type decoded struct {
		GID     GID
		H, V, D bool
	}
	for _, tc := range []struct {
		raw  uint32
		want decoded
	}{
		{0, decoded{}},
		{6, decoded{GID: 6}},
		{0x80000001, decoded{GID: 1, H: true}},
		{0x40000002, decoded{GID: 2, V: true}},
		{0x20000003, decoded{GID: 3, D: true}},
		{0xE0000004, decoded{GID: 4, H: true, V: true, D: true}},
	} {
		gid, f := DecodeRaw(tc.raw)
		got := decoded{GID: gid, H: f.Horizontal(), V: f.Vertical(), D: f.Diagonal()}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("DecodeRaw(%#x) mismatch (-want+got):\n%v", tc.raw, diff)
		}
	}
}

func TestDecodeWide(t *testing.T) {
	for _, tc := range []struct {
		in      uint64
		wantGID GID
		wantErr error
	}{
		{in: 7, wantGID: 7},
		{in: 0x80000007, wantGID: 7},
		{in: math.MaxUint32, wantGID: 0x1FFFFFFF},
		{in: math.MaxUint32 + 1, wantErr: ErrGIDOverflow},
		{in: 1 << 40, wantErr: ErrGIDOverflow},
	} {
		gid, _, err := decodeWide(tc.in)
		if !errors.Is(err, tc.wantErr) {
			t.Errorf("decodeWide(%d) error = %v, want %v", tc.in, err, tc.wantErr)
			continue
		}
		if err == nil && gid != tc.wantGID {
			t.Errorf("decodeWide(%d) = %d, want %d", tc.in, gid, tc.wantGID)
		}
	}
}

func TestParseRawID(t *testing.T) {
	if gid, _, err := parseRawID(""); err != nil || gid != 0 {
		t.Errorf(`parseRawID("") = %d, %v; want 0, nil`, gid, err)
	}
	if _, _, err := parseRawID("99999999999999999999999"); !errors.Is(err, ErrGIDOverflow) {
		t.Errorf("huge id error = %v, want ErrGIDOverflow", err)
	}
	if _, _, err := parseRawID("twelve"); !errors.Is(err, ErrMalformedData) {
		t.Errorf("non-numeric id error = %v, want ErrMalformedData", err)
	}
}
