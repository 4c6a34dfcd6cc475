package tmx

import (
	"fmt"
	"math"
	"strconv"
)

// Flip bits of a raw tile id, as laid down by the Tiled file format.
const (
	FlipHorizontal uint32 = 0x80000000
	FlipVertical   uint32 = 0x40000000
	FlipDiagonal   uint32 = 0x20000000

	flipMask = FlipHorizontal | FlipVertical | FlipDiagonal
)

// GID is a global tile identifier, unique across all tilesets of a map.
// Zero means "no tile".
type GID uint32

// Flags holds the decoded flip bits of a tile.
type Flags uint8

const (
	FlippedHorizontally Flags = 1 << iota
	FlippedVertically
	FlippedDiagonally
)

func (f Flags) Horizontal() bool { return f&FlippedHorizontally != 0 }
func (f Flags) Vertical() bool   { return f&FlippedVertically != 0 }
func (f Flags) Diagonal() bool   { return f&FlippedDiagonally != 0 }

// DecodeRaw splits a raw 32-bit tile id into its GID and flip flags.
func DecodeRaw(raw uint32) (GID, Flags) {
	var f Flags
	if raw&FlipHorizontal != 0 {
		f |= FlippedHorizontally
	}
	if raw&FlipVertical != 0 {
		f |= FlippedVertically
	}
	if raw&FlipDiagonal != 0 {
		f |= FlippedDiagonally
	}
	return GID(raw &^ flipMask), f
}

// EncodeRaw packs a GID and flip flags back into a raw tile id.
func EncodeRaw(gid GID, f Flags) uint32 {
	raw := uint32(gid) &^ flipMask
	if f.Horizontal() {
		raw |= FlipHorizontal
	}
	if f.Vertical() {
		raw |= FlipVertical
	}
	if f.Diagonal() {
		raw |= FlipDiagonal
	}
	return raw
}

// decodeWide decodes a raw id that was read from text and may not fit in 32
// bits. Once the flip bits are cleared the value must fit a signed 32-bit
// GID, otherwise the file is corrupt.
func decodeWide(v uint64) (GID, Flags, error) {
	if v&^uint64(flipMask) > math.MaxInt32 {
		return 0, 0, fmt.Errorf("%w: %d", ErrGIDOverflow, v)
	}
	gid, f := DecodeRaw(uint32(v))
	return gid, f, nil
}

// parseRawID parses a decimal tile id attribute such as <tile gid="..."/>.
// An absent attribute is an empty tile.
func parseRawID(s string) (GID, Flags, error) {
	if s == "" {
		return 0, 0, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return 0, 0, fmt.Errorf("%w: %s", ErrGIDOverflow, s)
		}
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedData, s)
	}
	return decodeWide(v)
}
