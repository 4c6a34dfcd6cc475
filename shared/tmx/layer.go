package tmx

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// LayerTile is one decoded cell of a tile layer, in layer tile coordinates.
type LayerTile struct {
	GID   GID
	Flags Flags
	X, Y  int
}

// IsEmpty reports whether the cell holds no tile.
func (t LayerTile) IsEmpty() bool { return t.GID == 0 }

// Chunk is the rectangle covered by one chunk of an infinite layer.
type Chunk struct {
	X, Y          int
	Width, Height int
}

const (
	EncodingXML    = ""
	EncodingCSV    = "csv"
	EncodingBase64 = "base64"

	CompressionNone = ""
	CompressionZlib = "zlib"
	CompressionGzip = "gzip"
)

type xmlData struct {
	Encoding    string        `xml:"encoding,attr"`
	Compression string        `xml:"compression,attr"`
	Tiles       []xmlDataTile `xml:"tile"`
	Chunks      []xmlChunk    `xml:"chunk"`
	Text        string        `xml:",chardata"`
}

type xmlDataTile struct {
	GID string `xml:"gid,attr"`
}

type xmlChunk struct {
	X      int           `xml:"x,attr"`
	Y      int           `xml:"y,attr"`
	Width  int           `xml:"width,attr"`
	Height int           `xml:"height,attr"`
	Tiles  []xmlDataTile `xml:"tile"`
	Text   string        `xml:",chardata"`
}

// decodeData decodes a layer's <data> element into an ordered tile sequence.
// Chunked data is decoded chunk by chunk and offset by each chunk's origin.
func decodeData(d *xmlData, width int) ([]LayerTile, []Chunk, error) {
	if len(d.Chunks) == 0 {
		tiles, err := decodePayload(d.Encoding, d.Compression, d.Text, d.Tiles, width, 0, 0)
		return tiles, nil, err
	}

	var (
		tiles  []LayerTile
		chunks = make([]Chunk, 0, len(d.Chunks))
	)
	for i := range d.Chunks {
		c := &d.Chunks[i]
		if c.Width <= 0 || c.Height <= 0 {
			return nil, nil, fmt.Errorf("%w: chunk at (%d,%d) has size %dx%d",
				ErrMalformedData, c.X, c.Y, c.Width, c.Height)
		}
		ct, err := decodePayload(d.Encoding, d.Compression, c.Text, c.Tiles, c.Width, c.X, c.Y)
		if err != nil {
			return nil, nil, fmt.Errorf("chunk at (%d,%d): %w", c.X, c.Y, err)
		}
		tiles = append(tiles, ct...)
		chunks = append(chunks, Chunk{X: c.X, Y: c.Y, Width: c.Width, Height: c.Height})
	}
	return tiles, chunks, nil
}

func decodePayload(encoding, compression, text string, inline []xmlDataTile, width, originX, originY int) ([]LayerTile, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: layer width %d", ErrMalformedData, width)
	}

	var tiles []LayerTile
	emit := func(gid GID, f Flags) {
		i := len(tiles)
		tiles = append(tiles, LayerTile{
			GID:   gid,
			Flags: f,
			X:     originX + i%width,
			Y:     originY + i/width,
		})
	}

	switch encoding {
	case EncodingXML:
		if compression != CompressionNone {
			return nil, fmt.Errorf("%w: %q with xml tiles", ErrUnsupportedCompression, compression)
		}
		tiles = make([]LayerTile, 0, len(inline))
		for _, t := range inline {
			gid, f, err := parseRawID(t.GID)
			if err != nil {
				return nil, err
			}
			emit(gid, f)
		}

	case EncodingCSV:
		if compression != CompressionNone {
			return nil, fmt.Errorf("%w: %q with csv", ErrUnsupportedCompression, compression)
		}
		if err := decodeCSV(text, emit); err != nil {
			return nil, err
		}

	case EncodingBase64:
		raw, err := decodeBase64(text, compression)
		if err != nil {
			return nil, err
		}
		tiles = make([]LayerTile, 0, len(raw)/4)
		for off := 0; off < len(raw); off += 4 {
			emit(DecodeRaw(binary.LittleEndian.Uint32(raw[off:])))
		}

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, encoding)
	}

	return tiles, nil
}

func decodeCSV(text string, emit func(GID, Flags)) error {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimSuffix(line, ",")
		for _, tok := range strings.Split(line, ",") {
			tok = strings.TrimSpace(tok)
			v, err := strconv.ParseUint(tok, 10, 64)
			if err != nil {
				if errors.Is(err, strconv.ErrRange) {
					return fmt.Errorf("%w: %s", ErrGIDOverflow, tok)
				}
				return fmt.Errorf("%w: %q", ErrMalformedCSV, tok)
			}
			gid, f, err := decodeWide(v)
			if err != nil {
				return err
			}
			emit(gid, f)
		}
	}
	return nil
}

func decodeBase64(text, compression string) ([]byte, error) {
	payload := strings.Join(strings.Fields(text), "")
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %v", ErrMalformedData, err)
	}

	var r io.ReadCloser
	switch compression {
	case CompressionNone:
	case CompressionZlib:
		r, err = zlib.NewReader(bytes.NewReader(raw))
	case CompressionGzip:
		r, err = gzip.NewReader(bytes.NewReader(raw))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCompression, compression)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedData, compression, err)
	}
	if r != nil {
		defer r.Close()
		if raw, err = io.ReadAll(r); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedData, compression, err)
		}
	}

	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of tile ids", ErrMalformedData, len(raw))
	}
	return raw, nil
}
