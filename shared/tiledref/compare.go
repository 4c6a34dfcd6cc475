// Package tiledref checks decoded maps against github.com/lafriks/go-tiled,
// which serves as an independent reference decoder.
package tiledref

import (
	"fmt"
	"io/fs"

	"github.com/lafriks/go-tiled"

	"github.com/automoto/doomerang-tmx/shared/tmx"
)

// Mismatch is one cell where the two decoders disagree.
type Mismatch struct {
	Layer string
	Index int
	Want  tmx.LayerTile
	Got   tmx.LayerTile
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s[%d]: go-tiled gid %d flags %03b, tmx gid %d flags %03b",
		m.Layer, m.Index, m.Want.GID, m.Want.Flags, m.Got.GID, m.Got.Flags)
}

// Compare loads path from fsys with go-tiled and compares every top-level
// tile layer against m cell by cell. Infinite maps are not supported by the
// reference decoder and are reported as an error.
func Compare(fsys fs.FS, path string, m *tmx.Map) ([]Mismatch, error) {
	if m.Infinite {
		return nil, fmt.Errorf("compare %s: infinite maps are not supported by go-tiled", path)
	}
	ref, err := tiled.LoadFile(path, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("go-tiled load %s: %w", path, err)
	}

	var out []Mismatch
	for _, rl := range ref.Layers {
		l := topLevelTiles(m, rl.Name)
		if l == nil {
			return nil, fmt.Errorf("compare %s: layer %q missing from decoded map", path, rl.Name)
		}
		if len(rl.Tiles) != len(l.Tiles) {
			return nil, fmt.Errorf("compare %s: layer %q has %d cells, go-tiled has %d",
				path, rl.Name, len(l.Tiles), len(rl.Tiles))
		}
		for i, rt := range rl.Tiles {
			want := reference(rt)
			got := l.Tiles[i]
			if want.GID != got.GID || want.Flags != got.Flags {
				want.X, want.Y = got.X, got.Y
				out = append(out, Mismatch{Layer: rl.Name, Index: i, Want: want, Got: got})
			}
		}
	}
	return out, nil
}

func topLevelTiles(m *tmx.Map, name string) *tmx.TileLayer {
	for i := range m.Layers {
		if l := &m.Layers[i]; l.Kind == tmx.LayerTiles && l.Name == name {
			return l.Tiles
		}
	}
	return nil
}

func reference(t *tiled.LayerTile) tmx.LayerTile {
	if t == nil || t.IsNil() {
		return tmx.LayerTile{}
	}
	var f tmx.Flags
	if t.HorizontalFlip {
		f |= tmx.FlippedHorizontally
	}
	if t.VerticalFlip {
		f |= tmx.FlippedVertically
	}
	if t.DiagonalFlip {
		f |= tmx.FlippedDiagonally
	}
	return tmx.LayerTile{GID: tmx.GID(t.Tileset.FirstGID + t.ID), Flags: f}
}
