package collision_test

import (
	"image"
	"strings"

	"github.com/automoto/doomerang-tmx/shared/tilemap"
)

type layers map[string]*tilemap.Grid

func (l layers) TileLayer(name string) (*tilemap.Grid, bool) {
	g, ok := l[name]
	return g, ok
}

// gridOf builds a 16px grid from rows where '#' is a collidable tile, 'o' a
// tile that is not collidable and '.' an empty cell.
func gridOf(rows ...string) *tilemap.Grid {
	g := tilemap.NewGrid("walls", len(rows[0]), len(rows), 16, 16)
	for y, row := range rows {
		for x, c := range strings.Split(row, "") {
			switch c {
			case "#":
				g.SetTile(x, y, tilemap.Tile{GID: 1, Atlas: 0, Src: image.Rect(0, 0, 16, 16), Collidable: true})
			case "o":
				g.SetTile(x, y, tilemap.Tile{GID: 2, Atlas: 0, Src: image.Rect(16, 0, 32, 16)})
			}
		}
	}
	return g
}
