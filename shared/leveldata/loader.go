package leveldata

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/automoto/doomerang-tmx/shared/collision"
	"github.com/automoto/doomerang-tmx/shared/tilemap"
	"github.com/automoto/doomerang-tmx/shared/tmx"
)

// LoadCollisionData parses a TMX file and returns collision data (solid runs
// of the named layer and player spawn points). It takes an fs.FS so callers
// can pass embed.FS or os.DirFS.
func LoadCollisionData(fsys fs.FS, tmxPath, layer string) (*CollisionData, error) {
	m, err := tmx.LoadMap(tmx.FSLoader(fsys), tmxPath)
	if err != nil {
		return nil, err
	}
	return FromMap(tilemap.Build(m, nil, tilemap.Options{}), layer), nil
}

// SlopeType returns the "slope" property of the tile's definition, or "".
func SlopeType(m *tilemap.Map, t tilemap.Tile) string {
	res, ok := m.Resolver.Resolve(t.GID)
	if !ok || res.Def == nil {
		return ""
	}
	return res.Def.Properties.GetString("slope")
}

// FromMap extracts collision data from a built map. A missing layer yields no
// solids.
func FromMap(m *tilemap.Map, layer string) *CollisionData {
	w, h := m.PixelSize()
	data := &CollisionData{
		MapWidth:   w,
		MapHeight:  h,
		TileWidth:  m.TileWidth,
		TileHeight: m.TileHeight,
	}

	slope := func(t tilemap.Tile) string { return SlopeType(m, t) }

	if g, ok := m.TileLayer(layer); ok {
		solids := collision.Solids(g, func(t tilemap.Tile) bool { return slope(t) != "" })
		for _, s := range solids {
			data.SolidRects = append(data.SolidRects, SolidRect{
				X:         s.X,
				Y:         s.Y,
				W:         s.W,
				H:         s.H,
				SlopeType: slope(s.First),
			})
		}
	}

	objs, _ := m.ObjectGroup(SpawnLayer)
	for _, o := range objs {
		data.SpawnPoints = append(data.SpawnPoints, SpawnPoint{
			X:     o.X,
			Y:     o.Y,
			Index: o.Properties.GetInt("spawnIndex"),
		})
	}

	// Sort spawns left-to-right for consistent assignment
	sort.Slice(data.SpawnPoints, func(i, j int) bool {
		return data.SpawnPoints[i].X < data.SpawnPoints[j].X
	})

	return data
}

// LoadAllLevels discovers all .tmx files in levelsDir within fsys, loads collision
// data for each, and returns a map keyed by stem name plus a sorted list of names.
func LoadAllLevels(fsys fs.FS, levelsDir, layer string) (map[string]*CollisionData, []string, error) {
	pattern := path.Join(levelsDir, "*.tmx")
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", levelsDir)
	}

	levels := make(map[string]*CollisionData, len(matches))
	names := make([]string, 0, len(matches))

	for _, p := range matches {
		data, err := LoadCollisionData(fsys, p, layer)
		if err != nil {
			return nil, nil, err
		}
		stem := strings.TrimSuffix(path.Base(p), ".tmx")
		levels[stem] = data
		names = append(names, stem)
	}

	sort.Strings(names)
	return levels, names, nil
}
