package tilemap

import (
	"image"
	"log"

	"github.com/automoto/doomerang-tmx/shared/tmx"
)

// DefaultCollidableProperty is the tile property marking solid tiles.
const DefaultCollidableProperty = "collidable"

// Options control how GIDs are resolved.
type Options struct {
	// CollidableProperty names the bool property marking solid tiles.
	// A per-tile value overrides the tileset-level one.
	CollidableProperty string
}

func (o Options) withDefaults() Options {
	if o.CollidableProperty == "" {
		o.CollidableProperty = DefaultCollidableProperty
	}
	return o
}

// Resolved is everything known about a GID after resolution.
type Resolved struct {
	Tileset    *tmx.Tileset
	LocalID    int
	Def        *tmx.TileDef
	Atlas      AtlasID
	Src        image.Rectangle
	Offset     image.Point
	Collidable bool
}

type tilesetEntry struct {
	ts         *tmx.Tileset
	atlas      AtlasID
	columns    int
	count      int
	collidable bool
}

func (e *tilesetEntry) owns(gid tmx.GID) bool {
	first := uint64(e.ts.FirstGID)
	return uint64(gid) >= first && uint64(gid) < first+uint64(e.count)
}

// Resolver maps GIDs to their owning tileset. Each tileset owns
// [FirstGID, FirstGID+count-1]; when ranges overlap the tileset later in file
// order wins.
type Resolver struct {
	opts     Options
	atlases  AtlasSource
	tilesets []tilesetEntry
}

// NewResolver builds the GID ranges for tilesets. atlases may be nil, in
// which case every tile resolves without an atlas.
func NewResolver(tilesets []*tmx.Tileset, atlases AtlasSource, opts Options) *Resolver {
	r := &Resolver{opts: opts.withDefaults(), atlases: atlases}

	for _, ts := range tilesets {
		e := r.entry(ts)
		if e.count == 0 {
			log.Printf("Warning: tileset %q has no tile count and no atlas size; its tiles will not resolve", ts.Name)
		}
		r.tilesets = append(r.tilesets, e)
	}
	return r
}

// lookup scans the ranges last to first so later tilesets shadow earlier ones.
func (r *Resolver) lookup(gid tmx.GID) (*tilesetEntry, bool) {
	if gid == 0 {
		return nil, false
	}
	for i := len(r.tilesets) - 1; i >= 0; i-- {
		if e := &r.tilesets[i]; e.owns(gid) {
			return e, true
		}
	}
	return nil, false
}

func (r *Resolver) entry(ts *tmx.Tileset) tilesetEntry {
	e := tilesetEntry{ts: ts, atlas: NoAtlas, columns: ts.Columns, count: ts.TileCount}
	e.collidable, _ = ts.Properties.LookupBool(r.opts.CollidableProperty)

	var atlasW, atlasH int
	if ts.Image != nil {
		atlasW, atlasH = ts.Image.Width, ts.Image.Height
	}
	if a, ok := r.atlas(ts.ImagePath()); ok {
		e.atlas = a.ID
		if atlasW <= 0 || atlasH <= 0 {
			atlasW, atlasH = a.Width, a.Height
		}
	}

	perRow := tilesAlong(atlasW, ts.TileWidth, ts.Margin, ts.Spacing)
	if e.columns <= 0 {
		e.columns = perRow
	}
	if e.count <= 0 {
		e.count = e.columns * tilesAlong(atlasH, ts.TileHeight, ts.Margin, ts.Spacing)
	}
	if e.columns <= 0 {
		// no width to derive from: lay the declared tiles out in one row
		e.columns = max(e.count, 1)
	}
	return e
}

// tilesAlong counts whole tiles fitting in size pixels.
func tilesAlong(size, tile, margin, spacing int) int {
	if size <= 0 || tile <= 0 {
		return 0
	}
	n := (size - 2*margin + spacing) / (tile + spacing)
	return max(n, 0)
}

func (r *Resolver) atlas(path string) (Atlas, bool) {
	if r.atlases == nil || path == "" {
		return Atlas{}, false
	}
	return r.atlases.Atlas(path)
}

// Tilesets returns the number of tilesets known to the resolver.
func (r *Resolver) Tilesets() int { return len(r.tilesets) }

// Owner returns the tileset owning gid.
func (r *Resolver) Owner(gid tmx.GID) (*tmx.Tileset, bool) {
	e, ok := r.lookup(gid)
	if !ok {
		return nil, false
	}
	return e.ts, true
}

// Resolve looks up gid. An unowned GID, including 0, reports false; it is
// never an error.
func (r *Resolver) Resolve(gid tmx.GID) (Resolved, bool) {
	e, ok := r.lookup(gid)
	if !ok {
		return Resolved{}, false
	}
	ts := e.ts
	local := int(gid - ts.FirstGID)

	col, row := local%e.columns, local/e.columns
	x := ts.Margin + col*(ts.TileWidth+ts.Spacing)
	y := ts.Margin + row*(ts.TileHeight+ts.Spacing)

	res := Resolved{
		Tileset:    ts,
		LocalID:    local,
		Atlas:      e.atlas,
		Src:        image.Rect(x, y, x+ts.TileWidth, y+ts.TileHeight),
		Offset:     image.Pt(ts.OffsetX, ts.OffsetY),
		Collidable: e.collidable,
	}

	if def, ok := ts.Tile(local); ok {
		res.Def = def
		if v, ok := def.Properties.LookupBool(r.opts.CollidableProperty); ok {
			res.Collidable = v
		}
		// image collection tiles carry their own image
		if def.Image != nil {
			res.Atlas = NoAtlas
			res.Src = image.Rect(0, 0, def.Image.Width, def.Image.Height)
			p := (&tmx.Document{BaseDir: ts.BaseDir}).Join(def.Image.Source)
			if a, ok := r.atlas(p); ok {
				res.Atlas = a.ID
				if res.Src.Empty() {
					res.Src = image.Rect(0, 0, a.Width, a.Height)
				}
			}
		}
	}
	return res, true
}

// Tile resolves gid into a grid cell at (x, y). Unresolved GIDs report false.
func (r *Resolver) Tile(gid tmx.GID, flags tmx.Flags, x, y int) (Tile, bool) {
	res, ok := r.Resolve(gid)
	if !ok {
		return emptyTile(x, y), false
	}
	return Tile{
		GID:        gid,
		Flags:      flags,
		Atlas:      res.Atlas,
		Src:        res.Src,
		Offset:     res.Offset,
		Collidable: res.Collidable,
		X:          x,
		Y:          y,
	}, true
}
