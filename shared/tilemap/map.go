package tilemap

import (
	"log"

	"github.com/automoto/doomerang-tmx/shared/tmx"
)

// Layer is a runtime layer. Like tmx.Layer it is a tagged variant: only the
// payload matching Kind is set.
type Layer struct {
	Kind       tmx.LayerKind
	Name       string
	Opacity    float64
	Visible    bool
	OffsetX    float64
	OffsetY    float64
	ParallaxX  float64
	ParallaxY  float64
	Properties tmx.Properties

	Grid    *Grid
	Image   *ImageLayer
	Objects []Object
	Group   []Layer
}

// ImageLayer is an image layer resolved to an atlas handle.
type ImageLayer struct {
	Atlas            AtlasID
	Width, Height    int
	RepeatX, RepeatY bool
}

// Object is a tile object with its tile resolved. X and Y are the object's
// bottom-left corner in map pixels, as Tiled stores them.
type Object struct {
	ID         int
	Name       string
	Class      string
	X, Y       float64
	Width      float64
	Height     float64
	Rotation   float64
	Visible    bool
	Tile       Tile
	Properties tmx.Properties
}

// Map is the runtime form of a tmx.Map.
type Map struct {
	Source     *tmx.Map
	Resolver   *Resolver
	TileWidth  int
	TileHeight int
	Layers     []Layer
}

// Build resolves every layer of m. GIDs that no tileset owns are left empty.
func Build(m *tmx.Map, atlases AtlasSource, opts Options) *Map {
	r := NewResolver(m.Tilesets, atlases, opts)
	rm := &Map{
		Source:     m,
		Resolver:   r,
		TileWidth:  m.TileWidth,
		TileHeight: m.TileHeight,
	}
	rm.Layers = rm.buildLayers(m.Layers, atlases)
	rm.Rebuild()
	return rm
}

func (m *Map) buildLayers(src []tmx.Layer, atlases AtlasSource) []Layer {
	out := make([]Layer, 0, len(src))
	for i := range src {
		l := &src[i]
		rl := Layer{
			Kind:       l.Kind,
			Name:       l.Name,
			Opacity:    l.Opacity,
			Visible:    l.Visible,
			OffsetX:    l.OffsetX,
			OffsetY:    l.OffsetY,
			ParallaxX:  l.ParallaxX,
			ParallaxY:  l.ParallaxY,
			Properties: l.Properties,
		}
		switch l.Kind {
		case tmx.LayerTiles:
			rl.Grid = PopulateGrid(l, m.Resolver, m.TileWidth, m.TileHeight)
		case tmx.LayerImage:
			rl.Image = imageLayer(m.Source, l.Image, atlases)
		case tmx.LayerObjects:
			rl.Objects = m.objects(l.Objects)
		case tmx.LayerGroup:
			rl.Group = m.buildLayers(l.Group.Layers, atlases)
		}
		out = append(out, rl)
	}
	return out
}

// PopulateGrid resolves a decoded tile layer into a grid. The layer's
// batches are not built.
func PopulateGrid(l *tmx.Layer, r *Resolver, tileWidth, tileHeight int) *Grid {
	tl := l.Tiles
	g := NewGrid(l.Name, tl.Width, tl.Height, tileWidth, tileHeight)
	g.OriginX, g.OriginY = tl.X, tl.Y
	g.Opacity = l.Opacity
	g.Visible = l.Visible

	for _, lt := range tl.Tiles {
		if lt.IsEmpty() {
			continue
		}
		x, y := lt.X-tl.X, lt.Y-tl.Y
		if t, ok := r.Tile(lt.GID, lt.Flags, x, y); ok {
			g.SetTile(x, y, t)
		}
	}
	return g
}

func imageLayer(m *tmx.Map, il *tmx.ImageLayer, atlases AtlasSource) *ImageLayer {
	out := &ImageLayer{Atlas: NoAtlas, RepeatX: il.RepeatX, RepeatY: il.RepeatY}
	if il.Image == nil {
		return out
	}
	out.Width, out.Height = il.Image.Width, il.Image.Height
	if atlases == nil {
		return out
	}
	p := (&tmx.Document{BaseDir: m.BaseDir}).Join(il.Image.Source)
	a, ok := atlases.Atlas(p)
	if !ok {
		log.Printf("Warning: image layer atlas %s not loaded", p)
		return out
	}
	out.Atlas = a.ID
	if out.Width <= 0 || out.Height <= 0 {
		out.Width, out.Height = a.Width, a.Height
	}
	return out
}

func (m *Map) objects(og *tmx.ObjectGroup) []Object {
	out := make([]Object, 0, len(og.Objects))
	for _, o := range og.Objects {
		t, _ := m.Resolver.Tile(o.GID, o.Flags, 0, 0)
		out = append(out, Object{
			ID:         o.ID,
			Name:       o.Name,
			Class:      o.Class,
			X:          o.X,
			Y:          o.Y,
			Width:      o.Width,
			Height:     o.Height,
			Rotation:   o.Rotation,
			Visible:    o.Visible,
			Tile:       t,
			Properties: o.Properties,
		})
	}
	return out
}

// TileLayer returns the grid of the first tile layer named name, searching
// groups depth-first.
func (m *Map) TileLayer(name string) (*Grid, bool) {
	var found *Grid
	m.Walk(func(l *Layer) bool {
		if l.Kind == tmx.LayerTiles && l.Name == name {
			found = l.Grid
			return false
		}
		return true
	})
	return found, found != nil
}

// ObjectGroup returns the objects of the first object group named name.
func (m *Map) ObjectGroup(name string) ([]Object, bool) {
	var (
		found []Object
		ok    bool
	)
	m.Walk(func(l *Layer) bool {
		if l.Kind == tmx.LayerObjects && l.Name == name {
			found, ok = l.Objects, true
			return false
		}
		return true
	})
	return found, ok
}

// Walk visits every layer depth-first in document order until fn returns
// false.
func (m *Map) Walk(fn func(*Layer) bool) {
	walk(m.Layers, fn)
}

func walk(layers []Layer, fn func(*Layer) bool) bool {
	for i := range layers {
		l := &layers[i]
		if !fn(l) {
			return false
		}
		if l.Kind == tmx.LayerGroup && !walk(l.Group, fn) {
			return false
		}
	}
	return true
}

// Rebuild rebuilds the batches of every tile layer.
func (m *Map) Rebuild() {
	m.Walk(func(l *Layer) bool {
		if l.Grid != nil {
			l.Grid.BuildVertexArray(m.TileWidth, m.TileHeight)
		}
		return true
	})
}

// PixelSize returns the map's size in pixels. Infinite maps report the
// union of their tile layers.
func (m *Map) PixelSize() (w, h int) {
	if !m.Source.Infinite {
		return m.Source.Width * m.TileWidth, m.Source.Height * m.TileHeight
	}
	m.Walk(func(l *Layer) bool {
		if g := l.Grid; g != nil {
			w = max(w, (g.OriginX+g.Width)*m.TileWidth)
			h = max(h, (g.OriginY+g.Height)*m.TileHeight)
		}
		return true
	})
	return w, h
}
