package tmx

import (
	"encoding/xml"
	"fmt"
)

// Map is a decoded TMX document.
type Map struct {
	Path    string
	BaseDir string

	Version         string
	Class           string
	Orientation     string
	RenderOrder     string
	Width, Height   int
	TileWidth       int
	TileHeight      int
	Infinite        bool
	BackgroundColor string
	Properties      Properties

	Tilesets []*Tileset
	// Layers are kept in document order.
	Layers []Layer
}

// LayerKind discriminates the payload carried by a Layer.
type LayerKind int

const (
	LayerTiles LayerKind = iota
	LayerImage
	LayerObjects
	LayerGroup
)

func (k LayerKind) String() string {
	switch k {
	case LayerTiles:
		return "tiles"
	case LayerImage:
		return "image"
	case LayerObjects:
		return "objects"
	case LayerGroup:
		return "group"
	}
	return fmt.Sprintf("LayerKind(%d)", int(k))
}

// Layer is a tagged variant: exactly the payload matching Kind is set.
type Layer struct {
	Kind LayerKind

	ID         int
	Name       string
	Class      string
	Opacity    float64
	Visible    bool
	OffsetX    float64
	OffsetY    float64
	ParallaxX  float64
	ParallaxY  float64
	TintColor  string
	Properties Properties

	Tiles   *TileLayer
	Image   *ImageLayer
	Objects *ObjectGroup
	Group   *Group
}

// TileLayer is the decoded tile stream of a <layer>. For infinite maps X and
// Y are the top-left of the union of all chunks and may be negative.
type TileLayer struct {
	X, Y          int
	Width, Height int
	Encoding      string
	Compression   string
	Tiles         []LayerTile
	Chunks        []Chunk
}

// ImageLayer is a layer drawing one image.
type ImageLayer struct {
	Image   *Image
	RepeatX bool
	RepeatY bool
}

// ObjectGroup holds the tile objects of an <objectgroup>. Other object shapes
// are not decoded; Skipped counts them.
type ObjectGroup struct {
	Color     string
	DrawOrder string
	Objects   []TileObject
	Skipped   int
}

// TileObject is an object referencing a tile by GID.
type TileObject struct {
	ID         int
	Name       string
	Class      string
	GID        GID
	Flags      Flags
	X, Y       float64
	Width      float64
	Height     float64
	Rotation   float64
	Visible    bool
	Properties Properties
}

// Group nests layers.
type Group struct {
	Layers []Layer
}

type xmlMap struct {
	XMLName         xml.Name       `xml:"map"`
	Version         string         `xml:"version,attr"`
	Class           string         `xml:"class,attr"`
	Orientation     string         `xml:"orientation,attr"`
	RenderOrder     string         `xml:"renderorder,attr"`
	Width           int            `xml:"width,attr"`
	Height          int            `xml:"height,attr"`
	TileWidth       int            `xml:"tilewidth,attr"`
	TileHeight      int            `xml:"tileheight,attr"`
	Infinite        bool           `xml:"infinite,attr"`
	BackgroundColor string         `xml:"backgroundcolor,attr"`
	Properties      *xmlProperties `xml:"properties"`
	Tilesets        []xmlTileset   `xml:"tileset"`
	Layers          []xmlLayerNode `xml:",any"`
}

type xmlLayerCommon struct {
	ID         int            `xml:"id,attr"`
	Name       string         `xml:"name,attr"`
	Class      string         `xml:"class,attr"`
	Opacity    *float64       `xml:"opacity,attr"`
	Visible    *bool          `xml:"visible,attr"`
	OffsetX    float64        `xml:"offsetx,attr"`
	OffsetY    float64        `xml:"offsety,attr"`
	ParallaxX  *float64       `xml:"parallaxx,attr"`
	ParallaxY  *float64       `xml:"parallaxy,attr"`
	TintColor  string         `xml:"tintcolor,attr"`
	Properties *xmlProperties `xml:"properties"`
}

type xmlTileLayer struct {
	xmlLayerCommon
	Width  int      `xml:"width,attr"`
	Height int      `xml:"height,attr"`
	Data   *xmlData `xml:"data"`
}

type xmlImageLayer struct {
	xmlLayerCommon
	RepeatX bool      `xml:"repeatx,attr"`
	RepeatY bool      `xml:"repeaty,attr"`
	Image   *xmlImage `xml:"image"`
}

type xmlObjectGroup struct {
	xmlLayerCommon
	Color     string      `xml:"color,attr"`
	DrawOrder string      `xml:"draworder,attr"`
	Objects   []xmlObject `xml:"object"`
}

type xmlObject struct {
	ID         int            `xml:"id,attr"`
	Name       string         `xml:"name,attr"`
	Type       string         `xml:"type,attr"`
	Class      string         `xml:"class,attr"`
	GID        string         `xml:"gid,attr"`
	X          float64        `xml:"x,attr"`
	Y          float64        `xml:"y,attr"`
	Width      float64        `xml:"width,attr"`
	Height     float64        `xml:"height,attr"`
	Rotation   float64        `xml:"rotation,attr"`
	Visible    *bool          `xml:"visible,attr"`
	Properties *xmlProperties `xml:"properties"`
}

type xmlGroup struct {
	xmlLayerCommon
	Layers []xmlLayerNode `xml:",any"`
}

// xmlLayerNode captures any child of <map> or <group> so that layers of
// different element types keep their document order.
type xmlLayerNode struct {
	Kind    LayerKind
	Element string
	Tiles   *xmlTileLayer
	Image   *xmlImageLayer
	Objects *xmlObjectGroup
	Group   *xmlGroup
}

func (n *xmlLayerNode) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	n.Element = start.Name.Local
	switch start.Name.Local {
	case "layer":
		n.Kind, n.Tiles = LayerTiles, &xmlTileLayer{}
		return d.DecodeElement(n.Tiles, &start)
	case "imagelayer":
		n.Kind, n.Image = LayerImage, &xmlImageLayer{}
		return d.DecodeElement(n.Image, &start)
	case "objectgroup":
		n.Kind, n.Objects = LayerObjects, &xmlObjectGroup{}
		return d.DecodeElement(n.Objects, &start)
	case "group":
		n.Kind, n.Group = LayerGroup, &xmlGroup{}
		return d.DecodeElement(n.Group, &start)
	}
	return d.Skip()
}

func (n *xmlLayerNode) known() bool {
	return n.Tiles != nil || n.Image != nil || n.Objects != nil || n.Group != nil
}

// LoadMap reads and parses the TMX document at path.
func LoadMap(loader *Loader, path string) (*Map, error) {
	doc, err := loader.ReadXML(path)
	if err != nil {
		return nil, fmt.Errorf("load map %s: %w", path, err)
	}
	m, err := ParseMap(doc, loader)
	if err != nil {
		return nil, fmt.Errorf("load map %s: %w", path, err)
	}
	return m, nil
}

// ParseMap parses a loaded TMX document. External tilesets are read through
// loader relative to the document.
func ParseMap(doc *Document, loader *Loader) (*Map, error) {
	var x xmlMap
	if err := doc.Decode(&x); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMap, err)
	}
	if x.TileWidth <= 0 || x.TileHeight <= 0 {
		return nil, fmt.Errorf("%w: tile size %dx%d", ErrInvalidMap, x.TileWidth, x.TileHeight)
	}

	m := &Map{
		Path:            doc.Path,
		BaseDir:         doc.BaseDir,
		Version:         x.Version,
		Class:           x.Class,
		Orientation:     x.Orientation,
		RenderOrder:     x.RenderOrder,
		Width:           x.Width,
		Height:          x.Height,
		TileWidth:       x.TileWidth,
		TileHeight:      x.TileHeight,
		Infinite:        x.Infinite,
		BackgroundColor: x.BackgroundColor,
		Properties:      x.Properties.list(),
	}

	for i := range x.Tilesets {
		xt := &x.Tilesets[i]
		if xt.FirstGID == 0 {
			return nil, fmt.Errorf("%w: tileset %d has no firstgid", ErrInvalidMap, i)
		}
		ts, err := parseTileset(xt, doc, loader, false)
		if err != nil {
			return nil, err
		}
		m.Tilesets = append(m.Tilesets, ts)
	}

	layers, err := convertLayers(x.Layers)
	if err != nil {
		return nil, err
	}
	m.Layers = layers
	return m, nil
}

func convertLayers(nodes []xmlLayerNode) ([]Layer, error) {
	layers := make([]Layer, 0, len(nodes))
	for i := range nodes {
		n := &nodes[i]
		if !n.known() {
			continue
		}

		var (
			l   Layer
			err error
		)
		switch n.Kind {
		case LayerTiles:
			l = layerCommon(&n.Tiles.xmlLayerCommon)
			l.Tiles, err = convertTileLayer(n.Tiles)
		case LayerImage:
			l = layerCommon(&n.Image.xmlLayerCommon)
			l.Image = &ImageLayer{
				Image:   n.Image.Image.image(),
				RepeatX: n.Image.RepeatX,
				RepeatY: n.Image.RepeatY,
			}
		case LayerObjects:
			l = layerCommon(&n.Objects.xmlLayerCommon)
			l.Objects, err = convertObjectGroup(n.Objects)
		case LayerGroup:
			l = layerCommon(&n.Group.xmlLayerCommon)
			var children []Layer
			children, err = convertLayers(n.Group.Layers)
			l.Group = &Group{Layers: children}
		}
		if err != nil {
			return nil, fmt.Errorf("%s layer %q: %w", n.Element, l.Name, err)
		}
		l.Kind = n.Kind
		layers = append(layers, l)
	}
	return layers, nil
}

func layerCommon(x *xmlLayerCommon) Layer {
	l := Layer{
		ID:         x.ID,
		Name:       x.Name,
		Class:      x.Class,
		Opacity:    1,
		Visible:    true,
		OffsetX:    x.OffsetX,
		OffsetY:    x.OffsetY,
		ParallaxX:  1,
		ParallaxY:  1,
		TintColor:  x.TintColor,
		Properties: x.Properties.list(),
	}
	if x.Opacity != nil {
		l.Opacity = *x.Opacity
	}
	if x.Visible != nil {
		l.Visible = *x.Visible
	}
	if x.ParallaxX != nil {
		l.ParallaxX = *x.ParallaxX
	}
	if x.ParallaxY != nil {
		l.ParallaxY = *x.ParallaxY
	}
	return l
}

func convertTileLayer(x *xmlTileLayer) (*TileLayer, error) {
	if x.Data == nil {
		return nil, ErrMissingData
	}

	tiles, chunks, err := decodeData(x.Data, x.Width)
	if err != nil {
		return nil, err
	}

	tl := &TileLayer{
		Width:       x.Width,
		Height:      x.Height,
		Encoding:    x.Data.Encoding,
		Compression: x.Data.Compression,
		Tiles:       tiles,
		Chunks:      chunks,
	}
	if len(chunks) > 0 {
		minX, minY := chunks[0].X, chunks[0].Y
		maxX, maxY := chunks[0].X+chunks[0].Width, chunks[0].Y+chunks[0].Height
		for _, c := range chunks[1:] {
			minX, minY = min(minX, c.X), min(minY, c.Y)
			maxX, maxY = max(maxX, c.X+c.Width), max(maxY, c.Y+c.Height)
		}
		tl.X, tl.Y = minX, minY
		tl.Width, tl.Height = maxX-minX, maxY-minY
	}
	return tl, nil
}

func convertObjectGroup(x *xmlObjectGroup) (*ObjectGroup, error) {
	og := &ObjectGroup{Color: x.Color, DrawOrder: x.DrawOrder}
	for i := range x.Objects {
		o := &x.Objects[i]
		if o.GID == "" {
			og.Skipped++
			continue
		}
		gid, f, err := parseRawID(o.GID)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", o.ID, err)
		}
		obj := TileObject{
			ID:         o.ID,
			Name:       o.Name,
			Class:      o.Class,
			GID:        gid,
			Flags:      f,
			X:          o.X,
			Y:          o.Y,
			Width:      o.Width,
			Height:     o.Height,
			Rotation:   o.Rotation,
			Visible:    true,
			Properties: o.Properties.list(),
		}
		if obj.Class == "" {
			obj.Class = o.Type
		}
		if o.Visible != nil {
			obj.Visible = *o.Visible
		}
		og.Objects = append(og.Objects, obj)
	}
	return og, nil
}

// FindLayer returns the first layer with the given name, searching groups
// depth-first in document order.
func (m *Map) FindLayer(name string) (*Layer, bool) {
	return findLayer(m.Layers, name)
}

func findLayer(layers []Layer, name string) (*Layer, bool) {
	for i := range layers {
		l := &layers[i]
		if l.Name == name {
			return l, true
		}
		if l.Kind == LayerGroup {
			if found, ok := findLayer(l.Group.Layers, name); ok {
				return found, true
			}
		}
	}
	return nil, false
}
