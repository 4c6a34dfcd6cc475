package tmx

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Tileset is a collection of equally sized tiles cut from one atlas image.
// GIDs in [FirstGID, FirstGID+TileCount-1] belong to it; this is not checked
// against sibling tilesets.
type Tileset struct {
	FirstGID GID
	// Source is the external TSX reference as written in the map, if any.
	Source string
	// BaseDir is the directory the tileset's own relative paths resolve
	// against: the TSX directory for external tilesets, the map directory
	// otherwise.
	BaseDir string

	Name  string
	Class string

	TileWidth  int
	TileHeight int
	Spacing    int
	Margin     int
	// TileCount and Columns are zero when the document omits them; the
	// resolver derives them from the atlas size.
	TileCount int
	Columns   int

	OffsetX, OffsetY int

	Image      *Image
	Properties Properties
	Terrains   []Terrain
	Tiles      map[int]*TileDef
}

// Image is a reference to an image file. The core never decodes it.
type Image struct {
	Source string
	Width  int
	Height int
	Trans  string
}

// Terrain is an entry of a tileset's <terraintypes>.
type Terrain struct {
	Name       string
	Tile       int
	Properties Properties
}

// TileDef holds per-tile overrides, keyed by local tile id.
type TileDef struct {
	ID    int
	Class string
	// Terrain lists the terrain index of the top-left, top-right,
	// bottom-left and bottom-right corners; -1 marks no terrain.
	Terrain     [4]int
	Probability float64
	Properties  Properties
	Image       *Image
	Animation   []Frame
}

// Frame is one step of a tile animation.
type Frame struct {
	TileID   int
	Duration time.Duration
}

// Tile returns the overrides of a local tile id.
func (ts *Tileset) Tile(localID int) (*TileDef, bool) {
	t, ok := ts.Tiles[localID]
	return t, ok
}

// ImagePath returns the atlas image path resolved against BaseDir.
func (ts *Tileset) ImagePath() string {
	if ts.Image == nil {
		return ""
	}
	return (&Document{BaseDir: ts.BaseDir}).Join(ts.Image.Source)
}

type xmlTileset struct {
	FirstGID   uint32         `xml:"firstgid,attr"`
	Source     string         `xml:"source,attr"`
	Name       string         `xml:"name,attr"`
	Class      string         `xml:"class,attr"`
	TileWidth  *int           `xml:"tilewidth,attr"`
	TileHeight *int           `xml:"tileheight,attr"`
	Spacing    int            `xml:"spacing,attr"`
	Margin     int            `xml:"margin,attr"`
	TileCount  int            `xml:"tilecount,attr"`
	Columns    int            `xml:"columns,attr"`
	TileOffset *xmlTileOffset `xml:"tileoffset"`
	Image      *xmlImage      `xml:"image"`
	Properties *xmlProperties `xml:"properties"`
	Terrains   []xmlTerrain   `xml:"terraintypes>terrain"`
	Tiles      []xmlTile      `xml:"tile"`
}

type xmlTileOffset struct {
	X int `xml:"x,attr"`
	Y int `xml:"y,attr"`
}

type xmlImage struct {
	Source string `xml:"source,attr"`
	Width  int    `xml:"width,attr"`
	Height int    `xml:"height,attr"`
	Trans  string `xml:"trans,attr"`
}

func (x *xmlImage) image() *Image {
	if x == nil {
		return nil
	}
	return &Image{Source: x.Source, Width: x.Width, Height: x.Height, Trans: x.Trans}
}

type xmlTerrain struct {
	Name       string         `xml:"name,attr"`
	Tile       int            `xml:"tile,attr"`
	Properties *xmlProperties `xml:"properties"`
}

type xmlTile struct {
	ID          int            `xml:"id,attr"`
	Type        string         `xml:"type,attr"`
	Class       string         `xml:"class,attr"`
	Terrain     string         `xml:"terrain,attr"`
	Probability *float64       `xml:"probability,attr"`
	Properties  *xmlProperties `xml:"properties"`
	Image       *xmlImage      `xml:"image"`
	Frames      []xmlFrame     `xml:"animation>frame"`
}

type xmlFrame struct {
	TileID   int `xml:"tileid,attr"`
	Duration int `xml:"duration,attr"`
}

// LoadTileset reads a standalone TSX document.
func LoadTileset(loader *Loader, path string) (*Tileset, error) {
	doc, err := loader.ReadXML(path)
	if err != nil {
		return nil, err
	}
	var x xmlTileset
	if err := doc.Decode(&x); err != nil {
		return nil, err
	}
	return parseTileset(&x, doc, loader, true)
}

// parseTileset builds a Tileset from its element. A source attribute is
// followed one level only: an external document is always parsed as a
// standalone tileset.
func parseTileset(x *xmlTileset, doc *Document, loader *Loader, external bool) (*Tileset, error) {
	if x.Source != "" && !external {
		extDoc, err := loader.ReadXML(doc.Join(x.Source))
		if err != nil {
			return nil, fmt.Errorf("external tileset %s: %w", x.Source, err)
		}
		var ext xmlTileset
		if err := extDoc.Decode(&ext); err != nil {
			return nil, fmt.Errorf("external tileset %s: %w", x.Source, err)
		}
		ts, err := parseTileset(&ext, extDoc, loader, true)
		if err != nil {
			return nil, fmt.Errorf("external tileset %s: %w", x.Source, err)
		}
		ts.FirstGID = GID(x.FirstGID)
		ts.Source = x.Source
		return ts, nil
	}

	if x.TileWidth == nil || x.TileHeight == nil || *x.TileWidth <= 0 || *x.TileHeight <= 0 {
		return nil, fmt.Errorf("tileset %q: %w", x.Name, ErrMissingTileSize)
	}

	ts := &Tileset{
		FirstGID:   GID(x.FirstGID),
		BaseDir:    doc.BaseDir,
		Name:       x.Name,
		Class:      x.Class,
		TileWidth:  *x.TileWidth,
		TileHeight: *x.TileHeight,
		Spacing:    x.Spacing,
		Margin:     x.Margin,
		TileCount:  x.TileCount,
		Columns:    x.Columns,
		Image:      x.Image.image(),
		Properties: x.Properties.list(),
		Tiles:      make(map[int]*TileDef, len(x.Tiles)),
	}
	if x.TileOffset != nil {
		ts.OffsetX, ts.OffsetY = x.TileOffset.X, x.TileOffset.Y
	}

	for _, t := range x.Terrains {
		ts.Terrains = append(ts.Terrains, Terrain{
			Name:       t.Name,
			Tile:       t.Tile,
			Properties: t.Properties.list(),
		})
	}

	for i := range x.Tiles {
		def, err := parseTileDef(&x.Tiles[i])
		if err != nil {
			return nil, fmt.Errorf("tileset %q: %w", x.Name, err)
		}
		ts.Tiles[def.ID] = def
	}

	return ts, nil
}

func parseTileDef(x *xmlTile) (*TileDef, error) {
	def := &TileDef{
		ID:          x.ID,
		Class:       x.Class,
		Terrain:     [4]int{-1, -1, -1, -1},
		Probability: 1,
		Properties:  x.Properties.list(),
		Image:       x.Image.image(),
	}
	// Tiled < 1.9 wrote the class as "type"
	if def.Class == "" {
		def.Class = x.Type
	}
	if x.Probability != nil {
		def.Probability = *x.Probability
	}

	if x.Terrain != "" {
		parts := strings.Split(x.Terrain, ",")
		if len(parts) != 4 {
			return nil, fmt.Errorf("tile %d: terrain %q: want 4 corners", x.ID, x.Terrain)
		}
		for i, p := range parts {
			if p = strings.TrimSpace(p); p == "" {
				continue
			}
			n, err := strconv.Atoi(p)
			if err != nil {
				return nil, fmt.Errorf("tile %d: terrain %q: %w", x.ID, x.Terrain, err)
			}
			def.Terrain[i] = n
		}
	}

	for _, f := range x.Frames {
		def.Animation = append(def.Animation, Frame{
			TileID:   f.TileID,
			Duration: time.Duration(f.Duration) * time.Millisecond,
		})
	}

	return def, nil
}
