package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/automoto/doomerang-tmx/shared/tmx"
	"github.com/google/subcommands"
)

type dumpCmd struct {
	tiles bool
}

func (c *dumpCmd) Name() string     { return "dump" }
func (c *dumpCmd) Synopsis() string { return "print a map's tilesets and layer tree" }
func (c *dumpCmd) Usage() string {
	return "tmxtool dump [-tiles] <map.tmx>\n"
}
func (c *dumpCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.tiles, "tiles", false, "Print every non-empty cell of tile layers")
}

func (c *dumpCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	m, _, _, err := loadMap(f.Arg(0))
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	dumpMap(os.Stdout, m, c.tiles)
	return subcommands.ExitSuccess
}

func dumpMap(w io.Writer, m *tmx.Map, tiles bool) {
	fmt.Fprintf(w, "map %dx%d tiles of %dx%d, %s", m.Width, m.Height, m.TileWidth, m.TileHeight, m.Orientation)
	if m.Infinite {
		fmt.Fprint(w, ", infinite")
	}
	fmt.Fprintln(w)

	for _, ts := range m.Tilesets {
		fmt.Fprintf(w, "tileset %q firstgid=%d tile=%dx%d count=%d columns=%d",
			ts.Name, ts.FirstGID, ts.TileWidth, ts.TileHeight, ts.TileCount, ts.Columns)
		if ts.Source != "" {
			fmt.Fprintf(w, " source=%s", ts.Source)
		}
		if img := ts.ImagePath(); img != "" {
			fmt.Fprintf(w, " image=%s", img)
		}
		fmt.Fprintln(w)
	}
	dumpLayers(w, m.Layers, 0, tiles)
}

func dumpLayers(w io.Writer, layers []tmx.Layer, depth int, tiles bool) {
	indent := strings.Repeat("  ", depth)
	for i := range layers {
		l := &layers[i]
		fmt.Fprintf(w, "%s%s %q", indent, l.Kind, l.Name)
		if !l.Visible {
			fmt.Fprint(w, " hidden")
		}
		if l.Opacity != 1 {
			fmt.Fprintf(w, " opacity=%g", l.Opacity)
		}
		if l.OffsetX != 0 || l.OffsetY != 0 {
			fmt.Fprintf(w, " offset=%g,%g", l.OffsetX, l.OffsetY)
		}

		switch l.Kind {
		case tmx.LayerTiles:
			tl := l.Tiles
			used := 0
			for _, t := range tl.Tiles {
				if !t.IsEmpty() {
					used++
				}
			}
			fmt.Fprintf(w, " %dx%d at %d,%d %s %d used\n", tl.Width, tl.Height, tl.X, tl.Y, encodingName(tl), used)
			if tiles {
				for _, t := range tl.Tiles {
					if !t.IsEmpty() {
						fmt.Fprintf(w, "%s  (%d,%d) gid=%d%s\n", indent, t.X, t.Y, t.GID, flagString(t.Flags))
					}
				}
			}
		case tmx.LayerImage:
			src := ""
			if l.Image.Image != nil {
				src = l.Image.Image.Source
			}
			fmt.Fprintf(w, " %s\n", src)
		case tmx.LayerObjects:
			fmt.Fprintf(w, " %d tile objects, %d skipped\n", len(l.Objects.Objects), l.Objects.Skipped)
		case tmx.LayerGroup:
			fmt.Fprintln(w)
			dumpLayers(w, l.Group.Layers, depth+1, tiles)
		}
	}
}

func encodingName(tl *tmx.TileLayer) string {
	enc := tl.Encoding
	if enc == tmx.EncodingXML {
		enc = "xml"
	}
	if tl.Compression != tmx.CompressionNone {
		enc += "+" + tl.Compression
	}
	return enc
}

// flagString renders flip flags as " flip=hvd", or "" when unflipped.
func flagString(f tmx.Flags) string {
	if f == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(" flip=")
	if f.Horizontal() {
		b.WriteByte('h')
	}
	if f.Vertical() {
		b.WriteByte('v')
	}
	if f.Diagonal() {
		b.WriteByte('d')
	}
	return b.String()
}
