package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/automoto/doomerang-tmx/shared/tilemap"
	"github.com/automoto/doomerang-tmx/shared/tmx"
	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
)

type validateCmd struct {
	quiet bool
}

func (c *validateCmd) Name() string     { return "validate" }
func (c *validateCmd) Synopsis() string { return "decode maps and report unresolved tiles" }
func (c *validateCmd) Usage() string {
	return "tmxtool validate [-q] <map.tmx|dir>...\n"
}
func (c *validateCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.quiet, "q", false, "Hide the progress bar")
}

// report is the outcome of validating one map.
type report struct {
	path       string
	err        error
	tiles      int
	unresolved int
}

func validate(p string) report {
	r := report{path: p}
	m, _, _, err := loadMap(p)
	if err != nil {
		r.err = err
		return r
	}
	resolver := tilemap.NewResolver(m.Tilesets, nil, tilemap.Options{})
	walkTiles(m.Layers, func(t tmx.LayerTile) {
		if t.IsEmpty() {
			return
		}
		r.tiles++
		if _, ok := resolver.Resolve(t.GID); !ok {
			r.unresolved++
		}
	})
	for _, ts := range m.Tilesets {
		if ts.Image == nil && len(ts.Tiles) == 0 {
			log.Printf("Warning: %s: tileset %q has no image", p, ts.Name)
		}
	}
	return r
}

func walkTiles(layers []tmx.Layer, fn func(tmx.LayerTile)) {
	for i := range layers {
		l := &layers[i]
		switch l.Kind {
		case tmx.LayerTiles:
			for _, t := range l.Tiles.Tiles {
				fn(t)
			}
		case tmx.LayerObjects:
			for _, o := range l.Objects.Objects {
				fn(tmx.LayerTile{GID: o.GID, Flags: o.Flags})
			}
		case tmx.LayerGroup:
			walkTiles(l.Group.Layers, fn)
		}
	}
}

func (c *validateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	paths, err := expandMaps(f.Args())
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	var bar *progressbar.ProgressBar
	if !c.quiet {
		bar = progressbar.NewOptions(len(paths), progressbar.OptionShowCount(), progressbar.OptionSetDescription("validate"))
	}
	reports := make([]report, 0, len(paths))
	for _, p := range paths {
		reports = append(reports, validate(p))
		if bar != nil {
			bar.Add(1)
		}
	}
	if bar != nil {
		bar.Finish()
		fmt.Println()
	}

	status := subcommands.ExitSuccess
	for _, r := range reports {
		switch {
		case r.err != nil:
			fmt.Printf("FAIL %s: %v\n", r.path, r.err)
			status = subcommands.ExitFailure
		case r.unresolved > 0:
			fmt.Printf("FAIL %s: %d of %d tiles reference no tileset\n", r.path, r.unresolved, r.tiles)
			status = subcommands.ExitFailure
		default:
			fmt.Printf("ok   %s: %d tiles\n", r.path, r.tiles)
		}
	}
	return status
}
