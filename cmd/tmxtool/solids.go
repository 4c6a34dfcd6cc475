package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/automoto/doomerang-tmx/shared/leveldata"
	"github.com/google/subcommands"
	"gopkg.in/yaml.v3"
)

type solidsCmd struct {
	layer string
}

func (c *solidsCmd) Name() string     { return "solids" }
func (c *solidsCmd) Synopsis() string { return "export merged solid rects and spawn points as YAML" }
func (c *solidsCmd) Usage() string {
	return "tmxtool solids [-layer <name>] <map.tmx>\n"
}
func (c *solidsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.layer, "layer", leveldata.DefaultCollisionLayer, "Collision tile layer")
}

func (c *solidsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	fsys, rel, err := rooted(f.Arg(0))
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	data, err := leveldata.LoadCollisionData(fsys, rel, c.layer)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if err := enc.Close(); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
