package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/automoto/doomerang-tmx/shared/tiledref"
	"github.com/google/subcommands"
)

type crosscheckCmd struct {
	limit int
}

func (c *crosscheckCmd) Name() string     { return "crosscheck" }
func (c *crosscheckCmd) Synopsis() string { return "compare decoded tile layers against go-tiled" }
func (c *crosscheckCmd) Usage() string {
	return "tmxtool crosscheck [-n <count>] <map.tmx|dir>...\n"
}
func (c *crosscheckCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 10, "Mismatches printed per map")
}

func (c *crosscheckCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	paths, err := expandMaps(f.Args())
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	status := subcommands.ExitSuccess
	for _, p := range paths {
		m, fsys, rel, err := loadMap(p)
		if err != nil {
			fmt.Printf("FAIL %s: %v\n", p, err)
			status = subcommands.ExitFailure
			continue
		}
		mismatches, err := tiledref.Compare(fsys, rel, m)
		if err != nil {
			fmt.Printf("SKIP %s: %v\n", p, err)
			continue
		}
		if len(mismatches) == 0 {
			fmt.Printf("ok   %s\n", p)
			continue
		}
		status = subcommands.ExitFailure
		fmt.Printf("FAIL %s: %d cells differ\n", p, len(mismatches))
		for i, mm := range mismatches {
			if i == c.limit {
				fmt.Println("     ...")
				break
			}
			fmt.Printf("     %s\n", mm)
		}
	}
	return status
}
