// Command tmxtool inspects TMX maps: it validates and dumps them, cross-checks
// the decoder against go-tiled and exports collision data.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&validateCmd{}, "")
	subcommands.Register(&dumpCmd{}, "")
	subcommands.Register(&crosscheckCmd{}, "")
	subcommands.Register(&solidsCmd{}, "")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
