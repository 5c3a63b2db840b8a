package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/brokerimport"
	"github.com/google/subcommands"
)

type importPositionsCmd struct {
	paths brokerimport.PositionPaths
}

func (*importPositionsCmd) Name() string { return "import-positions" }
func (*importPositionsCmd) Synopsis() string {
	return "seed the registry from a broker JSON position export"
}
func (*importPositionsCmd) Usage() string {
	return `bri import-positions -positions <path> -name <path> -currency <path> [-isin <path>] [-wkn <path>] [-ticker <path>] <file>

  Reads a JSON position export and adds every unknown security to the
  registry. Field locations are given as jsonpath expressions, evaluated
  relative to each selected position.

Usage Examples:
# Seed from a depot export with positions under data.positions.
$ bri import-positions -positions '$.data.positions' -isin '$.isin' -name '$.label' -currency '$.currency' depot.json
`
}

func (p *importPositionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.paths.Positions, "positions", "$.positions", "jsonpath selecting the list of positions.")
	f.StringVar(&p.paths.ISIN, "isin", "", "jsonpath of the ISIN within a position.")
	f.StringVar(&p.paths.WKN, "wkn", "", "jsonpath of the WKN or Valor within a position.")
	f.StringVar(&p.paths.Ticker, "ticker", "", "jsonpath of the ticker within a position.")
	f.StringVar(&p.paths.Name, "name", "$.name", "jsonpath of the display name within a position.")
	f.StringVar(&p.paths.Currency, "currency", "$.currency", "jsonpath of the currency within a position.")
}

func (p *importPositionsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one export file expected")
		return subcommands.ExitUsageError
	}

	reg, err := DecodeRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading registry: %v\n", err)
		return subcommands.ExitFailure
	}

	file, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening export: %v\n", err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	added, err := brokerimport.ImportPositionsJSON(file, p.paths, reg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing positions: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := EncodeRegistry(reg); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing registry: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, sec := range added {
		fmt.Printf("Added %s\n", sec)
	}
	fmt.Printf("Registry now holds %d securities.\n", reg.Len())
	return subcommands.ExitSuccess
}
