package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

type securitiesCmd struct{}

func (*securitiesCmd) Name() string     { return "securities" }
func (*securitiesCmd) Synopsis() string { return "list the securities in the registry" }
func (*securitiesCmd) Usage() string {
	return `bri securities

  Lists the security registry as a markdown table, in insertion order.
`
}

func (c *securitiesCmd) SetFlags(f *flag.FlagSet) {}

func (c *securitiesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	reg, err := DecodeRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading registry: %v\n", err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Securities (%d)\n\n", reg.Len())
	b.WriteString("| ISIN | WKN | Ticker | Name | Currency |\n|---|---|---|---|---|\n")
	for sec := range reg.All() {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			sec.ISIN(), sec.WKN(), sec.Ticker(), sec.Name(), sec.Currency())
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
