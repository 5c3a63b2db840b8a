package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

type profilesCmd struct{}

func (*profilesCmd) Name() string     { return "profiles" }
func (*profilesCmd) Synopsis() string { return "list the known institution profiles" }
func (*profilesCmd) Usage() string {
	return `bri profiles

  Lists the built-in institution profiles plus the ones loaded from the
  -profiles-file, with the block types each one recognizes.
`
}

func (c *profilesCmd) SetFlags(f *flag.FlagSet) {}

func (c *profilesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	profiles, err := AppProfiles()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading profiles: %v\n", err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	b.WriteString("# Institution profiles\n\n")
	for _, p := range profiles {
		var types []string
		for _, sec := range p.Sections {
			t := string(sec.Type)
			if len(types) == 0 || types[len(types)-1] != t {
				types = append(types, t)
			}
		}
		fmt.Fprintf(&b, "- **%s**: %s\n", p.Name, strings.Join(types, ", "))
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
