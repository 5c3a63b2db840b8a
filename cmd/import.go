package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/brokerimport"
	"github.com/etnz/brokerimport/renderer"
	"github.com/google/subcommands"
)

type importCmd struct {
	profile string
	dryRun  bool
	check   bool
}

func (*importCmd) Name() string { return "import" }
func (*importCmd) Synopsis() string {
	return "extract transactions from plain-text brokerage documents"
}
func (*importCmd) Usage() string {
	return `bri import [-profile <name>] [-n] [-check=false] <file>...

  Detects the institution profile of each document, extracts securities and
  transactions, and prints an import report per document. New securities are
  appended to the registry file unless -n is given.
`
}

func (p *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.profile, "profile", "", "Force this institution profile instead of detecting one.")
	f.BoolVar(&p.dryRun, "n", false, "Do not write the updated registry back.")
	f.BoolVar(&p.check, "check", true, "Verify the monetary consistency of every extracted item.")
}

func (p *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: no document file given")
		return subcommands.ExitUsageError
	}

	reg, err := DecodeRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading registry: %v\n", err)
		return subcommands.ExitFailure
	}
	profiles, err := AppProfiles()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading profiles: %v\n", err)
		return subcommands.ExitFailure
	}
	var forced *brokerimport.Profile
	if p.profile != "" {
		for _, prof := range profiles {
			if prof.Name == p.profile {
				forced = prof
				break
			}
		}
		if forced == nil {
			fmt.Fprintf(os.Stderr, "Error: unknown profile %q\n", p.profile)
			return subcommands.ExitUsageError
		}
	}
	checker := brokerimport.NewChecker()

	status := subcommands.ExitSuccess
	for _, filename := range f.Args() {
		text, err := os.ReadFile(filename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", filename, err)
			status = subcommands.ExitFailure
			continue
		}
		profile := forced
		if profile == nil {
			profile, err = brokerimport.DetectProfile(profiles, string(text))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error on %q: %v\n", filename, err)
				status = subcommands.ExitFailure
				continue
			}
		}

		doc := brokerimport.Document{Name: filename, Text: string(text)}
		items, errs := brokerimport.NewExtractor(profile).Extract(doc, reg)
		if p.check {
			for _, item := range items {
				if err := checker.Check(item); err != nil {
					errs = append(errs, fmt.Errorf("%s: inconsistent item: %w", filename, err))
				}
			}
		}
		if len(errs) > 0 {
			status = subcommands.ExitFailure
		}
		printMarkdown(renderer.ReportMarkdown(renderer.NewReport(filename, profile.Name, items, errs)))
	}

	if p.dryRun {
		return status
	}
	if err := EncodeRegistry(reg); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing registry: %v\n", err)
		return subcommands.ExitFailure
	}
	return status
}
