// Package cmd implements the CLI application to import brokerage documents.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/brokerimport"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&importCmd{}, "documents")

	c.Register(&securitiesCmd{}, "securities")
	c.Register(&importPositionsCmd{}, "securities")

	c.Register(&profilesCmd{}, "profiles")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var registryFile = flag.String("registry-file", "securities.jsonl", "Path to the security registry file (JSONL format)")
var profilesFile = flag.String("profiles-file", "", "Path to an extra institution profiles file (YAML, one document per profile)")

// DecodeRegistry loads the security registry from the app registry file.
func DecodeRegistry() (reg *brokerimport.Registry, err error) {
	f, err := os.Open(*registryFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, registry does not exist, starting with an empty registry instead")
		return brokerimport.NewRegistry(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return brokerimport.ImportRegistry(f)
}

// EncodeRegistry writes the security registry back to the app registry file.
func EncodeRegistry(reg *brokerimport.Registry) error {
	f, err := os.Create(*registryFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return brokerimport.ExportRegistry(f, reg)
}

// AppProfiles returns the built-in profiles plus the ones from the app
// profiles file, if any. File profiles come first so they can shadow a
// built-in with the same institution match.
func AppProfiles() ([]*brokerimport.Profile, error) {
	builtin := brokerimport.BuiltinProfiles()
	if *profilesFile == "" {
		return builtin, nil
	}
	f, err := os.Open(*profilesFile)
	if err != nil {
		return nil, fmt.Errorf("cannot open profiles file: %w", err)
	}
	defer f.Close()
	extra, err := brokerimport.LoadProfiles(f)
	if err != nil {
		return nil, err
	}
	return append(extra, builtin...), nil
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when the terminal renderer fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
