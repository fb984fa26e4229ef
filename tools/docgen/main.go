// Package main writes the cf command reference in markdown, man, reST or
// YAML form.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/donaldgifford/carfinder/cmd/cf/cmd"
)

var generators = map[string]func(root *cobra.Command, dir string) error{
	"markdown": doc.GenMarkdownTree,
	"man": func(root *cobra.Command, dir string) error {
		return doc.GenManTree(root, &doc.GenManHeader{Title: "CF", Section: "1", Source: "carfinder"}, dir)
	},
	"rest": doc.GenReSTTree,
	"yaml": doc.GenYamlTree,
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "docgen:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("docgen", flag.ContinueOnError)
	output := fs.String("output", "docs/cli", "output directory")
	format := fs.String("format", "markdown", "markdown, man, rest or yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}

	gen, ok := generators[*format]
	if !ok {
		return fmt.Errorf("unknown format %q", *format)
	}
	if err := os.MkdirAll(*output, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	root := cmd.Root()
	root.DisableAutoGenTag = true
	if err := gen(root, *output); err != nil {
		return fmt.Errorf("generating %s docs: %w", *format, err)
	}

	_, err := fmt.Fprintf(stdout, "cf %s docs written to %s\n", *format, *output)
	return err
}
