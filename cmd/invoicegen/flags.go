package main

import (
	flag "github.com/spf13/pflag"
)

// cliFlags holds the parsed command-line flags.
type cliFlags struct {
	request   string
	templates string
	out       string
	mergeRuns bool
	version   bool
}

// parseFlags parses command-line arguments into cliFlags.
func parseFlags(args []string) (cliFlags, error) {
	var flags cliFlags

	fs := flag.NewFlagSet("invoicegen", flag.ContinueOnError)
	fs.StringVarP(&flags.request, "request", "r", "", "YAML request file with the invoice fields (required)")
	fs.StringVarP(&flags.templates, "templates", "t", ".", "directory holding the invoice templates")
	fs.StringVarP(&flags.out, "out", "o", ".", "directory receiving the generated invoice")
	fs.BoolVar(&flags.mergeRuns, "merge-runs", false, "substitute placeholders that span formatting runs")
	fs.BoolVar(&flags.version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return cliFlags{}, err
	}
	return flags, nil
}
