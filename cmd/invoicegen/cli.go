package main

import (
	"errors"
	"fmt"
	"io"

	invoice "github.com/Akshara-Amirtharaj/Invoice-Generator"
)

// Sentinel errors for CLI operations.
var (
	ErrNoRequest = errors.New("usage: invoicegen --request <file.yaml> [--templates <dir>] [--out <dir>]")
)

// run parses flags, loads the request file, and generates the invoice.
func run(args []string, stdout io.Writer) error {
	flags, err := parseFlags(args)
	if err != nil {
		return err
	}

	if flags.version {
		fmt.Fprintln(stdout, Version)
		return nil
	}

	if flags.request == "" {
		return ErrNoRequest
	}

	req, err := loadRequest(flags.request)
	if err != nil {
		return err
	}

	path, err := invoice.Generate(req, invoice.Options{
		TemplateDir: flags.templates,
		OutputDir:   flags.out,
		MergeRuns:   flags.mergeRuns,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Created %s\n", path)
	return nil
}
