// Package invoice fills DOCX invoice templates with client- and
// project-specific values and computes multi-installment payment splits.
//
// Basic usage:
//
//	req := invoice.Request{
//	    Region:        invoice.RegionROW,
//	    ClientName:    "Acme Ltd",
//	    Currency:      invoice.CurrencyUSD,
//	    Total:         decimal.NewFromInt(1000),
//	    PaymentOption: invoice.TwoParts,
//	    Percentages:   []decimal.Decimal{decimal.NewFromInt(33)},
//	    Date:          time.Now(),
//	}
//	path, err := invoice.Generate(req, invoice.Options{TemplateDir: "templates"})
//	if err != nil {
//	    // handle error
//	}
//
// The lower-level docx package is also available for working with templates
// directly.
package invoice

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/Akshara-Amirtharaj/Invoice-Generator/docx"
)

// Options configures invoice generation.
type Options struct {
	TemplateDir string // directory holding the template documents
	OutputDir   string // directory receiving the generated invoice
	MergeRuns   bool   // substitute placeholders that span run boundaries
}

// leftBlockKeywords are the label substrings whose containing paragraphs are
// normalized to left alignment after substitution. Long substituted values
// otherwise drift under centered or justified template styles.
var leftBlockKeywords = []string{
	"Bill To",
	"Mobile No",
	"Address",
	"Email",
	"Project Name",
	"Company Name",
}

// Generate fills the template selected by the request's payment option and
// region and writes the finished invoice into opts.OutputDir. It returns
// the path of the generated document.
//
// Each call owns its document and placeholder map exclusively; nothing is
// shared across concurrent calls. Either a complete, fully substituted
// document is produced or nothing is written.
func Generate(req Request, opts Options) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	template, err := TemplateName(req.PaymentOption, req.Region, req.ServiceDescription)
	if err != nil {
		return "", err
	}

	installments, err := Split(req.Total, req.PaymentOption, req.Percentages)
	if err != nil {
		return "", err
	}

	placeholders := BuildPlaceholders(req, installments)

	doc, err := docx.Open(filepath.Join(opts.TemplateDir, template))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateEdit, err)
	}

	err = doc.Replace(placeholders, docx.ReplaceOptions{
		MergeRuns:         opts.MergeRuns,
		AlignLeftKeywords: leftBlockKeywords,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateEdit, err)
	}

	outPath := filepath.Join(opts.OutputDir, OutputFilename(req.ClientName, req.Date))
	if err := doc.Save(outPath); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateEdit, err)
	}

	return outPath, nil
}

// OutputFilename renders the invoice artifact name, e.g.
// "Invoice - Acme Ltd 05 Mar 2026.docx".
func OutputFilename(clientName string, date time.Time) string {
	return fmt.Sprintf("Invoice - %s %s.docx", clientName, date.Format("02 Jan 2006"))
}
