package invoice

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Akshara-Amirtharaj/Invoice-Generator/docx"
)

// writeTestTemplate creates a minimal DOCX template under dir.
func writeTestTemplate(t *testing.T, dir, name, bodyXML string) {
	t.Helper()

	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("failed to create template: %v", err)
	}

	zw := zip.NewWriter(f)

	contentTypes := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`
	w, _ := zw.Create("[Content_Types].xml")
	w.Write([]byte(contentTypes))

	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>` + bodyXML + `</w:body>
</w:document>`
	w, _ = zw.Create("word/document.xml")
	w.Write([]byte(document))

	zw.Close()
	f.Close()
}

func TestGenerate_TwoParts(t *testing.T) {
	templateDir := t.TempDir()
	outputDir := t.TempDir()

	writeTestTemplate(t, templateDir, "Two Parts Payment ROW.docx",
		`<w:p><w:r><w:t>Bill To: << Client Name >></w:t></w:r></w:p>`+
			`<w:p><w:r><w:t>Total: <<Price>> due << Date >></w:t></w:r></w:p>`+
			`<w:tbl><w:tr>`+
			`<w:tc><w:p><w:r><w:t>First (<<P1>>)</w:t></w:r></w:p></w:tc>`+
			`<w:tc><w:p><w:r><w:t><<Price1>></w:t></w:r></w:p></w:tc>`+
			`</w:tr><w:tr>`+
			`<w:tc><w:p><w:r><w:t>Second (<<P2>>)</w:t></w:r></w:p></w:tc>`+
			`<w:tc><w:p><w:r><w:t><<Price2>></w:t></w:r></w:p></w:tc>`+
			`</w:tr></w:tbl>`)

	req := testRequest(t)
	req.PaymentOption = TwoParts
	req.Percentages = []decimal.Decimal{decimal.NewFromInt(33)}

	path, err := Generate(req, Options{TemplateDir: templateDir, OutputDir: outputDir})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	wantName := "Invoice - Acme Ltd 05 Mar 2026.docx"
	if filepath.Base(path) != wantName {
		t.Errorf("output filename = %q, want %q", filepath.Base(path), wantName)
	}

	doc, err := docx.Open(path)
	if err != nil {
		t.Fatalf("failed to open generated invoice: %v", err)
	}

	text, err := doc.Text()
	if err != nil {
		t.Fatalf("Text failed: %v", err)
	}
	if !strings.Contains(text, "Bill To: Acme Ltd") {
		t.Errorf("client name not substituted: %q", text)
	}
	if !strings.Contains(text, "Total: 1000 USD due 05/03/2026") {
		t.Errorf("total or date not substituted: %q", text)
	}

	tables, err := doc.Tables()
	if err != nil {
		t.Fatalf("Tables failed: %v", err)
	}
	got := tables[0]
	if c := got.Rows[0].Cells[0].Text(); c != "First (33%)" {
		t.Errorf("first percentage cell = %q", c)
	}
	if c := got.Rows[0].Cells[1].Text(); c != "330 USD" {
		t.Errorf("first price cell = %q", c)
	}
	if c := got.Rows[1].Cells[0].Text(); c != "Second (67%)" {
		t.Errorf("second percentage cell = %q", c)
	}
	if c := got.Rows[1].Cells[1].Text(); c != "670 USD" {
		t.Errorf("second price cell = %q", c)
	}
}

func TestGenerate_OnePartNoService(t *testing.T) {
	templateDir := t.TempDir()
	outputDir := t.TempDir()

	// Only the "no service" variant exists; selecting any other template
	// would fail the generation.
	writeTestTemplate(t, templateDir, "One Part Payment ROW no service.docx",
		`<w:p><w:r><w:t><< Client Name >> owes <<Price>></w:t></w:r></w:p>`)

	req := testRequest(t)
	req.Total = decimal.RequireFromString("999.99")
	req.ServiceDescription = "   "

	path, err := Generate(req, Options{TemplateDir: templateDir, OutputDir: outputDir})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	doc, err := docx.Open(path)
	if err != nil {
		t.Fatalf("failed to open generated invoice: %v", err)
	}
	text, _ := doc.Text()
	if text != "Acme Ltd owes 999.99 USD" {
		t.Errorf("unexpected invoice text: %q", text)
	}
}

func TestGenerate_ForcesLeftAlignment(t *testing.T) {
	templateDir := t.TempDir()
	outputDir := t.TempDir()

	writeTestTemplate(t, templateDir, "One Part Payment INDIA.docx",
		`<w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:t>Company Name: <<Company Name>></w:t></w:r></w:p>`)

	req := testRequest(t)
	req.Region = RegionIndia
	req.Currency = CurrencyRupees
	req.ServiceDescription = "Consulting retainer"

	path, err := Generate(req, Options{TemplateDir: templateDir, OutputDir: outputDir})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	doc, err := docx.Open(path)
	if err != nil {
		t.Fatalf("failed to open generated invoice: %v", err)
	}
	paras, err := doc.Paragraphs()
	if err != nil {
		t.Fatalf("Paragraphs failed: %v", err)
	}
	if paras[0].Alignment != "left" {
		t.Errorf("left-block paragraph alignment = %q, want left", paras[0].Alignment)
	}
	if paras[0].Text != "Company Name: Acme Holdings" {
		t.Errorf("unexpected paragraph text: %q", paras[0].Text)
	}
}

func TestGenerate_TemplateMissing(t *testing.T) {
	req := testRequest(t)
	req.ServiceDescription = "anything"

	_, err := Generate(req, Options{TemplateDir: t.TempDir(), OutputDir: t.TempDir()})
	if !errors.Is(err, ErrTemplateEdit) {
		t.Errorf("expected ErrTemplateEdit, got %v", err)
	}
}

func TestGenerate_InvalidRequest(t *testing.T) {
	req := testRequest(t)
	req.Region = "EU"

	_, err := Generate(req, Options{TemplateDir: t.TempDir(), OutputDir: t.TempDir()})
	if !errors.Is(err, ErrUnknownRegion) {
		t.Errorf("expected ErrUnknownRegion, got %v", err)
	}
}

func TestOutputFilename(t *testing.T) {
	date := time.Date(2026, time.January, 9, 0, 0, 0, 0, time.UTC)
	got := OutputFilename("Acme Ltd", date)
	want := "Invoice - Acme Ltd 09 Jan 2026.docx"
	if got != want {
		t.Errorf("OutputFilename = %q, want %q", got, want)
	}
}
