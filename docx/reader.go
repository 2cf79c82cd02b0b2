package docx

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// Run is the smallest unit of paragraph text carrying its own formatting.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
}

// Paragraph is a parsed block-level text container.
type Paragraph struct {
	Text      string
	StyleID   string
	Alignment string // w:jc value; empty when inherited from the style
	Runs      []Run
}

// Cell is a parsed table cell.
type Cell struct {
	Paragraphs []Paragraph
}

// Text returns the cell content with paragraphs joined by newlines.
func (c Cell) Text() string {
	parts := make([]string, 0, len(c.Paragraphs))
	for _, p := range c.Paragraphs {
		parts = append(parts, p.Text)
	}
	return strings.Join(parts, "\n")
}

// Row is a parsed table row.
type Row struct {
	Cells []Cell
}

// Table is a parsed table.
type Table struct {
	Rows []Row
}

// parse unmarshals the current document body. The body is re-parsed on every
// call because Replace mutates it.
func (d *Document) parse() (*documentXML, error) {
	doc := &documentXML{}
	if err := xml.Unmarshal(d.body, doc); err != nil {
		return nil, fmt.Errorf("unmarshaling %s: %w", documentPart, err)
	}
	return doc, nil
}

// Paragraphs returns the document's free-standing paragraphs in order.
// Paragraphs inside table cells are reachable via Tables.
func (d *Document) Paragraphs() ([]Paragraph, error) {
	doc, err := d.parse()
	if err != nil {
		return nil, err
	}
	if doc.Body == nil {
		return nil, nil
	}

	paragraphs := make([]Paragraph, 0, len(doc.Body.Paragraphs))
	for _, p := range doc.Body.Paragraphs {
		paragraphs = append(paragraphs, processParagraph(p))
	}
	return paragraphs, nil
}

// Tables returns the document's tables in order, preserving row-major,
// column-major cell order.
func (d *Document) Tables() ([]Table, error) {
	doc, err := d.parse()
	if err != nil {
		return nil, err
	}
	if doc.Body == nil {
		return nil, nil
	}

	tables := make([]Table, 0, len(doc.Body.Tables))
	for _, t := range doc.Body.Tables {
		table := Table{Rows: make([]Row, 0, len(t.Rows))}
		for _, r := range t.Rows {
			row := Row{Cells: make([]Cell, 0, len(r.Cells))}
			for _, c := range r.Cells {
				cell := Cell{Paragraphs: make([]Paragraph, 0, len(c.Paragraphs))}
				for _, p := range c.Paragraphs {
					cell.Paragraphs = append(cell.Paragraphs, processParagraph(p))
				}
				row.Cells = append(row.Cells, cell)
			}
			table.Rows = append(table.Rows, row)
		}
		tables = append(tables, table)
	}
	return tables, nil
}

// Text extracts all free-paragraph text from the document.
func (d *Document) Text() (string, error) {
	paragraphs, err := d.Paragraphs()
	if err != nil {
		return "", err
	}

	var result strings.Builder
	for i, para := range paragraphs {
		if i > 0 {
			result.WriteString("\n")
		}
		result.WriteString(para.Text)
	}
	return result.String(), nil
}

// processParagraph converts a raw paragraph element into its parsed form.
func processParagraph(p paragraphXML) Paragraph {
	parsed := Paragraph{
		StyleID:   p.Properties.Style.Val,
		Alignment: p.Properties.Justification.Val,
	}

	var textParts []string
	for _, run := range p.Runs {
		runText := extractRunText(run)
		if runText == "" {
			continue
		}
		textParts = append(textParts, runText)
		parsed.Runs = append(parsed.Runs, Run{
			Text:   runText,
			Bold:   run.Properties.Bold.Val != "false" && run.Properties.Bold.XMLName.Local != "",
			Italic: run.Properties.Italic.Val != "false" && run.Properties.Italic.XMLName.Local != "",
		})
	}
	parsed.Text = strings.Join(textParts, "")

	return parsed
}

// extractRunText extracts text from a run element.
func extractRunText(run runXML) string {
	var parts []string

	for _, t := range run.Text {
		parts = append(parts, t.Value)
	}

	// Handle tab characters
	for range run.Tabs {
		parts = append(parts, "\t")
	}

	// Handle breaks
	for _, br := range run.Breaks {
		if br.Type == "page" {
			parts = append(parts, "\n\n")
		} else {
			parts = append(parts, "\n")
		}
	}

	return strings.Join(parts, "")
}
