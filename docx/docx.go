// Package docx reads, edits, and writes DOCX (Office Open XML) documents.
//
// The package is built for template filling: placeholder text inside
// paragraph runs is replaced in place, and every byte the substitution does
// not touch survives a round trip exactly. Fonts, styles, numbering, images,
// headers, and all other archive parts are carried through unmodified.
//
// Basic usage:
//
//	doc, err := docx.Open("template.docx")
//	if err != nil {
//	    // handle error
//	}
//	err = doc.Replace(map[string]string{"<<Name>>": "Acme Ltd"}, docx.ReplaceOptions{})
//	if err != nil {
//	    // handle error
//	}
//	err = doc.Save("out.docx")
package docx

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
)

// documentPart is the archive entry holding the main document body.
const documentPart = "word/document.xml"

// part is a single file inside the DOCX archive.
type part struct {
	name string
	data []byte
}

// Document is an editable DOCX document held fully in memory.
// word/document.xml is the only part Replace ever touches; all other parts
// are written back byte-identical by Save.
//
// A Document is exclusively owned by one generation request from Open
// through Save. It is not safe for concurrent use.
type Document struct {
	parts []part
	body  []byte // current content of word/document.xml
}

// Open reads a DOCX file into memory.
func Open(filename string) (*Document, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	defer zr.Close()

	d := &Document{parts: make([]part, 0, len(zr.File))}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening archive part %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading archive part %s: %w", f.Name, err)
		}
		d.parts = append(d.parts, part{name: f.Name, data: data})
		if f.Name == documentPart {
			d.body = data
		}
	}

	if err := d.validate(); err != nil {
		return nil, err
	}

	return d, nil
}

// validate checks that required DOCX parts exist.
func (d *Document) validate() error {
	required := []string{
		"[Content_Types].xml",
		documentPart,
	}

	have := make(map[string]bool, len(d.parts))
	for _, p := range d.parts {
		have[p.name] = true
	}

	for _, name := range required {
		if !have[name] {
			return fmt.Errorf("missing required file: %s", name)
		}
	}

	return nil
}

// Save writes the document to filename. On any failure the output file is
// removed, so a partially written document is never left behind.
func (d *Document) Save(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	fail := func(err error) error {
		f.Close()
		os.Remove(filename)
		return err
	}

	zw := zip.NewWriter(f)
	for _, p := range d.parts {
		data := p.data
		if p.name == documentPart {
			data = d.body
		}
		w, err := zw.Create(p.name)
		if err != nil {
			return fail(fmt.Errorf("creating archive part %s: %w", p.name, err))
		}
		if _, err := w.Write(data); err != nil {
			return fail(fmt.Errorf("writing archive part %s: %w", p.name, err))
		}
	}
	if err := zw.Close(); err != nil {
		return fail(fmt.Errorf("finalizing archive: %w", err))
	}
	if err := f.Close(); err != nil {
		os.Remove(filename)
		return fmt.Errorf("closing output file: %w", err)
	}

	return nil
}
