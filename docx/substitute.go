package docx

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ReplaceOptions controls placeholder substitution.
type ReplaceOptions struct {
	// MergeRuns consolidates a paragraph's text into its dominant run when a
	// placeholder matches the paragraph text but spans a run boundary. The
	// spanning runs lose their individual formatting in exchange for a
	// guaranteed substitution. When false, such placeholders are left as-is:
	// a placeholder must lie wholly inside one run to be replaced.
	MergeRuns bool

	// AlignLeftKeywords lists label substrings that force their containing
	// paragraph to left alignment, with any left or first-line indent
	// override cleared, after substitution. This repairs alignment drift
	// when substituted values push content that inherited a centered or
	// justified template style.
	AlignLeftKeywords []string
}

// Replace substitutes placeholder text throughout the document: every
// free-standing paragraph first, then every paragraph inside every table
// cell in row-major, column-major order. Replacement is run-scoped, so all
// run formatting survives untouched. The engine never adds or removes runs,
// paragraphs, rows, or cells; it mutates run text and, for paragraphs
// matching AlignLeftKeywords, a bounded set of alignment and indent
// properties.
func (d *Document) Replace(placeholders map[string]string, opts ReplaceOptions) error {
	if len(placeholders) == 0 && len(opts.AlignLeftKeywords) == 0 {
		return nil
	}

	// Deterministic key order; map iteration order is randomized.
	keys := make([]string, 0, len(placeholders))
	for k := range placeholders {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	body := d.body
	var out bytes.Buffer
	out.Grow(len(body))

	pos := 0
	for pos < len(body) {
		m, ok := findTag(body, "w:p", pos)
		if !ok {
			out.Write(body[pos:])
			break
		}
		if m.closing {
			return fmt.Errorf("malformed %s: unexpected </w:p>", documentPart)
		}
		start, end, ok := elementSpan(body, "w:p", m)
		if !ok {
			return fmt.Errorf("malformed %s: unterminated <w:p>", documentPart)
		}
		out.Write(body[pos:start])

		edited, err := replaceInParagraph(body[start:end], keys, placeholders, opts)
		if err != nil {
			return err
		}
		out.Write(edited)
		pos = end
	}

	d.body = out.Bytes()
	return nil
}

// tagMatch locates one XML tag inside a byte slice.
type tagMatch struct {
	start, end int  // [start,end) of the full tag text
	closing    bool // </name>
	selfClosed bool // <name/>
}

// tagBoundary reports whether c can follow a tag name.
func tagBoundary(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '>' || c == '/'
}

// findTag finds the next opening or closing tag with the given name at or
// after from. The name must be followed by a boundary character, so a search
// for "w:p" never matches "w:pPr".
func findTag(b []byte, name string, from int) (tagMatch, bool) {
	open := []byte("<" + name)
	clos := []byte("</" + name)

	for i := from; i < len(b); {
		j := bytes.IndexByte(b[i:], '<')
		if j < 0 {
			return tagMatch{}, false
		}
		p := i + j

		if hasTagPrefix(b, p, clos) {
			end := bytes.IndexByte(b[p:], '>')
			if end < 0 {
				return tagMatch{}, false
			}
			return tagMatch{start: p, end: p + end + 1, closing: true}, true
		}
		if hasTagPrefix(b, p, open) {
			end := bytes.IndexByte(b[p:], '>')
			if end < 0 {
				return tagMatch{}, false
			}
			m := tagMatch{start: p, end: p + end + 1}
			if b[p+end-1] == '/' {
				m.selfClosed = true
			}
			return m, true
		}
		i = p + 1
	}
	return tagMatch{}, false
}

// hasTagPrefix reports whether b[pos:] starts with prefix followed by a tag
// boundary character.
func hasTagPrefix(b []byte, pos int, prefix []byte) bool {
	if !bytes.HasPrefix(b[pos:], prefix) {
		return false
	}
	next := pos + len(prefix)
	return next < len(b) && tagBoundary(b[next])
}

// elementSpan returns the byte range of the element whose opening tag is m,
// accounting for nested elements of the same name.
func elementSpan(b []byte, name string, m tagMatch) (int, int, bool) {
	if m.selfClosed {
		return m.start, m.end, true
	}
	depth := 1
	pos := m.end
	for depth > 0 {
		t, ok := findTag(b, name, pos)
		if !ok {
			return 0, 0, false
		}
		if t.closing {
			depth--
		} else if !t.selfClosed {
			depth++
		}
		pos = t.end
	}
	return m.start, pos, true
}

// textSpan locates one <w:t> element inside a paragraph and carries its
// pending replacement text.
type textSpan struct {
	tagStart   int // '<' of the opening (or self-closing) tag
	tagEnd     int // just past '>' of the opening tag
	contentEnd int // start of </w:t>; equals tagEnd for self-closing tags
	selfClosed bool
	text       string // unescaped original text
	newText    string // pending text after substitution
}

// runSpan locates one <w:r> element inside a paragraph.
type runSpan struct {
	start, end int
	texts      []textSpan
}

// text returns the run's current (pending) text.
func (r *runSpan) text() string {
	var sb strings.Builder
	for i := range r.texts {
		sb.WriteString(r.texts[i].newText)
	}
	return sb.String()
}

// edit is one pending byte splice, [start,end) replaced by repl.
type edit struct {
	start, end int
	repl       []byte
}

// replaceInParagraph applies run-scoped substitution and left-alignment
// normalization to a single <w:p> element and returns the edited bytes.
func replaceInParagraph(p []byte, keys []string, placeholders map[string]string, opts ReplaceOptions) ([]byte, error) {
	open, ok := findTag(p, "w:p", 0)
	if !ok || open.closing {
		return nil, fmt.Errorf("malformed %s: not a paragraph element", documentPart)
	}
	if open.selfClosed {
		return p, nil
	}

	runs, err := parseRuns(p)
	if err != nil {
		return nil, err
	}

	for _, key := range keys {
		if !strings.Contains(paragraphText(runs), key) {
			continue
		}
		val := placeholders[key]

		inRun := false
		for ri := range runs {
			if !strings.Contains(runs[ri].text(), key) {
				continue
			}
			inRun = true
			replaceInRun(&runs[ri], key, val, opts.MergeRuns)
		}

		if !inRun && opts.MergeRuns {
			mergeParagraphRuns(runs, key, val)
		}
	}

	var edits []edit
	for ri := range runs {
		appendTextEdits(p, &runs[ri], &edits)
	}

	if matchesKeyword(paragraphText(runs), opts.AlignLeftKeywords) {
		if err := appendAlignmentEdits(p, open.end, &edits); err != nil {
			return nil, err
		}
	}

	return applyEdits(p, edits), nil
}

// replaceInRun substitutes key inside one run. Replacement happens per
// <w:t> element; a key spanning two <w:t> elements of the same run is only
// substituted in merge mode, by consolidating the run's text into its first
// <w:t>.
func replaceInRun(r *runSpan, key, val string, merge bool) {
	hit := false
	for ti := range r.texts {
		if strings.Contains(r.texts[ti].newText, key) {
			r.texts[ti].newText = strings.ReplaceAll(r.texts[ti].newText, key, val)
			hit = true
		}
	}
	if hit || !merge || len(r.texts) == 0 {
		return
	}

	whole := r.text()
	for ti := range r.texts {
		r.texts[ti].newText = ""
	}
	r.texts[0].newText = strings.ReplaceAll(whole, key, val)
}

// mergeParagraphRuns consolidates the paragraph's text into its dominant run
// (the one with the most text) and substitutes key there. Used when a key
// matches the paragraph but straddles a run boundary.
func mergeParagraphRuns(runs []runSpan, key, val string) {
	dominant := -1
	longest := -1
	for ri := range runs {
		if len(runs[ri].texts) == 0 {
			continue
		}
		if n := len(runs[ri].text()); n > longest {
			longest = n
			dominant = ri
		}
	}
	if dominant < 0 {
		return
	}

	whole := paragraphText(runs)
	for ri := range runs {
		for ti := range runs[ri].texts {
			runs[ri].texts[ti].newText = ""
		}
	}
	runs[dominant].texts[0].newText = strings.ReplaceAll(whole, key, val)
}

// paragraphText returns the paragraph's current (pending) text.
func paragraphText(runs []runSpan) string {
	var sb strings.Builder
	for ri := range runs {
		for ti := range runs[ri].texts {
			sb.WriteString(runs[ri].texts[ti].newText)
		}
	}
	return sb.String()
}

// matchesKeyword reports whether text contains any of the keywords.
func matchesKeyword(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// parseRuns locates every <w:r> element in a paragraph along with its <w:t>
// elements. Offsets are relative to the paragraph slice.
func parseRuns(p []byte) ([]runSpan, error) {
	var runs []runSpan

	pos := 0
	for {
		m, ok := findTag(p, "w:r", pos)
		if !ok {
			return runs, nil
		}
		if m.closing {
			return nil, fmt.Errorf("malformed %s: unexpected </w:r>", documentPart)
		}
		start, end, ok := elementSpan(p, "w:r", m)
		if !ok {
			return nil, fmt.Errorf("malformed %s: unterminated <w:r>", documentPart)
		}

		run := runSpan{start: start, end: end}
		tpos := m.end
		for tpos < end {
			t, ok := findTag(p[:end], "w:t", tpos)
			if !ok {
				break
			}
			if t.closing {
				tpos = t.end
				continue
			}
			span := textSpan{tagStart: t.start, tagEnd: t.end, selfClosed: t.selfClosed}
			if t.selfClosed {
				span.contentEnd = t.end
				tpos = t.end
			} else {
				c, ok := findTag(p[:end], "w:t", t.end)
				if !ok || !c.closing {
					return nil, fmt.Errorf("malformed %s: unterminated <w:t>", documentPart)
				}
				span.contentEnd = c.start
				span.text = unescapeXML(string(p[t.end:c.start]))
				tpos = c.end
			}
			span.newText = span.text
			run.texts = append(run.texts, span)
		}

		runs = append(runs, run)
		pos = end
	}
}

// appendTextEdits emits byte splices for every <w:t> whose text changed.
func appendTextEdits(p []byte, r *runSpan, edits *[]edit) {
	for ti := range r.texts {
		t := &r.texts[ti]
		if t.newText == t.text {
			continue
		}

		escaped := escapeXML(t.newText)
		openTag := p[t.tagStart:t.tagEnd]

		if t.selfClosed {
			// <w:t/> becomes <w:t>new</w:t>; nothing to do when the
			// replacement is also empty.
			if t.newText == "" {
				continue
			}
			tag := expandSelfClosing(openTag, t.newText)
			*edits = append(*edits, edit{
				start: t.tagStart,
				end:   t.contentEnd,
				repl:  append(tag, append([]byte(escaped), []byte("</w:t>")...)...),
			})
			continue
		}

		if needsSpacePreserve(t.newText) && !bytes.Contains(openTag, []byte("xml:space")) {
			tag := append([]byte{}, openTag[:len(openTag)-1]...)
			tag = append(tag, []byte(` xml:space="preserve">`)...)
			*edits = append(*edits, edit{start: t.tagStart, end: t.tagEnd, repl: tag})
		}
		*edits = append(*edits, edit{start: t.tagEnd, end: t.contentEnd, repl: []byte(escaped)})
	}
}

// expandSelfClosing rewrites a self-closing <w:t .../> opening tag into an
// open tag, adding xml:space when the new text needs it.
func expandSelfClosing(tag []byte, newText string) []byte {
	// Strip the trailing "/>", keeping any attributes.
	body := bytes.TrimRight(tag[:len(tag)-2], " \t")
	out := append([]byte{}, body...)
	if needsSpacePreserve(newText) && !bytes.Contains(tag, []byte("xml:space")) {
		out = append(out, []byte(` xml:space="preserve"`)...)
	}
	return append(out, '>')
}

// needsSpacePreserve reports whether text would lose whitespace without
// xml:space="preserve".
func needsSpacePreserve(text string) bool {
	return text != strings.TrimSpace(text)
}

// appendAlignmentEdits forces the paragraph to left alignment and clears
// left and first-line indent overrides. openEnd is the position just past
// the paragraph's opening tag.
func appendAlignmentEdits(p []byte, openEnd int, edits *[]edit) error {
	pprOpen, ok := paragraphProps(p, openEnd)
	if !ok {
		// No properties element at all: insert one carrying the alignment.
		*edits = append(*edits, edit{
			start: openEnd,
			end:   openEnd,
			repl:  []byte(`<w:pPr><w:jc w:val="left"/></w:pPr>`),
		})
		return nil
	}

	if pprOpen.selfClosed {
		*edits = append(*edits, edit{
			start: pprOpen.start,
			end:   pprOpen.end,
			repl:  []byte(`<w:pPr><w:jc w:val="left"/></w:pPr>`),
		})
		return nil
	}

	clos, ok := findTag(p, "w:pPr", pprOpen.end)
	if !ok || !clos.closing {
		return fmt.Errorf("malformed %s: unterminated <w:pPr>", documentPart)
	}

	// Force alignment: rewrite an existing <w:jc/>, or insert one before the
	// closing tag.
	if jc, ok := findTag(p[:clos.start], "w:jc", pprOpen.end); ok && !jc.closing {
		*edits = append(*edits, edit{start: jc.start, end: jc.end, repl: []byte(`<w:jc w:val="left"/>`)})
	} else {
		*edits = append(*edits, edit{start: clos.start, end: clos.start, repl: []byte(`<w:jc w:val="left"/>`)})
	}

	// Clear left and first-line indent overrides, dropping the element when
	// nothing else remains.
	if ind, ok := findTag(p[:clos.start], "w:ind", pprOpen.end); ok && !ind.closing {
		stripped := stripIndentOverrides(p[ind.start:ind.end])
		*edits = append(*edits, edit{start: ind.start, end: ind.end, repl: stripped})
	}

	return nil
}

// paragraphProps finds the paragraph's own <w:pPr>, which must be the first
// child element. A flat search could wrongly pick up properties of a
// paragraph nested inside a drawing's text box.
func paragraphProps(p []byte, openEnd int) (tagMatch, bool) {
	i := openEnd
	for i < len(p) && (p[i] == ' ' || p[i] == '\t' || p[i] == '\r' || p[i] == '\n') {
		i++
	}
	if !hasTagPrefix(p, i, []byte("<w:pPr")) {
		return tagMatch{}, false
	}
	m, ok := findTag(p, "w:pPr", i)
	if !ok || m.closing || m.start != i {
		return tagMatch{}, false
	}
	return m, true
}

// stripIndentOverrides removes the left, start, and firstLine attributes
// from a self-closing <w:ind/> tag. Returns nil when no attribute survives,
// which deletes the element.
func stripIndentOverrides(tag []byte) []byte {
	inner := strings.TrimSuffix(strings.TrimPrefix(string(tag), "<w:ind"), "/>")
	dropped := map[string]bool{"w:left": true, "w:start": true, "w:firstLine": true}

	var kept []string
	for _, attr := range strings.Fields(inner) {
		name, _, ok := strings.Cut(attr, "=")
		if ok && dropped[name] {
			continue
		}
		kept = append(kept, attr)
	}
	if len(kept) == 0 {
		return nil
	}
	return []byte("<w:ind " + strings.Join(kept, " ") + "/>")
}

// applyEdits splices the pending edits into p. Edits never overlap: text
// edits live inside runs, alignment edits inside the leading <w:pPr>.
func applyEdits(p []byte, edits []edit) []byte {
	if len(edits) == 0 {
		return p
	}
	sort.Slice(edits, func(i, j int) bool { return edits[i].start < edits[j].start })

	var out bytes.Buffer
	out.Grow(len(p) + 64)
	pos := 0
	for _, e := range edits {
		out.Write(p[pos:e.start])
		out.Write(e.repl)
		pos = e.end
	}
	out.Write(p[pos:])
	return out.Bytes()
}

// escapeXML escapes text for use as XML character data.
func escapeXML(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch r {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// unescapeXML resolves the predefined XML entities and numeric character
// references in character data.
func unescapeXML(s string) string {
	if !strings.ContainsRune(s, '&') {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '&' {
			sb.WriteByte(s[i])
			i++
			continue
		}
		end := strings.IndexByte(s[i:], ';')
		if end < 0 {
			sb.WriteString(s[i:])
			break
		}
		entity := s[i+1 : i+end]
		switch {
		case entity == "amp":
			sb.WriteByte('&')
		case entity == "lt":
			sb.WriteByte('<')
		case entity == "gt":
			sb.WriteByte('>')
		case entity == "quot":
			sb.WriteByte('"')
		case entity == "apos":
			sb.WriteByte('\'')
		case strings.HasPrefix(entity, "#x") || strings.HasPrefix(entity, "#X"):
			if n, err := strconv.ParseInt(entity[2:], 16, 32); err == nil {
				sb.WriteRune(rune(n))
			} else {
				sb.WriteString(s[i : i+end+1])
			}
		case strings.HasPrefix(entity, "#"):
			if n, err := strconv.ParseInt(entity[1:], 10, 32); err == nil {
				sb.WriteRune(rune(n))
			} else {
				sb.WriteString(s[i : i+end+1])
			}
		default:
			sb.WriteString(s[i : i+end+1])
		}
		i += end + 1
	}
	return sb.String()
}
