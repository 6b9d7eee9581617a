package lsp

import (
	"fmt"
	"strings"
	"unicode/utf16"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/ged/format"
	"github.com/dhamidi/ged/gedcom"
)

const sourceName = "ged"

// diagnostics converts parse diagnostics to protocol diagnostics. Each
// one covers the whole line it was reported on.
func diagnostics(e *Entry) []protocol.Diagnostic {
	lines := splitLines(e.Text)
	out := []protocol.Diagnostic{}
	if e.Fatal != nil {
		out = append(out, protocol.Diagnostic{
			Range:    lineRange(lines, 0),
			Severity: severityPtr(protocol.DiagnosticSeverityError),
			Source:   strPtr(sourceName),
			Message:  e.Fatal.Error(),
		})
		return out
	}
	for _, d := range e.Diagnostics {
		line := d.Line - 1
		if line < 0 {
			line = 0
		}
		code := protocol.IntegerOrString{Value: d.Kind.String()}
		out = append(out, protocol.Diagnostic{
			Range:    lineRange(lines, line),
			Severity: severityPtr(toSeverity(d.Severity())),
			Code:     &code,
			Source:   strPtr(sourceName),
			Message:  d.Message,
		})
	}
	return out
}

func toSeverity(s gedcom.Severity) protocol.DiagnosticSeverity {
	switch s {
	case gedcom.SeverityError:
		return protocol.DiagnosticSeverityError
	case gedcom.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityInformation
	}
}

// pointerAt returns the @xref@ field under the cursor, or "".
func pointerAt(text string, pos protocol.Position) string {
	lines := splitLines(text)
	if int(pos.Line) >= len(lines) {
		return ""
	}
	line := lines[pos.Line]
	col := byteOffset(line, int(pos.Character))

	start := col
	for start > 0 && !isSpace(line[start-1]) {
		start--
	}
	end := col
	for end < len(line) && !isSpace(line[end]) {
		end++
	}
	if field := line[start:end]; gedcom.IsPointer(field) {
		return field
	}
	return ""
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

// declaration finds the level 0 line declaring xref.
func declaration(text, xref string) (int, bool) {
	for i, line := range splitLines(text) {
		l, err := gedcom.Tokenize(line, i+1)
		if err != nil || l.Level != 0 {
			continue
		}
		if l.Xref == xref {
			return i, true
		}
	}
	return 0, false
}

func definition(e *Entry, uri string, pos protocol.Position) *protocol.Location {
	xref := pointerAt(e.Text, pos)
	if xref == "" {
		return nil
	}
	line, ok := declaration(e.Text, xref)
	if !ok {
		return nil
	}
	return &protocol.Location{
		URI:   uri,
		Range: lineRange(splitLines(e.Text), line),
	}
}

func hover(e *Entry, pos protocol.Position) *protocol.Hover {
	if e.Doc == nil {
		return nil
	}
	xref := pointerAt(e.Text, pos)
	if xref == "" {
		return nil
	}
	r, ok := e.Doc.Resolve(xref)
	if !ok {
		return &protocol.Hover{Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: fmt.Sprintf("`%s` is not declared in this file", xref),
		}}
	}
	return &protocol.Hover{Contents: protocol.MarkupContent{
		Kind:  protocol.MarkupKindMarkdown,
		Value: summary(r),
	}}
}

func summary(r gedcom.Record) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s** `%s`", r.Kind(), r.XrefID())
	if label := format.Label(r); label != "" {
		fmt.Fprintf(&sb, "\n\n%s", label)
	}
	if indi, ok := r.(*gedcom.Individual); ok {
		if b := indi.Birth(); b != nil && b.Date != "" {
			fmt.Fprintf(&sb, "\n\nborn %s", b.Date)
		}
		if d := indi.Death(); d != nil && d.Date != "" {
			fmt.Fprintf(&sb, "\n\ndied %s", d.Date)
		}
	}
	return sb.String()
}

// symbols lists one symbol per top-level record, spanning from its level 0
// line to the line before the next one.
func symbols(e *Entry) []protocol.DocumentSymbol {
	lines := splitLines(e.Text)
	out := []protocol.DocumentSymbol{}
	for i, text := range lines {
		l, err := gedcom.Tokenize(text, i+1)
		if err != nil || l.Level != 0 {
			continue
		}
		if n := len(out); n > 0 {
			out[n-1].Range.End = endOf(lines, i-1)
		}
		name, detail := l.Tag, l.Xref
		if r := recordFor(e.Doc, l); r != nil {
			if label := format.Label(r); label != "" {
				name = label
			}
			detail = strings.TrimSpace(l.Xref + " " + r.Kind().String())
		}
		sel := lineRange(lines, i)
		out = append(out, protocol.DocumentSymbol{
			Name:           name,
			Detail:         strPtr(detail),
			Kind:           symbolKind(l.Tag),
			Range:          sel,
			SelectionRange: sel,
		})
	}
	if n := len(out); n > 0 {
		out[n-1].Range.End = endOf(lines, len(lines)-1)
	}
	return out
}

func recordFor(doc *gedcom.Document, l gedcom.Line) gedcom.Record {
	if doc == nil {
		return nil
	}
	if l.Xref != "" {
		if r, ok := doc.Resolve(l.Xref); ok {
			return r
		}
		return nil
	}
	if gedcom.CanonicalTag(l.Tag) == "HEAD" {
		if h := doc.Header(); h != nil {
			return h
		}
	}
	return nil
}

func symbolKind(tag string) protocol.SymbolKind {
	switch gedcom.CanonicalTag(tag) {
	case "INDI", "SUBM":
		return protocol.SymbolKindObject
	case "FAM":
		return protocol.SymbolKindStruct
	case "SOUR", "REPO", "OBJE":
		return protocol.SymbolKindFile
	case "NOTE":
		return protocol.SymbolKindString
	case "HEAD", "TRLR", "SUBN":
		return protocol.SymbolKindNamespace
	default:
		return protocol.SymbolKindKey
	}
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

func lineRange(lines []string, line int) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: protocol.UInteger(line)},
		End:   endOf(lines, line),
	}
}

func endOf(lines []string, line int) protocol.Position {
	if line < 0 || line >= len(lines) {
		return protocol.Position{Line: protocol.UInteger(max(line, 0))}
	}
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(utf16Len(lines[line])),
	}
}

func utf16Len(s string) int {
	return len(utf16.Encode([]rune(s)))
}

// byteOffset converts a UTF-16 column to a byte offset into line.
func byteOffset(line string, col int) int {
	units := 0
	for i, r := range line {
		if units >= col {
			return i
		}
		units += len(utf16.Encode([]rune{r}))
	}
	return len(line)
}

func strPtr(s string) *string {
	return &s
}

func severityPtr(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}
