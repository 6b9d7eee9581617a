package gedcom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dhamidi/ged/gedcom/grammar"
)

// Level selects how strictly Validate judges a file.
type Level int

const (
	// Lenient fails only on lines that cannot be read at all.
	Lenient Level = iota
	// Strict also fails on structural repairs, dangling pointers,
	// encoding problems, unknown tags and lines outside the grammar.
	Strict
)

var ErrUnknownLevel = errors.New("unknown validation level")

func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lenient":
		return Lenient, nil
	case "strict":
		return Strict, nil
	}
	return Lenient, fmt.Errorf("%w: %s (expected: strict or lenient)", ErrUnknownLevel, s)
}

func (l Level) String() string {
	if l == Strict {
		return "strict"
	}
	return "lenient"
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(text []byte) error {
	v, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// Report is the outcome of validating one file.
type Report struct {
	Level    Level       `json:"level" yaml:"level"`
	Errors   Diagnostics `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings Diagnostics `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	// Fatal is set when the input could not be parsed at all.
	Fatal error `json:"-" yaml:"-"`
}

func (r *Report) ErrorCount() int {
	n := len(r.Errors)
	if r.Fatal != nil {
		n++
	}
	return n
}

func (r *Report) Failed() bool {
	return r.ErrorCount() > 0
}

func (r *Report) String() string {
	return fmt.Sprintf("Validation: %s - errors: %d, warnings: %d", r.Level, r.ErrorCount(), len(r.Warnings))
}

// Validate parses data and sorts the diagnostics into errors and warnings
// according to level.
func Validate(data []byte, level Level, opts ...Option) *Report {
	report := &Report{Level: level}
	doc, diags, err := Parse(data, opts...)
	if err != nil {
		report.Fatal = err
		return report
	}
	if level == Strict {
		diags = append(diags, grammarDiagnostics(data)...)
		diags = append(diags, frameDiagnostics(doc)...)
	}
	for _, d := range diags {
		switch {
		case d.Kind == KindMalformedLine, d.Kind == KindDanglingReference:
			report.Errors = append(report.Errors, d)
		case d.Kind == KindUnknownTag:
			if level == Strict {
				report.Errors = append(report.Errors, d)
			}
		case level == Strict:
			report.Errors = append(report.Errors, d)
		default:
			report.Warnings = append(report.Warnings, d)
		}
	}
	return report
}

// grammarDiagnostics reports xrefs and tags that the line reader accepted
// but that fall outside the GEDCOM grammar.
func grammarDiagnostics(data []byte) Diagnostics {
	lines, _ := Lines(data)
	var out Diagnostics
	for _, l := range lines {
		if l.Xref != "" && !grammar.MatchXref(l.Xref) {
			out = append(out, Diagnostic{
				Kind:    KindMalformedLine,
				Line:    l.Number,
				Text:    l.Raw,
				Tag:     l.Tag,
				Message: fmt.Sprintf("cross-reference %s is not well formed", l.Xref),
			})
		}
		if !grammar.MatchTag(l.Tag) {
			out = append(out, Diagnostic{
				Kind:    KindMalformedLine,
				Line:    l.Number,
				Text:    l.Raw,
				Tag:     l.Tag,
				Message: fmt.Sprintf("tag %s is not well formed", l.Tag),
			})
		}
	}
	return out
}

// frameDiagnostics checks that the file opens with HEAD and closes with
// TRLR.
func frameDiagnostics(doc *Document) Diagnostics {
	var out Diagnostics
	if len(doc.Records) == 0 || doc.Records[0].Kind() != HeaderRecord {
		out = append(out, Diagnostic{Kind: KindMalformedLine, Line: 1, Message: "file does not start with a HEAD record"})
	}
	if len(doc.Records) == 0 || doc.Records[len(doc.Records)-1].Kind() != TrailerRecord {
		out = append(out, Diagnostic{Kind: KindMalformedLine, Message: "file does not end with a TRLR record"})
	}
	return out
}
