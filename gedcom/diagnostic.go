package gedcom

import (
	"fmt"
	"sort"
	"strings"
)

type DiagnosticKind int

const (
	KindMalformedLine DiagnosticKind = iota
	KindStructuralSkew
	KindUnknownTag
	KindDanglingReference
	KindEncodingMismatch
)

var diagnosticKindNames = map[DiagnosticKind]string{
	KindMalformedLine:     "malformed-line",
	KindStructuralSkew:    "structural-skew",
	KindUnknownTag:        "unknown-tag",
	KindDanglingReference: "dangling-reference",
	KindEncodingMismatch:  "encoding-mismatch",
}

func (k DiagnosticKind) String() string {
	if name, ok := diagnosticKindNames[k]; ok {
		return name
	}
	return "unknown"
}

func (k DiagnosticKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Severity is the default severity of a diagnostic kind.
func (k DiagnosticKind) Severity() Severity {
	switch k {
	case KindMalformedLine, KindDanglingReference:
		return SeverityError
	case KindUnknownTag:
		return SeverityInfo
	default:
		return SeverityWarning
	}
}

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Diagnostic is a recovered anomaly. Line is the physical line number the
// anomaly was found on, or 0 when it does not belong to a single line.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind" yaml:"kind"`
	Line    int            `json:"line,omitempty" yaml:"line,omitempty"`
	Text    string         `json:"text,omitempty" yaml:"text,omitempty"`
	Tag     string         `json:"tag,omitempty" yaml:"tag,omitempty"`
	Message string         `json:"message" yaml:"message"`
}

func (d Diagnostic) Severity() Severity {
	return d.Kind.Severity()
}

func (d Diagnostic) String() string {
	var sb strings.Builder
	if d.Line > 0 {
		fmt.Fprintf(&sb, "line %d: ", d.Line)
	}
	sb.WriteString(d.Kind.String())
	if d.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(d.Message)
	}
	if d.Text != "" {
		fmt.Fprintf(&sb, " (%q)", d.Text)
	}
	return sb.String()
}

type Diagnostics []Diagnostic

// Filter returns the diagnostics of the given kinds, in order.
func (ds Diagnostics) Filter(kinds ...DiagnosticKind) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		for _, k := range kinds {
			if d.Kind == k {
				out = append(out, d)
				break
			}
		}
	}
	return out
}

func (ds Diagnostics) Count(kind DiagnosticKind) int {
	n := 0
	for _, d := range ds {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.Severity() == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns the diagnostics of error severity.
func (ds Diagnostics) Errors() Diagnostics {
	return ds.bySeverity(SeverityError)
}

func (ds Diagnostics) Warnings() Diagnostics {
	return ds.bySeverity(SeverityWarning)
}

func (ds Diagnostics) bySeverity(s Severity) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Severity() == s {
			out = append(out, d)
		}
	}
	return out
}

func (ds Diagnostics) String() string {
	lines := make([]string, len(ds))
	for i, d := range ds {
		lines[i] = d.String()
	}
	return strings.Join(lines, "\n")
}

// Collector accumulates diagnostics during a parse. A nil *Collector
// discards everything it is given.
type Collector struct {
	diags Diagnostics
}

func (c *Collector) Add(d Diagnostic) {
	if c == nil {
		return
	}
	c.diags = append(c.diags, d)
}

func (c *Collector) Addf(kind DiagnosticKind, line int, text string, format string, args ...any) {
	c.Add(Diagnostic{
		Kind:    kind,
		Line:    line,
		Text:    text,
		Message: fmt.Sprintf(format, args...),
	})
}

func (c *Collector) Len() int {
	if c == nil {
		return 0
	}
	return len(c.diags)
}

// Diagnostics returns the collected diagnostics ordered by line number.
// Diagnostics on the same line keep the order they were added in.
func (c *Collector) Diagnostics() Diagnostics {
	if c == nil || len(c.diags) == 0 {
		return nil
	}
	out := make(Diagnostics, len(c.diags))
	copy(out, c.diags)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Line < out[j].Line
	})
	return out
}
