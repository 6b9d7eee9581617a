package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/ged/gedcom"
)

// LineEncoder prints one tab separated line per record followed by lines
// for its events and links, suited to grep and cut.
type LineEncoder struct {
	w    io.Writer
	doc  *gedcom.Document
	opts options
}

func NewLineEncoder(w io.Writer, opts ...Option) *LineEncoder {
	return &LineEncoder{w: w, opts: newOptions(opts)}
}

func (e *LineEncoder) Encode(doc *gedcom.Document) error {
	e.doc = doc
	return write(e.w, e)
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, r := range e.doc.Records {
		fmt.Fprintf(&sb, "%s\t%s\t%s\n", r.Kind(), dash(r.XrefID()), dash(Label(r)))
		switch r := r.(type) {
		case *gedcom.Individual:
			e.events(&sb, r.Events)
			for _, link := range r.ChildOf {
				fmt.Fprintf(&sb, "link\tFAMC\t%s\n", link.Family)
			}
			for _, link := range r.SpouseOf {
				fmt.Fprintf(&sb, "link\tFAMS\t%s\n", link.Family)
			}
		case *gedcom.Family:
			e.links(&sb, "HUSB", r.Husband)
			e.links(&sb, "WIFE", r.Wife)
			e.links(&sb, "CHIL", r.Children...)
			e.events(&sb, r.Events)
		}
	}
	for _, d := range e.opts.diagnostics {
		fmt.Fprintf(&sb, "diagnostic\t%s\t%d\t%s\n", d.Kind, d.Line, d.Message)
	}
	return []byte(sb.String()), nil
}

func (e *LineEncoder) events(sb *strings.Builder, events []gedcom.Event) {
	for _, ev := range events {
		fmt.Fprintf(sb, "event\t%s\t%s\t%s\n", ev.Tag, dash(ev.Date), dash(ev.Place))
	}
}

func (e *LineEncoder) links(sb *strings.Builder, tag string, targets ...string) {
	for _, t := range targets {
		if t != "" {
			fmt.Fprintf(sb, "link\t%s\t%s\n", tag, t)
		}
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, "\n", " ")
}

// Label returns a short human readable description of a record.
func Label(r gedcom.Record) string {
	switch r := r.(type) {
	case *gedcom.Header:
		if r.Source != nil {
			return r.Source.ID
		}
	case *gedcom.Individual:
		if name := r.Name(); name != nil {
			return name.String()
		}
	case *gedcom.Family:
		return strings.Join(r.Partners(), " + ")
	case *gedcom.Source:
		return r.Title
	case *gedcom.Repository:
		return r.Name
	case *gedcom.Note:
		first, _, _ := strings.Cut(r.Text, "\n")
		return first
	case *gedcom.Multimedia:
		if r.Title != "" {
			return r.Title
		}
		if len(r.Files) > 0 {
			return r.Files[0].Path
		}
	case *gedcom.Submitter:
		return r.Name
	case *gedcom.Submission:
		return r.Submitter
	case *gedcom.Custom:
		return r.Tag()
	}
	return ""
}
