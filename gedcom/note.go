package gedcom

// Note is a NOTE record. Text carries the value with its CONT and CONC
// continuations already joined.
type Note struct {
	Xref       string     `json:"xref,omitempty" yaml:"xref,omitempty"`
	Text       string     `json:"text,omitempty" yaml:"text,omitempty"`
	Citations  []Citation `json:"citations,omitempty" yaml:"citations,omitempty"`
	Meta       `yaml:",inline"`
	Extensions []*Node `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

func (*Note) Kind() RecordKind { return NoteRecord }
func (n *Note) XrefID() string { return n.Xref }

func (m *materializer) note(n *Node) *Note {
	note := &Note{Xref: n.Xref, Text: n.Value}
	for _, c := range n.Children {
		if m.meta(c, &note.Meta, &note.Extensions) {
			continue
		}
		switch CanonicalTag(c.Tag) {
		case "SOUR":
			note.Citations = append(note.Citations, m.citation(c))
		default:
			m.unknown(c, &note.Extensions)
		}
	}
	return note
}

func (n *Note) encode() *Node {
	out := &Node{Xref: n.Xref, Tag: "NOTE", Value: n.Text}
	appendCitations(out, n.Citations)
	n.Meta.encode(out)
	appendExtensions(out, n.Extensions)
	return out
}
