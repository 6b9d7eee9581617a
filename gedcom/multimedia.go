package gedcom

// Multimedia is an OBJE record.
type Multimedia struct {
	Xref       string      `json:"xref,omitempty" yaml:"xref,omitempty"`
	Form       string      `json:"form,omitempty" yaml:"form,omitempty"`
	Title      string      `json:"title,omitempty" yaml:"title,omitempty"`
	Files      []MediaFile `json:"files,omitempty" yaml:"files,omitempty"`
	Citations  []Citation  `json:"citations,omitempty" yaml:"citations,omitempty"`
	Notes      []NoteRef   `json:"notes,omitempty" yaml:"notes,omitempty"`
	Meta       `yaml:",inline"`
	Extensions []*Node `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

func (*Multimedia) Kind() RecordKind { return MultimediaRecord }
func (o *Multimedia) XrefID() string { return o.Xref }

func (m *materializer) multimedia(n *Node) *Multimedia {
	obj := &Multimedia{Xref: n.Xref}
	for _, c := range n.Children {
		if m.meta(c, &obj.Meta, &obj.Extensions) {
			continue
		}
		switch CanonicalTag(c.Tag) {
		case "FORM":
			m.text(&obj.Form, c, &obj.Extensions)
		case "TITL":
			m.text(&obj.Title, c, &obj.Extensions)
		case "FILE":
			obj.Files = append(obj.Files, m.mediaFile(c))
		case "SOUR":
			obj.Citations = append(obj.Citations, m.citation(c))
		case "NOTE":
			obj.Notes = append(obj.Notes, m.noteRef(c))
		default:
			m.unknown(c, &obj.Extensions)
		}
	}
	return obj
}

func (o *Multimedia) encode() *Node {
	n := &Node{Xref: o.Xref, Tag: "OBJE"}
	appendText(n, "FORM", o.Form)
	appendText(n, "TITL", o.Title)
	for i := range o.Files {
		n.AddChild(o.Files[i].encode())
	}
	appendCitations(n, o.Citations)
	appendNotes(n, o.Notes)
	o.Meta.encode(n)
	appendExtensions(n, o.Extensions)
	return n
}
