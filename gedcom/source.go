package gedcom

// Source is a SOUR record describing a piece of evidence.
type Source struct {
	Xref         string               `json:"xref,omitempty" yaml:"xref,omitempty"`
	Title        string               `json:"title,omitempty" yaml:"title,omitempty"`
	Author       string               `json:"author,omitempty" yaml:"author,omitempty"`
	Publication  string               `json:"publication,omitempty" yaml:"publication,omitempty"`
	Abbreviation string               `json:"abbreviation,omitempty" yaml:"abbreviation,omitempty"`
	Text         string               `json:"text,omitempty" yaml:"text,omitempty"`
	Data         *SourceData          `json:"data,omitempty" yaml:"data,omitempty"`
	Repositories []RepositoryCitation `json:"repositories,omitempty" yaml:"repositories,omitempty"`
	Notes        []NoteRef            `json:"notes,omitempty" yaml:"notes,omitempty"`
	Media        []MediaLink          `json:"media,omitempty" yaml:"media,omitempty"`
	Meta         `yaml:",inline"`
	Extensions   []*Node `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// SourceData is the DATA structure of a source record: which events it
// records and who is responsible for it.
type SourceData struct {
	Events     []SourceEvents `json:"events,omitempty" yaml:"events,omitempty"`
	Agency     string         `json:"agency,omitempty" yaml:"agency,omitempty"`
	Notes      []NoteRef      `json:"notes,omitempty" yaml:"notes,omitempty"`
	Extensions []*Node        `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// SourceEvents is an EVEN line of source data: a comma separated list of
// event tags with the period and place they cover.
type SourceEvents struct {
	Types      string  `json:"types" yaml:"types"`
	Date       string  `json:"date,omitempty" yaml:"date,omitempty"`
	Place      string  `json:"place,omitempty" yaml:"place,omitempty"`
	Extensions []*Node `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// RepositoryCitation is a REPO pointer from a source to where it is held.
type RepositoryCitation struct {
	Repository  string    `json:"repository,omitempty" yaml:"repository,omitempty"`
	CallNumbers []string  `json:"callNumbers,omitempty" yaml:"callNumbers,omitempty"`
	Notes       []NoteRef `json:"notes,omitempty" yaml:"notes,omitempty"`
	Extensions  []*Node   `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

func (*Source) Kind() RecordKind { return SourceRecord }
func (s *Source) XrefID() string { return s.Xref }

func (m *materializer) source(n *Node) *Source {
	src := &Source{Xref: n.Xref}
	for _, c := range n.Children {
		if m.meta(c, &src.Meta, &src.Extensions) {
			continue
		}
		switch CanonicalTag(c.Tag) {
		case "TITL":
			m.text(&src.Title, c, &src.Extensions)
		case "AUTH":
			m.text(&src.Author, c, &src.Extensions)
		case "PUBL":
			m.text(&src.Publication, c, &src.Extensions)
		case "ABBR":
			m.text(&src.Abbreviation, c, &src.Extensions)
		case "TEXT":
			m.text(&src.Text, c, &src.Extensions)
		case "DATA":
			if src.Data != nil || c.Value != "" {
				m.unknown(c, &src.Extensions)
				continue
			}
			src.Data = m.sourceData(c)
		case "REPO":
			src.Repositories = append(src.Repositories, m.repositoryCitation(c))
		case "NOTE":
			src.Notes = append(src.Notes, m.noteRef(c))
		case "OBJE":
			src.Media = append(src.Media, m.mediaLink(c))
		default:
			m.unknown(c, &src.Extensions)
		}
	}
	return src
}

func (m *materializer) sourceData(n *Node) *SourceData {
	d := &SourceData{}
	for _, c := range n.Children {
		switch CanonicalTag(c.Tag) {
		case "EVEN":
			ev := SourceEvents{Types: c.Value}
			for _, ec := range c.Children {
				switch CanonicalTag(ec.Tag) {
				case "DATE":
					m.text(&ev.Date, ec, &ev.Extensions)
				case "PLAC":
					m.text(&ev.Place, ec, &ev.Extensions)
				default:
					m.unknown(ec, &ev.Extensions)
				}
			}
			d.Events = append(d.Events, ev)
		case "AGNC":
			m.text(&d.Agency, c, &d.Extensions)
		case "NOTE":
			d.Notes = append(d.Notes, m.noteRef(c))
		default:
			m.unknown(c, &d.Extensions)
		}
	}
	return d
}

func (m *materializer) repositoryCitation(n *Node) RepositoryCitation {
	rc := RepositoryCitation{Repository: n.Value}
	for _, c := range n.Children {
		switch CanonicalTag(c.Tag) {
		case "CALN":
			m.texts(&rc.CallNumbers, c, &rc.Extensions)
		case "NOTE":
			rc.Notes = append(rc.Notes, m.noteRef(c))
		default:
			m.unknown(c, &rc.Extensions)
		}
	}
	return rc
}

func (s *Source) encode() *Node {
	n := &Node{Xref: s.Xref, Tag: "SOUR"}
	if d := s.Data; d != nil {
		dn := NewNode("DATA", "")
		for _, ev := range d.Events {
			en := NewNode("EVEN", ev.Types)
			appendText(en, "DATE", ev.Date)
			appendText(en, "PLAC", ev.Place)
			appendExtensions(en, ev.Extensions)
			dn.AddChild(en)
		}
		appendText(dn, "AGNC", d.Agency)
		appendNotes(dn, d.Notes)
		appendExtensions(dn, d.Extensions)
		n.AddChild(dn)
	}
	appendText(n, "AUTH", s.Author)
	appendText(n, "TITL", s.Title)
	appendText(n, "ABBR", s.Abbreviation)
	appendText(n, "PUBL", s.Publication)
	appendText(n, "TEXT", s.Text)
	for _, rc := range s.Repositories {
		rn := NewNode("REPO", rc.Repository)
		appendTexts(rn, "CALN", rc.CallNumbers)
		appendNotes(rn, rc.Notes)
		appendExtensions(rn, rc.Extensions)
		n.AddChild(rn)
	}
	appendNotes(n, s.Notes)
	appendMedia(n, s.Media)
	s.Meta.encode(n)
	appendExtensions(n, s.Extensions)
	return n
}
