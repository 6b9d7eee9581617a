package gedcom

// Header is the HEAD record describing the file as a whole.
type Header struct {
	Source      *HeaderSource `json:"source,omitempty" yaml:"source,omitempty"`
	Destination string        `json:"destination,omitempty" yaml:"destination,omitempty"`
	Date        string        `json:"date,omitempty" yaml:"date,omitempty"`
	Time        string        `json:"time,omitempty" yaml:"time,omitempty"`
	Submitter   string        `json:"submitter,omitempty" yaml:"submitter,omitempty"`
	Submission  string        `json:"submission,omitempty" yaml:"submission,omitempty"`
	File        string        `json:"file,omitempty" yaml:"file,omitempty"`
	Copyright   string        `json:"copyright,omitempty" yaml:"copyright,omitempty"`
	Gedcom      *GedcomInfo   `json:"gedcom,omitempty" yaml:"gedcom,omitempty"`
	Encoding    *Encoding     `json:"encoding,omitempty" yaml:"encoding,omitempty"`
	Language    string        `json:"language,omitempty" yaml:"language,omitempty"`
	PlaceForm   string        `json:"placeForm,omitempty" yaml:"placeForm,omitempty"`
	Note        string        `json:"note,omitempty" yaml:"note,omitempty"`
	Extensions  []*Node       `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// HeaderSource names the system that produced the file.
type HeaderSource struct {
	ID          string  `json:"id" yaml:"id"`
	Version     string  `json:"version,omitempty" yaml:"version,omitempty"`
	Name        string  `json:"name,omitempty" yaml:"name,omitempty"`
	Corporation string  `json:"corporation,omitempty" yaml:"corporation,omitempty"`
	Extensions  []*Node `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// GedcomInfo is the GEDC structure naming the GEDCOM version in use.
type GedcomInfo struct {
	Version    string  `json:"version,omitempty" yaml:"version,omitempty"`
	Form       string  `json:"form,omitempty" yaml:"form,omitempty"`
	Extensions []*Node `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// Encoding is the declared CHAR character set.
type Encoding struct {
	Value      string  `json:"value" yaml:"value"`
	Version    string  `json:"version,omitempty" yaml:"version,omitempty"`
	Extensions []*Node `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

func (*Header) Kind() RecordKind { return HeaderRecord }
func (*Header) XrefID() string   { return "" }

// Charset returns the declared character set, or "" when the header has
// no CHAR line.
func (h *Header) Charset() string {
	if h == nil || h.Encoding == nil {
		return ""
	}
	return h.Encoding.Value
}

func (m *materializer) header(n *Node) *Header {
	h := &Header{}
	for _, c := range n.Children {
		switch CanonicalTag(c.Tag) {
		case "SOUR":
			if h.Source != nil || c.Value == "" {
				m.unknown(c, &h.Extensions)
				continue
			}
			h.Source = m.headerSource(c)
		case "DEST":
			m.text(&h.Destination, c, &h.Extensions)
		case "DATE":
			m.dateTime(c, &h.Date, &h.Time, &h.Extensions)
		case "SUBM":
			m.text(&h.Submitter, c, &h.Extensions)
		case "SUBN":
			m.text(&h.Submission, c, &h.Extensions)
		case "FILE":
			m.text(&h.File, c, &h.Extensions)
		case "COPR":
			m.text(&h.Copyright, c, &h.Extensions)
		case "GEDC":
			if h.Gedcom != nil || c.Value != "" {
				m.unknown(c, &h.Extensions)
				continue
			}
			g := &GedcomInfo{}
			for _, gc := range c.Children {
				switch CanonicalTag(gc.Tag) {
				case "VERS":
					m.text(&g.Version, gc, &g.Extensions)
				case "FORM":
					m.text(&g.Form, gc, &g.Extensions)
				default:
					m.unknown(gc, &g.Extensions)
				}
			}
			h.Gedcom = g
		case "CHAR":
			if h.Encoding != nil || c.Value == "" {
				m.unknown(c, &h.Extensions)
				continue
			}
			e := &Encoding{Value: c.Value}
			for _, ec := range c.Children {
				if CanonicalTag(ec.Tag) == "VERS" {
					m.text(&e.Version, ec, &e.Extensions)
					continue
				}
				m.unknown(ec, &e.Extensions)
			}
			h.Encoding = e
		case "LANG":
			m.text(&h.Language, c, &h.Extensions)
		case "PLAC":
			form := c.FirstChild("FORM")
			if h.PlaceForm != "" || c.Value != "" || len(c.Children) != 1 || form == nil || !isPlain(form) {
				m.unknown(c, &h.Extensions)
				continue
			}
			h.PlaceForm = form.Value
		case "NOTE":
			m.text(&h.Note, c, &h.Extensions)
		default:
			m.unknown(c, &h.Extensions)
		}
	}
	return h
}

func (m *materializer) headerSource(n *Node) *HeaderSource {
	s := &HeaderSource{ID: n.Value}
	for _, c := range n.Children {
		switch CanonicalTag(c.Tag) {
		case "VERS":
			m.text(&s.Version, c, &s.Extensions)
		case "NAME":
			m.text(&s.Name, c, &s.Extensions)
		case "CORP":
			m.text(&s.Corporation, c, &s.Extensions)
		default:
			m.unknown(c, &s.Extensions)
		}
	}
	return s
}

func (h *Header) encode() *Node {
	n := NewNode("HEAD", "")
	if s := h.Source; s != nil {
		sn := NewNode("SOUR", s.ID)
		appendText(sn, "VERS", s.Version)
		appendText(sn, "NAME", s.Name)
		appendText(sn, "CORP", s.Corporation)
		appendExtensions(sn, s.Extensions)
		n.AddChild(sn)
	}
	appendText(n, "DEST", h.Destination)
	appendDate(n, h.Date, h.Time)
	appendText(n, "SUBM", h.Submitter)
	appendText(n, "SUBN", h.Submission)
	appendText(n, "FILE", h.File)
	appendText(n, "COPR", h.Copyright)
	if g := h.Gedcom; g != nil {
		gn := NewNode("GEDC", "")
		appendText(gn, "VERS", g.Version)
		appendText(gn, "FORM", g.Form)
		appendExtensions(gn, g.Extensions)
		n.AddChild(gn)
	}
	if e := h.Encoding; e != nil {
		en := NewNode("CHAR", e.Value)
		appendText(en, "VERS", e.Version)
		appendExtensions(en, e.Extensions)
		n.AddChild(en)
	}
	appendText(n, "LANG", h.Language)
	if h.PlaceForm != "" {
		n.AddChild(NewNode("PLAC", "", NewNode("FORM", h.PlaceForm)))
	}
	appendText(n, "NOTE", h.Note)
	appendExtensions(n, h.Extensions)
	return n
}
