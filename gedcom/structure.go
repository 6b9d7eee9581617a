package gedcom

import "strconv"

// Address is an ADDR structure. Value holds the free-form address lines.
type Address struct {
	Value      string  `json:"value,omitempty" yaml:"value,omitempty"`
	Line1      string  `json:"line1,omitempty" yaml:"line1,omitempty"`
	Line2      string  `json:"line2,omitempty" yaml:"line2,omitempty"`
	Line3      string  `json:"line3,omitempty" yaml:"line3,omitempty"`
	City       string  `json:"city,omitempty" yaml:"city,omitempty"`
	State      string  `json:"state,omitempty" yaml:"state,omitempty"`
	PostalCode string  `json:"postalCode,omitempty" yaml:"postalCode,omitempty"`
	Country    string  `json:"country,omitempty" yaml:"country,omitempty"`
	Extensions []*Node `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

func (m *materializer) address(n *Node) *Address {
	a := &Address{Value: n.Value}
	for _, c := range n.Children {
		switch CanonicalTag(c.Tag) {
		case "ADR1":
			m.text(&a.Line1, c, &a.Extensions)
		case "ADR2":
			m.text(&a.Line2, c, &a.Extensions)
		case "ADR3":
			m.text(&a.Line3, c, &a.Extensions)
		case "CITY":
			m.text(&a.City, c, &a.Extensions)
		case "STAE":
			m.text(&a.State, c, &a.Extensions)
		case "POST":
			m.text(&a.PostalCode, c, &a.Extensions)
		case "CTRY":
			m.text(&a.Country, c, &a.Extensions)
		default:
			m.unknown(c, &a.Extensions)
		}
	}
	return a
}

func (a *Address) encode() *Node {
	if a == nil {
		return nil
	}
	n := NewNode("ADDR", a.Value)
	appendText(n, "ADR1", a.Line1)
	appendText(n, "ADR2", a.Line2)
	appendText(n, "ADR3", a.Line3)
	appendText(n, "CITY", a.City)
	appendText(n, "STAE", a.State)
	appendText(n, "POST", a.PostalCode)
	appendText(n, "CTRY", a.Country)
	appendExtensions(n, a.Extensions)
	return n
}

// Certainty is the QUAY assessment of a citation.
type Certainty int

const (
	CertaintyUnset Certainty = iota
	CertaintyUnreliable
	CertaintyQuestionable
	CertaintySecondary
	CertaintyDirect
)

var certaintyNames = map[Certainty]string{
	CertaintyUnset:        "",
	CertaintyUnreliable:   "unreliable",
	CertaintyQuestionable: "questionable",
	CertaintySecondary:    "secondary",
	CertaintyDirect:       "direct",
}

func (c Certainty) String() string {
	return certaintyNames[c]
}

func (c Certainty) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Citation is a SOUR reference from a record or event to the evidence
// supporting it. Source is either a pointer to a source record or, for
// inline citations, a free-text description.
type Citation struct {
	Source     string      `json:"source,omitempty" yaml:"source,omitempty"`
	Page       string      `json:"page,omitempty" yaml:"page,omitempty"`
	Event      string      `json:"event,omitempty" yaml:"event,omitempty"`
	Data       *SourceText `json:"data,omitempty" yaml:"data,omitempty"`
	Texts      []string    `json:"texts,omitempty" yaml:"texts,omitempty"`
	Quality    Certainty   `json:"quality,omitempty" yaml:"quality,omitempty"`
	Notes      []NoteRef   `json:"notes,omitempty" yaml:"notes,omitempty"`
	Media      []MediaLink `json:"media,omitempty" yaml:"media,omitempty"`
	Extensions []*Node     `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// SourceText is the DATA part of a citation.
type SourceText struct {
	Date       string   `json:"date,omitempty" yaml:"date,omitempty"`
	Texts      []string `json:"texts,omitempty" yaml:"texts,omitempty"`
	Extensions []*Node  `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

func (m *materializer) citation(n *Node) Citation {
	c := Citation{Source: n.Value}
	for _, child := range n.Children {
		switch CanonicalTag(child.Tag) {
		case "PAGE":
			m.text(&c.Page, child, &c.Extensions)
		case "EVEN":
			m.text(&c.Event, child, &c.Extensions)
		case "TEXT":
			m.texts(&c.Texts, child, &c.Extensions)
		case "DATA":
			if c.Data != nil || child.Value != "" {
				m.unknown(child, &c.Extensions)
				continue
			}
			c.Data = m.sourceText(child)
		case "QUAY":
			q, err := strconv.Atoi(child.Value)
			if err != nil || q < 0 || q > 3 || c.Quality != CertaintyUnset || len(child.Children) > 0 {
				m.unknown(child, &c.Extensions)
				continue
			}
			c.Quality = Certainty(q + 1)
		case "NOTE":
			c.Notes = append(c.Notes, m.noteRef(child))
		case "OBJE":
			c.Media = append(c.Media, m.mediaLink(child))
		default:
			m.unknown(child, &c.Extensions)
		}
	}
	return c
}

func (m *materializer) sourceText(n *Node) *SourceText {
	d := &SourceText{}
	for _, c := range n.Children {
		switch CanonicalTag(c.Tag) {
		case "DATE":
			m.text(&d.Date, c, &d.Extensions)
		case "TEXT":
			m.texts(&d.Texts, c, &d.Extensions)
		default:
			m.unknown(c, &d.Extensions)
		}
	}
	return d
}

func (c *Citation) encode() *Node {
	n := NewNode("SOUR", c.Source)
	appendText(n, "PAGE", c.Page)
	appendText(n, "EVEN", c.Event)
	if c.Data != nil {
		d := NewNode("DATA", "")
		appendText(d, "DATE", c.Data.Date)
		appendTexts(d, "TEXT", c.Data.Texts)
		appendExtensions(d, c.Data.Extensions)
		n.AddChild(d)
	}
	appendTexts(n, "TEXT", c.Texts)
	if c.Quality != CertaintyUnset {
		appendText(n, "QUAY", strconv.Itoa(int(c.Quality)-1))
	}
	appendNotes(n, c.Notes)
	appendMedia(n, c.Media)
	appendExtensions(n, c.Extensions)
	return n
}

// NoteRef is a NOTE attached to a structure: either a pointer to a note
// record or inline text.
type NoteRef struct {
	Xref       string     `json:"xref,omitempty" yaml:"xref,omitempty"`
	Text       string     `json:"text,omitempty" yaml:"text,omitempty"`
	Citations  []Citation `json:"citations,omitempty" yaml:"citations,omitempty"`
	Extensions []*Node    `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

func (m *materializer) noteRef(n *Node) NoteRef {
	var ref NoteRef
	if IsPointer(n.Value) {
		ref.Xref = n.Value
	} else {
		ref.Text = n.Value
	}
	for _, c := range n.Children {
		switch CanonicalTag(c.Tag) {
		case "SOUR":
			ref.Citations = append(ref.Citations, m.citation(c))
		default:
			m.unknown(c, &ref.Extensions)
		}
	}
	return ref
}

func (ref *NoteRef) encode() *Node {
	value := ref.Xref
	if value == "" {
		value = ref.Text
	}
	n := NewNode("NOTE", value)
	appendCitations(n, ref.Citations)
	appendExtensions(n, ref.Extensions)
	return n
}

// MediaFile is a FILE reference of a multimedia object.
type MediaFile struct {
	Path       string  `json:"path,omitempty" yaml:"path,omitempty"`
	Form       string  `json:"form,omitempty" yaml:"form,omitempty"`
	Title      string  `json:"title,omitempty" yaml:"title,omitempty"`
	Extensions []*Node `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

func (m *materializer) mediaFile(n *Node) MediaFile {
	f := MediaFile{Path: n.Value}
	for _, c := range n.Children {
		switch CanonicalTag(c.Tag) {
		case "FORM":
			m.text(&f.Form, c, &f.Extensions)
		case "TITL":
			m.text(&f.Title, c, &f.Extensions)
		default:
			m.unknown(c, &f.Extensions)
		}
	}
	return f
}

func (f *MediaFile) encode() *Node {
	n := NewNode("FILE", f.Path)
	appendText(n, "FORM", f.Form)
	appendText(n, "TITL", f.Title)
	appendExtensions(n, f.Extensions)
	return n
}

// MediaLink is an OBJE attached to a structure: a pointer to a multimedia
// record or an inline object description.
type MediaLink struct {
	Xref       string      `json:"xref,omitempty" yaml:"xref,omitempty"`
	Form       string      `json:"form,omitempty" yaml:"form,omitempty"`
	Title      string      `json:"title,omitempty" yaml:"title,omitempty"`
	Files      []MediaFile `json:"files,omitempty" yaml:"files,omitempty"`
	Notes      []NoteRef   `json:"notes,omitempty" yaml:"notes,omitempty"`
	Extensions []*Node     `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

func (m *materializer) mediaLink(n *Node) MediaLink {
	link := MediaLink{Xref: n.Value}
	for _, c := range n.Children {
		switch CanonicalTag(c.Tag) {
		case "FORM":
			m.text(&link.Form, c, &link.Extensions)
		case "TITL":
			m.text(&link.Title, c, &link.Extensions)
		case "FILE":
			link.Files = append(link.Files, m.mediaFile(c))
		case "NOTE":
			link.Notes = append(link.Notes, m.noteRef(c))
		default:
			m.unknown(c, &link.Extensions)
		}
	}
	return link
}

func (link *MediaLink) encode() *Node {
	n := NewNode("OBJE", link.Xref)
	appendText(n, "FORM", link.Form)
	appendText(n, "TITL", link.Title)
	for i := range link.Files {
		n.AddChild(link.Files[i].encode())
	}
	appendNotes(n, link.Notes)
	appendExtensions(n, link.Extensions)
	return n
}

// UserReference is a REFN user reference number.
type UserReference struct {
	Number     string  `json:"number" yaml:"number"`
	Type       string  `json:"type,omitempty" yaml:"type,omitempty"`
	Extensions []*Node `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// ChangeDate is the CHAN structure recording when a record last changed.
type ChangeDate struct {
	Date       string    `json:"date,omitempty" yaml:"date,omitempty"`
	Time       string    `json:"time,omitempty" yaml:"time,omitempty"`
	Notes      []NoteRef `json:"notes,omitempty" yaml:"notes,omitempty"`
	Extensions []*Node   `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// Meta holds the bookkeeping substructures most records share.
type Meta struct {
	// Value is text found on the record's own line, which GEDCOM only
	// defines for NOTE records.
	Value      string          `json:"value,omitempty" yaml:"value,omitempty"`
	RecordID   string          `json:"rin,omitempty" yaml:"rin,omitempty"`
	RefNumbers []UserReference `json:"refn,omitempty" yaml:"refn,omitempty"`
	Changed    *ChangeDate     `json:"changed,omitempty" yaml:"changed,omitempty"`
}

// meta handles the RIN, REFN and CHAN children of a record. It reports
// whether n was one of them.
func (m *materializer) meta(n *Node, meta *Meta, ext *[]*Node) bool {
	switch CanonicalTag(n.Tag) {
	case "RIN":
		m.text(&meta.RecordID, n, ext)
	case "REFN":
		ref := UserReference{Number: n.Value}
		for _, c := range n.Children {
			if CanonicalTag(c.Tag) == "TYPE" {
				m.text(&ref.Type, c, &ref.Extensions)
				continue
			}
			m.unknown(c, &ref.Extensions)
		}
		meta.RefNumbers = append(meta.RefNumbers, ref)
	case "CHAN":
		if meta.Changed != nil || n.Value != "" {
			m.unknown(n, ext)
			break
		}
		ch := &ChangeDate{}
		for _, c := range n.Children {
			switch CanonicalTag(c.Tag) {
			case "DATE":
				m.dateTime(c, &ch.Date, &ch.Time, &ch.Extensions)
			case "NOTE":
				ch.Notes = append(ch.Notes, m.noteRef(c))
			default:
				m.unknown(c, &ch.Extensions)
			}
		}
		meta.Changed = ch
	default:
		return false
	}
	return true
}

func (meta *Meta) setRecordValue(v string) {
	meta.Value = v
}

func (meta *Meta) encode(n *Node) {
	if n.Value == "" {
		n.Value = meta.Value
	}
	for _, ref := range meta.RefNumbers {
		r := NewNode("REFN", ref.Number)
		appendText(r, "TYPE", ref.Type)
		appendExtensions(r, ref.Extensions)
		n.AddChild(r)
	}
	appendText(n, "RIN", meta.RecordID)
	if ch := meta.Changed; ch != nil {
		c := NewNode("CHAN", "")
		appendDate(c, ch.Date, ch.Time)
		appendNotes(c, ch.Notes)
		appendExtensions(c, ch.Extensions)
		n.AddChild(c)
	}
}

func appendCitations(n *Node, citations []Citation) {
	for i := range citations {
		n.AddChild(citations[i].encode())
	}
}

func appendNotes(n *Node, notes []NoteRef) {
	for i := range notes {
		n.AddChild(notes[i].encode())
	}
}

func appendMedia(n *Node, media []MediaLink) {
	for i := range media {
		n.AddChild(media[i].encode())
	}
}
