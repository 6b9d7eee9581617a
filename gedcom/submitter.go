package gedcom

// Submitter is a SUBM record: the person or organisation contributing the
// data.
type Submitter struct {
	Xref       string      `json:"xref,omitempty" yaml:"xref,omitempty"`
	Name       string      `json:"name,omitempty" yaml:"name,omitempty"`
	Address    *Address    `json:"address,omitempty" yaml:"address,omitempty"`
	Phones     []string    `json:"phones,omitempty" yaml:"phones,omitempty"`
	Emails     []string    `json:"emails,omitempty" yaml:"emails,omitempty"`
	Websites   []string    `json:"websites,omitempty" yaml:"websites,omitempty"`
	Languages  []string    `json:"languages,omitempty" yaml:"languages,omitempty"`
	Media      []MediaLink `json:"media,omitempty" yaml:"media,omitempty"`
	FileNumber string      `json:"rfn,omitempty" yaml:"rfn,omitempty"`
	Notes      []NoteRef   `json:"notes,omitempty" yaml:"notes,omitempty"`
	Meta       `yaml:",inline"`
	Extensions []*Node `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

func (*Submitter) Kind() RecordKind { return SubmitterRecord }
func (s *Submitter) XrefID() string { return s.Xref }

func (m *materializer) submitter(n *Node) *Submitter {
	subm := &Submitter{Xref: n.Xref}
	for _, c := range n.Children {
		if m.meta(c, &subm.Meta, &subm.Extensions) {
			continue
		}
		switch CanonicalTag(c.Tag) {
		case "NAME":
			m.text(&subm.Name, c, &subm.Extensions)
		case "ADDR":
			if subm.Address != nil {
				m.unknown(c, &subm.Extensions)
				continue
			}
			subm.Address = m.address(c)
		case "PHON":
			m.texts(&subm.Phones, c, &subm.Extensions)
		case "EMAIL":
			m.texts(&subm.Emails, c, &subm.Extensions)
		case "WWW":
			m.texts(&subm.Websites, c, &subm.Extensions)
		case "LANG":
			m.texts(&subm.Languages, c, &subm.Extensions)
		case "OBJE":
			subm.Media = append(subm.Media, m.mediaLink(c))
		case "RFN":
			m.text(&subm.FileNumber, c, &subm.Extensions)
		case "NOTE":
			subm.Notes = append(subm.Notes, m.noteRef(c))
		default:
			m.unknown(c, &subm.Extensions)
		}
	}
	return subm
}

func (s *Submitter) encode() *Node {
	n := &Node{Xref: s.Xref, Tag: "SUBM"}
	appendText(n, "NAME", s.Name)
	n.AddChild(s.Address.encode())
	appendTexts(n, "PHON", s.Phones)
	appendTexts(n, "EMAIL", s.Emails)
	appendTexts(n, "WWW", s.Websites)
	appendTexts(n, "LANG", s.Languages)
	appendMedia(n, s.Media)
	appendText(n, "RFN", s.FileNumber)
	appendNotes(n, s.Notes)
	s.Meta.encode(n)
	appendExtensions(n, s.Extensions)
	return n
}

// Submission is a SUBN record describing a request to process the file.
type Submission struct {
	Xref        string    `json:"xref,omitempty" yaml:"xref,omitempty"`
	Submitter   string    `json:"submitter,omitempty" yaml:"submitter,omitempty"`
	FamilyFile  string    `json:"familyFile,omitempty" yaml:"familyFile,omitempty"`
	Temple      string    `json:"temple,omitempty" yaml:"temple,omitempty"`
	Ancestors   string    `json:"ancestors,omitempty" yaml:"ancestors,omitempty"`
	Descendants string    `json:"descendants,omitempty" yaml:"descendants,omitempty"`
	Ordinance   string    `json:"ordinance,omitempty" yaml:"ordinance,omitempty"`
	Notes       []NoteRef `json:"notes,omitempty" yaml:"notes,omitempty"`
	Meta        `yaml:",inline"`
	Extensions  []*Node `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

func (*Submission) Kind() RecordKind { return SubmissionRecord }
func (s *Submission) XrefID() string { return s.Xref }

func (m *materializer) submission(n *Node) *Submission {
	subn := &Submission{Xref: n.Xref}
	for _, c := range n.Children {
		if m.meta(c, &subn.Meta, &subn.Extensions) {
			continue
		}
		switch CanonicalTag(c.Tag) {
		case "SUBM":
			m.text(&subn.Submitter, c, &subn.Extensions)
		case "FAMF":
			m.text(&subn.FamilyFile, c, &subn.Extensions)
		case "TEMP":
			m.text(&subn.Temple, c, &subn.Extensions)
		case "ANCE":
			m.text(&subn.Ancestors, c, &subn.Extensions)
		case "DESC":
			m.text(&subn.Descendants, c, &subn.Extensions)
		case "ORDI":
			m.text(&subn.Ordinance, c, &subn.Extensions)
		case "NOTE":
			subn.Notes = append(subn.Notes, m.noteRef(c))
		default:
			m.unknown(c, &subn.Extensions)
		}
	}
	return subn
}

func (s *Submission) encode() *Node {
	n := &Node{Xref: s.Xref, Tag: "SUBN"}
	appendText(n, "SUBM", s.Submitter)
	appendText(n, "FAMF", s.FamilyFile)
	appendText(n, "TEMP", s.Temple)
	appendText(n, "ANCE", s.Ancestors)
	appendText(n, "DESC", s.Descendants)
	appendText(n, "ORDI", s.Ordinance)
	appendNotes(n, s.Notes)
	s.Meta.encode(n)
	appendExtensions(n, s.Extensions)
	return n
}
