package gedcom

// Event is an event or attribute structure such as BIRT, MARR or OCCU.
// Dates and places are kept exactly as written.
type Event struct {
	Tag        string      `json:"tag" yaml:"tag"`
	Value      string      `json:"value,omitempty" yaml:"value,omitempty"`
	Type       string      `json:"type,omitempty" yaml:"type,omitempty"`
	Date       string      `json:"date,omitempty" yaml:"date,omitempty"`
	Place      string      `json:"place,omitempty" yaml:"place,omitempty"`
	Address    *Address    `json:"address,omitempty" yaml:"address,omitempty"`
	Age        string      `json:"age,omitempty" yaml:"age,omitempty"`
	Agency     string      `json:"agency,omitempty" yaml:"agency,omitempty"`
	Cause      string      `json:"cause,omitempty" yaml:"cause,omitempty"`
	Family     string      `json:"family,omitempty" yaml:"family,omitempty"`
	HusbandAge string      `json:"husbandAge,omitempty" yaml:"husbandAge,omitempty"`
	WifeAge    string      `json:"wifeAge,omitempty" yaml:"wifeAge,omitempty"`
	Citations  []Citation  `json:"citations,omitempty" yaml:"citations,omitempty"`
	Notes      []NoteRef   `json:"notes,omitempty" yaml:"notes,omitempty"`
	Media      []MediaLink `json:"media,omitempty" yaml:"media,omitempty"`
	Extensions []*Node     `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

func (m *materializer) event(n *Node) Event {
	e := Event{Tag: CanonicalTag(n.Tag), Value: n.Value}
	for _, c := range n.Children {
		switch CanonicalTag(c.Tag) {
		case "TYPE":
			m.text(&e.Type, c, &e.Extensions)
		case "DATE":
			m.text(&e.Date, c, &e.Extensions)
		case "PLAC":
			m.text(&e.Place, c, &e.Extensions)
		case "ADDR":
			if e.Address != nil {
				m.unknown(c, &e.Extensions)
				continue
			}
			e.Address = m.address(c)
		case "AGE":
			m.text(&e.Age, c, &e.Extensions)
		case "AGNC":
			m.text(&e.Agency, c, &e.Extensions)
		case "CAUS":
			m.text(&e.Cause, c, &e.Extensions)
		case "FAMC":
			m.text(&e.Family, c, &e.Extensions)
		case "HUSB":
			m.spouseAge(c, &e.HusbandAge, &e.Extensions)
		case "WIFE":
			m.spouseAge(c, &e.WifeAge, &e.Extensions)
		case "SOUR":
			e.Citations = append(e.Citations, m.citation(c))
		case "NOTE":
			e.Notes = append(e.Notes, m.noteRef(c))
		case "OBJE":
			e.Media = append(e.Media, m.mediaLink(c))
		default:
			m.unknown(c, &e.Extensions)
		}
	}
	return e
}

// spouseAge reads the HUSB/WIFE substructure of a family event, which
// carries nothing but an AGE line.
func (m *materializer) spouseAge(n *Node, dst *string, ext *[]*Node) {
	if *dst != "" || n.Value != "" || len(n.Children) != 1 {
		m.unknown(n, ext)
		return
	}
	age := n.Children[0]
	if CanonicalTag(age.Tag) != "AGE" || !isPlain(age) {
		m.unknown(n, ext)
		return
	}
	*dst = age.Value
}

func (e *Event) encode() *Node {
	n := NewNode(e.Tag, e.Value)
	appendText(n, "TYPE", e.Type)
	appendText(n, "DATE", e.Date)
	appendText(n, "PLAC", e.Place)
	n.AddChild(e.Address.encode())
	appendText(n, "AGE", e.Age)
	appendText(n, "AGNC", e.Agency)
	appendText(n, "CAUS", e.Cause)
	appendText(n, "FAMC", e.Family)
	if e.HusbandAge != "" {
		n.AddChild(NewNode("HUSB", "", NewNode("AGE", e.HusbandAge)))
	}
	if e.WifeAge != "" {
		n.AddChild(NewNode("WIFE", "", NewNode("AGE", e.WifeAge)))
	}
	appendCitations(n, e.Citations)
	appendNotes(n, e.Notes)
	appendMedia(n, e.Media)
	appendExtensions(n, e.Extensions)
	return n
}

func appendEvents(n *Node, events []Event) {
	for i := range events {
		n.AddChild(events[i].encode())
	}
}
