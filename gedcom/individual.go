package gedcom

import "strings"

// Gender is the value of an individual's SEX line.
type Gender string

const (
	Male     Gender = "M"
	Female   Gender = "F"
	Intersex Gender = "X"
	Unknown  Gender = "U"
)

func (g Gender) Valid() bool {
	switch g {
	case Male, Female, Intersex, Unknown:
		return true
	}
	return false
}

// Individual is an INDI record.
type Individual struct {
	Xref         string         `json:"xref,omitempty" yaml:"xref,omitempty"`
	Names        []PersonalName `json:"names,omitempty" yaml:"names,omitempty"`
	Sex          Gender         `json:"sex,omitempty" yaml:"sex,omitempty"`
	Events       []Event        `json:"events,omitempty" yaml:"events,omitempty"`
	ChildOf      []FamilyLink   `json:"childOf,omitempty" yaml:"childOf,omitempty"`
	SpouseOf     []FamilyLink   `json:"spouseOf,omitempty" yaml:"spouseOf,omitempty"`
	Associations []Association  `json:"associations,omitempty" yaml:"associations,omitempty"`
	Aliases      []string       `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Submitters   []string       `json:"submitters,omitempty" yaml:"submitters,omitempty"`
	Citations    []Citation     `json:"citations,omitempty" yaml:"citations,omitempty"`
	Notes        []NoteRef      `json:"notes,omitempty" yaml:"notes,omitempty"`
	Media        []MediaLink    `json:"media,omitempty" yaml:"media,omitempty"`
	Meta         `yaml:",inline"`
	Extensions   []*Node `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// PersonalName is a NAME structure. Value is the name as written, with
// the surname between slashes.
type PersonalName struct {
	Value         string     `json:"value" yaml:"value"`
	Type          string     `json:"type,omitempty" yaml:"type,omitempty"`
	Prefix        string     `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	GivenName     string     `json:"givenName,omitempty" yaml:"givenName,omitempty"`
	Nickname      string     `json:"nickname,omitempty" yaml:"nickname,omitempty"`
	SurnamePrefix string     `json:"surnamePrefix,omitempty" yaml:"surnamePrefix,omitempty"`
	SurnamePieces string     `json:"surname,omitempty" yaml:"surname,omitempty"`
	Suffix        string     `json:"suffix,omitempty" yaml:"suffix,omitempty"`
	Citations     []Citation `json:"citations,omitempty" yaml:"citations,omitempty"`
	Notes         []NoteRef  `json:"notes,omitempty" yaml:"notes,omitempty"`
	Extensions    []*Node    `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// FamilyLink is a FAMC or FAMS pointer from an individual to a family.
type FamilyLink struct {
	Family     string    `json:"family" yaml:"family"`
	Pedigree   string    `json:"pedigree,omitempty" yaml:"pedigree,omitempty"`
	Notes      []NoteRef `json:"notes,omitempty" yaml:"notes,omitempty"`
	Extensions []*Node   `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// Association is an ASSO link to another individual.
type Association struct {
	Individual string     `json:"individual" yaml:"individual"`
	Relation   string     `json:"relation,omitempty" yaml:"relation,omitempty"`
	Citations  []Citation `json:"citations,omitempty" yaml:"citations,omitempty"`
	Notes      []NoteRef  `json:"notes,omitempty" yaml:"notes,omitempty"`
	Extensions []*Node    `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

func (*Individual) Kind() RecordKind { return IndividualRecord }
func (i *Individual) XrefID() string { return i.Xref }

// Name returns the first NAME of the individual, or nil.
func (i *Individual) Name() *PersonalName {
	if len(i.Names) == 0 {
		return nil
	}
	return &i.Names[0]
}

// EventsOf returns the events with the given tag in file order.
func (i *Individual) EventsOf(tag string) []Event {
	var out []Event
	for _, e := range i.Events {
		if strings.EqualFold(e.Tag, tag) {
			out = append(out, e)
		}
	}
	return out
}

func (i *Individual) Birth() *Event { return firstEvent(i.Events, "BIRT") }
func (i *Individual) Death() *Event { return firstEvent(i.Events, "DEAT") }

func firstEvent(events []Event, tag string) *Event {
	for k := range events {
		if strings.EqualFold(events[k].Tag, tag) {
			return &events[k]
		}
	}
	return nil
}

// Given returns the given names: the GIVN line when present, otherwise
// the part of the name before the slashed surname.
func (p *PersonalName) Given() string {
	if p.GivenName != "" {
		return p.GivenName
	}
	given, _, _ := p.split()
	return given
}

// Surname returns the SURN line when present, otherwise the text between
// the slashes of the name value.
func (p *PersonalName) Surname() string {
	if p.SurnamePieces != "" {
		return p.SurnamePieces
	}
	_, surname, _ := p.split()
	return surname
}

// String renders the name without slashes, as it would be read aloud.
func (p *PersonalName) String() string {
	given, surname, suffix := p.split()
	return strings.Join(strings.Fields(given+" "+surname+" "+suffix), " ")
}

func (p *PersonalName) split() (given, surname, suffix string) {
	before, rest, found := strings.Cut(p.Value, "/")
	if !found {
		return strings.TrimSpace(p.Value), "", ""
	}
	surname, suffix, _ = strings.Cut(rest, "/")
	return strings.TrimSpace(before), strings.TrimSpace(surname), strings.TrimSpace(suffix)
}

func (m *materializer) individual(n *Node) *Individual {
	indi := &Individual{Xref: n.Xref}
	for _, c := range n.Children {
		tag := CanonicalTag(c.Tag)
		if m.meta(c, &indi.Meta, &indi.Extensions) {
			continue
		}
		switch {
		case tag == "NAME":
			indi.Names = append(indi.Names, m.personalName(c))
		case tag == "SEX":
			g := Gender(c.Value)
			if indi.Sex != "" || !g.Valid() || !isPlain(c) {
				m.unknown(c, &indi.Extensions)
				continue
			}
			indi.Sex = g
		case individualEventTags[tag]:
			indi.Events = append(indi.Events, m.event(c))
		case tag == "FAMC":
			indi.ChildOf = append(indi.ChildOf, m.familyLink(c))
		case tag == "FAMS":
			indi.SpouseOf = append(indi.SpouseOf, m.familyLink(c))
		case tag == "ASSO":
			indi.Associations = append(indi.Associations, m.association(c))
		case tag == "ALIA":
			m.texts(&indi.Aliases, c, &indi.Extensions)
		case tag == "SUBM":
			m.texts(&indi.Submitters, c, &indi.Extensions)
		case tag == "SOUR":
			indi.Citations = append(indi.Citations, m.citation(c))
		case tag == "NOTE":
			indi.Notes = append(indi.Notes, m.noteRef(c))
		case tag == "OBJE":
			indi.Media = append(indi.Media, m.mediaLink(c))
		default:
			m.unknown(c, &indi.Extensions)
		}
	}
	return indi
}

func (m *materializer) personalName(n *Node) PersonalName {
	p := PersonalName{Value: n.Value}
	for _, c := range n.Children {
		switch CanonicalTag(c.Tag) {
		case "TYPE":
			m.text(&p.Type, c, &p.Extensions)
		case "NPFX":
			m.text(&p.Prefix, c, &p.Extensions)
		case "GIVN":
			m.text(&p.GivenName, c, &p.Extensions)
		case "NICK":
			m.text(&p.Nickname, c, &p.Extensions)
		case "SPFX":
			m.text(&p.SurnamePrefix, c, &p.Extensions)
		case "SURN":
			m.text(&p.SurnamePieces, c, &p.Extensions)
		case "NSFX":
			m.text(&p.Suffix, c, &p.Extensions)
		case "SOUR":
			p.Citations = append(p.Citations, m.citation(c))
		case "NOTE":
			p.Notes = append(p.Notes, m.noteRef(c))
		default:
			m.unknown(c, &p.Extensions)
		}
	}
	return p
}

func (m *materializer) familyLink(n *Node) FamilyLink {
	link := FamilyLink{Family: n.Value}
	for _, c := range n.Children {
		switch CanonicalTag(c.Tag) {
		case "PEDI":
			m.text(&link.Pedigree, c, &link.Extensions)
		case "NOTE":
			link.Notes = append(link.Notes, m.noteRef(c))
		default:
			m.unknown(c, &link.Extensions)
		}
	}
	return link
}

func (m *materializer) association(n *Node) Association {
	a := Association{Individual: n.Value}
	for _, c := range n.Children {
		switch CanonicalTag(c.Tag) {
		case "RELA":
			m.text(&a.Relation, c, &a.Extensions)
		case "SOUR":
			a.Citations = append(a.Citations, m.citation(c))
		case "NOTE":
			a.Notes = append(a.Notes, m.noteRef(c))
		default:
			m.unknown(c, &a.Extensions)
		}
	}
	return a
}

func (i *Individual) encode() *Node {
	n := &Node{Xref: i.Xref, Tag: "INDI"}
	for k := range i.Names {
		n.AddChild(i.Names[k].encode())
	}
	appendText(n, "SEX", string(i.Sex))
	appendEvents(n, i.Events)
	for _, link := range i.ChildOf {
		n.AddChild(link.encode("FAMC"))
	}
	for _, link := range i.SpouseOf {
		n.AddChild(link.encode("FAMS"))
	}
	for _, a := range i.Associations {
		an := NewNode("ASSO", a.Individual)
		appendText(an, "RELA", a.Relation)
		appendCitations(an, a.Citations)
		appendNotes(an, a.Notes)
		appendExtensions(an, a.Extensions)
		n.AddChild(an)
	}
	appendTexts(n, "ALIA", i.Aliases)
	appendTexts(n, "SUBM", i.Submitters)
	appendCitations(n, i.Citations)
	appendNotes(n, i.Notes)
	appendMedia(n, i.Media)
	i.Meta.encode(n)
	appendExtensions(n, i.Extensions)
	return n
}

func (p *PersonalName) encode() *Node {
	n := NewNode("NAME", p.Value)
	appendText(n, "TYPE", p.Type)
	appendText(n, "NPFX", p.Prefix)
	appendText(n, "GIVN", p.GivenName)
	appendText(n, "NICK", p.Nickname)
	appendText(n, "SPFX", p.SurnamePrefix)
	appendText(n, "SURN", p.SurnamePieces)
	appendText(n, "NSFX", p.Suffix)
	appendCitations(n, p.Citations)
	appendNotes(n, p.Notes)
	appendExtensions(n, p.Extensions)
	return n
}

func (link FamilyLink) encode(tag string) *Node {
	n := NewNode(tag, link.Family)
	appendText(n, "PEDI", link.Pedigree)
	appendNotes(n, link.Notes)
	appendExtensions(n, link.Extensions)
	return n
}
