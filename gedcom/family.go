package gedcom

import "strings"

// Family is a FAM record linking partners and their children.
type Family struct {
	Xref       string      `json:"xref,omitempty" yaml:"xref,omitempty"`
	Husband    string      `json:"husband,omitempty" yaml:"husband,omitempty"`
	Wife       string      `json:"wife,omitempty" yaml:"wife,omitempty"`
	Children   []string    `json:"children,omitempty" yaml:"children,omitempty"`
	ChildCount string      `json:"childCount,omitempty" yaml:"childCount,omitempty"`
	Events     []Event     `json:"events,omitempty" yaml:"events,omitempty"`
	Submitters []string    `json:"submitters,omitempty" yaml:"submitters,omitempty"`
	Citations  []Citation  `json:"citations,omitempty" yaml:"citations,omitempty"`
	Notes      []NoteRef   `json:"notes,omitempty" yaml:"notes,omitempty"`
	Media      []MediaLink `json:"media,omitempty" yaml:"media,omitempty"`
	Meta       `yaml:",inline"`
	Extensions []*Node `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

func (*Family) Kind() RecordKind { return FamilyRecord }
func (f *Family) XrefID() string { return f.Xref }

// Marriage returns the first MARR event of the family.
func (f *Family) Marriage() *Event { return firstEvent(f.Events, "MARR") }

// Partners returns the husband and wife pointers that are set.
func (f *Family) Partners() []string {
	var out []string
	for _, p := range []string{f.Husband, f.Wife} {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// HasChild reports whether xref is listed as a CHIL of the family.
func (f *Family) HasChild(xref string) bool {
	for _, c := range f.Children {
		if strings.EqualFold(c, xref) {
			return true
		}
	}
	return false
}

func (m *materializer) family(n *Node) *Family {
	fam := &Family{Xref: n.Xref}
	for _, c := range n.Children {
		tag := CanonicalTag(c.Tag)
		if m.meta(c, &fam.Meta, &fam.Extensions) {
			continue
		}
		switch {
		case tag == "HUSB":
			m.text(&fam.Husband, c, &fam.Extensions)
		case tag == "WIFE":
			m.text(&fam.Wife, c, &fam.Extensions)
		case tag == "CHIL":
			m.texts(&fam.Children, c, &fam.Extensions)
		case tag == "NCHI":
			m.text(&fam.ChildCount, c, &fam.Extensions)
		case familyEventTags[tag]:
			fam.Events = append(fam.Events, m.event(c))
		case tag == "SUBM":
			m.texts(&fam.Submitters, c, &fam.Extensions)
		case tag == "SOUR":
			fam.Citations = append(fam.Citations, m.citation(c))
		case tag == "NOTE":
			fam.Notes = append(fam.Notes, m.noteRef(c))
		case tag == "OBJE":
			fam.Media = append(fam.Media, m.mediaLink(c))
		default:
			m.unknown(c, &fam.Extensions)
		}
	}
	return fam
}

func (f *Family) encode() *Node {
	n := &Node{Xref: f.Xref, Tag: "FAM"}
	appendText(n, "HUSB", f.Husband)
	appendText(n, "WIFE", f.Wife)
	appendTexts(n, "CHIL", f.Children)
	appendText(n, "NCHI", f.ChildCount)
	appendEvents(n, f.Events)
	appendTexts(n, "SUBM", f.Submitters)
	appendCitations(n, f.Citations)
	appendNotes(n, f.Notes)
	appendMedia(n, f.Media)
	f.Meta.encode(n)
	appendExtensions(n, f.Extensions)
	return n
}
