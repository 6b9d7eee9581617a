package gedcom

// Repository is a REPO record: an archive or library holding sources.
type Repository struct {
	Xref       string    `json:"xref,omitempty" yaml:"xref,omitempty"`
	Name       string    `json:"name,omitempty" yaml:"name,omitempty"`
	Address    *Address  `json:"address,omitempty" yaml:"address,omitempty"`
	Phones     []string  `json:"phones,omitempty" yaml:"phones,omitempty"`
	Emails     []string  `json:"emails,omitempty" yaml:"emails,omitempty"`
	Websites   []string  `json:"websites,omitempty" yaml:"websites,omitempty"`
	Notes      []NoteRef `json:"notes,omitempty" yaml:"notes,omitempty"`
	Meta       `yaml:",inline"`
	Extensions []*Node `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

func (*Repository) Kind() RecordKind { return RepositoryRecord }
func (r *Repository) XrefID() string { return r.Xref }

func (m *materializer) repository(n *Node) *Repository {
	repo := &Repository{Xref: n.Xref}
	for _, c := range n.Children {
		if m.meta(c, &repo.Meta, &repo.Extensions) {
			continue
		}
		switch CanonicalTag(c.Tag) {
		case "NAME":
			m.text(&repo.Name, c, &repo.Extensions)
		case "ADDR":
			if repo.Address != nil {
				m.unknown(c, &repo.Extensions)
				continue
			}
			repo.Address = m.address(c)
		case "PHON":
			m.texts(&repo.Phones, c, &repo.Extensions)
		case "EMAIL":
			m.texts(&repo.Emails, c, &repo.Extensions)
		case "WWW":
			m.texts(&repo.Websites, c, &repo.Extensions)
		case "NOTE":
			repo.Notes = append(repo.Notes, m.noteRef(c))
		default:
			m.unknown(c, &repo.Extensions)
		}
	}
	return repo
}

func (r *Repository) encode() *Node {
	n := &Node{Xref: r.Xref, Tag: "REPO"}
	appendText(n, "NAME", r.Name)
	n.AddChild(r.Address.encode())
	appendTexts(n, "PHON", r.Phones)
	appendTexts(n, "EMAIL", r.Emails)
	appendTexts(n, "WWW", r.Websites)
	appendNotes(n, r.Notes)
	r.Meta.encode(n)
	appendExtensions(n, r.Extensions)
	return n
}
