package gedcom

// Index maps cross-reference identifiers to the position of the record
// declaring them. It is built once and only read afterwards.
type Index struct {
	records   []Record
	positions map[string]int
	// duplicates lists the positions of records whose xref was already
	// declared by an earlier record.
	duplicates []int
}

func NewIndex(records []Record) *Index {
	idx := &Index{
		records:   records,
		positions: make(map[string]int, len(records)),
	}
	for i, r := range records {
		xref := r.XrefID()
		if xref == "" {
			continue
		}
		if _, seen := idx.positions[xref]; seen {
			idx.duplicates = append(idx.duplicates, i)
			continue
		}
		idx.positions[xref] = i
	}
	return idx
}

// Resolve returns the record declaring xref.
func (idx *Index) Resolve(xref string) (Record, bool) {
	i, ok := idx.positions[xref]
	if !ok {
		return nil, false
	}
	return idx.records[i], true
}

// Position returns the index into Document.Records of the record declaring xref.
func (idx *Index) Position(xref string) (int, bool) {
	i, ok := idx.positions[xref]
	return i, ok
}

func (idx *Index) Has(xref string) bool {
	_, ok := idx.positions[xref]
	return ok
}

func (idx *Index) Len() int {
	return len(idx.positions)
}

// Duplicates returns the positions of records that redeclare an xref.
func (idx *Index) Duplicates() []int {
	return idx.duplicates
}

// Pointer is a cross-reference found in a record's value fields.
type Pointer struct {
	Owner  string
	Tag    string
	Target string
	Line   int
	// Text is the line holding the pointer, as it would be written.
	Text string
}

// checkReferences reports every pointer in roots whose target is not
// declared in idx. The pointers themselves are left untouched.
func checkReferences(roots []*Node, idx *Index, c *Collector) {
	for _, p := range pointersIn(roots) {
		if idx.Has(p.Target) {
			continue
		}
		owner := p.Owner
		if owner == "" {
			owner = "record"
		}
		c.Add(Diagnostic{
			Kind:    KindDanglingReference,
			Line:    p.Line,
			Text:    p.Text,
			Tag:     p.Tag,
			Message: owner + " " + p.Tag + " references non-existent record " + p.Target,
		})
	}
}

func pointersIn(roots []*Node) []Pointer {
	var out []Pointer
	for _, root := range roots {
		owner := root.Xref
		if owner == "" {
			owner = root.Tag
		}
		for _, child := range root.Children {
			child.Walk(func(n *Node) bool {
				if IsPointer(n.Value) {
					out = append(out, Pointer{
						Owner:  owner,
						Tag:    n.Tag,
						Target: n.Value,
						Line:   n.Line,
						Text:   n.Text(),
					})
				}
				return true
			})
		}
	}
	return out
}

// Pointers lists every cross-reference held by the document's records.
// Line is always 0 since records do not remember where they were read from.
func (d *Document) Pointers() []Pointer {
	roots := make([]*Node, len(d.Records))
	for i, r := range d.Records {
		roots[i] = r.encode()
	}
	return pointersIn(roots)
}
