package gedcom

// Custom is a top-level record whose tag has no typed representation. The
// node tree is kept exactly as read so it can be written back.
type Custom struct {
	Node *Node `json:"node" yaml:"node"`
}

func (*Custom) Kind() RecordKind { return CustomRecord }
func (c *Custom) XrefID() string { return c.Node.Xref }
func (c *Custom) Tag() string    { return c.Node.Tag }

func (c *Custom) encode() *Node { return c.Node.Clone() }

// Trailer is the TRLR record closing the file.
type Trailer struct {
	Extensions []*Node `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

func (*Trailer) Kind() RecordKind { return TrailerRecord }
func (*Trailer) XrefID() string   { return "" }

func (m *materializer) trailer(n *Node) *Trailer {
	t := &Trailer{}
	for _, c := range n.Children {
		m.unknown(c, &t.Extensions)
	}
	return t
}

func (t *Trailer) encode() *Node {
	n := NewNode("TRLR", "")
	appendExtensions(n, t.Extensions)
	return n
}
