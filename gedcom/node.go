package gedcom

import (
	"strconv"
	"strings"
)

// Node is one line of a GEDCOM record tree before any interpretation of
// its tag. Line is the physical line number it was read from, 0 for nodes
// built in memory.
type Node struct {
	Level    int     `json:"-" yaml:"-"`
	Xref     string  `json:"xref,omitempty" yaml:"xref,omitempty"`
	Tag      string  `json:"tag" yaml:"tag"`
	Value    string  `json:"value,omitempty" yaml:"value,omitempty"`
	Line     int     `json:"line,omitempty" yaml:"line,omitempty"`
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

func NewNode(tag, value string, children ...*Node) *Node {
	n := &Node{Tag: tag, Value: value}
	for _, child := range children {
		n.AddChild(child)
	}
	return n
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	c.Children = cloneNodes(n.Children)
	return &c
}

func cloneNodes(nodes []*Node) []*Node {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]*Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}

// FirstChild returns the first child whose tag matches tag case-insensitively.
func (n *Node) FirstChild(tag string) *Node {
	for _, child := range n.Children {
		if strings.EqualFold(child.Tag, tag) {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOf(tag string) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if strings.EqualFold(child.Tag, tag) {
			result = append(result, child)
		}
	}
	return result
}

// Walk calls fn for n and every descendant, depth first. Returning false
// from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Text renders the node's own line without its children or continuations.
func (n *Node) Text() string {
	return Line{Level: n.Level, Xref: n.Xref, Tag: n.Tag, Value: n.Value}.String()
}

func (n *Node) String() string {
	var sb strings.Builder
	n.writeIndent(&sb, 0)
	return sb.String()
}

func (n *Node) writeIndent(sb *strings.Builder, indent int) {
	sb.WriteString(strings.Repeat("  ", indent))
	sb.WriteString(strconv.Itoa(n.Level))
	if n.Xref != "" {
		sb.WriteString(" " + n.Xref)
	}
	sb.WriteString(" " + n.Tag)
	if n.Value != "" {
		sb.WriteString(" " + strconv.Quote(n.Value))
	}
	sb.WriteByte('\n')
	for _, child := range n.Children {
		child.writeIndent(sb, indent+1)
	}
}

// Equal reports whether two trees carry the same xrefs, tags, values and
// children in the same order. Levels and line numbers are ignored.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Xref != other.Xref || n.Tag != other.Tag || n.Value != other.Value {
		return false
	}
	if len(n.Children) != len(other.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// Builder reconstructs record trees from a stream of logical lines using
// the level numbers as the only nesting information.
type Builder struct {
	collector *Collector
	roots     []*Node
	stack     []*Node
	// levels holds the level each open node was declared with; it differs
	// from Node.Level only for nodes that were reattached.
	levels []int
}

func NewBuilder(c *Collector) *Builder {
	return &Builder{collector: c}
}

func (b *Builder) Add(l Line) {
	n := &Node{
		Level: l.Level,
		Xref:  l.Xref,
		Tag:   l.Tag,
		Value: l.Value,
		Line:  l.Number,
	}

	if l.Level == 0 {
		b.openRoot(n, 0)
		return
	}

	for len(b.stack) > 0 && b.levels[len(b.levels)-1] >= l.Level {
		b.pop()
	}

	if len(b.stack) == 0 {
		b.collector.Addf(KindStructuralSkew, l.Number, l.Raw,
			"level %d line outside of any record, attached at root", l.Level)
		n.Level = 0
		b.openRoot(n, l.Level)
		return
	}

	parent := b.stack[len(b.stack)-1]
	if declared := b.levels[len(b.levels)-1]; l.Level > declared+1 {
		b.collector.Addf(KindStructuralSkew, l.Number, l.Raw,
			"level jumps from %d to %d, attached under %s", declared, l.Level, parent.Tag)
	}
	n.Level = parent.Level + 1
	parent.AddChild(n)
	b.stack = append(b.stack, n)
	b.levels = append(b.levels, l.Level)
}

func (b *Builder) openRoot(n *Node, declared int) {
	b.roots = append(b.roots, n)
	b.stack = append(b.stack[:0], n)
	b.levels = append(b.levels[:0], declared)
}

func (b *Builder) pop() {
	b.stack = b.stack[:len(b.stack)-1]
	b.levels = b.levels[:len(b.levels)-1]
}

// Finish returns the completed top-level trees and resets the builder.
func (b *Builder) Finish() []*Node {
	roots := b.roots
	b.roots, b.stack, b.levels = nil, nil, nil
	return roots
}

// Build runs every line through a new Builder.
func Build(lines []Line, c *Collector) []*Node {
	b := NewBuilder(c)
	for _, l := range lines {
		b.Add(l)
	}
	return b.Finish()
}
