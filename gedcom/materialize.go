package gedcom

import "fmt"

type materializer struct {
	collector     *Collector
	reportUnknown bool
}

func (m *materializer) records(roots []*Node) []Record {
	out := make([]Record, 0, len(roots))
	for _, n := range roots {
		out = append(out, m.record(n))
	}
	return out
}

func (m *materializer) record(n *Node) Record {
	r := m.typed(n)
	if _, ok := r.(*Custom); !ok {
		m.shape(n, r)
	}
	return r
}

// valueHolder is implemented by records that keep a value found on their
// own level 0 line.
type valueHolder interface {
	setRecordValue(v string)
}

// shape reports what a typed record cannot represent. A value on a record
// line other than NOTE is kept where the record allows it; cross-references
// on substructure lines are dropped.
func (m *materializer) shape(n *Node, r Record) {
	if n.Value != "" && CanonicalTag(n.Tag) != "NOTE" {
		if h, ok := r.(valueHolder); ok {
			h.setRecordValue(n.Value)
			m.anomaly(n, "value on %s record kept verbatim", n.Tag)
		} else {
			m.anomaly(n, "value on %s record dropped", n.Tag)
		}
	}
	for _, c := range n.Children {
		c.Walk(func(d *Node) bool {
			if d.Xref != "" {
				m.anomaly(d, "cross-reference %s on %s substructure dropped", d.Xref, d.Tag)
			}
			return true
		})
	}
}

func (m *materializer) anomaly(n *Node, format string, args ...any) {
	m.collector.Add(Diagnostic{
		Kind:    KindUnknownTag,
		Line:    n.Line,
		Text:    n.Text(),
		Tag:     n.Tag,
		Message: fmt.Sprintf(format, args...),
	})
}

func (m *materializer) typed(n *Node) Record {
	switch CanonicalTag(n.Tag) {
	case "HEAD":
		return m.header(n)
	case "INDI":
		return m.individual(n)
	case "FAM":
		return m.family(n)
	case "SOUR":
		return m.source(n)
	case "REPO":
		return m.repository(n)
	case "NOTE":
		return m.note(n)
	case "OBJE":
		return m.multimedia(n)
	case "SUBM":
		return m.submitter(n)
	case "SUBN":
		return m.submission(n)
	case "TRLR":
		return m.trailer(n)
	default:
		m.reportTag(n)
		return &Custom{Node: n}
	}
}

// unknown keeps n verbatim in the extension bag ext. Only tags outside the
// standard vocabulary that are not underscore extensions are reported.
func (m *materializer) unknown(n *Node, ext *[]*Node) {
	*ext = append(*ext, n)
	m.reportTag(n)
}

func (m *materializer) reportTag(n *Node) {
	if !m.reportUnknown || IsCustomTag(n.Tag) || IsStandardTag(n.Tag) {
		return
	}
	m.collector.Add(Diagnostic{
		Kind:    KindUnknownTag,
		Line:    n.Line,
		Text:    n.Text(),
		Tag:     n.Tag,
		Message: fmt.Sprintf("unknown tag %s kept as extension", n.Tag),
	})
}

// text stores the value of a plain value line in dst. A line that dst
// cannot represent (a repeat, an empty value, or one with children) is kept
// in ext instead.
func (m *materializer) text(dst *string, n *Node, ext *[]*Node) {
	if *dst != "" || !isPlain(n) {
		m.unknown(n, ext)
		return
	}
	*dst = n.Value
}

func (m *materializer) texts(dst *[]string, n *Node, ext *[]*Node) {
	if !isPlain(n) {
		m.unknown(n, ext)
		return
	}
	*dst = append(*dst, n.Value)
}

// dateTime reads a DATE line with an optional TIME child.
func (m *materializer) dateTime(n *Node, date, clock *string, ext *[]*Node) {
	if *date != "" || n.Value == "" || n.Xref != "" {
		m.unknown(n, ext)
		return
	}
	switch {
	case len(n.Children) == 0:
	case len(n.Children) == 1 && CanonicalTag(n.Children[0].Tag) == "TIME" && isPlain(n.Children[0]):
		*clock = n.Children[0].Value
	default:
		m.unknown(n, ext)
		return
	}
	*date = n.Value
}

func isPlain(n *Node) bool {
	return n.Value != "" && n.Xref == "" && len(n.Children) == 0
}

func appendText(n *Node, tag, value string) {
	if value != "" {
		n.AddChild(&Node{Tag: tag, Value: value})
	}
}

func appendTexts(n *Node, tag string, values []string) {
	for _, v := range values {
		n.AddChild(&Node{Tag: tag, Value: v})
	}
}

func appendDate(n *Node, date, clock string) {
	if date == "" {
		return
	}
	d := &Node{Tag: "DATE", Value: date}
	appendText(d, "TIME", clock)
	n.AddChild(d)
}

func appendExtensions(n *Node, ext []*Node) {
	for _, e := range ext {
		n.AddChild(e.Clone())
	}
}
