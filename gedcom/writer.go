package gedcom

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// DefaultMaxLineLength is the longest value written on a single line
// before the rest is moved to CONC lines.
const DefaultMaxLineLength = 255

type writerOptions struct {
	maxLength  int
	lineEnding string
}

type WriteOption func(*writerOptions)

// WithMaxLineLength sets the longest value written on one line. Zero
// disables CONC splitting.
func WithMaxLineLength(n int) WriteOption {
	return func(o *writerOptions) {
		if n >= 0 {
			o.maxLength = n
		}
	}
}

// WithLineEnding sets the line terminator, "\n" by default.
func WithLineEnding(eol string) WriteOption {
	return func(o *writerOptions) {
		if eol != "" {
			o.lineEnding = eol
		}
	}
}

// Write serializes doc as GEDCOM text. Levels are recomputed from the
// nesting of each record, so the output is always well formed even when
// the input needed repairs. Trailing blanks on each line of a value are
// dropped, as a reader would drop them.
func Write(w io.Writer, doc *Document, opts ...WriteOption) error {
	o := writerOptions{maxLength: DefaultMaxLineLength, lineEnding: "\n"}
	for _, opt := range opts {
		opt(&o)
	}
	bw := bufio.NewWriter(w)
	for _, r := range doc.Records {
		writeNode(bw, r.encode(), 0, &o)
	}
	return bw.Flush()
}

// Marshal returns the GEDCOM text of doc.
func Marshal(doc *Document, opts ...WriteOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, doc, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteNodes serializes generic node trees, each starting at level 0.
func WriteNodes(w io.Writer, roots []*Node, opts ...WriteOption) error {
	o := writerOptions{maxLength: DefaultMaxLineLength, lineEnding: "\n"}
	for _, opt := range opts {
		opt(&o)
	}
	bw := bufio.NewWriter(w)
	for _, n := range roots {
		writeNode(bw, n, 0, &o)
	}
	return bw.Flush()
}

func writeNode(w *bufio.Writer, n *Node, level int, o *writerOptions) {
	value := strings.ReplaceAll(n.Value, "\r\n", "\n")
	value = strings.ReplaceAll(value, "\r", "\n")
	segments := strings.Split(value, "\n")
	for i, seg := range segments {
		segments[i] = strings.TrimRight(seg, " \t")
	}

	first := splitValue(segments[0], o.maxLength)
	writeLine(w, level, n.Xref, n.Tag, first[0], o)
	for _, chunk := range first[1:] {
		writeLine(w, level+1, "", "CONC", chunk, o)
	}
	for _, seg := range segments[1:] {
		chunks := splitValue(seg, o.maxLength)
		writeLine(w, level+1, "", "CONT", chunks[0], o)
		for _, chunk := range chunks[1:] {
			writeLine(w, level+1, "", "CONC", chunk, o)
		}
	}
	for _, child := range n.Children {
		writeNode(w, child, level+1, o)
	}
}

func writeLine(w *bufio.Writer, level int, xref, tag, value string, o *writerOptions) {
	w.WriteString(strconv.Itoa(level))
	if xref != "" {
		w.WriteByte(' ')
		w.WriteString(xref)
	}
	w.WriteByte(' ')
	w.WriteString(tag)
	if value != "" {
		w.WriteByte(' ')
		w.WriteString(value)
	}
	w.WriteString(o.lineEnding)
}

// splitValue cuts s into chunks of at most max bytes. A cut never falls
// inside a UTF-8 sequence and never leaves a chunk ending in whitespace,
// since readers trim trailing whitespace from every line. When no such
// cut exists within max bytes the chunk is allowed to grow.
func splitValue(s string, max int) []string {
	if max <= 0 || len(s) <= max {
		return []string{s}
	}
	var out []string
	for len(s) > max {
		cut := max
		for cut > 0 && !canCut(s, cut) {
			cut--
		}
		if cut == 0 {
			cut = max + 1
			for cut < len(s) && !canCut(s, cut) {
				cut++
			}
			if cut == len(s) {
				break
			}
		}
		out = append(out, s[:cut])
		s = s[cut:]
	}
	return append(out, s)
}

func canCut(s string, i int) bool {
	return utf8.RuneStart(s[i]) && !isDelim(s[i-1])
}
