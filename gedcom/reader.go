package gedcom

import (
	"bytes"
	"errors"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader splits raw GEDCOM content into logical lines. CONT and CONC lines
// are folded into the value of the line before them and never returned.
type Reader struct {
	data      []byte
	pos       int
	number    int
	collector *Collector

	pending    Line
	hasPending bool
	lastLevel  int
	blankLine  int
}

func NewReader(data []byte, c *Collector) *Reader {
	return &Reader{
		data:      bytes.TrimPrefix(data, utf8BOM),
		collector: c,
		lastLevel: -1,
	}
}

// Reset rewinds the reader to the start of its input. Diagnostics are
// reported again on the second pass.
func (r *Reader) Reset() {
	r.pos = 0
	r.number = 0
	r.pending = Line{}
	r.hasPending = false
	r.lastLevel = -1
	r.blankLine = 0
}

// Next returns the next logical line, or false at the end of input.
func (r *Reader) Next() (Line, bool) {
	cur, ok := r.pending, r.hasPending
	r.pending, r.hasPending = Line{}, false

	for {
		text, number, more := r.physical()
		if !more {
			break
		}
		if strings.TrimLeft(text, " \t\uFEFF") == "" {
			if r.blankLine == 0 {
				r.blankLine = number
			}
			continue
		}

		line, err := Tokenize(strings.TrimPrefix(text, "\uFEFF"), number)
		if err != nil {
			msg := err.Error()
			var se *SyntaxError
			if errors.As(err, &se) {
				msg = se.Msg
			}
			r.collector.Addf(KindMalformedLine, number, text, "%s", msg)
			continue
		}

		if r.blankLine > 0 {
			if r.lastLevel >= 0 && line.Level > 0 {
				r.collector.Addf(KindMalformedLine, r.blankLine, "", "empty line inside a record")
			}
			r.blankLine = 0
		}
		r.lastLevel = line.Level

		switch CanonicalTag(line.Tag) {
		case "CONT", "CONC":
			if !ok {
				r.collector.Addf(KindMalformedLine, number, text, "%s line without a preceding line", line.Tag)
				continue
			}
			if line.Level != cur.Level+1 {
				r.collector.Addf(KindStructuralSkew, number, text,
					"%s at level %d continues a line at level %d", line.Tag, line.Level, cur.Level)
			}
			if CanonicalTag(line.Tag) == "CONT" {
				cur.Value += "\n"
			}
			cur.Value += line.Value
			continue
		}

		if ok {
			r.pending, r.hasPending = line, true
			return cur, true
		}
		cur, ok = line, true
	}
	return cur, ok
}

func (r *Reader) physical() (string, int, bool) {
	if r.pos >= len(r.data) {
		return "", r.number, false
	}
	rest := r.data[r.pos:]
	end := bytes.IndexAny(rest, "\r\n")
	var raw []byte
	if end < 0 {
		raw = rest
		r.pos = len(r.data)
	} else {
		raw = rest[:end]
		r.pos += end + 1
		if rest[end] == '\r' && end+1 < len(rest) && rest[end+1] == '\n' {
			r.pos++
		}
	}
	r.number++
	return strings.TrimRight(string(raw), " \t"), r.number, true
}

// Lines reads every logical line of data.
func Lines(data []byte) ([]Line, Diagnostics) {
	var c Collector
	r := NewReader(data, &c)
	var lines []Line
	for {
		line, ok := r.Next()
		if !ok {
			break
		}
		lines = append(lines, line)
	}
	return lines, c.Diagnostics()
}
