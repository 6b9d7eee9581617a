package gedcom

import (
	"fmt"
	"strconv"
	"strings"
)

// Line is one logical GEDCOM line: LEVEL [@XREF@] TAG [VALUE], with any
// CONT/CONC continuations already folded into Value.
type Line struct {
	Level  int
	Xref   string
	Tag    string
	Value  string
	Number int
	Raw    string
}

func (l Line) String() string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(l.Level))
	if l.Xref != "" {
		sb.WriteByte(' ')
		sb.WriteString(l.Xref)
	}
	sb.WriteByte(' ')
	sb.WriteString(l.Tag)
	if l.Value != "" {
		sb.WriteByte(' ')
		sb.WriteString(l.Value)
	}
	return sb.String()
}

// Tokenize parses a single physical line. number is the 1-based physical
// line number and is carried into the result and into any *SyntaxError.
func Tokenize(text string, number int) (Line, error) {
	line := Line{Number: number, Raw: text}
	rest := strings.TrimLeft(text, " \t")

	i := 0
	for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
		i++
	}
	if i == 0 {
		return line, &SyntaxError{Line: number, Text: text, Msg: "missing level number"}
	}
	if i < len(rest) && !isDelim(rest[i]) {
		return line, &SyntaxError{Line: number, Text: text, Msg: fmt.Sprintf("invalid level %q", firstField(rest))}
	}
	level, err := strconv.Atoi(rest[:i])
	if err != nil {
		return line, &SyntaxError{Line: number, Text: text, Msg: fmt.Sprintf("invalid level %q", rest[:i])}
	}
	line.Level = level
	rest = strings.TrimLeft(rest[i:], " \t")

	if strings.HasPrefix(rest, "@") {
		xref := firstField(rest)
		if len(xref) < 3 || !strings.HasSuffix(xref, "@") {
			return line, &SyntaxError{Line: number, Text: text, Msg: fmt.Sprintf("invalid cross-reference %q", xref)}
		}
		line.Xref = xref
		rest = strings.TrimLeft(rest[len(xref):], " \t")
	}

	tag := firstField(rest)
	if tag == "" {
		return line, &SyntaxError{Line: number, Text: text, Msg: "missing tag"}
	}
	line.Tag = tag
	rest = rest[len(tag):]
	if len(rest) > 0 {
		// exactly one delimiter separates the tag from a verbatim value
		line.Value = rest[1:]
	}
	// 0 INDI @I1@ declares the record the same way 0 @I1@ INDI does
	if line.Level == 0 && line.Xref == "" && recordTags[CanonicalTag(tag)] && IsPointer(line.Value) {
		line.Xref, line.Value = line.Value, ""
	}
	return line, nil
}

// CanonicalTag returns the form of tag used for matching against known tags.
func CanonicalTag(tag string) string {
	return strings.ToUpper(tag)
}

// IsCustomTag reports whether tag is a user-defined extension tag.
func IsCustomTag(tag string) bool {
	return strings.HasPrefix(tag, "_")
}

// IsPointer reports whether value is a cross-reference pointer such as
// "@I1@". Escapes like "@#DJULIAN@" are not pointers.
func IsPointer(value string) bool {
	if len(value) < 3 || value[0] != '@' || value[len(value)-1] != '@' {
		return false
	}
	if value[1] == '#' {
		return false
	}
	return !strings.ContainsAny(value[1:len(value)-1], " \t@")
}

func isDelim(b byte) bool {
	return b == ' ' || b == '\t'
}

func firstField(s string) string {
	end := strings.IndexAny(s, " \t")
	if end < 0 {
		return s
	}
	return s[:end]
}
