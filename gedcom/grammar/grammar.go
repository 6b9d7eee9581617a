// Package grammar checks GEDCOM line components against an EBNF grammar.
package grammar

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	"golang.org/x/exp/ebnf"
)

// Start is the production every other production is reachable from.
const Start = "Line"

//go:embed gedcom.ebnf
var source []byte

var builtin = mustLoad()

func mustLoad() ebnf.Grammar {
	g, err := Load("gedcom.ebnf", source)
	if err != nil {
		panic(err)
	}
	return g
}

// Load parses and verifies a grammar.
func Load(filename string, src []byte) (ebnf.Grammar, error) {
	g, err := ebnf.Parse(filename, bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	if err := ebnf.Verify(g, Start); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}
	return g, nil
}

// Source returns the text of the built-in grammar.
func Source() string {
	return string(source)
}

// Productions lists the names defined by the built-in grammar.
func Productions() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	return names
}

// MatchXref reports whether s is a well-formed cross-reference identifier,
// including its @ delimiters.
func MatchXref(s string) bool {
	return Match(builtin, "xref", s)
}

// MatchTag reports whether s is a well-formed tag.
func MatchTag(s string) bool {
	return Match(builtin, "tag", s)
}

// MatchLine reports whether a whole physical line conforms to the grammar.
// Only printable ASCII values conform.
func MatchLine(s string) bool {
	return Match(builtin, Start, s)
}

// MatchProduction matches s against a named production of the built-in
// grammar.
func MatchProduction(production, s string) (bool, error) {
	if _, ok := builtin[production]; !ok {
		return false, fmt.Errorf("unknown production %q", production)
	}
	return Match(builtin, production, s), nil
}

// Match reports whether production matches all of s.
func Match(g ebnf.Grammar, production string, s string) bool {
	prod, ok := g[production]
	if !ok || prod.Expr == nil || s == "" {
		return false
	}
	m := &matcher{
		grammar:  g,
		input:    []byte(s),
		memo:     make(map[memoKey]int),
		visiting: make(map[memoKey]bool),
	}
	return m.match(prod.Expr, 0) == len(s)
}

type memoKey struct {
	name   string
	offset int
}

// matcher is a greedy longest-match interpreter over grammar expressions.
type matcher struct {
	grammar  ebnf.Grammar
	input    []byte
	memo     map[memoKey]int  // match length, -1 for no match
	visiting map[memoKey]bool // left recursion guard
}

// match returns the length of the longest match of expr at offset, or 0.
func (m *matcher) match(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case *ebnf.Token:
		return m.matchToken(e.String, offset)

	case *ebnf.Range:
		return m.matchRange(e.Begin.String, e.End.String, offset)

	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			n := m.match(item, offset+total)
			if n == 0 && !optional(item) {
				return 0
			}
			total += n
		}
		return total

	case ebnf.Alternative:
		best := 0
		for _, alt := range e {
			if n := m.match(alt, offset); n > best {
				best = n
			}
		}
		return best

	case *ebnf.Repetition:
		total := 0
		for {
			n := m.match(e.Body, offset+total)
			if n == 0 {
				break
			}
			total += n
		}
		return total

	case *ebnf.Option:
		return m.match(e.Body, offset)

	case *ebnf.Group:
		return m.match(e.Body, offset)

	case *ebnf.Name:
		return m.matchName(e.String, offset)

	default:
		return 0
	}
}

func optional(expr ebnf.Expression) bool {
	switch expr.(type) {
	case *ebnf.Option, *ebnf.Repetition:
		return true
	}
	return false
}

func (m *matcher) matchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}
	if result, ok := m.memo[key]; ok {
		if result == -1 {
			return 0
		}
		return result
	}
	if m.visiting[key] {
		return 0
	}
	prod, ok := m.grammar[name]
	if !ok || prod.Expr == nil {
		m.memo[key] = -1
		return 0
	}

	m.visiting[key] = true
	result := m.match(prod.Expr, offset)
	delete(m.visiting, key)

	if result == 0 {
		m.memo[key] = -1
	} else {
		m.memo[key] = result
	}
	return result
}

func (m *matcher) matchToken(token string, offset int) int {
	if offset+len(token) > len(m.input) {
		return 0
	}
	if string(m.input[offset:offset+len(token)]) == token {
		return len(token)
	}
	return 0
}

// matchRange matches a single byte range such as "a" … "z".
func (m *matcher) matchRange(begin, end string, offset int) int {
	if offset >= len(m.input) || len(begin) != 1 || len(end) != 1 {
		return 0
	}
	ch := m.input[offset]
	if ch >= begin[0] && ch <= end[0] {
		return 1
	}
	return 0
}

// Errors flattens the error list returned by ebnf.Parse and ebnf.Verify
// into one message per line.
func Errors(err error) []string {
	if err == nil {
		return nil
	}
	return strings.Split(err.Error(), "\n")
}
