package gedcom

import (
	"strings"
	"testing"
)

func readAll(t *testing.T, input string) ([]Line, Diagnostics) {
	t.Helper()
	return Lines([]byte(input))
}

func TestReaderContinuations(t *testing.T) {
	input := "0 @N1@ NOTE first\n1 CONT second\n1 CONC  half\n1 CONT\n1 CONC end\n0 TRLR\n"
	lines, diags := readAll(t, input)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics:\n%s", diags)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if want := "first\nsecond half\nend"; lines[0].Value != want {
		t.Errorf("Value = %q, want %q", lines[0].Value, want)
	}
	if lines[0].Number != 1 || lines[1].Number != 6 {
		t.Errorf("Numbers = %d, %d, want 1, 6", lines[0].Number, lines[1].Number)
	}
}

func TestReaderLineEndings(t *testing.T) {
	for name, sep := range map[string]string{"lf": "\n", "crlf": "\r\n", "cr": "\r"} {
		t.Run(name, func(t *testing.T) {
			input := strings.Join([]string{"0 HEAD", "1 CHAR UTF-8   ", "0 TRLR"}, sep)
			lines, diags := readAll(t, input)
			if len(diags) != 0 {
				t.Fatalf("unexpected diagnostics:\n%s", diags)
			}
			if len(lines) != 3 {
				t.Fatalf("got %d lines, want 3", len(lines))
			}
			if lines[1].Value != "UTF-8" {
				t.Errorf("trailing whitespace kept: %q", lines[1].Value)
			}
			if lines[2].Tag != "TRLR" || lines[2].Number != 3 {
				t.Errorf("last line = %+v", lines[2])
			}
		})
	}
}

func TestReaderByteOrderMark(t *testing.T) {
	lines, diags := readAll(t, "\xEF\xBB\xBF0 HEAD\n0 TRLR")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics:\n%s", diags)
	}
	if len(lines) != 2 || lines[0].Tag != "HEAD" {
		t.Fatalf("lines = %+v", lines)
	}
}

func TestReaderOrphanContinuation(t *testing.T) {
	lines, diags := readAll(t, "1 CONT lost\n0 HEAD\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if len(diags) != 1 || diags[0].Kind != KindMalformedLine || diags[0].Line != 1 {
		t.Fatalf("diagnostics = %v", diags)
	}
}

func TestReaderMisleveledContinuation(t *testing.T) {
	lines, diags := readAll(t, "0 @N1@ NOTE a\n3 CONT b\n")
	if len(lines) != 1 || lines[0].Value != "a\nb" {
		t.Fatalf("lines = %+v", lines)
	}
	if diags.Count(KindStructuralSkew) != 1 {
		t.Errorf("diagnostics = %v, want one structural skew", diags)
	}
}

func TestReaderBlankLines(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		malformed int
	}{
		{"between records", "0 HEAD\n\n0 TRLR\n", 0},
		{"trailing", "0 HEAD\n0 TRLR\n\n\n", 0},
		{"leading", "\n0 HEAD\n", 0},
		{"inside record", "0 @I1@ INDI\n1 NAME a\n\n1 SEX M\n", 1},
		{"after record start", "0 HEAD\n\n1 CHAR UTF-8\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diags := readAll(t, tt.input)
			if got := diags.Count(KindMalformedLine); got != tt.malformed {
				t.Errorf("malformed = %d, want %d (%v)", got, tt.malformed, diags)
			}
		})
	}
}

func TestReaderSkipsMalformedLines(t *testing.T) {
	lines, diags := readAll(t, "0 HEAD\nbogus line\n1 CHAR ASCII\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if len(diags) != 1 || diags[0].Line != 2 || diags[0].Text != "bogus line" {
		t.Fatalf("diagnostics = %v", diags)
	}
}

func TestReaderReset(t *testing.T) {
	var c Collector
	r := NewReader([]byte("0 HEAD\n1 CHAR UTF-8\n0 TRLR"), &c)
	count := func() int {
		n := 0
		for {
			if _, ok := r.Next(); !ok {
				return n
			}
			n++
		}
	}
	if n := count(); n != 3 {
		t.Fatalf("first pass = %d lines, want 3", n)
	}
	r.Reset()
	if n := count(); n != 3 {
		t.Fatalf("second pass = %d lines, want 3", n)
	}
}
