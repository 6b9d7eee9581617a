package gedcom

import (
	"errors"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Line
	}{
		{"record", "0 HEAD", Line{Level: 0, Tag: "HEAD"}},
		{"xref", "0 @I1@ INDI", Line{Level: 0, Xref: "@I1@", Tag: "INDI"}},
		{"value", "1 NAME John /Smith/", Line{Level: 1, Tag: "NAME", Value: "John /Smith/"}},
		{"pointer value", "1 FAMS @F1@", Line{Level: 1, Tag: "FAMS", Value: "@F1@"}},
		{"internal whitespace kept", "2 CONC  two  spaces", Line{Level: 2, Tag: "CONC", Value: " two  spaces"}},
		{"indented", "   2 DATE 1 JAN 1900", Line{Level: 2, Tag: "DATE", Value: "1 JAN 1900"}},
		{"lowercase tag", "1 birt", Line{Level: 1, Tag: "birt"}},
		{"custom tag", "1 _UID 1234", Line{Level: 1, Tag: "_UID", Value: "1234"}},
		{"multi digit level", "12 TAG x", Line{Level: 12, Tag: "TAG", Value: "x"}},
		{"trailing record xref", "0 INDI @I1@", Line{Level: 0, Xref: "@I1@", Tag: "INDI"}},
		{"trailing xref lowercase tag", "0 fam @F1@", Line{Level: 0, Xref: "@F1@", Tag: "fam"}},
		{"pointer value on non-record tag", "0 _LINK @I1@", Line{Level: 0, Tag: "_LINK", Value: "@I1@"}},
		{"pointer value below level 0", "1 INDI @I1@", Line{Level: 1, Tag: "INDI", Value: "@I1@"}},
		{"note text is not an xref", "0 NOTE @N1@ and more", Line{Level: 0, Tag: "NOTE", Value: "@N1@ and more"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize(tt.text, 7)
			if err != nil {
				t.Fatalf("Tokenize(%q) error: %v", tt.text, err)
			}
			if got.Level != tt.want.Level {
				t.Errorf("Level = %d, want %d", got.Level, tt.want.Level)
			}
			if got.Xref != tt.want.Xref {
				t.Errorf("Xref = %q, want %q", got.Xref, tt.want.Xref)
			}
			if got.Tag != tt.want.Tag {
				t.Errorf("Tag = %q, want %q", got.Tag, tt.want.Tag)
			}
			if got.Value != tt.want.Value {
				t.Errorf("Value = %q, want %q", got.Value, tt.want.Value)
			}
			if got.Number != 7 {
				t.Errorf("Number = %d, want 7", got.Number)
			}
			if got.Raw != tt.text {
				t.Errorf("Raw = %q, want %q", got.Raw, tt.text)
			}
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		text string
		msg  string
	}{
		{"HEAD", "missing level number"},
		{"-1 HEAD", "missing level number"},
		{"1a NAME x", `invalid level "1a"`},
		{"1", "missing tag"},
		{"0 @I1@", "missing tag"},
		{"0 @I1 INDI", `invalid cross-reference "@I1"`},
		{"0 @@ INDI", `invalid cross-reference "@@"`},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			_, err := Tokenize(tt.text, 3)
			if err == nil {
				t.Fatalf("Tokenize(%q) succeeded, want error", tt.text)
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("error type = %T, want *SyntaxError", err)
			}
			if se.Msg != tt.msg {
				t.Errorf("Msg = %q, want %q", se.Msg, tt.msg)
			}
			if se.Line != 3 {
				t.Errorf("Line = %d, want 3", se.Line)
			}
		})
	}
}

func TestIsPointer(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"@I1@", true},
		{"@F_12@", true},
		{"@#DJULIAN@", false},
		{"@@", false},
		{"I1", false},
		{"@I 1@", false},
		{"email@example.com", false},
	}
	for _, tt := range tests {
		if got := IsPointer(tt.value); got != tt.want {
			t.Errorf("IsPointer(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestLineString(t *testing.T) {
	l := Line{Level: 1, Xref: "@X@", Tag: "NOTE", Value: "hello"}
	if got, want := l.String(), "1 @X@ NOTE hello"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
