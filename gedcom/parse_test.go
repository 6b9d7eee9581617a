package gedcom

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readTestdata(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func mustParse(t *testing.T, input string) (*Document, Diagnostics) {
	t.Helper()
	doc, diags, err := Parse([]byte(input))
	require.NoError(t, err)
	require.NotNil(t, doc)
	return doc, diags
}

func TestParseFamilyFile(t *testing.T) {
	doc, diags, err := Parse(readTestdata(t, "family.ged"), WithFile("family.ged"))
	require.NoError(t, err)
	assert.Empty(t, diags)

	stats := doc.Stats()
	assert.Equal(t, 1, stats[HeaderRecord])
	assert.Equal(t, 3, stats[IndividualRecord])
	assert.Equal(t, 1, stats[FamilyRecord])
	assert.Equal(t, 1, stats[SourceRecord])
	assert.Equal(t, 1, stats[RepositoryRecord])
	assert.Equal(t, 1, stats[NoteRecord])
	assert.Equal(t, 1, stats[SubmitterRecord])
	assert.Equal(t, 1, stats[TrailerRecord])

	head := doc.Header()
	require.NotNil(t, head)
	assert.Equal(t, "UTF-8", head.Charset())
	assert.Equal(t, "5.5.1", head.Gedcom.Version)
	assert.Equal(t, "LINEAGE-LINKED", head.Gedcom.Form)
	assert.Equal(t, "ged", head.Source.ID)
	assert.Equal(t, "ged test suite", head.Source.Name)
	assert.Equal(t, "1 JAN 2024", head.Date)
	assert.Equal(t, "12:00:00", head.Time)
	assert.Equal(t, "@U1@", head.Submitter)

	john, ok := doc.Individual("@I1@")
	require.True(t, ok)
	require.Len(t, john.Names, 1)
	assert.Equal(t, "John", john.Name().Given())
	assert.Equal(t, "Smith", john.Name().Surname())
	assert.Equal(t, Male, john.Sex)
	require.NotNil(t, john.Birth())
	assert.Equal(t, "1 JAN 1900", john.Birth().Date)
	assert.Equal(t, "Springfield, Illinois, USA", john.Birth().Place)
	require.Len(t, john.Birth().Citations, 1)
	assert.Equal(t, "@S1@", john.Birth().Citations[0].Source)
	assert.Equal(t, "p. 42", john.Birth().Citations[0].Page)
	assert.Equal(t, CertaintyDirect, john.Birth().Citations[0].Quality)
	assert.Equal(t, "31 DEC 1980", john.Death().Date)
	occu := john.EventsOf("OCCU")
	require.Len(t, occu, 1)
	assert.Equal(t, "Carpenter", occu[0].Value)
	require.Len(t, john.SpouseOf, 1)
	assert.Equal(t, "@F1@", john.SpouseOf[0].Family)
	require.Len(t, john.Notes, 1)
	assert.Equal(t, "@N1@", john.Notes[0].Xref)
	require.Len(t, john.Extensions, 1)
	assert.Equal(t, "_FAVCOLOR", john.Extensions[0].Tag)

	jimmy, ok := doc.Individual("@I3@")
	require.True(t, ok)
	assert.Equal(t, "Jimmy Smith Jr.", jimmy.Name().String())
	require.Len(t, jimmy.ChildOf, 1)
	assert.Equal(t, "birth", jimmy.ChildOf[0].Pedigree)

	fam := doc.Families()[0]
	assert.Equal(t, "@I1@", fam.Husband)
	assert.Equal(t, "@I2@", fam.Wife)
	assert.Equal(t, []string{"@I3@"}, fam.Children)
	assert.True(t, fam.HasChild("@I3@"))
	assert.Equal(t, "14 FEB 1925", fam.Marriage().Date)

	src := doc.Sources()[0]
	assert.Equal(t, "Springfield Parish Register", src.Title)
	require.Len(t, src.Repositories, 1)
	assert.Equal(t, []string{"1900-1930"}, src.Repositories[0].CallNumbers)

	note := doc.Notes()[0]
	assert.Equal(t, "John was a carpenter all his life.\nHe built the church.", note.Text)

	subm := doc.Submitters()[0]
	require.NotNil(t, subm.Address)
	assert.Equal(t, "1 Main Street\nSpringfield", subm.Address.Value)
	assert.Equal(t, "USA", subm.Address.Country)
	assert.Equal(t, []string{"test@example.com"}, subm.Emails)
}

func TestParseRecordOrder(t *testing.T) {
	doc, _ := mustParse(t, "0 HEAD\n0 @B@ INDI\n0 @A@ INDI\n0 TRLR\n")
	require.Len(t, doc.Records, 4)
	assert.Equal(t, "@B@", doc.Records[1].XrefID())
	assert.Equal(t, "@A@", doc.Records[2].XrefID())
	pos, ok := doc.Index().Position("@A@")
	assert.True(t, ok)
	assert.Equal(t, 2, pos)
}

func TestParseForwardReference(t *testing.T) {
	doc, diags := mustParse(t, "0 @F1@ FAM\n1 HUSB @I1@\n0 @I1@ INDI\n1 FAMS @F1@\n")
	assert.Empty(t, diags)
	r, ok := doc.Resolve(doc.Families()[0].Husband)
	require.True(t, ok)
	assert.Equal(t, IndividualRecord, r.Kind())
}

func TestParseDanglingReference(t *testing.T) {
	doc, diags := mustParse(t, "0 HEAD\n0 @F1@ FAM\n1 HUSB @I999@\n0 TRLR\n")
	dangling := diags.Filter(KindDanglingReference)
	require.Len(t, dangling, 1)
	assert.Equal(t, 3, dangling[0].Line)
	assert.Equal(t, "HUSB", dangling[0].Tag)
	assert.Equal(t, "1 HUSB @I999@", dangling[0].Text)
	assert.Contains(t, dangling[0].Message, "@I999@")
	assert.Contains(t, dangling[0].String(), `("1 HUSB @I999@")`)
	assert.Equal(t, "@I999@", doc.Families()[0].Husband, "pointer kept as written")
}

func TestParseDuplicateXref(t *testing.T) {
	doc, diags := mustParse(t, "0 @I1@ INDI\n1 NAME First\n0 @I1@ INDI\n1 NAME Second\n")
	require.Len(t, doc.Records, 2)
	r, ok := doc.Resolve("@I1@")
	require.True(t, ok)
	assert.Equal(t, "First", r.(*Individual).Name().Value)
	dups := diags.Filter(KindMalformedLine)
	require.Len(t, dups, 1)
	assert.Equal(t, 3, dups[0].Line)
}

func TestParseUnknownTags(t *testing.T) {
	input := "0 @I1@ INDI\n1 _CUSTOM kept\n1 ZZZZ also kept\n2 DATE 1900\n0 @X1@ _ROOT value\n0 WHAT\n"
	doc, diags := mustParse(t, input)

	unknown := diags.Filter(KindUnknownTag)
	require.Len(t, unknown, 2)
	assert.Equal(t, "ZZZZ", unknown[0].Tag)
	assert.Equal(t, "WHAT", unknown[1].Tag)
	assert.Equal(t, SeverityInfo, unknown[0].Severity())

	indi := doc.Individuals()[0]
	require.Len(t, indi.Extensions, 2)
	assert.Equal(t, "DATE", indi.Extensions[1].Children[0].Tag)

	custom := doc.Custom()
	require.Len(t, custom, 2)
	assert.Equal(t, "@X1@", custom[0].XrefID())
	assert.Equal(t, "_ROOT", custom[0].Tag())

	_, diags = mustParseWith(t, input, WithoutUnknownTags())
	assert.Empty(t, diags.Filter(KindUnknownTag))
}

func mustParseWith(t *testing.T, input string, opts ...Option) (*Document, Diagnostics) {
	t.Helper()
	doc, diags, err := Parse([]byte(input), opts...)
	require.NoError(t, err)
	return doc, diags
}

func TestParseRepeatedScalarKeptAsExtension(t *testing.T) {
	doc, diags := mustParse(t, "0 @I1@ INDI\n1 SEX M\n1 SEX F\n")
	assert.Empty(t, diags)
	indi := doc.Individuals()[0]
	assert.Equal(t, Male, indi.Sex)
	require.Len(t, indi.Extensions, 1)
	assert.Equal(t, "F", indi.Extensions[0].Value)
}

func TestParseFatalInput(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  error
	}{
		{"empty", nil, ErrEmptyInput},
		{"whitespace", []byte(" \n\r\n\t"), ErrEmptyInput},
		{"bom only", []byte("\xEF\xBB\xBF"), ErrEmptyInput},
		{"utf16", []byte("\xFF\xFE0\x00 \x00H\x00"), ErrUndecodable},
		{"invalid utf8", []byte("0 HEAD\n1 CHAR UTF-8\n0 @I1@ INDI\n1 NAME J\xF8rgen\n"), ErrUndecodable},
		{"invalid utf8 undeclared", []byte("0 HEAD\n0 @I1@ INDI\n1 NAME J\xF8rgen\n"), ErrUndecodable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, diags, err := Parse(tt.input)
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.Nil(t, diags)
			assert.True(t, errors.Is(err, tt.want), "err = %v", err)
			var fatal *FatalError
			assert.True(t, errors.As(err, &fatal))
		})
	}
}

func TestParseEncoding(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		mismatch int
	}{
		{"utf8", "0 HEAD\n1 CHAR UTF-8\n0 @I1@ INDI\n1 NAME Jørgen\n", 0},
		{"ascii clean", "0 HEAD\n1 CHAR ASCII\n0 TRLR\n", 0},
		{"ascii with high bytes", "0 HEAD\n1 CHAR ASCII\n0 @I1@ INDI\n1 NAME Jørgen\n", 1},
		{"unsupported", "0 HEAD\n1 CHAR EBCDIC\n0 TRLR\n", 1},
		{"unicode declared", "0 HEAD\n1 CHAR UNICODE\n0 TRLR\n", 1},
		{"ansel single byte", "0 HEAD\n1 CHAR ANSEL\n0 @I1@ INDI\n1 NAME J\xF8rgen\n", 0},
		{"no declaration", "0 HEAD\n0 TRLR\n", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diags := mustParse(t, tt.input)
			got := diags.Filter(KindEncodingMismatch)
			assert.Len(t, got, tt.mismatch, "%v", diags)
			for _, d := range got {
				assert.Equal(t, 2, d.Line)
			}
		})
	}
}

func TestParseAnselKeepsBytes(t *testing.T) {
	doc, _ := mustParse(t, "0 HEAD\n1 CHAR ANSEL\n0 @I1@ INDI\n1 NAME J\xF8rgen\n")
	assert.Equal(t, "J\xF8rgen", doc.Individuals()[0].Name().Value)
}

func TestParseBestEffort(t *testing.T) {
	input := "0 HEAD\nnot a line\n0 @I1@ INDI\n1 NAME Ann\n3 DATE 1900\n1 FAMC @F9@\n0 TRLR\n"
	doc, diags := mustParse(t, input)
	assert.Len(t, doc.Individuals(), 1)
	assert.Equal(t, 1, diags.Count(KindMalformedLine))
	assert.Equal(t, 1, diags.Count(KindStructuralSkew))
	assert.Equal(t, 1, diags.Count(KindDanglingReference))
	assert.True(t, diags.HasErrors())
	// malformed line and dangling FAMC
	assert.Len(t, diags.Errors(), 2)
	assert.Len(t, diags.Warnings(), 1)

	for i := 1; i < len(diags); i++ {
		assert.LessOrEqual(t, diags[i-1].Line, diags[i].Line, "diagnostics ordered by line")
	}
}

func TestDocumentPointers(t *testing.T) {
	doc, _ := mustParse(t, readString(t, "family.ged"))
	targets := map[string]int{}
	for _, p := range doc.Pointers() {
		targets[p.Target]++
	}
	assert.Equal(t, 3, targets["@F1@"])
	assert.Equal(t, 1, targets["@R1@"])
}

func readString(t *testing.T, name string) string {
	t.Helper()
	return string(readTestdata(t, name))
}

func TestParseHeaderSkewRecovery(t *testing.T) {
	doc, diags := mustParse(t, "0 HEAD\n2 SOUR GEDCOM\n0 TRLR\n")

	require.Len(t, diags, 1)
	assert.Equal(t, KindStructuralSkew, diags[0].Kind)
	assert.Equal(t, 2, diags[0].Line)

	head := doc.Header()
	require.NotNil(t, head)
	require.NotNil(t, head.Source)
	assert.Equal(t, "GEDCOM", head.Source.ID)
}

func TestParseMinimalDocument(t *testing.T) {
	doc, diags := mustParse(t, "0 HEAD\n1 CHAR UTF-8\n0 TRLR\n")
	assert.Empty(t, diags)
	require.Len(t, doc.Records, 2)
	assert.Equal(t, "UTF-8", doc.Header().Charset())
	assert.NotNil(t, doc.Trailer())
}

func TestParseTrailingRecordXref(t *testing.T) {
	doc, diags := mustParse(t, "0 HEAD\n1 SOUR TestApp\n0 INDI @I1@\n1 NAME John /Doe/\n0 TRLR")
	assert.Empty(t, diags)

	require.Len(t, doc.Individuals(), 1)
	indi := doc.Individuals()[0]
	assert.Equal(t, "@I1@", indi.Xref)
	require.NotNil(t, indi.Name())
	assert.Equal(t, "John /Doe/", indi.Name().Value)
	assert.Equal(t, "TestApp", doc.Header().Source.ID)

	r, ok := doc.Resolve("@I1@")
	require.True(t, ok)
	assert.Same(t, indi, r)

	out, err := Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "0 @I1@ INDI\n")
}

func TestCustomTagSurvivesRewrite(t *testing.T) {
	doc, diags := mustParse(t, "0 HEAD\n0 @I1@ INDI\n1 NAME Ann /Lee/\n1 _FAVCOLOR Blue\n0 TRLR\n")
	assert.Empty(t, diags)

	out, err := Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "1 _FAVCOLOR Blue\n")

	again, _ := mustParse(t, string(out))
	indi, ok := again.Individual("@I1@")
	require.True(t, ok)
	require.Len(t, indi.Extensions, 1)
	assert.Equal(t, "_FAVCOLOR", indi.Extensions[0].Tag)
	assert.Equal(t, "Blue", indi.Extensions[0].Value)
	assert.True(t, Equal(doc, again))
}

func TestParseRecordValueKept(t *testing.T) {
	doc, diags := mustParse(t, "0 HEAD\n0 @R1@ REPO Town Library\n1 NAME Archive\n0 TRLR\n")

	require.Len(t, diags, 1)
	assert.Equal(t, KindUnknownTag, diags[0].Kind)
	assert.Equal(t, 2, diags[0].Line)
	assert.Equal(t, "0 @R1@ REPO Town Library", diags[0].Text)

	repo := doc.Repositories()[0]
	assert.Equal(t, "Town Library", repo.Value)
	assert.Equal(t, "Archive", repo.Name)

	out, err := Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "0 @R1@ REPO Town Library\n")
}

func TestParseSubstructureXrefReported(t *testing.T) {
	doc, diags := mustParse(t, "0 HEAD\n0 @I1@ INDI\n1 @B1@ BIRT\n2 DATE 1900\n0 TRLR\n")

	require.Len(t, diags, 1)
	assert.Equal(t, KindUnknownTag, diags[0].Kind)
	assert.Equal(t, 3, diags[0].Line)
	assert.Equal(t, "BIRT", diags[0].Tag)
	assert.Contains(t, diags[0].Message, "@B1@")

	indi, ok := doc.Individual("@I1@")
	require.True(t, ok)
	require.NotNil(t, indi.Birth())
	assert.Equal(t, "1900", indi.Birth().Date)
}

func TestParseHeaderValueReported(t *testing.T) {
	_, diags := mustParse(t, "0 HEAD junk\n0 TRLR\n")
	require.Len(t, diags, 1)
	assert.Equal(t, 1, diags[0].Line)
	assert.Contains(t, diags[0].Message, "dropped")
}
