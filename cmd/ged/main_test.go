package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testdata = filepath.Join("..", "..", "gedcom", "testdata")

// run executes the root command with args and returns stdout and the
// exit code main would use.
func run(t *testing.T, args ...string) (string, int) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), exitCode(err)
}

func TestValidateExitCodes(t *testing.T) {
	family := filepath.Join(testdata, "family.ged")
	messy := filepath.Join(testdata, "messy.ged")

	tests := []struct {
		name string
		args []string
		code int
		want string
	}{
		{"clean", []string{"validate", family}, exitOK, "Validation: lenient - errors: 0, warnings: 0"},
		{"clean strict", []string{"validate", "--level", "strict", family}, exitOK, "Validation: strict - errors: 0, warnings: 0"},
		{"lenient", []string{"validate", messy}, exitValidation, "Validation: lenient - errors: 2, warnings: 1"},
		{"strict", []string{"validate", "--level=strict", messy}, exitValidation, "Validation: strict - errors: 5, warnings: 0"},
		{"missing file", []string{"validate", filepath.Join(testdata, "nope.ged")}, exitIO, ""},
		{"no files", []string{"validate"}, exitUsage, ""},
		{"bad level", []string{"validate", "--level", "pedantic", family}, exitUsage, ""},
		{"bad flag", []string{"validate", "--frobnicate", family}, exitUsage, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, code := run(t, tt.args...)
			assert.Equal(t, tt.code, code)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestValidateDanglingFailsLenient(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dangling.ged")
	require.NoError(t, os.WriteFile(path, []byte("0 HEAD\n1 GEDC\n2 VERS 5.5\n0 @F1@ FAM\n1 HUSB @I999@\n0 TRLR\n"), 0644))

	out, code := run(t, "validate", path)
	assert.Equal(t, exitValidation, code)
	assert.Contains(t, out, "Validation: lenient - errors: 1, warnings: 0")
	assert.Contains(t, out, "dangling-reference")
}

func TestValidateManyFilesKeepsOrder(t *testing.T) {
	family := filepath.Join(testdata, "family.ged")
	messy := filepath.Join(testdata, "messy.ged")

	out, code := run(t, "validate", "-q", messy, family, messy)
	assert.Equal(t, exitValidation, code)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], messy+": "))
	assert.True(t, strings.HasPrefix(lines[1], family+": "))
	assert.True(t, strings.HasPrefix(lines[2], messy+": "))
}

func TestFmtRoundTrip(t *testing.T) {
	family := filepath.Join(testdata, "family.ged")
	want, err := os.ReadFile(family)
	require.NoError(t, err)

	out, code := run(t, "fmt", family)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, string(want), out)
}

func TestFmtWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.ged")
	require.NoError(t, os.WriteFile(path, []byte("0 HEAD\n0 @N1@ NOTE abcdef\n0 TRLR\n"), 0644))

	_, code := run(t, "fmt", "-w", "--line-length", "3", path)
	require.Equal(t, exitOK, code)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "0 HEAD\n0 @N1@ NOTE abc\n1 CONC def\n0 TRLR\n", string(got))
}

func TestFmtWriteNeedsFile(t *testing.T) {
	_, code := run(t, "fmt", "-w")
	assert.Equal(t, exitUsage, code)
}

func TestParseFormats(t *testing.T) {
	family := filepath.Join(testdata, "family.ged")

	out, code := run(t, "parse", family)
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, `"kind": "individual"`)

	out, code = run(t, "parse", "--format", "yaml", family)
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "kind: individual")

	_, code = run(t, "parse", "--format", "xml", family)
	assert.Equal(t, exitUsage, code)
}

func TestParseEnvFormat(t *testing.T) {
	t.Setenv("GED_FORMAT", "line")
	out, code := run(t, "parse", filepath.Join(testdata, "family.ged"))
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "individual\t@I1@\tJohn Smith\n")
}

func TestStats(t *testing.T) {
	out, code := run(t, "stats", filepath.Join(testdata, "family.ged"))
	require.Equal(t, exitOK, code)
	assert.Regexp(t, `individual\s+3`, out)
	assert.Regexp(t, `family\s+1`, out)
	assert.Regexp(t, `records\s+10`, out)
	assert.Regexp(t, `diagnostics\s+0`, out)
}

func TestIndividual(t *testing.T) {
	family := filepath.Join(testdata, "family.ged")

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"by lastname", []string{"--lastname", "SMITH"}, []string{"@I1@", "@I3@"}},
		{"by firstname", []string{"--firstname", "ja"}, []string{"@I2@"}},
		{"by both", []string{"--lastname", "smith", "--firstname", "jim"}, []string{"@I3@"}},
		{"by xref", []string{"--xref", "I2"}, []string{"@I2@"}},
		{"no match", []string{"--lastname", "Jones"}, nil},
		{"all", nil, []string{"@I1@", "@I2@", "@I3@"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"individual", family}, tt.args...)
			out, code := run(t, args...)
			require.Equal(t, exitOK, code)

			var got []string
			for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
				if line == "" {
					continue
				}
				got = append(got, strings.SplitN(line, "\t", 2)[0])
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIndividualLine(t *testing.T) {
	out, code := run(t, "individual", filepath.Join(testdata, "family.ged"), "--xref", "@I1@")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "@I1@\tJohn Smith\t1 JAN 1900\t31 DEC 1980\n", out)
}

func TestConfigShow(t *testing.T) {
	t.Setenv("GED_LINE_LENGTH", "80")
	t.Setenv("GED_SERVER_ADDR", ":9000")
	out, code := run(t, "config", "show")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "line_length: 80")
	assert.Contains(t, out, "9000")
	assert.Contains(t, out, "validation_level: lenient")
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ged.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: yaml\nline_ending: crlf\n"), 0644))

	out, code := run(t, "--config", path, "config", "show")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "format: yaml")
	assert.Contains(t, out, "line_ending: crlf")

	_, code = run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "config", "show")
	assert.Equal(t, exitIO, code)
}

func TestGrammar(t *testing.T) {
	out, code := run(t, "grammar", "show", "--list")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "xref\n")

	out, code = run(t, "grammar", "match", "tag", "_FAVCOLOR")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "matches tag")

	_, code = run(t, "grammar", "match", "xref", "@X~1@")
	assert.Equal(t, exitValidation, code)

	_, code = run(t, "grammar", "match", "nope", "x")
	assert.Equal(t, exitUsage, code)
}

func TestGrammarCheck(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.ebnf")
	bad := filepath.Join(dir, "bad.ebnf")
	require.NoError(t, os.WriteFile(good, []byte("Line = \"a\" { \"b\" } .\n"), 0644))
	require.NoError(t, os.WriteFile(bad, []byte("Line = \"a\" .\nunused = \"b\" .\n"), 0644))

	_, code := run(t, "grammar", "check", good)
	assert.Equal(t, exitOK, code)

	_, code = run(t, "grammar", "check", bad)
	assert.Equal(t, exitValidation, code)

	_, code = run(t, "grammar", "check", "--start", "", bad)
	assert.Equal(t, exitOK, code)
}
