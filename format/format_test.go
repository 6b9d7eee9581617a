package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/ged/gedcom"
)

const sample = `0 HEAD
1 CHAR UTF-8
0 @I1@ INDI
1 NAME John /Smith/
1 SEX M
1 BIRT
2 DATE 1 JAN 1900
2 PLAC Springfield
1 FAMS @F1@
1 _FAVCOLOR Blue
0 @F1@ FAM
1 HUSB @I1@
1 CHIL @I9@
0 @X1@ _LEGACY data
0 TRLR
`

func parseSample(t *testing.T) (*gedcom.Document, gedcom.Diagnostics) {
	t.Helper()
	doc, diags, err := gedcom.Parse([]byte(sample))
	require.NoError(t, err)
	return doc, diags
}

func TestJSONProjection(t *testing.T) {
	doc, diags := parseSample(t)
	var buf bytes.Buffer
	require.NoError(t, NewJSONEncoder(&buf, WithDiagnostics(diags)).Encode(doc))

	var out struct {
		Records []struct {
			Kind       string         `json:"kind"`
			Individual map[string]any `json:"individual"`
			Family     map[string]any `json:"family"`
			Custom     map[string]any `json:"custom"`
		} `json:"records"`
		Diagnostics []struct {
			Kind string `json:"kind"`
			Line int    `json:"line"`
		} `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	kinds := make([]string, len(out.Records))
	for i, r := range out.Records {
		kinds[i] = r.Kind
	}
	assert.Equal(t, []string{"header", "individual", "family", "custom", "trailer"}, kinds)

	indi := out.Records[1].Individual
	assert.Equal(t, "@I1@", indi["xref"])
	assert.Equal(t, "M", indi["sex"])
	events := indi["events"].([]any)
	assert.Equal(t, "1 JAN 1900", events[0].(map[string]any)["date"])
	ext := indi["extensions"].([]any)
	assert.Equal(t, "_FAVCOLOR", ext[0].(map[string]any)["tag"])
	assert.Equal(t, "Blue", ext[0].(map[string]any)["value"])

	assert.Equal(t, "@I1@", out.Records[2].Family["husband"])
	assert.Equal(t, "_LEGACY", out.Records[3].Custom["tag"])

	require.Len(t, out.Diagnostics, 1)
	assert.Equal(t, "dangling-reference", out.Diagnostics[0].Kind)
	assert.Equal(t, 13, out.Diagnostics[0].Line)
}

func TestYAMLProjection(t *testing.T) {
	doc, _ := parseSample(t)
	var buf bytes.Buffer
	require.NoError(t, NewYAMLEncoder(&buf).Encode(doc))

	var out struct {
		Records []map[string]any `yaml:"records"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out.Records, 5)
	assert.Equal(t, "individual", out.Records[1]["kind"])
	indi := out.Records[1]["individual"].(map[string]any)
	assert.Equal(t, "@I1@", indi["xref"])
	assert.NotContains(t, buf.String(), "diagnostics:")
}

func TestGEDEncoderRoundTrip(t *testing.T) {
	doc, _ := parseSample(t)
	var buf bytes.Buffer
	require.NoError(t, NewGEDEncoder(&buf).Encode(doc))
	assert.Equal(t, sample, buf.String())

	var crlf bytes.Buffer
	require.NoError(t, NewGEDEncoder(&crlf, WithWriteOptions(gedcom.WithLineEnding("\r\n"))).Encode(doc))
	assert.True(t, strings.HasSuffix(crlf.String(), "0 TRLR\r\n"))
}

func TestLineEncoder(t *testing.T) {
	doc, _ := parseSample(t)
	var buf bytes.Buffer
	require.NoError(t, NewLineEncoder(&buf).Encode(doc))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"header\t-\t-",
		"individual\t@I1@\tJohn Smith",
		"event\tBIRT\t1 JAN 1900\tSpringfield",
		"link\tFAMS\t@F1@",
		"family\t@F1@\t@I1@",
		"link\tHUSB\t@I1@",
		"link\tCHIL\t@I9@",
		"custom\t@X1@\t_LEGACY",
		"trailer\t-\t-",
	}, lines)
}

func TestNew(t *testing.T) {
	for _, name := range Names() {
		enc, err := New(name, &bytes.Buffer{})
		require.NoError(t, err, name)
		assert.NotNil(t, enc)
	}
	_, err := New("xml", &bytes.Buffer{})
	assert.Error(t, err)
}
