package format

import (
	"bytes"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/ged/gedcom"
)

type YAMLEncoder struct {
	w    io.Writer
	doc  *gedcom.Document
	opts options
}

func NewYAMLEncoder(w io.Writer, opts ...Option) *YAMLEncoder {
	return &YAMLEncoder{w: w, opts: newOptions(opts)}
}

func (e *YAMLEncoder) Encode(doc *gedcom.Document) error {
	e.doc = doc
	return write(e.w, e)
}

func (e *YAMLEncoder) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(project(e.doc, e.opts.diagnostics)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
