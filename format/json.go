package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/ged/gedcom"
)

type JSONEncoder struct {
	w    io.Writer
	doc  *gedcom.Document
	opts options
}

func NewJSONEncoder(w io.Writer, opts ...Option) *JSONEncoder {
	return &JSONEncoder{w: w, opts: newOptions(opts)}
}

func (e *JSONEncoder) Encode(doc *gedcom.Document) error {
	e.doc = doc
	return write(e.w, e)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	text, err := json.MarshalIndent(project(e.doc, e.opts.diagnostics), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(text, '\n'), nil
}
