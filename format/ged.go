package format

import (
	"io"

	"github.com/dhamidi/ged/gedcom"
)

// GEDEncoder writes documents back out as GEDCOM text.
type GEDEncoder struct {
	w    io.Writer
	doc  *gedcom.Document
	opts options
}

func NewGEDEncoder(w io.Writer, opts ...Option) *GEDEncoder {
	return &GEDEncoder{w: w, opts: newOptions(opts)}
}

func (e *GEDEncoder) Encode(doc *gedcom.Document) error {
	e.doc = doc
	return gedcom.Write(e.w, doc, e.opts.write...)
}

func (e *GEDEncoder) MarshalText() ([]byte, error) {
	return gedcom.Marshal(e.doc, e.opts.write...)
}
