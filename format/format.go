// Package format renders parsed GEDCOM documents for output.
package format

import (
	"encoding"
	"fmt"
	"io"
	"sort"

	"github.com/dhamidi/ged/gedcom"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(doc *gedcom.Document) error
}

type options struct {
	diagnostics gedcom.Diagnostics
	write       []gedcom.WriteOption
}

type Option func(*options)

// WithDiagnostics attaches parse diagnostics to the structured projections.
func WithDiagnostics(diags gedcom.Diagnostics) Option {
	return func(o *options) { o.diagnostics = diags }
}

// WithWriteOptions passes options through to the GEDCOM writer.
func WithWriteOptions(opts ...gedcom.WriteOption) Option {
	return func(o *options) { o.write = append(o.write, opts...) }
}

type constructor func(w io.Writer, opts ...Option) Encoder

var encoders = map[string]constructor{
	"json": func(w io.Writer, opts ...Option) Encoder { return NewJSONEncoder(w, opts...) },
	"yaml": func(w io.Writer, opts ...Option) Encoder { return NewYAMLEncoder(w, opts...) },
	"ged":  func(w io.Writer, opts ...Option) Encoder { return NewGEDEncoder(w, opts...) },
	"line": func(w io.Writer, opts ...Option) Encoder { return NewLineEncoder(w, opts...) },
}

// New returns the encoder registered under name.
func New(name string, w io.Writer, opts ...Option) (Encoder, error) {
	ctor, ok := encoders[name]
	if !ok {
		return nil, fmt.Errorf("unknown format %q (expected one of %v)", name, Names())
	}
	return ctor(w, opts...), nil
}

// Names lists the registered format names.
func Names() []string {
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// write renders m and copies the text to w.
func write(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
