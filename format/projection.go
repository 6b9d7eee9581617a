package format

import "github.com/dhamidi/ged/gedcom"

// projectedDocument is the structured form of a document shared by the
// JSON and YAML encoders. Each record carries its kind as a discriminant
// and exactly one of the typed fields.
type projectedDocument struct {
	Records     []projectedRecord  `json:"records" yaml:"records"`
	Diagnostics gedcom.Diagnostics `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

type projectedRecord struct {
	Kind       gedcom.RecordKind  `json:"kind" yaml:"kind"`
	Header     *gedcom.Header     `json:"header,omitempty" yaml:"header,omitempty"`
	Individual *gedcom.Individual `json:"individual,omitempty" yaml:"individual,omitempty"`
	Family     *gedcom.Family     `json:"family,omitempty" yaml:"family,omitempty"`
	Source     *gedcom.Source     `json:"source,omitempty" yaml:"source,omitempty"`
	Repository *gedcom.Repository `json:"repository,omitempty" yaml:"repository,omitempty"`
	Note       *gedcom.Note       `json:"note,omitempty" yaml:"note,omitempty"`
	Multimedia *gedcom.Multimedia `json:"multimedia,omitempty" yaml:"multimedia,omitempty"`
	Submitter  *gedcom.Submitter  `json:"submitter,omitempty" yaml:"submitter,omitempty"`
	Submission *gedcom.Submission `json:"submission,omitempty" yaml:"submission,omitempty"`
	Trailer    *gedcom.Trailer    `json:"trailer,omitempty" yaml:"trailer,omitempty"`
	Custom     *gedcom.Node       `json:"custom,omitempty" yaml:"custom,omitempty"`
}

func project(doc *gedcom.Document, diags gedcom.Diagnostics) projectedDocument {
	out := projectedDocument{
		Records:     make([]projectedRecord, 0, len(doc.Records)),
		Diagnostics: diags,
	}
	for _, r := range doc.Records {
		out.Records = append(out.Records, projectRecord(r))
	}
	return out
}

func projectRecord(r gedcom.Record) projectedRecord {
	p := projectedRecord{Kind: r.Kind()}
	switch r := r.(type) {
	case *gedcom.Header:
		p.Header = r
	case *gedcom.Individual:
		p.Individual = r
	case *gedcom.Family:
		p.Family = r
	case *gedcom.Source:
		p.Source = r
	case *gedcom.Repository:
		p.Repository = r
	case *gedcom.Note:
		p.Note = r
	case *gedcom.Multimedia:
		p.Multimedia = r
	case *gedcom.Submitter:
		p.Submitter = r
	case *gedcom.Submission:
		p.Submission = r
	case *gedcom.Trailer:
		p.Trailer = r
	case *gedcom.Custom:
		p.Custom = r.Node
	}
	return p
}
