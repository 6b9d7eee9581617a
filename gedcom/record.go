package gedcom

import "fmt"

type RecordKind int

const (
	CustomRecord RecordKind = iota
	HeaderRecord
	IndividualRecord
	FamilyRecord
	SourceRecord
	RepositoryRecord
	NoteRecord
	MultimediaRecord
	SubmitterRecord
	SubmissionRecord
	TrailerRecord
)

var recordKindNames = map[RecordKind]string{
	CustomRecord:     "custom",
	HeaderRecord:     "header",
	IndividualRecord: "individual",
	FamilyRecord:     "family",
	SourceRecord:     "source",
	RepositoryRecord: "repository",
	NoteRecord:       "note",
	MultimediaRecord: "multimedia",
	SubmitterRecord:  "submitter",
	SubmissionRecord: "submission",
	TrailerRecord:    "trailer",
}

func (k RecordKind) String() string {
	if name, ok := recordKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("RecordKind(%d)", int(k))
}

func (k RecordKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Record is one top-level GEDCOM record. The set of implementations is
// closed; tags without a typed record become *Custom.
type Record interface {
	Kind() RecordKind
	// XrefID is the record's cross-reference identifier, including the
	// surrounding @ signs, or "" when the record declares none.
	XrefID() string
	encode() *Node
}

// Document is the typed record graph of one GEDCOM file. Records keep the
// order they had in the file. A Document is not modified after Parse
// returns it and may be read from several goroutines.
type Document struct {
	Records []Record
	index   *Index
}

// NewDocument assembles a document from records built in memory.
func NewDocument(records ...Record) *Document {
	return &Document{
		Records: records,
		index:   NewIndex(records),
	}
}

func (d *Document) Index() *Index {
	if d.index == nil {
		return NewIndex(d.Records)
	}
	return d.index
}

// Resolve looks up the record declaring xref.
func (d *Document) Resolve(xref string) (Record, bool) {
	return d.Index().Resolve(xref)
}

func (d *Document) Header() *Header {
	for _, r := range d.Records {
		if h, ok := r.(*Header); ok {
			return h
		}
	}
	return nil
}

func (d *Document) Trailer() *Trailer {
	for _, r := range d.Records {
		if t, ok := r.(*Trailer); ok {
			return t
		}
	}
	return nil
}

func (d *Document) Individuals() []*Individual { return recordsOf[*Individual](d) }
func (d *Document) Families() []*Family         { return recordsOf[*Family](d) }
func (d *Document) Sources() []*Source          { return recordsOf[*Source](d) }
func (d *Document) Repositories() []*Repository { return recordsOf[*Repository](d) }
func (d *Document) Notes() []*Note              { return recordsOf[*Note](d) }
func (d *Document) Multimedia() []*Multimedia   { return recordsOf[*Multimedia](d) }
func (d *Document) Submitters() []*Submitter    { return recordsOf[*Submitter](d) }
func (d *Document) Submissions() []*Submission  { return recordsOf[*Submission](d) }
func (d *Document) Custom() []*Custom           { return recordsOf[*Custom](d) }

func recordsOf[T Record](d *Document) []T {
	var out []T
	for _, r := range d.Records {
		if t, ok := r.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// Individual returns the individual declaring xref.
func (d *Document) Individual(xref string) (*Individual, bool) {
	r, ok := d.Resolve(xref)
	if !ok {
		return nil, false
	}
	indi, ok := r.(*Individual)
	return indi, ok
}

// Stats counts the records of each kind.
func (d *Document) Stats() map[RecordKind]int {
	stats := make(map[RecordKind]int)
	for _, r := range d.Records {
		stats[r.Kind()]++
	}
	return stats
}

// Equal reports whether two documents hold the same records with the same
// field values in the same order.
func Equal(a, b *Document) bool {
	if len(a.Records) != len(b.Records) {
		return false
	}
	for i := range a.Records {
		if a.Records[i].Kind() != b.Records[i].Kind() {
			return false
		}
		if !a.Records[i].encode().Equal(b.Records[i].encode()) {
			return false
		}
	}
	return true
}

// Tree returns the generic node tree a record is written as.
func Tree(r Record) *Node {
	n := r.encode()
	setLevels(n, 0)
	return n
}

func setLevels(n *Node, level int) {
	n.Level = level
	for _, child := range n.Children {
		setLevels(child, level+1)
	}
}
