package gedcom

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("ged.gedcom")

type parseOptions struct {
	file          string
	reportUnknown bool
}

type Option func(*parseOptions)

// WithFile names the input in log output.
func WithFile(name string) Option {
	return func(o *parseOptions) { o.file = name }
}

// WithoutUnknownTags suppresses Unknown-Tag diagnostics. Unknown tags are
// still kept as extensions.
func WithoutUnknownTags() Option {
	return func(o *parseOptions) { o.reportUnknown = false }
}

var knownCharsets = toSet(
	"ASCII", "ANSEL", "UTF-8", "UTF8", "UNICODE", "UTF-16", "ANSI", "IBM WINDOWS", "IBMPC", "MACINTOSH",
)

// singleByteCharsets may carry bytes that are not valid UTF-8. Their
// content is kept as is.
var singleByteCharsets = toSet("ANSEL", "ANSI", "ASCII", "IBMPC", "MACINTOSH", "IBM WINDOWS")

// Parse reads GEDCOM text into a typed document. Problems with individual
// lines never stop the parse: they are returned as diagnostics next to the
// best-effort document. The error is non-nil only for input that cannot
// produce a document at all, and is then a *FatalError.
func Parse(data []byte, opts ...Option) (*Document, Diagnostics, error) {
	o := parseOptions{reportUnknown: true}
	for _, opt := range opts {
		opt(&o)
	}
	if err := checkDecodable(data); err != nil {
		log.Debugf("%s: %s", o.displayName(), err)
		return nil, nil, err
	}

	var c Collector
	r := NewReader(data, &c)
	b := NewBuilder(&c)
	lines := 0
	for {
		line, ok := r.Next()
		if !ok {
			break
		}
		b.Add(line)
		lines++
	}
	roots := b.Finish()

	m := materializer{collector: &c, reportUnknown: o.reportUnknown}
	records := m.records(roots)

	charNode := declaredCharset(roots)
	charset := ""
	if charNode != nil {
		charset = strings.TrimSpace(charNode.Value)
	}
	if !utf8.Valid(data) && !singleByteCharsets[strings.ToUpper(charset)] {
		err := &FatalError{Err: ErrUndecodable, Detail: "content is not valid UTF-8"}
		if charset != "" {
			err.Detail += " and " + charset + " is not a single-byte character set"
		}
		log.Debugf("%s: %s", o.displayName(), err)
		return nil, nil, err
	}
	checkEncoding(data, charNode, &c)

	doc := NewDocument(records...)
	for _, i := range doc.index.Duplicates() {
		c.Add(Diagnostic{
			Kind:    KindMalformedLine,
			Line:    roots[i].Line,
			Text:    roots[i].Text(),
			Tag:     roots[i].Tag,
			Message: "duplicate cross-reference " + roots[i].Xref + ", first declaration kept",
		})
	}
	checkReferences(roots, doc.index, &c)

	diags := c.Diagnostics()
	log.Debugf("%s: %d lines, %d records, %d diagnostics", o.displayName(), lines, len(records), len(diags))
	return doc, diags, nil
}

func (o *parseOptions) displayName() string {
	if o.file == "" {
		return "<input>"
	}
	return o.file
}

// checkDecodable rejects input that holds no text at all or that is
// clearly not an 8-bit encoding.
func checkDecodable(data []byte) error {
	switch {
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}), bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return &FatalError{Err: ErrUndecodable, Detail: "UTF-16 byte order mark"}
	case bytes.IndexByte(data, 0) >= 0:
		return &FatalError{Err: ErrUndecodable, Detail: "NUL byte in input"}
	}
	text := bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(text)) == 0 {
		return &FatalError{Err: ErrEmptyInput}
	}
	return nil
}

// declaredCharset returns the CHAR line of the header, or nil.
func declaredCharset(roots []*Node) *Node {
	for _, root := range roots {
		if CanonicalTag(root.Tag) == "HEAD" {
			return root.FirstChild("CHAR")
		}
	}
	return nil
}

func checkEncoding(data []byte, char *Node, c *Collector) {
	if char == nil || strings.TrimSpace(char.Value) == "" {
		return
	}
	charset := strings.TrimSpace(char.Value)
	name := strings.ToUpper(charset)
	line, text := char.Line, char.Text()
	switch {
	case !knownCharsets[name]:
		c.Addf(KindEncodingMismatch, line, text, "unsupported character set %s", charset)
	case name == "ASCII" && hasHighBytes(data):
		c.Addf(KindEncodingMismatch, line, text, "declared ASCII but content has bytes above 0x7F")
	case (name == "UNICODE" || name == "UTF-16") && utf8.Valid(data):
		c.Addf(KindEncodingMismatch, line, text, "declared %s but content is 8-bit text", charset)
	}
}

func hasHighBytes(data []byte) bool {
	for _, b := range bytes.TrimPrefix(data, utf8BOM) {
		if b > 0x7F {
			return true
		}
	}
	return false
}
