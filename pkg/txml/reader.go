package txml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/ZocoLini/mk-template/pkg/errors"
)

// Kind classifies an event
type Kind int

const (
	KindRoot Kind = iota
	KindMetadata
	KindVariable
	KindDirectory
	KindFile
	KindText
	KindComment
	KindDeclaration
	KindEOF
)

var kindNames = map[Kind]string{
	KindRoot:        "Root",
	KindMetadata:    "Metadata",
	KindVariable:    "Variable",
	KindDirectory:   "Directory",
	KindFile:        "File",
	KindText:        "Text",
	KindComment:     "Comment",
	KindDeclaration: "Declaration",
	KindEOF:         "Eof",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// elementKinds maps the known tag names to their kind
var elementKinds = map[string]Kind{
	"Root":      KindRoot,
	"Metadata":  KindMetadata,
	"Variable":  KindVariable,
	"Directory": KindDirectory,
	"File":      KindFile,
}

// State is the structural position of an element event
type State int

const (
	StateStart State = iota
	StateEmpty
	StateEnd
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "Start"
	case StateEmpty:
		return "Empty"
	case StateEnd:
		return "End"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Attr is an element attribute. Prefixed names keep their prefix ("xsi:foo").
type Attr struct {
	Name  string
	Value string
}

// Event is a single item of the reader's output. State and Attrs are only
// meaningful for element kinds; Text holds the payload of Text, Comment and
// Declaration events.
type Event struct {
	Kind  Kind
	State State
	Name  string
	Attrs []Attr
	Text  string
}

// Attr returns the value of the named attribute
func (e Event) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// IsElement reports whether the event is one of the five element kinds
func (e Event) IsElement() bool {
	return e.Kind <= KindFile
}

// Reader turns TXML text into a sequence of events.
//
// Once Eof has been returned every further call returns Eof. A fatal error
// is returned again on every further call. ErrUnexpectedElement is not
// fatal: the caller may keep calling Next.
type Reader struct {
	src string
	dec *xml.Decoder

	// open element names, used to reject mismatched end tags
	stack []string

	// the decoder reports <X/> as a start followed by a synthetic end;
	// pendingEnd marks that synthetic end as already delivered
	pendingEnd bool

	offset  int64
	charset string
	done    bool
	err     error
}

// NewReader creates a reader over text. A leading byte order mark is ignored.
func NewReader(text string) *Reader {
	text = strings.TrimPrefix(text, "\ufeff")

	r := &Reader{src: text}
	dec := xml.NewDecoder(strings.NewReader(text))
	dec.Strict = true
	dec.CharsetReader = func(label string, _ io.Reader) (io.Reader, error) {
		r.charset = label
		return nil, fmt.Errorf("charset %q is not supported", label)
	}
	r.dec = dec
	return r
}

// Next returns the next event
func (r *Reader) Next() (Event, error) {
	if r.err != nil {
		return Event{}, r.err
	}
	if r.done {
		return Event{Kind: KindEOF}, nil
	}

	if r.pendingEnd {
		r.pendingEnd = false
		if _, err := r.dec.RawToken(); err != nil {
			return r.fail(err)
		}
	}

	tok, err := r.dec.RawToken()
	if err == io.EOF {
		r.done = true
		return Event{Kind: KindEOF}, nil
	}
	if err != nil {
		return r.fail(err)
	}

	start := r.offset
	r.offset = r.dec.InputOffset()
	raw := r.slice(start, r.offset)

	switch t := tok.(type) {
	case xml.StartElement:
		name := qualifiedName(t.Name)
		state := StateStart
		if strings.HasSuffix(raw, "/>") {
			state = StateEmpty
			r.pendingEnd = true
		} else {
			r.stack = append(r.stack, name)
		}

		kind, ok := elementKinds[name]
		if !ok {
			return Event{}, unexpectedElement(name)
		}
		return Event{Kind: kind, State: state, Name: name, Attrs: convertAttrs(t.Attr)}, nil

	case xml.EndElement:
		name := qualifiedName(t.Name)
		if len(r.stack) == 0 || r.stack[len(r.stack)-1] != name {
			return r.fail(errors.Newf(errors.ErrReaderUnknown, "unexpected end tag </%s>", name).
				WithDetail("offset", start))
		}
		r.stack = r.stack[:len(r.stack)-1]

		kind, ok := elementKinds[name]
		if !ok {
			return Event{}, unexpectedElement(name)
		}
		return Event{Kind: kind, State: StateEnd, Name: name}, nil

	case xml.CharData:
		if strings.HasPrefix(raw, "<![CDATA[") {
			return Event{Kind: KindText, Text: Escape(string(t))}, nil
		}
		return Event{Kind: KindText, Text: raw}, nil

	case xml.Comment:
		return Event{Kind: KindComment, Text: string(t)}, nil

	case xml.ProcInst:
		return Event{Kind: KindDeclaration, Name: t.Target, Text: string(t.Inst)}, nil

	case xml.Directive:
		return Event{Kind: KindDeclaration, Text: string(t)}, nil
	}

	return r.fail(errors.Newf(errors.ErrUnsupportedEncoding, "unclassified token %T", tok))
}

// Depth returns the number of currently open elements
func (r *Reader) Depth() int {
	return len(r.stack)
}

func (r *Reader) slice(start, end int64) string {
	if start < 0 || end > int64(len(r.src)) || start > end {
		return ""
	}
	return r.src[start:end]
}

func (r *Reader) fail(err error) (Event, error) {
	switch {
	case errors.GetErrorCode(err) != errors.ErrUnknown:
		r.err = err
	case r.charset != "":
		r.err = errors.Wrapf(err, errors.ErrUnsupportedEncoding, "unsupported encoding %q", r.charset).
			WithDetail("encoding", r.charset)
	default:
		mktErr := errors.Wrap(err, errors.ErrReaderUnknown, "malformed markup")
		if syntaxErr, ok := err.(*xml.SyntaxError); ok {
			mktErr.WithDetail("line", syntaxErr.Line)
		}
		r.err = mktErr
	}
	return Event{}, r.err
}

func unexpectedElement(name string) error {
	return errors.Newf(errors.ErrUnexpectedElement, "unexpected element <%s>", name).
		WithDetail("tag", name)
}

func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func convertAttrs(attrs []xml.Attr) []Attr {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]Attr, len(attrs))
	for i, a := range attrs {
		out[i] = Attr{Name: qualifiedName(a.Name), Value: a.Value}
	}
	return out
}
