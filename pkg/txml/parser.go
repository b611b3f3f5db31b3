package txml

import (
	"strings"
	"unicode/utf8"

	"github.com/ZocoLini/mk-template/pkg/errors"
	"github.com/ZocoLini/mk-template/pkg/filesystem"
	"github.com/ZocoLini/mk-template/pkg/logging"
)

// Parse builds a Structure from a document whose variables have already been
// substituted. Unknown elements are skipped. Parsing stops at the Root end
// tag, or at end of input.
func Parse(text string) (*Structure, error) {
	logger := logging.GetLogger("txml.parser")

	s := NewStructure()
	var stack []*Directory
	var current *File

	top := func() parent {
		if len(stack) > 0 {
			return stack[len(stack)-1]
		}
		return s
	}

	r := NewReader(text)
	for {
		ev, err := r.Next()
		if err != nil {
			if errors.IsErrorCode(err, errors.ErrUnexpectedElement) {
				logger.Debug().Err(err).Msg("Skipping unknown element")
				continue
			}
			return nil, errors.Wrap(err, errors.ErrUnknownParse, "failed to parse markup")
		}

		switch ev.Kind {
		case KindEOF:
			if len(stack) > 0 {
				open := stack[len(stack)-1]
				return nil, errors.Newf(errors.ErrUnterminatedElement, "directory %q is never closed", open.Name).
					WithDetail("element", "Directory").
					WithDetail("name", open.Name)
			}
			if current != nil {
				return nil, errors.Newf(errors.ErrUnterminatedElement, "file %q is never closed", current.Name).
					WithDetail("element", "File").
					WithDetail("name", current.Name)
			}
			return s, nil

		case KindRoot:
			switch ev.State {
			case StateStart:
				applyRootAttrs(s, ev)
			case StateEmpty:
				applyRootAttrs(s, ev)
				return s, nil
			case StateEnd:
				return s, nil
			}

		case KindMetadata:
			if ev.State != StateEnd {
				applyMetadataAttrs(&s.Metadata, ev)
			}

		case KindVariable:
			// consumed by ResolveVariables

		case KindDirectory:
			switch ev.State {
			case StateStart:
				stack = append(stack, newDirectory(ev))
			case StateEmpty:
				top().AddDirectory(newDirectory(ev))
			case StateEnd:
				if len(stack) == 0 {
					continue
				}
				closed := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				top().AddDirectory(closed)
			}

		case KindFile:
			switch ev.State {
			case StateStart:
				current = newFile(ev)
			case StateEmpty:
				top().AddFile(newFile(ev))
			case StateEnd:
				if current == nil {
					continue
				}
				top().AddFile(current)
				current = nil
			}

		case KindText:
			if current != nil && strings.TrimSpace(ev.Text) != "" {
				current.Content = ev.Text
			}

		case KindComment, KindDeclaration:
		}
	}
}

// ParseWithVariables resolves the document's variables then parses it
func ParseWithVariables(text string, source ValueSource) (*Structure, error) {
	resolved, err := ResolveVariables(text, source)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrVariableResolve) {
			return nil, err
		}
		return nil, errors.Wrap(err, errors.ErrUnknownParse, "failed to read variables")
	}
	return Parse(resolved)
}

// ParseFile reads a TXML document from path and parses it with variables
func ParseFile(fsys filesystem.FS, path string, source ValueSource) (*Structure, error) {
	text, err := ReadDocument(fsys, path)
	if err != nil {
		return nil, err
	}
	return ParseWithVariables(text, source)
}

// ReadDocument loads the text of a TXML document. The path must be an
// existing regular file holding valid UTF-8.
func ReadDocument(fsys filesystem.FS, path string) (string, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidDirectory, "cannot read template %s", path).
			WithDetail("path", path)
	}
	if !info.Mode().IsRegular() {
		return "", errors.Newf(errors.ErrInvalidDirectory, "%s is not a file", path).
			WithDetail("path", path)
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidDirectory, "cannot read template %s", path).
			WithDetail("path", path)
	}
	if !utf8.Valid(data) {
		return "", errors.Newf(errors.ErrBinaryFile, "%s is not a text file", path).
			WithDetail("path", path)
	}
	return string(data), nil
}

// Validate reports whether the document is lexically well formed: the
// reader reaches end of input without a fatal error.
func Validate(text string) bool {
	r := NewReader(text)
	for {
		ev, err := r.Next()
		if err != nil {
			if errors.IsErrorCode(err, errors.ErrUnexpectedElement) {
				continue
			}
			return false
		}
		if ev.Kind == KindEOF {
			return true
		}
	}
}

func applyRootAttrs(s *Structure, ev Event) {
	if v, ok := ev.Attr("renamable"); ok {
		s.Renamable = parseRenamable(v)
	}
}

func parseRenamable(v string) bool {
	v = strings.TrimSpace(v)
	return !(strings.EqualFold(v, "false") || v == "0")
}

func applyMetadataAttrs(m *Metadata, ev Event) {
	for _, a := range ev.Attrs {
		switch a.Name {
		case "author":
			m.Author = a.Value
		case "date":
			m.Date = a.Value
		case "version":
			m.Version = a.Value
		case "description":
			m.Description = a.Value
		default:
			logUnknownAttr(ev, a)
		}
	}
}

func newDirectory(ev Event) *Directory {
	d := &Directory{}
	for _, a := range ev.Attrs {
		switch a.Name {
		case "name":
			d.Name = a.Value
		case "in_command":
			d.InCommand = a.Value
		case "out_command":
			d.OutCommand = a.Value
		default:
			logUnknownAttr(ev, a)
		}
	}
	return d
}

func newFile(ev Event) *File {
	f := &File{}
	for _, a := range ev.Attrs {
		switch a.Name {
		case "name":
			f.Name = a.Value
		case "extension":
			f.Extension = a.Value
		case "command":
			f.Command = a.Value
		default:
			logUnknownAttr(ev, a)
		}
	}
	return f
}

func logUnknownAttr(ev Event, a Attr) {
	logger := logging.GetLogger("txml.parser")
	logger.Debug().
		Str("element", ev.Name).
		Str("attribute", a.Name).
		Msg("Ignoring unknown attribute")
}
