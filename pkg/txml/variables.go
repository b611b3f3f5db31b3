package txml

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ZocoLini/mk-template/pkg/errors"
	"github.com/ZocoLini/mk-template/pkg/logging"
)

// ValueSource supplies values for variables declared without one
type ValueSource interface {
	Value(name string) (string, error)
}

// ValueSourceFunc adapts a function to ValueSource
type ValueSourceFunc func(name string) (string, error)

// Value calls f(name)
func (f ValueSourceFunc) Value(name string) (string, error) {
	return f(name)
}

// LineSource prompts with "name: " on out and reads one line from in
func LineSource(in io.Reader, out io.Writer) ValueSource {
	scanner := bufio.NewScanner(in)
	return ValueSourceFunc(func(name string) (string, error) {
		if out != nil {
			_, _ = fmt.Fprintf(out, "%s: ", name)
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", io.ErrUnexpectedEOF
		}
		return scanner.Text(), nil
	})
}

// MapSource serves pre-supplied values and asks Fallback for the rest
type MapSource struct {
	Values   map[string]string
	Fallback ValueSource
}

// Value implements ValueSource
func (m MapSource) Value(name string) (string, error) {
	if v, ok := m.Values[name]; ok {
		return v, nil
	}
	if m.Fallback == nil {
		return "", errors.Newf(errors.ErrVariableResolve, "no value supplied for variable %q", name).
			WithDetail("variable", name)
	}
	return m.Fallback.Value(name)
}

// CollectVariables returns every Variable element of the document, at any
// depth, in document order. Unknown elements are skipped.
func CollectVariables(text string) ([]Variable, error) {
	var vars []Variable

	r := NewReader(text)
	for {
		ev, err := r.Next()
		if err != nil {
			if errors.IsErrorCode(err, errors.ErrUnexpectedElement) {
				continue
			}
			return nil, err
		}
		if ev.Kind == KindEOF {
			return vars, nil
		}
		if ev.Kind != KindVariable || ev.State == StateEnd {
			continue
		}

		var v Variable
		for _, a := range ev.Attrs {
			switch a.Name {
			case "name":
				v.Name = a.Value
			case "value":
				v.Value = a.Value
			}
		}
		vars = append(vars, v)
	}
}

// ResolveVariables substitutes every ${name} marker of the document with the
// value of the matching declared variable. Variables declared without a value
// are asked to source, and the answer is trimmed.
func ResolveVariables(text string, source ValueSource) (string, error) {
	logger := logging.GetLogger("txml.variables")

	vars, err := CollectVariables(text)
	if err != nil {
		return "", err
	}

	seen := make(map[string]bool, len(vars))
	for _, v := range vars {
		if v.Name == "" {
			logger.Debug().Msg("Skipping variable without a name")
			continue
		}
		// once substituted, later declarations of the name have nothing left to replace
		if seen[v.Name] {
			logger.Debug().Str("variable", v.Name).Msg("Ignoring duplicate variable declaration")
			continue
		}
		seen[v.Name] = true

		value := v.Value
		if value == "" {
			if source == nil {
				return "", errors.Newf(errors.ErrVariableResolve, "variable %q has no value and no source", v.Name).
					WithDetail("variable", v.Name)
			}
			asked, err := source.Value(v.Name)
			if err != nil {
				return "", errors.Wrapf(err, errors.ErrVariableResolve, "failed to read value for %q", v.Name).
					WithDetail("variable", v.Name)
			}
			value = strings.TrimSpace(asked)
		}

		logger.Trace().Str("variable", v.Name).Str("value", value).Msg("Substituting variable")
		text = strings.ReplaceAll(text, "${"+v.Name+"}", value)
	}

	return text, nil
}
