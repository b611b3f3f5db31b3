package ui

import (
	"io"
	"os"
	"strings"

	"github.com/ZocoLini/mk-template/pkg/errors"
	"github.com/ZocoLini/mk-template/pkg/txml"
	"github.com/pterm/pterm"
)

// Prompter asks the user for variable values. On a terminal it uses pterm's
// interactive input, otherwise it reads one line per variable from in.
type Prompter struct {
	interactive bool
	lines       txml.ValueSource
}

var _ txml.ValueSource = (*Prompter)(nil)

// NewPrompter creates a prompter reading from in and prompting on out
func NewPrompter(in *os.File, out io.Writer) *Prompter {
	return &Prompter{
		interactive: IsTerminal(in),
		lines:       txml.LineSource(in, out),
	}
}

// Value implements txml.ValueSource
func (p *Prompter) Value(name string) (string, error) {
	if !p.interactive {
		return p.lines.Value(name)
	}

	answer, err := pterm.DefaultInteractiveTextInput.Show(name)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrVariableResolve, "failed to read a value for %s", name).
			WithDetail("variable", name)
	}
	return strings.TrimSpace(answer), nil
}
