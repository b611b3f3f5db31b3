package ui

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format is an output format of the list and info commands
type Format int

const (
	// FormatAuto follows the color setting of the printer
	FormatAuto Format = iota
	// FormatTerminal renders styled output
	FormatTerminal
	// FormatText renders plain text without styling
	FormatText
	// FormatYAML renders machine-readable YAML
	FormatYAML
)

var formatNames = map[string]Format{
	"auto":     FormatAuto,
	"":         FormatAuto,
	"term":     FormatTerminal,
	"terminal": FormatTerminal,
	"text":     FormatText,
	"plain":    FormatText,
	"yaml":     FormatYAML,
	"yml":      FormatYAML,
}

func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatTerminal:
		return "term"
	case FormatText:
		return "text"
	case FormatYAML:
		return "yaml"
	}
	return "unknown"
}

// ParseFormat parses a --output value, case insensitively
func ParseFormat(s string) (Format, error) {
	if f, ok := formatNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}

	known := make([]string, 0, len(formatNames))
	for name := range formatNames {
		if name != "" {
			known = append(known, name)
		}
	}
	sort.Strings(known)
	return FormatAuto, fmt.Errorf("unknown format %q (one of %s)", s, strings.Join(known, ", "))
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// DetectFormat picks FormatTerminal or FormatText for w. Writers that are not
// a terminal, NO_COLOR and noColor all give FormatText, and so does a
// terminal without color support.
func DetectFormat(w io.Writer, noColor bool) Format {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return FormatText
	}

	f, ok := w.(*os.File)
	if !ok || !IsTerminal(f) {
		return FormatText
	}
	if termenv.NewOutput(f).ColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}

