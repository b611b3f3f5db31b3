package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ZocoLini/mk-template/pkg/errors"
	"github.com/ZocoLini/mk-template/pkg/templates"
	"github.com/ZocoLini/mk-template/pkg/txml"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"
)

// Printer writes user facing messages and command results
type Printer struct {
	out    io.Writer
	color  bool
	styles Styles
}

// NewPrinter creates a printer writing to out
func NewPrinter(out io.Writer, color bool) *Printer {
	return &Printer{
		out:    out,
		color:  color,
		styles: NewStyles(out, color),
	}
}

// Writer returns the printer's destination
func (p *Printer) Writer() io.Writer {
	return p.out
}

// Color reports whether the printer styles its output
func (p *Printer) Color() bool {
	return p.color
}

func (p *Printer) prefix(pp pterm.PrefixPrinter) string {
	text := strings.TrimSpace(pp.Prefix.Text)
	if !p.color {
		return text
	}
	return pp.Prefix.Style.Sprint(" " + text + " ")
}

// Success prints a message with the SUCCESS prefix
func (p *Printer) Success(format string, args ...interface{}) {
	fmt.Fprintf(p.out, "%s %s\n", p.prefix(pterm.Success), fmt.Sprintf(format, args...))
}

// Warning prints a message with the WARNING prefix
func (p *Printer) Warning(format string, args ...interface{}) {
	fmt.Fprintf(p.out, "%s %s\n", p.prefix(pterm.Warning), p.styles.Warning.Render(fmt.Sprintf(format, args...)))
}

// Error prints err with the ERROR prefix, leading with its code when it has one
func (p *Printer) Error(err error) {
	msg := err.Error()
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		prefix := fmt.Sprintf("[%s] ", code)
		msg = p.styles.Error.Render(string(code)) + " " + strings.TrimPrefix(msg, prefix)
	}
	fmt.Fprintf(p.out, "%s %s\n", p.prefix(pterm.Error), msg)
}

// Result summarizes a spawn
func (p *Printer) Result(name string, res *txml.Result) {
	p.Success("Spawned %s: %d directories, %d files created", p.styles.Name.Render(name), res.DirectoriesCreated, res.FilesCreated)
	if res.Skipped > 0 {
		fmt.Fprintln(p.out, p.styles.Muted.Render(fmt.Sprintf("  %d existing paths left untouched", res.Skipped)))
	}
	if res.HookFailures > 0 {
		p.Warning("%d commands failed", res.HookFailures)
	}
}

// Entries prints one line per template: name, kind and description
func (p *Printer) Entries(entries []templates.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(p.out, p.styles.Muted.Render("No templates registered. Add one with: mkt add <path>"))
		return
	}

	width := 0
	for _, e := range entries {
		if len(e.Name) > width {
			width = len(e.Name)
		}
	}

	for _, e := range entries {
		name := p.styles.Name.Render(e.Name) + strings.Repeat(" ", width-len(e.Name))
		kind := p.styles.Kind.Render(string(e.Kind)) + strings.Repeat(" ", 4-len(e.Kind))
		fmt.Fprintf(p.out, "%s  %s  %s\n", name, kind, firstLine(e.Description))
	}
}

// EntriesYAML prints entries as a YAML sequence
func (p *Printer) EntriesYAML(entries []templates.Entry) error {
	if entries == nil {
		entries = []templates.Entry{}
	}
	enc := yaml.NewEncoder(p.out)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode templates")
	}
	return enc.Close()
}

// Info prints the details of one template. The description is Markdown.
func (p *Printer) Info(info *templates.Info) {
	fmt.Fprintln(p.out, p.styles.Title.Render(info.Name))
	p.field("kind", string(info.Kind))
	p.field("source", info.Source)
	p.field("stored", p.styles.Path.Render(info.Path))
	if !info.Added.IsZero() {
		p.field("added", info.Added.Local().Format(time.RFC3339))
	}
	p.field("author", info.Metadata.Author)
	p.field("version", info.Metadata.Version)
	p.field("date", info.Metadata.Date)

	if len(info.Variables) > 0 {
		fmt.Fprintln(p.out, p.styles.Muted.Render("variables:"))
		for _, v := range info.Variables {
			if v.Value == "" {
				fmt.Fprintf(p.out, "  %s %s\n", p.styles.Name.Render(v.Name), p.styles.Muted.Render("(asked)"))
			} else {
				fmt.Fprintf(p.out, "  %s = %s\n", p.styles.Name.Render(v.Name), v.Value)
			}
		}
	}

	fmt.Fprintln(p.out)
	fmt.Fprint(p.out, RenderMarkdown(info.Description, p.color, 0))
}

func (p *Printer) field(label, value string) {
	if value == "" {
		return
	}
	label += ":"
	fmt.Fprintf(p.out, "%s%s %s\n", p.styles.Muted.Render(label), strings.Repeat(" ", 8-len(label)), value)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
