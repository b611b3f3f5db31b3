package ui

import (
	"fmt"
	"path/filepath"

	"github.com/ZocoLini/mk-template/pkg/txml"
)

// Reporter prints every node an instantiation creates or skips. Paths are
// shown relative to root when possible.
type Reporter struct {
	p    *Printer
	root string
}

var _ txml.Reporter = (*Reporter)(nil)

// NewReporter creates a reporter printing through p
func NewReporter(p *Printer, root string) *Reporter {
	return &Reporter{p: p, root: root}
}

func (r *Reporter) DirectoryCreated(path string) {
	fmt.Fprintf(r.p.out, "  %s %s\n", r.p.styles.Success.Render("+"), r.rel(path)+string(filepath.Separator))
}

func (r *Reporter) FileCreated(path string) {
	fmt.Fprintf(r.p.out, "  %s %s\n", r.p.styles.Success.Render("+"), r.rel(path))
}

func (r *Reporter) Skipped(path string) {
	fmt.Fprintf(r.p.out, "  %s %s\n", r.p.styles.Muted.Render("="), r.p.styles.Muted.Render(r.rel(path)+" (exists)"))
}

func (r *Reporter) HookFailed(path, hook string, err error) {
	r.p.Warning("%s of %s failed: %v", hook, r.rel(path), err)
}

func (r *Reporter) rel(path string) string {
	if r.root == "" {
		return path
	}
	rel, err := filepath.Rel(r.root, path)
	if err != nil {
		return path
	}
	return rel
}
