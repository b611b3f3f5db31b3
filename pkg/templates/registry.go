package templates

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ZocoLini/mk-template/pkg/errors"
	"github.com/ZocoLini/mk-template/pkg/filesystem"
	"github.com/ZocoLini/mk-template/pkg/logging"
	"github.com/ZocoLini/mk-template/pkg/txml"
	"github.com/rs/zerolog"
)

// Fixed descriptions for templates that carry no metadata
const (
	DescriptionTXML = "TXML Template"
	DescriptionDir  = "A directory template copied as it is."
	DescriptionGit  = "A git template from a reachable repository."
)

// AddOptions controls how Add stores a template
type AddOptions struct {
	// Replace overwrites a template registered under the same name
	Replace bool
	// AsDir stores a directory as a plain copy instead of converting it to TXML
	AsDir bool
	// Strict additionally checks a TXML file against the element grammar
	Strict bool
}

// Entry describes a registered template
type Entry struct {
	Name        string    `yaml:"name"`
	Kind        Kind      `yaml:"kind"`
	Description string    `yaml:"description"`
	Source      string    `yaml:"source"`
	Added       time.Time `yaml:"added"`
}

// Info is an Entry plus what the stored document declares
type Info struct {
	Entry
	Path      string
	Metadata  txml.Metadata
	Variables []txml.Variable
}

// Registry stores templates under a single directory
type Registry struct {
	dir      string
	fs       filesystem.FS
	runner   txml.CommandRunner
	engine   *txml.Engine
	reporter txml.Reporter
	now      func() time.Time
	logger   zerolog.Logger
}

// Option configures a Registry
type Option func(*Registry)

// WithFS sets the filesystem holding both the registry and spawn targets
func WithFS(fsys filesystem.FS) Option {
	return func(r *Registry) {
		r.fs = fsys
	}
}

// WithRunner sets the runner used to clone git templates
func WithRunner(runner txml.CommandRunner) Option {
	return func(r *Registry) {
		r.runner = runner
	}
}

// WithEngine sets the engine instantiating TXML templates
func WithEngine(engine *txml.Engine) Option {
	return func(r *Registry) {
		r.engine = engine
	}
}

// WithReporter sets the reporter receiving created and skipped paths
func WithReporter(reporter txml.Reporter) Option {
	return func(r *Registry) {
		r.reporter = reporter
	}
}

// WithClock sets the time source for record timestamps
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

// New creates a registry rooted at dir. Without an explicit engine, one is
// built on the registry's filesystem, runner and reporter.
func New(dir string, opts ...Option) *Registry {
	r := &Registry{
		dir:    dir,
		fs:     filesystem.NewOS(),
		runner: &txml.ExecRunner{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr},
		now:    func() time.Time { return time.Now().UTC().Truncate(time.Second) },
		logger: logging.GetLogger("templates"),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.reporter == nil {
		r.reporter = txml.NewLogReporter()
	}
	if r.engine == nil {
		r.engine = txml.NewEngine(txml.WithFS(r.fs), txml.WithRunner(r.runner), txml.WithReporter(r.reporter))
	}
	return r
}

// Dir returns the registry directory
func (r *Registry) Dir() string {
	return r.dir
}

// ValidateName rejects names that cannot be used as a single path element
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return errors.Newf(errors.ErrInvalidInput, "invalid template name %q", name).
			WithDetail("name", name)
	}
	return nil
}

// pending is a validated template waiting to be written
type pending struct {
	rec   *Record
	write func() error
}

// Add registers src under name. A source ending in .git is recorded as a
// git URL; a directory is converted to TXML unless AsDir is set; any other
// path must be a well formed TXML document.
func (r *Registry) Add(name, src string, opts AddOptions) (*Entry, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	exists := filesystem.Exists(r.fs, r.recordPath(name))
	if exists && !opts.Replace {
		return nil, errors.Newf(errors.ErrAlreadyExists, "template %q already exists", name).
			WithDetail("template", name)
	}

	p, err := r.prepare(name, src, opts)
	if err != nil {
		return nil, err
	}

	if exists {
		r.logger.Debug().Str("template", name).Msg("Replacing existing template")
		if err := r.Remove(name); err != nil {
			return nil, err
		}
	}

	if err := r.fs.MkdirAll(r.dir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create registry %s", r.dir).
			WithDetail("path", r.dir)
	}
	if p.write != nil {
		if err := p.write(); err != nil {
			return nil, err
		}
	}

	p.rec.Added = r.now()
	data, err := encodeRecord(p.rec)
	if err != nil {
		return nil, err
	}
	if err := r.fs.WriteFile(r.recordPath(name), data, 0644); err != nil {
		_ = r.removeArtifact(p.rec)
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to write record for %s", name).
			WithDetail("template", name)
	}

	r.logger.Info().Str("template", name).Str("kind", string(p.rec.Kind)).Msg("Template added")
	return r.entry(name, p.rec, ""), nil
}

func (r *Registry) prepare(name, src string, opts AddOptions) (*pending, error) {
	if strings.HasSuffix(src, ".git") {
		return &pending{rec: &Record{Kind: KindGit, Source: src, Origin: src}}, nil
	}

	origin := src
	if abs, err := filepath.Abs(src); err == nil {
		origin = abs
	}

	info, err := r.fs.Stat(src)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNotFound, "template source %s does not exist", src).
			WithDetail("path", src)
	}

	if info.IsDir() {
		if opts.AsDir {
			artifact := name + dirExt
			return &pending{
				rec: &Record{Kind: KindDir, Source: artifact, Origin: origin},
				write: func() error {
					_, err := copyTree(r.fs, src, filepath.Join(r.dir, artifact), nil)
					return err
				},
			}, nil
		}

		s, err := txml.FromPath(r.fs, src)
		if err != nil {
			return nil, err
		}
		return r.pendingDocument(name, txml.ToMarkup(s), origin), nil
	}

	text, err := txml.ReadDocument(r.fs, src)
	if err != nil {
		return nil, err
	}
	if !txml.Validate(text) {
		return nil, errors.Newf(errors.ErrTemplateInvalid, "%s is not a valid TXML document", src).
			WithDetail("path", src)
	}
	if opts.Strict {
		if err := txml.ValidateStrict(text); err != nil {
			return nil, errors.Wrapf(err, errors.ErrTemplateInvalid, "%s does not follow the TXML grammar", src).
				WithDetail("path", src)
		}
	}
	return r.pendingDocument(name, text, origin), nil
}

func (r *Registry) pendingDocument(name, text, origin string) *pending {
	artifact := name + txmlExt
	return &pending{
		rec: &Record{Kind: KindTXML, Source: artifact, Origin: origin},
		write: func() error {
			path := filepath.Join(r.dir, artifact)
			if err := r.fs.WriteFile(path, []byte(text), 0644); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "failed to store template %s", name).
					WithDetail("path", path)
			}
			return nil
		},
	}
}

// List returns the registered templates sorted by name. Records that cannot
// be read, or whose document no longer parses, are left out.
func (r *Registry) List() ([]Entry, error) {
	dirEntries, err := r.fs.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read registry %s", r.dir).
			WithDetail("path", r.dir)
	}

	var entries []Entry
	for _, de := range dirEntries {
		if de.IsDir() || filepath.Ext(de.Name()) != recordExt {
			continue
		}
		name := strings.TrimSuffix(de.Name(), recordExt)
		info, err := r.load(name)
		if err != nil {
			r.logger.Debug().Err(err).Str("template", name).Msg("Skipping unreadable template")
			continue
		}
		entries = append(entries, info.Entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// Info returns the entry of name along with the metadata and variables its
// TXML document declares.
func (r *Registry) Info(name string) (*Info, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	return r.load(name)
}

// Remove deletes the record of name and the artifact it points to. A record
// that does not decode is deleted on its own.
func (r *Registry) Remove(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	rec, err := r.record(name)
	if err != nil {
		if !errors.IsErrorCode(err, errors.ErrTemplateInvalid) {
			return err
		}
		r.logger.Warn().Err(err).Str("template", name).
			Msg("Template removed but its record was not parseable, related files were not removed")
		return r.removeRecord(name)
	}

	if err := r.removeArtifact(rec); err != nil {
		return err
	}
	if err := r.removeRecord(name); err != nil {
		return err
	}

	r.logger.Info().Str("template", name).Msg("Template removed")
	return nil
}

func (r *Registry) removeRecord(name string) error {
	path := r.recordPath(name)
	if err := r.fs.Remove(path); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to remove record %s", path).
			WithDetail("path", path)
	}
	return nil
}

func (r *Registry) removeArtifact(rec *Record) error {
	var err error
	switch rec.Kind {
	case KindTXML:
		err = r.fs.Remove(r.artifactPath(rec))
	case KindDir:
		err = r.fs.RemoveAll(r.artifactPath(rec))
	}
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to remove %s", r.artifactPath(rec)).
			WithDetail("path", r.artifactPath(rec))
	}
	return nil
}

// record reads and decodes the record of name
func (r *Registry) record(name string) (*Record, error) {
	data, err := r.fs.ReadFile(r.recordPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrTemplateNotFound, "template %q is not registered", name).
				WithDetail("template", name)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read record of %s", name).
			WithDetail("template", name)
	}

	rec, err := decodeRecord(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateInvalid, "record of %q is not parseable", name).
			WithDetail("template", name)
	}
	return rec, nil
}

func (r *Registry) load(name string) (*Info, error) {
	rec, err := r.record(name)
	if err != nil {
		return nil, err
	}

	info := &Info{Path: r.artifactPath(rec)}
	var description string

	switch rec.Kind {
	case KindTXML:
		text, err := txml.ReadDocument(r.fs, info.Path)
		if err != nil {
			return nil, err
		}
		s, err := txml.Parse(text)
		if err != nil {
			return nil, err
		}
		vars, err := txml.CollectVariables(text)
		if err != nil {
			return nil, err
		}
		info.Metadata = s.Metadata
		info.Variables = vars
		description = s.Metadata.Description
	case KindDir:
		if !filesystem.Exists(r.fs, info.Path) {
			return nil, errors.Newf(errors.ErrNotFound, "stored directory %s is missing", info.Path).
				WithDetail("path", info.Path)
		}
	}

	info.Entry = *r.entry(name, rec, description)
	return info, nil
}

func (r *Registry) entry(name string, rec *Record, description string) *Entry {
	if description == "" {
		switch rec.Kind {
		case KindTXML:
			description = DescriptionTXML
		case KindDir:
			description = DescriptionDir
		case KindGit:
			description = DescriptionGit
		}
	}
	return &Entry{
		Name:        name,
		Kind:        rec.Kind,
		Description: description,
		Source:      rec.Origin,
		Added:       rec.Added,
	}
}

func (r *Registry) recordPath(name string) string {
	return filepath.Join(r.dir, name+recordExt)
}

// artifactPath resolves a record's source inside the registry directory.
// Git sources are URLs and returned as they are.
func (r *Registry) artifactPath(rec *Record) string {
	if rec.Kind == KindGit {
		return rec.Source
	}
	return filepath.Join(r.dir, filepath.Base(rec.Source))
}
