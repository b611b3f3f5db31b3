package txml

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ZocoLini/mk-template/pkg/errors"
	"github.com/ZocoLini/mk-template/pkg/filesystem"
	"github.com/ZocoLini/mk-template/pkg/logging"
	"github.com/rs/zerolog"
)

// Hook names used when reporting failures
const (
	HookInCommand  = "in_command"
	HookOutCommand = "out_command"
	HookCommand    = "command"
)

// Reporter receives the per-node outcome of an instantiation
type Reporter interface {
	DirectoryCreated(path string)
	FileCreated(path string)
	Skipped(path string)
	HookFailed(path, hook string, err error)
}

// LogReporter reports outcomes through the component logger
type LogReporter struct {
	logger zerolog.Logger
}

// NewLogReporter creates a reporter logging under the txml.engine component
func NewLogReporter() *LogReporter {
	return &LogReporter{logger: logging.GetLogger("txml.engine")}
}

func (r *LogReporter) DirectoryCreated(path string) {
	r.logger.Info().Str("path", path).Msg("Directory created")
}

func (r *LogReporter) FileCreated(path string) {
	r.logger.Info().Str("path", path).Msg("File created")
}

func (r *LogReporter) Skipped(path string) {
	r.logger.Warn().Str("path", path).Msg("Already exists, skipping")
}

func (r *LogReporter) HookFailed(path, hook string, err error) {
	r.logger.Error().Err(err).Str("path", path).Str("hook", hook).Msg("Created but the command failed")
}

// Result counts what an instantiation did
type Result struct {
	DirectoriesCreated int
	FilesCreated       int
	Skipped            int
	HookFailures       int
}

// Engine materializes structures on a filesystem and runs their hooks
type Engine struct {
	fs       filesystem.FS
	runner   CommandRunner
	reporter Reporter
	logger   zerolog.Logger
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithFS sets the filesystem the engine writes to
func WithFS(fsys filesystem.FS) EngineOption {
	return func(e *Engine) {
		e.fs = fsys
	}
}

// WithRunner sets the runner used for hooks
func WithRunner(runner CommandRunner) EngineOption {
	return func(e *Engine) {
		e.runner = runner
	}
}

// WithReporter sets the outcome reporter
func WithReporter(reporter Reporter) EngineOption {
	return func(e *Engine) {
		e.reporter = reporter
	}
}

// NewEngine creates an engine. Defaults are the OS filesystem, an ExecRunner
// forwarding to the process' standard streams and a LogReporter.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		fs:       filesystem.NewOS(),
		runner:   &ExecRunner{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr},
		reporter: NewLogReporter(),
		logger:   logging.GetLogger("txml.engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Instantiate creates every top-level node of s under dir with its declared
// name, files first.
func (e *Engine) Instantiate(ctx context.Context, s *Structure, dir string) (*Result, error) {
	res := &Result{}
	for _, f := range s.Files {
		if err := e.file(ctx, f, dir, f.Name, res); err != nil {
			return res, err
		}
	}
	for _, d := range s.Directories {
		if err := e.directory(ctx, d, dir, d.Name, res); err != nil {
			return res, err
		}
	}
	return res, nil
}

// InstantiateWithName is Instantiate, except that a renamable structure with
// exactly one direct child gets that child created as name.
func (e *Engine) InstantiateWithName(ctx context.Context, s *Structure, dir, name string) (*Result, error) {
	if s.ChildCount() != 1 || !s.Renamable || name == "" {
		e.logger.Debug().
			Int("children", s.ChildCount()).
			Bool("renamable", s.Renamable).
			Msg("Keeping declared names")
		return e.Instantiate(ctx, s, dir)
	}

	if len(s.Files) == 1 {
		return e.InstantiateFile(ctx, s.Files[0], dir, name)
	}
	return e.InstantiateDirectory(ctx, s.Directories[0], dir, name)
}

// InstantiateDirectory creates d as parent/name then its subtree. An existing
// target is left untouched: no hooks run and nothing below it is created.
func (e *Engine) InstantiateDirectory(ctx context.Context, d *Directory, parent, name string) (*Result, error) {
	res := &Result{}
	err := e.directory(ctx, d, parent, name, res)
	return res, err
}

// InstantiateFile writes f as parent/name[.ext] then runs its command
func (e *Engine) InstantiateFile(ctx context.Context, f *File, parent, name string) (*Result, error) {
	res := &Result{}
	err := e.file(ctx, f, parent, name, res)
	return res, err
}

func (e *Engine) directory(ctx context.Context, d *Directory, parent, name string, res *Result) error {
	target := filepath.Join(parent, name)

	if filesystem.Exists(e.fs, target) {
		res.Skipped++
		e.reporter.Skipped(target)
		return nil
	}

	if err := e.fs.Mkdir(target, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", target).
			WithDetail("path", target)
	}
	res.DirectoriesCreated++
	e.reporter.DirectoryCreated(target)

	if d.InCommand != "" {
		e.hook(ctx, target, HookInCommand, d.InCommand, target, res)
	}
	if d.OutCommand != "" {
		e.hook(ctx, target, HookOutCommand, d.OutCommand, parent, res)
	}

	for _, f := range d.Files {
		if err := e.file(ctx, f, target, f.Name, res); err != nil {
			return err
		}
	}
	for _, child := range d.Directories {
		if err := e.directory(ctx, child, target, child.Name, res); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) file(ctx context.Context, f *File, parent, name string, res *Result) error {
	target := filepath.Join(parent, f.FileName(name))

	if filesystem.Exists(e.fs, target) {
		res.Skipped++
		e.reporter.Skipped(target)
		return nil
	}

	content := Unescape(Dedent(f.Content))
	if err := e.fs.WriteFile(target, []byte(content), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write file %s", target).
			WithDetail("path", target)
	}
	res.FilesCreated++
	e.reporter.FileCreated(target)

	if f.Command != "" {
		e.hook(ctx, target, HookCommand, f.Command, parent, res)
	}
	return nil
}

// hook runs a hook string; failures are reported against the node only
func (e *Engine) hook(ctx context.Context, node, hook, commands, dir string, res *Result) {
	if err := RunCommands(ctx, e.runner, commands, dir); err != nil {
		res.HookFailures++
		e.reporter.HookFailed(node, hook, err)
	}
}
