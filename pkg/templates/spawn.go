package templates

import (
	"context"
	"path/filepath"

	"github.com/ZocoLini/mk-template/pkg/errors"
	"github.com/ZocoLini/mk-template/pkg/filesystem"
	"github.com/ZocoLini/mk-template/pkg/logging"
	"github.com/ZocoLini/mk-template/pkg/txml"
)

// Spawn instantiates the template name inside dest. outputName renames the
// single top-level node of a renamable TXML template and names the copy or
// clone of dir and git templates. source answers the TXML variables that
// declare no value.
func (r *Registry) Spawn(ctx context.Context, name, dest, outputName string, source txml.ValueSource) (*txml.Result, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	rec, err := r.record(name)
	if err != nil {
		return nil, err
	}

	done := logging.LogOperationStart(r.logger, "spawn "+name)
	defer done()

	if err := r.fs.MkdirAll(dest, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dest).
			WithDetail("path", dest)
	}

	switch rec.Kind {
	case KindTXML:
		return r.spawnDocument(ctx, rec, dest, outputName, source)
	case KindDir:
		if outputName == "" {
			outputName = name
		}
		if err := ValidateName(outputName); err != nil {
			return nil, err
		}
		return copyTree(r.fs, r.artifactPath(rec), filepath.Join(dest, outputName), r.reporter)
	default:
		if outputName == "" {
			outputName = name
		}
		if err := ValidateName(outputName); err != nil {
			return nil, err
		}
		return r.clone(ctx, rec.Source, dest, outputName)
	}
}

func (r *Registry) spawnDocument(ctx context.Context, rec *Record, dest, outputName string, source txml.ValueSource) (*txml.Result, error) {
	s, err := txml.ParseFile(r.fs, r.artifactPath(rec), source)
	if err != nil {
		return nil, err
	}
	return r.engine.InstantiateWithName(ctx, s, dest, outputName)
}

func (r *Registry) clone(ctx context.Context, url, dest, outputName string) (*txml.Result, error) {
	if err := r.runner.Run(ctx, dest, "git", []string{"clone", url, outputName}); err != nil {
		msg := "git clone failed"
		if errors.IsErrorCode(err, errors.ErrCommandCreation) {
			msg = "could not run git, is it installed?"
		}
		return nil, errors.Wrap(err, errors.ErrGitExecute, msg).
			WithDetail("url", url)
	}
	return &txml.Result{DirectoriesCreated: 1}, nil
}

// copyTree copies src into dst recursively. Directories are merged and
// existing files are skipped.
func copyTree(fsys filesystem.FS, src, dst string, reporter txml.Reporter) (*txml.Result, error) {
	res := &txml.Result{}
	err := copyDir(fsys, src, dst, reporter, res)
	return res, err
}

func copyDir(fsys filesystem.FS, src, dst string, reporter txml.Reporter, res *txml.Result) error {
	if !filesystem.Exists(fsys, dst) {
		if err := fsys.MkdirAll(dst, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dst).
				WithDetail("path", dst)
		}
		res.DirectoriesCreated++
		if reporter != nil {
			reporter.DirectoryCreated(dst)
		}
	}

	entries, err := fsys.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", src).
			WithDetail("path", src)
	}

	for _, entry := range entries {
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dst, entry.Name())

		info, err := fsys.Stat(from)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", from).
				WithDetail("path", from)
		}
		if info.IsDir() {
			if err := copyDir(fsys, from, to, reporter, res); err != nil {
				return err
			}
			continue
		}

		if filesystem.Exists(fsys, to) {
			res.Skipped++
			if reporter != nil {
				reporter.Skipped(to)
			}
			continue
		}

		data, err := fsys.ReadFile(from)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", from).
				WithDetail("path", from)
		}
		if err := fsys.WriteFile(to, data, info.Mode().Perm()); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", to).
				WithDetail("path", to)
		}
		res.FilesCreated++
		if reporter != nil {
			reporter.FileCreated(to)
		}
	}
	return nil
}
