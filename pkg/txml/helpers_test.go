// pkg/txml/helpers_test.go
// TEST TYPE: Test Helpers
// DEPENDENCIES: None
// PURPOSE: Scripted value source, recording runner and recording reporter

package txml_test

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/ZocoLini/mk-template/pkg/errors"
	"github.com/ZocoLini/mk-template/pkg/filesystem"
)

// scriptedSource answers variable prompts from a fixed map and records the
// names it was asked for
type scriptedSource struct {
	answers map[string]string
	asked   []string
}

func (s *scriptedSource) Value(name string) (string, error) {
	s.asked = append(s.asked, name)
	v, ok := s.answers[name]
	if !ok {
		return "", errors.Newf(errors.ErrNotFound, "no scripted answer for %s", name)
	}
	return v, nil
}

type runnerCall struct {
	dir  string
	name string
	args []string
	// whether the probed path existed when the command ran
	probeExisted bool
}

// recordingRunner records every command instead of running it. Executables
// listed in fail return a CommandFailed error.
type recordingRunner struct {
	mu    sync.Mutex
	calls []runnerCall
	fail  map[string]bool
	fs    filesystem.FS
	probe string
}

func newRecordingRunner(failing ...string) *recordingRunner {
	r := &recordingRunner{fail: make(map[string]bool)}
	for _, name := range failing {
		r.fail[name] = true
	}
	return r
}

func (r *recordingRunner) Run(_ context.Context, dir, name string, args []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	call := runnerCall{dir: dir, name: name, args: args}
	if r.fs != nil && r.probe != "" {
		call.probeExisted = filesystem.Exists(r.fs, r.probe)
	}
	r.calls = append(r.calls, call)

	if r.fail[name] {
		return errors.Newf(errors.ErrCommandFailed, "%s exited with status 1", name)
	}
	return nil
}

func (r *recordingRunner) names() []string {
	names := make([]string, len(r.calls))
	for i, c := range r.calls {
		names[i] = c.name
	}
	return names
}

type hookFailure struct {
	path string
	hook string
	err  error
}

// recordingReporter keeps every reported outcome in order
type recordingReporter struct {
	events   []string
	skipped  []string
	failures []hookFailure
}

func (r *recordingReporter) DirectoryCreated(path string) {
	r.events = append(r.events, "dir:"+filepath.ToSlash(path))
}

func (r *recordingReporter) FileCreated(path string) {
	r.events = append(r.events, "file:"+filepath.ToSlash(path))
}

func (r *recordingReporter) Skipped(path string) {
	r.skipped = append(r.skipped, filepath.ToSlash(path))
}

func (r *recordingReporter) HookFailed(path, hook string, err error) {
	r.failures = append(r.failures, hookFailure{path: filepath.ToSlash(path), hook: hook, err: err})
}
