// pkg/txml/commands_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: os/exec for the ExecRunner cases (skipped when tools are missing)
// PURPOSE: Test hook splitting, sequencing and error classification

package txml_test

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ZocoLini/mk-template/pkg/errors"
	"github.com/ZocoLini/mk-template/pkg/txml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCommands(t *testing.T) {
	assert.Equal(t, []string{"git init", "echo hi", "ls"}, txml.SplitCommands(" git init ;echo hi;  ls"))
	assert.Equal(t, []string{"single"}, txml.SplitCommands("single"))
	assert.Equal(t, []string{"a", ""}, txml.SplitCommands("a;"))
}

func TestRunCommands_StopsAtFirstFailure(t *testing.T) {
	runner := newRecordingRunner("false")

	err := txml.RunCommands(context.Background(), runner, "true;false;echo skip", "/work")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))

	assert.Equal(t, []string{"true", "false"}, runner.names(), "echo never runs")
	for _, call := range runner.calls {
		assert.Equal(t, "/work", call.dir)
	}
}

func TestRunCommands_Tokenizes(t *testing.T) {
	runner := newRecordingRunner()

	require.NoError(t, txml.RunCommands(context.Background(), runner, "go  mod   init example.com/app; git init", "/w"))

	require.Len(t, runner.calls, 2)
	assert.Equal(t, "go", runner.calls[0].name)
	assert.Equal(t, []string{"mod", "init", "example.com/app"}, runner.calls[0].args)
	assert.Equal(t, "git", runner.calls[1].name)
	assert.Equal(t, []string{"init"}, runner.calls[1].args)
}

func TestRunCommands_EmptySegment(t *testing.T) {
	tests := []struct {
		name     string
		commands string
		ran      []string
	}{
		{"empty string", "", []string{}},
		{"blank segment in the middle", "echo a; ;echo b", []string{"echo"}},
		{"trailing separator", "echo a;", []string{"echo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := newRecordingRunner()

			err := txml.RunCommands(context.Background(), runner, tt.commands, "/w")
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrCommandInvalidInput))
			assert.Equal(t, tt.ran, runner.names())
		})
	}
}

type plainErrorRunner struct{}

func (plainErrorRunner) Run(context.Context, string, string, []string) error {
	return assert.AnError
}

func TestRunCommands_UncodedErrorIsCommandFailed(t *testing.T) {
	err := txml.RunCommands(context.Background(), plainErrorRunner{}, "anything", "/w")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))
	assert.ErrorIs(t, err, assert.AnError)
}

func requireTools(t *testing.T, tools ...string) {
	t.Helper()
	for _, tool := range tools {
		if _, err := exec.LookPath(tool); err != nil {
			t.Skipf("%s not available", tool)
		}
	}
}

func TestExecRunner(t *testing.T) {
	requireTools(t, "true", "false", "pwd")
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		runner := &txml.ExecRunner{}
		assert.NoError(t, runner.Run(ctx, t.TempDir(), "true", nil))
	})

	t.Run("non-zero exit", func(t *testing.T) {
		runner := &txml.ExecRunner{}
		err := runner.Run(ctx, t.TempDir(), "false", nil)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))
		assert.Equal(t, 1, errors.GetErrorDetails(err)["exitCode"])
	})

	t.Run("cannot spawn", func(t *testing.T) {
		runner := &txml.ExecRunner{}
		err := runner.Run(ctx, t.TempDir(), "mkt-no-such-binary-for-tests", nil)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrCommandCreation))
	})

	t.Run("runs in dir", func(t *testing.T) {
		dir := t.TempDir()
		var out bytes.Buffer
		runner := &txml.ExecRunner{Stdout: &out}

		require.NoError(t, runner.Run(ctx, dir, "pwd", nil))

		want, err := filepath.EvalSymlinks(dir)
		require.NoError(t, err)
		got, err := filepath.EvalSymlinks(strings.TrimSpace(out.String()))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestExecRunner_Timeout(t *testing.T) {
	requireTools(t, "sleep")

	runner := &txml.ExecRunner{Timeout: 50 * time.Millisecond}
	start := time.Now()
	err := runner.Run(context.Background(), t.TempDir(), "sleep", []string{"5"})

	require.Error(t, err)
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestRunCommands_WithExecRunner(t *testing.T) {
	requireTools(t, "touch", "false")
	dir := t.TempDir()

	err := txml.RunCommands(context.Background(), &txml.ExecRunner{}, "touch first;false;touch second", dir)
	require.Error(t, err)

	assert.FileExists(t, filepath.Join(dir, "first"))
	assert.NoFileExists(t, filepath.Join(dir, "second"))
}
