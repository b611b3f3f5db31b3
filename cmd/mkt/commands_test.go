// cmd/mkt/commands_test.go
// TEST TYPE: Integration Tests
// DEPENDENCIES: real filesystem via t.TempDir, isolated MKT_HOME and config directory
// PURPOSE: Test the mkt command tree end to end

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZocoLini/mk-template/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const apiTemplate = `<?xml version="1.0" encoding="UTF-8" ?>
<Root>
  <Variable name="PROJECT"/>
  <Variable name="LICENSE" value="MIT"/>
  <Metadata author="me" description="An API skeleton"/>
  <Directory name="${PROJECT}">
    <File name="LICENSE">
      ${LICENSE}
    </File>
  </Directory>
</Root>
`

// setupEnv isolates the registry, configuration and log file of a test
func setupEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("MKT_HOME", home)
	t.Setenv("MKT_CONFIG_DIR", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")
	return home
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestTemplateLifecycle(t *testing.T) {
	home := setupEnv(t)
	src := writeFile(t, filepath.Join(t.TempDir(), "api.txml"), apiTemplate)

	out, err := run(t, "add", src)
	require.NoError(t, err)
	assert.Contains(t, out, "Added template api (txml)")
	assert.FileExists(t, filepath.Join(home, "templates", "api.toml"))

	_, err = run(t, "add", src)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))

	_, err = run(t, "add", src, "-r")
	require.NoError(t, err)

	out, err = run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "api  txml  An API skeleton")

	out, err = run(t, "ls", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "name: api")
	assert.Contains(t, out, "kind: txml")

	out, err = run(t, "info", "api")
	require.NoError(t, err)
	assert.Contains(t, out, "author:  me")
	assert.Contains(t, out, "PROJECT (asked)")

	out, err = run(t, "rm", "api")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed template api")

	out, err = run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No templates registered")
}

func TestAdd_CustomNameAndGit(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "add", "https://example.com/tools/cli.git")
	require.NoError(t, err)
	assert.Contains(t, out, "Added template cli (git)")

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "site", "index.html"), "<p>hi</p>\n")
	out, err = run(t, "add", filepath.Join(dir, "site"), "-n", "web", "--as-dir")
	require.NoError(t, err)
	assert.Contains(t, out, "Added template web (dir)")
}

func TestSpawn(t *testing.T) {
	setupEnv(t)
	src := writeFile(t, filepath.Join(t.TempDir(), "api.txml"), apiTemplate)
	_, err := run(t, "add", src)
	require.NoError(t, err)

	dest := t.TempDir()

	t.Run("default output is the template name", func(t *testing.T) {
		out, err := run(t, "spawn", "api", "--dest", dest, "--var", "PROJECT=svc")
		require.NoError(t, err)
		assert.Contains(t, out, "Spawned api")

		data, err := os.ReadFile(filepath.Join(dest, "api", "LICENSE"))
		require.NoError(t, err)
		assert.Equal(t, "MIT\n", string(data))
	})

	t.Run("explicit output and overridden value", func(t *testing.T) {
		_, err := run(t, "spawn", "api", "-o", "billing", "--dest", dest, "--var", "PROJECT=svc", "--var", "LICENSE=BSD")
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(dest, "billing", "LICENSE"))
		require.NoError(t, err)
		assert.Equal(t, "MIT\n", string(data), "declared values are not asked for")
	})

	t.Run("existing output is left alone", func(t *testing.T) {
		out, err := run(t, "spawn", "api", "--dest", dest, "--var", "PROJECT=svc")
		require.NoError(t, err)
		assert.Contains(t, out, "(exists)")
	})

	t.Run("malformed var", func(t *testing.T) {
		_, err := run(t, "spawn", "api", "--dest", dest, "--var", "PROJECT")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("unknown template", func(t *testing.T) {
		_, err := run(t, "spawn", "ghost", "--dest", dest)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateNotFound))
	})
}

func TestValidate(t *testing.T) {
	setupEnv(t)
	dir := t.TempDir()
	good := writeFile(t, filepath.Join(dir, "good.txml"), apiTemplate)
	bad := writeFile(t, filepath.Join(dir, "bad.txml"), `<Root><File name="a"></Root>`)
	loose := writeFile(t, filepath.Join(dir, "loose.txml"), `<Root><Extra/></Root>`)

	out, err := run(t, "validate", good, "--strict")
	require.NoError(t, err)
	assert.Contains(t, out, "is a valid TXML document")

	_, err = run(t, "validate", bad)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateInvalid))

	_, err = run(t, "validate", loose)
	require.NoError(t, err)

	_, err = run(t, "validate", loose, "--strict")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidTag))
}

func TestExport(t *testing.T) {
	setupEnv(t)
	dir := filepath.Join(t.TempDir(), "svc")
	writeFile(t, filepath.Join(dir, "main.go"), "package main\n")

	out, err := run(t, "export", dir)
	require.NoError(t, err)
	assert.Contains(t, out, `<Directory name="svc">`)
	assert.Contains(t, out, `<File name="main" extension="go">`)
}

func TestMiscCommands(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "mkt version")

	out, err = run(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "config.toml")
	assert.Contains(t, out, "[commands]")

	out, err = run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "mkt")

	out, err = run(t, "help", "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "  variables\n")

	out, err = run(t, "help", "hooks")
	require.NoError(t, err)
	assert.Contains(t, out, "out_command")

	_, err = run(t)
	assert.Error(t, err, "no subcommand")
}

func TestNameFromSource(t *testing.T) {
	tests := map[string]string{
		"api.txml":                          "api",
		"/home/me/skeletons/web.tar.txml":   "web",
		"/home/me/projects/site/":           "site",
		"https://example.com/tools/cli.git": "cli",
	}
	for src, want := range tests {
		assert.Equal(t, want, nameFromSource(src), src)
	}
}

func TestParseVars(t *testing.T) {
	values, err := parseVars([]string{"A=1", "B=x=y", "A=2", "EMPTY="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "2", "B": "x=y", "EMPTY": ""}, values)

	_, err = parseVars([]string{"=1"})
	assert.Error(t, err)
}
