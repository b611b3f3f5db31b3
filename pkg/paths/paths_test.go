package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		home     string
		envSetup map[string]string
		validate func(t *testing.T, p *Paths)
	}{
		{
			name: "explicit home",
			home: "/tmp/mkt-home",
			validate: func(t *testing.T, p *Paths) {
				assert.Equal(t, "/tmp/mkt-home", p.Home())
				assert.Equal(t, "/tmp/mkt-home/templates", p.TemplatesDir())
			},
		},
		{
			name:     "from MKT_HOME env",
			envSetup: map[string]string{EnvMktHome: "/env/mkt"},
			validate: func(t *testing.T, p *Paths) {
				assert.Equal(t, "/env/mkt", p.Home())
			},
		},
		{
			name: "explicit home wins over env",
			home: "/flag/mkt",
			envSetup: map[string]string{
				EnvMktHome: "/env/mkt",
			},
			validate: func(t *testing.T, p *Paths) {
				assert.Equal(t, "/flag/mkt", p.Home())
			},
		},
		{
			name: "xdg default",
			validate: func(t *testing.T, p *Paths) {
				assert.Equal(t, filepath.Join(xdg.DataHome, AppDirName), p.Home())
				assert.Equal(t, filepath.Join(xdg.ConfigHome, AppDirName, ConfigFileName), p.ConfigFile())
			},
		},
		{
			name:     "config dir override",
			envSetup: map[string]string{EnvMktConfigDir: "/custom/config"},
			validate: func(t *testing.T, p *Paths) {
				assert.Equal(t, "/custom/config", p.ConfigDir())
				assert.Equal(t, "/custom/config/config.toml", p.ConfigFile())
			},
		},
		{
			name: "expand tilde in explicit home",
			home: "~/templates-home",
			validate: func(t *testing.T, p *Paths) {
				homeDir, _ := os.UserHomeDir()
				assert.Equal(t, filepath.Join(homeDir, "templates-home"), p.Home())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvMktHome, "")
			t.Setenv(EnvMktConfigDir, "")
			for k, v := range tt.envSetup {
				t.Setenv(k, v)
			}

			tt.validate(t, New(tt.home))
		})
	}
}

func TestLogFilePath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/custom/state")

	p := New("/tmp/home")

	assert.Equal(t, "/custom/state/mkt", p.StateDir())
	assert.Equal(t, "/custom/state/mkt/mkt.log", p.LogFilePath())
}

func TestExpandHome(t *testing.T) {
	homeDir, _ := os.UserHomeDir()

	assert.Equal(t, "", expandHome(""))
	assert.Equal(t, "/abs/path", expandHome("/abs/path"))
	assert.Equal(t, homeDir, expandHome("~"))
	assert.Equal(t, filepath.Join(homeDir, "x"), expandHome("~/x"))
	assert.Equal(t, "~other", expandHome("~other"))
}
