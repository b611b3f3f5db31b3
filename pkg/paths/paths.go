package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvMktHome overrides the directory holding the template registry
	EnvMktHome = "MKT_HOME"

	// EnvMktConfigDir overrides the XDG config directory for mkt
	EnvMktConfigDir = "MKT_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory name for mkt-specific files
	AppDirName = "mkt"

	// TemplatesDir is the registry subdirectory holding records and stored templates
	TemplatesDir = "templates"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "mkt.log"
)

// Paths resolves every location mkt reads from or writes to
type Paths struct {
	home      string
	configDir string
	stateDir  string
}

// New creates a Paths instance. A non-empty home takes precedence over
// MKT_HOME and the XDG data directory.
func New(home string) *Paths {
	p := &Paths{}

	switch {
	case home != "":
		p.home = expandHome(home)
	case os.Getenv(EnvMktHome) != "":
		p.home = expandHome(os.Getenv(EnvMktHome))
	default:
		p.home = filepath.Join(xdg.DataHome, AppDirName)
	}

	if configDir := os.Getenv(EnvMktConfigDir); configDir != "" {
		p.configDir = expandHome(configDir)
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	p.stateDir = StateDir()

	return p
}

// Home returns the mkt home directory
func (p *Paths) Home() string {
	return p.home
}

// TemplatesDir returns the registry directory
func (p *Paths) TemplatesDir() string {
	return filepath.Join(p.home, TemplatesDir)
}

// ConfigDir returns the configuration directory
func (p *Paths) ConfigDir() string {
	return p.configDir
}

// ConfigFile returns the path of the user configuration file
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.configDir, ConfigFileName)
}

// StateDir returns the state directory
func (p *Paths) StateDir() string {
	return p.stateDir
}

// LogFilePath returns the path of the log file
func (p *Paths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}

// StateDir resolves the mkt state directory. XDG_STATE_HOME is read on every
// call so tests can redirect it with t.Setenv.
func StateDir() string {
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		return filepath.Join(stateDir, AppDirName)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return AppDirName
	}
	return filepath.Join(homeDir, ".local", "state", AppDirName)
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}
