package main

import (
	"embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Create projects from TXML templates"
	MsgSpawnShort      = "Create a copy of a template"
	MsgAddShort        = "Register a template"
	MsgRemoveShort     = "Remove a template from the registry"
	MsgListShort       = "List registered templates"
	MsgInfoShort       = "Show a template's details"
	MsgValidateShort   = "Check that a file is a valid TXML document"
	MsgExportShort     = "Print a directory or file as a TXML document"
	MsgConfigShort     = "Show the configuration file location and defaults"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgTemplateAdded   = "Added template %s (%s)"
	MsgTemplateRemoved = "Removed template %s"
	MsgDocumentValid   = "%s is a valid TXML document"
	MsgConfigFile      = "Configuration file: %s"
	MsgVersionFormat   = "mkt version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrVarFormat = "invalid --var %q, expected NAME=VALUE"
	MsgErrInvalid   = "%s is not a valid TXML document"
	MsgErrNoCommand = "no command specified"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagNoColor = "Disable colored output"
	MsgFlagOutput  = "Name of the created file or directory"
	MsgFlagVar     = "Value for a template variable as NAME=VALUE (repeatable)"
	MsgFlagDest    = "Directory the template is spawned in (default from config, \".\")"
	MsgFlagName    = "Template name (default: the source's base name)"
	MsgFlagReplace = "Replace a template registered under the same name"
	MsgFlagAsDir   = "Store a directory as a plain copy instead of TXML"
	MsgFlagStrict  = "Also check the TXML element grammar"
	MsgFlagFormat  = "Output format: auto, term, text or yaml"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/spawn-long.txt
	msgSpawnLongRaw string
	MsgSpawnLong    = strings.TrimSpace(msgSpawnLongRaw)

	//go:embed msgs/add-long.txt
	msgAddLongRaw string
	MsgAddLong    = strings.TrimSpace(msgAddLongRaw)
)

// Help topics shown by "mkt help <topic>"
//
//go:embed topics/*.md
var topicsFS embed.FS
