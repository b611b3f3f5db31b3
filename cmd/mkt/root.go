package main

import (
	"io"
	"io/fs"
	"os"

	"github.com/ZocoLini/mk-template/internal/version"
	"github.com/ZocoLini/mk-template/pkg/config"
	"github.com/ZocoLini/mk-template/pkg/errors"
	"github.com/ZocoLini/mk-template/pkg/help"
	"github.com/ZocoLini/mk-template/pkg/logging"
	"github.com/ZocoLini/mk-template/pkg/paths"
	"github.com/ZocoLini/mk-template/pkg/templates"
	"github.com/ZocoLini/mk-template/pkg/txml"
	"github.com/ZocoLini/mk-template/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags and what is resolved from them
// before any command runs.
type globalOptions struct {
	verbosity int
	noColor   bool

	paths   *paths.Paths
	config  *config.Config
	printer *ui.Printer
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "mkt",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.String(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(g.verbosity, g.noColor)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return g.setup(cmd.OutOrStdout())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// no subcommand was provided
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&g.noColor, "no-color", false, MsgFlagNoColor)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "templates",
		Title: "TEMPLATES:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "txml",
		Title: "TXML:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.AddCommand(newSpawnCmd(g))
	rootCmd.AddCommand(newAddCmd(g))
	rootCmd.AddCommand(newRemoveCmd(g))
	rootCmd.AddCommand(newListCmd(g))
	rootCmd.AddCommand(newInfoCmd(g))
	rootCmd.AddCommand(newValidateCmd(g))
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newConfigCmd(g))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	installTopics(rootCmd, g)

	return rootCmd
}

// installTopics adds the embedded reference topics to the help command
func installTopics(rootCmd *cobra.Command, g *globalOptions) {
	sub, err := fs.Sub(topicsFS, "topics")
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
		return
	}
	topics, err := help.Load(sub, help.Options{Renderer: topicRenderer{g}})
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
		return
	}
	topics.Install(rootCmd)
	rootCmd.SetHelpCommandGroupID("misc")
}

// topicRenderer picks the color setting once the printer is resolved
type topicRenderer struct {
	g *globalOptions
}

func (r topicRenderer) Render(content, ext string) string {
	color := r.g.printer != nil && r.g.printer.Color()
	return ui.MarkdownRenderer{Color: color}.Render(content, ext)
}

// setup resolves paths and configuration. A registry.home set in the
// configuration takes precedence over MKT_HOME.
func (g *globalOptions) setup(out io.Writer) error {
	p := paths.New("")
	cfg, err := config.Load(p.ConfigFile())
	if err != nil {
		return err
	}
	if cfg.Registry.Home != "" {
		p = paths.New(cfg.Registry.Home)
	}

	g.paths = p
	g.config = cfg
	g.printer = ui.NewPrinter(out, g.useColor(out))

	log.Debug().
		Str("templates", p.TemplatesDir()).
		Str("config", p.ConfigFile()).
		Msg("Resolved paths")
	return nil
}

func (g *globalOptions) useColor(out io.Writer) bool {
	return g.config.UI.Color && ui.DetectFormat(out, g.noColor) == ui.FormatTerminal
}

// registry opens the template registry. Created paths are reported
// relative to root.
func (g *globalOptions) registry(root string) *templates.Registry {
	runner := &txml.ExecRunner{
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Timeout: g.config.Commands.Timeout,
	}
	return templates.New(g.paths.TemplatesDir(),
		templates.WithRunner(runner),
		templates.WithReporter(ui.NewReporter(g.printer, root)),
	)
}

// templateNamesCompletion provides shell completion for registered template names
func templateNamesCompletion(g *globalOptions) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		if g.paths == nil {
			if err := g.setup(io.Discard); err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
		}

		entries, err := g.registry("").List()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}
}
