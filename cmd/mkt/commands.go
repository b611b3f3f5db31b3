package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZocoLini/mk-template/internal/version"
	"github.com/ZocoLini/mk-template/pkg/config"
	"github.com/ZocoLini/mk-template/pkg/errors"
	"github.com/ZocoLini/mk-template/pkg/filesystem"
	"github.com/ZocoLini/mk-template/pkg/templates"
	"github.com/ZocoLini/mk-template/pkg/txml"
	"github.com/ZocoLini/mk-template/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newSpawnCmd(g *globalOptions) *cobra.Command {
	var (
		output string
		dest   string
		vars   []string
	)

	cmd := &cobra.Command{
		Use:               "spawn <template>",
		Short:             MsgSpawnShort,
		Long:              MsgSpawnLong,
		Example:           "  mkt spawn api -o billing --var PROJECT=billing --dest ~/src",
		GroupID:           "templates",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: templateNamesCompletion(g),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			values, err := parseVars(vars)
			if err != nil {
				return err
			}
			if dest == "" {
				dest = g.config.Spawn.Dest
			}
			if output == "" {
				output = name
			}

			log.Info().
				Str("template", name).
				Str("dest", dest).
				Str("output", output).
				Msg("Spawning template")

			source := txml.MapSource{
				Values:   values,
				Fallback: ui.NewPrompter(os.Stdin, cmd.ErrOrStderr()),
			}
			res, err := g.registry(dest).Spawn(cmd.Context(), name, dest, output, source)
			if err != nil {
				return err
			}

			g.printer.Result(output, res)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", MsgFlagOutput)
	cmd.Flags().StringArrayVar(&vars, "var", nil, MsgFlagVar)
	cmd.Flags().StringVar(&dest, "dest", "", MsgFlagDest)

	return cmd
}

func newAddCmd(g *globalOptions) *cobra.Command {
	var (
		name string
		opts templates.AddOptions
	)

	cmd := &cobra.Command{
		Use:     "add <path|url.git>",
		Short:   MsgAddShort,
		Long:    MsgAddLong,
		Example: "  mkt add ./skeletons/api.txml\n  mkt add ~/projects/site -n site --as-dir\n  mkt add https://github.com/me/cli.git",
		GroupID: "templates",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]
			if name == "" {
				name = nameFromSource(src)
			}

			entry, err := g.registry("").Add(name, src, opts)
			if err != nil {
				return err
			}

			g.printer.Success(MsgTemplateAdded, entry.Name, entry.Kind)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", MsgFlagName)
	cmd.Flags().BoolVarP(&opts.Replace, "replace", "r", false, MsgFlagReplace)
	cmd.Flags().BoolVar(&opts.AsDir, "as-dir", false, MsgFlagAsDir)
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, MsgFlagStrict)

	return cmd
}

func newRemoveCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "rm <template>",
		Aliases:           []string{"remove"},
		Short:             MsgRemoveShort,
		GroupID:           "templates",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: templateNamesCompletion(g),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := g.registry("").Remove(args[0]); err != nil {
				return err
			}
			g.printer.Success(MsgTemplateRemoved, args[0])
			return nil
		},
	}
}

func newListCmd(g *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		GroupID: "templates",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := ui.ParseFormat(format)
			if err != nil {
				return errors.Wrap(err, errors.ErrInvalidInput, "invalid --output")
			}

			entries, err := g.registry("").List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch f {
			case ui.FormatYAML:
				return g.printer.EntriesYAML(entries)
			case ui.FormatTerminal:
				ui.NewPrinter(out, true).Entries(entries)
			case ui.FormatText:
				ui.NewPrinter(out, false).Entries(entries)
			default:
				g.printer.Entries(entries)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", "auto", MsgFlagFormat)

	return cmd
}

func newInfoCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "info <template>",
		Short:             MsgInfoShort,
		GroupID:           "templates",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: templateNamesCompletion(g),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := g.registry("").Info(args[0])
			if err != nil {
				return err
			}
			g.printer.Info(info)
			return nil
		},
	}
}

func newValidateCmd(g *globalOptions) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:     "validate <file>",
		Short:   MsgValidateShort,
		GroupID: "txml",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			text, err := txml.ReadDocument(filesystem.NewOS(), path)
			if err != nil {
				return err
			}
			if !txml.Validate(text) {
				return errors.Newf(errors.ErrTemplateInvalid, MsgErrInvalid, path).
					WithDetail("path", path)
			}
			if strict {
				if err := txml.ValidateStrict(text); err != nil {
					return err
				}
			}

			g.printer.Success(MsgDocumentValid, path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, MsgFlagStrict)

	return cmd
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "export <dir|file>",
		Short:   MsgExportShort,
		GroupID: "txml",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := txml.FromPath(filesystem.NewOS(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), txml.ToMarkup(s))
			return err
		},
	}
}

func newConfigCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgConfigFile+"\n\n", g.paths.ConfigFile())
			_, err := fmt.Fprint(out, config.DefaultsContent())
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: MsgCompletionShort,
		Long: `To load completions:

Bash:
  $ source <(mkt completion bash)

Zsh:
  $ mkt completion zsh > "${fpath[1]}/_mkt"

Fish:
  $ mkt completion fish | source

PowerShell:
  PS> mkt completion powershell | Out-String | Invoke-Expression
`,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// parseVars turns NAME=VALUE flags into a map. Later flags win.
func parseVars(vars []string) (map[string]string, error) {
	values := make(map[string]string, len(vars))
	for _, v := range vars {
		name, value, ok := strings.Cut(v, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, MsgErrVarFormat, v)
		}
		values[name] = value
	}
	return values, nil
}

// nameFromSource derives a template name from its source: the base name up
// to its first dot.
func nameFromSource(src string) string {
	base := filepath.Base(strings.TrimRight(src, `/\`))
	if i := strings.IndexByte(base, '.'); i >= 0 {
		return base[:i]
	}
	return base
}
