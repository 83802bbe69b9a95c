package flatcompose

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/flatcompose/internal/version"
	"github.com/arthur-debert/flatcompose/pkg/config"
	"github.com/arthur-debert/flatcompose/pkg/errors"
	"github.com/arthur-debert/flatcompose/pkg/logging"
	"github.com/arthur-debert/flatcompose/pkg/output"
)

// globals are the persistent flags shared by every command.
type globals struct {
	verbosity int
	dir       string
	cfgFile   string
	sets      []string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:     "flatcompose",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(g.verbosity)
			log.Debug().Str("command", cmd.Name()).Str("dir", g.dir).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVarP(&g.dir, "dir", "C", ".", MsgFlagDir)
	flags.StringVarP(&g.cfgFile, "config", "c", "", MsgFlagConfig)
	flags.StringP("format", "f", "auto", MsgFlagFormat)
	flags.StringArrayVar(&g.sets, "set", nil, MsgFlagSet)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)
	rootCmd.SetHelpCommand(newHelpCmd(rootCmd))

	rootCmd.AddCommand(newComposeCmd(g))
	rootCmd.AddCommand(newInspectCmd(g))
	rootCmd.AddCommand(newResolveCmd(g))
	rootCmd.AddCommand(newProbeCmd(g))
	rootCmd.AddCommand(newDomainsCmd(g))
	rootCmd.AddCommand(newInitCmd(g))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	return rootCmd
}

// settings loads the layered settings for cmd, with its flags on top.
func (g *globals) settings(cmd *cobra.Command) (*config.Settings, error) {
	overrides, err := config.ParseAssignments(g.sets)
	if err != nil {
		return nil, err
	}
	return config.Load(config.LoadOptions{
		Dir:       g.dir,
		File:      g.cfgFile,
		Overrides: overrides,
		Flags:     cmd.Flags(),
	})
}

// renderer picks the output format from the settings. fallback replaces
// FormatAuto when w is not a color terminal.
func renderer(w io.Writer, s *config.Settings, fallback output.Format) (*output.Renderer, error) {
	format, err := output.ParseFormat(s.Output.Format)
	if err != nil {
		return nil, err
	}
	if format == output.FormatAuto && fallback != output.FormatAuto {
		f, _ := w.(*os.File)
		if format = output.DetectFormat(f); format != output.FormatTerminal {
			format = fallback
		}
	}
	return output.New(w, format), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(w, "flatcompose version %s\n", version.Version); err != nil {
				return err
			}
			_, err := fmt.Fprintf(w, "  commit: %s\n  built:  %s\n", version.Commit, version.Date)
			return err
		},
	}
}
