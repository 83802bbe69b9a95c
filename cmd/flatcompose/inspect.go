package flatcompose

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/flatcompose/pkg/compose"
	"github.com/arthur-debert/flatcompose/pkg/output"
)

func newInspectCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inspect",
		Short:   MsgInspectShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, frags, err := g.compose(cmd)
			if err != nil {
				return err
			}
			r, err := renderer(cmd.OutOrStdout(), s, output.FormatText)
			if err != nil {
				return err
			}
			return r.Inspect(frags)
		},
	}
	addOptionFlags(cmd)
	return cmd
}

func newResolveCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "resolve PATH",
		Short:   MsgResolveShort,
		Example: MsgResolveExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, frags, err := g.compose(cmd)
			if err != nil {
				return err
			}
			r, err := renderer(cmd.OutOrStdout(), s, output.FormatText)
			if err != nil {
				return err
			}
			return r.Resolved(compose.Resolve(frags, projectPath(g.dir, args[0])))
		},
	}
	addOptionFlags(cmd)
	return cmd
}

// projectPath makes path relative to the project directory, slash
// separated, the way fragment globs are written.
func projectPath(dir, path string) string {
	if filepath.IsAbs(path) {
		if rel, err := filepath.Rel(dir, path); err == nil {
			path = rel
		} else if abs, aerr := filepath.Abs(dir); aerr == nil {
			if rel, err := filepath.Rel(abs, path); err == nil {
				path = rel
			}
		}
	}
	return filepath.ToSlash(filepath.Clean(path))
}
