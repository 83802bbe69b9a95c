package flatcompose

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/flatcompose/pkg/config"
	"github.com/arthur-debert/flatcompose/pkg/errors"
	"github.com/arthur-debert/flatcompose/pkg/logging"
	"github.com/arthur-debert/flatcompose/pkg/output"
	"github.com/arthur-debert/flatcompose/pkg/probe"
)

func newInitCmd(g *globals) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:     "init",
		Short:   MsgInitShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(g.dir, config.ProjectFiles[0])
			if _, err := os.Stat(path); err == nil && !force {
				return errors.Newf(errors.ErrAlreadyExists, MsgErrInitExists, path).WithDetail("path", path)
			}

			content, err := config.Generate(probedOptions(g.dir))
			if err != nil {
				return errors.Wrap(err, errors.ErrInternal, "failed to render starter settings")
			}
			if err := os.WriteFile(path, content, 0644); err != nil {
				return errors.Wrapf(err, errors.ErrFileAccess, "failed to write %s", path)
			}
			logger := logging.GetLogger("cmd.init")
			logger.Info().Str("path", path).Msg("Starter settings written")
			return output.New(cmd.OutOrStdout(), output.FormatAuto).Message("Ok", fmt.Sprintf(MsgInitCreated, path))
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	return cmd
}

// probedOptions turns on the domains the project's package.json enables.
func probedOptions(dir string) map[string]interface{} {
	opts := map[string]interface{}{}
	for _, f := range probe.New(probe.ReadManifest(dir), probe.DefaultCandidates).Report() {
		if f.Enabled() {
			opts[f.Domain] = true
		}
	}
	return opts
}
