package flatcompose

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/flatcompose/internal/hashutil"
	"github.com/arthur-debert/flatcompose/pkg/config"
	"github.com/arthur-debert/flatcompose/pkg/errors"
	"github.com/arthur-debert/flatcompose/pkg/loader"
	"github.com/arthur-debert/flatcompose/pkg/logging"
	"github.com/arthur-debert/flatcompose/pkg/output"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

const watchDebounce = 150 * time.Millisecond

// watched are the project files that change the composed list.
var watched = map[string]bool{
	"package.json":  true,
	"tsconfig.json": true,
	".gitignore":    true,
}

func init() {
	for _, name := range config.ProjectFiles {
		watched[name] = true
	}
}

type composeOptions struct {
	*globals
	watch bool
}

func newComposeCmd(g *globals) *cobra.Command {
	opts := &composeOptions{globals: g}
	cmd := &cobra.Command{
		Use:     "compose",
		Short:   MsgComposeShort,
		Long:    MsgComposeLong,
		Example: MsgComposeExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.run(cmd); err != nil {
				return err
			}
			if !opts.watch {
				return nil
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return opts.watchLoop(ctx, cmd)
		},
	}

	flags := cmd.Flags()
	flags.StringP("out", "o", "", MsgFlagOut)
	flags.BoolVarP(&opts.watch, "watch", "w", false, MsgFlagWatch)
	addOptionFlags(cmd)
	return cmd
}

// addOptionFlags registers the flags that map onto the options object.
func addOptionFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Bool("typescript", false, MsgFlagTypeScript)
	flags.Bool("stylistic", true, MsgFlagStylistic)
	flags.Bool("in-editor", false, MsgFlagInEditor)
	flags.Bool("auto-rename", true, MsgFlagAutoRename)
	flags.StringSlice("component-ext", nil, MsgFlagComponentExt)
}

// compose loads the settings and runs the pipeline once.
func (g *globals) compose(cmd *cobra.Command) (*config.Settings, []types.Fragment, error) {
	s, err := g.settings(cmd)
	if err != nil {
		return nil, nil, err
	}
	env, err := s.Environment(g.dir)
	if err != nil {
		return nil, nil, err
	}
	frags, err := s.Compose(cmd.Context(), env)
	if err != nil {
		return nil, nil, err
	}
	return s, frags, nil
}

func (o *composeOptions) run(cmd *cobra.Command) error {
	s, frags, err := o.compose(cmd)
	if err != nil {
		return err
	}
	if s.Output.File == "" {
		r, err := renderer(cmd.OutOrStdout(), s, output.FormatJSON)
		if err != nil {
			return err
		}
		return r.Fragments(frags)
	}
	return o.writeFile(cmd, s, frags)
}

// writeFile renders frags into the configured output file. The format
// follows the file extension unless set explicitly. A file that already
// holds the same content is left untouched.
func (o *composeOptions) writeFile(cmd *cobra.Command, s *config.Settings, frags []types.Fragment) error {
	path := s.Output.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(o.dir, path)
	}

	format, err := output.ParseFormat(s.Output.Format)
	if err != nil {
		return err
	}
	if format == output.FormatAuto {
		format = output.FormatJSON
		if ext := filepath.Ext(path); ext == ".yaml" || ext == ".yml" {
			format = output.FormatYAML
		}
	}

	var buf bytes.Buffer
	if err := output.New(&buf, format).Fragments(frags); err != nil {
		return err
	}
	logger := logging.GetLogger("cmd.compose")
	if hashutil.Unchanged(path, buf.Bytes()) {
		logger.Debug().Str("file", path).Msg("Configuration unchanged")
		return nil
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to write %s", path)
	}

	logger.Info().
		Str("file", path).
		Int("fragments", len(frags)).
		Msg("Configuration written")
	return output.New(cmd.ErrOrStderr(), output.FormatAuto).Message("Ok", fmt.Sprintf(MsgWrote, path))
}

// watchLoop composes again after changes to the watched files until ctx
// is done. Errors from a single run are reported and the loop continues.
func (o *composeOptions) watchLoop(ctx context.Context, cmd *cobra.Command) error {
	logger := logging.GetLogger("cmd.compose")
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, MsgErrWatchFailed, o.dir)
	}
	defer func() { _ = watcher.Close() }()
	if err := watcher.Add(o.dir); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, MsgErrWatchFailed, o.dir)
	}

	stderr := output.New(cmd.ErrOrStderr(), output.FormatAuto)
	_ = stderr.Message("Muted", fmt.Sprintf(MsgWatching, o.dir))

	var (
		mu       sync.Mutex
		debounce *time.Timer
		manifest bool
	)
	rerun := func(name string) {
		mu.Lock()
		defer mu.Unlock()
		if manifest {
			loader.ForDir(o.dir).Reset()
			manifest = false
		}
		if err := o.run(cmd); err != nil {
			logger.Warn().Err(err).Str("file", name).Msg("Compose failed")
			_ = stderr.Error(err)
			return
		}
		_ = stderr.Message("Muted", fmt.Sprintf(MsgRecomposed, name))
	}

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			name := filepath.Base(event.Name)
			if !watched[name] {
				continue
			}
			logger.Debug().Str("file", name).Str("op", event.Op.String()).Msg("Change detected")

			mu.Lock()
			if name == "package.json" {
				manifest = true
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() { rerun(name) })
			mu.Unlock()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("Watcher error")
		}
	}
}
