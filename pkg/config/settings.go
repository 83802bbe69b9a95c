package config

import (
	"context"
	"fmt"

	"github.com/arthur-debert/flatcompose/pkg/compose"
	"github.com/arthur-debert/flatcompose/pkg/loader"
	"github.com/arthur-debert/flatcompose/pkg/options"
	"github.com/arthur-debert/flatcompose/pkg/probe"
	"github.com/arthur-debert/flatcompose/pkg/rename"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

// Settings is the decoded configuration of one project.
type Settings struct {
	// Options is the raw options object handed to the composer
	Options map[string]interface{} `mapstructure:"options" toml:"options,omitempty"`

	// Rename maps upstream plugin namespaces to the ones used in rule ids
	Rename map[string]string `mapstructure:"rename" toml:"rename,omitempty"`

	Disables Disables            `mapstructure:"disables" toml:"disables,omitempty"`
	Probe    map[string][]string `mapstructure:"probe" toml:"probe,omitempty"`
	Output   Output              `mapstructure:"output" toml:"output,omitempty"`

	// Fragments are appended after the generated ones, in order
	Fragments []options.FragmentSpec `mapstructure:"fragments" toml:"fragments,omitempty"`

	// Source is the project file that was loaded, empty when none was found
	Source string `mapstructure:"-" toml:"-"`
}

// Disables configures the terminal fragment.
type Disables struct {
	Files []string     `mapstructure:"files" toml:"files,omitempty"`
	Rules *types.Rules `mapstructure:"rules" toml:"-"`
}

// Output holds rendering defaults for the CLI.
type Output struct {
	Format string `mapstructure:"format" toml:"format,omitempty"`
	File   string `mapstructure:"file" toml:"file,omitempty"`
}

// RenameTable validates the configured namespace table.
func (s *Settings) RenameTable() (*rename.Table, error) {
	if len(s.Rename) == 0 {
		return rename.DefaultTable, nil
	}
	return rename.NewTable(s.Rename)
}

// Environment builds the composition environment for dir. Collaborators not
// covered by the settings keep their defaults.
func (s *Settings) Environment(dir string) (compose.Environment, error) {
	table, err := s.RenameTable()
	if err != nil {
		return compose.Environment{}, err
	}
	env := compose.Environment{
		Dir:    dir,
		Rename: table,
	}
	if len(s.Probe) > 0 {
		env.Candidates = probe.Candidates(s.Probe)
	}
	if s.Disables.Rules != nil {
		env.Disables = s.Disables.Rules.Clone()
	}
	if s.Disables.Files != nil {
		env.DisableFiles = append([]string{}, s.Disables.Files...)
	}
	return env, nil
}

// UserFragments resolves the configured fragments through l.
func (s *Settings) UserFragments(ctx context.Context, l loader.Loader) ([]types.Fragment, error) {
	out := make([]types.Fragment, 0, len(s.Fragments))
	for i, spec := range s.Fragments {
		frag, err := spec.Build(ctx, l, fmt.Sprintf("config fragment %d", i))
		if err != nil {
			return nil, err
		}
		out = append(out, frag)
	}
	return out, nil
}

// Compose runs the whole pipeline in env with these settings. env usually
// comes from Environment.
func (s *Settings) Compose(ctx context.Context, env compose.Environment) ([]types.Fragment, error) {
	if env.Loader == nil {
		env.Loader = loader.ForDir(env.Dir)
	}
	user, err := s.UserFragments(ctx, env.Loader)
	if err != nil {
		return nil, err
	}
	return compose.Define(ctx, s.Options, env, user)
}
