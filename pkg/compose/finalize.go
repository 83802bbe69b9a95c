package compose

import (
	"sort"
	"strings"

	"github.com/arthur-debert/flatcompose/pkg/errors"
	"github.com/arthur-debert/flatcompose/pkg/globs"
	"github.com/arthur-debert/flatcompose/pkg/logging"
	"github.com/arthur-debert/flatcompose/pkg/rename"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

// DisablesName is the name of the terminal fragment.
const DisablesName = "flatcompose/disables"

// DefaultDisables are the code-style rules switched off for files owned by
// formatters. Ids use upstream namespaces and are renamed with the rest of
// the list.
func DefaultDisables() *types.Rules {
	return types.NewRules().
		Off("@stylistic/eol-last").
		Off("@stylistic/indent").
		Off("@stylistic/max-len").
		Off("@stylistic/no-mixed-spaces-and-tabs").
		Off("@stylistic/no-multi-spaces").
		Off("@stylistic/no-multiple-empty-lines").
		Off("@stylistic/no-tabs").
		Off("@stylistic/no-trailing-spaces").
		Off("@stylistic/spaced-comment").
		Off("no-irregular-whitespace").
		Off("unicode-bom")
}

// DefaultDisableFiles scopes the disables fragment.
func DefaultDisableFiles() []string {
	return append([]string{}, globs.FormatterOwned...)
}

// disablesFragment builds the terminal fragment.
func disablesFragment(rules *types.Rules, files []string, table *rename.Table) types.Fragment {
	r := rules.Clone()
	if table != nil {
		r = rename.Rules(r, table)
	}
	return types.Fragment{
		Name:  DisablesName,
		Files: append([]string{}, files...),
		Rules: r,
	}
}

// validate checks the finished list: names are unique across sources, rule
// levels are valid and file patterns parse. sources[i] describes where
// frags[i] came from.
func validate(frags []types.Fragment, sources []string) error {
	seen := make(map[string]int, len(frags))
	for i, f := range frags {
		if f.Name != "" {
			if j, dup := seen[f.Name]; dup {
				return errors.DuplicateFragmentName(f.Name, sources[j], sources[i])
			}
			seen[f.Name] = i
		}
		for _, r := range f.Rules.List() {
			if r.Config.Level < types.LevelOff || r.Config.Level > types.LevelError {
				return errors.Newf(errors.ErrInvalidInput, "rule %q in %s has invalid level %s",
					r.ID, describe(f, sources[i]), r.Config.Level)
			}
		}
		for _, patterns := range [][]string{f.Files, f.Ignores} {
			for _, p := range patterns {
				if !globs.Valid(p) {
					return errors.Newf(errors.ErrInvalidInput, "invalid pattern %q in %s", p, describe(f, sources[i])).
						WithDetail("pattern", p)
				}
			}
		}
	}
	return nil
}

func describe(f types.Fragment, source string) string {
	if f.Name != "" {
		return f.Name
	}
	return source
}

// UnregisteredRules lists rule ids whose namespace no fragment in the list
// registers. Core rules without a namespace are never reported.
func UnregisteredRules(frags []types.Fragment) []string {
	registered := map[string]bool{}
	for _, f := range frags {
		for ns := range f.Plugins {
			registered[ns] = true
		}
	}

	seen := map[string]bool{}
	var out []string
	for _, f := range frags {
		for _, id := range f.Rules.Keys() {
			if seen[id] || !strings.Contains(id, "/") {
				continue
			}
			seen[id] = true
			if !hasRegisteredPrefix(id, registered) {
				out = append(out, id)
			}
		}
	}
	sort.Strings(out)
	return out
}

func hasRegisteredPrefix(id string, registered map[string]bool) bool {
	for i := len(id) - 1; i > 0; i-- {
		if id[i] == '/' && registered[id[:i]] {
			return true
		}
	}
	return false
}

func warnUnregistered(frags []types.Fragment) {
	ids := UnregisteredRules(frags)
	if len(ids) == 0 {
		return
	}
	logger := logging.GetLogger("compose.finalize")
	logger.Warn().
		Strs("rules", ids).
		Msg("Rules reference plugins that no fragment registers")
}
