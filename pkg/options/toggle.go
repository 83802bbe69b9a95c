package options

import (
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/arthur-debert/flatcompose/pkg/errors"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

type state int

const (
	unset state = iota
	disabled
	enabled
)

// Toggle is the value of one domain key: unset, disabled, enabled with
// defaults, or enabled with options.
type Toggle struct {
	state state
	opts  *DomainOptions
}

// Unset is the toggle of a domain the caller did not mention.
func Unset() Toggle { return Toggle{} }

// Disable turns a domain off.
func Disable() Toggle { return Toggle{state: disabled} }

// Enable turns a domain on with its defaults.
func Enable() Toggle { return Toggle{state: enabled} }

// EnableWith turns a domain on with options.
func EnableWith(opts DomainOptions) Toggle {
	o := opts.Clone()
	return Toggle{state: enabled, opts: &o}
}

// IsSet reports whether the caller chose explicitly.
func (t Toggle) IsSet() bool { return t.state != unset }

// Enabled resolves the toggle, falling back to def when unset.
func (t Toggle) Enabled(def bool) bool {
	switch t.state {
	case disabled:
		return false
	case enabled:
		return true
	default:
		return def
	}
}

// HasOptions reports whether the toggle carries an options object.
func (t Toggle) HasOptions() bool { return t.opts != nil }

// Options returns a copy of the options, empty for boolean toggles.
func (t Toggle) Options() DomainOptions {
	if t.opts == nil {
		return DomainOptions{}
	}
	return t.opts.Clone()
}

func (t Toggle) String() string {
	switch t.state {
	case disabled:
		return "disabled"
	case enabled:
		if t.opts != nil {
			return "enabled(options)"
		}
		return "enabled"
	default:
		return "unset"
	}
}

// DomainOptions is the options object of one domain. Overrides and Files are
// common to every domain; anything else is kept in Extra and decoded by the
// producer into its own struct.
type DomainOptions struct {
	Overrides *types.Rules
	Files     []string
	Extra     map[string]interface{}
}

// Clone deep copies the options.
func (d DomainOptions) Clone() DomainOptions {
	out := DomainOptions{
		Overrides: d.Overrides.Clone(),
		Extra:     types.CloneMap(d.Extra),
	}
	if d.Files != nil {
		out.Files = append([]string{}, d.Files...)
	}
	return out
}

// Has reports whether an extra key is present.
func (d DomainOptions) Has(key string) bool {
	_, ok := d.lookup(key)
	return ok
}

// Get returns an extra value by normalized key.
func (d DomainOptions) Get(key string) (interface{}, bool) {
	return d.lookup(key)
}

func (d DomainOptions) lookup(key string) (interface{}, bool) {
	want := Normalize(key)
	for k, v := range d.Extra {
		if Normalize(k) == want {
			return v, true
		}
	}
	return nil, false
}

// Decode fills target, a pointer to a struct, from the extra keys. Field
// names match keys case-insensitively, ignoring "_" and "-". Fields already
// set on target act as defaults.
func (d DomainOptions) Decode(target interface{}) error {
	if len(d.Extra) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
		ZeroFields:       true,
		MatchName: func(mapKey, fieldName string) bool {
			return Normalize(mapKey) == Normalize(fieldName)
		},
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			types.RulesDecodeHook(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to create options decoder")
	}
	if err := dec.Decode(d.Extra); err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, "invalid domain options")
	}
	return nil
}

// Normalize folds a key for matching: lower case without "_" and "-".
func Normalize(key string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || r == '-' {
			return -1
		}
		return r
	}, strings.ToLower(key))
}

// parseToggle converts a raw option value.
func parseToggle(key string, v interface{}) (Toggle, error) {
	switch x := v.(type) {
	case nil:
		return Unset(), nil
	case bool:
		if x {
			return Enable(), nil
		}
		return Disable(), nil
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true", "on", "yes", "1":
			return Enable(), nil
		case "false", "off", "no", "0":
			return Disable(), nil
		}
		return Toggle{}, errors.Newf(errors.ErrInvalidInput, "option %q: %q is not a boolean", key, x).
			WithDetail("key", key)
	case Toggle:
		return x, nil
	case DomainOptions:
		return EnableWith(x), nil
	}

	m, ok := toStringMap(v)
	if !ok {
		return Toggle{}, errors.Newf(errors.ErrInvalidInput, "option %q must be a boolean or an object, got %T", key, v).
			WithDetail("key", key)
	}
	opts, err := parseDomainOptions(key, m)
	if err != nil {
		return Toggle{}, err
	}
	return Toggle{state: enabled, opts: &opts}, nil
}

func parseDomainOptions(key string, m map[string]interface{}) (DomainOptions, error) {
	var opts DomainOptions
	for k, v := range m {
		switch Normalize(k) {
		case "overrides":
			rules, err := toRules(v)
			if err != nil {
				return DomainOptions{}, errors.Wrapf(err, errors.ErrInvalidInput, "option %q overrides", key)
			}
			opts.Overrides = rules
		case "files":
			files, err := toStrings(v)
			if err != nil {
				return DomainOptions{}, errors.Wrapf(err, errors.ErrInvalidInput, "option %q files", key)
			}
			opts.Files = files
		default:
			if opts.Extra == nil {
				opts.Extra = make(map[string]interface{})
			}
			opts.Extra[k] = types.CloneValue(v)
		}
	}
	return opts, nil
}

func toRules(v interface{}) (*types.Rules, error) {
	switch x := v.(type) {
	case *types.Rules:
		return x.Clone(), nil
	case nil:
		return types.NewRules(), nil
	}
	m, ok := toStringMap(v)
	if !ok {
		return nil, errors.Newf(errors.ErrInvalidInput, "rules must be an object, got %T", v)
	}
	return types.RulesFromMap(m)
}

func toStrings(v interface{}) ([]string, error) {
	switch x := v.(type) {
	case []string:
		return append([]string{}, x...), nil
	case string:
		if strings.TrimSpace(x) == "" {
			return []string{}, nil
		}
		parts := strings.Split(x, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, errors.Newf(errors.ErrInvalidInput, "expected a list of strings, got %T", v)
	}
	out := make([]string, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		s, ok := rv.Index(i).Interface().(string)
		if !ok {
			return nil, errors.Newf(errors.ErrInvalidInput, "expected a list of strings, item %d is %T", i, rv.Index(i).Interface())
		}
		out = append(out, s)
	}
	return out, nil
}

// toStringMap accepts the map shapes produced by JSON, YAML and TOML decoders.
func toStringMap(v interface{}) (map[string]interface{}, bool) {
	switch x := v.(type) {
	case map[string]interface{}:
		return x, true
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(x))
		for k, val := range x {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	}
	return nil, false
}

func toBool(key string, v interface{}) (bool, error) {
	t, err := parseToggle(key, v)
	if err != nil {
		return false, err
	}
	if t.HasOptions() {
		return false, errors.Newf(errors.ErrInvalidInput, "option %q must be a boolean", key).WithDetail("key", key)
	}
	return t.Enabled(false), nil
}
