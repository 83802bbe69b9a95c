package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"

	"github.com/arthur-debert/flatcompose/pkg/errors"
	"github.com/arthur-debert/flatcompose/pkg/logging"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

// EnvPrefix marks environment variables read as settings. A double
// underscore separates nesting levels: FLATCOMPOSE_OPTIONS__VUE=false sets
// options.vue.
const EnvPrefix = "FLATCOMPOSE_"

// ProjectFiles are the project file names looked up, in order. The first
// one present is loaded.
var ProjectFiles = []string{
	"flatcompose.toml",
	".flatcompose.toml",
	"flatcompose.yaml",
	"flatcompose.yml",
	"flatcompose.jsonc",
	"flatcompose.json",
}

// FlagKeys maps command-line flag names to settings keys. Only flags listed
// here, and only those set explicitly, are layered.
var FlagKeys = map[string]string{
	"format":        "output.format",
	"out":           "output.file",
	"in-editor":     "options.isInEditor",
	"auto-rename":   "options.autoRenamePlugins",
	"typescript":    "options.typescript",
	"stylistic":     "options.stylistic",
	"component-ext": "options.componentExts",
}

// LoadOptions selects what Load reads.
type LoadOptions struct {
	// Dir is searched for a project file
	Dir string

	// File is an explicit project file; it must exist
	File string

	// UserFile replaces UserConfigPath as the per-user settings file. It is
	// optional either way.
	UserFile string

	// Overrides are dotted keys set programmatically or with --set; they
	// sit between the environment and the flags
	Overrides map[string]interface{}

	// Flags are layered last when non-nil
	Flags *pflag.FlagSet

	// SkipEnv ignores the environment and SkipUser the per-user file
	SkipEnv  bool
	SkipUser bool
}

// UserConfigPath is the per-user settings file, loaded before the project
// file when present.
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "flatcompose", "config.toml")
}

// Load reads and decodes the layered settings.
func Load(opts LoadOptions) (*Settings, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	if !opts.SkipUser {
		user := opts.UserFile
		if user == "" {
			user = UserConfigPath()
		}
		if _, err := os.Stat(user); err == nil {
			if err := k.Load(file.Provider(user), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load %s", user).
					WithDetail("path", user)
			}
			logger.Debug().Str("path", user).Msg("Loaded user settings")
		}
	}

	source, err := projectFile(opts)
	if err != nil {
		return nil, err
	}
	if source != "" {
		parser, err := parserFor(source)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(source), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load %s", source).
				WithDetail("path", source)
		}
		logger.Debug().Str("path", source).Msg("Loaded project file")
	}

	if !opts.SkipEnv {
		err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
			return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
		}), nil)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
		}
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	if opts.Flags != nil {
		err := k.Load(posflag.ProviderWithFlag(opts.Flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := FlagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(opts.Flags, f)
		}), nil)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load flags")
		}
	}

	var s Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "mapstructure",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				types.RulesDecodeHook(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &s, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode settings")
	}
	s.Source = source
	return &s, nil
}

// projectFile picks the file to load: the explicit one, or the first of
// ProjectFiles present in Dir.
func projectFile(opts LoadOptions) (string, error) {
	if opts.File != "" {
		if _, err := os.Stat(opts.File); err != nil {
			return "", errors.Wrapf(err, errors.ErrNotFound, "config file %s", opts.File).
				WithDetail("path", opts.File)
		}
		return opts.File, nil
	}
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	for _, name := range ProjectFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json", ".jsonc":
		return jsoncParser{}, nil
	}
	return nil, errors.Newf(errors.ErrConfigParse, "unsupported config file type %q", filepath.Ext(path)).
		WithDetail("path", path)
}

// jsoncParser is a koanf parser for JSON with comments and trailing commas.
type jsoncParser struct{}

func (jsoncParser) Unmarshal(b []byte) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := json.Unmarshal(jsonc.ToJSON(b), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (jsoncParser) Marshal(m map[string]interface{}) ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// ParseAssignments turns "key=value" pairs into an Overrides map.
func ParseAssignments(pairs []string) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, "expected key=value, got %q", pair).
				WithDetail("assignment", pair)
		}
		out[key] = value
	}
	return out, nil
}
