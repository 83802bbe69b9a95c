package types

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/flatcompose/pkg/errors"
)

// Level is the severity a linting engine reports a rule at.
type Level int

const (
	LevelOff Level = iota
	LevelWarn
	LevelError
)

var levelNames = [...]string{"off", "warn", "error"}

func (l Level) String() string {
	if l < LevelOff || l > LevelError {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelNames[l]
}

// ParseLevel accepts "off" / "warn" / "error" (any case) or the numeric
// severities 0, 1 and 2.
func ParseLevel(v interface{}) (Level, error) {
	switch x := v.(type) {
	case Level:
		if x >= LevelOff && x <= LevelError {
			return x, nil
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "off", "0":
			return LevelOff, nil
		case "warn", "1":
			return LevelWarn, nil
		case "error", "2":
			return LevelError, nil
		}
	case int:
		return ParseLevel(int64(x))
	case int64:
		if x >= 0 && x <= 2 {
			return Level(x), nil
		}
	case uint64:
		if x <= 2 {
			return Level(x), nil
		}
	case float64:
		if x == float64(int64(x)) {
			return ParseLevel(int64(x))
		}
	}
	return LevelOff, errors.Newf(errors.ErrInvalidInput, "invalid rule level %v", v)
}

// RuleConfig is the setting of one rule: a level plus optional parameters.
type RuleConfig struct {
	Level   Level
	Options []interface{}
}

// Off, Warn and Error build rule configs.
func Off() RuleConfig { return RuleConfig{Level: LevelOff} }

func Warn(opts ...interface{}) RuleConfig { return RuleConfig{Level: LevelWarn, Options: opts} }

func Error(opts ...interface{}) RuleConfig { return RuleConfig{Level: LevelError, Options: opts} }

// ParseRuleConfig converts the loosely typed forms found in option maps and
// config files into a RuleConfig.
//
//	"warn"             -> warn
//	2                  -> error
//	["error", "never"] -> error with options ["never"]
func ParseRuleConfig(v interface{}) (RuleConfig, error) {
	switch x := v.(type) {
	case RuleConfig:
		return x.Clone(), nil
	case *RuleConfig:
		if x == nil {
			return RuleConfig{}, errors.New(errors.ErrInvalidInput, "nil rule config")
		}
		return x.Clone(), nil
	case nil:
		return RuleConfig{}, errors.New(errors.ErrInvalidInput, "empty rule config")
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		if rv.Len() == 0 {
			return RuleConfig{}, errors.New(errors.ErrInvalidInput, "rule config array must start with a level")
		}
		level, err := ParseLevel(rv.Index(0).Interface())
		if err != nil {
			return RuleConfig{}, err
		}
		cfg := RuleConfig{Level: level}
		for i := 1; i < rv.Len(); i++ {
			cfg.Options = append(cfg.Options, rv.Index(i).Interface())
		}
		return cfg, nil
	}

	level, err := ParseLevel(v)
	if err != nil {
		return RuleConfig{}, err
	}
	return RuleConfig{Level: level}, nil
}

// Clone returns a copy whose option slice can be changed independently.
func (c RuleConfig) Clone() RuleConfig {
	out := RuleConfig{Level: c.Level}
	if len(c.Options) > 0 {
		out.Options = make([]interface{}, len(c.Options))
		copy(out.Options, c.Options)
	}
	return out
}

// Equal compares level and options.
func (c RuleConfig) Equal(o RuleConfig) bool {
	if c.Level != o.Level || len(c.Options) != len(o.Options) {
		return false
	}
	for i := range c.Options {
		if !reflect.DeepEqual(c.Options[i], o.Options[i]) {
			return false
		}
	}
	return true
}

func (c RuleConfig) String() string {
	if len(c.Options) == 0 {
		return c.Level.String()
	}
	opts, _ := json.Marshal(c.Options)
	return fmt.Sprintf("%s %s", c.Level, opts)
}

// value is the flat-config wire shape: a bare level or [level, opts...].
func (c RuleConfig) value() interface{} {
	if len(c.Options) == 0 {
		return c.Level.String()
	}
	out := make([]interface{}, 0, len(c.Options)+1)
	out = append(out, c.Level.String())
	return append(out, c.Options...)
}

func (c RuleConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.value())
}

func (c *RuleConfig) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseRuleConfig(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c RuleConfig) MarshalYAML() (interface{}, error) {
	return c.value(), nil
}

func (c *RuleConfig) UnmarshalYAML(node *yaml.Node) error {
	var raw interface{}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseRuleConfig(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
