package options

import (
	"strconv"
	"strings"

	"github.com/arthur-debert/flatcompose/pkg/errors"
)

// Stylistic holds the formatting preferences consumed by stylistic rules
// and by the formatters domain.
type Stylistic struct {
	// Indent is a width in spaces, or "tab"
	Indent interface{} `mapstructure:"indent"`
	Quotes string      `mapstructure:"quotes"`
	Semi   bool        `mapstructure:"semi"`
	JSX    bool        `mapstructure:"jsx"`
}

// StylisticDefaults apply to every field the caller leaves out.
var StylisticDefaults = Stylistic{
	Indent: 4,
	Quotes: "single",
	Semi:   true,
	JSX:    true,
}

// IndentWidth returns the indent as spaces, 0 for tabs.
func (s Stylistic) IndentWidth() int {
	if n, ok := s.Indent.(int); ok {
		return n
	}
	return 0
}

// UseTabs reports whether the indent is "tab".
func (s Stylistic) UseTabs() bool {
	str, ok := s.Indent.(string)
	return ok && strings.EqualFold(str, "tab")
}

// ResolveStylistic resolves the stylistic domain. It returns nil when the
// caller disabled it. jsx follows the top-level jsx flag unless the
// stylistic object sets it.
func ResolveStylistic(c *OptionsConfig) (*Stylistic, error) {
	t := c.Toggle("stylistic")
	if !t.Enabled(true) {
		return nil, nil
	}

	s := StylisticDefaults
	if c != nil && c.JSX != nil {
		s.JSX = *c.JSX
	}

	// Decoded into pointers first so that absent keys keep their default.
	var in struct {
		Indent interface{} `mapstructure:"indent"`
		Quotes *string     `mapstructure:"quotes"`
		Semi   *bool       `mapstructure:"semi"`
		JSX    *bool       `mapstructure:"jsx"`
	}
	opts := t.Options()
	if err := opts.Decode(&in); err != nil {
		return nil, err
	}
	if in.Indent != nil {
		s.Indent = in.Indent
	}
	if in.Quotes != nil {
		s.Quotes = *in.Quotes
	}
	if in.Semi != nil {
		s.Semi = *in.Semi
	}
	if in.JSX != nil {
		s.JSX = *in.JSX
	}

	switch x := s.Indent.(type) {
	case int:
	case int64:
		s.Indent = int(x)
	case float64:
		s.Indent = int(x)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(x)); err == nil {
			s.Indent = n
			break
		}
		if !strings.EqualFold(x, "tab") {
			return nil, errors.Newf(errors.ErrInvalidInput, "stylistic indent must be a number or \"tab\", got %q", x)
		}
		s.Indent = "tab"
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "stylistic indent must be a number or \"tab\", got %T", x)
	}
	if n, ok := s.Indent.(int); ok && n <= 0 {
		return nil, errors.Newf(errors.ErrInvalidInput, "stylistic indent must be positive, got %d", n)
	}

	switch s.Quotes {
	case "single", "double", "backtick":
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "stylistic quotes must be single, double or backtick, got %q", s.Quotes)
	}
	return &s, nil
}
