package output

import (
	_ "embed"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/flatcompose/pkg/errors"
)

//go:embed styles.yaml
var defaultStyles []byte

// ColorDef is an adaptive color: one value per terminal background.
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef is a style written as data. Foreground names a color from the
// same file or is a literal color.
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Width      int    `yaml:"width,omitempty"`
}

type styleConfig struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// Styles maps semantic names to lipgloss styles.
type Styles map[string]lipgloss.Style

// ParseStyles builds styles from YAML for renderer r.
func ParseStyles(r *lipgloss.Renderer, data []byte) (Styles, error) {
	var cfg styleConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse styles")
	}

	out := make(Styles, len(cfg.Styles))
	for name, def := range cfg.Styles {
		s := r.NewStyle().
			Bold(def.Bold).
			Italic(def.Italic).
			Underline(def.Underline)
		if def.Foreground != "" {
			if c, ok := cfg.Colors[def.Foreground]; ok {
				s = s.Foreground(lipgloss.AdaptiveColor{Light: c.Light, Dark: c.Dark})
			} else {
				s = s.Foreground(lipgloss.Color(def.Foreground))
			}
		}
		if def.Width > 0 {
			s = s.Width(def.Width)
		}
		out[name] = s
	}
	return out, nil
}

// DefaultStyles are the embedded styles for r.
func DefaultStyles(r *lipgloss.Renderer) Styles {
	s, err := ParseStyles(r, defaultStyles)
	if err != nil {
		panic(err)
	}
	return s
}

// Render applies the named style; unknown names leave text unchanged.
func (s Styles) Render(name, text string) string {
	st, ok := s[name]
	if !ok {
		return text
	}
	return st.Render(text)
}
