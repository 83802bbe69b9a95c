package output

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/flatcompose/pkg/errors"
)

// Format represents the output format type
type Format int

const (
	// FormatAuto picks FormatTerminal or FormatText from the writer
	FormatAuto Format = iota
	// FormatTerminal is text with colors and tables
	FormatTerminal
	// FormatText is text without any styling
	FormatText
	// FormatJSON is the flat-config list as JSON
	FormatJSON
	// FormatYAML is the flat-config list as YAML
	FormatYAML
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatTerminal:
		return "term"
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Structured reports whether the format is machine-readable.
func (f Format) Structured() bool {
	return f == FormatJSON || f == FormatYAML
}

// ParseFormat parses a string into a Format value
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "":
		return FormatAuto, nil
	case "term", "terminal":
		return FormatTerminal, nil
	case "text", "plain":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format: %s", s).WithDetail("format", s)
	}
}

// DetectFormat determines the text format for a file from NO_COLOR, whether
// it is a terminal and the terminal's color support.
func DetectFormat(f *os.File) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}
	if f == nil || !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return FormatText
	}
	if termenv.NewOutput(f).ColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}

// Resolve replaces FormatAuto with the detected format for f.
func (f Format) Resolve(file *os.File) Format {
	if f != FormatAuto {
		return f
	}
	return DetectFormat(file)
}
