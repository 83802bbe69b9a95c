package config

import (
	"bytes"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const starterHeader = `# flatcompose project settings.
#
# [options] is the options object: one key per domain (true, false or a
# table of domain options) plus the global flags. Tables after it show the
# built-in defaults, commented out; uncomment a key to change it.
`

// starter is what Generate writes as live settings.
type starter struct {
	Options map[string]interface{} `toml:"options"`
}

// Generate renders a starter flatcompose.toml. opts becomes the live
// [options] table; the embedded defaults follow, commented out.
func Generate(opts map[string]interface{}) ([]byte, error) {
	if opts == nil {
		opts = map[string]interface{}{}
	}

	var buf bytes.Buffer
	buf.WriteString(starterHeader)
	buf.WriteString("\n")

	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(starter{Options: opts}); err != nil {
		return nil, err
	}

	buf.WriteString("\n")
	buf.WriteString(commentOutConfigValues(DefaultsContent()))
	return buf.Bytes(), nil
}

// commentOutConfigValues takes the TOML content and comments out all non-comment, non-blank lines
// that contain configuration values (assignments)
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		// Keep blank lines as-is
		if trimmed == "" {
			result = append(result, line)
			continue
		}

		// Keep lines that are already comments
		if strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		// Keep section headers (e.g., [rename], [disables]) as-is
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			result = append(result, line)
			continue
		}

		// Comment out configuration value lines
		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}
