package flatcompose

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTopics(t *testing.T) {
	fsys := fstest.MapFS{
		"help/settings.md": {Data: []byte("# Settings\n")},
		"help/options.md":  {Data: []byte("# Options\n")},
		"help/notes.txt":   {Data: []byte("skipped")},
	}
	topics, err := loadTopics(fsys, "help")
	require.NoError(t, err)
	assert.Equal(t, []string{"options", "settings"}, topics.Names())

	content, ok := topics.Get("--settings")
	assert.True(t, ok)
	assert.Equal(t, "# Settings\n", content)

	_, ok = topics.Get("notes")
	assert.False(t, ok)
}

func TestEmbeddedTopics(t *testing.T) {
	topics, err := loadTopics(helpFS, "help")
	require.NoError(t, err)
	assert.Contains(t, topics.Names(), "settings")
	assert.Contains(t, topics.Names(), "options")
}

func TestHelpCommand(t *testing.T) {
	dir := project(t)

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{name: "root help", args: []string{"help"}, want: "COMMANDS:"},
		{name: "topic list", args: []string{"help", "topics"}, want: "- settings"},
		{name: "topic", args: []string{"help", "settings"}, want: "FLATCOMPOSE_OUTPUT__FORMAT"},
		{name: "command", args: []string{"help", "resolve"}, want: "resolve PATH"},
		{name: "unknown", args: []string{"help", "nothing"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, dir, tt.args...)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}
