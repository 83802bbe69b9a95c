package flatcompose

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/flatcompose/pkg/errors"
	"github.com/arthur-debert/flatcompose/pkg/output"
)

//go:embed help/*.md
var helpFS embed.FS

// topics maps topic names to markdown from the embedded help directory.
type topics map[string]string

func loadTopics(fsys fs.FS, dir string) (topics, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	out := topics{}
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".md" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		out[strings.TrimSuffix(e.Name(), ".md")] = string(data)
	}
	return out, nil
}

// Get looks a topic up; "--name" and "-name" find "name".
func (t topics) Get(name string) (string, bool) {
	name = strings.TrimLeft(name, "-")
	content, ok := t[name]
	return content, ok
}

func (t topics) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// newHelpCmd replaces cobra's help command with one that also shows the
// embedded topics.
func newHelpCmd(root *cobra.Command) *cobra.Command {
	t, err := loadTopics(helpFS, "help")
	if err != nil {
		t = topics{}
	}

	return &cobra.Command{
		Use:     "help [command or topic]",
		Short:   MsgHelpShort,
		GroupID: "misc",
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := append([]string{"topics"}, t.Names()...)
			for _, c := range root.Commands() {
				if c.IsAvailableCommand() {
					completions = append(completions, c.Name())
				}
			}
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if len(args) == 0 {
				root.SetOut(w)
				return root.Help()
			}
			if args[0] == "topics" {
				var b strings.Builder
				b.WriteString(MsgTopicsHeader)
				for _, name := range t.Names() {
					fmt.Fprintf(&b, "- %s\n", name)
				}
				return output.New(w, output.FormatAuto).Markdown(b.String())
			}
			if content, ok := t.Get(args[0]); ok {
				return output.New(w, output.FormatAuto).Markdown(content)
			}

			target, _, err := root.Find(args)
			if err != nil {
				return err
			}
			if target == root {
				return errors.Newf(errors.ErrNotFound, MsgErrUnknownTopic, args[0]).WithDetail("topic", args[0])
			}
			target.SetOut(w)
			return target.Help()
		},
	}
}
