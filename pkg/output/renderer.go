package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/flatcompose/pkg/compose"
	"github.com/arthur-debert/flatcompose/pkg/errors"
	"github.com/arthur-debert/flatcompose/pkg/logging"
	"github.com/arthur-debert/flatcompose/pkg/types"
)

// Renderer writes results to w in one format.
type Renderer struct {
	w      io.Writer
	format Format
	styles Styles
}

// New creates a renderer. FormatAuto is resolved against w when it is a
// file and falls back to plain text otherwise.
func New(w io.Writer, format Format) *Renderer {
	if format == FormatAuto {
		f, _ := w.(*os.File)
		format = DetectFormat(f)
	}

	lg := lipgloss.NewRenderer(w)
	if format != FormatTerminal {
		lg.SetColorProfile(termenv.Ascii)
	}
	logger := logging.GetLogger("output")
	logger.Debug().
		Str("format", format.String()).
		Str("TERM", os.Getenv("TERM")).
		Msg("Renderer created")

	return &Renderer{w: w, format: format, styles: DefaultStyles(lg)}
}

// Format is the resolved format.
func (r *Renderer) Format() Format { return r.format }

// Data encodes v as JSON or YAML. Text formats print it with %v.
func (r *Renderer) Data(v interface{}) error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	_, err := fmt.Fprintf(r.w, "%v\n", v)
	return err
}

// Fragments writes a composed list.
func (r *Renderer) Fragments(frags []types.Fragment) error {
	if r.format.Structured() {
		if frags == nil {
			frags = []types.Fragment{}
		}
		return r.Data(frags)
	}

	var b strings.Builder
	b.WriteString(r.styles.Render("Title", fmt.Sprintf("%d fragments", len(frags))))
	b.WriteString("\n")
	for i, f := range frags {
		b.WriteString("\n")
		r.writeFragment(&b, i, f)
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *Renderer) writeFragment(b *strings.Builder, i int, f types.Fragment) {
	name := f.Name
	if name == "" {
		name = r.styles.Render("Muted", "(unnamed)")
	} else {
		name = r.styles.Render("Name", name)
	}
	fmt.Fprintf(b, "%3d  %s\n", i, name)

	field := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(b, "     %s%s\n", r.styles.Render("Label", label), value)
	}
	if f.IsGlobalIgnore() {
		field("ignores", r.styles.Render("Ignored", strings.Join(f.Ignores, ", ")))
		return
	}
	field("files", strings.Join(f.Files, ", "))
	field("ignores", strings.Join(f.Ignores, ", "))
	field("plugins", r.namespaces(f.Plugins))
	if f.LanguageOptions != nil && f.LanguageOptions.Parser != nil {
		field("parser", f.LanguageOptions.Parser.ID)
	}
	field("processor", processorText(f.Processor))
	if f.Rules.Len() > 0 {
		field("rules", r.ruleSummary(f.Rules))
	}
	if len(f.Settings) > 0 {
		field("settings", strings.Join(sortedKeys(f.Settings), ", "))
	}
}

func (r *Renderer) namespaces(plugins map[string]*types.PluginDefinition) string {
	ns := make([]string, 0, len(plugins))
	for k := range plugins {
		ns = append(ns, r.styles.Render("Namespace", k))
	}
	sort.Strings(ns)
	return strings.Join(ns, ", ")
}

func (r *Renderer) ruleSummary(rules *types.Rules) string {
	var counts [3]int
	for _, rule := range rules.List() {
		if lvl := rule.Config.Level; lvl >= types.LevelOff && lvl <= types.LevelError {
			counts[lvl]++
		}
	}
	return fmt.Sprintf("%d (%s, %s, %s)", rules.Len(),
		r.styles.Render("Off", strconv.Itoa(counts[types.LevelOff])+" off"),
		r.styles.Render("Warn", strconv.Itoa(counts[types.LevelWarn])+" warn"),
		r.styles.Render("Error", strconv.Itoa(counts[types.LevelError])+" error"))
}

// InspectRow is one line of the inspect table.
type InspectRow struct {
	Index   int      `json:"index" yaml:"index"`
	Name    string   `json:"name" yaml:"name"`
	Files   []string `json:"files,omitempty" yaml:"files,omitempty"`
	Plugins []string `json:"plugins,omitempty" yaml:"plugins,omitempty"`
	Rules   int      `json:"rules" yaml:"rules"`
}

// Rows summarizes a list for Inspect.
func Rows(frags []types.Fragment) []InspectRow {
	rows := make([]InspectRow, len(frags))
	for i, f := range frags {
		plugins := make([]string, 0, len(f.Plugins))
		for ns := range f.Plugins {
			plugins = append(plugins, ns)
		}
		sort.Strings(plugins)
		files := f.Files
		if f.IsGlobalIgnore() {
			files = prefixed("!", f.Ignores)
		}
		rows[i] = InspectRow{Index: i, Name: f.Name, Files: files, Plugins: plugins, Rules: f.Rules.Len()}
	}
	return rows
}

// Inspect writes a one-line-per-fragment table.
func (r *Renderer) Inspect(frags []types.Fragment) error {
	rows := Rows(frags)
	if r.format.Structured() {
		return r.Data(rows)
	}

	data := pterm.TableData{{"#", "Name", "Files", "Plugins", "Rules"}}
	for _, row := range rows {
		files := strings.Join(row.Files, " ")
		if files == "" {
			files = "*"
		}
		data = append(data, []string{
			strconv.Itoa(row.Index),
			row.Name,
			files,
			strings.Join(row.Plugins, " "),
			strconv.Itoa(row.Rules),
		})
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	if r.format != FormatTerminal {
		out = pterm.RemoveColorFromString(out)
	}
	_, err = fmt.Fprintln(r.w, out)
	return err
}

// Resolved writes the effective configuration of one file.
func (r *Renderer) Resolved(res *compose.Resolved) error {
	if r.format.Structured() {
		return r.Data(newResolvedView(res))
	}

	var b strings.Builder
	b.WriteString(r.styles.Render("Title", res.Path))
	b.WriteString("\n")
	if res.Ignored {
		b.WriteString(r.styles.Render("Ignored", "ignored by a global ignore fragment"))
		b.WriteString("\n")
		_, err := io.WriteString(r.w, b.String())
		return err
	}

	field := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "  %s %s\n", r.styles.Render("Label", label), value)
		}
	}
	field("fragments", strings.Join(res.Fragments, ", "))
	field("plugins", r.namespaces(res.Plugins))
	if res.LanguageOptions != nil && res.LanguageOptions.Parser != nil {
		field("parser", res.LanguageOptions.Parser.ID)
	}
	field("processor", processorText(res.Processor))

	rules := res.Rules.List()
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })
	fmt.Fprintf(&b, "  %s %d\n", r.styles.Render("Label", "rules"), len(rules))
	for _, rule := range rules {
		level := rule.Config.Level.String()
		switch rule.Config.Level {
		case types.LevelOff:
			level = r.styles.Render("Off", fmt.Sprintf("%-5s", level))
		case types.LevelWarn:
			level = r.styles.Render("Warn", fmt.Sprintf("%-5s", level))
		default:
			level = r.styles.Render("Error", fmt.Sprintf("%-5s", level))
		}
		line := "    " + level + " " + rule.ID
		if len(rule.Config.Options) > 0 {
			opts, _ := json.Marshal(rule.Config.Options)
			line += " " + r.styles.Render("Muted", string(opts))
		}
		b.WriteString(line + "\n")
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

// resolvedView is Resolved with plugins written as package ids.
type resolvedView struct {
	Path      string                 `json:"path" yaml:"path"`
	Ignored   bool                   `json:"ignored" yaml:"ignored"`
	Fragments []string               `json:"fragments" yaml:"fragments"`
	Plugins   map[string]string      `json:"plugins,omitempty" yaml:"plugins,omitempty"`
	Rules     *types.Rules           `json:"rules,omitempty" yaml:"rules,omitempty"`
	Processor *types.Processor       `json:"processor,omitempty" yaml:"processor,omitempty"`
	Settings  map[string]interface{} `json:"settings,omitempty" yaml:"settings,omitempty"`

	LanguageOptions *types.LanguageOptions `json:"languageOptions,omitempty" yaml:"languageOptions,omitempty"`
}

func newResolvedView(res *compose.Resolved) resolvedView {
	return resolvedView{
		Path:            res.Path,
		Ignored:         res.Ignored,
		Fragments:       res.Fragments,
		Plugins:         res.PluginIDs(),
		Rules:           res.Rules,
		Processor:       res.Processor,
		Settings:        res.Settings,
		LanguageOptions: res.LanguageOptions,
	}
}

// Markdown writes md, rendered with glamour on a color terminal.
func (r *Renderer) Markdown(md string) error {
	if r.format == FormatTerminal {
		md = NewGlamourRenderer().Render(md)
	}
	_, err := io.WriteString(r.w, md)
	return err
}

// Message writes one line in the named style.
func (r *Renderer) Message(style, msg string) error {
	if r.format.Structured() {
		return r.Data(map[string]string{"message": msg})
	}
	_, err := fmt.Fprintln(r.w, r.styles.Render(style, msg))
	return err
}

// Error writes err. Structured formats carry its code and details as
// separate fields.
func (r *Renderer) Error(err error) error {
	code := errors.GetErrorCode(err)
	details := errors.GetErrorDetails(err)
	if r.format.Structured() {
		return r.Data(map[string]interface{}{
			"error":   err.Error(),
			"code":    string(code),
			"details": details,
		})
	}
	_, werr := fmt.Fprintln(r.w, r.styles.Render("Error", "Error:"), err.Error())
	return werr
}

func processorText(p *types.Processor) string {
	if p == nil {
		return ""
	}
	if len(p.Merge) > 0 {
		return p.Name + "(" + strings.Join(p.Merge, ", ") + ")"
	}
	return p.Name
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func prefixed(prefix string, list []string) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = prefix + s
	}
	return out
}
