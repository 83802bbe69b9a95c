package flatcompose

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/flatcompose/pkg/compose"
	"github.com/arthur-debert/flatcompose/pkg/options"
	"github.com/arthur-debert/flatcompose/pkg/output"
	"github.com/arthur-debert/flatcompose/pkg/probe"
)

// probeRow is one line of the probe report.
type probeRow struct {
	Domain     string   `json:"domain" yaml:"domain"`
	Candidates []string `json:"candidates" yaml:"candidates"`
	Matched    []string `json:"matched" yaml:"matched"`
	Setting    string   `json:"setting" yaml:"setting"`
	Enabled    bool     `json:"enabled" yaml:"enabled"`
}

func newProbeCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "probe",
		Short:   MsgProbeShort,
		Long:    MsgProbeLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.settings(cmd)
			if err != nil {
				return err
			}
			env, err := s.Environment(g.dir)
			if err != nil {
				return err
			}
			rows, err := probeReport(s.Options, env)
			if err != nil {
				return err
			}

			r, err := renderer(cmd.OutOrStdout(), s, output.FormatText)
			if err != nil {
				return err
			}
			if r.Format().Structured() {
				return r.Data(rows)
			}
			return r.Markdown(probeMarkdown(rows))
		},
	}
	addOptionFlags(cmd)
	return cmd
}

// probeReport combines the probe findings with the explicit settings and
// the resulting plan.
func probeReport(raw map[string]interface{}, env compose.Environment) ([]probeRow, error) {
	cfg, err := options.Parse(raw)
	if err != nil {
		return nil, err
	}
	plan, err := compose.BuildPlan(cfg, env)
	if err != nil {
		return nil, err
	}
	planned := map[string]bool{}
	for _, d := range plan.Domains() {
		planned[d] = true
	}

	oracle := env.Oracle
	if oracle == nil {
		oracle = probe.ReadManifest(dirOrDot(env.Dir))
	}
	findings := probe.New(oracle, probe.DefaultCandidates.Clone(env.Candidates)).Report()
	rows := make([]probeRow, 0, len(findings))
	for _, f := range findings {
		rows = append(rows, probeRow{
			Domain:     f.Domain,
			Candidates: f.Candidates,
			Matched:    nonNil(f.Matched),
			Setting:    cfg.Toggle(f.Domain).String(),
			Enabled:    planned[f.Domain],
		})
	}
	return rows, nil
}

func probeMarkdown(rows []probeRow) string {
	var b strings.Builder
	b.WriteString("| Domain | Candidates | Matched | Setting | Enabled |\n")
	b.WriteString("| --- | --- | --- | --- | --- |\n")
	for _, row := range rows {
		matched := strings.Join(row.Matched, ", ")
		if matched == "" {
			matched = "-"
		}
		enabled := "no"
		if row.Enabled {
			enabled = "yes"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			row.Domain, strings.Join(row.Candidates, ", "), matched, row.Setting, enabled)
	}
	return b.String()
}

func dirOrDot(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
