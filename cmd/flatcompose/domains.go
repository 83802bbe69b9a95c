package flatcompose

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/flatcompose/pkg/compose"
	"github.com/arthur-debert/flatcompose/pkg/output"
	"github.com/arthur-debert/flatcompose/pkg/producers"
)

func newDomainsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "domains",
		Short:   MsgDomainsShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.settings(cmd)
			if err != nil {
				return err
			}
			infos, err := domainInfos()
			if err != nil {
				return err
			}

			r, err := renderer(cmd.OutOrStdout(), s, output.FormatText)
			if err != nil {
				return err
			}
			if r.Format().Structured() {
				return r.Data(infos)
			}
			var b strings.Builder
			b.WriteString(MsgDomainsHeader)
			for _, info := range infos {
				pkgs := MsgDomainsBundled
				if len(info.Packages) > 0 {
					pkgs = strings.Join(info.Packages, ", ")
				}
				fmt.Fprintf(&b, MsgDomainsRow, info.Domain, info.Description, pkgs)
			}
			return r.Markdown(b.String())
		},
	}
}

// domainInfos describes every producer in composition order.
func domainInfos() ([]producers.Info, error) {
	out := make([]producers.Info, 0, len(compose.Order))
	for _, domain := range compose.Order {
		p, err := producers.Get(domain)
		if err != nil {
			return nil, err
		}
		out = append(out, producers.Describe(p))
	}
	return out, nil
}
