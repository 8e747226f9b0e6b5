package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/deepinsight/backend/internal/console"
	"github.com/spf13/cobra"
)

type capabilityRow struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Action      string `json:"action" yaml:"action"`
	Target      string `json:"target,omitempty" yaml:"target,omitempty"`
}

func newCapabilitiesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "capabilities [TITLE]",
		Short: "List the service cards shown on the landing page, or activate one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return activate(cmd, args[0])
			}
			rows := make([]capabilityRow, 0, len(console.Capabilities))
			for _, c := range console.Capabilities {
				rows = append(rows, capabilityRow{
					Title:       c.Title,
					Description: c.Description,
					Action:      string(c.Action.Kind),
					Target:      c.Action.Target,
				})
			}
			return a.render(cmd.OutOrStdout(), rows, func(w io.Writer) {
				fmt.Fprintf(w, "%-22s %-12s %s\n", "TITLE", "ACTION", "TARGET")
				for _, r := range rows {
					target := r.Target
					if target == "" {
						target = "-"
					}
					fmt.Fprintf(w, "%-22s %-12s %s\n", r.Title, r.Action, target)
				}
			})
		},
	}
}

// activate runs the action of the card titled title.
func activate(cmd *cobra.Command, title string) error {
	for _, c := range console.Capabilities {
		if !strings.EqualFold(c.Title, title) {
			continue
		}
		w := cmd.OutOrStdout()
		d := console.Dispatcher{
			Navigate:    func(target string) { fmt.Fprintf(w, "See %s\n", target) },
			OpenInquiry: func() { fmt.Fprintln(w, "Run 'insightctl submit' to send an inquiry") },
		}
		if c.Action.Kind == console.ActionNone {
			fmt.Fprintf(w, "%s: %s\n", c.Title, c.Description)
		}
		return d.Dispatch(c.Action)
	}
	return fmt.Errorf("no capability titled %q", title)
}
