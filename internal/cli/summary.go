package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/okian/xpdash/internal/domain/model"
)

func (a *app) summaryCmd() *cobra.Command {
	var (
		tokenFlag string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the dashboard summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tok, err := token(tokenFlag)
			if err != nil {
				return err
			}
			res, err := a.backend.Dashboard(cmd.Context(), tok)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res.Dashboard)
			}
			return writeSummary(cmd.OutOrStdout(), res.Dashboard)
		},
	}

	cmd.Flags().StringVarP(&tokenFlag, "token", "t", "", "bearer token (default $"+EnvToken+")")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full dashboard as JSON")
	return cmd
}

func writeSummary(w io.Writer, d model.Dashboard) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	name := d.User.DisplayName()
	if name != d.User.Login {
		name += " (" + d.User.Login + ")"
	}
	fmt.Fprintf(tw, "User:\t%s\n", name)
	fmt.Fprintf(tw, "XP:\t%s\n", d.XP.Formatted)
	fmt.Fprintf(tw, "Audit ratio:\t%s\t(up %s, down %s)\n", d.Audit.Ratio, d.Audit.UpFormatted, d.Audit.DownFormatted)
	fmt.Fprintf(tw, "Pass rate:\t%s%%\t(%d passed, %d failed)\n", d.PassFail.PassPercentage, d.PassFail.Passed, d.PassFail.Failed)

	if len(d.TopProjects) > 0 {
		fmt.Fprintln(tw, "\nTop projects:")
		for i, p := range d.TopProjects {
			fmt.Fprintf(tw, "  %d.\t%s\t%s\n", i+1, p.Label, p.Formatted)
		}
	}
	if len(d.Skills) > 0 {
		fmt.Fprintln(tw, "\nSkills:")
		for _, s := range d.Skills {
			fmt.Fprintf(tw, "  %s\t%s\n", s.Label, strconv.FormatFloat(s.Value, 'f', -1, 64))
		}
	}
	if len(d.Warnings) > 0 {
		fmt.Fprintf(tw, "\nUnavailable:\t%s\n", strings.Join(d.Warnings, ", "))
	}
	return tw.Flush()
}
