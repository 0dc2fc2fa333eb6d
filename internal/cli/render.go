package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/okian/xpdash/internal/adapters/http/svg"
)

func (a *app) renderCmd() *cobra.Command {
	var tokenFlag, out string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write every dashboard chart as an SVG file",
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
			if err := os.MkdirAll(out, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			for _, c := range res.Charts {
				path := filepath.Join(out, c.Name+".svg")
				if err := os.WriteFile(path, svg.Render(c), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&tokenFlag, "token", "t", "", "bearer token (default $"+EnvToken+")")
	cmd.Flags().StringVarP(&out, "out", "o", ".", "output directory")
	return cmd
}
