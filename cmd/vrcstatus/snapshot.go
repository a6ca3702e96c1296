package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Default snapshot file names.
const (
	defaultImageFile = "report.png"
	defaultHTMLFile  = "report.html"
)

// outputPath returns out, or the default file name for the chosen format.
func outputPath(out string, htmlOnly bool) string {
	switch {
	case out != "":
		return out
	case htmlOnly:
		return defaultHTMLFile
	default:
		return defaultImageFile
	}
}

func newSnapshotCmd() *cobra.Command {
	var (
		out      string
		htmlOnly bool
	)
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render the report once and write it to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := setup(ctx)
			if err != nil {
				return err
			}
			svc, closeBrowser := buildService(cfg)
			defer closeBrowser()

			var data []byte
			if htmlOnly {
				html, _, err := svc.Report(ctx)
				if err != nil {
					return err
				}
				data = []byte(html)
			} else {
				data, _, err = svc.Snapshot(ctx)
				if err != nil {
					return err
				}
			}
			path := outputPath(out, htmlOnly)
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file path (default report.png, or report.html with --html)")
	cmd.Flags().BoolVar(&htmlOnly, "html", false, "write the HTML report instead of a screenshot")
	return cmd
}
