package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	service "github.com/okian/vrcstatus/internal/app"
	"github.com/okian/vrcstatus/internal/domain/chart"
	"github.com/okian/vrcstatus/internal/render/raster"
	"github.com/okian/vrcstatus/pkg/logger"
)

// Output formats of the charts command.
const (
	formatSVG = "svg"
	formatPNG = "png"
)

func newChartsCmd() *cobra.Command {
	var (
		dir    string
		format string
	)
	cmd := &cobra.Command{
		Use:   "charts",
		Short: "Write every available chart to a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != formatSVG && format != formatPNG {
				return fmt.Errorf("invalid format: %s (must be svg or png)", format)
			}
			ctx := cmd.Context()
			cfg, err := setup(ctx)
			if err != nil {
				return err
			}
			svc, closeBrowser := buildService(cfg)
			defer closeBrowser()

			res, err := svc.Collect(ctx)
			if err != nil {
				return err
			}
			written, err := writeCharts(res, dir, format)
			for _, p := range written {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "output directory")
	cmd.Flags().StringVar(&format, "format", formatSVG, "output format: svg or png")
	return cmd
}

// writeCharts writes one file per chart in canonical key order and returns
// the paths written.
func writeCharts(res *service.Result, dir, format string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	var written []string
	for _, key := range chart.Keys() {
		var data []byte
		switch format {
		case formatPNG:
			plot, ok := res.Plots[key]
			if !ok {
				continue
			}
			img, err := raster.RenderPNG(plot.Series, plot.Overlay, raster.Options{
				Title:         plot.Definition.Title,
				Filled:        plot.Definition.Filled,
				SmallDecimals: key.SmallDecimals(),
			})
			if err != nil {
				logger.Get().Warn(context.Background(), "chart png render failed",
					logger.String("key", string(key)), logger.Error(err))
				continue
			}
			data = img
		default:
			svg, ok := res.Charts[key]
			if !ok {
				continue
			}
			data = []byte(svg)
		}
		path := filepath.Join(dir, string(key)+"."+format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
