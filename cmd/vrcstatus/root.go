package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/vrcstatus/internal/adapters/browser"
	"github.com/okian/vrcstatus/internal/adapters/fetch"
	service "github.com/okian/vrcstatus/internal/app"
	"github.com/okian/vrcstatus/internal/config"
	"github.com/okian/vrcstatus/pkg/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vrcstatus",
		Short:         "Render the VRChat status page indicators",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newSnapshotCmd(), newChartsCmd(), newVersionCmd())
	return root
}

// setup loads configuration and initializes logging.
func setup(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		// Use stderr since logger isn't available yet
		_, _ = os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return nil, err
	}
	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithOutput(os.Stderr)); err != nil {
		_, _ = os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return nil, err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return cfg, nil
}

// buildService wires the capabilities from cfg into a pipeline. The returned
// closer releases the browser, if one was configured.
func buildService(cfg *config.Config) (*service.Service, func()) {
	log := logger.Get()
	opts := []service.Option{
		service.WithLogger(log.Named("pipeline")),
		service.WithHTTPClient(fetch.NewHTTPClient()),
		service.WithURL(cfg.URL),
		service.WithTimeout(cfg.Timeout()),
		service.WithRetries(cfg.Retries),
		service.WithConcurrency(cfg.SeriesConcurrency),
		service.WithViewport(cfg.ViewportWidth, cfg.ViewportHeight),
	}

	closer := func() {}
	if cfg.BrowserEnabled {
		chrome := browser.NewChrome(
			browser.WithExecPath(cfg.ChromePath),
			browser.WithHeadless(cfg.Headless),
			browser.WithNoSandbox(cfg.NoSandbox),
			browser.WithLogger(log.Named("browser")),
		)
		opts = append(opts, service.WithBrowser(chrome))
		closer = func() {
			if err := chrome.Close(); err != nil {
				log.Warn(context.Background(), "browser close failed", logger.Error(err))
			}
		}
	}
	return service.New(opts...), closer
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), service.Version())
			return err
		},
	}
}

// exitMessage turns a command error into the line shown to the user.
// Pipeline failures get their short status.
func exitMessage(err error) string {
	if msg := service.Message(err); msg != service.MessageUnexpected {
		return msg
	}
	return err.Error()
}
