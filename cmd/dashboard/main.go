package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tanishamittal108/PulseAI/internal/config"
	"github.com/tanishamittal108/PulseAI/internal/dashboard"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "PulseAI Smart NewsSense terminal dashboard",
	Long: `Polls the PulseAI backend for summarized news on a topic and renders
the latest batch with sentiment counts and a sentiment trend line.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadDashboard(cmd.Flags())
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: config.ParseLogLevel(cfg.LogLevel),
		})))

		if cfg.NoColor {
			color.NoColor = true
		}
		interactive := !color.NoColor

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		client := dashboard.NewClient(cfg.BackendURL, cfg.Timeout)
		renderer := dashboard.NewRenderer(os.Stdout, dashboard.RenderOptions{
			Color:       interactive,
			ClearScreen: interactive && cfg.AutoRefresh,
		})

		loop := dashboard.NewLoop(client, renderer, dashboard.LoopConfig{
			Backend: cfg.BackendURL,
			Query: dashboard.Query{
				Topic:    cfg.Topic,
				Country:  cfg.Country,
				PageSize: cfg.Count,
			},
			AutoRefresh: cfg.AutoRefresh,
			Interval:    cfg.Interval,
		})

		slog.Debug("dashboard started", "backend", cfg.BackendURL, "topic", cfg.Topic, "interval", cfg.Interval.String())

		return loop.Run(ctx)
	},
}

func init() {
	config.RegisterDashboardFlags(rootCmd.Flags())
}
