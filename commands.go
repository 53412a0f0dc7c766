package main

import (
	"context"
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"housing-dashboard/dashboard"
	"housing-dashboard/models"
	"housing-dashboard/pages"
	"housing-dashboard/server"
	"housing-dashboard/services"
	"housing-dashboard/snapshot"
	"housing-dashboard/storage"
)

// newServer assembles the dashboard over an already loaded table.
func (a *app) newServer(table *models.Table) (*server.Server, error) {
	content, err := pages.LoadContent(a.cfg.ContentPath)
	if err != nil {
		return nil, err
	}
	ctrl, err := dashboard.NewController(table, pages.NewBuilder(table, content), a.logger)
	if err != nil {
		return nil, err
	}
	theme := models.ParseTheme(a.cfg.DefaultTheme, models.ThemeDark)
	return server.New(table, ctrl, theme, a.logger), nil
}

func (a *app) runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signalContext(cmd.Context())
	defer stop()

	a.logger.Info("=== Housing Price Dashboard starting ===")
	a.logger.Info("Config: source %s | dataset %s | port %d | theme %s",
		a.cfg.DatasetSource, a.cfg.DatasetPath, a.cfg.Port, a.cfg.DefaultTheme)

	table, err := a.loadTable(ctx)
	if err != nil {
		a.logger.Error("Failed to load dataset: %v", err)
		return err
	}
	srv, err := a.newServer(table)
	if err != nil {
		return err
	}
	return srv.Run(ctx, a.cfg.Addr())
}

func (a *app) summaryCmd() *cobra.Command {
	var sel models.Selection
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print headline price statistics for the (filtered) dataset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := a.loadTable(cmd.Context())
			if err != nil {
				return err
			}
			svc := services.NewInsightService(a.logger)
			svc.Print(cmd.OutOrStdout(), svc.Generate(services.FilterTable(table, sel)))
			return nil
		},
	}
	filterFlags(cmd, &sel)
	return cmd
}

func (a *app) exportCmd() *cobra.Command {
	var sel models.Selection
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the (filtered) dataset as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := a.loadTable(cmd.Context())
			if err != nil {
				return err
			}
			view := services.FilterTable(table, sel)

			w := storage.NewCSVStreamWriter(cmd.OutOrStdout())
			if out != "" {
				if w, err = storage.NewCSVWriter(out); err != nil {
					return err
				}
			}
			if err := w.Write(view); err != nil {
				_ = w.Close()
				return err
			}
			if err := w.Close(); err != nil {
				return err
			}
			if out != "" {
				a.logger.Info("Exported %d records to %s", view.Len(), out)
			}
			return nil
		},
	}
	filterFlags(cmd, &sel)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func (a *app) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the CSV dataset into the PostgreSQL housing table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			table, err := storage.NewCSVSource(a.cfg.DatasetPath, a.logger).Load(ctx)
			if err != nil {
				return err
			}
			store, err := storage.NewPostgresStore(ctx, a.cfg.DSN(), storage.Retry(a.cfg, a.logger), a.logger)
			if err != nil {
				a.logger.Error("Failed to connect to PostgreSQL: %v", err)
				return err
			}
			defer store.Close()
			return store.WriteContext(ctx, table.All())
		},
	}
}

func (a *app) snapshotCmd() *cobra.Command {
	var base string
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Save a screenshot of every page in both themes",
		Long: `Drives headless Chrome over each dashboard route in the dark and light
themes and writes one PNG per page to SNAPSHOT_DIR. Without --url a
dashboard is started on a loopback port for the duration of the run.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signalContext(cmd.Context())
			defer stop()

			if base == "" {
				url, shutdown, err := a.serveLoopback(ctx)
				if err != nil {
					return err
				}
				defer shutdown()
				base = url
			}

			results, err := snapshot.New(a.cfg, a.logger).Capture(ctx, base, snapshot.Targets())
			if err != nil {
				return err
			}
			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
				}
			}
			a.logger.Info("Snapshots: %d written, %d failed, in %s", len(results)-failed, failed, a.cfg.SnapshotDir)
			if failed > 0 {
				return fmt.Errorf("%d snapshots failed", failed)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&base, "url", "", "base URL of a running dashboard")
	return cmd
}

// serveLoopback starts the dashboard on a free loopback port.
func (a *app) serveLoopback(ctx context.Context) (string, func(), error) {
	table, err := a.loadTable(ctx)
	if err != nil {
		return "", nil, err
	}
	srv, err := a.newServer(table)
	if err != nil {
		return "", nil, err
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, fmt.Errorf("listen: %w", err)
	}

	srvCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- srv.Serve(srvCtx, ln) }()

	shutdown := func() {
		cancel()
		if err := <-done; err != nil {
			a.logger.Warn("Loopback server: %v", err)
		}
	}
	return "http://" + ln.Addr().String(), shutdown, nil
}
