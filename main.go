package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"housing-dashboard/config"
	"housing-dashboard/models"
	"housing-dashboard/storage"
	"housing-dashboard/utils"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries what every command needs once flags and environment are read.
type app struct {
	cfg    *config.Config
	logger *utils.Logger

	port    int
	debug   bool
	dataset string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "housing-dashboard",
		Short: "Interactive housing price analytics dashboard",
		Long: `Serves a browser dashboard over a housing sale dataset: price trends,
a market overview, correlation insights and the raw data table, each
filterable by zoning and building type.

Run without a subcommand to start the web server.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.cfg = config.Load()
			flags := cmd.Flags()
			if flags.Changed("port") {
				a.cfg.Port = a.port
			}
			if flags.Changed("debug") {
				a.cfg.Debug = a.debug
			}
			if flags.Changed("dataset") {
				a.cfg.DatasetSource = config.SourceCSV
				a.cfg.DatasetPath = a.dataset
			}
			a.logger = utils.NewLogger(a.cfg.Debug)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				a.logger.Sync()
			}
		},
		RunE: a.runServe,
	}

	pf := root.PersistentFlags()
	pf.IntVar(&a.port, "port", 8060, "HTTP port (overrides PORT)")
	pf.BoolVar(&a.debug, "debug", false, "debug logging (overrides DEBUG)")
	pf.StringVar(&a.dataset, "dataset", "", "read the dataset from this CSV file")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the dashboard web server",
			RunE:  a.runServe,
		},
		a.summaryCmd(),
		a.exportCmd(),
		a.seedCmd(),
		a.snapshotCmd(),
	)
	return root
}

// loadTable reads the configured dataset once. Any failure is fatal for the
// calling command.
func (a *app) loadTable(ctx context.Context) (*models.Table, error) {
	src, err := storage.Open(ctx, a.cfg, a.logger)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	table, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return table, nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// filterFlags registers --zoning and --bldgtype on cmd.
func filterFlags(cmd *cobra.Command, sel *models.Selection) {
	cmd.Flags().StringVar(&sel.Zoning, "zoning", "", "only records with this MSZoning")
	cmd.Flags().StringVar(&sel.BldgType, "bldgtype", "", "only records with this BldgType")
}
