package main

import (
	"fmt"
	"os"

	"marketplace/internal/cli"
	"marketplace/internal/config"
	"marketplace/internal/logger"
	"marketplace/internal/persist"
	"marketplace/internal/store"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "market",
	Short: "market — flat-file marketplace console",
	Long:  "Interactive marketplace over four pipe-delimited data files: sellers, customers, products and staged carts.",
	RunE:  runInteractive,
}

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Print the catalog ranked by average rating",
	RunE:  runTop,
}

func init() {
	rootCmd.AddCommand(topCmd)
}

// boot loads config, builds the logger and reads the data files into a
// fresh store, logging any records the loader had to drop.
func boot() (*store.Store, *persist.FileStore, *zap.Logger, error) {
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	files := persist.NewFileStore(cfg.Storage, log)
	st, rejected, err := files.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load data: %w", err)
	}
	for _, r := range rejected {
		log.Warn("dropped unreconcilable record",
			zap.String("file", r.File),
			zap.Int("line", r.Line),
			zap.String("raw", r.Raw),
			zap.String("reason", r.Reason),
		)
	}

	return st, files, log, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	st, files, log, err := boot()
	if err != nil {
		return err
	}
	defer log.Sync()

	session := cli.NewSession(st, files, os.Stdin, cmd.OutOrStdout(), log)
	return session.Run()
}

func runTop(cmd *cobra.Command, args []string) error {
	st, _, log, err := boot()
	if err != nil {
		return err
	}
	defer log.Sync()

	cli.PrintProducts(cmd.OutOrStdout(), cli.TopRatedView(st))
	return nil
}
