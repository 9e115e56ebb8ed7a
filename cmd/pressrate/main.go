package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/pressratelabs/pressrate/internal/apikey"
	"github.com/pressratelabs/pressrate/internal/authz"
	"github.com/pressratelabs/pressrate/internal/catalog"
	"github.com/pressratelabs/pressrate/internal/clock"
	"github.com/pressratelabs/pressrate/internal/config"
	"github.com/pressratelabs/pressrate/internal/importer"
	"github.com/pressratelabs/pressrate/internal/migration"
	"github.com/pressratelabs/pressrate/internal/observability"
	"github.com/pressratelabs/pressrate/internal/pricing"
	"github.com/pressratelabs/pressrate/internal/rate"
	"github.com/pressratelabs/pressrate/internal/ratecard"
	"github.com/pressratelabs/pressrate/internal/ratelimit"
	"github.com/pressratelabs/pressrate/internal/redis"
	"github.com/pressratelabs/pressrate/internal/server"
	"github.com/pressratelabs/pressrate/internal/tax"
	"github.com/pressratelabs/pressrate/pkg/db"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "pressrate",
		Short:   "Advertising rate engine CLI",
		Version: readVersionFromEnv(),
	}
	root.AddCommand(newMigrateCmd(), newServeCmd(), newAllCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations and seed statutory tax rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate()
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the rate engine API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			runServe()
			return nil
		},
	}
}

func newAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run migrations, then start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runMigrate(); err != nil {
				return err
			}
			runServe()
			return nil
		},
	}
}

func runMigrate() error {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		migration.Module,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("migrate failed: %w", err)
	}
	_ = app.Stop(context.Background())
	return nil
}

func runServe() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,
		redis.Module,
		ratelimit.Module,
		authz.Module,
		apikey.Module,
		catalog.Module,
		rate.Module,
		tax.Module,
		pricing.Module,
		importer.Module,
		ratecard.Module,
		server.Module,
	)
	app.Run()
}

func registerSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

func readVersionFromEnv() string {
	if v := strings.TrimSpace(os.Getenv("APP_VERSION")); v != "" {
		return v
	}
	return "dev"
}
