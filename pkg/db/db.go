// Package db opens the gorm handle shared by every repository and wires the
// observability plugins (otel tracing, prometheus collectors) into it.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pressratelabs/pressrate/internal/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	gormprometheus "gorm.io/plugin/prometheus"
)

var Module = fx.Module("pkg.db",
	fx.Provide(Open),
	fx.Invoke(registerLifecycle),
)

type Params struct {
	fx.In

	Config *config.Config
	Log    *zap.Logger
}

func Open(p Params) (*gorm.DB, error) {
	dialector, err := dialectorFor(p.Config.Database.Driver, p.Config.Database.DSN)
	if err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := gdb.Use(otelgorm.NewPlugin()); err != nil {
		return nil, fmt.Errorf("install otelgorm plugin: %w", err)
	}
	if p.Config.Database.Driver != "sqlite" {
		if err := gdb.Use(gormprometheus.New(gormprometheus.Config{
			DBName:          p.Config.Database.Name,
			RefreshInterval: 15,
		})); err != nil {
			return nil, fmt.Errorf("install prometheus plugin: %w", err)
		}
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(p.Config.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(p.Config.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(p.Config.Database.ConnMaxLifetimeSeconds) * time.Second)

	p.Log.Named("pkg.db").Info("database opened", zap.String("driver", p.Config.Database.Driver))
	return gdb, nil
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "postgres", "":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// SQLDB exposes the raw handle for collaborators that bypass gorm (migrations).
func SQLDB(gdb *gorm.DB) (*sql.DB, error) {
	if gdb == nil {
		return nil, errors.New("gorm handle is required")
	}
	return gdb.DB()
}

func registerLifecycle(lc fx.Lifecycle, gdb *gorm.DB) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})
}
