package migration

import (
	pkgdb "github.com/pressratelabs/pressrate/pkg/db"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB) error {
		sqlDB, err := pkgdb.SQLDB(conn)
		if err != nil {
			return err
		}

		return RunMigrations(sqlDB)
	}),
)
