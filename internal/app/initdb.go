package app

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/chemalert/chemalert/internal/loader"
)

// OpenDB connects the configured database without loading anything from it.
// Used by the initdb command.
func (a *Application) OpenDB() error {
	if a.gormDB != nil {
		return nil
	}
	if a.appConfig.Database.Type != "postgres" {
		if err := os.MkdirAll(a.appConfig.GetDataDir(), 0o755); err != nil {
			zap.L().Warn("create data dir failed", zap.Error(err))
		}
	}
	db, err := getDatabase(a.appConfig.Database, a.appConfig.System.Workdir)
	if err != nil {
		return err
	}
	a.gormDB = db
	return nil
}

// InitDb creates the catalog tables and seeds them from the embedded product
// list. Tables that already hold products are left untouched.
func (a *Application) InitDb() (int, error) {
	if err := a.MigrateDB(false); err != nil {
		return 0, errors.Wrap(err, "migrate")
	}
	return a.checkProducts()
}

// checkProducts seeds the catalog tables with the default products
func (a *Application) checkProducts() (int, error) {
	products, err := loader.SeedProducts()
	if err != nil {
		return 0, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := loader.SeedRepository(ctx, loader.NewGormProductRepository(a.gormDB), products)
	if err != nil {
		zap.L().Error("failed to seed default products", zap.Error(err))
		return n, err
	}
	if n == 0 {
		zap.L().Info("catalog tables already populated, skip seeding")
	} else {
		zap.L().Info("initialized default products", zap.Int("count", n))
	}
	return n, nil
}
