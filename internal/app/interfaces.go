package app

import (
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/chemalert/chemalert/config"
	"github.com/chemalert/chemalert/internal/catalog"
	"github.com/chemalert/chemalert/internal/metrics"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// CatalogProvider provides the read-only product catalog
type CatalogProvider interface {
	Catalog() *catalog.Catalog
}

// MetricsProvider provides the prometheus collectors
type MetricsProvider interface {
	Metrics() *metrics.Registry
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// AppContext combines all provider interfaces for full application context
// Handlers should depend on specific providers or this combined interface
type AppContext interface {
	DBProvider
	ConfigProvider
	CatalogProvider
	MetricsProvider
	SchedulerProvider

	// MigrateDB creates the catalog tables
	MigrateDB(track bool) error
	// InitDb migrates and seeds the catalog tables from the embedded seed
	InitDb() (int, error)
	DropAll()
}
