// Package loader builds the catalog from one of its seed sources. Loading
// happens once at startup; nothing here writes back to a catalog.
package loader

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/chemalert/chemalert/config"
	"github.com/chemalert/chemalert/internal/catalog"
	"github.com/chemalert/chemalert/internal/domain"
)

//go:embed seed/products.yaml
var seedYAML []byte

const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourceDatabase = "database"
)

// SeedProducts decodes the catalog compiled into the binary
func SeedProducts() ([]domain.Product, error) {
	products, err := DecodeYAML(seedYAML)
	if err != nil {
		return nil, errors.Wrap(err, "decode embedded seed")
	}
	return products, nil
}

// LoadEmbedded builds a catalog from the embedded seed
func LoadEmbedded() (*catalog.Catalog, error) {
	products, err := SeedProducts()
	if err != nil {
		return nil, err
	}
	return build(products, SourceEmbedded)
}

// LoadFile builds a catalog from a YAML, JSON or CSV file chosen by extension
func LoadFile(path string) (*catalog.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read catalog file %s", path)
	}
	var products []domain.Product
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		products, err = DecodeYAML(data)
	case ".json":
		products, err = DecodeJSON(data)
	case ".csv":
		products, err = DecodeCSV(data)
	default:
		return nil, errors.Errorf("unsupported catalog file extension %q", ext)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decode catalog file %s", path)
	}
	return build(products, path)
}

// Load dispatches on cfg.Catalog.Source. db is only consulted for the database source.
func Load(cfg *config.AppConfig, db *gorm.DB) (*catalog.Catalog, error) {
	switch cfg.Catalog.Source {
	case "", SourceEmbedded:
		return LoadEmbedded()
	case SourceFile:
		return LoadFile(cfg.Catalog.Path)
	case SourceDatabase:
		if db == nil {
			return nil, errors.New("catalog source is database but no database is configured")
		}
		return LoadDatabase(db)
	}
	return nil, errors.Errorf("unknown catalog source %q", cfg.Catalog.Source)
}

func build(products []domain.Product, origin string) (*catalog.Catalog, error) {
	c, err := catalog.New(products)
	if err != nil {
		return nil, errors.Wrapf(err, "build catalog from %s", origin)
	}
	zap.L().Info("catalog loaded",
		zap.String("namespace", "catalog"),
		zap.String("source", origin),
		zap.Int("products", c.Len()))
	return c, nil
}
