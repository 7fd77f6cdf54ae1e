package loader

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/chemalert/chemalert/internal/catalog"
	"github.com/chemalert/chemalert/internal/domain"
)

// ProductRepository reads catalog rows from SQL storage
type ProductRepository interface {
	// ListProducts returns every product row in position order
	ListProducts(ctx context.Context) ([]domain.CatalogProduct, error)

	// ListChemicals returns every chemical row ordered by product and position
	ListChemicals(ctx context.Context) ([]domain.CatalogProductChemical, error)

	// Count returns the number of product rows
	Count(ctx context.Context) (int64, error)

	// Insert stores one product with its chemicals
	Insert(ctx context.Context, p domain.Product, position int) error
}

// GormProductRepository is the GORM implementation of ProductRepository
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM-based repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) ListProducts(ctx context.Context) ([]domain.CatalogProduct, error) {
	var rows []domain.CatalogProduct
	err := r.db.WithContext(ctx).
		Order("position ASC").
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *GormProductRepository) ListChemicals(ctx context.Context) ([]domain.CatalogProductChemical, error) {
	var rows []domain.CatalogProductChemical
	err := r.db.WithContext(ctx).
		Order("product_id ASC").
		Order("position ASC").
		Find(&rows).Error
	return rows, err
}

func (r *GormProductRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.CatalogProduct{}).Count(&total).Error
	return total, err
}

func (r *GormProductRepository) Insert(ctx context.Context, p domain.Product, position int) error {
	row, chems := p.ToRows(position)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		if len(chems) == 0 {
			return nil
		}
		return tx.Create(&chems).Error
	})
}

// LoadDatabase builds a catalog from the catalog_product tables
func LoadDatabase(db *gorm.DB) (*catalog.Catalog, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return LoadRepository(ctx, NewGormProductRepository(db))
}

// LoadRepository builds a catalog from any ProductRepository
func LoadRepository(ctx context.Context, repo ProductRepository) (*catalog.Catalog, error) {
	rows, err := repo.ListProducts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "query catalog products")
	}
	chems, err := repo.ListChemicals(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "query catalog chemicals")
	}

	byProduct := make(map[string][]domain.CatalogProductChemical, len(rows))
	for _, c := range chems {
		byProduct[c.ProductID] = append(byProduct[c.ProductID], c)
	}

	products := make([]domain.Product, 0, len(rows))
	for _, r := range rows {
		products = append(products, r.ToProduct(byProduct[r.ID]))
		delete(byProduct, r.ID)
	}
	for id, orphans := range byProduct {
		zap.L().Warn("chemical rows reference unknown product",
			zap.String("namespace", "catalog"),
			zap.String("product_id", id),
			zap.Int("rows", len(orphans)))
	}
	return build(products, SourceDatabase)
}

// SeedRepository copies products into an empty repository, keeping their order.
// It returns the number of products inserted; a non-empty repository is left alone.
func SeedRepository(ctx context.Context, repo ProductRepository, products []domain.Product) (int, error) {
	total, err := repo.Count(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "count catalog products")
	}
	if total > 0 {
		return 0, nil
	}
	for i, p := range products {
		if err := repo.Insert(ctx, p, i); err != nil {
			return i, errors.Wrapf(err, "insert product %s", p.ID)
		}
		zap.L().Info("initialized catalog product", zap.String("namespace", "catalog"), zap.String("id", p.ID))
	}
	return len(products), nil
}
