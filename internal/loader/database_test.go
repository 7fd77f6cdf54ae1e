package loader

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/chemalert/chemalert/internal/domain"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "catalog.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))
	return db
}

func TestSeedAndLoadDatabase(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	seed, err := SeedProducts()
	require.NoError(t, err)

	n, err := SeedRepository(ctx, repo, seed)
	require.NoError(t, err)
	assert.Equal(t, len(seed), n)

	// a second seed is a no-op
	n, err = SeedRepository(ctx, repo, seed)
	require.NoError(t, err)
	assert.Zero(t, n)

	c, err := LoadDatabase(db)
	require.NoError(t, err)
	require.Equal(t, len(seed), c.Len())

	all := c.ListAll()
	for i := range seed {
		assert.Equal(t, seed[i].ID, all[i].ID, "catalog order kept")
		assert.Equal(t, seed[i].HarmfulChemicals, all[i].HarmfulChemicals, "chemical order kept")
		assert.Equal(t, seed[i].Category, all[i].Category)
	}
}

type fakeRepo struct {
	products  []domain.CatalogProduct
	chemicals []domain.CatalogProductChemical
	err       error
}

func (f *fakeRepo) ListProducts(context.Context) ([]domain.CatalogProduct, error) {
	return f.products, f.err
}

func (f *fakeRepo) ListChemicals(context.Context) ([]domain.CatalogProductChemical, error) {
	return f.chemicals, nil
}

func (f *fakeRepo) Count(context.Context) (int64, error) {
	return int64(len(f.products)), f.err
}

func (f *fakeRepo) Insert(context.Context, domain.Product, int) error {
	return f.err
}

func TestLoadRepositoryIgnoresOrphanChemicals(t *testing.T) {
	repo := &fakeRepo{
		products: []domain.CatalogProduct{
			{ID: "a", Name: "A", Brand: "B", Category: "household", RiskLevel: "Low"},
		},
		chemicals: []domain.CatalogProductChemical{
			{ProductID: "a", Position: 0, Name: "Ammonia"},
			{ProductID: "ghost", Position: 0, Name: "Lead"},
		},
	}
	c, err := LoadRepository(context.Background(), repo)
	require.NoError(t, err)

	p, err := c.GetByID("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ammonia"}, p.HarmfulChemicals)
}

func TestLoadRepositoryErrors(t *testing.T) {
	repo := &fakeRepo{err: errors.New("connection refused")}
	_, err := LoadRepository(context.Background(), repo)
	assert.ErrorContains(t, err, "connection refused")

	_, err = SeedRepository(context.Background(), repo, nil)
	assert.Error(t, err)
}

func TestLoadRepositoryRejectsInvalidRows(t *testing.T) {
	repo := &fakeRepo{products: []domain.CatalogProduct{
		{ID: "a", Name: "A", Brand: "B", Category: "garden", RiskLevel: "Low"},
	}}
	_, err := LoadRepository(context.Background(), repo)
	assert.Error(t, err)
}
