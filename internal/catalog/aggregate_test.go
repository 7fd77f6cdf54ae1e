package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chemalert/chemalert/internal/domain"
)

func TestAggregate(t *testing.T) {
	c := fixture(t)
	stats := c.Aggregate()

	assert.Equal(t, 7, stats.Total)
	assert.Equal(t, map[domain.Category]int{
		domain.CategoryPersonalCare:  2,
		domain.CategoryFoodBeverages: 2,
		domain.CategoryHousehold:     1,
		domain.CategoryCosmetics:     2,
	}, stats.ByCategory)
	assert.Equal(t, map[domain.RiskLevel]int{
		domain.RiskLow:    2,
		domain.RiskMedium: 2,
		domain.RiskHigh:   3,
	}, stats.ByRisk)
	assert.Equal(t, 10, stats.DistinctChemicals)
	assert.Equal(t, 6, stats.DistinctBrands)
}

func TestByCategorySumsToCatalogLength(t *testing.T) {
	c := fixture(t)
	sum := 0
	for _, n := range c.Aggregate().ByCategory {
		sum += n
	}
	assert.Equal(t, c.Len(), sum)
}

func TestCountsIncludeEmptyBuckets(t *testing.T) {
	products := []domain.Product{{ID: "a", Name: "A", Brand: "B", Category: domain.CategoryHousehold, RiskLevel: domain.RiskLow}}
	byCat := CountByCategory(products)
	assert.Len(t, byCat, len(domain.Categories))
	assert.Equal(t, 0, byCat[domain.CategoryCosmetics])

	byRisk := CountByRisk(products)
	assert.Len(t, byRisk, len(domain.RiskLevels))
	assert.Equal(t, 0, byRisk[domain.RiskHigh])
}

func TestDistinctSetsCompareExactly(t *testing.T) {
	products := []domain.Product{
		{Brand: "Lakme", HarmfulChemicals: []string{"Lead", "Parabens"}},
		{Brand: "Lakme", HarmfulChemicals: []string{"Parabens", "lead"}},
	}
	assert.Equal(t, []string{"Lead", "Parabens", "lead"}, SortedKeys(DistinctChemicals(products)))
	assert.Equal(t, []string{"Lakme"}, SortedKeys(DistinctBrands(products)))
}

func TestCategorySummaries(t *testing.T) {
	c := fixture(t)
	summaries := c.CategorySummaries()
	assert.Len(t, summaries, len(domain.Categories))

	byID := map[domain.Category]CategorySummary{}
	for _, s := range summaries {
		byID[s.ID] = s
	}
	assert.Equal(t, domain.CategoryPersonalCare, summaries[0].ID)
	assert.Equal(t, "Personal Care Products", byID[domain.CategoryPersonalCare].Name)
	assert.Equal(t, 2, byID[domain.CategoryCosmetics].ProductCount)
	assert.Equal(t, 1, byID[domain.CategoryCosmetics].HighRiskCount)
	assert.Equal(t, 1, byID[domain.CategoryHousehold].HighRiskCount)
	assert.Equal(t, 0, byID[domain.CategoryPersonalCare].HighRiskCount)
}
