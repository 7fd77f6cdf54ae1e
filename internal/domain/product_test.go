package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" Personal-Care ")
	require.NoError(t, err)
	assert.Equal(t, CategoryPersonalCare, c)

	_, err = ParseCategory("garden")
	assert.Error(t, err)
}

func TestParseRiskLevel(t *testing.T) {
	for in, want := range map[string]RiskLevel{"high": RiskHigh, "MEDIUM": RiskMedium, "Low": RiskLow} {
		got, err := ParseRiskLevel(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseRiskLevel("extreme")
	assert.Error(t, err)
}

func TestRiskRankOrdering(t *testing.T) {
	assert.Less(t, RiskLow.Rank(), RiskMedium.Rank())
	assert.Less(t, RiskMedium.Rank(), RiskHigh.Rank())
	assert.Equal(t, 0, RiskLevel("high").Rank())
	assert.False(t, RiskLevel("").Valid())
}

func TestTopChemicals(t *testing.T) {
	p := Product{HarmfulChemicals: []string{"A", "B", "C", "D"}}

	top, more := p.TopChemicals(2)
	assert.Equal(t, []string{"A", "B"}, top)
	assert.Equal(t, 2, more)

	top, more = p.TopChemicals(10)
	assert.Len(t, top, 4)
	assert.Zero(t, more)

	top[0] = "changed"
	assert.Equal(t, "A", p.HarmfulChemicals[0])
}

func TestImageOrPlaceholder(t *testing.T) {
	assert.Equal(t, PlaceholderImage, Product{}.ImageOrPlaceholder())
	assert.Equal(t, "/img/a.png", Product{Image: "/img/a.png"}.ImageOrPlaceholder())
}

func TestRowsRoundTripKeepsChemicalOrder(t *testing.T) {
	p := Product{
		ID: "p1", Name: "N", Brand: "B", Category: CategoryHousehold, RiskLevel: RiskHigh,
		HarmfulChemicals: []string{"Ammonia", "Phosphates"}, Price: 10, Reviews: 3,
	}
	row, chems := p.ToRows(4)
	assert.Equal(t, 4, row.Position)
	require.Len(t, chems, 2)
	assert.Equal(t, 1, chems[1].Position)
	assert.Equal(t, p, row.ToProduct(chems))
}

func TestLookupCategory(t *testing.T) {
	info, ok := LookupCategory(CategoryHousehold)
	assert.True(t, ok)
	assert.Equal(t, "Household Products", info.Name)

	info, ok = LookupCategory("garden")
	assert.False(t, ok)
	assert.Equal(t, DefaultCategoryName, info.Name)
}
