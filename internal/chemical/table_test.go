package chemical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chemalert/chemalert/internal/domain"
)

func TestDescribeMercury(t *testing.T) {
	assert.Equal(t,
		"Toxic metal that can damage the nervous system and kidneys. Sometimes found in skin lightening creams.",
		Describe("Mercury"))
	assert.Equal(t, domain.RiskHigh, RiskTier("Mercury"))
	assert.Equal(t, "Heavy Metal", Classify("Mercury"))
	assert.Equal(t, []string{"Neurotoxin", "Heavy Metal"}, Tags("Mercury"))
}

func TestUnknownChemicalFallbacks(t *testing.T) {
	for _, name := range []string{"", "Unobtainium", "Sodium Laurel Sulfate", "Lead Acetate"} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, FallbackDescription, Describe(name))
			assert.Equal(t, FallbackCategory, Classify(name))
			assert.Equal(t, []string{FallbackTag}, Tags(name))
			assert.Equal(t, domain.RiskLow, RiskTier(name))
			assert.False(t, IsKnown(name))
		})
	}
}

func TestLookupIgnoresCaseAndSpacing(t *testing.T) {
	canonical := Lookup("Sodium Lauryl Sulfate")
	require.True(t, canonical.Known)

	for _, variant := range []string{"sodium lauryl sulfate", "SODIUM LAURYL SULFATE", "  Sodium   Lauryl Sulfate "} {
		got := Lookup(variant)
		assert.Equal(t, canonical, got, variant)
	}
	assert.Equal(t, domain.RiskHigh, RiskTier("mercury"))
	assert.Equal(t, domain.RiskMedium, RiskTier("msg"))
}

func TestRiskTiers(t *testing.T) {
	for _, n := range highRisk {
		assert.Equal(t, domain.RiskHigh, RiskTier(n), n)
	}
	for _, n := range mediumRisk {
		assert.Equal(t, domain.RiskMedium, RiskTier(n), n)
	}
	// in the description table but in neither risk set
	assert.Equal(t, domain.RiskLow, RiskTier("Sodium Benzoate"))
	assert.Equal(t, domain.RiskLow, RiskTier("Propylene Glycol"))
	assert.Equal(t, "Medium Risk", RiskLabel(RiskTier("Parabens")))
}

func TestTagsReturnsCopy(t *testing.T) {
	tags := Tags("Lead")
	tags[0] = "changed"
	assert.Equal(t, "Neurotoxin", Tags("Lead")[0])

	fallback := Tags("nope")
	fallback[0] = "changed"
	assert.Equal(t, FallbackTag, Tags("nope")[0])
}

func TestKnownIsSortedAndComplete(t *testing.T) {
	known := Known()
	assert.Len(t, known, len(entries))
	assert.IsIncreasing(t, known)
	for _, n := range known {
		assert.True(t, IsKnown(n), n)
	}
}

func TestAnnotateKeepsOrderAndLabelSpelling(t *testing.T) {
	p := domain.Product{HarmfulChemicals: []string{"mercury", "Parabens", "Mystery Dye"}}
	infos := Annotate(p)
	require.Len(t, infos, 3)

	assert.Equal(t, "mercury", infos[0].Name)
	assert.Equal(t, domain.RiskHigh, infos[0].Risk)
	assert.True(t, infos[0].Known)

	assert.Equal(t, "Preservative", infos[1].Category)

	assert.Equal(t, "Mystery Dye", infos[2].Name)
	assert.False(t, infos[2].Known)
	assert.Equal(t, FallbackDescription, infos[2].Description)
}

func TestLookupIsIdempotent(t *testing.T) {
	assert.Equal(t, Lookup("Triclosan"), Lookup("Triclosan"))
}
