// Package chemical holds the static knowledge table used to annotate the
// chemicals listed on a product. Every lookup is total: unknown names resolve
// to generic defaults instead of failing.
package chemical

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/chemalert/chemalert/internal/domain"
)

const (
	// FallbackDescription is returned for chemicals outside the table
	FallbackDescription = "Potentially harmful chemical compound that may cause adverse health effects."
	// FallbackCategory is returned for chemicals outside the table
	FallbackCategory = "Chemical"
	// FallbackTag is the single tag returned for chemicals outside the table
	FallbackTag = "Harmful Chemical"
)

// Info is the derived annotation for one chemical name
type Info struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Risk        domain.RiskLevel `json:"risk"`
	Tags        []string         `json:"tags"`
	Known       bool             `json:"known"`
}

type entry struct {
	name        string
	description string
	category    string
	tags        []string
}

var entries = []entry{
	{"Sodium Lauryl Sulfate", "A harsh detergent and surfactant that can cause skin and eye irritation, and may disrupt skin barrier function. Often used to create lather in personal care products.", "Detergent", []string{"Skin Irritant", "Foaming Agent"}},
	{"Parabens", "Preservatives (including methylparaben, propylparaben, butylparaben) that can mimic estrogen and may disrupt hormonal balance in the body. Used to extend product shelf life.", "Preservative", []string{"Endocrine Disruptor", "Preservative"}},
	{"Triclosan", "An antimicrobial agent linked to antibiotic resistance and potential hormonal disruption. Commonly found in antibacterial soaps and toothpastes.", "Antimicrobial", []string{"Antibacterial", "Environmental Toxin"}},
	{"Artificial Colors", "Synthetic dyes (like FD&C Blue 1, Red 40) that may cause allergic reactions and hyperactivity in children. Used to make products visually appealing.", "Colorant", []string{"Allergen", "Petroleum-derived"}},
	{"MSG", "Flavor enhancer (monosodium glutamate) that can cause headaches, nausea, and other symptoms in sensitive individuals. Common in processed foods.", "Flavor Enhancer", []string{"Neurotoxin", "Flavor Enhancer"}},
	{"Trans Fats", "Artificial fats that increase bad cholesterol and risk of heart disease. Often found in processed and fried foods.", "Fat", []string{"Heart Disease", "Processed Food"}},
	{"Sodium Benzoate", "Preservative that can form benzene (a carcinogen) when combined with vitamin C. Used to prevent bacterial growth in acidic foods and beverages.", "Preservative", []string{"Potential Carcinogen", "Preservative"}},
	{"Phosphates", "Can cause skin irritation and contribute to environmental water pollution. Found in many cleaning products and detergents.", "Detergent", []string{"Water Pollutant", "Cleaning Agent"}},
	{"Chlorine Bleach", "Strong chemical that can cause respiratory irritation and skin burns. Common in household cleaners and disinfectants.", "Disinfectant", []string{"Respiratory Irritant", "Corrosive"}},
	{"Ammonia", "Toxic gas that can cause severe respiratory and skin irritation. Used in many household cleaners.", "Cleaner", []string{"Respiratory Irritant", "Corrosive"}},
	{"Formaldehyde", "Known carcinogen that can cause allergic reactions and respiratory issues. Found in some cosmetics and household products.", "Preservative", []string{"Carcinogen", "Preservative"}},
	{"Lead", "Heavy metal that can cause neurological damage, especially in children. May be found in some cosmetics and older products.", "Heavy Metal", []string{"Neurotoxin", "Heavy Metal"}},
	{"Mercury", "Toxic metal that can damage the nervous system and kidneys. Sometimes found in skin lightening creams.", "Heavy Metal", []string{"Neurotoxin", "Heavy Metal"}},
	{"Phthalates", "Endocrine disruptors that may affect reproductive development. Often used in plastics and fragrances.", "Plasticizer", []string{"Endocrine Disruptor", "Fragrance"}},
	{"BHA", "Butylated hydroxyanisole is a preservative that may cause endocrine disruption and is potentially carcinogenic.", "Preservative", []string{"Potential Carcinogen", "Antioxidant"}},
	{"BHT", "Butylated hydroxytoluene is a preservative with potential endocrine disrupting properties.", "Preservative", []string{"Potential Carcinogen", "Antioxidant"}},
	{"Propylene Glycol", "A penetration enhancer that may cause skin irritation in some individuals.", "Humectant", []string{"Penetration Enhancer", "Humectant"}},
}

var (
	highRisk   = []string{"Formaldehyde", "Lead", "Mercury", "Trans Fats", "Phthalates"}
	mediumRisk = []string{"Parabens", "Triclosan", "MSG", "Chlorine Bleach", "Ammonia", "BHA", "BHT"}
)

var (
	byKey   map[string]entry
	tierMap map[string]domain.RiskLevel
)

func init() {
	byKey = make(map[string]entry, len(entries))
	for _, e := range entries {
		byKey[Key(e.name)] = e
	}
	tierMap = make(map[string]domain.RiskLevel, len(highRisk)+len(mediumRisk))
	for _, n := range mediumRisk {
		tierMap[Key(n)] = domain.RiskMedium
	}
	for _, n := range highRisk {
		tierMap[Key(n)] = domain.RiskHigh
	}
}

// Key normalises a chemical name for table lookups: surrounding space is
// dropped, inner runs of space collapse to one and case is folded.
func Key(name string) string {
	return cases.Fold().String(strings.Join(strings.Fields(name), " "))
}

// Describe returns the description for name, or FallbackDescription
func Describe(name string) string {
	if e, ok := byKey[Key(name)]; ok {
		return e.description
	}
	return FallbackDescription
}

// Classify returns the category label for name, or FallbackCategory
func Classify(name string) string {
	if e, ok := byKey[Key(name)]; ok {
		return e.category
	}
	return FallbackCategory
}

// Tags returns the tag list for name, or a single FallbackTag. The result is a fresh slice.
func Tags(name string) []string {
	if e, ok := byKey[Key(name)]; ok {
		return append([]string(nil), e.tags...)
	}
	return []string{FallbackTag}
}

// RiskTier classifies a single chemical. It is independent of any product risk level.
func RiskTier(name string) domain.RiskLevel {
	if tier, ok := tierMap[Key(name)]; ok {
		return tier
	}
	return domain.RiskLow
}

// RiskLabel renders a tier the way detail views badge it, e.g. "High Risk"
func RiskLabel(level domain.RiskLevel) string {
	return string(level) + " Risk"
}

// IsKnown reports whether name resolves to a table entry
func IsKnown(name string) bool {
	_, ok := byKey[Key(name)]
	return ok
}

// Canonical returns the table spelling of name when known, else name trimmed
func Canonical(name string) string {
	if e, ok := byKey[Key(name)]; ok {
		return e.name
	}
	return strings.TrimSpace(name)
}

// Lookup gathers every annotation for name
func Lookup(name string) Info {
	return Info{
		Name:        Canonical(name),
		Description: Describe(name),
		Category:    Classify(name),
		Risk:        RiskTier(name),
		Tags:        Tags(name),
		Known:       IsKnown(name),
	}
}

// Known lists the canonical names in the table, sorted
func Known() []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.name)
	}
	sort.Strings(names)
	return names
}

// Annotate looks up every chemical of p in product order
func Annotate(p domain.Product) []Info {
	infos := make([]Info, 0, len(p.HarmfulChemicals))
	for _, name := range p.HarmfulChemicals {
		info := Lookup(name)
		// keep the spelling printed on the product label
		info.Name = name
		infos = append(infos, info)
	}
	return infos
}
