package catalog

import (
	"sort"

	"github.com/chemalert/chemalert/internal/domain"
)

// Stats is the set of catalog-wide aggregates shown on landing pages
type Stats struct {
	Total             int                      `json:"total"`
	ByCategory        map[domain.Category]int  `json:"byCategory"`
	ByRisk            map[domain.RiskLevel]int `json:"byRisk"`
	DistinctChemicals int                      `json:"distinctChemicals"`
	DistinctBrands    int                      `json:"distinctBrands"`
}

// CategorySummary pairs category metadata with its live counts
type CategorySummary struct {
	domain.CategoryInfo
	ProductCount  int `json:"productCount"`
	HighRiskCount int `json:"highRiskCount"`
}

// CountByCategory counts products per category. Every category is present, zero when empty.
func CountByCategory(products []domain.Product) map[domain.Category]int {
	counts := make(map[domain.Category]int, len(domain.Categories))
	for _, c := range domain.Categories {
		counts[c] = 0
	}
	for _, p := range products {
		counts[p.Category]++
	}
	return counts
}

// CountByRisk counts products per risk level. Every level is present, zero when empty.
func CountByRisk(products []domain.Product) map[domain.RiskLevel]int {
	counts := make(map[domain.RiskLevel]int, len(domain.RiskLevels))
	for _, r := range domain.RiskLevels {
		counts[r] = 0
	}
	for _, p := range products {
		counts[p.RiskLevel]++
	}
	return counts
}

// DistinctChemicals is the set of chemical names across products, compared exactly
func DistinctChemicals(products []domain.Product) map[string]struct{} {
	set := make(map[string]struct{})
	for _, p := range products {
		for _, c := range p.HarmfulChemicals {
			set[c] = struct{}{}
		}
	}
	return set
}

// DistinctBrands is the set of brand names across products, compared exactly
func DistinctBrands(products []domain.Product) map[string]struct{} {
	set := make(map[string]struct{})
	for _, p := range products {
		set[p.Brand] = struct{}{}
	}
	return set
}

// SortedKeys flattens a string set for display
func SortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Aggregate computes every catalog-wide count. Nothing is cached.
func (c *Catalog) Aggregate() Stats {
	return Stats{
		Total:             len(c.products),
		ByCategory:        CountByCategory(c.products),
		ByRisk:            CountByRisk(c.products),
		DistinctChemicals: len(DistinctChemicals(c.products)),
		DistinctBrands:    len(DistinctBrands(c.products)),
	}
}

// CategorySummaries returns one summary per category in display order
func (c *Catalog) CategorySummaries() []CategorySummary {
	out := make([]CategorySummary, 0, len(domain.Categories))
	for _, cat := range domain.Categories {
		info, _ := domain.LookupCategory(cat)
		s := CategorySummary{CategoryInfo: info}
		for _, p := range c.products {
			if p.Category != cat {
				continue
			}
			s.ProductCount++
			if p.RiskLevel == domain.RiskHigh {
				s.HighRiskCount++
			}
		}
		out = append(out, s)
	}
	return out
}
