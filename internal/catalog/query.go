package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/chemalert/chemalert/internal/chemical"
	"github.com/chemalert/chemalert/internal/domain"
)

// Filter combines the optional query predicates. Zero-valued fields are inactive;
// active fields are intersected.
type Filter struct {
	Query    string
	Category domain.Category
	Risk     domain.RiskLevel
}

// Active reports whether any predicate is set
func (f Filter) Active() bool {
	return f.Query != "" || f.Category != "" || f.Risk != ""
}

func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// matcher returns the search predicate for query. The empty query matches
// every product because every string contains the empty string.
func matcher(query string) func(domain.Product) bool {
	term := lower(query)
	return func(p domain.Product) bool {
		if strings.Contains(lower(p.Name), term) || strings.Contains(lower(p.Brand), term) {
			return true
		}
		for _, chem := range p.HarmfulChemicals {
			if strings.Contains(lower(chem), term) {
				return true
			}
		}
		return false
	}
}

// Search returns the products whose name, brand or any chemical contains
// query, case-insensitively, in catalog order. Search("") returns the whole catalog.
func (c *Catalog) Search(query string) []domain.Product {
	return c.filter(matcher(query))
}

// FilterByCategory returns the products in category, in catalog order
func (c *Catalog) FilterByCategory(category domain.Category) []domain.Product {
	return c.filter(func(p domain.Product) bool { return p.Category == category })
}

// FilterByRisk returns the products at risk level, in catalog order
func (c *Catalog) FilterByRisk(level domain.RiskLevel) []domain.Product {
	return c.filter(func(p domain.Product) bool { return p.RiskLevel == level })
}

// WithChemical returns the products listing the chemical name exactly, compared
// by chemical lookup key rather than substring
func (c *Catalog) WithChemical(name string) []domain.Product {
	key := chemical.Key(name)
	return c.filter(func(p domain.Product) bool {
		for _, chem := range p.HarmfulChemicals {
			if chemical.Key(chem) == key {
				return true
			}
		}
		return false
	})
}

// Query applies every active predicate of f at once
func (c *Catalog) Query(f Filter) []domain.Product {
	if !f.Active() {
		return c.ListAll()
	}
	match := matcher(f.Query)
	return c.filter(func(p domain.Product) bool {
		if f.Category != "" && p.Category != f.Category {
			return false
		}
		if f.Risk != "" && p.RiskLevel != f.Risk {
			return false
		}
		return f.Query == "" || match(p)
	})
}

// SortKey names an ordering for product listings
type SortKey string

const (
	SortNone     SortKey = ""
	SortName     SortKey = "name"
	SortBrand    SortKey = "brand"
	SortCategory SortKey = "category"
	SortRiskHigh SortKey = "risk-high"
	SortRiskLow  SortKey = "risk-low"
)

// SortKeys lists every supported ordering
var SortKeys = []SortKey{SortName, SortBrand, SortCategory, SortRiskHigh, SortRiskLow}

// ParseSortKey validates s; the empty string keeps catalog order
func ParseSortKey(s string) (SortKey, bool) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if k == SortNone {
		return k, true
	}
	for _, known := range SortKeys {
		if k == known {
			return k, true
		}
	}
	return SortNone, false
}

// Sort returns a stably sorted copy of products. Ties keep their input order.
func Sort(products []domain.Product, key SortKey) []domain.Product {
	out := append([]domain.Product(nil), products...)
	var less func(a, b domain.Product) bool
	switch key {
	case SortName:
		less = func(a, b domain.Product) bool { return lower(a.Name) < lower(b.Name) }
	case SortBrand:
		less = func(a, b domain.Product) bool { return lower(a.Brand) < lower(b.Brand) }
	case SortCategory:
		less = func(a, b domain.Product) bool { return categoryRank(a.Category) < categoryRank(b.Category) }
	case SortRiskHigh:
		less = func(a, b domain.Product) bool { return a.RiskLevel.Rank() > b.RiskLevel.Rank() }
	case SortRiskLow:
		less = func(a, b domain.Product) bool { return a.RiskLevel.Rank() < b.RiskLevel.Rank() }
	default:
		return out
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func categoryRank(c domain.Category) int {
	for i, known := range domain.Categories {
		if c == known {
			return i
		}
	}
	return len(domain.Categories)
}

// Truncate caps a result set for display and reports whether anything was cut
func Truncate(products []domain.Product, limit int) ([]domain.Product, bool) {
	if limit <= 0 || len(products) <= limit {
		return products, false
	}
	return products[:limit], true
}
