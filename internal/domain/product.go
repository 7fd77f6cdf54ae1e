package domain

import (
	"fmt"
	"strings"
)

// Category is the closed set of product groupings used for browsing
type Category string

const (
	CategoryPersonalCare  Category = "personal-care"
	CategoryFoodBeverages Category = "food-beverages"
	CategoryHousehold     Category = "household"
	CategoryCosmetics     Category = "cosmetics"
)

// Categories lists every category in display order
var Categories = []Category{
	CategoryPersonalCare,
	CategoryFoodBeverages,
	CategoryHousehold,
	CategoryCosmetics,
}

// Valid reports whether c is a member of the closed category set
func (c Category) Valid() bool {
	switch c {
	case CategoryPersonalCare, CategoryFoodBeverages, CategoryHousehold, CategoryCosmetics:
		return true
	}
	return false
}

// ParseCategory accepts a category id, case-insensitively
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// RiskLevel is the ordered per-product (or per-chemical) risk tier
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// RiskLevels lists every risk level from lowest to highest
var RiskLevels = []RiskLevel{RiskLow, RiskMedium, RiskHigh}

// Valid reports whether r is a member of the closed risk set
func (r RiskLevel) Valid() bool {
	return r.Rank() > 0
}

// Rank orders risk levels: Low=1, Medium=2, High=3, anything else 0
func (r RiskLevel) Rank() int {
	switch r {
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	}
	return 0
}

// ParseRiskLevel accepts "high", "HIGH", "High" and so on
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return RiskLow, nil
	case "medium":
		return RiskMedium, nil
	case "high":
		return RiskHigh, nil
	}
	return "", fmt.Errorf("unknown risk level %q", s)
}

// PlaceholderImage is rendered when a product carries no image reference
const PlaceholderImage = "/placeholder.svg"

// Product is a catalog entry. Products are never mutated after the catalog is built.
type Product struct {
	ID               string    `json:"id" yaml:"id"`
	Name             string    `json:"name" yaml:"name"`
	Brand            string    `json:"brand" yaml:"brand"`
	Category         Category  `json:"category" yaml:"category"`
	RiskLevel        RiskLevel `json:"riskLevel" yaml:"riskLevel"`
	HarmfulChemicals []string  `json:"harmfulChemicals" yaml:"harmfulChemicals"`
	Description      string    `json:"description" yaml:"description"`
	Image            string    `json:"image,omitempty" yaml:"image,omitempty"`
	Price            float64   `json:"price,omitempty" yaml:"price,omitempty"`
	Rating           float64   `json:"rating,omitempty" yaml:"rating,omitempty"`
	Reviews          int       `json:"reviews,omitempty" yaml:"reviews,omitempty"`
}

// ImageOrPlaceholder returns the image reference or the placeholder sentinel
func (p Product) ImageOrPlaceholder() string {
	if strings.TrimSpace(p.Image) == "" {
		return PlaceholderImage
	}
	return p.Image
}

// TopChemicals returns at most n chemicals and how many were left out,
// as used by "+N more" badges.
func (p Product) TopChemicals(n int) ([]string, int) {
	if n < 0 {
		n = 0
	}
	if len(p.HarmfulChemicals) <= n {
		return append([]string(nil), p.HarmfulChemicals...), 0
	}
	return append([]string(nil), p.HarmfulChemicals[:n]...), len(p.HarmfulChemicals) - n
}

// Clone returns a deep copy so callers cannot alias catalog storage
func (p Product) Clone() Product {
	p.HarmfulChemicals = append([]string(nil), p.HarmfulChemicals...)
	return p
}

// Validate checks the invariants every catalog product must satisfy
func (p Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("product id is empty")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("product %s: name is empty", p.ID)
	}
	if strings.TrimSpace(p.Brand) == "" {
		return fmt.Errorf("product %s: brand is empty", p.ID)
	}
	if !p.Category.Valid() {
		return fmt.Errorf("product %s: invalid category %q", p.ID, p.Category)
	}
	if !p.RiskLevel.Valid() {
		return fmt.Errorf("product %s: invalid risk level %q", p.ID, p.RiskLevel)
	}
	return nil
}
