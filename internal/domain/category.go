package domain

// CategoryInfo is the static browse metadata shown for a category
type CategoryInfo struct {
	ID          Category  `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Examples    []string  `json:"examples"`
	RiskLevel   RiskLevel `json:"riskLevel"` // headline risk shown on the category card
}

// DefaultCategoryName is shown for category ids outside the closed set
const DefaultCategoryName = "Products"

var categoryInfos = map[Category]CategoryInfo{
	CategoryPersonalCare: {
		ID:          CategoryPersonalCare,
		Name:        "Personal Care Products",
		Description: "Soaps, shampoos, toothpaste, skincare products and daily hygiene essentials",
		Examples:    []string{"Face wash", "Shampoo", "Toothpaste", "Soap"},
		RiskLevel:   RiskMedium,
	},
	CategoryFoodBeverages: {
		ID:          CategoryFoodBeverages,
		Name:        "Food & Beverages",
		Description: "Packaged foods, drinks, snacks and processed food items",
		Examples:    []string{"Instant noodles", "Soft drinks", "Snacks", "Biscuits"},
		RiskLevel:   RiskHigh,
	},
	CategoryHousehold: {
		ID:          CategoryHousehold,
		Name:        "Household Products",
		Description: "Cleaning supplies, detergents, disinfectants and home maintenance products",
		Examples:    []string{"Detergent", "Floor cleaner", "Toilet cleaner", "Insecticide"},
		RiskLevel:   RiskHigh,
	},
	CategoryCosmetics: {
		ID:          CategoryCosmetics,
		Name:        "Cosmetics",
		Description: "Makeup, beauty creams, hair colors and personal grooming products",
		Examples:    []string{"Foundation", "Lipstick", "Hair color", "Face cream"},
		RiskLevel:   RiskMedium,
	},
}

// LookupCategory returns the metadata for c and whether c is known
func LookupCategory(c Category) (CategoryInfo, bool) {
	info, ok := categoryInfos[c]
	if !ok {
		return CategoryInfo{ID: c, Name: DefaultCategoryName}, false
	}
	info.Examples = append([]string(nil), info.Examples...)
	return info, true
}
