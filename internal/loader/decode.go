package loader

import (
	"bytes"
	"strings"

	"github.com/gocarina/gocsv"
	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/chemalert/chemalert/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// chemicalSeparator splits the chemicals column of CSV seeds
const chemicalSeparator = ";"

// csvProduct is the flat CSV layout of a product
type csvProduct struct {
	ID          string  `csv:"id"`
	Name        string  `csv:"name"`
	Brand       string  `csv:"brand"`
	Category    string  `csv:"category"`
	RiskLevel   string  `csv:"risk_level"`
	Chemicals   string  `csv:"chemicals"`
	Description string  `csv:"description"`
	Image       string  `csv:"image"`
	Price       float64 `csv:"price"`
	Rating      float64 `csv:"rating"`
	Reviews     int     `csv:"reviews"`
}

// DecodeYAML reads a YAML sequence of products
func DecodeYAML(data []byte) ([]domain.Product, error) {
	var products []domain.Product
	if err := yaml.Unmarshal(data, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// DecodeJSON reads a JSON array of products
func DecodeJSON(data []byte) ([]domain.Product, error) {
	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// DecodeCSV reads products with a header row; chemicals are ';' separated.
// Risk levels are accepted in any case ("high", "High").
func DecodeCSV(data []byte) ([]domain.Product, error) {
	var rows []*csvProduct
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(rows))
	for _, r := range rows {
		risk := domain.RiskLevel(strings.TrimSpace(r.RiskLevel))
		if parsed, err := domain.ParseRiskLevel(r.RiskLevel); err == nil {
			risk = parsed
		}
		products = append(products, domain.Product{
			ID:               strings.TrimSpace(r.ID),
			Name:             strings.TrimSpace(r.Name),
			Brand:            strings.TrimSpace(r.Brand),
			Category:         domain.Category(strings.TrimSpace(r.Category)),
			RiskLevel:        risk,
			HarmfulChemicals: splitChemicals(r.Chemicals),
			Description:      r.Description,
			Image:            strings.TrimSpace(r.Image),
			Price:            r.Price,
			Rating:           r.Rating,
			Reviews:          r.Reviews,
		})
	}
	return products, nil
}

// EncodeCSV writes products in the layout DecodeCSV reads
func EncodeCSV(products []domain.Product) ([]byte, error) {
	rows := make([]*csvProduct, 0, len(products))
	for _, p := range products {
		rows = append(rows, &csvProduct{
			ID:          p.ID,
			Name:        p.Name,
			Brand:       p.Brand,
			Category:    string(p.Category),
			RiskLevel:   string(p.RiskLevel),
			Chemicals:   strings.Join(p.HarmfulChemicals, chemicalSeparator),
			Description: p.Description,
			Image:       p.Image,
			Price:       p.Price,
			Rating:      p.Rating,
			Reviews:     p.Reviews,
		})
	}
	var buf bytes.Buffer
	if err := gocsv.Marshal(rows, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func splitChemicals(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, chemicalSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
