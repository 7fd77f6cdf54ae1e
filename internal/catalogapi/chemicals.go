package catalogapi

import (
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/chemalert/chemalert/internal/chemical"
	"github.com/chemalert/chemalert/internal/domain"
	"github.com/chemalert/chemalert/internal/webserver"
)

type chemicalSummary struct {
	chemical.Info
	RiskLabel    string `json:"riskLabel"`
	ProductCount int    `json:"productCount"`
}

type chemicalDetail struct {
	chemicalSummary
	Products []productCard `json:"products"`
}

func registerChemicalRoutes() {
	webserver.ApiGET("/chemicals", listChemicals)
	webserver.ApiGET("/chemicals/:name", getChemical)
}

func summarize(name string, products []domain.Product) chemicalSummary {
	info := chemical.Lookup(name)
	return chemicalSummary{
		Info:         info,
		RiskLabel:    chemical.RiskLabel(info.Risk),
		ProductCount: len(products),
	}
}

func listChemicals(c echo.Context) error {
	cat := GetCatalog(c)
	known := chemical.Known()
	rows := make([]chemicalSummary, 0, len(known))
	for _, name := range known {
		rows = append(rows, summarize(name, cat.WithChemical(name)))
	}
	return ok(c, rows)
}

// getChemical never 404s: unknown names carry the generic fallbacks
func getChemical(c echo.Context) error {
	// echo only hands back a decoded param when it routed on URL.Path
	name := c.Param("name")
	if c.Request().URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(name); err == nil {
			name = unescaped
		}
	}
	products := GetCatalog(c).WithChemical(name)
	return ok(c, chemicalDetail{
		chemicalSummary: summarize(name, products),
		Products:        toCards(products),
	})
}
