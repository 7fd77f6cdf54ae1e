package catalogapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/chemalert/chemalert/internal/catalog"
	"github.com/chemalert/chemalert/internal/chemical"
	"github.com/chemalert/chemalert/internal/domain"
	"github.com/chemalert/chemalert/internal/webserver"
)

const (
	defaultFeatured = 8
	defaultSimilar  = 3
	cardChemicals   = 2
)

// productCard is the list rendering of a product: image resolved and only the
// first chemicals shown with a count of the rest
type productCard struct {
	domain.Product
	Image         string   `json:"image"`
	TopChemicals  []string `json:"topChemicals"`
	MoreChemicals int      `json:"moreChemicals"`
}

type productDetail struct {
	domain.Product
	Image        string          `json:"image"`
	CategoryName string          `json:"categoryName"`
	Chemicals    []chemical.Info `json:"chemicals"`
}

func toCard(p domain.Product) productCard {
	top, more := p.TopChemicals(cardChemicals)
	return productCard{Product: p, Image: p.ImageOrPlaceholder(), TopChemicals: top, MoreChemicals: more}
}

func toCards(products []domain.Product) []productCard {
	cards := make([]productCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, toCard(p))
	}
	return cards
}

func categoryName(c domain.Category) string {
	info, _ := domain.LookupCategory(c)
	return info.Name
}

// registerProductRoutes registers the read-only product endpoints
func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiGET("/products/featured", featuredProducts)
	webserver.ApiGET("/products/:id", getProduct)
	webserver.ApiGET("/products/:id/similar", similarProducts)
}

// parseFilter reads q, category and risk. Unknown values are client errors here,
// unlike the core API where they just match nothing.
func parseFilter(c echo.Context) (catalog.Filter, *ErrorBody) {
	f := catalog.Filter{Query: strings.TrimSpace(c.QueryParam("q"))}
	if v := c.QueryParam("category"); strings.TrimSpace(v) != "" && !strings.EqualFold(v, "all") {
		cat, err := domain.ParseCategory(v)
		if err != nil {
			return f, &ErrorBody{Code: "INVALID_CATEGORY", Message: "Unknown category", Details: domain.Categories}
		}
		f.Category = cat
	}
	if v := c.QueryParam("risk"); strings.TrimSpace(v) != "" && !strings.EqualFold(v, "all") {
		risk, err := domain.ParseRiskLevel(v)
		if err != nil {
			return f, &ErrorBody{Code: "INVALID_RISK", Message: "Unknown risk level", Details: domain.RiskLevels}
		}
		f.Risk = risk
	}
	return f, nil
}

func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	f, perr := parseFilter(c)
	if perr != nil {
		return fail(c, http.StatusBadRequest, perr.Code, perr.Message, perr.Details)
	}
	key, valid := catalog.ParseSortKey(c.QueryParam("sort"))
	if !valid {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unknown sort key", catalog.SortKeys)
	}

	rows := catalog.Sort(GetCatalog(c).Query(f), key)
	total := len(rows)

	start, end := pageBounds(total, page, pageSize)
	return paged(c, toCards(rows[start:end]), int64(total), page, pageSize)
}

func featuredProducts(c echo.Context) error {
	n, valid := parseLimit(c, "limit", defaultFeatured)
	if !valid {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "limit must be a non-negative integer", nil)
	}
	return ok(c, toCards(GetCatalog(c).Featured(n)))
}

func getProduct(c echo.Context) error {
	p, err := GetCatalog(c).GetByID(c.Param("id"))
	if errors.Is(err, catalog.ErrNotFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return err
	}
	return ok(c, productDetail{
		Product:      p,
		Image:        p.ImageOrPlaceholder(),
		CategoryName: categoryName(p.Category),
		Chemicals:    chemical.Annotate(p),
	})
}

func similarProducts(c echo.Context) error {
	n, valid := parseLimit(c, "limit", defaultSimilar)
	if !valid {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "limit must be a non-negative integer", nil)
	}
	rows, err := GetCatalog(c).Similar(c.Param("id"), n)
	if errors.Is(err, catalog.ErrNotFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return err
	}
	return ok(c, toCards(rows))
}
