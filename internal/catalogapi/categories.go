package catalogapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/chemalert/chemalert/internal/catalog"
	"github.com/chemalert/chemalert/internal/domain"
	"github.com/chemalert/chemalert/internal/webserver"
)

type categoryProducts struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Products []productCard `json:"products"`
}

func registerCategoryRoutes() {
	webserver.ApiGET("/categories", listCategories)
	webserver.ApiGET("/categories/:id/products", listCategoryProducts)
}

func listCategories(c echo.Context) error {
	return ok(c, GetCatalog(c).CategorySummaries())
}

// listCategoryProducts answers unknown ids with an empty list under the
// generic name instead of a 404
func listCategoryProducts(c echo.Context) error {
	key, valid := catalog.ParseSortKey(c.QueryParam("sort"))
	if !valid {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unknown sort key", catalog.SortKeys)
	}

	id := strings.TrimSpace(c.Param("id"))
	result := categoryProducts{ID: id, Name: domain.DefaultCategoryName, Products: []productCard{}}
	cat, err := domain.ParseCategory(id)
	if err != nil {
		return ok(c, result)
	}
	result.ID = string(cat)
	result.Name = categoryName(cat)
	result.Products = toCards(catalog.Sort(GetCatalog(c).FilterByCategory(cat), key))
	return ok(c, result)
}
