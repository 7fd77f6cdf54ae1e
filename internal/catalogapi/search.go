package catalogapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/chemalert/chemalert/internal/catalog"
	"github.com/chemalert/chemalert/internal/webserver"
)

// SearchHint is returned while the query is still empty
const SearchHint = "Start typing to search products, brands, or chemicals..."

type searchResult struct {
	Query     string        `json:"query"`
	Results   []productCard `json:"results"`
	Total     int           `json:"total"`
	Truncated bool          `json:"truncated"`
	Hint      string        `json:"hint,omitempty"`
}

func registerSearchRoutes() {
	webserver.ApiGET("/search", searchProducts)
}

// searchProducts backs the interactive search box. The match set is never
// altered, only the displayed slice is capped.
func searchProducts(c echo.Context) error {
	appCtx := GetAppContext(c)
	limit, valid := parseLimit(c, "limit", appCtx.Config().Web.SearchLimit)
	if !valid {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "limit must be a non-negative integer", nil)
	}

	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return ok(c, searchResult{Results: []productCard{}, Hint: SearchHint})
	}

	matches := appCtx.Catalog().Search(query)
	appCtx.Metrics().SearchQueries.Inc()
	if len(matches) == 0 {
		appCtx.Metrics().SearchEmpty.Inc()
	}
	shown, truncated := catalog.Truncate(matches, limit)
	return ok(c, searchResult{
		Query:     query,
		Results:   toCards(shown),
		Total:     len(matches),
		Truncated: truncated,
	})
}
