package catalogapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/chemalert/chemalert/internal/app"
	"github.com/chemalert/chemalert/internal/catalog"
	"github.com/chemalert/chemalert/internal/webserver"
)

const (
	defaultPageSize = 20
	maxPageSize     = 500
)

// Init registers every catalog route on the web server set up by webserver.Init
func Init() {
	registerProductRoutes()
	registerSearchRoutes()
	registerCategoryRoutes()
	registerChemicalRoutes()
	registerStatsRoutes()
	registerSubmissionRoutes()
	registerSettingsRoutes()
}

// Meta describes a page of a list response
type Meta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

// ErrorBody is the error half of the failure envelope
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type successResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type failResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, successResponse{Success: true, Data: data})
}

func accepted(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusAccepted, successResponse{Success: true, Data: data})
}

func paged(c echo.Context, data interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, successResponse{
		Success: true,
		Data:    data,
		Meta:    &Meta{Total: total, Page: page, PageSize: pageSize},
	})
}

func fail(c echo.Context, status int, code, message string, details interface{}) error {
	return c.JSON(status, failResponse{Error: ErrorBody{Code: code, Message: message, Details: details}})
}

// parsePagination reads page and perPage (pageSize accepted as a fallback)
func parsePagination(c echo.Context) (int, int) {
	page := cast.ToInt(c.QueryParam("page"))
	if page <= 0 {
		page = 1
	}
	raw := c.QueryParam("perPage")
	if raw == "" {
		raw = c.QueryParam("pageSize")
	}
	pageSize := cast.ToInt(raw)
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// pageBounds returns the slice bounds of page within total rows. Pages past
// the end are empty; page is compared before multiplying so it cannot overflow.
func pageBounds(total, page, pageSize int) (int, int) {
	if page < 1 || pageSize < 1 || page-1 > total/pageSize {
		return total, total
	}
	start := (page - 1) * pageSize
	end := total
	if total-start > pageSize {
		end = start + pageSize
	}
	return start, end
}

// parseLimit reads a non-negative integer query parameter, def when absent
func parseLimit(c echo.Context, name string, def int) (int, bool) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, true
	}
	n, err := cast.ToIntE(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	if n > maxPageSize {
		n = maxPageSize
	}
	return n, true
}

// GetAppContext returns the application context attached by the web server
func GetAppContext(c echo.Context) app.AppContext {
	return c.Get(webserver.AppContextKey).(app.AppContext)
}

// GetCatalog returns the loaded catalog
func GetCatalog(c echo.Context) *catalog.Catalog {
	return GetAppContext(c).Catalog()
}
