package catalogapi

import (
	"github.com/labstack/echo/v4"

	"github.com/chemalert/chemalert/internal/webserver"
)

func registerStatsRoutes() {
	webserver.ApiGET("/stats", getStats)
}

func getStats(c echo.Context) error {
	return ok(c, GetCatalog(c).Aggregate())
}
