package catalogapi

import (
	"github.com/labstack/echo/v4"

	"github.com/chemalert/chemalert/internal/webserver"
)

type uiSettings struct {
	Theme       string   `json:"theme"`
	Themes      []string `json:"themes"`
	SearchLimit int      `json:"searchLimit"`
}

func registerSettingsRoutes() {
	webserver.ApiGET("/settings/ui", getUISettings)
}

// getUISettings hands the configured theme to the UI; a client side choice
// overrides it
func getUISettings(c echo.Context) error {
	cfg := GetAppContext(c).Config()
	return ok(c, uiSettings{
		Theme:       cfg.Web.Theme,
		Themes:      []string{"light", "dark"},
		SearchLimit: cfg.Web.SearchLimit,
	})
}
