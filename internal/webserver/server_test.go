package webserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chemalert/chemalert/config"
	"github.com/chemalert/chemalert/internal/metrics"
)

func newTestServer(t *testing.T) (*WebServer, *metrics.Registry) {
	t.Helper()
	reg := metrics.NewRegistry()
	return Init(config.DefaultAppConfig(), "ctx-value", reg), reg
}

func serve(s *WebServer, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	return rec
}

func TestApiRoutesReceiveAppContext(t *testing.T) {
	s, _ := newTestServer(t)
	ApiGET("/ping", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{"ctx": c.Get(AppContextKey)})
	})

	rec := serve(s, http.MethodGet, ApiPrefix+"/ping", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ctx":"ctx-value"}`, rec.Body.String())
}

func TestUnknownRouteUsesErrorEnvelope(t *testing.T) {
	s, reg := newTestServer(t)

	rec := serve(s, http.MethodGet, ApiPrefix+"/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":{"code":"NOT_FOUND","message":"Not Found"}}`, rec.Body.String())
	assert.Equal(t, 1, testutil.CollectAndCount(reg.HTTPRequests))
}

func TestDeserializeAndValidate(t *testing.T) {
	s, _ := newTestServer(t)
	type payload struct {
		Name string `json:"name" validate:"required"`
	}
	ApiPOST("/echo", func(c echo.Context) error {
		var p payload
		if err := c.Bind(&p); err != nil {
			return err
		}
		if err := c.Validate(&p); err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid")
		}
		return c.JSON(http.StatusOK, p)
	})

	rec := serve(s, http.MethodPost, ApiPrefix+"/echo", `{"name":"x"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name":"x"}`, rec.Body.String())

	rec = serve(s, http.MethodPost, ApiPrefix+"/echo", `{"name":""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = serve(s, http.MethodPost, ApiPrefix+"/echo", `{broken`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthzAndMetrics(t *testing.T) {
	s, _ := newTestServer(t)

	rec := serve(s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "chemalert_http_requests_total")
}
