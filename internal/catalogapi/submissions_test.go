package catalogapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chemalert/chemalert/internal/domain"
	"github.com/chemalert/chemalert/internal/webserver"
)

func (e *testEnv) post(t *testing.T, target, body string) (int, envelope) {
	return e.do(t, http.MethodPost, webserver.ApiPrefix+target, body)
}

func TestCreateSubmission(t *testing.T) {
	env := newTestEnv(t)

	code, resp := env.post(t, "/submissions", `{
		"name": "  Neem Face Wash ",
		"brand": "Himalaya",
		"category": "Personal-Care",
		"riskLevel": "medium",
		"description": "Daily face wash",
		"harmfulChemicals": [" Parabens", "Parabens", "", "Fragrance"]
	}`)
	require.Equal(t, http.StatusAccepted, code)
	assert.True(t, resp.Success)

	var receipt submissionReceipt
	require.NoError(t, json.Unmarshal(resp.Data, &receipt))
	assert.NotEmpty(t, receipt.ReceiptID)
	assert.Equal(t, "received", receipt.Status)
	assert.Equal(t, "/", receipt.Redirect)
	assert.Equal(t, "Neem Face Wash", receipt.Product.Name)
	assert.Equal(t, domain.CategoryPersonalCare, receipt.Product.Category)
	assert.Equal(t, domain.RiskMedium, receipt.Product.RiskLevel)
	assert.Equal(t, []string{"Parabens", "Fragrance"}, receipt.Product.HarmfulChemicals)

	// the catalog is read-only
	_, list := env.get(t, "/products")
	assert.Equal(t, int64(6), list.Meta.Total)
}

func TestCreateSubmissionReceiptsAreUnique(t *testing.T) {
	env := newTestEnv(t)
	body := `{"name":"A","brand":"B","category":"household","riskLevel":"Low","description":"d"}`

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		code, resp := env.post(t, "/submissions", body)
		require.Equal(t, http.StatusAccepted, code)
		var receipt submissionReceipt
		require.NoError(t, json.Unmarshal(resp.Data, &receipt))
		assert.False(t, seen[receipt.ReceiptID])
		seen[receipt.ReceiptID] = true
	}
}

func TestCreateSubmissionRejects(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body string
		code string
	}{
		{"malformed", `{"name":`, "INVALID_REQUEST"},
		{"blank name", `{"name":"   ","brand":"B","category":"household","riskLevel":"Low","description":"d"}`, "VALIDATION_ERROR"},
		{"missing description", `{"name":"A","brand":"B","category":"household","riskLevel":"Low"}`, "VALIDATION_ERROR"},
		{"unknown category", `{"name":"A","brand":"B","category":"toys","riskLevel":"Low","description":"d"}`, "INVALID_CATEGORY"},
		{"unknown risk", `{"name":"A","brand":"B","category":"household","riskLevel":"Severe","description":"d"}`, "INVALID_RISK"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := env.post(t, "/submissions", tt.body)
			assert.Equal(t, http.StatusBadRequest, code)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}
