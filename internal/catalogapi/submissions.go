package catalogapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/chemalert/chemalert/internal/domain"
	"github.com/chemalert/chemalert/internal/webserver"
	"github.com/chemalert/chemalert/pkg/common"
)

type submissionPayload struct {
	Name             string   `json:"name" validate:"required,max=200"`
	Brand            string   `json:"brand" validate:"required,max=200"`
	Category         string   `json:"category" validate:"required"`
	RiskLevel        string   `json:"riskLevel" validate:"required"`
	Description      string   `json:"description" validate:"required,max=2000"`
	HarmfulChemicals []string `json:"harmfulChemicals" validate:"max=50,dive,max=200"`
	Image            string   `json:"image" validate:"omitempty,max=500"`
}

type submissionProduct struct {
	Name             string           `json:"name"`
	Brand            string           `json:"brand"`
	Category         domain.Category  `json:"category"`
	RiskLevel        domain.RiskLevel `json:"riskLevel"`
	Description      string           `json:"description"`
	HarmfulChemicals []string         `json:"harmfulChemicals"`
	Image            string           `json:"image"`
}

type submissionReceipt struct {
	ReceiptID string            `json:"receipt_id"`
	Status    string            `json:"status"`
	Redirect  string            `json:"redirect"`
	Product   submissionProduct `json:"product"`
}

func registerSubmissionRoutes() {
	webserver.ApiPOST("/submissions", createSubmission)
}

// createSubmission accepts a proposed product for review. Nothing is written to
// the catalog; the receipt is only logged.
func createSubmission(c echo.Context) error {
	var payload submissionPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse submission", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Brand = strings.TrimSpace(payload.Brand)
	payload.Description = strings.TrimSpace(payload.Description)
	payload.Image = strings.TrimSpace(payload.Image)
	payload.HarmfulChemicals = common.DedupeTrimmed(payload.HarmfulChemicals)

	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Submission is incomplete", err.Error())
	}
	cat, err := domain.ParseCategory(payload.Category)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_CATEGORY", "Unknown category", domain.Categories)
	}
	risk, err := domain.ParseRiskLevel(payload.RiskLevel)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_RISK", "Unknown risk level", domain.RiskLevels)
	}

	receipt := submissionReceipt{
		ReceiptID: common.UUIDBase32(),
		Status:    "received",
		Redirect:  "/",
		Product: submissionProduct{
			Name:             payload.Name,
			Brand:            payload.Brand,
			Category:         cat,
			RiskLevel:        risk,
			Description:      payload.Description,
			HarmfulChemicals: payload.HarmfulChemicals,
			Image:            payload.Image,
		},
	}
	zap.L().Info("product submission received",
		zap.String("namespace", "catalog"),
		zap.String("receipt_id", receipt.ReceiptID),
		zap.String("name", payload.Name),
		zap.String("brand", payload.Brand),
		zap.String("category", string(cat)),
		zap.Strings("chemicals", payload.HarmfulChemicals))
	return accepted(c, receipt)
}
