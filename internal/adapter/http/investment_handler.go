package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"quickfactor-backend/internal/usecase/investment"
)

type InvestmentHandler struct{ uc *investment.Usecase }

func NewInvestmentHandler(uc *investment.Usecase) *InvestmentHandler {
	return &InvestmentHandler{uc: uc}
}

type addInsuranceReq struct {
	ProviderID         string `json:"provider_id"          validate:"required,hex32"`
	CoveragePercentage int    `json:"coverage_percentage"  validate:"required,gte=1,lte=100"`
}

// AddInsurance buys default coverage for the caller's active investment.
func (h *InvestmentHandler) AddInsurance(c echo.Context) error {
	var req addInsuranceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.AddInsurance(c.Request().Context(), actorID(c), investment.AddInsuranceInput{
		InvestmentID:       c.Param("investment_id"),
		ProviderID:         req.ProviderID,
		CoveragePercentage: req.CoveragePercentage,
	})
	if err != nil {
		return jsonErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *InvestmentHandler) GetByInvoice(c echo.Context) error {
	inv, err := h.uc.GetByInvoice(c.Request().Context(), c.Param("invoice_id"))
	if err != nil {
		return jsonErr(c, err)
	}
	return c.JSON(http.StatusOK, inv)
}
