package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"quickfactor-backend/internal/usecase/ops"
)

type OpsHandler struct{ uc *ops.Usecase }

func NewOpsHandler(uc *ops.Usecase) *OpsHandler { return &OpsHandler{uc: uc} }

type depositReq struct {
	Amount   int64  `json:"amount" validate:"required,gt=0"`
	Currency string `json:"currency" validate:"omitempty,currency3"`
}

// Deposit credits a holder's ledger account. Admin only.
func (h *OpsHandler) Deposit(c echo.Context) error {
	var req depositReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	err := h.uc.Deposit(c.Request().Context(), actorID(c), c.Param("holder_id"), req.Currency, req.Amount)
	if err != nil {
		return jsonErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "credited"})
}

type approveReq struct {
	Amount   int64  `json:"amount" validate:"gte=0"`
	Currency string `json:"currency" validate:"omitempty,currency3"`
}

// Approve lets a holder set the platform's spending allowance over their
// account. An amount of zero revokes any standing allowance.
func (h *OpsHandler) Approve(c echo.Context) error {
	var req approveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	err := h.uc.Approve(c.Request().Context(), actorID(c), c.Param("holder_id"), req.Currency, req.Amount)
	if err != nil {
		return jsonErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "approved"})
}

// Balance reports a holder's account balance, defaulting to the platform
// currency when the currency query param is absent.
func (h *OpsHandler) Balance(c echo.Context) error {
	bal, err := h.uc.Balance(c.Request().Context(), actorID(c), c.Param("holder_id"), c.QueryParam("currency"))
	if err != nil {
		return jsonErr(c, err)
	}
	return c.JSON(http.StatusOK, bal)
}

// VerifyBusiness records a passed KYC review for a business. Admin only.
func (h *OpsHandler) VerifyBusiness(c echo.Context) error {
	if err := h.uc.VerifyBusiness(c.Request().Context(), actorID(c), c.Param("business_id")); err != nil {
		return jsonErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "verified"})
}
