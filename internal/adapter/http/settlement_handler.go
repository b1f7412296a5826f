package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"quickfactor-backend/internal/usecase/settlement"
)

type SettlementHandler struct{ uc *settlement.Usecase }

func NewSettlementHandler(uc *settlement.Usecase) *SettlementHandler {
	return &SettlementHandler{uc: uc}
}

type partialPaymentReq struct {
	Amount int64  `json:"amount"  validate:"required,gt=0"`
	TxRef  string `json:"tx_ref"  validate:"required"`
}

// RecordPayment registers a partial payment from the invoice's business.
// When the invoice reaches full payment it settles in the same transaction.
func (h *SettlementHandler) RecordPayment(c echo.Context) error {
	var req partialPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	res, err := h.uc.ProcessPartialPayment(c.Request().Context(), actorID(c), settlement.PartialPaymentInput{
		InvoiceID: c.Param("invoice_id"),
		Amount:    req.Amount,
		TxRef:     req.TxRef,
	})
	if err != nil {
		return jsonErr(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

type settleReq struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

// Settle closes out a funded invoice with a single payment amount.
func (h *SettlementHandler) Settle(c echo.Context) error {
	var req settleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	res, err := h.uc.Settle(c.Request().Context(), c.Param("invoice_id"), req.Amount)
	if err != nil {
		return jsonErr(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
