package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"quickfactor-backend/internal/usecase/escrow"
)

type EscrowHandler struct{ uc *escrow.Usecase }

func NewEscrowHandler(uc *escrow.Usecase) *EscrowHandler { return &EscrowHandler{uc: uc} }

func (h *EscrowHandler) GetEscrow(c echo.Context) error {
	e, err := h.uc.Get(c.Request().Context(), c.Param("invoice_id"))
	if err != nil {
		return jsonErr(c, err)
	}
	return c.JSON(http.StatusOK, e)
}

// ReleaseEscrow pays held funds out to the business. Admin only.
func (h *EscrowHandler) ReleaseEscrow(c echo.Context) error {
	if err := h.uc.Release(c.Request().Context(), actorID(c), c.Param("invoice_id")); err != nil {
		return jsonErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "released"})
}

// RefundEscrow returns held funds to the investor. Admin only.
func (h *EscrowHandler) RefundEscrow(c echo.Context) error {
	if err := h.uc.Refund(c.Request().Context(), actorID(c), c.Param("invoice_id")); err != nil {
		return jsonErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "refunded"})
}
