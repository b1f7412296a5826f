package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"quickfactor-backend/internal/usecase/defaults"
)

type DefaultHandler struct{ uc *defaults.Usecase }

func NewDefaultHandler(uc *defaults.Usecase) *DefaultHandler { return &DefaultHandler{uc: uc} }

// MarkDefault defaults a funded invoice that is past its due date.
func (h *DefaultHandler) MarkDefault(c echo.Context) error {
	res, err := h.uc.HandleDefault(c.Request().Context(), c.Param("invoice_id"))
	if err != nil {
		return jsonErr(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// CheckExpiration defaults the invoice only once the grace deadline passed.
func (h *DefaultHandler) CheckExpiration(c echo.Context) error {
	defaulted, err := h.uc.CheckAndHandleExpiration(c.Request().Context(), c.Param("invoice_id"))
	if err != nil {
		return jsonErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"defaulted": defaulted})
}

// SweepFunded runs the expiration check over every funded invoice.
func (h *DefaultHandler) SweepFunded(c echo.Context) error {
	n, err := h.uc.SweepFunded(c.Request().Context())
	if err != nil {
		return jsonErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int{"defaulted": n})
}
