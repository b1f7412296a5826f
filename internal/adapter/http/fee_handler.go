package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"quickfactor-backend/internal/usecase/fee"
)

type FeeHandler struct{ uc *fee.Usecase }

func NewFeeHandler(uc *fee.Usecase) *FeeHandler { return &FeeHandler{uc: uc} }

func (h *FeeHandler) GetFeeConfig(c echo.Context) error {
	cfg, err := h.uc.Get(c.Request().Context())
	if err != nil {
		return jsonErr(c, err)
	}
	return c.JSON(http.StatusOK, cfg)
}

type updateFeeReq struct {
	FeeBps int `json:"fee_bps" validate:"gte=0,lte=1000"`
}

// UpdateFeeConfig sets the platform fee in basis points. Admin only.
func (h *FeeHandler) UpdateFeeConfig(c echo.Context) error {
	var req updateFeeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	cfg, err := h.uc.Update(c.Request().Context(), actorID(c), req.FeeBps)
	if err != nil {
		return jsonErr(c, err)
	}
	return c.JSON(http.StatusOK, cfg)
}

// PreviewSplit computes the investor/platform split for hypothetical amounts.
func (h *FeeHandler) PreviewSplit(c echo.Context) error {
	investment, err := strconv.ParseInt(c.QueryParam("investment"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid investment query param"})
	}
	payment, err := strconv.ParseInt(c.QueryParam("payment"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid payment query param"})
	}
	split, err := h.uc.Preview(c.Request().Context(), investment, payment)
	if err != nil {
		return jsonErr(c, err)
	}
	return c.JSON(http.StatusOK, split)
}
