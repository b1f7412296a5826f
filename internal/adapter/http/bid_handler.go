package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	biddomain "quickfactor-backend/internal/domain/bid"
	"quickfactor-backend/internal/usecase/bid"
)

type BidHandler struct{ uc *bid.Usecase }

func NewBidHandler(uc *bid.Usecase) *BidHandler { return &BidHandler{uc: uc} }

type placeBidReq struct {
	BidAmount      int64 `json:"bid_amount"       validate:"required,gt=0"`
	ExpectedReturn int64 `json:"expected_return"  validate:"required,gt=0"`
}

// PlaceBid submits an investor offer on a verified invoice.
func (h *BidHandler) PlaceBid(c echo.Context) error {
	var req placeBidReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Place(c.Request().Context(), bid.PlaceInput{
		InvestorID:     actorID(c),
		InvoiceID:      c.Param("invoice_id"),
		BidAmount:      req.BidAmount,
		ExpectedReturn: req.ExpectedReturn,
	})
	if err != nil {
		return jsonErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// WithdrawBid cancels a placed bid; only its investor may.
func (h *BidHandler) WithdrawBid(c echo.Context) error {
	if err := h.uc.Withdraw(c.Request().Context(), actorID(c), c.Param("bid_id")); err != nil {
		return jsonErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": string(biddomain.StatusWithdrawn)})
}

// AcceptBid locks escrow and funds the invoice. Only the invoice's business may.
func (h *BidHandler) AcceptBid(c echo.Context) error {
	dto, err := h.uc.Accept(c.Request().Context(), actorID(c), c.Param("invoice_id"), c.Param("bid_id"))
	if err != nil {
		return jsonErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// ListBids returns bids for an invoice; ?status= and ?investor_id= filter,
// ?sort=ranked orders by attractiveness.
func (h *BidHandler) ListBids(c echo.Context) error {
	ctx := c.Request().Context()
	invoiceID := c.Param("invoice_id")

	if investorID := c.QueryParam("investor_id"); investorID != "" {
		dtos, err := h.uc.ByInvestor(ctx, invoiceID, investorID)
		if err != nil {
			return jsonErr(c, err)
		}
		return c.JSON(http.StatusOK, dtos)
	}
	if status := c.QueryParam("status"); status != "" {
		dtos, err := h.uc.ByStatus(ctx, invoiceID, biddomain.Status(status))
		if err != nil {
			return jsonErr(c, err)
		}
		return c.JSON(http.StatusOK, dtos)
	}
	dtos, err := h.uc.Ranked(ctx, invoiceID)
	if err != nil {
		return jsonErr(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

// BestBid returns the single most attractive placed bid, or 404.
func (h *BidHandler) BestBid(c echo.Context) error {
	dto, err := h.uc.Best(c.Request().Context(), c.Param("invoice_id"))
	if err != nil {
		return jsonErr(c, err)
	}
	if dto == nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "no placed bids"})
	}
	return c.JSON(http.StatusOK, dto)
}

// CleanupExpiredBids removes expired placed bids for the invoice.
func (h *BidHandler) CleanupExpiredBids(c echo.Context) error {
	n, err := h.uc.CleanupExpired(c.Request().Context(), c.Param("invoice_id"))
	if err != nil {
		return jsonErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"removed": n})
}
