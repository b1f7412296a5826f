package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	invoicedomain "quickfactor-backend/internal/domain/invoice"
	"quickfactor-backend/internal/usecase/invoice"
)

type InvoiceHandler struct {
	uc              *invoice.Usecase
	defaultCurrency string
}

func NewInvoiceHandler(uc *invoice.Usecase, defaultCurrency string) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, defaultCurrency: defaultCurrency}
}

type uploadInvoiceReq struct {
	Amount      int64     `json:"amount"       validate:"required,gt=0"`
	Currency    string    `json:"currency"     validate:"omitempty,currency3"`
	DueDate     time.Time `json:"due_date"     validate:"required"`
	Description string    `json:"description"  validate:"required"`
}

// UploadInvoice creates a pending invoice owned by the calling business.
func (h *InvoiceHandler) UploadInvoice(c echo.Context) error {
	var req uploadInvoiceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	currency := req.Currency
	if currency == "" {
		currency = h.defaultCurrency
	}
	dto, err := h.uc.Upload(c.Request().Context(), invoice.UploadInput{
		BusinessID:  actorID(c),
		Amount:      req.Amount,
		Currency:    currency,
		DueDate:     req.DueDate,
		Description: req.Description,
	})
	if err != nil {
		return jsonErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// VerifyInvoice moves a pending invoice to verified. Admin only.
func (h *InvoiceHandler) VerifyInvoice(c echo.Context) error {
	dto, err := h.uc.Verify(c.Request().Context(), actorID(c), c.Param("invoice_id"))
	if err != nil {
		return jsonErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *InvoiceHandler) GetInvoice(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("invoice_id"))
	if err != nil {
		return jsonErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// ListInvoices filters by ?status= or ?business_id= (one of the two).
func (h *InvoiceHandler) ListInvoices(c echo.Context) error {
	if businessID := c.QueryParam("business_id"); businessID != "" {
		dtos, err := h.uc.ListByBusiness(c.Request().Context(), businessID)
		if err != nil {
			return jsonErr(c, err)
		}
		return c.JSON(http.StatusOK, dtos)
	}
	status := invoicedomain.Status(c.QueryParam("status"))
	if status == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "status or business_id query param required"})
	}
	dtos, err := h.uc.ListByStatus(c.Request().Context(), status)
	if err != nil {
		return jsonErr(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *InvoiceHandler) ListPayments(c echo.Context) error {
	recs, err := h.uc.ListPayments(c.Request().Context(), c.Param("invoice_id"))
	if err != nil {
		return jsonErr(c, err)
	}
	return c.JSON(http.StatusOK, recs)
}

// OpenDispute flags the invoice; only its business or bound investor may.
func (h *InvoiceHandler) OpenDispute(c echo.Context) error {
	if err := h.uc.OpenDispute(c.Request().Context(), actorID(c), c.Param("invoice_id")); err != nil {
		return jsonErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"dispute_status": "disputed"})
}

func (h *InvoiceHandler) ReviewDispute(c echo.Context) error {
	if err := h.uc.ReviewDispute(c.Request().Context(), actorID(c), c.Param("invoice_id")); err != nil {
		return jsonErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"dispute_status": "under_review"})
}

func (h *InvoiceHandler) ResolveDispute(c echo.Context) error {
	if err := h.uc.ResolveDispute(c.Request().Context(), actorID(c), c.Param("invoice_id")); err != nil {
		return jsonErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"dispute_status": "resolved"})
}
