package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	authdomain "quickfactor-backend/internal/domain/auth"
	biddomain "quickfactor-backend/internal/domain/bid"
	escrowdomain "quickfactor-backend/internal/domain/escrow"
	feedomain "quickfactor-backend/internal/domain/fee"
	fundsdomain "quickfactor-backend/internal/domain/funds"
	investmentdomain "quickfactor-backend/internal/domain/investment"
	invoicedomain "quickfactor-backend/internal/domain/invoice"
	kycdomain "quickfactor-backend/internal/domain/kyc"
	defaultsuc "quickfactor-backend/internal/usecase/defaults"
	investmentuc "quickfactor-backend/internal/usecase/investment"
	settlementuc "quickfactor-backend/internal/usecase/settlement"
)

// actorID is the authenticated caller, set by the idempotency middleware
// contract (Fx-Actor-Id, 32-char lowercase hex). GET routes bypass the
// middleware, so handlers that need an actor re-check the format.
func actorID(c echo.Context) string {
	return strings.TrimSpace(c.Request().Header.Get("Fx-Actor-Id"))
}

// statusForErr maps domain errors to HTTP codes. Unknown errors are 500.
func statusForErr(err error) int {
	switch {
	case errors.Is(err, invoicedomain.ErrNotFound),
		errors.Is(err, biddomain.ErrNotFound),
		errors.Is(err, escrowdomain.ErrNotFound),
		errors.Is(err, investmentdomain.ErrNotFound),
		errors.Is(err, feedomain.ErrNotFound),
		errors.Is(err, fundsdomain.ErrAccountNotFound):
		return http.StatusNotFound

	case errors.Is(err, authdomain.ErrNotAdmin),
		errors.Is(err, authdomain.ErrNotOwner),
		errors.Is(err, authdomain.ErrUnauthorized),
		errors.Is(err, biddomain.ErrNotBidOwner),
		errors.Is(err, kycdomain.ErrBusinessNotVerified),
		errors.Is(err, fundsdomain.ErrNotAuthorized):
		return http.StatusForbidden

	case errors.Is(err, invoicedomain.ErrInvalidStatus),
		errors.Is(err, invoicedomain.ErrInvalidDispute),
		errors.Is(err, biddomain.ErrNotPlaced),
		errors.Is(err, biddomain.ErrInvoiceNotBidding),
		errors.Is(err, biddomain.ErrDuplicateBid),
		errors.Is(err, escrowdomain.ErrNotHeld),
		errors.Is(err, investmentdomain.ErrCoverageActive),
		errors.Is(err, investmentuc.ErrNotInsurable),
		errors.Is(err, settlementuc.ErrPaymentTooLow),
		errors.Is(err, settlementuc.ErrNoInvestor),
		errors.Is(err, defaultsuc.ErrNotOverdue):
		return http.StatusConflict

	case errors.Is(err, invoicedomain.ErrInvalidAmount),
		errors.Is(err, invoicedomain.ErrInvalidDueDate),
		errors.Is(err, invoicedomain.ErrInvalidDescription),
		errors.Is(err, biddomain.ErrInvalidAmount),
		errors.Is(err, biddomain.ErrExceedsInvoice),
		errors.Is(err, feedomain.ErrInvalidBps),
		errors.Is(err, fundsdomain.ErrInvalidAmount),
		errors.Is(err, fundsdomain.ErrInsufficientFunds),
		errors.Is(err, investmentdomain.ErrInvalidCoverage),
		errors.Is(err, investmentdomain.ErrInvalidPremium):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func jsonErr(c echo.Context, err error) error {
	return c.JSON(statusForErr(err), ErrorResponse{Error: err.Error()})
}

// ---- test helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
