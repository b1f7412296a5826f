package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	biddomain "quickfactor-backend/internal/domain/bid"
	invoicedomain "quickfactor-backend/internal/domain/invoice"
	"quickfactor-backend/internal/domain/uow"
	"quickfactor-backend/internal/testutil/bidmock"
	"quickfactor-backend/internal/testutil/dispatchmock"
	"quickfactor-backend/internal/testutil/fundsmock"
	"quickfactor-backend/internal/testutil/invoicemock"
	"quickfactor-backend/internal/testutil/uowmock"
	uc "quickfactor-backend/internal/usecase/bid"
	"quickfactor-backend/pkg/clock"
)

const (
	testInvestorID = "cccccccccccccccccccccccccccccccc"
	testInvoiceID  = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
)

func newBidUsecase(bids *bidmock.Repo, inv *invoicedomain.Invoice) *uc.Usecase {
	invoices := &invoicemock.Repo{
		GetByInvoiceIDForUpdateFn: func(ctx context.Context, invoiceID string) (*invoicedomain.Invoice, error) {
			if inv == nil {
				return nil, invoicedomain.ErrNotFound
			}
			return inv, nil
		},
	}
	repos := uow.Repos{Invoices: invoices, Bids: bids}
	return uc.NewUsecase(bids, uowmock.Passthrough(repos), &fundsmock.Transferer{}, &clock.Fixed{T: testNow}, &dispatchmock.Recorder{}, 100, 24*time.Hour)
}

func biddableInvoice() *invoicedomain.Invoice {
	return &invoicedomain.Invoice{
		InvoiceID:  testInvoiceID,
		BusinessID: testBusinessID,
		Amount:     100000,
		Currency:   "USD",
		Status:     invoicedomain.StatusVerified,
	}
}

func postBid(t *testing.T, h *BidHandler, body map[string]any, actor string) *httptest.ResponseRecorder {
	t.Helper()
	e := newEchoWithValidator()
	req := httptest.NewRequest(stdhttp.MethodPost, "/invoices/"+testInvoiceID+"/bids", mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Fx-Actor-Id", actor)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("invoice_id")
	c.SetParamValues(testInvoiceID)
	if err := h.PlaceBid(c); err != nil {
		t.Fatalf("PlaceBid error: %v", err)
	}
	return rec
}

func TestPlaceBid_Success(t *testing.T) {
	h := NewBidHandler(newBidUsecase(&bidmock.Repo{}, biddableInvoice()))

	rec := postBid(t, h, map[string]any{"bid_amount": 90000, "expected_return": 100000}, testInvestorID)
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	var dto uc.BidDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if dto.InvestorID != testInvestorID || dto.BidAmount != 90000 {
		t.Fatalf("unexpected dto: %+v", dto)
	}
	if dto.Status != string(biddomain.StatusPlaced) || len(dto.BidID) != 32 {
		t.Fatalf("unexpected dto: %+v", dto)
	}
}

func TestPlaceBid_ValidationError(t *testing.T) {
	h := NewBidHandler(newBidUsecase(&bidmock.Repo{}, biddableInvoice()))

	rec := postBid(t, h, map[string]any{"bid_amount": 0}, testInvestorID)
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if !containsFieldMsg(er.Details, "BidAmount", "is required") {
		t.Fatalf("missing bid_amount detail: %+v", er.Details)
	}
	if !containsFieldMsg(er.Details, "ExpectedReturn", "is required") {
		t.Fatalf("missing expected_return detail: %+v", er.Details)
	}
}

func TestPlaceBid_BelowMinimum(t *testing.T) {
	h := NewBidHandler(newBidUsecase(&bidmock.Repo{}, biddableInvoice()))

	// passes struct validation, rejected by the marketplace floor
	rec := postBid(t, h, map[string]any{"bid_amount": 50, "expected_return": 60}, testInvestorID)
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestPlaceBid_InvoiceNotBidding(t *testing.T) {
	inv := biddableInvoice()
	inv.Status = invoicedomain.StatusPending
	h := NewBidHandler(newBidUsecase(&bidmock.Repo{}, inv))

	rec := postBid(t, h, map[string]any{"bid_amount": 90000, "expected_return": 100000}, testInvestorID)
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestAcceptBid_OnlyInvoiceOwner(t *testing.T) {
	e := echo.New()
	bids := &bidmock.Repo{
		GetByBidIDFn: func(ctx context.Context, bidID string) (*biddomain.Bid, error) {
			return &biddomain.Bid{
				BidID:      bidID,
				InvoiceID:  testInvoiceID,
				InvestorID: testInvestorID,
				BidAmount:  90000,
				Status:     biddomain.StatusPlaced,
			}, nil
		},
	}
	h := NewBidHandler(newBidUsecase(bids, biddableInvoice()))

	req := httptest.NewRequest(stdhttp.MethodPost, "/invoices/"+testInvoiceID+"/bids/xxx/accept", nil)
	req.Header.Set("Fx-Actor-Id", testInvestorID) // not the business
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("invoice_id", "bid_id")
	c.SetParamValues(testInvoiceID, "dddddddddddddddddddddddddddddddd")

	if err := h.AcceptBid(c); err != nil {
		t.Fatalf("AcceptBid error: %v", err)
	}
	if rec.Code != stdhttp.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestBestBid_Empty(t *testing.T) {
	e := echo.New()
	h := NewBidHandler(newBidUsecase(&bidmock.Repo{}, biddableInvoice()))

	req := httptest.NewRequest(stdhttp.MethodGet, "/invoices/"+testInvoiceID+"/bids/best", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("invoice_id")
	c.SetParamValues(testInvoiceID)

	if err := h.BestBid(c); err != nil {
		t.Fatalf("BestBid error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestCleanupExpiredBids(t *testing.T) {
	e := echo.New()
	bids := &bidmock.Repo{
		DeleteExpiredFn: func(ctx context.Context, invoiceID string, now time.Time) (int64, error) {
			return 3, nil
		},
	}
	h := NewBidHandler(newBidUsecase(bids, biddableInvoice()))

	req := httptest.NewRequest(stdhttp.MethodPost, "/invoices/"+testInvoiceID+"/bids/cleanup", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("invoice_id")
	c.SetParamValues(testInvoiceID)

	if err := h.CleanupExpiredBids(c); err != nil {
		t.Fatalf("CleanupExpiredBids error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var m map[string]int64
	_ = json.Unmarshal(rec.Body.Bytes(), &m)
	if m["removed"] != 3 {
		t.Fatalf("removed = %d, want 3", m["removed"])
	}
}
