package http

import (
	"bytes"
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	invoicedomain "quickfactor-backend/internal/domain/invoice"
	"quickfactor-backend/internal/domain/uow"
	"quickfactor-backend/internal/testutil/dispatchmock"
	"quickfactor-backend/internal/testutil/invoicemock"
	"quickfactor-backend/internal/testutil/kycmock"
	"quickfactor-backend/internal/testutil/uowmock"
	uc "quickfactor-backend/internal/usecase/invoice"
	"quickfactor-backend/pkg/clock"
)

const (
	testAdminID    = "99999999999999999999999999999999"
	testBusinessID = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

var testNow = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

// -------- helpers --------

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func newInvoiceUsecase(repo *invoicemock.Repo, verifier *kycmock.Verifier) *uc.Usecase {
	repos := uow.Repos{Invoices: repo}
	return uc.NewUsecase(repo, uowmock.Passthrough(repos), verifier, &clock.Fixed{T: testNow}, &dispatchmock.Recorder{}, testAdminID)
}

// -------- tests --------

func TestUploadInvoice_Success(t *testing.T) {
	e := newEchoWithValidator()

	repo := &invoicemock.Repo{}
	h := NewInvoiceHandler(newInvoiceUsecase(repo, kycmock.AllVerified()), "USD")

	reqBody := map[string]any{
		"amount":      100000,
		"due_date":    testNow.Add(30 * 24 * time.Hour),
		"description": "Net-30 services",
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/invoices", mustJSON(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Fx-Actor-Id", testBusinessID)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.UploadInvoice(c); err != nil {
		t.Fatalf("UploadInvoice error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	var got uc.InvoiceDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.BusinessID != testBusinessID || got.Amount != 100000 {
		t.Fatalf("unexpected dto: %+v", got)
	}
	if got.Status != string(invoicedomain.StatusPending) || got.Currency != "USD" {
		t.Fatalf("unexpected dto: %+v", got)
	}
}

func TestUploadInvoice_BindError(t *testing.T) {
	e := newEchoWithValidator()
	h := NewInvoiceHandler(newInvoiceUsecase(&invoicemock.Repo{}, kycmock.AllVerified()), "USD")

	req := httptest.NewRequest(stdhttp.MethodPost, "/invoices", strings.NewReader(`{"amount":`)) // broken JSON
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.UploadInvoice(c); err != nil {
		t.Fatalf("UploadInvoice error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &er)
	if er.Error != "invalid body" {
		t.Fatalf("error = %q, want %q", er.Error, "invalid body")
	}
}

func TestUploadInvoice_ValidationError(t *testing.T) {
	e := newEchoWithValidator()
	h := NewInvoiceHandler(newInvoiceUsecase(&invoicemock.Repo{}, kycmock.AllVerified()), "USD")

	// invalid: amount non-positive, currency not a 3-letter code, no due date or description
	reqBody := map[string]any{
		"amount":   0,
		"currency": "us dollars",
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/invoices", mustJSON(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.UploadInvoice(c); err != nil {
		t.Fatalf("UploadInvoice error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if er.Error != "validation failed" {
		t.Fatalf("error = %q, want %q", er.Error, "validation failed")
	}
	if !containsFieldMsg(er.Details, "Amount", "is required") {
		t.Fatalf("missing amount detail: %+v", er.Details)
	}
	if !containsFieldMsg(er.Details, "Currency", "3-letter currency code") {
		t.Fatalf("missing currency detail: %+v", er.Details)
	}
	if !containsFieldMsg(er.Details, "Description", "is required") {
		t.Fatalf("missing description detail: %+v", er.Details)
	}
}

func TestUploadInvoice_UnverifiedBusiness(t *testing.T) {
	e := newEchoWithValidator()
	verifier := &kycmock.Verifier{Verified: map[string]bool{}} // nobody verified
	h := NewInvoiceHandler(newInvoiceUsecase(&invoicemock.Repo{}, verifier), "USD")

	reqBody := map[string]any{
		"amount":      100000,
		"due_date":    testNow.Add(30 * 24 * time.Hour),
		"description": "Net-30 services",
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/invoices", mustJSON(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Fx-Actor-Id", testBusinessID)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.UploadInvoice(c); err != nil {
		t.Fatalf("UploadInvoice error: %v", err)
	}
	if rec.Code != stdhttp.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestGetInvoice_NotFound(t *testing.T) {
	e := echo.New()
	h := NewInvoiceHandler(newInvoiceUsecase(&invoicemock.Repo{}, kycmock.AllVerified()), "USD")

	req := httptest.NewRequest(stdhttp.MethodGet, "/invoices/xxx", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("invoice_id")
	c.SetParamValues("xxx")

	if err := h.GetInvoice(c); err != nil {
		t.Fatalf("GetInvoice error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestVerifyInvoice_AdminGate(t *testing.T) {
	e := echo.New()
	pending := &invoicedomain.Invoice{
		InvoiceID:  "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		BusinessID: testBusinessID,
		Amount:     100000,
		Status:     invoicedomain.StatusPending,
	}
	repo := &invoicemock.Repo{
		GetByInvoiceIDForUpdateFn: func(ctx context.Context, invoiceID string) (*invoicedomain.Invoice, error) {
			return pending, nil
		},
	}
	h := NewInvoiceHandler(newInvoiceUsecase(repo, kycmock.AllVerified()), "USD")

	call := func(actor string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(stdhttp.MethodPost, "/invoices/aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa/verify", nil)
		req.Header.Set("Fx-Actor-Id", actor)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("invoice_id")
		c.SetParamValues("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
		if err := h.VerifyInvoice(c); err != nil {
			t.Fatalf("VerifyInvoice error: %v", err)
		}
		return rec
	}

	if rec := call(testBusinessID); rec.Code != stdhttp.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	rec := call(testAdminID)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var dto uc.InvoiceDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if dto.Status != string(invoicedomain.StatusVerified) {
		t.Fatalf("status = %s, want verified", dto.Status)
	}
}

func TestListInvoices_RequiresFilter(t *testing.T) {
	e := echo.New()
	h := NewInvoiceHandler(newInvoiceUsecase(&invoicemock.Repo{}, kycmock.AllVerified()), "USD")

	req := httptest.NewRequest(stdhttp.MethodGet, "/invoices", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListInvoices(c); err != nil {
		t.Fatalf("ListInvoices error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestOpenDispute_Flow(t *testing.T) {
	e := echo.New()
	inv := &invoicedomain.Invoice{
		InvoiceID:     "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		BusinessID:    testBusinessID,
		Amount:        100000,
		Status:        invoicedomain.StatusFunded,
		DisputeStatus: invoicedomain.DisputeNone,
	}
	repo := &invoicemock.Repo{
		GetByInvoiceIDForUpdateFn: func(ctx context.Context, invoiceID string) (*invoicedomain.Invoice, error) {
			return inv, nil
		},
	}
	h := NewInvoiceHandler(newInvoiceUsecase(repo, kycmock.AllVerified()), "USD")

	call := func(fn func(echo.Context) error, actor string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(stdhttp.MethodPost, "/invoices/aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa/dispute", nil)
		req.Header.Set("Fx-Actor-Id", actor)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("invoice_id")
		c.SetParamValues("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
		if err := fn(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		return rec
	}

	// a stranger cannot open a dispute
	if rec := call(h.OpenDispute, "dddddddddddddddddddddddddddddddd"); rec.Code != stdhttp.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}

	rec := call(h.OpenDispute, testBusinessID)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var m map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &m)
	if m["dispute_status"] != "disputed" {
		t.Fatalf("dispute_status = %q", m["dispute_status"])
	}

	// review and resolve are admin-only
	if rec := call(h.ReviewDispute, testBusinessID); rec.Code != stdhttp.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if rec := call(h.ReviewDispute, testAdminID); rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec := call(h.ResolveDispute, testAdminID); rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	// resolving twice is a conflict
	if rec := call(h.ResolveDispute, testAdminID); rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}
