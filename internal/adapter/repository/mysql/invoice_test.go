package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	invoiceDomain "quickfactor-backend/internal/domain/invoice"
	"quickfactor-backend/pkg/id"
)

func makeInvoice(invoiceID, businessID string) *invoiceDomain.Invoice {
	return &invoiceDomain.Invoice{
		InvoiceID:     invoiceID,
		BusinessID:    businessID,
		Amount:        100_000,
		Currency:      "USD",
		DueDate:       time.Now().UTC().Add(30 * 24 * time.Hour),
		Description:   "Net-30 services",
		Status:        invoiceDomain.StatusPending,
		DisputeStatus: invoiceDomain.DisputeNone,
	}
}

func TestInvoiceCreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewInvoiceRepository(db)
	ctx := context.Background()

	invoiceID := id.NewID32()
	business := id.NewID32()

	inv := makeInvoice(invoiceID, business)
	if err := repo.Create(ctx, inv); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if inv.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}

	got, err := repo.GetByInvoiceID(ctx, invoiceID)
	if err != nil {
		t.Fatalf("GetByInvoiceID: %v", err)
	}
	if got.InvoiceID != invoiceID || got.BusinessID != business || got.Status != invoiceDomain.StatusPending {
		t.Errorf("unexpected invoice: %+v", got)
	}
}

func TestInvoiceSaveUpdates(t *testing.T) {
	db := openTestDB(t)
	repo := NewInvoiceRepository(db)
	ctx := context.Background()

	invoiceID := id.NewID32()
	inv := makeInvoice(invoiceID, "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	if err := repo.Create(ctx, inv); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := inv.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if err := repo.Save(ctx, inv); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByInvoiceID(ctx, invoiceID)
	if err != nil {
		t.Fatalf("GetByInvoiceID: %v", err)
	}
	if got.Status != invoiceDomain.StatusVerified {
		t.Errorf("status not updated, got=%s", got.Status)
	}
}

func TestInvoiceGet_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewInvoiceRepository(db)

	_, err := repo.GetByInvoiceID(context.Background(), "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestInvoiceListByStatusAndBusiness(t *testing.T) {
	db := openTestDB(t)
	repo := NewInvoiceRepository(db)
	ctx := context.Background()

	b1 := "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	b2 := "cccccccccccccccccccccccccccccccc"

	first := makeInvoice("11111111111111111111111111111111", b1)
	second := makeInvoice("22222222222222222222222222222222", b1)
	second.Status = invoiceDomain.StatusVerified
	other := makeInvoice("33333333333333333333333333333333", b2)
	for _, inv := range []*invoiceDomain.Invoice{first, second, other} {
		if err := repo.Create(ctx, inv); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	pending, err := repo.ListByStatus(ctx, invoiceDomain.StatusPending)
	if err != nil {
		t.Fatalf("ListByStatus: %v", err)
	}
	if len(pending) != 2 || pending[0].InvoiceID != first.InvoiceID {
		t.Fatalf("unexpected pending list: %+v", pending)
	}

	mine, err := repo.ListByBusiness(ctx, b1)
	if err != nil {
		t.Fatalf("ListByBusiness: %v", err)
	}
	if len(mine) != 2 || mine[0].InvoiceID != first.InvoiceID || mine[1].InvoiceID != second.InvoiceID {
		t.Fatalf("unexpected business list: %+v", mine)
	}
}

func TestInvoiceAppendAndListPayments(t *testing.T) {
	db := openTestDB(t)
	repo := NewInvoiceRepository(db)
	ctx := context.Background()

	invoiceID := id.NewID32()
	inv := makeInvoice(invoiceID, "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	if err := repo.Create(ctx, inv); err != nil {
		t.Fatalf("Create: %v", err)
	}

	now := time.Now().UTC()
	for i, amount := range []int64{400, 600} {
		rec, _, err := inv.RecordPayment(amount, id.NewID32(), now.Add(time.Duration(i)*time.Hour))
		if err != nil {
			t.Fatalf("RecordPayment: %v", err)
		}
		if err := repo.AppendPayment(ctx, rec); err != nil {
			t.Fatalf("AppendPayment: %v", err)
		}
	}

	recs, err := repo.ListPayments(ctx, invoiceID)
	if err != nil {
		t.Fatalf("ListPayments: %v", err)
	}
	if len(recs) != 2 || recs[0].Amount != 400 || recs[1].Amount != 600 {
		t.Fatalf("unexpected payments: %+v", recs)
	}

	// payments for an unknown invoice come back empty, not as an error
	none, err := repo.ListPayments(ctx, "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee")
	if err != nil || len(none) != 0 {
		t.Fatalf("unexpected: recs=%v err=%v", none, err)
	}
}
