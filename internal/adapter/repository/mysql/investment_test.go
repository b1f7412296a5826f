package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	investmentDomain "quickfactor-backend/internal/domain/investment"
	"quickfactor-backend/pkg/id"
)

func TestInvestmentSavePersistsInsurance(t *testing.T) {
	db := openTestDB(t)
	repo := NewInvestmentRepository(db)
	ctx := context.Background()

	invoiceID := id.NewID32()
	investm := &investmentDomain.Investment{
		InvestmentID: id.NewID32(),
		InvoiceID:    invoiceID,
		InvestorID:   id.NewID32(),
		Amount:       100_000,
		FundedAt:     time.Now().UTC(),
		Status:       investmentDomain.StatusActive,
	}
	if err := repo.Create(ctx, investm); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := investm.AddInsurance(id.NewID32(), 80, 1_600); err != nil {
		t.Fatalf("AddInsurance: %v", err)
	}
	if err := repo.Save(ctx, investm); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByInvoiceID(ctx, invoiceID)
	if err != nil {
		t.Fatalf("GetByInvoiceID: %v", err)
	}
	if len(got.Insurance) != 1 || !got.HasActiveInsurance() {
		t.Fatalf("insurance not preloaded: %+v", got)
	}
	if got.Insurance[0].CoverageAmount != 80_000 {
		t.Errorf("coverage=%d", got.Insurance[0].CoverageAmount)
	}

	// flipping the coverage on a claim survives a round trip
	if claim := got.ProcessInsuranceClaim(); claim == nil {
		t.Fatal("ProcessInsuranceClaim returned nil")
	}
	if err := repo.Save(ctx, got); err != nil {
		t.Fatalf("Save after claim: %v", err)
	}

	again, err := repo.GetByInvestmentID(ctx, got.InvestmentID)
	if err != nil {
		t.Fatalf("GetByInvestmentID: %v", err)
	}
	if again.HasActiveInsurance() {
		t.Error("claimed coverage still active after reload")
	}
}

func TestInvestmentGet_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewInvestmentRepository(db)
	ctx := context.Background()

	if _, err := repo.GetByInvoiceID(ctx, "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	if _, err := repo.GetByInvestmentID(ctx, "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}
