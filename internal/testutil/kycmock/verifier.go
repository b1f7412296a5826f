package kycmock

import (
	"context"

	"quickfactor-backend/internal/domain/kyc"
)

var _ kyc.Verifier = (*Verifier)(nil)
var _ kyc.Registrar = (*Verifier)(nil)

// Verifier answers from a fixed set of verified business ids. Setting
// Err makes every lookup fail with it.
type Verifier struct {
	Verified map[string]bool
	Err      error
}

func AllVerified() *Verifier { return &Verifier{} }

func (m *Verifier) IsVerified(ctx context.Context, businessID string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	if m.Verified == nil {
		return true, nil
	}
	return m.Verified[businessID], nil
}

// MarkVerified adds the business to the set. Allocates Verified, so a
// mock that started as "everyone verified" becomes an explicit set.
func (m *Verifier) MarkVerified(ctx context.Context, businessID string) error {
	if m.Err != nil {
		return m.Err
	}
	if m.Verified == nil {
		m.Verified = map[string]bool{}
	}
	m.Verified[businessID] = true
	return nil
}
