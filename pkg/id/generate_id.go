// Package id generates the opaque handles used for invoices, bids,
// escrows, investments and ledger accounts.
package id

import (
	"crypto/rand"
	"encoding/hex"
)

const rawBytes = 16

// NewID32 returns exactly 32 lowercase hex characters, no separators
// or prefixes. Handles are not sortable; ordering always comes from
// created-at columns.
func NewID32() string {
	b := make([]byte, rawBytes)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
