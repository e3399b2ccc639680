// Package model defines the canonical transaction record and the derived
// aggregate types computed from it.
package model

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Uncategorized is the sentinel category substituted when the source data
// supplies no category. Transactions never carry an empty category.
const Uncategorized = "Uncategorized"

// Transaction represents a single financial transaction parsed from one CSV
// data row. Once constructed it is never mutated; every derived view is a new
// collection.
type Transaction struct {
	Timestamp        time.Time
	Type             string
	Description      string
	Status           string
	Amount           decimal.Decimal // base currency; negative denotes a refund/credit
	Card             string
	CardHolder       string
	OriginalAmount   *decimal.Decimal
	OriginalCurrency string // empty when absent
	Cashback         *decimal.Decimal
	Category         string // never empty after ingestion
}

// CashbackOrZero returns the cashback amount, treating an absent value as 0.
func (t Transaction) CashbackOrZero() decimal.Decimal {
	if t.Cashback == nil {
		return decimal.Zero
	}
	return *t.Cashback
}

// Fingerprint creates a hash for duplicate detection over the fields that
// identify a transaction in practice: posting day, amount, description, card.
func (t Transaction) Fingerprint() string {
	data := fmt.Sprintf("%s|%s|%s|%s",
		t.Timestamp.Format("2006-01-02"),
		t.Amount.StringFixed(2),
		strings.ToLower(strings.TrimSpace(t.Description)),
		t.Card)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
