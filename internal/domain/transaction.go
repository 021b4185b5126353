package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ============================================================
// Transactions
// ============================================================

// Direction is the semantic category of a transaction: whether it
// increases or decreases the displayed balance.
type Direction string

const (
	DirectionCredit Direction = "credit"
	DirectionDebit  Direction = "debit"
)

// Transaction is a single statement entry. Amount is always a positive
// magnitude; the sign is carried by Direction, assigned at ingestion.
type Transaction struct {
	TransactionID string          `json:"transaction_id"`
	ReferenceNo   string          `json:"reference_no"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	Description   string          `json:"description"`
	CreatedAt     string          `json:"created_at"`
	AccountNo     string          `json:"account_no"`

	// Direction is derived from Type by CustomerData.Normalize and is
	// not part of the wire format.
	Direction Direction `json:"-"`
}

// SignedAmount returns the amount with the direction applied: positive
// for credits, negated for debits.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Direction == DirectionDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}

// ClassifyType maps a free-text transaction type label to a direction.
// Labels containing "Deposit" or "Interest" (case-sensitive) are
// credits; everything else is a debit. The substring match is loose on
// purpose to stay compatible with the bank's label vocabulary, which is
// why the result is computed once at ingestion rather than per render.
func ClassifyType(label string) Direction {
	if strings.Contains(label, "Deposit") || strings.Contains(label, "Interest") {
		return DirectionCredit
	}
	return DirectionDebit
}
