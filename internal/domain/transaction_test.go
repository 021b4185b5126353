package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Team-SMDRS/customer-dashboard/internal/domain"
)

func TestClassifyType(t *testing.T) {
	cases := []struct {
		label string
		want  domain.Direction
	}{
		{"Deposit", domain.DirectionCredit},
		{"Cash Deposit", domain.DirectionCredit},
		{"Fixed Deposit Interest", domain.DirectionCredit},
		{"Interest", domain.DirectionCredit},
		{"Withdrawal", domain.DirectionDebit},
		{"ATM Withdrawal", domain.DirectionDebit},
		{"Transfer", domain.DirectionDebit},
		{"", domain.DirectionDebit},
		// Known looseness of the substring rule, kept for compatibility
		// with the bank's label vocabulary.
		{"Deposit Reversal", domain.DirectionCredit},
		// Match is case-sensitive.
		{"deposit", domain.DirectionDebit},
	}

	for _, tc := range cases {
		if got := domain.ClassifyType(tc.label); got != tc.want {
			t.Errorf("ClassifyType(%q) = %s, want %s", tc.label, got, tc.want)
		}
	}
}

func TestNormalize_TagsDirections(t *testing.T) {
	data := &domain.CustomerData{
		Transactions: []domain.Transaction{
			{TransactionID: "tx-1", Type: "Cash Deposit", Amount: decimal.NewFromInt(1000)},
			{TransactionID: "tx-2", Type: "Withdrawal", Amount: decimal.NewFromInt(250)},
		},
	}

	data.Normalize()

	if data.Transactions[0].Direction != domain.DirectionCredit {
		t.Errorf("expected tx-1 to be credit, got %s", data.Transactions[0].Direction)
	}
	if data.Transactions[1].Direction != domain.DirectionDebit {
		t.Errorf("expected tx-2 to be debit, got %s", data.Transactions[1].Direction)
	}
}

func TestSignedAmount(t *testing.T) {
	credit := domain.Transaction{Amount: decimal.NewFromInt(500), Direction: domain.DirectionCredit}
	debit := domain.Transaction{Amount: decimal.NewFromInt(500), Direction: domain.DirectionDebit}

	if !credit.SignedAmount().Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected +500, got %s", credit.SignedAmount())
	}
	if !debit.SignedAmount().Equal(decimal.NewFromInt(-500)) {
		t.Errorf("expected -500, got %s", debit.SignedAmount())
	}
}
