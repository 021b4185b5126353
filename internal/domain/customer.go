// Package domain defines the core entities of the customer dashboard.
// All of them are read-only views over JSON served by the bank API; the
// client never mutates them after Normalize.
package domain

import "github.com/shopspring/decimal"

// ============================================================
// Customer / Profile
// ============================================================

// CustomerProfile is the identity block of the dashboard.
type CustomerProfile struct {
	CustomerID  string `json:"customer_id"`
	FullName    string `json:"full_name"`
	NIC         string `json:"nic"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
	DOB         string `json:"dob"`
	CreatedAt   string `json:"created_at"`
}

// ============================================================
// Accounts
// ============================================================

// Account is a savings account as served by the bank API. Status drives
// visual treatment only; the client never changes it.
type Account struct {
	AccID       string          `json:"acc_id"`
	AccountNo   string          `json:"account_no"`
	Balance     decimal.Decimal `json:"balance"`
	Status      string          `json:"status"`
	OpenedDate  string          `json:"opened_date"`
	BranchName  string          `json:"branch_name"`
	BranchID    string          `json:"branch_id"`
	SavingsPlan string          `json:"savings_plan"`
}

// Active reports whether the account is in active status.
func (a Account) Active() bool {
	return a.Status == "active"
}

// ============================================================
// Fixed deposits
// ============================================================

// FixedDeposit is a time-locked deposit. MaturityDate is expected to be
// on or after OpenedDate; progress computation guards the degenerate case.
type FixedDeposit struct {
	FDID                 string          `json:"fd_id"`
	FDAccountNo          string          `json:"fd_account_no"`
	Balance              decimal.Decimal `json:"balance"`
	OpenedDate           string          `json:"opened_date"`
	MaturityDate         string          `json:"maturity_date"`
	Status               string          `json:"status"`
	LinkedSavingsAccount string          `json:"linked_savings_account"`
	Duration             int             `json:"duration"`
	InterestRate         decimal.Decimal `json:"interest_rate"`
	BranchName           string          `json:"branch_name"`
}

// ============================================================
// Summary
// ============================================================

// Summary holds server-computed aggregates. It is a trust boundary: the
// client displays these values as-is and never recomputes or reconciles
// them against the raw collections.
type Summary struct {
	TotalAccounts       int             `json:"total_accounts"`
	ActiveAccounts      int             `json:"active_accounts"`
	TotalSavingsBalance decimal.Decimal `json:"total_savings_balance"`
	TotalFDBalance      decimal.Decimal `json:"total_fd_balance"`
	TotalBalance        decimal.Decimal `json:"total_balance"`
	TotalTransactions   int             `json:"total_transactions"`
	TotalFixedDeposits  int             `json:"total_fixed_deposits"`
	ActiveFixedDeposits int             `json:"active_fixed_deposits"`
}

// ============================================================
// Aggregate root
// ============================================================

// CustomerData bundles everything the dashboard renders. It is built once
// per successful authenticated fetch and held for the session.
type CustomerData struct {
	CustomerProfile CustomerProfile `json:"customer_profile"`
	Accounts        []Account       `json:"accounts"`
	Transactions    []Transaction   `json:"transactions"`
	FixedDeposits   []FixedDeposit  `json:"fixed_deposits"`
	Summary         Summary         `json:"summary"`
}

// Normalize tags every transaction with its credit/debit direction.
// Classification happens exactly once here, at ingestion, so renderers
// never re-derive it from the free-text type label.
func (d *CustomerData) Normalize() {
	for i := range d.Transactions {
		d.Transactions[i].Direction = ClassifyType(d.Transactions[i].Type)
	}
}
