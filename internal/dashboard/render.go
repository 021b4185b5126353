package dashboard

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Team-SMDRS/customer-dashboard/internal/display"
	"github.com/Team-SMDRS/customer-dashboard/internal/domain"
)

// Render writes the active tab to w from the held customer data. now is
// only used for fixed-deposit maturity progress.
func (c *Controller) Render(w io.Writer, now time.Time) error {
	c.mu.Lock()
	state, tab, data := c.state, c.tab, c.data
	c.mu.Unlock()

	if state != StateReady || data == nil {
		return &domain.ErrValidation{Field: "state", Message: "no customer data loaded"}
	}

	switch tab {
	case TabOverview:
		renderOverview(w, data)
	case TabAccounts:
		renderAccounts(w, data)
	case TabTransactions:
		renderTransactions(w, data)
	case TabFixedDeposits:
		renderFixedDeposits(w, data, now)
	}
	return nil
}

func renderOverview(w io.Writer, data *domain.CustomerData) {
	p := data.CustomerProfile
	fmt.Fprintf(w, "Welcome, %s\n", p.FullName)
	fmt.Fprintf(w, "Customer ID: %s    NIC: %s\n\n", p.CustomerID, p.NIC)

	s := data.Summary
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Total Balance\t%s\n", display.FormatCurrency(s.TotalBalance))
	fmt.Fprintf(tw, "Savings Balance\t%s\n", display.FormatCurrency(s.TotalSavingsBalance))
	fmt.Fprintf(tw, "Fixed Deposit Balance\t%s\n", display.FormatCurrency(s.TotalFDBalance))
	fmt.Fprintf(tw, "Accounts\t%d (%d active)\n", s.TotalAccounts, s.ActiveAccounts)
	fmt.Fprintf(tw, "Fixed Deposits\t%d (%d active)\n", s.TotalFixedDeposits, s.ActiveFixedDeposits)
	fmt.Fprintf(tw, "Transactions\t%d\n", s.TotalTransactions)
	tw.Flush()
}

func renderAccounts(w io.Writer, data *domain.CustomerData) {
	fmt.Fprintf(w, "Accounts (%d)\n\n", len(data.Accounts))
	for _, acc := range data.Accounts {
		badge := "INACTIVE"
		if acc.Active() {
			badge = "ACTIVE"
		}
		fmt.Fprintf(w, "%s  [%s]\n", acc.AccountNo, badge)
		fmt.Fprintf(w, "  Balance: %s\n", display.FormatCurrency(acc.Balance))
		fmt.Fprintf(w, "  Plan: %s    Branch: %s\n", acc.SavingsPlan, acc.BranchName)
		fmt.Fprintf(w, "  Opened: %s\n\n", display.FormatDate(acc.OpenedDate))
	}
}

func renderTransactions(w io.Writer, data *domain.CustomerData) {
	fmt.Fprintf(w, "Transactions (%d)\n\n", len(data.Transactions))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, tx := range data.Transactions {
		sign := "+"
		if tx.Direction == domain.DirectionDebit {
			sign = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s%s\t%s\n",
			display.FormatDateLong(tx.CreatedAt),
			tx.Type,
			tx.Description,
			sign,
			display.FormatCurrency(tx.Amount),
			tx.ReferenceNo,
		)
	}
	tw.Flush()
}

func renderFixedDeposits(w io.Writer, data *domain.CustomerData, now time.Time) {
	fmt.Fprintf(w, "Fixed Deposits (%d)\n\n", len(data.FixedDeposits))
	for _, fd := range data.FixedDeposits {
		progress := display.MaturityProgress(fd.OpenedDate, fd.MaturityDate, now)
		fmt.Fprintf(w, "%s  [%s]\n", fd.FDAccountNo, strings.ToUpper(fd.Status))
		fmt.Fprintf(w, "  Balance: %s    Rate: %s%%    Duration: %d months\n",
			display.FormatCurrency(fd.Balance), fd.InterestRate.String(), fd.Duration)
		fmt.Fprintf(w, "  Linked savings: %s\n", fd.LinkedSavingsAccount)
		fmt.Fprintf(w, "  %s  %d%% of term elapsed\n", progressBar(progress), progress)
		fmt.Fprintf(w, "  Opened: %s    Matures: %s\n\n",
			display.FormatDate(fd.OpenedDate), display.FormatDate(fd.MaturityDate))
	}
}

// progressBar renders a 20-cell bar like [##########----------].
func progressBar(pct int) string {
	filled := pct / 5
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", 20-filled) + "]"
}
