package console

import (
	"fmt"
	"io"

	"github.com/rschio/ledger/internal/core/ledger"
	"github.com/rschio/ledger/internal/core/teller"
)

func writeCustomer(w io.Writer, c teller.CustomerInfo) {
	fmt.Fprintf(w, "Customer Name: %s\n", c.Name)
	fmt.Fprintf(w, "Customer ID: %s\n", c.ID)
	fmt.Fprintln(w, "Accounts:")
	for _, a := range c.Accounts {
		writeAccount(w, a)
		fmt.Fprintln(w, "----------------------")
	}
}

func writeAccount(w io.Writer, a teller.AccountInfo) {
	fmt.Fprintf(w, "Account Number: %s\n", a.Number)
	fmt.Fprintf(w, "Balance: $%s\n", a.Balance.StringFixed(2))
	fmt.Fprintln(w, "Transactions:")
	for _, t := range a.Transactions {
		fmt.Fprintf(w, "  %s\n", details(t))
	}
}

func details(t ledger.Transaction) string {
	if t.Counterparty == "" {
		return t.String()
	}
	if t.Kind == ledger.Withdrawal {
		return fmt.Sprintf("%s (transfer to %s)", t, t.Counterparty)
	}
	return fmt.Sprintf("%s (transfer from %s)", t, t.Counterparty)
}
