package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind is the direction of a ledger event.
type Kind string

// Set of transaction kinds. A transfer is recorded as a Withdrawal on the
// source account and a Deposit on the target account.
const (
	Deposit    Kind = "Deposit"
	Withdrawal Kind = "Withdrawal"
)

// Transaction is one recorded balance change. It is created by the Account
// it belongs to and never changes afterwards.
type Transaction struct {
	ID           uuid.UUID
	Kind         Kind
	Amount       decimal.Decimal
	Counterparty string
	Date         time.Time
}

func newTransaction(kind Kind, amount decimal.Decimal, counterparty string) Transaction {
	return Transaction{
		ID:           uuid.New(),
		Kind:         kind,
		Amount:       amount,
		Counterparty: counterparty,
		Date:         time.Now().UTC().Round(time.Microsecond),
	}
}

// Signed returns the amount with the sign it applies to the balance.
func (t Transaction) Signed() decimal.Decimal {
	if t.Kind == Withdrawal {
		return t.Amount.Neg()
	}
	return t.Amount
}

// String renders the transaction as "Deposit: $200.00".
func (t Transaction) String() string {
	return fmt.Sprintf("%s: $%s", t.Kind, t.Amount.StringFixed(2))
}
