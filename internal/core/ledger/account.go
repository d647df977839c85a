package ledger

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// Account holds one balance and the history of events that produced it.
// An Account is a handle: every copy of the pointer sees the same state.
type Account struct {
	number string

	mu      sync.Mutex
	owned   bool
	initial decimal.Decimal
	balance decimal.Decimal
	history []Transaction
}

// NewAccount creates an account with a non-negative opening balance.
func NewAccount(number string, balance decimal.Decimal) (*Account, error) {
	if number == "" {
		return nil, fmt.Errorf("account number: %w", ErrInvalidID)
	}
	if balance.IsNegative() {
		return nil, fmt.Errorf("opening balance %s: %w", balance, ErrInvalidAmount)
	}

	return &Account{
		number:  number,
		initial: balance,
		balance: balance,
	}, nil
}

// Number returns the account number.
func (a *Account) Number() string {
	return a.number
}

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// OpeningBalance returns the balance the account was created with.
func (a *Account) OpeningBalance() decimal.Decimal {
	return a.initial
}

// History returns a copy of the transactions in the order they happened.
func (a *Account) History() []Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]Transaction, len(a.history))
	copy(out, a.history)
	return out
}

// Deposit credits amount to the account. The only failure is a
// non-positive amount, in which case nothing changes.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if err := validAmount(amount); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.deposit(amount, "")
	return nil
}

// Withdraw debits amount from the account. It fails with
// ErrInsufficientFunds when amount exceeds the balance.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if err := validAmount(amount); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.withdraw(amount, "")
}

// Transfer moves amount from a to target. The target is credited only when
// the debit on a succeeded.
func (a *Account) Transfer(target *Account, amount decimal.Decimal) error {
	if err := validAmount(amount); err != nil {
		return err
	}
	if target == nil {
		return fmt.Errorf("target account: %w", ErrNotFound)
	}
	if target == a || target.number == a.number {
		return ErrSameAccount
	}

	// Lock in account number order so that concurrent transfers in opposite
	// directions cannot deadlock.
	first, second := a, target
	if second.number < first.number {
		first, second = second, first
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if err := a.withdraw(amount, target.number); err != nil {
		return err
	}
	target.deposit(amount, a.number)

	return nil
}

// claim marks the account as owned by a customer. An account belongs to at
// most one customer.
func (a *Account) claim() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.owned {
		return fmt.Errorf("account %q already owned: %w", a.number, ErrDuplicateAccount)
	}
	a.owned = true
	return nil
}

func (a *Account) release() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.owned = false
}

// deposit must be called with a.mu held. It cannot fail, which is what makes
// Transfer safe without a compensating step.
func (a *Account) deposit(amount decimal.Decimal, counterparty string) {
	a.balance = a.balance.Add(amount)
	a.history = append(a.history, newTransaction(Deposit, amount, counterparty))
}

// withdraw must be called with a.mu held.
func (a *Account) withdraw(amount decimal.Decimal, counterparty string) error {
	if amount.GreaterThan(a.balance) {
		return fmt.Errorf("account %s balance %s, requested %s: %w",
			a.number, a.balance.StringFixed(2), amount.StringFixed(2), ErrInsufficientFunds)
	}

	a.balance = a.balance.Sub(amount)
	a.history = append(a.history, newTransaction(Withdrawal, amount, counterparty))
	return nil
}

func validAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("amount %s: %w", amount, ErrInvalidAmount)
	}
	return nil
}
