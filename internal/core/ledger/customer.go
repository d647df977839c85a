package ledger

import (
	"fmt"
	"sync"
)

// Customer groups the accounts owned by one identity.
type Customer struct {
	name string
	id   string

	mu       sync.Mutex
	accounts []*Account

	// reserve is set once the customer is registered in a Service and
	// enforces account number uniqueness across that Service.
	reserve func(*Account) error
}

// NewCustomer creates a customer without accounts.
func NewCustomer(name, id string) (*Customer, error) {
	if id == "" {
		return nil, fmt.Errorf("customer id: %w", ErrInvalidID)
	}

	return &Customer{name: name, id: id}, nil
}

func (c *Customer) Name() string { return c.name }
func (c *Customer) ID() string   { return c.id }

// Accounts returns the customer's accounts in the order they were added.
// The slice is a copy; its elements are the live accounts.
func (c *Customer) Accounts() []*Account {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*Account, len(c.accounts))
	copy(out, c.accounts)
	return out
}

// AddAccount attaches a to the customer.
func (c *Customer) AddAccount(a *Account) error {
	if a == nil {
		return fmt.Errorf("account: %w", ErrNotFound)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, acc := range c.accounts {
		if acc.number == a.number {
			return fmt.Errorf("account %q: %w", a.number, ErrDuplicateAccount)
		}
	}

	if err := a.claim(); err != nil {
		return err
	}
	if c.reserve != nil {
		if err := c.reserve(a); err != nil {
			a.release()
			return err
		}
	}

	c.accounts = append(c.accounts, a)
	return nil
}
