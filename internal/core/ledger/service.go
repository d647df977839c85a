// Package ledger contains the banking domain: customers, their accounts and
// the append-only transaction history of every account.
package ledger

import (
	"fmt"
	"sync"
)

// Service is the registry of every customer and account. Lookups return
// live handles, so mutations through them are visible to the registry.
type Service struct {
	mu        sync.RWMutex
	customers []*Customer
	byID      map[string]*Customer
	byNumber  map[string]*Account
}

// NewService creates an empty registry.
func NewService() *Service {
	return &Service{
		byID:     make(map[string]*Customer),
		byNumber: make(map[string]*Account),
	}
}

// AddCustomer registers c together with the accounts it already owns. It
// fails without side effects when the customer id or any of its account
// numbers is already known.
func (s *Service) AddCustomer(c *Customer) error {
	if c == nil {
		return fmt.Errorf("customer: %w", ErrNotFound)
	}

	// Lock order is customer then registry, same as Customer.AddAccount.
	c.mu.Lock()
	defer c.mu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.reserve != nil {
		return fmt.Errorf("customer %q already registered: %w", c.id, ErrDuplicateCustomer)
	}
	if _, exists := s.byID[c.id]; exists {
		return fmt.Errorf("customer %q: %w", c.id, ErrDuplicateCustomer)
	}
	for _, a := range c.accounts {
		if _, exists := s.byNumber[a.number]; exists {
			return fmt.Errorf("account %q: %w", a.number, ErrDuplicateAccount)
		}
	}

	for _, a := range c.accounts {
		s.byNumber[a.number] = a
	}
	s.byID[c.id] = c
	s.customers = append(s.customers, c)
	c.reserve = s.reserveAccount

	return nil
}

func (s *Service) reserveAccount(a *Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byNumber[a.number]; exists {
		return fmt.Errorf("account %q: %w", a.number, ErrDuplicateAccount)
	}
	s.byNumber[a.number] = a

	return nil
}

// FindCustomerByID returns the customer with the given id.
func (s *Service) FindCustomerByID(id string) (*Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("customer %q: %w", id, ErrNotFound)
	}
	return c, nil
}

// FindAccountByNumber returns the account with the given number, whichever
// customer owns it.
func (s *Service) FindAccountByNumber(number string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.byNumber[number]
	if !ok {
		return nil, fmt.Errorf("account %q: %w", number, ErrNotFound)
	}
	return a, nil
}

// Customers returns every registered customer in registration order.
func (s *Service) Customers() []*Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Customer, len(s.customers))
	copy(out, s.customers)
	return out
}
