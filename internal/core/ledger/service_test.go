package ledger_test

import (
	"errors"
	"testing"

	"github.com/rschio/ledger/internal/core/ledger"
)

func newCustomer(t *testing.T, name, id string, accounts ...*ledger.Account) *ledger.Customer {
	t.Helper()
	c, err := ledger.NewCustomer(name, id)
	if err != nil {
		t.Fatalf("failed to create customer %s: %v", id, err)
	}
	for _, a := range accounts {
		if err := c.AddAccount(a); err != nil {
			t.Fatalf("failed to add account %s: %v", a.Number(), err)
		}
	}
	return c
}

func newService(t *testing.T) *ledger.Service {
	t.Helper()
	svc := ledger.NewService()
	alice := newCustomer(t, "Alice", "C001", newAccount(t, "A001", "1000.00"))
	bob := newCustomer(t, "Bob", "C002", newAccount(t, "A002", "500.00"))
	for _, c := range []*ledger.Customer{alice, bob} {
		if err := svc.AddCustomer(c); err != nil {
			t.Fatalf("failed to add customer %s: %v", c.ID(), err)
		}
	}
	return svc
}

func TestFindCustomerByID(t *testing.T) {
	svc := newService(t)

	tests := []struct {
		name     string
		id       string
		wantName string
		wantErr  error
	}{
		{"first", "C001", "Alice", nil},
		{"second", "C002", "Bob", nil},
		{"unknown", "C999", "", ledger.ErrNotFound},
		{"empty", "", "", ledger.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := svc.FindCustomerByID(tt.id)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got err %v want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if c.Name() != tt.wantName {
				t.Fatalf("got name %q want %q", c.Name(), tt.wantName)
			}
		})
	}
}

func TestFindAccountByNumber(t *testing.T) {
	svc := newService(t)

	a, err := svc.FindAccountByNumber("A002")
	if err != nil {
		t.Fatalf("find A002: %v", err)
	}
	assertBalance(t, a, "500")

	if _, err := svc.FindAccountByNumber("A404"); !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("got err %v want %v", err, ledger.ErrNotFound)
	}
}

func TestLookupReturnsLiveHandle(t *testing.T) {
	svc := newService(t)

	a, err := svc.FindAccountByNumber("A001")
	if err != nil {
		t.Fatalf("find A001: %v", err)
	}
	if err := a.Deposit(dec("200")); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	c, err := svc.FindCustomerByID("C001")
	if err != nil {
		t.Fatalf("find C001: %v", err)
	}
	assertBalance(t, c.Accounts()[0], "1200")

	again, _ := svc.FindAccountByNumber("A001")
	if again != a {
		t.Fatalf("lookups returned different handles for the same account")
	}
}

func TestAddCustomerDuplicates(t *testing.T) {
	svc := newService(t)

	dupID := newCustomer(t, "Carol", "C001")
	if err := svc.AddCustomer(dupID); !errors.Is(err, ledger.ErrDuplicateCustomer) {
		t.Fatalf("got err %v want %v", err, ledger.ErrDuplicateCustomer)
	}

	dupAccount := newCustomer(t, "Carol", "C003", newAccount(t, "A003", "1"), newAccount(t, "A001", "1"))
	if err := svc.AddCustomer(dupAccount); !errors.Is(err, ledger.ErrDuplicateAccount) {
		t.Fatalf("got err %v want %v", err, ledger.ErrDuplicateAccount)
	}

	// A rejected customer leaves no trace in the registry.
	if _, err := svc.FindCustomerByID("C003"); !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("got err %v want %v", err, ledger.ErrNotFound)
	}
	if _, err := svc.FindAccountByNumber("A003"); !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("got err %v want %v", err, ledger.ErrNotFound)
	}
	if n := len(svc.Customers()); n != 2 {
		t.Fatalf("got %d customers want 2", n)
	}

	// Registering the same customer twice is rejected too.
	bob, _ := svc.FindCustomerByID("C002")
	if err := ledger.NewService().AddCustomer(bob); !errors.Is(err, ledger.ErrDuplicateCustomer) {
		t.Fatalf("got err %v want %v", err, ledger.ErrDuplicateCustomer)
	}
}

func TestAddAccountAfterRegistration(t *testing.T) {
	svc := newService(t)
	bob, err := svc.FindCustomerByID("C002")
	if err != nil {
		t.Fatalf("find C002: %v", err)
	}

	if err := bob.AddAccount(newAccount(t, "A001", "0")); !errors.Is(err, ledger.ErrDuplicateAccount) {
		t.Fatalf("got err %v want %v", err, ledger.ErrDuplicateAccount)
	}
	if err := bob.AddAccount(newAccount(t, "A002", "0")); !errors.Is(err, ledger.ErrDuplicateAccount) {
		t.Fatalf("got err %v want %v", err, ledger.ErrDuplicateAccount)
	}

	if err := bob.AddAccount(newAccount(t, "A003", "10")); err != nil {
		t.Fatalf("add A003: %v", err)
	}
	a, err := svc.FindAccountByNumber("A003")
	if err != nil {
		t.Fatalf("find A003: %v", err)
	}
	assertBalance(t, a, "10")

	accounts := bob.Accounts()
	if len(accounts) != 2 || accounts[0].Number() != "A002" || accounts[1].Number() != "A003" {
		t.Fatalf("wrong accounts order for C002")
	}
}

func TestCustomersOrder(t *testing.T) {
	svc := newService(t)

	var ids []string
	for _, c := range svc.Customers() {
		ids = append(ids, c.ID())
	}
	if len(ids) != 2 || ids[0] != "C001" || ids[1] != "C002" {
		t.Fatalf("got customers %v want [C001 C002]", ids)
	}
}

func TestNewCustomerEmptyID(t *testing.T) {
	if _, err := ledger.NewCustomer("Nobody", ""); !errors.Is(err, ledger.ErrInvalidID) {
		t.Fatalf("got err %v want %v", err, ledger.ErrInvalidID)
	}
}

func TestAccountHasSingleOwner(t *testing.T) {
	svc := newService(t)
	a1, err := svc.FindAccountByNumber("A001")
	if err != nil {
		t.Fatalf("find A001: %v", err)
	}

	carol := newCustomer(t, "Carol", "C003")
	if err := carol.AddAccount(a1); !errors.Is(err, ledger.ErrDuplicateAccount) {
		t.Fatalf("got err %v want %v", err, ledger.ErrDuplicateAccount)
	}
	if n := len(carol.Accounts()); n != 0 {
		t.Fatalf("got %d accounts for C003 want 0", n)
	}

	other := ledger.NewService()
	if err := other.AddCustomer(carol); err != nil {
		t.Fatalf("add C003: %v", err)
	}
	if _, err := other.FindAccountByNumber("A001"); !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("got err %v want %v", err, ledger.ErrNotFound)
	}
}

func TestRejectedAccountCanBeAttachedElsewhere(t *testing.T) {
	svc := newService(t)
	bob, _ := svc.FindCustomerByID("C002")

	// A001 is taken in the registry by another customer, so the attach
	// fails and leaves the account free.
	a := newAccount(t, "A001", "5")
	if err := bob.AddAccount(a); !errors.Is(err, ledger.ErrDuplicateAccount) {
		t.Fatalf("got err %v want %v", err, ledger.ErrDuplicateAccount)
	}

	carol := newCustomer(t, "Carol", "C003")
	if err := carol.AddAccount(a); err != nil {
		t.Fatalf("attach rejected account to C003: %v", err)
	}
}
