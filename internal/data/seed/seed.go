// Package seed contains the demo customers and accounts a fresh ledger
// starts with.
package seed

import (
	"bytes"
	_ "embed" // Used to embed the seed file.
	"encoding/json"
	"fmt"
	"io"

	"github.com/rschio/ledger/internal/core/ledger"
	"github.com/shopspring/decimal"
)

var (
	//go:embed seed.json
	demo []byte
)

type seedFile struct {
	Customers []seedCustomer `json:"customers"`
}

type seedCustomer struct {
	Name     string        `json:"name"`
	ID       string        `json:"id"`
	Accounts []seedAccount `json:"accounts"`
}

type seedAccount struct {
	Number  string          `json:"number"`
	Balance decimal.Decimal `json:"balance"`
}

// Load registers the embedded demo data in svc.
func Load(svc *ledger.Service) error {
	return LoadFrom(bytes.NewReader(demo), svc)
}

// LoadFrom registers the customers described by the JSON document in r.
func LoadFrom(r io.Reader, svc *ledger.Service) error {
	var f seedFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return fmt.Errorf("decoding seed: %w", err)
	}

	for _, sc := range f.Customers {
		c, err := ledger.NewCustomer(sc.Name, sc.ID)
		if err != nil {
			return fmt.Errorf("seeding customer %q: %w", sc.ID, err)
		}

		for _, sa := range sc.Accounts {
			a, err := ledger.NewAccount(sa.Number, sa.Balance)
			if err != nil {
				return fmt.Errorf("seeding account %q: %w", sa.Number, err)
			}
			if err := c.AddAccount(a); err != nil {
				return fmt.Errorf("seeding account %q: %w", sa.Number, err)
			}
		}

		if err := svc.AddCustomer(c); err != nil {
			return fmt.Errorf("seeding customer %q: %w", sc.ID, err)
		}
	}

	return nil
}
