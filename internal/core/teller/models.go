package teller

import (
	"time"

	"github.com/rschio/ledger/internal/core/ledger"
	"github.com/shopspring/decimal"
)

type CustomerInfo struct {
	Name     string
	ID       string
	Accounts []AccountInfo
}

type AccountInfo struct {
	Number       string
	Balance      decimal.Decimal
	Transactions []ledger.Transaction
}

type TransferInfo struct {
	From   AccountInfo
	To     AccountInfo
	Amount decimal.Decimal
	Date   time.Time
}

func toCustomerInfo(c *ledger.Customer) CustomerInfo {
	accounts := c.Accounts()
	info := CustomerInfo{
		Name:     c.Name(),
		ID:       c.ID(),
		Accounts: make([]AccountInfo, len(accounts)),
	}
	for i, a := range accounts {
		info.Accounts[i] = toAccountInfo(a)
	}
	return info
}

func toAccountInfo(a *ledger.Account) AccountInfo {
	return AccountInfo{
		Number:       a.Number(),
		Balance:      a.Balance(),
		Transactions: a.History(),
	}
}
