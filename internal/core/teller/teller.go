// Package teller resolves customers and accounts in the ledger and runs the
// operations a bank clerk performs on them.
package teller

import (
	"context"
	"log/slog"

	"github.com/rschio/ledger/internal/core/ledger"
	"github.com/rschio/ledger/internal/logger"
	"github.com/rschio/ledger/internal/session"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

// Core deals with the teller's business logic.
type Core struct {
	log *slog.Logger
	svc *ledger.Service
}

func NewCore(log *slog.Logger, svc *ledger.Service) *Core {
	return &Core{log: log, svc: svc}
}

// info logs with the source of the Core method that called it.
func (c *Core) info(ctx context.Context, msg string, args ...any) {
	logger.InfocCtx(ctx, c.log, 3, msg, args...)
}

func (c *Core) Customers(ctx context.Context) []CustomerInfo {
	_, span := session.AddSpan(ctx, "internal.core.teller.Customers")
	defer span.End()

	customers := c.svc.Customers()
	out := make([]CustomerInfo, len(customers))
	for i, cust := range customers {
		out[i] = toCustomerInfo(cust)
	}
	return out
}

func (c *Core) Customer(ctx context.Context, id string) (CustomerInfo, error) {
	_, span := session.AddSpan(ctx, "internal.core.teller.Customer", attribute.String("customer", id))
	defer span.End()

	cust, err := c.svc.FindCustomerByID(id)
	if err != nil {
		return CustomerInfo{}, err
	}
	return toCustomerInfo(cust), nil
}

func (c *Core) Account(ctx context.Context, number string) (AccountInfo, error) {
	_, span := session.AddSpan(ctx, "internal.core.teller.Account", attribute.String("account", number))
	defer span.End()

	a, err := c.svc.FindAccountByNumber(number)
	if err != nil {
		return AccountInfo{}, err
	}
	return toAccountInfo(a), nil
}

// OpenAccount creates an account with the given opening balance and attaches
// it to the customer.
func (c *Core) OpenAccount(ctx context.Context, customerID, number string, balance decimal.Decimal) (AccountInfo, error) {
	ctx, span := session.AddSpan(ctx, "internal.core.teller.OpenAccount",
		attribute.String("customer", customerID), attribute.String("account", number))
	defer span.End()

	cust, err := c.svc.FindCustomerByID(customerID)
	if err != nil {
		return AccountInfo{}, err
	}

	a, err := ledger.NewAccount(number, balance)
	if err != nil {
		return AccountInfo{}, err
	}
	if err := cust.AddAccount(a); err != nil {
		return AccountInfo{}, err
	}

	c.info(ctx, "account opened", "customer", customerID, "account", number, "balance", balance.StringFixed(2))
	return toAccountInfo(a), nil
}

func (c *Core) Deposit(ctx context.Context, number string, amount decimal.Decimal) (AccountInfo, error) {
	ctx, span := session.AddSpan(ctx, "internal.core.teller.Deposit",
		attribute.String("account", number), attribute.String("amount", amount.String()))
	defer span.End()

	a, err := c.svc.FindAccountByNumber(number)
	if err != nil {
		return AccountInfo{}, err
	}
	if err := a.Deposit(amount); err != nil {
		return AccountInfo{}, err
	}

	c.info(ctx, "deposit", "account", number, "amount", amount.StringFixed(2))
	return toAccountInfo(a), nil
}

func (c *Core) Withdraw(ctx context.Context, number string, amount decimal.Decimal) (AccountInfo, error) {
	ctx, span := session.AddSpan(ctx, "internal.core.teller.Withdraw",
		attribute.String("account", number), attribute.String("amount", amount.String()))
	defer span.End()

	a, err := c.svc.FindAccountByNumber(number)
	if err != nil {
		return AccountInfo{}, err
	}
	if err := a.Withdraw(amount); err != nil {
		c.info(ctx, "withdrawal denied", "account", number, "amount", amount.StringFixed(2), "reason", err)
		return AccountInfo{}, err
	}

	c.info(ctx, "withdrawal", "account", number, "amount", amount.StringFixed(2))
	return toAccountInfo(a), nil
}

func (c *Core) Transfer(ctx context.Context, from, to string, amount decimal.Decimal) (TransferInfo, error) {
	ctx, span := session.AddSpan(ctx, "internal.core.teller.Transfer",
		attribute.String("from", from), attribute.String("to", to), attribute.String("amount", amount.String()))
	defer span.End()

	src, err := c.svc.FindAccountByNumber(from)
	if err != nil {
		return TransferInfo{}, err
	}
	dst, err := c.svc.FindAccountByNumber(to)
	if err != nil {
		return TransferInfo{}, err
	}

	if err := src.Transfer(dst, amount); err != nil {
		c.info(ctx, "transfer denied", "from", from, "to", to, "amount", amount.StringFixed(2), "reason", err)
		return TransferInfo{}, err
	}

	c.info(ctx, "transfer", "from", from, "to", to, "amount", amount.StringFixed(2))
	return TransferInfo{
		From:   toAccountInfo(src),
		To:     toAccountInfo(dst),
		Amount: amount,
		Date:   session.GetTime(ctx),
	}, nil
}
