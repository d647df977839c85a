// Package console implements the interactive text menu of the ledger.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rschio/ledger/internal/core/ledger"
	"github.com/rschio/ledger/internal/core/teller"
	"github.com/rschio/ledger/internal/session"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/trace"
)

const mainMenu = `
Banking System Dashboard
1. Manage Accounts and Transactions
2. Manage Customers
3. Open Account
4. Exit
Enter your choice: `

const transactionMenu = `
Transaction Options:
1. Deposit
2. Withdraw
3. Transfer
4. Back to Main Menu
Enter your choice: `

type Server struct {
	log    *slog.Logger
	core   *teller.Core
	tracer trace.Tracer
	in     *bufio.Reader
	out    io.Writer
}

func NewServer(log *slog.Logger, core *teller.Core, tracer trace.Tracer, in io.Reader, out io.Writer) *Server {
	return &Server{
		log:    log,
		core:   core,
		tracer: tracer,
		in:     bufio.NewReader(in),
		out:    out,
	}
}

// Run serves the main menu until the user exits or the input ends.
func (s *Server) Run(ctx context.Context) error {
	for {
		choice, err := s.prompt(mainMenu)
		if err != nil {
			return ignoreEOF(err)
		}

		switch choice {
		case "1":
			if err := s.manageAccounts(ctx); err != nil {
				return ignoreEOF(err)
			}
		case "2":
			s.manageCustomers(ctx)
		case "3":
			if err := s.openAccount(ctx); err != nil {
				return ignoreEOF(err)
			}
		case "4":
			fmt.Fprintln(s.out, "Exiting...")
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid choice. Please try again.")
		}

		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

func (s *Server) manageCustomers(ctx context.Context) {
	customers, _ := serve(ctx, s, "console.customers", func(ctx context.Context) ([]teller.CustomerInfo, error) {
		return s.core.Customers(ctx), nil
	})

	fmt.Fprintln(s.out, "\nCustomer Management:")
	for _, c := range customers {
		writeCustomer(s.out, c)
	}
}

func (s *Server) openAccount(ctx context.Context) error {
	id, err := s.prompt("Enter Customer ID: ")
	if err != nil {
		return err
	}
	number, err := s.prompt("Enter new account number: ")
	if err != nil {
		return err
	}
	line, err := s.prompt("Enter opening balance: ")
	if err != nil {
		return err
	}
	balance, err := parseAmount(line, true)
	if err != nil {
		fmt.Fprintln(s.out, "Invalid amount.")
		return nil
	}

	a, err := serve(ctx, s, "console.openAccount", func(ctx context.Context) (teller.AccountInfo, error) {
		return s.core.OpenAccount(ctx, id, number, balance)
	})
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			fmt.Fprintln(s.out, "Customer not found.")
			return nil
		}
		fmt.Fprintf(s.out, "Open account failed: %s.\n", reason(err))
		return nil
	}

	fmt.Fprintln(s.out, "Account opened.")
	writeAccount(s.out, a)
	return nil
}

func (s *Server) manageAccounts(ctx context.Context) error {
	id, err := s.prompt("Enter Customer ID: ")
	if err != nil {
		return err
	}

	c, err := serve(ctx, s, "console.customer", func(ctx context.Context) (teller.CustomerInfo, error) {
		return s.core.Customer(ctx, id)
	})
	if err != nil {
		fmt.Fprintln(s.out, "Customer not found.")
		return nil
	}

	fmt.Fprintln(s.out, "\nAccount Management:")
	writeCustomer(s.out, c)

	number, err := s.selectAccount(c)
	if err != nil || number == "" {
		return err
	}

	return s.performTransactions(ctx, number)
}

// selectAccount picks the account the transaction menu operates on. An empty
// number with a nil error means there is nothing to operate on.
func (s *Server) selectAccount(c teller.CustomerInfo) (string, error) {
	switch len(c.Accounts) {
	case 0:
		fmt.Fprintln(s.out, "Customer has no accounts.")
		return "", nil
	case 1:
		return c.Accounts[0].Number, nil
	}

	number, err := s.prompt("Enter account number: ")
	if err != nil {
		return "", err
	}
	for _, a := range c.Accounts {
		if a.Number == number {
			return number, nil
		}
	}

	fmt.Fprintln(s.out, "Account not found.")
	return "", nil
}

func (s *Server) performTransactions(ctx context.Context, number string) error {
	for {
		choice, err := s.prompt(transactionMenu)
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			amount, err := s.promptAmount("Enter deposit amount: ")
			if err != nil {
				if errors.Is(err, io.EOF) {
					return err
				}
				fmt.Fprintln(s.out, "Invalid amount.")
				continue
			}

			a, err := serve(ctx, s, "console.deposit", func(ctx context.Context) (teller.AccountInfo, error) {
				return s.core.Deposit(ctx, number, amount)
			})
			if err != nil {
				fmt.Fprintf(s.out, "Deposit failed: %s.\n", reason(err))
				continue
			}
			fmt.Fprintln(s.out, "Deposit successful.")
			fmt.Fprintf(s.out, "Balance: $%s\n", a.Balance.StringFixed(2))

		case "2":
			amount, err := s.promptAmount("Enter withdrawal amount: ")
			if err != nil {
				if errors.Is(err, io.EOF) {
					return err
				}
				fmt.Fprintln(s.out, "Invalid amount.")
				continue
			}

			a, err := serve(ctx, s, "console.withdraw", func(ctx context.Context) (teller.AccountInfo, error) {
				return s.core.Withdraw(ctx, number, amount)
			})
			if err != nil {
				fmt.Fprintf(s.out, "Withdrawal failed: %s.\n", reason(err))
				continue
			}
			fmt.Fprintln(s.out, "Withdrawal successful.")
			fmt.Fprintf(s.out, "Balance: $%s\n", a.Balance.StringFixed(2))

		case "3":
			amount, err := s.promptAmount("Enter transfer amount: ")
			if err != nil {
				if errors.Is(err, io.EOF) {
					return err
				}
				fmt.Fprintln(s.out, "Invalid amount.")
				continue
			}
			to, err := s.prompt("Enter recipient account number: ")
			if err != nil {
				return err
			}

			tr, err := serve(ctx, s, "console.transfer", func(ctx context.Context) (teller.TransferInfo, error) {
				return s.core.Transfer(ctx, number, to, amount)
			})
			if err != nil {
				fmt.Fprintf(s.out, "Transfer failed: %s.\n", reason(err))
				continue
			}
			fmt.Fprintln(s.out, "Transfer successful.")
			fmt.Fprintf(s.out, "Balance: $%s\n", tr.From.Balance.StringFixed(2))

		case "4":
			return nil

		default:
			fmt.Fprintln(s.out, "Invalid choice. Please try again.")
		}
	}
}

// serve runs fn under a new session span and logs its failure.
func serve[Resp any](
	ctx context.Context,
	s *Server,
	name string,
	fn func(ctx context.Context) (Resp, error),
) (Resp, error) {
	ctx, span := session.Start(ctx, s.tracer, name)
	defer span.End()

	resp, err := fn(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, name, "ERROR", err)
	}

	return resp, err
}

// prompt reads one line of any length. A last line without a newline is
// still returned.
func (s *Server) prompt(msg string) (string, error) {
	fmt.Fprint(s.out, msg)
	line, err := s.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

var errBadAmount = errors.New("bad amount")

// promptAmount reads a positive amount with at most two decimal places.
func (s *Server) promptAmount(msg string) (decimal.Decimal, error) {
	line, err := s.prompt(msg)
	if err != nil {
		return decimal.Zero, err
	}
	return parseAmount(line, false)
}

func parseAmount(line string, allowZero bool) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(line)
	if err != nil {
		return decimal.Zero, errBadAmount
	}
	if amount.IsNegative() || (amount.IsZero() && !allowZero) || !amount.Equal(amount.Round(2)) {
		return decimal.Zero, errBadAmount
	}

	return amount, nil
}

func reason(err error) string {
	switch {
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return "insufficient funds"
	case errors.Is(err, ledger.ErrNotFound):
		return "account not found"
	case errors.Is(err, ledger.ErrSameAccount):
		return "cannot transfer to the same account"
	case errors.Is(err, ledger.ErrInvalidAmount):
		return "invalid amount"
	case errors.Is(err, ledger.ErrDuplicateAccount):
		return "account number already in use"
	case errors.Is(err, ledger.ErrInvalidID):
		return "invalid account number"
	default:
		return "internal error"
	}
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
