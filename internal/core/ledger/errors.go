package ledger

import "errors"

// Set of errors for the ledger API.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrInvalidID         = errors.New("identifier must not be empty")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSameAccount       = errors.New("source and target are the same account")
	ErrDuplicateCustomer = errors.New("duplicated customer id")
	ErrDuplicateAccount  = errors.New("duplicated account number")
)
