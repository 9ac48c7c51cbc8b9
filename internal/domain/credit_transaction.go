package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes top-ups from charges.
type TransactionType string

const (
	TransactionTypeCredit TransactionType = "credit"
	TransactionTypeDebit  TransactionType = "debit"
)

// CreditTransaction is an immutable append-only ledger record. Amount is
// signed: positive adds funds, negative charges them. BalanceAfter is the
// brand balance immediately after applying this transaction, so replaying
// a brand's transactions in creation order reproduces every balance.
type CreditTransaction struct {
	ID           string
	BrandID      string
	Amount       decimal.Decimal
	Type         TransactionType
	TicketID     *string
	Description  string
	BalanceAfter decimal.Decimal
	CreatedAt    time.Time
}
