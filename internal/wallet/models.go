package wallet

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType distinguishes top-ups from metered spend.
type TransactionType string

const (
	TypeCredit TransactionType = "credit"
	TypeDebit  TransactionType = "debit"
)

// Transaction is one append-only ledger entry. BalanceAfter always equals
// the wallet balance immediately following this transaction.
type Transaction struct {
	ID           uuid.UUID       `json:"id"`
	Type         TransactionType `json:"type"`
	Amount       int             `json:"amount"`
	Description  string          `json:"description"`
	Timestamp    time.Time       `json:"timestamp"`
	BalanceAfter int             `json:"balanceAfter"`
}
