package wallet

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryStore holds the single process-wide wallet: a balance plus an
// append-only transaction log. Debit is check-then-apply under one lock so
// no concurrent caller can observe a stale balance.
type InMemoryStore struct {
	mu           sync.RWMutex
	balance      int
	transactions []Transaction
}

func NewInMemoryStore(initialBalance int) *InMemoryStore {
	return &InMemoryStore{balance: initialBalance}
}

// TryDebit decrements the balance and appends a transaction, or returns
// false leaving state untouched when the balance is insufficient.
func (s *InMemoryStore) TryDebit(amount int, description string) (Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.balance < amount {
		return Transaction{}, false
	}
	s.balance -= amount
	tx := Transaction{
		ID:           uuid.New(),
		Type:         TypeDebit,
		Amount:       amount,
		Description:  description,
		Timestamp:    time.Now(),
		BalanceAfter: s.balance,
	}
	s.transactions = append(s.transactions, tx)
	return tx, true
}

// Credit increments the balance and appends a transaction.
func (s *InMemoryStore) Credit(amount int, description string) Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.balance += amount
	tx := Transaction{
		ID:           uuid.New(),
		Type:         TypeCredit,
		Amount:       amount,
		Description:  description,
		Timestamp:    time.Now(),
		BalanceAfter: s.balance,
	}
	s.transactions = append(s.transactions, tx)
	return tx
}

// Balance returns the current credit balance.
func (s *InMemoryStore) Balance() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balance
}

// Transactions returns the ledger newest-first.
func (s *InMemoryStore) Transactions() []Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Transaction, len(s.transactions))
	for i, tx := range s.transactions {
		out[len(s.transactions)-1-i] = tx
	}
	return out
}

// Reset bulk-clears the ledger and restores a starting balance. Individual
// transactions are never deleted any other way.
func (s *InMemoryStore) Reset(balance int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balance = balance
	s.transactions = nil
}
