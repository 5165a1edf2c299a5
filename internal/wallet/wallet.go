// Package wallet tracks the experience-level currency mastery transactions
// spend from.
package wallet

import (
	"context"
	"fmt"
	"sync"

	"github.com/korvus/EnchantMastery_Go/internal/domain"
)

// Wallet is the currency account surface the transaction service draws on.
type Wallet interface {
	// Balance returns the player's spendable level balance. Unknown
	// players have a zero balance.
	Balance(ctx context.Context, playerID string) (int, error)

	// Deduct removes levels from the balance. Fails with
	// domain.ErrInsufficientCurrency without mutating when the balance
	// does not cover the amount.
	Deduct(ctx context.Context, playerID string, amount int) error

	// Credit adds levels to the balance.
	Credit(ctx context.Context, playerID string, amount int) error
}

// MemoryWallet is an in-memory Wallet, used in tests and when the service
// runs without a database.
type MemoryWallet struct {
	mu       sync.Mutex
	balances map[string]int
}

// NewMemoryWallet creates an empty in-memory wallet.
func NewMemoryWallet() *MemoryWallet {
	return &MemoryWallet{balances: make(map[string]int)}
}

func (w *MemoryWallet) Balance(_ context.Context, playerID string) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.balances[playerID], nil
}

func (w *MemoryWallet) Deduct(_ context.Context, playerID string, amount int) error {
	if amount < 0 {
		return fmt.Errorf("%w: negative deduct amount %d", domain.ErrInvalidInput, amount)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	balance := w.balances[playerID]
	if balance < amount {
		return domain.RejectWithAmounts(domain.ErrInsufficientCurrency, "", amount, balance)
	}
	w.balances[playerID] = balance - amount
	return nil
}

func (w *MemoryWallet) Credit(_ context.Context, playerID string, amount int) error {
	if amount < 0 {
		return fmt.Errorf("%w: negative credit amount %d", domain.ErrInvalidInput, amount)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.balances[playerID] += amount
	return nil
}
