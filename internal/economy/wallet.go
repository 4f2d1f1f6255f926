package economy

import (
	"log/slog"
	"sync"
)

// Wallet is the currency collaborator mutated by in-battle effects.
type Wallet interface {
	AddGold(amount int)
	SpendGold(amount int) bool
}

// Purse is an in-memory Wallet.
//
// Thread-safe: the economy layer may read it while a battle runs.
type Purse struct {
	mu   sync.Mutex
	gold int
}

// NewPurse creates a Purse holding gold.
func NewPurse(gold int) *Purse {
	return &Purse{gold: max(gold, 0)}
}

// AddGold adds amount. Non-positive amounts are ignored.
func (p *Purse) AddGold(amount int) {
	if amount <= 0 {
		return
	}
	p.mu.Lock()
	p.gold += amount
	p.mu.Unlock()
}

// SpendGold removes amount if the purse can cover it.
func (p *Purse) SpendGold(amount int) bool {
	if amount < 0 {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.gold < amount {
		slog.Debug("not enough gold", "have", p.gold, "need", amount)
		return false
	}
	p.gold -= amount
	return true
}

// Gold returns the current balance.
func (p *Purse) Gold() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gold
}

// Nop is a Wallet that holds nothing.
type Nop struct{}

func (Nop) AddGold(int)        {}
func (Nop) SpendGold(int) bool { return false }
