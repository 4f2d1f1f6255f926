package testutil

import (
	"sync"

	"github.com/udisondev/autobattle/internal/model"
)

// MockWallet хранит золото в памяти и записывает все операции.
type MockWallet struct {
	mu      sync.Mutex
	Gold    int
	Added   []int
	Spent   []int
	Refused int
}

// NewMockWallet создаёт кошелёк с начальным золотом.
func NewMockWallet(gold int) *MockWallet {
	return &MockWallet{Gold: gold}
}

// AddGold добавляет золото.
func (w *MockWallet) AddGold(amount int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Gold += amount
	w.Added = append(w.Added, amount)
}

// SpendGold списывает золото, если хватает.
func (w *MockWallet) SpendGold(amount int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.Gold < amount {
		w.Refused++
		return false
	}
	w.Gold -= amount
	w.Spent = append(w.Spent, amount)
	return true
}

// Balance возвращает текущий баланс.
func (w *MockWallet) Balance() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Gold
}

// FixedRand выдаёт заранее заданные значения для детерминированных тестов.
// IntN возвращает значения из Ints по кругу (по модулю n).
type FixedRand struct {
	Ints []int
	pos  int
}

// IntN возвращает следующее значение скрипта.
func (r *FixedRand) IntN(n int) int {
	if len(r.Ints) == 0 || n <= 0 {
		return 0
	}
	v := r.Ints[r.pos%len(r.Ints)]
	r.pos++
	return v % n
}

// Calls возвращает количество сделанных бросков.
func (r *FixedRand) Calls() int {
	return r.pos
}

// Alive возвращает имена живых юнитов в порядке ростера.
func Alive(roster []*model.Unit) []string {
	var names []string
	for _, u := range roster {
		if u.IsAlive() {
			names = append(names, u.Name())
		}
	}
	return names
}
