package event

import "github.com/udisondev/autobattle/internal/model"

// Listener consumes battle events. Calls are fire-and-forget: the simulation
// never waits for, or reads anything back from, a listener.
type Listener interface {
	OnBattleEnd(outcome model.Outcome)
	OnTurnStart(round int)
	OnTurnEnd(round int)
	OnDamageDealt(attacker, target UnitRef, amount int)
}

// UnitRef is an immutable snapshot identifying a unit in event payloads.
type UnitRef struct {
	ID   int
	Name string
	Side model.Side
}

// Ref snapshots u. A nil unit yields the zero ref.
func Ref(u *model.Unit) UnitRef {
	if u == nil {
		return UnitRef{}
	}
	return UnitRef{ID: u.ID(), Name: u.Name(), Side: u.Side()}
}

// Nop ignores every event.
type Nop struct{}

func (Nop) OnBattleEnd(model.Outcome)           {}
func (Nop) OnTurnStart(int)                     {}
func (Nop) OnTurnEnd(int)                       {}
func (Nop) OnDamageDealt(UnitRef, UnitRef, int) {}

// Fanout forwards every event to each listener in order, synchronously.
type Fanout []Listener

func (f Fanout) OnBattleEnd(outcome model.Outcome) {
	for _, l := range f {
		l.OnBattleEnd(outcome)
	}
}

func (f Fanout) OnTurnStart(round int) {
	for _, l := range f {
		l.OnTurnStart(round)
	}
}

func (f Fanout) OnTurnEnd(round int) {
	for _, l := range f {
		l.OnTurnEnd(round)
	}
}

func (f Fanout) OnDamageDealt(attacker, target UnitRef, amount int) {
	for _, l := range f {
		l.OnDamageDealt(attacker, target, amount)
	}
}
