package status

import (
	"log/slog"

	"github.com/udisondev/autobattle/internal/config"
)

// Table tracks the active status effects of one unit.
//
// Not safe for concurrent use: the owning battle is single-threaded.
type Table struct {
	owner   Bearer
	rules   config.Status
	effects map[Type]*Effect
}

// NewTable creates an empty Table bound to owner.
func NewTable(owner Bearer, rules config.Status) *Table {
	return &Table{
		owner:   owner,
		rules:   rules,
		effects: make(map[Type]*Effect, len(tickOrder)),
	}
}

// Rules returns the status rules the table was created with.
func (t *Table) Rules() config.Status { return t.rules }

// NewEffect returns a single-stack effect of type t with its default duration.
func (t *Table) NewEffect(typ Type) Effect {
	return Effect{Type: typ, Duration: t.defaultDuration(typ), Stack: 1}
}

func (t *Table) defaultDuration(typ Type) int {
	switch typ {
	case Freeze:
		return t.rules.FreezeDuration
	case Burn:
		return t.rules.BurnDuration
	case Stun:
		return t.rules.StunDuration
	case Madness:
		return t.rules.MadnessDuration
	default:
		return Indefinite
	}
}

// Apply adds effect, merging it into the existing entry of the same type.
// Stun always lasts StunDuration; Lightning and Soul are always indefinite.
func (t *Table) Apply(effect Effect) {
	b, ok := behaviors[effect.Type]
	if !ok {
		slog.Warn("unknown status type ignored", "owner", t.owner.Name(), "type", int(effect.Type))
		return
	}
	if effect.Stack < 1 {
		effect.Stack = 1
	}
	switch effect.Type {
	case Stun:
		effect.Duration = t.rules.StunDuration
	case Lightning, Soul:
		effect.Duration = Indefinite
	default:
		if effect.Duration == 0 || effect.Duration < Indefinite {
			effect.Duration = t.defaultDuration(effect.Type)
		}
	}

	stored, exists := t.effects[effect.Type]
	if exists {
		stored.merge(effect)
	} else {
		stored = &effect
		t.effects[effect.Type] = stored
	}
	b.onApply(t, stored)
}

// Tick runs the owner's turn-start tick: per-type tick actions in fixed type
// order, then finite durations count down and effects reaching 0 are removed.
func (t *Table) Tick() {
	for _, typ := range tickOrder {
		e, ok := t.effects[typ]
		if !ok {
			continue
		}
		behaviors[typ].onTick(t, e)

		// onTick may have consumed the effect.
		if cur, ok := t.effects[typ]; !ok || cur != e {
			continue
		}
		if e.Duration == Indefinite {
			continue
		}
		e.Duration--
		if e.Duration <= 0 {
			t.Remove(typ)
		}
	}
}

// Remove removes the effect of type typ and reverts its side effects.
// Removing an absent type is a no-op.
func (t *Table) Remove(typ Type) {
	e, ok := t.effects[typ]
	if !ok {
		return
	}
	delete(t.effects, typ)
	behaviors[typ].onRemove(t, e)
}

// Clear removes every active effect.
func (t *Table) Clear() {
	for _, typ := range tickOrder {
		t.Remove(typ)
	}
}

// Has reports whether an effect of type typ is active.
func (t *Table) Has(typ Type) bool {
	_, ok := t.effects[typ]
	return ok
}

// StackOf returns the stack count of typ, 0 when absent.
func (t *Table) StackOf(typ Type) int {
	if e, ok := t.effects[typ]; ok {
		return e.Stack
	}
	return 0
}

// DurationOf returns the remaining duration of typ and whether it is active.
func (t *Table) DurationOf(typ Type) (int, bool) {
	if e, ok := t.effects[typ]; ok {
		return e.Duration, true
	}
	return 0, false
}

// Active returns a copy of the active effects in tick order.
func (t *Table) Active() []Effect {
	result := make([]Effect, 0, len(t.effects))
	for _, typ := range tickOrder {
		if e, ok := t.effects[typ]; ok {
			result = append(result, *e)
		}
	}
	return result
}

// Len returns the number of active effects.
func (t *Table) Len() int {
	return len(t.effects)
}
