package stat

import (
	"cmp"
	"math"
	"slices"
)

// Engine computes an effective stat value from a base value and a set of
// source-keyed modifiers.
//
// Evaluation order is fixed:
//  1. base + Σ Flat
//  2. × (1 + Σ PercentAdd)
//  3. × (1 + value) for each PercentMultiply
//
// Within each step modifiers are visited by (Order, SourceID), so the same
// active set always yields the same float result whatever the mutation history.
//
// The result is cached and recomputed only after a mutation.
// Engine is not safe for concurrent use: one battle owns its units.
type Engine struct {
	base float64
	mods []Modifier

	cached float64
	dirty  bool

	subs      map[int]func(float64)
	nextSubID int
}

// NewEngine creates an Engine with the given base value.
func NewEngine(base float64) *Engine {
	return &Engine{base: base, dirty: true}
}

// Base returns the unmodified base value.
func (e *Engine) Base() float64 {
	return e.base
}

// SetBase replaces the base value.
func (e *Engine) SetBase(value float64) {
	e.base = value
	e.changed()
}

// AddModifier adds mod, or overwrites the modifier already registered for
// mod.SourceID.
func (e *Engine) AddModifier(mod Modifier) {
	for i := range e.mods {
		if e.mods[i].SourceID == mod.SourceID {
			e.mods[i] = mod
			e.changed()
			return
		}
	}
	e.mods = append(e.mods, mod)
	e.changed()
}

// RemoveModifier removes the modifier registered by sourceID.
// Removing an unknown source is a no-op and does not notify subscribers.
func (e *Engine) RemoveModifier(sourceID int) bool {
	for i := range e.mods {
		if e.mods[i].SourceID == sourceID {
			e.mods = slices.Delete(e.mods, i, i+1)
			e.changed()
			return true
		}
	}
	return false
}

// ModifierCount returns the number of active modifiers.
func (e *Engine) ModifierCount() int {
	return len(e.mods)
}

// Value returns the effective value, recomputing it only when dirty.
func (e *Engine) Value() float64 {
	if e.dirty {
		e.cached = compute(e.base, e.mods, nil)
		e.dirty = false
	}
	return e.cached
}

// Int returns Value rounded half away from zero.
func (e *Engine) Int() int {
	return int(math.Round(e.Value()))
}

// ValueWithout previews the effective value as if the given sources were not
// active. Neither the cache nor subscribers are touched.
func (e *Engine) ValueWithout(sourceIDs ...int) float64 {
	return compute(e.base, e.mods, sourceIDs)
}

// Subscribe registers fn to receive the recomputed value after every mutation.
// The returned func unregisters it.
func (e *Engine) Subscribe(fn func(value float64)) (cancel func()) {
	if e.subs == nil {
		e.subs = make(map[int]func(float64))
	}
	id := e.nextSubID
	e.nextSubID++
	e.subs[id] = fn
	return func() { delete(e.subs, id) }
}

func (e *Engine) changed() {
	e.dirty = true
	if len(e.subs) == 0 {
		return
	}
	v := e.Value()

	// Deterministic notification order.
	ids := make([]int, 0, len(e.subs))
	for id := range e.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if fn, ok := e.subs[id]; ok {
			fn(v)
		}
	}
}

func compute(base float64, mods []Modifier, skip []int) float64 {
	active := make([]Modifier, 0, len(mods))
	for _, m := range mods {
		if slices.Contains(skip, m.SourceID) {
			continue
		}
		active = append(active, m)
	}
	slices.SortFunc(active, func(a, b Modifier) int {
		if a.Order != b.Order {
			return cmp.Compare(a.Order, b.Order)
		}
		return cmp.Compare(a.SourceID, b.SourceID)
	})

	v := base
	for _, m := range active {
		if m.Kind == Flat {
			v += m.Value
		}
	}

	percentAdd := 0.0
	for _, m := range active {
		if m.Kind == PercentAdd {
			percentAdd += m.Value
		}
	}
	v *= 1 + percentAdd

	for _, m := range active {
		if m.Kind == PercentMultiply {
			v *= 1 + m.Value
		}
	}
	return v
}
