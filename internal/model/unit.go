package model

import (
	"slices"

	"github.com/udisondev/autobattle/internal/config"
	"github.com/udisondev/autobattle/internal/game/status"
	"github.com/udisondev/autobattle/internal/stat"
)

// UnitSpec describes a unit before it joins a battle.
type UnitSpec struct {
	Name      string
	Side      Side
	Category  Category
	Attack    int
	Health    int
	MaxHealth int // defaults to Health
	Speed     int
	Elements  []Element
	Evolution Evolution
	Summoned  bool
}

// Unit is a combat unit owned by one battle.
// Alive is derived from Health > 0.
//
// Unit is not safe for concurrent use.
type Unit struct {
	id        int
	name      string
	side      Side
	category  Category
	elements  []Element
	evolution Evolution
	summoned  bool

	stats  *stat.Sheet
	status *status.Table

	deathHandled bool

	damageDealt int
	damageTaken int
}

// NewUnit creates a unit with full health (clamped to MaxHealth).
// Elements keep their first-seen order; duplicates and ElementNone are dropped.
func NewUnit(id int, spec UnitSpec, rules config.Status) *Unit {
	maxHealth := spec.MaxHealth
	if maxHealth <= 0 {
		maxHealth = spec.Health
	}
	health := min(max(spec.Health, 0), maxHealth)

	u := &Unit{
		id:        id,
		name:      spec.Name,
		side:      spec.Side,
		category:  spec.Category,
		evolution: spec.Evolution,
		summoned:  spec.Summoned,
		stats: stat.NewSheet(
			float64(spec.Attack),
			float64(health),
			float64(maxHealth),
			float64(max(spec.Speed, 0)),
		),
	}
	for _, e := range spec.Elements {
		if e == ElementNone || slices.Contains(u.elements, e) {
			continue
		}
		u.elements = append(u.elements, e)
	}
	u.status = status.NewTable(u, rules)
	return u
}

// ID returns the unit id, unique within a battle.
func (u *Unit) ID() int { return u.id }

// Name returns the display name.
func (u *Unit) Name() string { return u.name }

// Side returns the roster side.
func (u *Unit) Side() Side { return u.side }

// Category returns the roster category.
func (u *Unit) Category() Category { return u.category }

// Evolution returns the skill id.
func (u *Unit) Evolution() Evolution { return u.evolution }

// Summoned reports whether the unit was created mid-battle by a skill.
func (u *Unit) Summoned() bool { return u.summoned }

// Elements returns a copy of the elemental attributes in order.
func (u *Unit) Elements() []Element { return slices.Clone(u.elements) }

// HasElement reports whether the unit carries e.
func (u *Unit) HasElement(e Element) bool { return slices.Contains(u.elements, e) }

// Stats returns the stat sheet.
func (u *Unit) Stats() *stat.Sheet { return u.stats }

// Status returns the status effect table.
func (u *Unit) Status() *status.Table { return u.status }

// Attack returns the effective attack.
func (u *Unit) Attack() int { return u.stats.Int(stat.Attack) }

// Health returns the current health.
func (u *Unit) Health() int { return u.stats.Int(stat.Health) }

// MaxHealth returns the effective max health.
func (u *Unit) MaxHealth() int { return u.stats.Int(stat.MaxHealth) }

// Speed returns the effective speed.
func (u *Unit) Speed() int { return u.stats.Int(stat.Speed) }

// IsAlive reports Health > 0.
func (u *Unit) IsAlive() bool { return u.Health() > 0 }

// TakeDamage reduces health by amount and returns the health actually lost.
// A unit bound by Soul loses all remaining health regardless of amount.
func (u *Unit) TakeDamage(amount int) int {
	hp := u.Health()
	if hp <= 0 || amount <= 0 {
		return 0
	}
	if u.status.Has(status.Soul) || amount > hp {
		amount = hp
	}
	u.stats.SetBase(stat.Health, float64(hp-amount))
	u.damageTaken += amount
	return amount
}

// RecordDealt accumulates damage dealt by the unit.
func (u *Unit) RecordDealt(amount int) {
	u.damageDealt += amount
}

// DamageDealt returns total damage dealt.
func (u *Unit) DamageDealt() int { return u.damageDealt }

// DamageTaken returns total health lost.
func (u *Unit) DamageTaken() int { return u.damageTaken }

// MarkDead records the death of a unit with no health left.
// Returns true only the first time, so death hooks fire once.
func (u *Unit) MarkDead() bool {
	if u.deathHandled || u.IsAlive() {
		return false
	}
	u.deathHandled = true
	return true
}
