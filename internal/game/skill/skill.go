// Package skill maps unit evolutions to the hooks they contribute to combat.
//
// A Skill declares which hooks it implements by satisfying the optional hook
// interfaces below; the combat resolver discovers them with type assertions.
package skill

import (
	"github.com/udisondev/autobattle/internal/economy"
	"github.com/udisondev/autobattle/internal/model"
	"github.com/udisondev/autobattle/internal/rng"
)

// Skill is the behaviour bound to one unit for the duration of a battle.
type Skill interface {
	Name() string
}

// PrepareHook runs before the attacker's damage is computed.
type PrepareHook interface {
	BeforeAttack(a Arena, attacker, target *model.Unit)
}

// AttackHook runs after the main hit and elemental application.
// target may already be dead.
type AttackHook interface {
	OnAttack(a Arena, attacker, target *model.Unit)
}

// DeathHook runs on every living ally of a fallen unit, in formation order.
type DeathHook interface {
	OnAllyDeath(a Arena, owner, fallen *model.Unit)
}

// TurnEndHook runs for every living unit when a round closes.
type TurnEndHook interface {
	OnTurnEnd(a Arena, owner *model.Unit, round int)
}

// Arena is the battle state a skill may read and mutate.
// Implemented by the combat resolver for the duration of one hook call.
type Arena interface {
	// Enemies returns the roster opposing side in formation order, dead included.
	Enemies(side model.Side) []*model.Unit

	// Strike deals a secondary hit of amount (clamped to the damage floor)
	// and settles a resulting death. Returns health actually lost.
	Strike(attacker, target *model.Unit, amount int) int

	// Summon appends a unit built from spec to origin's roster and binds
	// the Soul status to it. Returns nil when origin was already revived.
	Summon(origin *model.Unit, spec model.UnitSpec) *model.Unit

	Rand() rng.Source
	Wallet(side model.Side) economy.Wallet
}

// SourceID is the stat modifier source owned by the skill of evolution e.
// Disjoint from status effect sources.
func SourceID(e model.Evolution) int {
	return 1<<21 + int(e)
}
