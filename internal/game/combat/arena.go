package combat

import (
	"log/slog"
	"slices"

	"github.com/udisondev/autobattle/internal/economy"
	"github.com/udisondev/autobattle/internal/event"
	"github.com/udisondev/autobattle/internal/game/skill"
	"github.com/udisondev/autobattle/internal/game/status"
	"github.com/udisondev/autobattle/internal/model"
	"github.com/udisondev/autobattle/internal/rng"
)

// arena is the skill.Arena view of a context during one resolution.
type arena struct {
	r   *Resolver
	ctx *Context
}

var _ skill.Arena = (*arena)(nil)

func (a *arena) Enemies(side model.Side) []*model.Unit {
	return a.ctx.Roster(side.Other())
}

func (a *arena) Rand() rng.Source { return a.ctx.Rand() }

func (a *arena) Wallet(side model.Side) economy.Wallet { return a.ctx.Wallet(side) }

func (a *arena) Strike(attacker, target *model.Unit, amount int) int {
	if target == nil || !target.IsAlive() {
		return 0
	}
	lost := a.hit(attacker, target, clampDamage(a.r.rules, amount))
	a.settle(target)
	return lost
}

func (a *arena) Summon(origin *model.Unit, spec model.UnitSpec) *model.Unit {
	if a.ctx.revived[origin.ID()] {
		return nil
	}
	a.ctx.revived[origin.ID()] = true

	spec.Side = origin.Side()
	u := model.NewUnit(a.ctx.allocID(), spec, origin.Status().Rules())
	u.Status().Apply(u.Status().NewEffect(status.Soul))
	a.ctx.add(u)
	return u
}

// hit applies amount to target and reports it. Death is settled by the caller.
func (a *arena) hit(attacker, target *model.Unit, amount int) int {
	lost := target.TakeDamage(amount)
	attacker.RecordDealt(lost)
	a.r.listener.OnDamageDealt(event.Ref(attacker), event.Ref(target), amount)

	slog.Debug("hit",
		"attacker", attacker.Name(),
		"target", target.Name(),
		"damage", amount,
		"health", target.Health())
	return lost
}

// settle handles the first death of u: clears its statuses and runs the
// death hooks of its living allies in formation order.
func (a *arena) settle(u *model.Unit) {
	if !u.MarkDead() {
		return
	}
	u.Status().Clear()
	slog.Debug("unit died", "unit", u.Name(), "side", u.Side().String())

	// Units summoned by these hooks join the roster but do not react to this death.
	for _, ally := range slices.Clone(a.ctx.Roster(u.Side())) {
		if ally == u || !ally.IsAlive() {
			continue
		}
		if h, ok := a.ctx.Kit(ally).(skill.DeathHook); ok {
			h.OnAllyDeath(a, ally, u)
		}
	}
}
