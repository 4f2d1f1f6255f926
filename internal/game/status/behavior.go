package status

import (
	"log/slog"
	"math"

	"github.com/udisondev/autobattle/internal/stat"
)

// behavior is the per-type contract of a status effect.
// onApply runs after every application (fresh or merged) with the stored entry.
type behavior interface {
	onApply(t *Table, e *Effect)
	onTick(t *Table, e *Effect)
	onRemove(t *Table, e *Effect)
}

// behaviors maps status type → behavior.
var behaviors = map[Type]behavior{
	Freeze:    freezeBehavior{},
	Burn:      burnBehavior{},
	Lightning: lightningBehavior{},
	Stun:      stunBehavior{},
	Soul:      soulBehavior{},
	Madness:   madnessBehavior{},
}

// modifierOrder puts status modifiers after skill modifiers of the same kind.
const modifierOrder = 1000

// freezeBehavior slows the owner by FreezeSpeedPerStack × stack.
// Post-reduction speed never drops below 1, and Freeze never raises speed.
type freezeBehavior struct{}

func (freezeBehavior) onApply(t *Table, e *Effect) {
	speed := t.owner.Stats().Engine(stat.Speed)
	without := speed.ValueWithout(SourceID(Freeze), SourceID(Stun))
	delta := float64(t.rules.FreezeSpeedPerStack * e.Stack)
	if without-delta < 1 {
		delta = math.Max(0, without-1)
	}
	speed.AddModifier(stat.Modifier{
		Kind:     stat.Flat,
		Value:    -delta,
		SourceID: SourceID(Freeze),
		Order:    modifierOrder,
	})
	slog.Debug("freeze applied", "owner", t.owner.Name(), "stack", e.Stack, "speedDelta", -delta)
}

func (freezeBehavior) onTick(*Table, *Effect) {}

func (freezeBehavior) onRemove(t *Table, _ *Effect) {
	t.owner.Stats().RemoveModifier(SourceID(Freeze), stat.Speed)
	slog.Debug("freeze removed", "owner", t.owner.Name())
}

// burnBehavior deals BurnDamagePerStack × stack to the owner every tick.
type burnBehavior struct{}

func (burnBehavior) onApply(t *Table, e *Effect) {
	slog.Debug("burn applied", "owner", t.owner.Name(), "stack", e.Stack, "duration", e.Duration)
}

func (burnBehavior) onTick(t *Table, e *Effect) {
	if !t.owner.IsAlive() {
		return
	}
	damage := t.rules.BurnDamagePerStack * e.Stack
	if damage <= 0 {
		return
	}
	lost := t.owner.TakeDamage(damage)
	slog.Debug("burn tick", "owner", t.owner.Name(), "damage", damage, "lost", lost)
}

func (burnBehavior) onRemove(*Table, *Effect) {}

// lightningBehavior converts into Stun once enough stacks accumulate.
type lightningBehavior struct{}

func (lightningBehavior) onApply(t *Table, e *Effect) {
	if e.Stack < t.rules.LightningStunStacks {
		slog.Debug("lightning charged", "owner", t.owner.Name(), "stack", e.Stack)
		return
	}
	slog.Debug("lightning discharged", "owner", t.owner.Name(), "stack", e.Stack)
	t.Apply(t.NewEffect(Stun))
	t.Remove(Lightning)
}

func (lightningBehavior) onTick(*Table, *Effect)   {}
func (lightningBehavior) onRemove(*Table, *Effect) {}

// stunBehavior forces speed to exactly 0 while active.
// Removal drops only its own modifier, restoring the pre-Stun computed speed.
type stunBehavior struct{}

func (stunBehavior) onApply(t *Table, _ *Effect) {
	t.owner.Stats().AddModifier(stat.Speed, stat.Modifier{
		Kind:     stat.PercentMultiply,
		Value:    -1,
		SourceID: SourceID(Stun),
		Order:    math.MaxInt,
	})
	slog.Debug("stun applied", "owner", t.owner.Name())
}

func (stunBehavior) onTick(*Table, *Effect) {}

func (stunBehavior) onRemove(t *Table, _ *Effect) {
	t.owner.Stats().RemoveModifier(SourceID(Stun), stat.Speed)
	slog.Debug("stun removed", "owner", t.owner.Name())
}

// soulBehavior marks the owner to die on the next damage instance.
type soulBehavior struct{}

func (soulBehavior) onApply(t *Table, _ *Effect) {
	slog.Debug("soul bound", "owner", t.owner.Name())
}

func (soulBehavior) onTick(*Table, *Effect)   {}
func (soulBehavior) onRemove(*Table, *Effect) {}

// madnessBehavior boosts attack while active.
type madnessBehavior struct{}

func (madnessBehavior) onApply(t *Table, e *Effect) {
	t.owner.Stats().AddModifier(stat.Attack, stat.Modifier{
		Kind:     stat.PercentMultiply,
		Value:    t.rules.MadnessAttackBonus,
		SourceID: SourceID(Madness),
		Order:    modifierOrder,
	})
	slog.Debug("madness applied", "owner", t.owner.Name(), "duration", e.Duration)
}

func (madnessBehavior) onTick(*Table, *Effect) {}

func (madnessBehavior) onRemove(t *Table, _ *Effect) {
	t.owner.Stats().RemoveModifier(SourceID(Madness), stat.Attack)
	slog.Debug("madness removed", "owner", t.owner.Name())
}
