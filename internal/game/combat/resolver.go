package combat

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/udisondev/autobattle/internal/config"
	"github.com/udisondev/autobattle/internal/event"
	"github.com/udisondev/autobattle/internal/game/skill"
	"github.com/udisondev/autobattle/internal/game/status"
	"github.com/udisondev/autobattle/internal/game/turn"
	"github.com/udisondev/autobattle/internal/model"
)

// ActionKind is how a slot was consumed.
type ActionKind int8

const (
	ActionAttacked ActionKind = iota
	ActionWaited              // dead or stunned
	ActionNoTarget            // no living enemy
	ActionFailed              // internal failure, recovered
)

func (k ActionKind) String() string {
	switch k {
	case ActionAttacked:
		return "attacked"
	case ActionWaited:
		return "waited"
	case ActionNoTarget:
		return "no_target"
	case ActionFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Action is the result of one resolved slot, for logs and tests.
type Action struct {
	Kind     ActionKind
	Slot     turn.SlotKind
	Attacker event.UnitRef
	Target   event.UnitRef
	Damage   int  // main hit only
	Killed   bool // main target died during the slot
}

// Resolver resolves action slots against a Context.
// Stateless between slots; one resolver may serve many sequential battles.
type Resolver struct {
	rules    config.Combat
	listener event.Listener

	// actionObserver получает каждое действие (nil в production).
	actionObserver func(Action)
}

// NewResolver creates a resolver emitting damage events to listener.
func NewResolver(rules config.Combat, listener event.Listener) *Resolver {
	if listener == nil {
		listener = event.Nop{}
	}
	return &Resolver{rules: rules, listener: listener}
}

// SetActionObserver sets a callback receiving every resolved action.
func (r *Resolver) SetActionObserver(fn func(Action)) {
	r.actionObserver = fn
}

// ResolveSlot executes one slot. It never panics: any failure inside the slot
// is logged and reported as ActionFailed, and the slot is still consumed.
func (r *Resolver) ResolveSlot(ctx *Context, slot turn.Slot) (act Action) {
	act = Action{Kind: ActionWaited, Slot: slot.Kind, Attacker: event.Ref(slot.Unit)}

	defer func() {
		if rec := recover(); rec != nil {
			slog.Warn("slot failed",
				"unit", act.Attacker.Name,
				"round", ctx.Round,
				"panic", fmt.Sprint(rec),
				"stack", string(debug.Stack()))
			act.Kind = ActionFailed
		}
		if r.actionObserver != nil {
			r.actionObserver(act)
		}
	}()

	u := slot.Unit
	if u == nil {
		slog.Warn("slot without unit", "round", ctx.Round)
		return act
	}
	if !u.IsAlive() || u.Status().Has(status.Stun) {
		slog.Debug("unit waits",
			"unit", u.Name(),
			"alive", u.IsAlive(),
			"stunned", u.Status().Has(status.Stun))
		return act
	}

	target := ctx.Front(u.Side().Other())
	if target == nil {
		act.Kind = ActionNoTarget
		return act
	}
	act.Kind = ActionAttacked
	act.Target = event.Ref(target)

	a := &arena{r: r, ctx: ctx}
	kit := ctx.Kit(u)
	if h, ok := kit.(skill.PrepareHook); ok {
		h.BeforeAttack(a, u, target)
	}

	act.Damage = CalcDamage(r.rules, u, target)
	a.hit(u, target, act.Damage)

	applyElements(u, target)

	if h, ok := kit.(skill.AttackHook); ok {
		h.OnAttack(a, u, target)
	}

	act.Killed = !target.IsAlive()
	a.settle(target)
	return act
}

// Settle handles every death not handled yet (e.g. from status ticks),
// player roster first.
func (r *Resolver) Settle(ctx *Context) {
	a := &arena{r: r, ctx: ctx}
	for _, u := range ctx.Units() {
		a.settle(u)
	}
}

// TurnEnd runs the turn-end hooks of every living unit, player roster first.
// A failing hook is logged and skipped.
func (r *Resolver) TurnEnd(ctx *Context) {
	a := &arena{r: r, ctx: ctx}
	for _, u := range ctx.Units() {
		if !u.IsAlive() {
			continue
		}
		h, ok := ctx.Kit(u).(skill.TurnEndHook)
		if !ok {
			continue
		}
		r.safely(u, "turn end hook", func() { h.OnTurnEnd(a, u, ctx.Round) })
	}
}

func (r *Resolver) safely(u *model.Unit, what string, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Warn(what+" failed", "unit", u.Name(), "panic", fmt.Sprint(rec))
		}
	}()
	fn()
}
