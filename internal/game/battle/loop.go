// Package battle drives a battle from start to outcome.
package battle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/looplab/fsm"

	"github.com/udisondev/autobattle/internal/config"
	"github.com/udisondev/autobattle/internal/event"
	"github.com/udisondev/autobattle/internal/game/combat"
	"github.com/udisondev/autobattle/internal/game/skill"
	"github.com/udisondev/autobattle/internal/game/turn"
	"github.com/udisondev/autobattle/internal/model"
	"github.com/udisondev/autobattle/internal/rng"
)

// Loop states.
const (
	StateNotStarted = "not_started"
	StateRunning    = "running"
	StateEnded      = "ended"
)

const (
	eventStart  = "start"
	eventFinish = "finish"
)

var (
	ErrAlreadyStarted = errors.New("battle already started")
	ErrNotRunning     = errors.New("battle is not running")
)

// Options are the collaborators of a Loop, injected at construction.
type Options struct {
	Rules  config.Battle
	Combat config.Combat

	// Skills resolves evolutions. Defaults to a book with default skill rules.
	Skills *skill.Book

	// Seed is recorded in the report. Rand defaults to rng.New(Seed).
	Seed uint64
	Rand rng.Source

	Wallets  combat.Wallets
	Listener event.Listener
}

// Loop is the explicit stepper of one battle: not_started → running → ended.
//
// Step, Run and Start must be called from one goroutine. Surrender may be
// called from any goroutine; it takes effect between slots.
type Loop struct {
	id    uuid.UUID
	opts  Options
	state *fsm.FSM

	ctx      *combat.Context
	resolver *combat.Resolver
	emit     event.Listener
	log      *event.Log

	pending   []turn.Slot
	next      int
	roundOpen bool

	// surrenderReq: 0 none, otherwise side+1 of the conceding side.
	surrenderReq atomic.Int32
	surrendered  bool

	startedAt  time.Time
	finishedAt time.Time
	now        func() time.Time
}

// New creates a battle that has not started yet.
func New(opts Options) *Loop {
	if opts.Rules.MaxRounds < 1 {
		opts.Rules = config.DefaultBattle()
	}
	if opts.Skills == nil {
		opts.Skills = skill.NewBook(config.DefaultSkills())
	}
	if opts.Rand == nil {
		opts.Rand = rng.New(opts.Seed)
	}

	l := &Loop{
		id:   uuid.New(),
		opts: opts,
		log:  event.NewLog(),
		now:  time.Now,
	}
	if opts.Listener != nil {
		l.emit = event.Fanout{l.log, opts.Listener}
	} else {
		l.emit = l.log
	}
	l.resolver = combat.NewResolver(opts.Combat, l.emit)

	l.state = fsm.NewFSM(
		StateNotStarted,
		fsm.Events{
			{Name: eventStart, Src: []string{StateNotStarted}, Dst: StateRunning},
			{Name: eventFinish, Src: []string{StateRunning}, Dst: StateEnded},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				slog.Debug("battle state changed", "battle", l.id.String(), "from", e.Src, "to", e.Dst)
			},
		},
	)
	return l
}

// ID returns the battle id.
func (l *Loop) ID() uuid.UUID { return l.id }

// State returns the current state name.
func (l *Loop) State() string { return l.state.Current() }

// Running reports whether the battle accepts steps.
func (l *Loop) Running() bool { return l.state.Is(StateRunning) }

// Round returns the current round, 0 before the first one opens.
func (l *Loop) Round() int {
	if l.ctx == nil {
		return 0
	}
	return l.ctx.Round
}

// Outcome returns the terminal outcome, OutcomeNone while undecided.
func (l *Loop) Outcome() model.Outcome {
	if l.ctx == nil {
		return model.OutcomeNone
	}
	return l.ctx.Outcome
}

// Context exposes the battle context for inspection.
func (l *Loop) Context() *combat.Context { return l.ctx }

// Transcript returns the recorded events of the battle.
func (l *Loop) Transcript() *event.Log { return l.log }

// Resolver returns the slot resolver, e.g. to observe actions.
func (l *Loop) Resolver() *combat.Resolver { return l.resolver }

// Start populates the battle context and moves to running. Rosters are
// consumed: their units belong to this battle until it ends.
// A side that starts without living units decides the battle at round 0.
func (l *Loop) Start(player, opponent []*model.Unit) error {
	if !l.state.Can(eventStart) {
		return ErrAlreadyStarted
	}

	l.ctx = combat.NewContext(player, opponent, l.opts.Skills, l.opts.Rand, l.opts.Wallets)
	if err := l.state.Event(context.Background(), eventStart); err != nil {
		return fmt.Errorf("starting battle: %w", err)
	}
	l.startedAt = l.now()

	slog.Info("battle started",
		"battle", l.id.String(),
		"seed", l.opts.Seed,
		"player", len(player),
		"opponent", len(opponent))

	if out := l.ctx.Decide(); out != model.OutcomeNone {
		l.finish(out)
	}
	return nil
}

// Step resolves exactly one slot, opening a new round first when the current
// one has no pending slots. Returns false once the battle has ended.
func (l *Loop) Step() (bool, error) {
	if !l.Running() {
		return false, ErrNotRunning
	}

	if side, ok := l.surrenderRequested(); ok {
		l.concede(side)
		return false, nil
	}

	if !l.roundOpen {
		l.openRound()
		if !l.Running() {
			return false, nil
		}
	}

	slot := l.pending[l.next]
	l.next++
	l.resolver.ResolveSlot(l.ctx, slot)

	if out := l.ctx.Decide(); out != model.OutcomeNone {
		l.closeRound()
		l.finish(out)
		return false, nil
	}

	if l.next >= len(l.pending) {
		l.closeRound()
		if l.ctx.Round >= l.opts.Rules.MaxRounds {
			l.finish(model.OutcomeDraw)
			return false, nil
		}
	}
	return true, nil
}

// RoundOpen reports whether a round has pending slots.
func (l *Loop) RoundOpen() bool { return l.roundOpen }

// Surrender requests that side concede. The conceding side loses when the
// next step begins; the first request wins.
func (l *Loop) Surrender(side model.Side) error {
	if !l.Running() {
		return ErrNotRunning
	}
	l.surrenderReq.CompareAndSwap(0, int32(side)+1)
	return nil
}

func (l *Loop) surrenderRequested() (model.Side, bool) {
	v := l.surrenderReq.Load()
	if v == 0 {
		return 0, false
	}
	return model.Side(v - 1), true
}

func (l *Loop) concede(side model.Side) {
	slog.Info("side surrendered", "battle", l.id.String(), "side", side.String(), "round", l.ctx.Round)
	l.surrendered = true

	out := model.OutcomeDefeat
	if side == model.SideOpponent {
		out = model.OutcomeVictory
	}
	if l.roundOpen {
		l.closeRound()
	}
	l.finish(out)
}

// openRound ticks statuses, announces the round and schedules its slots.
func (l *Loop) openRound() {
	l.ctx.Round++
	round := l.ctx.Round

	for _, u := range l.ctx.Units() {
		if u.IsAlive() {
			u.Status().Tick()
		}
	}
	l.resolver.Settle(l.ctx)

	l.roundOpen = true
	l.emit.OnTurnStart(round)

	if out := l.ctx.Decide(); out != model.OutcomeNone {
		l.closeRound()
		l.finish(out)
		return
	}

	l.pending = turn.Order(l.ctx.Player, l.ctx.Opponent)
	l.next = 0
	slog.Debug("round opened", "battle", l.id.String(), "round", round, "slots", len(l.pending))
}

// closeRound runs turn-end hooks and announces the end of the round.
func (l *Loop) closeRound() {
	l.resolver.TurnEnd(l.ctx)
	l.roundOpen = false
	l.pending = nil
	l.next = 0
	l.emit.OnTurnEnd(l.ctx.Round)
}

func (l *Loop) finish(out model.Outcome) {
	l.ctx.Outcome = out
	if err := l.state.Event(context.Background(), eventFinish); err != nil {
		slog.Error("finishing battle", "battle", l.id.String(), "error", err)
	}
	l.finishedAt = l.now()
	l.emit.OnBattleEnd(out)

	slog.Info("battle ended",
		"battle", l.id.String(),
		"outcome", out.String(),
		"rounds", l.ctx.Round,
		"surrender", l.surrendered)
}

// Report summarizes the battle. Valid once the battle has started.
func (l *Loop) Report() model.BattleReport {
	digest := l.log.Digest()
	r := model.BattleReport{
		ID:         l.id.String(),
		Seed:       l.opts.Seed,
		Outcome:    l.Outcome(),
		Rounds:     l.Round(),
		Surrender:  l.surrendered,
		Digest:     digest[:],
		StartedAt:  l.startedAt,
		FinishedAt: l.finishedAt,
	}
	if l.ctx != nil {
		for _, u := range l.ctx.Units() {
			r.Units = append(r.Units, model.NewUnitReport(u))
		}
	}
	return r
}
