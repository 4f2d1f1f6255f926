package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/autobattle/internal/config"
	"github.com/udisondev/autobattle/internal/economy"
	"github.com/udisondev/autobattle/internal/event"
	"github.com/udisondev/autobattle/internal/formation"
	"github.com/udisondev/autobattle/internal/game/battle"
	"github.com/udisondev/autobattle/internal/game/combat"
	"github.com/udisondev/autobattle/internal/game/skill"
	"github.com/udisondev/autobattle/internal/model"
	"github.com/udisondev/autobattle/internal/rng"
)

// ReportStore persists finished battles.
type ReportStore interface {
	Save(ctx context.Context, report model.BattleReport) (bool, error)
}

// Summary tallies the outcomes of a batch.
type Summary struct {
	Victories int
	Defeats   int
	Draws     int
}

// Total returns the number of decided battles.
func (s Summary) Total() int { return s.Victories + s.Defeats + s.Draws }

// Rate returns n as a percentage of Total.
func (s Summary) Rate(n int) float64 {
	if s.Total() == 0 {
		return 0
	}
	return float64(n) * 100 / float64(s.Total())
}

func (s *Summary) add(o model.Outcome) {
	switch o {
	case model.OutcomeVictory:
		s.Victories++
	case model.OutcomeDefeat:
		s.Defeats++
	case model.OutcomeDraw:
		s.Draws++
	}
}

// Simulator runs battles of one formation.
type Simulator struct {
	cfg    config.Simulator
	roster formation.File
	store  ReportStore // nil disables persistence
}

// RunOne runs a single paced battle with console presentation.
func (s *Simulator) RunOne(ctx context.Context) (model.BattleReport, error) {
	dispatcher := event.NewDispatcher(s.cfg.EventQueueSize)
	defer dispatcher.Close()

	l, err := s.newBattle(s.cfg.Seed, dispatcher)
	if err != nil {
		return model.BattleReport{}, err
	}
	dispatcher.Subscribe(event.Logger{Battle: l.ID().String()})

	if _, err := l.Run(ctx, s.cfg.Pacing); err != nil && !errors.Is(err, context.Canceled) {
		return model.BattleReport{}, fmt.Errorf("running battle: %w", err)
	}

	report := l.Report()
	if err := s.save(ctx, report); err != nil {
		return report, err
	}
	return report, nil
}

// RunBatch runs cfg.Battles unpaced battles on cfg.Workers goroutines.
// Battle i uses seed rng.Derive(cfg.Seed, i).
func (s *Simulator) RunBatch(ctx context.Context) (Summary, error) {
	outcomes := make([]model.Outcome, s.cfg.Battles)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)

	for i := range s.cfg.Battles {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			l, err := s.newBattle(rng.Derive(s.cfg.Seed, i), nil)
			if err != nil {
				return err
			}
			out, err := l.Run(gctx, config.Pacing{})
			if err != nil {
				return nil
			}
			outcomes[i] = out
			return s.save(gctx, l.Report())
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, fmt.Errorf("batch: %w", err)
	}

	var sum Summary
	for _, o := range outcomes {
		sum.add(o)
	}
	slog.Info("batch finished",
		"battles", sum.Total(),
		"victories", sum.Victories,
		"defeats", sum.Defeats,
		"draws", sum.Draws)
	return sum, nil
}

func (s *Simulator) newBattle(seed uint64, listener event.Listener) (*battle.Loop, error) {
	player, opponent, err := s.roster.Build(s.cfg.Status)
	if err != nil {
		return nil, fmt.Errorf("building rosters: %w", err)
	}

	l := battle.New(battle.Options{
		Rules:  s.cfg.Battle,
		Combat: s.cfg.Combat,
		Skills: skill.NewBook(s.cfg.Skills),
		Seed:   seed,
		Wallets: combat.Wallets{
			Player:   economy.NewPurse(s.cfg.StartingGold),
			Opponent: economy.NewPurse(s.cfg.StartingGold),
		},
		Listener: listener,
	})
	if err := l.Start(player, opponent); err != nil {
		return nil, fmt.Errorf("starting battle: %w", err)
	}
	return l, nil
}

func (s *Simulator) save(ctx context.Context, report model.BattleReport) error {
	if s.store == nil {
		return nil
	}
	inserted, err := s.store.Save(ctx, report)
	if err != nil {
		return fmt.Errorf("saving report: %w", err)
	}
	if !inserted {
		slog.Debug("report already stored", "battle", report.ID)
	}
	return nil
}
