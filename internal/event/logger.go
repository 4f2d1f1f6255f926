package event

import (
	"log/slog"

	"github.com/udisondev/autobattle/internal/model"
)

// Logger writes battle events to slog. Used as the console presentation.
type Logger struct {
	Battle string
}

func (l Logger) OnBattleEnd(outcome model.Outcome) {
	slog.Info("battle ended", "battle", l.Battle, "outcome", outcome.String())
}

func (l Logger) OnTurnStart(round int) {
	slog.Debug("turn start", "battle", l.Battle, "round", round)
}

func (l Logger) OnTurnEnd(round int) {
	slog.Debug("turn end", "battle", l.Battle, "round", round)
}

func (l Logger) OnDamageDealt(attacker, target UnitRef, amount int) {
	slog.Info("damage dealt",
		"battle", l.Battle,
		"attacker", attacker.Name,
		"target", target.Name,
		"amount", amount)
}
