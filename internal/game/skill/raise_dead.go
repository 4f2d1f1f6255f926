package skill

import (
	"log/slog"

	"github.com/udisondev/autobattle/internal/config"
	"github.com/udisondev/autobattle/internal/model"
	"github.com/udisondev/autobattle/internal/stat"
)

// RaiseDead brings a fallen ally back as a fragile Soul-bound copy.
// Summoned units are never raised again.
type RaiseDead struct {
	health int
}

func NewRaiseDead(rules config.Skills) Skill {
	return &RaiseDead{health: max(rules.SummonHealth, 1)}
}

func (r *RaiseDead) Name() string { return "RaiseDead" }

func (r *RaiseDead) OnAllyDeath(a Arena, owner, fallen *model.Unit) {
	if fallen.Summoned() {
		return
	}
	spec := model.UnitSpec{
		Name:      fallen.Name(),
		Side:      fallen.Side(),
		Category:  model.CategoryFollower,
		Attack:    int(fallen.Stats().Engine(stat.Attack).Base()),
		Health:    r.health,
		MaxHealth: r.health,
		Speed:     int(fallen.Stats().Engine(stat.Speed).Base()),
		Elements:  fallen.Elements(),
		Summoned:  true,
	}
	if u := a.Summon(fallen, spec); u != nil {
		slog.Debug("raised dead",
			"necromancer", owner.Name(),
			"fallen", fallen.Name(),
			"summon", u.ID())
	}
}
