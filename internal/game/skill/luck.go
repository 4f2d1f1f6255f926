package skill

import (
	"log/slog"

	"github.com/udisondev/autobattle/internal/config"
	"github.com/udisondev/autobattle/internal/model"
	"github.com/udisondev/autobattle/internal/rng"
)

// Luck rolls for small extra strikes on the same target. Every success
// re-rolls; the chain stops on a failed roll, a dead target or the cap.
type Luck struct {
	chance   int
	minDmg   int
	maxDmg   int
	chainCap int
}

func NewLuck(rules config.Skills) Skill {
	return &Luck{
		chance:   rules.LuckChancePercent,
		minDmg:   rules.LuckMinDamage,
		maxDmg:   rules.LuckMaxDamage,
		chainCap: rules.LuckChainCap,
	}
}

func (l *Luck) Name() string { return "Luck" }

func (l *Luck) OnAttack(a Arena, attacker, target *model.Unit) {
	src := a.Rand()
	for i := 0; i < l.chainCap; i++ {
		if !target.IsAlive() || !rng.Percent(src, l.chance) {
			return
		}
		a.Strike(attacker, target, rng.Between(src, l.minDmg, l.maxDmg))
	}
	slog.Debug("luck chain truncated", "unit", attacker.Name(), "cap", l.chainCap)
}
