package skill

import (
	"math"

	"github.com/udisondev/autobattle/internal/config"
	"github.com/udisondev/autobattle/internal/model"
	"github.com/udisondev/autobattle/internal/stat"
)

// Cleave splashes a share of the attacker's attack onto the living enemies
// standing behind the target.
type Cleave struct {
	ratio   float64
	targets int
}

func NewCleave(rules config.Skills) Skill {
	return &Cleave{ratio: rules.CleaveRatio, targets: rules.CleaveTargets}
}

func (c *Cleave) Name() string { return "Cleave" }

func (c *Cleave) OnAttack(a Arena, attacker, target *model.Unit) {
	if c.targets <= 0 || c.ratio <= 0 {
		return
	}
	amount := int(math.Round(attacker.Stats().Value(stat.Attack) * c.ratio))

	enemies := a.Enemies(attacker.Side())
	behind := false
	hit := 0
	for _, e := range enemies {
		if e == target {
			behind = true
			continue
		}
		if !behind || !e.IsAlive() {
			continue
		}
		a.Strike(attacker, e, amount)
		hit++
		if hit == c.targets {
			return
		}
	}
}
