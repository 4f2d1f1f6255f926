package skill

import (
	"github.com/udisondev/autobattle/internal/config"
	"github.com/udisondev/autobattle/internal/model"
	"github.com/udisondev/autobattle/internal/rng"
)

// Income pays passive gold to the owner's side at every round close.
type Income struct {
	base     int
	variance int
}

func NewIncome(rules config.Skills) Skill {
	return &Income{base: rules.IncomeBase, variance: rules.IncomeVariance}
}

func (i *Income) Name() string { return "Income" }

func (i *Income) OnTurnEnd(a Arena, owner *model.Unit, _ int) {
	a.Wallet(owner.Side()).AddGold(i.base + rng.Between(a.Rand(), 0, i.variance))
}
