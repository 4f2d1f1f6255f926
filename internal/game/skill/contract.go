package skill

import (
	"github.com/udisondev/autobattle/internal/config"
	"github.com/udisondev/autobattle/internal/model"
	"github.com/udisondev/autobattle/internal/stat"
)

// Contract pays a fee before every attack to keep an attack bonus.
// When the side's wallet cannot pay, the bonus lapses until the next payment.
type Contract struct {
	fee   int
	bonus float64
}

func NewContract(rules config.Skills) Skill {
	return &Contract{fee: rules.MercenaryFee, bonus: rules.MercenaryAttackBonus}
}

func (c *Contract) Name() string { return "Contract" }

func (c *Contract) BeforeAttack(a Arena, attacker, _ *model.Unit) {
	source := SourceID(model.EvolutionMercenary)
	if a.Wallet(attacker.Side()).SpendGold(c.fee) {
		attacker.Stats().AddModifier(stat.Attack, stat.Modifier{
			Kind:     stat.PercentAdd,
			Value:    c.bonus,
			SourceID: source,
		})
		return
	}
	attacker.Stats().RemoveModifier(source, stat.Attack)
}
