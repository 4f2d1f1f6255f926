package combat

import (
	"math"

	"github.com/udisondev/autobattle/internal/config"
	"github.com/udisondev/autobattle/internal/game/status"
	"github.com/udisondev/autobattle/internal/model"
	"github.com/udisondev/autobattle/internal/stat"
)

// CalcDamage computes the damage of a regular attack.
//
// Formula: round(Attack × (1 + FrozenDamageBonus if target is frozen)),
// clamped to MinDamage. Attack already carries every modifier (Madness included),
// so it is read unrounded and rounded once here.
func CalcDamage(rules config.Combat, attacker, target *model.Unit) int {
	v := attacker.Stats().Value(stat.Attack)
	if target.Status().Has(status.Freeze) {
		v *= 1 + rules.FrozenDamageBonus
	}
	return clampDamage(rules, int(math.Round(v)))
}

func clampDamage(rules config.Combat, amount int) int {
	return max(amount, rules.MinDamage, 1)
}

// elementEffect maps an elemental attribute to the status it inflicts on hit.
// Attributes missing here inflict nothing.
var elementEffect = map[model.Element]status.Type{
	model.ElementIce:       status.Freeze,
	model.ElementFire:      status.Burn,
	model.ElementLightning: status.Lightning,
}

// applyElements inflicts the attacker's elemental statuses on target in
// attribute order.
func applyElements(attacker, target *model.Unit) {
	for _, e := range attacker.Elements() {
		typ, ok := elementEffect[e]
		if !ok {
			continue
		}
		if !target.IsAlive() {
			return
		}
		target.Status().Apply(target.Status().NewEffect(typ))
	}
}
