package skill

import (
	"github.com/udisondev/autobattle/internal/config"
	"github.com/udisondev/autobattle/internal/game/status"
	"github.com/udisondev/autobattle/internal/model"
)

// Frenzy drives the attacker mad after every attack.
type Frenzy struct{}

func NewFrenzy(config.Skills) Skill { return Frenzy{} }

func (Frenzy) Name() string { return "Frenzy" }

func (Frenzy) OnAttack(_ Arena, attacker, _ *model.Unit) {
	attacker.Status().Apply(attacker.Status().NewEffect(status.Madness))
}
