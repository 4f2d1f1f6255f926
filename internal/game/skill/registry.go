package skill

import (
	"log/slog"
	"sync"

	"github.com/udisondev/autobattle/internal/config"
	"github.com/udisondev/autobattle/internal/model"
)

// registry maps evolution → skill factory.
// Populated by init() below.
var registry = map[model.Evolution]func(rules config.Skills) Skill{}

// Register registers a skill factory for an evolution.
func Register(e model.Evolution, factory func(rules config.Skills) Skill) {
	registry[e] = factory
}

// Book resolves evolutions to skills. Skills are stateless, so one instance
// per evolution is shared by all units of a battle.
//
// Thread-safe.
type Book struct {
	skills map[model.Evolution]Skill

	mu     sync.Mutex
	warned map[model.Evolution]bool
}

// NewBook instantiates every registered skill with rules.
func NewBook(rules config.Skills) *Book {
	b := &Book{
		skills: make(map[model.Evolution]Skill, len(registry)),
		warned: make(map[model.Evolution]bool),
	}
	for e, factory := range registry {
		b.skills[e] = factory(rules)
	}
	return b
}

// Bind returns the skill of u, or nil when u has no evolution.
// An evolution without a registered skill is inert and logged once per book.
func (b *Book) Bind(u *model.Unit) Skill {
	e := u.Evolution()
	if e == model.EvolutionNone {
		return nil
	}
	if s, ok := b.skills[e]; ok {
		return s
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.warned[e] {
		b.warned[e] = true
		slog.Warn("unknown evolution, skill is inert",
			"evolution", e.String(),
			"unit", u.Name())
	}
	return nil
}

func init() {
	Register(model.EvolutionBerserker, NewCleave)
	Register(model.EvolutionGambler, NewLuck)
	Register(model.EvolutionNecromancer, NewRaiseDead)
	Register(model.EvolutionNegotiator, NewIncome)
	Register(model.EvolutionMercenary, NewContract)
	Register(model.EvolutionFanatic, NewFrenzy)
}
