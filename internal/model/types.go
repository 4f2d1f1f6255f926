package model

import (
	"fmt"
	"strings"
)

// Side identifies which roster a unit fights for.
type Side int8

const (
	SidePlayer Side = iota
	SideOpponent
)

func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideOpponent:
		return "opponent"
	default:
		return "unknown"
	}
}

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == SidePlayer {
		return SideOpponent
	}
	return SidePlayer
}

// Element is an elemental attribute tag carried by a unit.
type Element int8

const (
	ElementNone Element = iota
	ElementIce
	ElementFire
	ElementLightning
	ElementSoul
	ElementMadness
	ElementTime
)

var elementNames = map[Element]string{
	ElementNone:      "none",
	ElementIce:       "ice",
	ElementFire:      "fire",
	ElementLightning: "lightning",
	ElementSoul:      "soul",
	ElementMadness:   "madness",
	ElementTime:      "time",
}

func (e Element) String() string {
	if name, ok := elementNames[e]; ok {
		return name
	}
	return "unknown"
}

// ParseElement parses a case-insensitive element name.
func ParseElement(s string) (Element, error) {
	for e, name := range elementNames {
		if strings.EqualFold(s, name) {
			return e, nil
		}
	}
	return ElementNone, fmt.Errorf("unknown element %q", s)
}

// Evolution selects the skill hooks of a unit. It is the skill id used by the
// skill book; an evolution without registered behaviour is inert.
type Evolution int16

const (
	EvolutionNone Evolution = iota
	EvolutionBerserker
	EvolutionGambler
	EvolutionNecromancer
	EvolutionNegotiator
	EvolutionMercenary
	EvolutionFanatic
)

var evolutionNames = map[Evolution]string{
	EvolutionNone:        "none",
	EvolutionBerserker:   "berserker",
	EvolutionGambler:     "gambler",
	EvolutionNecromancer: "necromancer",
	EvolutionNegotiator:  "negotiator",
	EvolutionMercenary:   "mercenary",
	EvolutionFanatic:     "fanatic",
}

func (e Evolution) String() string {
	if name, ok := evolutionNames[e]; ok {
		return name
	}
	return fmt.Sprintf("evolution(%d)", int16(e))
}

// ParseEvolution parses a case-insensitive evolution name.
// Unknown names are reported with ok=false.
func ParseEvolution(s string) (Evolution, bool) {
	if s == "" {
		return EvolutionNone, true
	}
	for e, name := range evolutionNames {
		if strings.EqualFold(s, name) {
			return e, true
		}
	}
	return EvolutionNone, false
}

// Category is the unit category inside a roster.
type Category int8

const (
	CategoryFollower Category = iota
	CategorySpirit            // at most one per roster
)

func (c Category) String() string {
	if c == CategorySpirit {
		return "spirit"
	}
	return "follower"
}

// ParseCategory parses "follower" (default) or "spirit".
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(s) {
	case "", "follower":
		return CategoryFollower, nil
	case "spirit":
		return CategorySpirit, nil
	default:
		return CategoryFollower, fmt.Errorf("unknown category %q", s)
	}
}

// Outcome is the terminal result of a battle from the player's point of view.
type Outcome int8

const (
	OutcomeNone Outcome = iota
	OutcomeVictory
	OutcomeDefeat
	OutcomeDraw
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	case OutcomeDraw:
		return "draw"
	default:
		return "none"
	}
}
