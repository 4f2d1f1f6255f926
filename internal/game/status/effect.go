package status

import "github.com/udisondev/autobattle/internal/stat"

// Type identifies a status effect. A unit holds at most one Effect per Type.
type Type int8

const (
	Freeze Type = iota
	Burn
	Lightning
	Stun
	Soul
	Madness
)

// Indefinite marks an effect that lasts until removed or consumed.
const Indefinite = -1

// tickOrder is the fixed order in which Tick visits active effects.
var tickOrder = [...]Type{Freeze, Burn, Lightning, Stun, Soul, Madness}

func (t Type) String() string {
	switch t {
	case Freeze:
		return "Freeze"
	case Burn:
		return "Burn"
	case Lightning:
		return "Lightning"
	case Stun:
		return "Stun"
	case Soul:
		return "Soul"
	case Madness:
		return "Madness"
	default:
		return "Unknown"
	}
}

// Effect is a status effect instance. Duration counts owner turn-start ticks,
// Indefinite never expires on its own.
type Effect struct {
	Type     Type
	Duration int
	Stack    int
}

// sourceBase keeps status modifier sources apart from skill sources.
const sourceBase = 1 << 20

// SourceID returns the stat modifier source owned by status type t.
func SourceID(t Type) int {
	return sourceBase + int(t)
}

// Bearer is the unit a Table belongs to.
type Bearer interface {
	Name() string
	Stats() *stat.Sheet
	IsAlive() bool
	TakeDamage(amount int) int
}

// merge folds incoming into e: stacks add up, the longer duration wins and
// an indefinite duration beats any finite one.
func (e *Effect) merge(incoming Effect) {
	e.Stack += incoming.Stack
	switch {
	case e.Duration == Indefinite || incoming.Duration == Indefinite:
		e.Duration = Indefinite
	case incoming.Duration > e.Duration:
		e.Duration = incoming.Duration
	}
}
