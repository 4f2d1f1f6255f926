package stat

// Kind defines how a stat modifier is applied.
type Kind int8

const (
	Flat            Kind = iota // Additive bonus (e.g. +3 attack)
	PercentAdd                  // Summed percentage (e.g. +0.25 and +0.25 → ×1.5)
	PercentMultiply             // Compounding percentage (e.g. +0.5 then −1.0 → ×0)
)

func (k Kind) String() string {
	switch k {
	case Flat:
		return "Flat"
	case PercentAdd:
		return "PercentAdd"
	case PercentMultiply:
		return "PercentMultiply"
	default:
		return "Unknown"
	}
}

// Modifier represents a single stat modification from a status effect or skill.
// At most one modifier per SourceID is active on an Engine.
type Modifier struct {
	Kind     Kind
	Value    float64
	SourceID int
	Order    int // evaluation order inside its kind, ties by SourceID
}

// ID identifies a stat on a Sheet.
type ID int8

const (
	Attack ID = iota
	Health
	MaxHealth
	Speed
)

// All lists every stat a Sheet carries.
var All = [...]ID{Attack, Health, MaxHealth, Speed}

func (id ID) String() string {
	switch id {
	case Attack:
		return "attack"
	case Health:
		return "health"
	case MaxHealth:
		return "maxHealth"
	case Speed:
		return "speed"
	default:
		return "unknown"
	}
}
