package turn

import (
	"slices"

	"github.com/udisondev/autobattle/internal/model"
)

// SlotKind distinguishes a unit's regular action from its speed bonus action.
type SlotKind int8

const (
	SlotNormal SlotKind = iota
	SlotBonus
)

func (k SlotKind) String() string {
	if k == SlotBonus {
		return "bonus"
	}
	return "normal"
}

// Slot is one action opportunity of a unit in the current round.
type Slot struct {
	Unit *model.Unit
	Kind SlotKind
}

// BonusSpeedFactor is the speed ratio over the slowest living opponent that
// earns a bonus slot.
const BonusSpeedFactor = 2

// Order computes the action slots of a round from live speeds.
//
// Living units are ordered by speed descending; equal speeds keep enumeration
// order (player roster front to back, then opponent roster). A unit whose speed
// is at least BonusSpeedFactor × the slowest living opponent's speed gets a
// bonus slot right after its normal slot. Without living opponents, or when the
// slowest opponent has speed 0, no bonus is granted.
func Order(player, opponent []*model.Unit) []Slot {
	type entry struct {
		unit  *model.Unit
		speed int
	}

	entries := make([]entry, 0, len(player)+len(opponent))
	for _, roster := range [][]*model.Unit{player, opponent} {
		for _, u := range roster {
			if u != nil && u.IsAlive() {
				entries = append(entries, entry{unit: u, speed: u.Speed()})
			}
		}
	}

	slices.SortStableFunc(entries, func(a, b entry) int {
		return b.speed - a.speed
	})

	minSpeed := map[model.Side]int{
		model.SidePlayer:   minLivingSpeed(player),
		model.SideOpponent: minLivingSpeed(opponent),
	}

	slots := make([]Slot, 0, len(entries)+len(entries)/2)
	for _, e := range entries {
		slots = append(slots, Slot{Unit: e.unit, Kind: SlotNormal})

		slowest := minSpeed[e.unit.Side().Other()]
		if slowest > 0 && e.speed >= BonusSpeedFactor*slowest {
			slots = append(slots, Slot{Unit: e.unit, Kind: SlotBonus})
		}
	}
	return slots
}

// minLivingSpeed returns the lowest speed among living units, or 0 when none live.
func minLivingSpeed(roster []*model.Unit) int {
	lowest, found := 0, false
	for _, u := range roster {
		if u == nil || !u.IsAlive() {
			continue
		}
		if s := u.Speed(); !found || s < lowest {
			lowest, found = s, true
		}
	}
	return lowest
}
