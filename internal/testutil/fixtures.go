package testutil

import (
	"github.com/udisondev/autobattle/internal/config"
	"github.com/udisondev/autobattle/internal/model"
)

// Fixtures содержит типовые юниты для тестов боя,
// чтобы не дублировать статы в каждом тесте.
var Fixtures = struct {
	// Golden scenario: A (10/20/5) против B (8/15/5)
	UnitA model.UnitSpec
	UnitB model.UnitSpec

	// Юниты без урона для проверки лимита раундов
	Pacifist model.UnitSpec
}{
	UnitA:    model.UnitSpec{Name: "A", Attack: 10, Health: 20, Speed: 5},
	UnitB:    model.UnitSpec{Name: "B", Attack: 8, Health: 15, Speed: 5},
	Pacifist: model.UnitSpec{Name: "Pacifist", Attack: 0, Health: 1000, Speed: 3},
}

// RosterBuilder собирает ростеры с уникальными ID юнитов.
type RosterBuilder struct {
	nextID int
	rules  config.Status
}

// NewRosterBuilder создаёт builder с дефолтными правилами статусов.
func NewRosterBuilder() *RosterBuilder {
	return &RosterBuilder{nextID: 1, rules: config.DefaultStatus()}
}

// Unit создаёт юнит на стороне side.
func (b *RosterBuilder) Unit(side model.Side, spec model.UnitSpec) *model.Unit {
	spec.Side = side
	u := model.NewUnit(b.nextID, spec, b.rules)
	b.nextID++
	return u
}

// Player создаёт ростер игрока в порядке specs.
func (b *RosterBuilder) Player(specs ...model.UnitSpec) []*model.Unit {
	return b.roster(model.SidePlayer, specs)
}

// Opponent создаёт ростер противника в порядке specs.
func (b *RosterBuilder) Opponent(specs ...model.UnitSpec) []*model.Unit {
	return b.roster(model.SideOpponent, specs)
}

// NextID возвращает следующий свободный ID.
func (b *RosterBuilder) NextID() int {
	return b.nextID
}

func (b *RosterBuilder) roster(side model.Side, specs []model.UnitSpec) []*model.Unit {
	units := make([]*model.Unit, 0, len(specs))
	for _, spec := range specs {
		units = append(units, b.Unit(side, spec))
	}
	return units
}

// Spec возвращает копию spec с изменёнными статами.
func Spec(name string, attack, health, speed int) model.UnitSpec {
	return model.UnitSpec{Name: name, Attack: attack, Health: health, Speed: speed}
}
