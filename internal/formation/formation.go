// Package formation converts roster files into battle-ready units.
package formation

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/autobattle/internal/config"
	"github.com/udisondev/autobattle/internal/model"
)

var (
	ErrTooManySpirits = errors.New("roster holds more than one spirit")
	ErrInvalidUnit    = errors.New("invalid unit")
)

// Entry is one unit of a roster file.
type Entry struct {
	Name      string   `yaml:"name"`
	Category  string   `yaml:"category"` // follower (default) or spirit
	Attack    int      `yaml:"attack"`
	Health    int      `yaml:"health"`
	MaxHealth int      `yaml:"max_health"` // defaults to health
	Speed     int      `yaml:"speed"`
	Elements  []string `yaml:"elements"`
	Evolution string   `yaml:"evolution"`
}

// File is a formation file: both rosters, front to back.
type File struct {
	Player   []Entry `yaml:"player"`
	Opponent []Entry `yaml:"opponent"`
}

// Load reads a formation file.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("reading formation %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("formation %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a formation document.
func Parse(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parsing formation: %w", err)
	}
	return f, nil
}

// Specs validates both rosters and converts them to unit specs.
func (f File) Specs() (player, opponent []model.UnitSpec, err error) {
	player, err = roster(model.SidePlayer, f.Player)
	if err != nil {
		return nil, nil, err
	}
	opponent, err = roster(model.SideOpponent, f.Opponent)
	if err != nil {
		return nil, nil, err
	}
	return player, opponent, nil
}

// Build creates fresh units for one battle. Ids are unique across both
// rosters, player first, starting at 1.
func (f File) Build(rules config.Status) (player, opponent []*model.Unit, err error) {
	ps, ops, err := f.Specs()
	if err != nil {
		return nil, nil, err
	}

	id := 1
	create := func(specs []model.UnitSpec) []*model.Unit {
		units := make([]*model.Unit, 0, len(specs))
		for _, s := range specs {
			units = append(units, model.NewUnit(id, s, rules))
			id++
		}
		return units
	}
	return create(ps), create(ops), nil
}

func roster(side model.Side, entries []Entry) ([]model.UnitSpec, error) {
	specs := make([]model.UnitSpec, 0, len(entries))
	spirits := 0
	for i, e := range entries {
		spec, err := e.spec(side)
		if err != nil {
			return nil, fmt.Errorf("%s roster #%d %q: %w", side, i, e.Name, err)
		}
		if spec.Category == model.CategorySpirit {
			spirits++
			if spirits > 1 {
				return nil, fmt.Errorf("%s roster: %w", side, ErrTooManySpirits)
			}
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func (e Entry) spec(side model.Side) (model.UnitSpec, error) {
	if e.Name == "" {
		return model.UnitSpec{}, fmt.Errorf("%w: name is required", ErrInvalidUnit)
	}
	if e.Attack < 0 || e.Speed < 0 || e.MaxHealth < 0 {
		return model.UnitSpec{}, fmt.Errorf("%w: negative stat", ErrInvalidUnit)
	}
	if e.Health <= 0 {
		return model.UnitSpec{}, fmt.Errorf("%w: health must be positive", ErrInvalidUnit)
	}

	category, err := model.ParseCategory(e.Category)
	if err != nil {
		return model.UnitSpec{}, fmt.Errorf("%w: %w", ErrInvalidUnit, err)
	}

	elements := make([]model.Element, 0, len(e.Elements))
	for _, name := range e.Elements {
		el, err := model.ParseElement(name)
		if err != nil {
			return model.UnitSpec{}, fmt.Errorf("%w: %w", ErrInvalidUnit, err)
		}
		elements = append(elements, el)
	}

	evolution, ok := model.ParseEvolution(e.Evolution)
	if !ok {
		slog.Warn("unknown evolution, unit fights without skill",
			"unit", e.Name,
			"evolution", e.Evolution)
	}

	return model.UnitSpec{
		Name:      e.Name,
		Side:      side,
		Category:  category,
		Attack:    e.Attack,
		Health:    e.Health,
		MaxHealth: e.MaxHealth,
		Speed:     e.Speed,
		Elements:  elements,
		Evolution: evolution,
	}, nil
}
