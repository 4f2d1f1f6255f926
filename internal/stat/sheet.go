package stat

// Sheet holds one Engine per stat of a unit.
type Sheet struct {
	engines [len(All)]*Engine
}

// NewSheet creates a Sheet with the given base values.
func NewSheet(attack, health, maxHealth, speed float64) *Sheet {
	s := &Sheet{}
	s.engines[Attack] = NewEngine(attack)
	s.engines[Health] = NewEngine(health)
	s.engines[MaxHealth] = NewEngine(maxHealth)
	s.engines[Speed] = NewEngine(speed)
	return s
}

// Engine returns the engine of id, or nil for an unknown id.
func (s *Sheet) Engine(id ID) *Engine {
	if id < 0 || int(id) >= len(s.engines) {
		return nil
	}
	return s.engines[id]
}

// AddModifier adds or overwrites the (stat, mod.SourceID) modifier.
func (s *Sheet) AddModifier(id ID, mod Modifier) {
	if e := s.Engine(id); e != nil {
		e.AddModifier(mod)
	}
}

// RemoveModifier removes the (stat, sourceID) modifier. Unknown pairs are a no-op.
func (s *Sheet) RemoveModifier(sourceID int, id ID) bool {
	if e := s.Engine(id); e != nil {
		return e.RemoveModifier(sourceID)
	}
	return false
}

// Value returns the effective value of id.
func (s *Sheet) Value(id ID) float64 {
	if e := s.Engine(id); e != nil {
		return e.Value()
	}
	return 0
}

// Int returns the effective value of id rounded half away from zero.
func (s *Sheet) Int(id ID) int {
	if e := s.Engine(id); e != nil {
		return e.Int()
	}
	return 0
}

// SetBase replaces the base value of id.
func (s *Sheet) SetBase(id ID, value float64) {
	if e := s.Engine(id); e != nil {
		e.SetBase(value)
	}
}
