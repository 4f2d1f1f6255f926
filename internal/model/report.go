package model

import "time"

// BattleReport is the persisted summary of a finished battle.
type BattleReport struct {
	ID         string
	Seed       uint64
	Outcome    Outcome
	Rounds     int
	Surrender  bool
	Digest     []byte // transcript digest, equal for equal runs
	StartedAt  time.Time
	FinishedAt time.Time
	Units      []UnitReport
}

// UnitReport is the per-unit line of a BattleReport.
type UnitReport struct {
	UnitID      int
	Name        string
	Side        Side
	Evolution   Evolution
	Summoned    bool
	Alive       bool
	DamageDealt int
	DamageTaken int
}

// NewUnitReport snapshots u.
func NewUnitReport(u *Unit) UnitReport {
	return UnitReport{
		UnitID:      u.ID(),
		Name:        u.Name(),
		Side:        u.Side(),
		Evolution:   u.Evolution(),
		Summoned:    u.Summoned(),
		Alive:       u.IsAlive(),
		DamageDealt: u.DamageDealt(),
		DamageTaken: u.DamageTaken(),
	}
}
