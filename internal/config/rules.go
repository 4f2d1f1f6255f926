package config

import "fmt"

// Battle holds battle loop rules.
type Battle struct {
	MaxRounds int `yaml:"max_rounds"` // round cap, ends as Draw (default: 100)
}

// DefaultBattle returns Battle with the 100-round safety valve.
func DefaultBattle() Battle {
	return Battle{MaxRounds: 100}
}

// Status holds default durations and magnitudes of status effects.
// Durations are in owner turns; -1 means indefinite.
type Status struct {
	FreezeDuration  int `yaml:"freeze_duration"`
	BurnDuration    int `yaml:"burn_duration"`
	StunDuration    int `yaml:"stun_duration"`
	MadnessDuration int `yaml:"madness_duration"`

	FreezeSpeedPerStack int     `yaml:"freeze_speed_per_stack"` // speed lost per Freeze stack
	BurnDamagePerStack  int     `yaml:"burn_damage_per_stack"`  // self damage per Burn stack per tick
	MadnessAttackBonus  float64 `yaml:"madness_attack_bonus"`   // +0.5 = ×1.5 attack
	LightningStunStacks int     `yaml:"lightning_stun_stacks"`  // stacks converting into Stun
}

// Validate rejects status rules that break effect lifetimes or stacking.
func (s Status) Validate() error {
	durations := []struct {
		name  string
		value int
	}{
		{"freeze_duration", s.FreezeDuration},
		{"burn_duration", s.BurnDuration},
		{"madness_duration", s.MadnessDuration},
	}
	for _, d := range durations {
		if d.value != -1 && d.value < 1 {
			return fmt.Errorf("status.%s must be -1 or >= 1, got %d", d.name, d.value)
		}
	}
	// An indefinite Stun never lets the unit act again.
	if s.StunDuration < 1 {
		return fmt.Errorf("status.stun_duration must be >= 1, got %d", s.StunDuration)
	}
	if s.LightningStunStacks < 1 {
		return fmt.Errorf("status.lightning_stun_stacks must be >= 1, got %d", s.LightningStunStacks)
	}
	if s.FreezeSpeedPerStack < 0 {
		return fmt.Errorf("status.freeze_speed_per_stack must be >= 0, got %d", s.FreezeSpeedPerStack)
	}
	if s.BurnDamagePerStack < 0 {
		return fmt.Errorf("status.burn_damage_per_stack must be >= 0, got %d", s.BurnDamagePerStack)
	}
	if s.MadnessAttackBonus < -1 {
		return fmt.Errorf("status.madness_attack_bonus must be >= -1, got %v", s.MadnessAttackBonus)
	}
	return nil
}

// DefaultStatus returns Status defaults.
func DefaultStatus() Status {
	return Status{
		FreezeDuration:      2,
		BurnDuration:        3,
		StunDuration:        1,
		MadnessDuration:     3,
		FreezeSpeedPerStack: 2,
		BurnDamagePerStack:  2,
		MadnessAttackBonus:  0.5,
		LightningStunStacks: 3,
	}
}

// Combat holds damage resolution rules.
type Combat struct {
	FrozenDamageBonus float64 `yaml:"frozen_damage_bonus"` // +0.2 vs frozen targets
	MinDamage         int     `yaml:"min_damage"`          // damage floor (default: 1)
}

// Validate rejects damage rules that would make attacks heal or go negative.
func (c Combat) Validate() error {
	if c.FrozenDamageBonus < -1 {
		return fmt.Errorf("combat.frozen_damage_bonus must be >= -1, got %v", c.FrozenDamageBonus)
	}
	if c.MinDamage < 0 {
		return fmt.Errorf("combat.min_damage must be >= 0, got %d", c.MinDamage)
	}
	return nil
}

// DefaultCombat returns Combat defaults.
func DefaultCombat() Combat {
	return Combat{
		FrozenDamageBonus: 0.2,
		MinDamage:         1,
	}
}

// Skills holds evolution skill tuning.
type Skills struct {
	CleaveRatio   float64 `yaml:"cleave_ratio"`   // splash share of attacker attack
	CleaveTargets int     `yaml:"cleave_targets"` // additional enemies hit

	LuckChancePercent int `yaml:"luck_chance_percent"` // chance per roll of an extra strike
	LuckMinDamage     int `yaml:"luck_min_damage"`
	LuckMaxDamage     int `yaml:"luck_max_damage"`
	LuckChainCap      int `yaml:"luck_chain_cap"` // hard cap of extra strikes per attack

	IncomeBase     int `yaml:"income_base"`     // gold per turn end
	IncomeVariance int `yaml:"income_variance"` // extra gold in [0, variance]

	MercenaryFee         int     `yaml:"mercenary_fee"`          // gold per attack
	MercenaryAttackBonus float64 `yaml:"mercenary_attack_bonus"` // PercentAdd while paid

	SummonHealth int `yaml:"summon_health"` // health of a summoned copy
}

// Validate rejects skill tuning outside the ranges the skills can honour.
func (s Skills) Validate() error {
	switch {
	case s.CleaveRatio < 0:
		return fmt.Errorf("skills.cleave_ratio must be >= 0, got %v", s.CleaveRatio)
	case s.CleaveTargets < 0:
		return fmt.Errorf("skills.cleave_targets must be >= 0, got %d", s.CleaveTargets)
	case s.LuckChancePercent < 0 || s.LuckChancePercent > 100:
		return fmt.Errorf("skills.luck_chance_percent must be in [0, 100], got %d", s.LuckChancePercent)
	case s.LuckMinDamage < 0 || s.LuckMaxDamage < s.LuckMinDamage:
		return fmt.Errorf("skills.luck damage range [%d, %d] is invalid", s.LuckMinDamage, s.LuckMaxDamage)
	case s.LuckChainCap < 0:
		return fmt.Errorf("skills.luck_chain_cap must be >= 0, got %d", s.LuckChainCap)
	case s.IncomeBase < 0 || s.IncomeVariance < 0:
		return fmt.Errorf("skills.income_base and income_variance must be >= 0")
	case s.MercenaryFee < 0:
		return fmt.Errorf("skills.mercenary_fee must be >= 0, got %d", s.MercenaryFee)
	case s.SummonHealth < 1:
		return fmt.Errorf("skills.summon_health must be >= 1, got %d", s.SummonHealth)
	}
	return nil
}

// DefaultSkills returns Skills defaults.
func DefaultSkills() Skills {
	return Skills{
		CleaveRatio:          0.5,
		CleaveTargets:        2,
		LuckChancePercent:    25,
		LuckMinDamage:        1,
		LuckMaxDamage:        3,
		LuckChainCap:         8,
		IncomeBase:           1,
		IncomeVariance:       2,
		MercenaryFee:         1,
		MercenaryAttackBonus: 0.25,
		SummonHealth:         1,
	}
}
