package event

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/blake2b"

	"github.com/udisondev/autobattle/internal/model"
)

// Kind is the type of a recorded event.
type Kind int8

const (
	KindTurnStart Kind = iota
	KindTurnEnd
	KindDamageDealt
	KindBattleEnd
)

func (k Kind) String() string {
	switch k {
	case KindTurnStart:
		return "turn_start"
	case KindTurnEnd:
		return "turn_end"
	case KindDamageDealt:
		return "damage_dealt"
	case KindBattleEnd:
		return "battle_end"
	default:
		return "unknown"
	}
}

// Record is one entry of a battle transcript.
type Record struct {
	Kind     Kind
	Round    int
	Attacker UnitRef
	Target   UnitRef
	Amount   int
	Outcome  model.Outcome
}

func (r Record) String() string {
	switch r.Kind {
	case KindDamageDealt:
		return fmt.Sprintf("r%d %s %s#%d(%s)->%s#%d(%s) %d", r.Round, r.Kind,
			r.Attacker.Name, r.Attacker.ID, r.Attacker.Side,
			r.Target.Name, r.Target.ID, r.Target.Side, r.Amount)
	case KindBattleEnd:
		return fmt.Sprintf("r%d %s %s", r.Round, r.Kind, r.Outcome)
	default:
		return fmt.Sprintf("r%d %s", r.Round, r.Kind)
	}
}

// Log records the battle transcript. Two runs with the same rosters, rules
// and seed produce identical transcripts and digests.
//
// Thread-safe.
type Log struct {
	mu      sync.Mutex
	round   int
	records []Record
}

// NewLog creates an empty transcript.
func NewLog() *Log {
	return &Log{records: make([]Record, 0, 64)}
}

func (l *Log) add(r Record) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if r.Kind == KindTurnStart {
		l.round = r.Round
	}
	if r.Round == 0 {
		r.Round = l.round
	}
	l.records = append(l.records, r)
}

func (l *Log) OnBattleEnd(outcome model.Outcome) {
	l.add(Record{Kind: KindBattleEnd, Outcome: outcome})
}

func (l *Log) OnTurnStart(round int) {
	l.add(Record{Kind: KindTurnStart, Round: round})
}

func (l *Log) OnTurnEnd(round int) {
	l.add(Record{Kind: KindTurnEnd, Round: round})
}

func (l *Log) OnDamageDealt(attacker, target UnitRef, amount int) {
	l.add(Record{Kind: KindDamageDealt, Attacker: attacker, Target: target, Amount: amount})
}

// Records returns a copy of the transcript.
func (l *Log) Records() []Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Filter returns the records of kind k.
func (l *Log) Filter(k Kind) []Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []Record
	for _, r := range l.records {
		if r.Kind == k {
			out = append(out, r)
		}
	}
	return out
}

// Digest returns the BLAKE2b-256 digest of the transcript.
func (l *Log) Digest() [blake2b.Size256]byte {
	l.mu.Lock()
	defer l.mu.Unlock()

	h, _ := blake2b.New256(nil) // nil key never fails
	for _, r := range l.records {
		fmt.Fprintln(h, r.String())
	}
	var sum [blake2b.Size256]byte
	copy(sum[:], h.Sum(nil))
	return sum
}
