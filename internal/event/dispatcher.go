package event

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/udisondev/autobattle/internal/model"
)

// sink is one listener with its own outbox goroutine.
type sink struct {
	listener Listener
	outbox   chan func(Listener)
}

// Dispatcher delivers events to listeners asynchronously through bounded
// per-listener queues. Publishing never blocks: when a listener's queue is
// full the event is dropped for that listener.
//
// Thread-safe.
type Dispatcher struct {
	mu        sync.RWMutex
	sinks     []*sink
	queueSize int
	closed    bool
	wg        sync.WaitGroup
	dropped   atomic.Int64
}

// NewDispatcher starts one delivery goroutine per listener.
func NewDispatcher(queueSize int, listeners ...Listener) *Dispatcher {
	if queueSize < 1 {
		queueSize = 1
	}
	d := &Dispatcher{sinks: make([]*sink, 0, len(listeners)), queueSize: queueSize}
	for _, l := range listeners {
		d.Subscribe(l)
	}
	return d
}

// Subscribe adds a listener. Earlier events are not replayed to it.
func (d *Dispatcher) Subscribe(l Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	s := &sink{listener: l, outbox: make(chan func(Listener), d.queueSize)}
	d.sinks = append(d.sinks, s)
	d.wg.Add(1)
	go d.deliver(s)
}

func (d *Dispatcher) deliver(s *sink) {
	defer d.wg.Done()
	for fn := range s.outbox {
		fn(s.listener)
	}
}

func (d *Dispatcher) publish(kind string, fn func(Listener)) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}
	for _, s := range d.sinks {
		select {
		case s.outbox <- fn:
		default:
			d.dropped.Add(1)
			slog.Warn("event dropped, listener queue full", "event", kind)
		}
	}
}

// Close stops accepting events and waits until queued events are delivered.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, s := range d.sinks {
		close(s.outbox)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// Dropped returns the number of events dropped so far.
func (d *Dispatcher) Dropped() int64 {
	return d.dropped.Load()
}

func (d *Dispatcher) OnBattleEnd(outcome model.Outcome) {
	d.publish("battle_end", func(l Listener) { l.OnBattleEnd(outcome) })
}

func (d *Dispatcher) OnTurnStart(round int) {
	d.publish("turn_start", func(l Listener) { l.OnTurnStart(round) })
}

func (d *Dispatcher) OnTurnEnd(round int) {
	d.publish("turn_end", func(l Listener) { l.OnTurnEnd(round) })
}

func (d *Dispatcher) OnDamageDealt(attacker, target UnitRef, amount int) {
	d.publish("damage_dealt", func(l Listener) { l.OnDamageDealt(attacker, target, amount) })
}
