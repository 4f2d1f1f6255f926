package battle

import (
	"context"
	"time"

	"github.com/udisondev/autobattle/internal/config"
	"github.com/udisondev/autobattle/internal/model"
)

// Run steps the battle to its end, suspending for the pacing delays strictly
// between slots. Zero delays run it synchronously with the same outcome.
//
// Cancelling ctx concedes the battle for the player at the next slot boundary;
// Run then returns the outcome together with ctx.Err().
func (l *Loop) Run(ctx context.Context, pacing config.Pacing) (model.Outcome, error) {
	for {
		if ctx.Err() != nil {
			return l.abort(ctx)
		}

		more, err := l.Step()
		if err != nil {
			return l.Outcome(), err
		}
		if !more {
			return l.Outcome(), nil
		}

		delay := pacing.SlotDelay
		if !l.roundOpen {
			delay = pacing.RoundDelay
		}
		if err := wait(ctx, delay); err != nil {
			return l.abort(ctx)
		}
	}
}

func (l *Loop) abort(ctx context.Context) (model.Outcome, error) {
	if l.Running() {
		_ = l.Surrender(model.SidePlayer)
		_, _ = l.Step()
	}
	return l.Outcome(), ctx.Err()
}

// wait suspends for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
