package paging

import (
	"context"
	"time"
)

//go:generate mockgen -source autoplay.go -destination autoplay_mocks.go -package paging

// Ticker is an abstraction of a ticker from standard time package.
// It contains a channel which produces ticks at certain intervals
// defined by implementations. When the ticker is stopped, no more
// ticks will be sent via the channel.
type Ticker interface {

	// C returns the channel on which the ticks are delivered.
	C() <-chan time.Time

	// Stop turns off a ticker. After Stop, no more ticks will be sent.
	Stop()
}

// TimeTicker is a wrapper around time.Ticker, which is a Ticker
// implementation based on the standard library.
type TimeTicker struct {
	ticker *time.Ticker
}

// NewTimeTicker creates a new TimeTicker firing every d.
func NewTimeTicker(d time.Duration) TimeTicker {
	return TimeTicker{time.NewTicker(d)}
}

func (t TimeTicker) C() <-chan time.Time {
	return t.ticker.C
}

func (t TimeTicker) Stop() {
	t.ticker.Stop()
}

// Player drives a simulator one step per tick, the way an auto-play timer
// would. Stopping is simply not scheduling further steps.
type Player struct {
	sim    *Simulator
	ticker Ticker
}

// NewPlayer creates a player stepping sim on every tick of ticker
func NewPlayer(sim *Simulator, ticker Ticker) *Player {
	return &Player{sim: sim, ticker: ticker}
}

// Play steps the simulator on each tick until the sequence is exhausted or
// ctx is cancelled, passing every record to onStep. The ticker is stopped
// on return. A cancelled run can be resumed with a new player.
func (p *Player) Play(ctx context.Context, onStep func(StepRecord)) error {
	defer p.ticker.Stop()

	for p.sim.State() != StateCompleted {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-p.ticker.C():
			record, err := p.sim.Step()
			if err != nil {
				return err
			}
			if onStep != nil {
				onStep(record)
			}
		}
	}
	return nil
}
