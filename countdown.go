package main

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// StartCountdown begins a staged reveal: one broadcast per one-second tick,
// then a reveal when the ticks run out. Starting while a countdown is
// already running restarts it (last caller wins); starting on a revealed
// room is a no-op. The generation counter ties each tick to the countdown
// that scheduled it, so a newRound, reveal, or room removal in between
// invalidates the stale timer instead of letting it flip the room.
func (r *Room) StartCountdown(ctx context.Context, clock clockwork.Clock, ticks int) bool {
	r.lock.Lock()
	if r.revealed {
		r.lock.Unlock()
		return false
	}
	r.countdownGen++
	gen := r.countdownGen
	r.counting = true
	r.countdown = ticks
	r.lock.Unlock()
	r.BroadcastState()
	go r.runCountdown(ctx, clock, gen)
	return true
}

func (r *Room) runCountdown(ctx context.Context, clock clockwork.Clock, gen int) {
	ticker := clock.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			done, stale := r.tick(gen)
			if stale {
				return
			}
			r.BroadcastState()
			if done {
				return
			}
		}
	}
}

// tick decrements the countdown and performs the reveal on the final tick.
// A tick whose generation no longer matches is stale and applies nothing.
func (r *Room) tick(gen int) (done, stale bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if gen != r.countdownGen || !r.counting {
		return false, true
	}
	r.countdown--
	if r.countdown <= 0 {
		r.counting = false
		r.revealed = true
		return true, false
	}
	return false, false
}
