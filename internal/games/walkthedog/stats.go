package walkthedog

import (
	"time"

	"github.com/vovakirdan/walk-the-dog/internal/storage"
)

// Stats summarizes a run. It is updated once per simulation step.
type Stats struct {
	Ticks    int64 // Simulation steps taken
	Distance int64 // Total horizontal pixels travelled in either direction
	MaxX     int16 // Rightmost position reached
	Slides   int   // Slides started
	Started  time.Time
}

// Duration returns the simulated time of the run at 60 steps per second.
func (s Stats) Duration() time.Duration {
	return time.Duration(s.Ticks) * time.Second / 60
}

func (s *Stats) record(before, after StateMachine) {
	s.Ticks++

	dx := after.Context().Position.X - before.Context().Position.X
	if dx < 0 {
		dx = -dx
	}
	s.Distance += int64(dx)

	if x := after.Context().Position.X; x > s.MaxX {
		s.MaxX = x
	}
}

// Run converts the stats to a run history record.
func (s Stats) Run(session, host string) storage.Run {
	return storage.Run{
		Session:    session,
		Host:       host,
		Ticks:      s.Ticks,
		Distance:   s.Distance,
		MaxX:       int(s.MaxX),
		Slides:     s.Slides,
		DurationMS: s.Duration().Milliseconds(),
	}
}
