package walkthedog

import (
	"testing"

	"github.com/vovakirdan/walk-the-dog/internal/core"
)

// machineIn builds a machine in the given state with a non-trivial context.
func machineIn(tag StateTag, frame uint8) StateMachine {
	return StateMachine{
		tag: tag,
		ctx: Context{
			Frame:    frame,
			Position: core.Point{X: 42, Y: Floor},
			Velocity: core.Point{X: -RunningSpeed, Y: 0},
		},
	}
}

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		from      StateTag
		event     Event
		to        StateTag
		velocityX int16
	}{
		{Idle, EventRun, Running, RunningSpeed},
		{Idle, EventBack, Backing, -RunningSpeed},
		{Running, EventBack, Backing, -RunningSpeed},
		{Running, EventSlide, Sliding, -RunningSpeed},
		{Backing, EventRun, Running, RunningSpeed},
	}

	for _, tc := range tests {
		t.Run(tc.from.String()+"+"+tc.event.String(), func(t *testing.T) {
			m := machineIn(tc.from, 5)
			got := m.Transition(tc.event)

			if got.State() != tc.to {
				t.Errorf("State() = %v, expected %v", got.State(), tc.to)
			}
			if got.Context().Frame != 0 {
				t.Errorf("Frame = %d, expected 0", got.Context().Frame)
			}
			if got.Context().Velocity.X != tc.velocityX {
				t.Errorf("Velocity.X = %d, expected %d", got.Context().Velocity.X, tc.velocityX)
			}
			if got.Context().Position != m.Context().Position {
				t.Errorf("Position = %v, expected unchanged %v", got.Context().Position, m.Context().Position)
			}
		})
	}
}

func TestUnlistedTransitionsAreNoOps(t *testing.T) {
	tests := []struct {
		from  StateTag
		event Event
	}{
		{Idle, EventSlide},
		{Running, EventRun},
		{Backing, EventBack},
		{Backing, EventSlide},
		{Sliding, EventRun},
		{Sliding, EventBack},
		{Sliding, EventSlide},
	}

	for _, tc := range tests {
		t.Run(tc.from.String()+"+"+tc.event.String(), func(t *testing.T) {
			m := machineIn(tc.from, 7)
			if got := m.Transition(tc.event); got != m {
				t.Errorf("Transition(%v) = %+v, expected unchanged %+v", tc.event, got, m)
			}
		})
	}
}

func TestTransitionDoesNotModifyReceiver(t *testing.T) {
	m := NewStateMachine()
	_ = m.Transition(EventRun)
	_ = m.Update()

	if m != NewStateMachine() {
		t.Errorf("receiver changed to %+v", m)
	}
}

func TestNewStateMachine(t *testing.T) {
	m := NewStateMachine()
	ctx := m.Context()

	if m.State() != Idle {
		t.Errorf("State() = %v, expected Idle", m.State())
	}
	if ctx.Frame != 0 || ctx.Position != (core.Point{X: 0, Y: 475}) || ctx.Velocity != (core.Point{}) {
		t.Errorf("Context() = %+v, expected frame 0 at (0,475) at rest", ctx)
	}
}

func TestUpdateWrapsFrame(t *testing.T) {
	tests := []struct {
		tag    StateTag
		length uint8
	}{
		{Idle, IdleFrames},
		{Running, RunningFrames},
		{Backing, RunningFrames},
	}

	for _, tc := range tests {
		t.Run(tc.tag.String(), func(t *testing.T) {
			m := machineIn(tc.tag, 0)
			if m.AnimationLength() != tc.length {
				t.Fatalf("AnimationLength() = %d, expected %d", m.AnimationLength(), tc.length)
			}

			for i := 1; i < int(tc.length); i++ {
				m = m.Update()
				if int(m.Context().Frame) != i {
					t.Fatalf("after %d updates Frame = %d, expected %d", i, m.Context().Frame, i)
				}
			}

			m = m.Update()
			if m.Context().Frame != 0 {
				t.Errorf("after %d updates Frame = %d, expected 0", tc.length, m.Context().Frame)
			}
			if m.State() != tc.tag {
				t.Errorf("State() = %v, expected %v", m.State(), tc.tag)
			}
		})
	}
}

func TestFrameStaysBelowAnimationLength(t *testing.T) {
	m := NewStateMachine()
	events := []Event{EventRun, EventSlide, EventBack, EventRun, EventSlide}

	for i := 0; i < 500; i++ {
		if i%37 == 0 {
			m = m.Transition(events[(i/37)%len(events)])
		}
		m = m.Update()
		if m.Context().Frame >= m.AnimationLength() {
			t.Fatalf("step %d: Frame = %d in %v, expected < %d", i, m.Context().Frame, m.State(), m.AnimationLength())
		}
	}
}

func TestUpdateMovesOncePerStep(t *testing.T) {
	m := NewStateMachine().Transition(EventBack)
	for i := 0; i < 10; i++ {
		m = m.Update()
	}
	if got := m.Context().Position; got != (core.Point{X: -30, Y: Floor}) {
		t.Errorf("Position = %v, expected (-30, %d)", got, Floor)
	}
}

func TestSlidingEndsOnLastFrame(t *testing.T) {
	m := machineIn(Sliding, SlidingFrames-1)
	got := m.Update()

	if got.State() != Running {
		t.Errorf("State() = %v, expected Running", got.State())
	}
	if got.Context().Frame != 0 {
		t.Errorf("Frame = %d, expected 0", got.Context().Frame)
	}
	if got.Context().Position.X != m.Context().Position.X+m.Context().Velocity.X {
		t.Errorf("Position.X = %d, expected one velocity step", got.Context().Position.X)
	}
}

func TestIdleThenRunScenario(t *testing.T) {
	m := NewStateMachine()
	for i := 0; i < 3; i++ {
		m = m.Update()
	}
	if m.Context().Frame != 3 || m.Context().Position != (core.Point{X: 0, Y: 475}) {
		t.Fatalf("after 3 updates Context() = %+v, expected frame 3 at (0,475)", m.Context())
	}

	m = m.Transition(EventRun)
	if m.State() != Running || m.Context().Frame != 0 || m.Context().Velocity != (core.Point{X: 3}) {
		t.Fatalf("after Run = %v %+v, expected Running frame 0 velocity (3,0)", m.State(), m.Context())
	}

	m = m.Update()
	if m.Context().Frame != 1 || m.Context().Position != (core.Point{X: 3, Y: 475}) {
		t.Errorf("after Update Context() = %+v, expected frame 1 at (3,475)", m.Context())
	}
}

func TestSlideScenario(t *testing.T) {
	m := NewStateMachine().Transition(EventRun).Transition(EventSlide)
	if m.State() != Sliding || m.Context().Frame != 0 {
		t.Fatalf("after Slide = %v frame %d, expected Sliding frame 0", m.State(), m.Context().Frame)
	}

	for i := 1; i < int(SlidingFrames); i++ {
		m = m.Update()
		if m.State() != Sliding {
			t.Fatalf("update %d: State() = %v, expected Sliding", i, m.State())
		}
	}

	m = m.Update()
	if m.State() != Running || m.Context().Frame != 0 {
		t.Errorf("update %d: %v frame %d, expected Running frame 0", SlidingFrames, m.State(), m.Context().Frame)
	}
	if m.Context().Velocity.X != RunningSpeed {
		t.Errorf("Velocity.X = %d, expected %d", m.Context().Velocity.X, RunningSpeed)
	}
}

func TestSpriteName(t *testing.T) {
	tests := []struct {
		tag      StateTag
		frame    uint8
		expected string
	}{
		{Idle, 0, "Idle (1).png"},
		{Idle, 2, "Idle (1).png"},
		{Idle, 3, "Idle (2).png"},
		{Idle, 28, "Idle (10).png"},
		{Running, 22, "Run (8).png"},
		{Backing, 4, "Run (2).png"},
		{Sliding, 13, "Slide (5).png"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			if got := machineIn(tc.tag, tc.frame).SpriteName(); got != tc.expected {
				t.Errorf("SpriteName() = %q, expected %q", got, tc.expected)
			}
		})
	}
}
