package locomotion

import (
	"fmt"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/stride/game"
)

const (
	frameDt = float32(1) / 60
	fixedDt = float32(0.02)
)

func TestNewRejectsInvalidConfiguration(t *testing.T) {
	env := &mockEnv{grounded: true}
	if _, err := New(nil, env, DefaultOptions()); err == nil {
		t.Fatal("expected error for nil body")
	}
	if _, err := New(&mockBody{}, nil, DefaultOptions()); err == nil {
		t.Fatal("expected error for nil environment")
	}

	opts := DefaultOptions()
	opts.Gears = opts.Gears[:2]
	if _, err := New(&mockBody{}, env, opts); err == nil {
		t.Fatal("expected error for gear table shorter than max gear")
	}

	opts = DefaultOptions()
	opts.WalkSpeed = float32(math32.NaN())
	if _, err := New(&mockBody{}, env, opts); err == nil {
		t.Fatal("expected error for NaN walk speed")
	}
}

func TestTransitionTable(t *testing.T) {
	expected := func(from State, grounded, onSlope, edge bool) State {
		switch from {
		case StateGrounded:
			if !grounded {
				return StateInAir
			}
			if onSlope {
				return StateOnSlope
			}
		case StateInAir:
			if grounded {
				return StateGrounded
			}
			if onSlope {
				return StateOnSlope
			}
			if edge {
				return StateOnEdge
			}
		case StateOnSlope:
			if grounded && !onSlope {
				return StateGrounded
			}
			if !grounded && !onSlope {
				return StateInAir
			}
		case StateOnEdge:
			if !edge {
				if grounded {
					return StateGrounded
				}
				return StateInAir
			}
		}
		return from
	}

	for _, from := range []State{StateGrounded, StateInAir, StateOnSlope, StateOnEdge, StateOnWall} {
		for mask := range 8 {
			grounded, onSlope, edge := mask&1 != 0, mask&2 != 0, mask&4 != 0
			name := fmt.Sprintf("%v/grounded=%v/slope=%v/edge=%v", from, grounded, onSlope, edge)
			t.Run(name, func(t *testing.T) {
				env := &mockLedgeEnv{mockEnv: &mockEnv{grounded: grounded}}
				if onSlope {
					env.slope = &SlopeContact{Normal: mgl32.Vec3{0, 1, 0}}
				}
				if edge {
					env.edge = &EdgeContact{Direction: mgl32.Vec3{0, 0, 1}, Ref: "ledge"}
				}
				c := newTestController(t, &mockBody{}, env)
				c.state = from

				c.Update(frameDt, &InputSample{})
				if want := expected(from, grounded, onSlope, edge); c.State() != want {
					t.Fatalf("expected %v, got %v", want, c.State())
				}
			})
		}
	}
}

func TestTransitionsAreDeterministic(t *testing.T) {
	run := func() []Transition {
		env := &mockLedgeEnv{mockEnv: &mockEnv{grounded: true}}
		c := newTestController(t, &mockBody{}, env)
		steps := []func(){
			func() { env.grounded = false },
			func() { env.edge = &EdgeContact{Direction: mgl32.Vec3{1, 0, 0}} },
			func() { env.edge = nil },
			func() { env.slope = &SlopeContact{Normal: mgl32.Vec3{0, 1, 0}} },
			func() { env.grounded, env.slope = true, nil },
		}
		for _, step := range steps {
			step()
			c.Update(frameDt, &InputSample{})
		}
		var out []Transition
		for tr := range c.Transitions() {
			out = append(out, tr)
		}
		return out
	}

	first, second := run(), run()
	if len(first) != 5 {
		t.Fatalf("expected 5 transitions, got %d: %v", len(first), first)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("transition %d differs between runs: %v vs %v", i, first[i], second[i])
		}
	}
	want := []State{StateInAir, StateOnEdge, StateInAir, StateOnSlope, StateGrounded}
	for i, tr := range first {
		if tr.To != want[i] {
			t.Fatalf("transition %d: expected %v, got %v", i, want[i], tr.To)
		}
	}
}

func TestOnWallIsNeverEntered(t *testing.T) {
	env := &mockLedgeEnv{mockEnv: &mockEnv{}}
	c := newTestController(t, &mockBody{}, env)
	for i := range 64 {
		env.grounded = i%2 == 0
		if i%3 == 0 {
			env.slope = &SlopeContact{Normal: mgl32.Vec3{0, 1, 0}}
		} else {
			env.slope = nil
		}
		if i%5 == 0 {
			env.edge = &EdgeContact{Direction: mgl32.Vec3{0, 0, 1}}
		} else {
			env.edge = nil
		}
		c.Update(frameDt, &InputSample{Jump: i%4 == 0})
		if c.State() == StateOnWall {
			t.Fatalf("frame %d entered %v", i, c.State())
		}
	}
}

func TestGroundedJump(t *testing.T) {
	body := &mockBody{}
	c := newTestController(t, body, &mockEnv{grounded: true})

	in := &InputSample{Jump: true}
	c.Update(frameDt, in)
	if in.Jump {
		t.Fatal("expected jump to be consumed")
	}
	if len(body.impulses) != 1 || body.impulses[0] != (mgl32.Vec3{0, game.DefaultJumpForce, 0}) {
		t.Fatalf("expected a single vertical jump impulse, got %v", body.impulses)
	}
}

func TestAirborneJumpIsDropped(t *testing.T) {
	body := &mockBody{}
	env := &mockEnv{}
	c := newTestController(t, body, env)
	c.Update(frameDt, &InputSample{})
	if c.State() != StateInAir {
		t.Fatalf("expected %v, got %v", StateInAir, c.State())
	}

	in := &InputSample{Jump: true}
	c.Update(frameDt, in)
	if in.Jump {
		t.Fatal("expected airborne jump request to be consumed")
	}
	if len(body.impulses) != 0 {
		t.Fatalf("expected no impulse while airborne, got %v", body.impulses)
	}
}

func TestHeldJumpWaitsForTimeout(t *testing.T) {
	body := &mockBody{}
	c := newTestController(t, body, &mockEnv{grounded: true})

	c.Update(frameDt, &InputSample{Jump: true})
	// The body has not moved yet, so it still reports ground on the next frame.
	body.vel = mgl32.Vec3{}
	in := &InputSample{Jump: true}
	c.Update(frameDt, in)
	if in.Jump {
		t.Fatal("expected the early jump request to be consumed")
	}
	if len(body.impulses) != 1 {
		t.Fatalf("expected the jump timeout to drop the second jump, got %v", body.impulses)
	}

	for range 6 {
		c.Update(frameDt, &InputSample{})
	}
	c.Update(frameDt, &InputSample{Jump: true})
	if len(body.impulses) != 2 {
		t.Fatalf("expected a jump once the timeout passed, got %v", body.impulses)
	}
}

func TestRisingJumpIsDropped(t *testing.T) {
	body := &mockBody{vel: mgl32.Vec3{0, 5, 0}}
	c := newTestController(t, body, &mockEnv{grounded: true}, func(o *Options) { o.JumpTimeout = 0 })

	c.Update(frameDt, &InputSample{Jump: true})
	if len(body.impulses) != 0 {
		t.Fatalf("expected no impulse while rising, got %v", body.impulses)
	}
	body.vel = mgl32.Vec3{}
	c.Update(frameDt, &InputSample{Jump: true})
	if len(body.impulses) != 1 {
		t.Fatalf("expected a jump once the body stopped rising, got %v", body.impulses)
	}
}

func TestLandingRestartsJumpTimeout(t *testing.T) {
	body := &mockBody{}
	env := &mockEnv{}
	c := newTestController(t, body, env)
	c.Update(frameDt, &InputSample{})
	env.grounded = true
	c.Update(frameDt, &InputSample{})
	if c.State() != StateGrounded {
		t.Fatalf("expected %v, got %v", StateGrounded, c.State())
	}

	c.Update(frameDt, &InputSample{Jump: true})
	if len(body.impulses) != 0 {
		t.Fatalf("expected no jump straight after landing, got %v", body.impulses)
	}
	for range 6 {
		c.Update(frameDt, &InputSample{})
	}
	c.Update(frameDt, &InputSample{Jump: true})
	if len(body.impulses) != 1 {
		t.Fatalf("expected a jump after the timeout, got %v", body.impulses)
	}
}

func TestLastTransition(t *testing.T) {
	env := &mockEnv{grounded: true}
	c := newTestController(t, &mockBody{}, env)
	c.Update(frameDt, &InputSample{})
	if _, ok := c.LastTransition(); ok {
		t.Fatal("expected no transition before the state changed")
	}

	env.grounded = false
	c.Update(frameDt, &InputSample{})
	tr, ok := c.LastTransition()
	if !ok || tr != (Transition{Frame: 2, From: StateGrounded, To: StateInAir}) {
		t.Fatalf("unexpected last transition %+v (ok=%v)", tr, ok)
	}
}

func TestAirTimeResetsOnLanding(t *testing.T) {
	env := &mockEnv{}
	c := newTestController(t, &mockBody{}, env)
	for range 10 {
		c.Update(0.1, &InputSample{})
	}
	if c.AirTime() < 0.8 {
		t.Fatalf("expected air time to accumulate, got %v", c.AirTime())
	}

	env.grounded = true
	c.Update(0.1, &InputSample{})
	if c.State() != StateGrounded || c.AirTime() != 0 {
		t.Fatalf("expected grounded with zero air time, got %v with %v", c.State(), c.AirTime())
	}
}

func TestSlopeFlipFlopGuard(t *testing.T) {
	env := &mockEnv{grounded: true, slope: &SlopeContact{Normal: mgl32.Vec3{0, 1, 0}}}
	c := newTestController(t, &mockBody{}, env)
	for range 5 {
		c.Update(frameDt, &InputSample{})
		if c.State() != StateOnSlope {
			t.Fatalf("expected body touching ground and slope to stay on slope, got %v", c.State())
		}
	}
	if c.Snapshot().Slope == nil {
		t.Fatal("expected slope contact in snapshot while on slope")
	}

	env.slope = nil
	c.Update(frameDt, &InputSample{})
	if c.State() != StateGrounded {
		t.Fatalf("expected %v, got %v", StateGrounded, c.State())
	}
	if c.Snapshot().Slope != nil {
		t.Fatal("expected slope contact to be cleared after leaving the slope")
	}
}

func TestInvalidInputIsSanitized(t *testing.T) {
	body := &mockBody{}
	c := newTestController(t, body, &mockEnv{grounded: true})

	nan := float32(math32.NaN())
	inf := float32(math32.Inf(1))
	for range 30 {
		c.Update(frameDt, &InputSample{Move: mgl32.Vec2{nan, 5}, Look: mgl32.Vec2{inf, nan}})
		c.FixedUpdate(fixedDt)
	}
	for i, v := range body.vel {
		if !game.Finite(v) {
			t.Fatalf("velocity component %d is not finite: %v", i, body.vel)
		}
	}
	yaw, pitch := c.Rotation()
	if !game.Finite(yaw) || !game.Finite(pitch) {
		t.Fatalf("rotation is not finite: %v %v", yaw, pitch)
	}
	if speed := c.HorizontalSpeed(); speed > game.DefaultWalkSpeed+1e-3 {
		t.Fatalf("expected oversized move input to be clamped, speed %v exceeds walk speed", speed)
	}

	c.Update(nan, nil)
	c.Update(-1, nil)
	c.FixedUpdate(inf)
	c.FixedUpdate(0)
	if c.Snapshot().Frame != 30 {
		t.Fatalf("expected invalid time steps to be ignored, frame is %d", c.Snapshot().Frame)
	}
}

func TestNilInputIsNoInput(t *testing.T) {
	body := &mockBody{vel: mgl32.Vec3{0, 0, 10}}
	c := newTestController(t, body, &mockEnv{grounded: true})
	c.Update(frameDt, nil)
	c.FixedUpdate(fixedDt)
	if got, want := c.HorizontalSpeed(), 10-game.DefaultRunDeceleration*fixedDt; !game.Float32ApproxEq(got, want) {
		t.Fatalf("expected body to decelerate to %v, got %v", want, got)
	}
}

func TestMotionIntensity(t *testing.T) {
	body := &mockBody{}
	presenter := &mockPresenter{}
	env := &mockEnv{grounded: true}
	c := newTestController(t, body, env, func(o *Options) {
		o.Presenter = presenter
	})

	for range 60 {
		c.Update(frameDt, &InputSample{Move: mgl32.Vec2{0, 1}})
		c.FixedUpdate(fixedDt)
	}
	if presenter.intensity.Amplitude <= 0 || presenter.intensity.Amplitude > game.WobbleAmplitude {
		t.Fatalf("expected wobble amplitude in (0, %v], got %v", game.WobbleAmplitude, presenter.intensity.Amplitude)
	}
	if presenter.intensity != c.MotionIntensity() {
		t.Fatalf("presenter and controller disagree: %v vs %v", presenter.intensity, c.MotionIntensity())
	}

	env.grounded = false
	c.Update(frameDt, &InputSample{Move: mgl32.Vec2{0, 1}})
	if c.MotionIntensity() != (MotionIntensity{}) {
		t.Fatalf("expected wobble to stop when airborne, got %v", c.MotionIntensity())
	}
}

func TestOrientation(t *testing.T) {
	c := newTestController(t, &mockBody{}, &mockEnv{grounded: true}, func(o *Options) {
		o.RotationSpeed = 10
	})

	c.Update(frameDt, &InputSample{Look: mgl32.Vec2{0.05, 0.05}})
	if yaw, pitch := c.Rotation(); yaw != 0 || pitch != 0 {
		t.Fatalf("expected look input below threshold to be ignored, got %v %v", yaw, pitch)
	}

	for range 20 {
		c.Update(frameDt, &InputSample{Look: mgl32.Vec2{2, 1}})
	}
	yaw, pitch := c.Rotation()
	if pitch != game.DefaultTopClamp {
		t.Fatalf("expected pitch to clamp at %v, got %v", game.DefaultTopClamp, pitch)
	}
	if yaw < -180 || yaw >= 180 {
		t.Fatalf("expected yaw to wrap into [-180, 180), got %v", yaw)
	}
	if !game.Float32ApproxEq(yaw, 40) {
		t.Fatalf("expected yaw of 400 degrees to wrap to 40, got %v", yaw)
	}
}

func TestSnapshotTelemetry(t *testing.T) {
	body := &mockBody{}
	c := newTestController(t, body, &mockEnv{grounded: true}, func(o *Options) {
		o.HistorySize = 8
	})
	for range 40 {
		c.Update(frameDt, &InputSample{Move: mgl32.Vec2{0, 1}})
		c.FixedUpdate(fixedDt)
	}

	s := c.Snapshot()
	if s.State != StateGrounded || s.Frame != 40 {
		t.Fatalf("unexpected snapshot header: %+v", s)
	}
	if s.PeakSpeed != game.DefaultWalkSpeed {
		t.Fatalf("expected peak speed %v, got %v", game.DefaultWalkSpeed, s.PeakSpeed)
	}
	if s.AverageSpeed <= 0 || s.AverageSpeed > s.PeakSpeed {
		t.Fatalf("expected average speed in (0, %v], got %v", s.PeakSpeed, s.AverageSpeed)
	}
	if s.Edge != nil || s.Slope != nil {
		t.Fatal("expected no contacts in snapshot while grounded")
	}
}
