package simulation

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/stride/game"
	"github.com/oomph-ac/stride/locomotion"
	"github.com/oomph-ac/stride/rigidbody"
	"github.com/oomph-ac/stride/world"
)

type countingStepper struct {
	steps int
	total float32
}

func (s *countingStepper) Step(dt float32) {
	s.steps++
	s.total += dt
}

type stillBody struct{}

func (stillBody) Position() mgl32.Vec3 { return mgl32.Vec3{} }

func (stillBody) Velocity() mgl32.Vec3 { return mgl32.Vec3{} }

func (stillBody) SetVelocity(mgl32.Vec3) {}

func (stillBody) ApplyImpulse(mgl32.Vec3) {}

func (stillBody) SetKinematic(bool) {}

func (stillBody) Kinematic() bool { return false }

func (stillBody) Grounded(mgl32.Vec3, float32) bool { return true }

func (stillBody) Slope(mgl32.Vec3, float32) (locomotion.SlopeContact, bool) {
	return locomotion.SlopeContact{}, false
}

// padStub reports every position inside a single volume while active.
type padStub struct {
	active  bool
	impulse mgl32.Vec3
}

func (p *padStub) Trigger(mgl32.Vec3) (string, mgl32.Vec3, bool) {
	return "stub", p.impulse, p.active
}

func newCountingRunner(t *testing.T, cfg Config) (*Runner, *countingStepper) {
	t.Helper()
	c, err := locomotion.New(stillBody{}, stillBody{}, locomotion.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	stepper := &countingStepper{}
	r, err := New(c, stepper, cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	return r, stepper
}

// newArenaRunner places a rigid body at pos in a built-in arena.
func newArenaRunner(t *testing.T, arena string, pos mgl32.Vec3) (*Runner, *rigidbody.Body) {
	t.Helper()
	layout, ok := world.Builtin(arena)
	if !ok {
		t.Fatalf("unknown arena %q", arena)
	}
	a, err := layout.Build()
	if err != nil {
		t.Fatal(err)
	}
	body, err := rigidbody.New(pos, rigidbody.DefaultConfig(), a)
	if err != nil {
		t.Fatal(err)
	}
	c, err := locomotion.New(body, a, locomotion.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	r, err := New(c, body, DefaultConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	return r, body
}

func TestConfigValidate(t *testing.T) {
	for _, cfg := range []Config{{FixedStep: 0, MaxSubSteps: 1}, {FixedStep: 0.02, MaxSubSteps: 0}} {
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected %+v to be rejected", cfg)
		}
	}
	if _, err := New(nil, &countingStepper{}, DefaultConfig(), nil); err == nil {
		t.Fatal("expected missing controller to be rejected")
	}
}

func TestFixedCadence(t *testing.T) {
	r, stepper := newCountingRunner(t, DefaultConfig())
	for range 60 {
		r.Frame(game.DefaultFrameStep, nil)
	}
	if stepper.steps < 49 || stepper.steps > 50 {
		t.Fatalf("expected about 50 physics steps per second, got %d", stepper.steps)
	}
	if r.Frames() != 60 || r.Steps() != uint64(stepper.steps) {
		t.Fatalf("unexpected counters: frames=%d steps=%d", r.Frames(), r.Steps())
	}
	if a := r.Alpha(); a < 0 || a >= 1 {
		t.Fatalf("expected interpolation alpha in [0, 1), got %v", a)
	}
}

func TestSlowFrameDropsBacklog(t *testing.T) {
	r, stepper := newCountingRunner(t, Config{FixedStep: 0.02, MaxSubSteps: 4})
	if n := r.Frame(1, nil); n != 4 || stepper.steps != 4 {
		t.Fatalf("expected 4 capped steps, got %d", n)
	}
	if r.Alpha() >= 1 {
		t.Fatalf("expected backlog to be dropped, alpha is %v", r.Alpha())
	}
	if d := r.Dropped(); d < 0.9 || d > 0.93 {
		t.Fatalf("expected about 0.92s dropped, got %v", d)
	}
	if n := r.Frame(0, nil); n != 0 {
		t.Fatalf("expected empty frame to run no steps, got %d", n)
	}
}

func TestWalkOnFlatGround(t *testing.T) {
	r, body := newArenaRunner(t, "flat", mgl32.Vec3{})
	for range 120 {
		r.Frame(game.DefaultFrameStep, &locomotion.InputSample{Move: mgl32.Vec2{0, 1}})
	}
	c := r.Controller()
	if c.State() != locomotion.StateGrounded {
		t.Fatalf("expected to stay grounded, got %v", c.State())
	}
	if body.Pos.Y() != 0 {
		t.Fatalf("expected body to stay on the floor, got %v", body.Pos)
	}
	if speed := c.HorizontalSpeed(); speed != game.DefaultWalkSpeed {
		t.Fatalf("expected walk speed, got %v", speed)
	}
	if body.Pos.Z() < 25 {
		t.Fatalf("expected body to travel forward, got %v", body.Pos)
	}
}

func TestJumpAndLand(t *testing.T) {
	r, body := newArenaRunner(t, "flat", mgl32.Vec3{})
	r.Frame(game.DefaultFrameStep, &locomotion.InputSample{Jump: true})

	var airborne bool
	peak := float32(0)
	for range 240 {
		r.Frame(game.DefaultFrameStep, nil)
		airborne = airborne || r.Controller().State() == locomotion.StateInAir
		peak = max(peak, body.Pos.Y())
	}
	if !airborne {
		t.Fatal("expected the jump to leave the ground")
	}
	if peak < 4 {
		t.Fatalf("expected a jump apex above 4, got %v", peak)
	}
	if r.Controller().State() != locomotion.StateGrounded || body.Pos.Y() != 0 {
		t.Fatalf("expected to land, got %v at %v", r.Controller().State(), body.Pos)
	}
}

func TestHeldJumpDoesNotStack(t *testing.T) {
	r, body := newArenaRunner(t, "flat", mgl32.Vec3{})
	c := r.Controller()

	var takeoffs int
	peak := float32(0)
	for range 10 {
		r.Frame(game.DefaultFrameStep, &locomotion.InputSample{Jump: true})
		peak = max(peak, body.Vel.Y())
	}
	for tr := range c.Transitions() {
		if tr.To == locomotion.StateInAir {
			takeoffs++
		}
	}
	if peak > game.DefaultJumpForce+1e-3 {
		t.Fatalf("expected a single jump impulse, vertical speed reached %v", peak)
	}
	if takeoffs != 1 || c.State() != locomotion.StateInAir {
		t.Fatalf("expected one takeoff, got %d (state %v)", takeoffs, c.State())
	}
}

func TestTriggerFiresOncePerEntry(t *testing.T) {
	r, body := newArenaRunner(t, "flat", mgl32.Vec3{})
	pad := &padStub{active: true, impulse: mgl32.Vec3{0, 5, 0}}
	r.SetTriggers(pad)

	for range 10 {
		r.Frame(game.DefaultFrameStep, nil)
	}
	if r.Triggered() != 1 {
		t.Fatalf("expected the volume to fire once while inside it, got %d", r.Triggered())
	}
	if body.Vel.Y() <= 0 {
		t.Fatalf("expected the body to be launched, got velocity %v", body.Vel)
	}

	pad.active = false
	r.Frame(game.DefaultFrameStep, nil)
	r.Frame(game.DefaultFrameStep, nil)
	pad.active = true
	r.Frame(game.DefaultFrameStep, nil)
	r.Frame(game.DefaultFrameStep, nil)
	if r.Triggered() != 2 {
		t.Fatalf("expected the volume to fire again on re-entry, got %d", r.Triggered())
	}
}

func TestTriggersNeedAnImpulseTarget(t *testing.T) {
	r, _ := newCountingRunner(t, DefaultConfig())
	r.SetTriggers(&padStub{active: true, impulse: mgl32.Vec3{0, 5, 0}})
	for range 10 {
		r.Frame(game.DefaultFrameStep, nil)
	}
	if r.Triggered() != 0 {
		t.Fatalf("expected no trigger without a body to launch, got %d", r.Triggered())
	}
}

func TestClimbRampOntoPlatform(t *testing.T) {
	r, body := newArenaRunner(t, "proving", mgl32.Vec3{0, 0, 5})

	var onSlope, onPlatform bool
	for range 150 {
		r.Frame(game.DefaultFrameStep, &locomotion.InputSample{Move: mgl32.Vec2{0, 1}})
		state := r.Controller().State()
		onSlope = onSlope || state == locomotion.StateOnSlope
		if z := body.Pos.Z(); z > 22 && z < 28 {
			if state != locomotion.StateGrounded || !game.Float32ApproxEq(body.Pos.Y(), 5) {
				t.Fatalf("expected to walk on the platform, got %v at %v", state, body.Pos)
			}
			onPlatform = true
		}
	}
	if !onSlope || !onPlatform {
		t.Fatalf("expected to climb the ramp onto the platform (slope=%v platform=%v)", onSlope, onPlatform)
	}
}

func TestGrabAndClimbWall(t *testing.T) {
	r, body := newArenaRunner(t, "proving", mgl32.Vec3{0, 6, 39.2})
	c := r.Controller()

	for i := 0; c.State() != locomotion.StateOnEdge; i++ {
		if i > 120 {
			t.Fatalf("expected to grab the wall while falling, got %v at %v", c.State(), body.Pos)
		}
		r.Frame(game.DefaultFrameStep, nil)
	}
	held := body.Pos
	for range 30 {
		r.Frame(game.DefaultFrameStep, nil)
	}
	if body.Pos != held || !body.Kinematic() {
		t.Fatalf("expected body to hang still, moved from %v to %v", held, body.Pos)
	}

	r.Frame(game.DefaultFrameStep, &locomotion.InputSample{Jump: true, Move: mgl32.Vec2{0, 1}})
	if c.State() != locomotion.StateInAir || body.Vel.Y() <= 0 || body.Vel.Z() <= 0 {
		t.Fatalf("expected to climb up and forward, got %v with velocity %v", c.State(), body.Vel)
	}
	for range 300 {
		r.Frame(game.DefaultFrameStep, nil)
	}
	if c.State() != locomotion.StateGrounded || body.Pos.Z() <= 42 {
		t.Fatalf("expected to clear the wall and land beyond it, got %v at %v", c.State(), body.Pos)
	}
}
