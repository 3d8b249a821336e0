package simulation

import (
	"io"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/stride/game"
	"github.com/oomph-ac/stride/locomotion"
	"github.com/oomph-ac/stride/oerror"
	"github.com/sirupsen/logrus"
)

// Stepper is a physics body advanced once per fixed step.
type Stepper interface {
	Step(dt float32)
}

// Triggers reports the trigger volume containing a position and the impulse it applies to a body entering it.
type Triggers interface {
	Trigger(pos mgl32.Vec3) (name string, impulse mgl32.Vec3, ok bool)
}

// Config holds the cadence of the fixed physics pass.
type Config struct {
	// FixedStep is the length of one physics step in seconds.
	FixedStep float32
	// MaxSubSteps bounds the physics steps run per frame. Time beyond that is dropped so a slow frame cannot
	// snowball.
	MaxSubSteps int
}

// DefaultConfig returns a 50Hz physics pass with at most 8 steps per frame.
func DefaultConfig() Config {
	return Config{FixedStep: game.DefaultFixedStep, MaxSubSteps: game.DefaultMaxSubSteps}
}

// Validate returns an error if the configuration cannot drive a simulation.
func (c Config) Validate() error {
	if !(c.FixedStep > 0) || !game.Finite(c.FixedStep) {
		return oerror.New("fixed step must be positive (got %v)", c.FixedStep)
	}
	if c.MaxSubSteps <= 0 {
		return oerror.New("max sub steps must be positive (got %d)", c.MaxSubSteps)
	}
	return nil
}

// Runner drives a controller and its body with two cadences: a variable per-frame pass and a fixed physics
// pass. A Runner is owned by a single goroutine.
type Runner struct {
	cfg Config

	controller *locomotion.Controller
	body       Stepper
	log        *logrus.Logger

	triggers  Triggers
	target    locomotion.Body
	inside    string
	triggered uint64

	accumulator float32
	time        float32
	frames      uint64
	steps       uint64
	dropped     float32
}

// New creates a runner. log may be nil.
func New(controller *locomotion.Controller, body Stepper, cfg Config, log *logrus.Logger) (*Runner, error) {
	if controller == nil || body == nil {
		return nil, oerror.New("simulation: controller and body are required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	r := &Runner{cfg: cfg, controller: controller, body: body, log: log}
	r.target, _ = body.(locomotion.Body)
	return r, nil
}

// SetTriggers sets the trigger volumes checked after every fixed step. Triggers are ignored when the stepped body
// does not implement locomotion.Body.
func (r *Runner) SetTriggers(t Triggers) {
	r.triggers, r.inside = t, ""
}

// Frame runs one frame of dt seconds: the controller's per-frame pass followed by as many fixed steps as the
// accumulated time allows. It returns the number of fixed steps run.
func (r *Runner) Frame(dt float32, in *locomotion.InputSample) int {
	if !(dt > 0) || !game.Finite(dt) {
		return 0
	}
	r.frames++
	r.time += dt
	r.controller.Update(dt, in)

	r.accumulator += dt
	n := 0
	for r.accumulator >= r.cfg.FixedStep && n < r.cfg.MaxSubSteps {
		r.controller.FixedUpdate(r.cfg.FixedStep)
		r.body.Step(r.cfg.FixedStep)
		r.checkTriggers()
		r.accumulator -= r.cfg.FixedStep
		r.steps++
		n++
	}
	if r.accumulator >= r.cfg.FixedStep {
		backlog := r.accumulator
		r.accumulator = math32.Mod(r.accumulator, r.cfg.FixedStep)
		r.dropped += backlog - r.accumulator
		r.log.WithField("frame", r.frames).Debugf("simulation: dropped %.3fs of physics backlog", backlog-r.accumulator)
	}
	return n
}

// checkTriggers applies the impulse of a trigger volume the body has just entered. A volume fires once per entry.
func (r *Runner) checkTriggers() {
	if r.triggers == nil || r.target == nil {
		return
	}
	name, impulse, ok := r.triggers.Trigger(r.target.Position())
	if !ok {
		r.inside = ""
		return
	}
	if name == r.inside {
		return
	}
	r.inside = name
	r.triggered++
	r.target.ApplyImpulse(impulse)
	r.log.WithField("frame", r.frames).Debugf("simulation: %s applied %v", name, impulse)
}

// Alpha returns how far, as a fraction of one fixed step, the frame time runs ahead of the last physics step.
// Presentation layers use it to interpolate between physics states.
func (r *Runner) Alpha() float32 {
	return r.accumulator / r.cfg.FixedStep
}

// Controller returns the driven controller.
func (r *Runner) Controller() *locomotion.Controller {
	return r.controller
}

// Time returns the simulated frame time in seconds.
func (r *Runner) Time() float32 {
	return r.time
}

// Frames returns the number of frames run.
func (r *Runner) Frames() uint64 {
	return r.frames
}

// Steps returns the number of fixed steps run.
func (r *Runner) Steps() uint64 {
	return r.steps
}

// Triggered returns the number of trigger volumes entered.
func (r *Runner) Triggered() uint64 {
	return r.triggered
}

// Dropped returns the physics time discarded because frames needed more than MaxSubSteps steps.
func (r *Runner) Dropped() float32 {
	return r.dropped
}
