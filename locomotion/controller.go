package locomotion

import (
	"iter"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/stride/game"
	"github.com/oomph-ac/stride/oerror"
	"github.com/oomph-ac/stride/omath"
	"github.com/oomph-ac/stride/utils"
	"github.com/sirupsen/logrus"
)

const transitionHistory = 16

// Controller turns per-frame input into movement of a Body. It is driven by two cadences: Update once per
// rendered frame, FixedUpdate once per fixed physics step. A Controller is not safe for concurrent use; it is
// owned by a single simulation loop.
type Controller struct {
	opts Options

	body         Body
	env          Environment
	edges        EdgeDetector
	colliderSink ColliderSink
	presenter    Presenter

	log *logrus.Logger
	dbg *Debugger

	state State
	input InputSample
	frame uint64

	yaw, pitch     float32
	rotationLocked bool

	posture    Posture
	sprinting  bool
	slideTimer Timer
	slideSpent bool
	collider   Collider

	gear     int
	gearHeld float32

	airTime      float32
	jumpCooldown Timer

	slope   SlopeContact
	onSlope bool

	edge       EdgeContact
	hasEdge    bool
	facing     Timer
	facingFrom float32
	facingTo   float32
	regrab     Timer

	lastInputDir mgl32.Vec3
	targetSpeed  float32

	cameraTarget mgl32.Vec3
	cameraOffset mgl32.Vec3
	cameraVel    mgl32.Vec3
	intensity    MotionIntensity

	speeds      *utils.CircularQueue[float32]
	transitions *utils.CircularQueue[Transition]
}

// New creates a controller moving body through env. Options are validated; a missing body or environment and any
// invalid option is returned as an error.
func New(body Body, env Environment, opts Options) (*Controller, error) {
	if body == nil {
		return nil, oerror.New("locomotion: body is required")
	}
	if env == nil {
		return nil, oerror.New("locomotion: environment is required")
	}
	if opts.GearPolicy == nil {
		opts.GearPolicy = ManualGears{}
	}
	if err := opts.Validate(); err != nil {
		return nil, oerror.New("locomotion: invalid options: %v", err)
	}

	c := &Controller{
		opts:         opts,
		body:         body,
		env:          env,
		edges:        opts.Edges,
		presenter:    opts.Presenter,
		dbg:          newDebugger(opts.Log, opts.Debug),
		state:        StateGrounded,
		collider:     opts.StandingCollider,
		cameraTarget: opts.StandingCamera,
		cameraOffset: opts.StandingCamera,
		speeds:       utils.NewCircularQueue[float32](opts.HistorySize),
		transitions:  utils.NewCircularQueue[Transition](transitionHistory),
	}
	c.log = c.dbg.log
	if c.edges == nil {
		c.edges, _ = env.(EdgeDetector)
	}
	c.colliderSink, _ = body.(ColliderSink)
	if c.colliderSink != nil {
		c.colliderSink.SetCollider(c.collider)
	}
	if c.presenter != nil {
		c.presenter.SetCameraTarget(c.cameraTarget)
	}
	if c.edges == nil {
		c.log.Debug("locomotion: no edge detector available, ledge handling disabled")
	}
	return c, nil
}

// Update runs the per-frame pass: it samples input, advances the state machine, updates posture and orientation
// and blends presentation values. in may be nil, in which case no input is applied. The Jump flag of in is
// cleared once the controller consumes it.
func (c *Controller) Update(dt float32, in *InputSample) {
	if !(dt > 0) || !game.Finite(dt) {
		return
	}
	if in == nil {
		in = &InputSample{}
	}
	c.frame++
	c.input = in.sanitized()
	c.regrab.Advance(dt)
	if c.state.Supported() {
		c.jumpCooldown.Advance(dt)
	}

	if !c.input.CrouchSlide {
		c.releasePosture()
	}

	var next State
	switch c.state {
	case StateGrounded:
		next = c.handleGrounded(dt, in)
	case StateInAir:
		next = c.handleInAir(dt, in)
	case StateOnSlope:
		next = c.handleOnSlope(dt, in)
	case StateOnEdge:
		next = c.handleOnEdge(dt, in)
	default:
		next = c.state
	}
	if next != c.state {
		c.setState(next)
	}

	if !c.rotationLocked {
		c.rotate(c.input.Look)
	}
	c.updatePresentation(dt)
}

// FixedUpdate runs the fixed-step pass, composing the integrator's horizontal velocity with the body's vertical
// velocity.
func (c *Controller) FixedUpdate(dt float32) {
	if !(dt > 0) || !game.Finite(dt) {
		return
	}

	switch c.state {
	case StateGrounded:
		c.integrate(dt, false)
	case StateOnSlope:
		if c.input.Moving() || c.posture.Sliding {
			c.integrate(dt, true)
		}
	case StateInAir:
		if c.opts.AirControl {
			c.steerAir(dt)
		}
	}

	if c.opts.HistorySize > 0 {
		_ = c.speeds.Append(c.HorizontalSpeed())
	}
}

// State returns the active locomotion state.
func (c *Controller) State() State {
	return c.state
}

// Posture returns the current posture flags.
func (c *Controller) Posture() Posture {
	return c.posture
}

// Sprinting returns true if the body is sprinting.
func (c *Controller) Sprinting() bool {
	return c.sprinting
}

// AirTime returns the time spent airborne since leaving the ground.
func (c *Controller) AirTime() float32 {
	return c.airTime
}

// HorizontalSpeed returns the body's current horizontal speed.
func (c *Controller) HorizontalSpeed() float32 {
	return game.HorizontalLen(c.body.Velocity())
}

// TargetSpeed returns the speed the integrator moved towards during the last fixed step.
func (c *Controller) TargetSpeed() float32 {
	return c.targetSpeed
}

// Rotation returns the yaw and pitch in degrees.
func (c *Controller) Rotation() (yaw, pitch float32) {
	return c.yaw, c.pitch
}

// SetRotation sets the yaw and pitch in degrees. The pitch is clamped to the configured range.
func (c *Controller) SetRotation(yaw, pitch float32) {
	c.yaw = wrapYaw(yaw)
	c.pitch = game.ClampAngle(pitch, c.opts.BottomClamp, c.opts.TopClamp)
}

// CameraTarget returns the camera rig offset requested by the current posture.
func (c *Controller) CameraTarget() mgl32.Vec3 {
	return c.cameraTarget
}

// MotionIntensity returns the current camera wobble signal.
func (c *Controller) MotionIntensity() MotionIntensity {
	return c.intensity
}

// Collider returns the collider extents for the current posture.
func (c *Controller) Collider() Collider {
	return c.collider
}

// Debugger returns the controller's debugger, which may be used to toggle trace modes at runtime.
func (c *Controller) Debugger() *Debugger {
	return c.dbg
}

// Transitions yields the most recent state transitions from oldest to newest.
func (c *Controller) Transitions() iter.Seq[Transition] {
	return c.transitions.Iter()
}

// LastTransition returns the most recent state transition. The boolean ok is false if the state never changed.
func (c *Controller) LastTransition() (Transition, bool) {
	return c.transitions.Last()
}

// Snapshot returns a read-only view of the controller for HUD, camera and animation consumers.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		Frame:           c.frame,
		State:           c.state,
		Position:        c.body.Position(),
		Velocity:        c.body.Velocity(),
		Yaw:             c.yaw,
		Pitch:           c.pitch,
		HorizontalSpeed: c.HorizontalSpeed(),
		TargetSpeed:     c.targetSpeed,
		AverageSpeed:    omath.Mean(c.speeds.Iter()),
		PeakSpeed:       omath.Max(c.speeds.Iter()),
		Gear:            c.gear,
		Posture:         c.posture,
		Sprinting:       c.sprinting,
		AirTime:         c.airTime,
		Collider:        c.collider,
		CameraTarget:    c.cameraTarget,
		CameraOffset:    c.cameraOffset,
		MotionIntensity: c.intensity,
	}
	if c.state == StateOnSlope && c.onSlope {
		slope := c.slope
		s.Slope = &slope
	}
	if c.state == StateOnEdge && c.hasEdge {
		edge := c.edge
		s.Edge = &edge
	}
	return s
}

// groundCheckPos returns the centre of the ground check sphere.
func (c *Controller) groundCheckPos() mgl32.Vec3 {
	return c.body.Position().Sub(mgl32.Vec3{0, c.opts.GroundedOffset})
}

func (c *Controller) grounded() bool {
	return c.env.Grounded(c.groundCheckPos(), c.opts.GroundedRadius)
}

// querySlope refreshes the slope contact. The contact is cleared when no slope is touched.
func (c *Controller) querySlope() bool {
	c.slope, c.onSlope = c.env.Slope(c.groundCheckPos(), c.opts.GroundedRadius)
	if !c.onSlope {
		c.slope = SlopeContact{}
	}
	return c.onSlope
}
