package locomotion

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/stride/game"
)

// Integration holds everything the velocity integrator reads for one fixed step.
type Integration struct {
	// Velocity is the body's current velocity. Only its horizontal part is read.
	Velocity mgl32.Vec3
	Move     mgl32.Vec2
	Right    mgl32.Vec3
	Forward  mgl32.Vec3
	// LastDirection is the last non-trivial input direction, reused while sliding or without input.
	LastDirection mgl32.Vec3

	Posture   Posture
	Sprinting bool
	Gear      Gear

	OnSlope     bool
	SlopeNormal mgl32.Vec3

	// MaxTurn is the largest direction change in degrees allowed this step. Zero disables the limit.
	MaxTurn float32
	Dt      float32
}

// IntegrationResult is the outcome of a single integrator step.
type IntegrationResult struct {
	// Velocity is the new movement velocity. It is tangent to the slope while on one; callers only take its
	// horizontal components.
	Velocity mgl32.Vec3
	// TopSpeed is the speed the body accelerates towards, TargetSpeed the speed reached this step.
	TopSpeed    float32
	TargetSpeed float32
	// Direction is the direction to remember as the last input direction.
	Direction mgl32.Vec3
}

// Integrate computes the movement velocity for one fixed step. Speed moves towards the top speed of the current
// posture and gear by at most the acceleration step and never overshoots it. A slide keeps its speed and only
// follows the last input direction.
func (o Options) Integrate(in Integration) IntegrationResult {
	moving := in.Move.Len() > game.MoveDeadZone
	result := IntegrationResult{Direction: in.LastDirection}

	dir := in.LastDirection
	if game.Vec3HzDistSqr(dir) < 1e-10 {
		// No input was ever given: keep whatever heading the body already has.
		dir = game.SafeNormalize(game.Horizontal(in.Velocity))
	}
	if moving && !in.Posture.Sliding {
		wanted := game.SafeNormalize(in.Right.Mul(in.Move.X()).Add(in.Forward.Mul(in.Move.Y())))
		if in.MaxTurn > 0 {
			wanted = game.SafeNormalize(game.RotateTowards(dir, wanted, in.MaxTurn))
		}
		dir = wanted
		result.Direction = dir
	}
	if in.OnSlope {
		dir = game.ProjectOnPlane(dir, in.SlopeNormal)
	}
	dir = game.SafeNormalize(dir)

	if moving {
		result.TopSpeed = o.topSpeed(in.Posture, in.Sprinting, in.Gear)
	}
	acceleration := o.RunDeceleration
	if moving {
		acceleration = o.RunAcceleration * in.Gear.Acceleration
	}

	current := game.HorizontalLen(in.Velocity)
	if in.OnSlope {
		// Only the horizontal part of slope motion is kept between steps: recover the speed along the slope.
		if hz := game.HorizontalLen(dir); hz > 1e-3 {
			current /= hz
		}
	}
	result.TargetSpeed = game.MoveTowards(current, result.TopSpeed, acceleration*in.Dt)

	if in.Posture.Sliding {
		result.Velocity = dir.Mul(current)
	} else {
		result.Velocity = dir.Mul(result.TargetSpeed)
	}

	// Keep slopes from pushing the body past its intended pace.
	if in.OnSlope && result.Velocity.Len() > result.TargetSpeed+1e-4 {
		result.Velocity = dir.Mul(current)
	}
	return result
}

// integrate runs the integrator against the body and applies its horizontal result.
func (c *Controller) integrate(dt float32, onSlope bool) {
	vel := c.body.Velocity()
	in := Integration{
		Velocity:      vel,
		Move:          c.input.Move,
		Right:         game.Right(c.yaw),
		Forward:       game.Forward(c.yaw),
		LastDirection: c.lastInputDir,
		Posture:       c.posture,
		Sprinting:     c.sprinting,
		Gear:          c.currentGear(),
		OnSlope:       onSlope && c.onSlope,
		SlopeNormal:   c.slope.Normal,
		Dt:            dt,
	}
	if c.opts.LimitTurnRate {
		in.MaxTurn = in.Gear.AngularAcceleration * dt
	}

	res := c.opts.Integrate(in)
	c.lastInputDir = res.Direction
	c.targetSpeed = res.TargetSpeed
	c.body.SetVelocity(mgl32.Vec3{res.Velocity.X(), vel.Y(), res.Velocity.Z()})

	c.dbg.Notify(DebugModeIntegrator, true, "integrate (%v gear=%d): speed=%.3f top=%.3f target=%.3f vel=%v",
		c.state, c.gear, game.HorizontalLen(vel), res.TopSpeed, res.TargetSpeed, res.Velocity)
}
