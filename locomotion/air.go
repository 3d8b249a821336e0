package locomotion

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/stride/game"
)

// SteerAir steers the horizontal part of vel towards the input direction while airborne. Steering is only allowed
// during the air control window and is rejected if it would increase horizontal speed. The returned flag reports
// whether the velocity was changed.
func (o Options) SteerAir(vel, inputDir mgl32.Vec3, airTime, dt float32) (mgl32.Vec3, bool) {
	inputDir = game.SafeNormalize(game.Horizontal(inputDir))
	if inputDir.Len() <= game.MoveDeadZone {
		return vel, false
	}
	if airTime >= o.AirControlWindow {
		// Momentum is frozen.
		return vel, false
	}

	hz := game.Horizontal(vel)
	speed := hz.Len()
	steered := game.MoveTowardsVec3(hz, inputDir.Mul(speed*o.InAirSpeed), o.InAirAcceleration*dt)
	if steered.Len() > speed {
		return vel, false
	}
	return mgl32.Vec3{steered.X(), vel.Y(), steered.Z()}, true
}

// steerAir applies air control to the body.
func (c *Controller) steerAir(dt float32) {
	vel := c.body.Velocity()
	inputDir := game.Right(c.yaw).Mul(c.input.Move.X()).Add(game.Forward(c.yaw).Mul(c.input.Move.Y()))

	steered, ok := c.opts.SteerAir(vel, inputDir, c.airTime, dt)
	if !ok {
		return
	}
	c.body.SetVelocity(steered)
	c.dbg.Notify(DebugModeIntegrator, true, "air control (airTime=%.2f): %v -> %v", c.airTime, vel, steered)
}
