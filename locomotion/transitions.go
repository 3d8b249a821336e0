package locomotion

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/stride/game"
)

// handleGrounded runs the grounded actions and returns the next state.
func (c *Controller) handleGrounded(dt float32, in *InputSample) State {
	c.checkJump(in)
	c.checkSprint(dt)
	c.checkCrouchSlide(dt)

	if !c.grounded() {
		return StateInAir
	}
	if c.querySlope() {
		return StateOnSlope
	}
	return StateGrounded
}

// handleInAir tracks air time and returns the next state. Jump requests made while airborne are dropped. Sprint
// and gear are kept while sprint-forward intent holds but never shift up until the body is supported again.
func (c *Controller) handleInAir(dt float32, in *InputSample) State {
	if in.Jump {
		c.dbg.Notify(DebugModeTransitions, true, "rejected jump: airborne for %.2fs", c.airTime)
		in.Jump = false
	}
	if c.sprinting && !c.sprintIntent() {
		c.sprinting = false
		c.updateGear(dt)
	}

	if c.grounded() {
		return StateGrounded
	}
	if c.querySlope() {
		return StateOnSlope
	}
	if c.detectEdge() {
		return StateOnEdge
	}

	c.airTime += dt
	return StateInAir
}

// handleOnSlope runs the slope actions and returns the next state. A body touching both flat ground and a slope
// stays on the slope.
func (c *Controller) handleOnSlope(dt float32, in *InputSample) State {
	c.checkSprint(dt)
	c.checkJump(in)
	c.checkCrouchSlide(dt)

	grounded, onSlope := c.grounded(), c.querySlope()
	if grounded && !onSlope {
		return StateGrounded
	}
	if !grounded && !onSlope {
		return StateInAir
	}
	return StateOnSlope
}

// handleOnEdge turns the body towards the edge and resolves edge input.
func (c *Controller) handleOnEdge(dt float32, in *InputSample) State {
	c.faceEdge(dt)

	if !c.detectEdge() {
		if c.grounded() {
			return StateGrounded
		}
		return StateInAir
	}
	if in.Jump {
		in.Jump = false
		return c.releaseEdge()
	}
	return StateOnEdge
}

// checkJump applies the jump impulse if a jump was requested. A request is consumed but dropped until the body
// has been supported for the jump timeout, and on flat ground while the body is still rising.
func (c *Controller) checkJump(in *InputSample) {
	if !in.Jump {
		return
	}
	in.Jump = false
	if !c.jumpCooldown.Done() {
		c.dbg.Notify(DebugModeTransitions, true, "rejected jump: supported for %.2fs of %.2fs", c.jumpCooldown.Elapsed, c.jumpCooldown.Duration)
		return
	}
	if vy := c.body.Velocity().Y(); c.state == StateGrounded && vy > game.SpeedEpsilon {
		c.dbg.Notify(DebugModeTransitions, true, "rejected jump: still rising (vel.y=%.2f)", vy)
		return
	}
	c.body.ApplyImpulse(mgl32.Vec3{0, c.opts.JumpForce})
	c.jumpCooldown = NewTimer(c.opts.JumpTimeout)
	c.dbg.Notify(DebugModeTransitions, true, "jump impulse applied from %v (force=%v)", c.state, c.opts.JumpForce)
}

// checkSprint updates sprint intent and the gear that follows it.
func (c *Controller) checkSprint(dt float32) {
	c.sprinting = c.sprintIntent()
	c.updateGear(dt)
}

func (c *Controller) sprintIntent() bool {
	return c.input.Sprint && c.input.Move.Y() > c.opts.SprintForwardThreshold
}

// setState switches to next, running the exit actions of the current state and the entry actions of the next.
func (c *Controller) setState(next State) {
	prev := c.state

	switch prev {
	case StateInAir:
		c.airTime = 0
	case StateOnEdge:
		c.leaveEdge()
	}
	if prev == StateOnSlope && next != StateOnSlope {
		c.slope, c.onSlope = SlopeContact{}, false
	}

	c.state = next
	switch next {
	case StateInAir:
		c.intensity = MotionIntensity{}
		c.jumpCooldown = NewTimer(c.opts.JumpTimeout)
	case StateOnEdge:
		c.enterEdge()
	}

	t := Transition{Frame: c.frame, From: prev, To: next}
	_ = c.transitions.Append(t)
	c.dbg.Notify(DebugModeTransitions, true, "frame %d: %v -> %v (pos=%v vel=%v)", c.frame, prev, next, c.body.Position(), c.body.Velocity())
}
