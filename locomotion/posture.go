package locomotion

import (
	"github.com/oomph-ac/stride/assert"
	"github.com/oomph-ac/stride/game"
)

// Posture holds the crouch and slide flags. Crouching and Sliding are never both set.
type Posture struct {
	Crouching    bool
	Sliding      bool
	WasCrouching bool
	WasSliding   bool
}

// Lowered returns true if the body is crouching or sliding.
func (p Posture) Lowered() bool {
	return p.Crouching || p.Sliding
}

// checkCrouchSlide updates the posture while the crouch/slide input is held. Above walk speed the body slides,
// committing to the slide with a one-off impulse along its velocity; otherwise it crouches.
func (c *Controller) checkCrouchSlide(dt float32) {
	if !c.input.CrouchSlide {
		c.releasePosture()
		return
	}

	vel := c.body.Velocity()
	if game.HorizontalLen(vel) > c.opts.WalkSpeed && !c.slideSpent {
		c.posture.WasSliding = c.posture.Sliding
		c.posture.WasCrouching = c.posture.Crouching
		c.posture.Sliding = true
		c.posture.Crouching = false

		if !c.posture.WasSliding {
			impulse := game.SafeNormalize(game.Horizontal(vel)).Mul(c.opts.SlideImpulse)
			c.body.ApplyImpulse(impulse)
			c.slideTimer = NewTimer(c.opts.SlideTimeout)
			c.dbg.Notify(DebugModePosture, true, "slide started (speed=%.2f impulse=%v)", game.HorizontalLen(vel), impulse)
		}

		if c.opts.SlideTimeout > 0 {
			c.slideTimer.Advance(dt)
			if c.slideTimer.Done() {
				c.posture.Sliding = false
				c.posture.Crouching = true
				c.slideSpent = true
				c.dbg.Notify(DebugModePosture, true, "slide timed out after %.2fs", c.slideTimer.Elapsed)
			}
		}
	} else {
		c.posture.WasCrouching = c.posture.Crouching
		c.posture.WasSliding = c.posture.Sliding
		c.posture.Sliding = false
		c.posture.Crouching = true
	}
	c.applyPosture()
}

// releasePosture clears every posture flag and stands the body up.
func (c *Controller) releasePosture() {
	if c.posture == (Posture{}) && !c.slideSpent {
		return
	}
	c.dbg.Notify(DebugModePosture, c.posture.Lowered(), "posture released (crouching=%v sliding=%v)", c.posture.Crouching, c.posture.Sliding)
	c.posture = Posture{}
	c.slideSpent = false
	c.slideTimer.Reset()
	c.applyPosture()
}

// applyPosture updates the collider and camera target for the current posture.
func (c *Controller) applyPosture() {
	assert.IsTrue(!(c.posture.Crouching && c.posture.Sliding), "posture has both crouching and sliding set")

	collider, camera := c.opts.StandingCollider, c.opts.StandingCamera
	if c.posture.Lowered() {
		collider, camera = c.opts.CrouchingCollider, c.opts.CrouchingCamera
	}

	if collider != c.collider {
		c.collider = collider
		if c.colliderSink != nil {
			c.colliderSink.SetCollider(collider)
		}
	}
	if camera != c.cameraTarget {
		c.cameraTarget = camera
		if c.presenter != nil {
			c.presenter.SetCameraTarget(camera)
		}
	}
}
