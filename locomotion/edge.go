package locomotion

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/stride/game"
)

// edgeRay returns the ray cast forward from head height.
func (c *Controller) edgeRay() Ray {
	return Ray{
		Origin:    c.body.Position().Add(mgl32.Vec3{0, game.DefaultHeadHeight}),
		Direction: game.Forward(c.yaw),
		Length:    c.opts.MaxEdgeDistance,
	}
}

// detectEdge casts the edge ray and refreshes the edge contact. It always reports false when no edge detector is
// available or the regrab delay after leaving an edge has not passed.
func (c *Controller) detectEdge() bool {
	if c.edges == nil || c.opts.MaxEdgeDistance <= 0 {
		return false
	}
	if c.state != StateOnEdge && !c.regrab.Done() {
		return false
	}

	ray := c.edgeRay()
	c.edge, c.hasEdge = c.edges.Edge(ray)
	if !c.hasEdge {
		c.edge = EdgeContact{}
	}
	c.dbg.Notify(DebugModeEdge, c.hasEdge, "edge %q hit at %v (origin=%v dir=%v)", c.edge.Ref, c.edge.Point, ray.Origin, ray.Direction)
	return c.hasEdge
}

// enterEdge freezes dynamics and starts turning the body to face the edge.
func (c *Controller) enterEdge() {
	c.body.SetKinematic(true)
	c.rotationLocked = true

	c.facing = NewTimer(c.opts.EdgeFacingDuration)
	c.facingFrom = c.yaw
	c.facingTo = c.yaw
	if game.Vec3HzDistSqr(c.edge.Direction) > 1e-10 {
		c.facingTo = game.YawOf(c.edge.Direction)
	}
	c.dbg.Notify(DebugModeEdge, true, "grabbed edge %q, facing %.1f -> %.1f", c.edge.Ref, c.facingFrom, c.facingTo)
}

// leaveEdge releases the frozen dynamics and abandons the facing rotation.
func (c *Controller) leaveEdge() {
	c.body.SetKinematic(false)
	c.rotationLocked = false
	c.facing.Reset()
	c.edge, c.hasEdge = EdgeContact{}, false
	c.regrab = NewTimer(c.opts.EdgeRegrabDelay)
}

// faceEdge advances the facing rotation.
func (c *Controller) faceEdge(dt float32) {
	if c.facing.Duration <= 0 {
		return
	}
	c.facing.Advance(dt)
	c.yaw = wrapYaw(game.LerpAngle(c.facingFrom, c.facingTo, c.facing.Progress()))
}

// releaseEdge resolves a jump while on an edge. With forward intent the body climbs, otherwise it is pushed back
// away from the edge. If climbing is disabled, forward intent keeps the body frozen on the edge.
func (c *Controller) releaseEdge() State {
	forward := game.Forward(c.yaw)

	if c.input.Move.Y() > game.MoveDeadZone {
		if !c.opts.EdgeClimb {
			c.dbg.Notify(DebugModeEdge, true, "climb disabled, holding edge %q", c.edge.Ref)
			return StateOnEdge
		}
		c.body.SetKinematic(false)
		impulse := mgl32.Vec3{0, c.opts.ClimbUpImpulse}.Add(forward.Mul(c.opts.ClimbForwardImpulse))
		c.body.ApplyImpulse(impulse)
		c.dbg.Notify(DebugModeEdge, true, "climbing edge %q (impulse=%v)", c.edge.Ref, impulse)
		return StateInAir
	}

	c.body.SetKinematic(false)
	impulse := forward.Mul(-c.opts.JumpForce)
	c.body.ApplyImpulse(impulse)
	c.dbg.Notify(DebugModeEdge, true, "bounced off edge %q (impulse=%v)", c.edge.Ref, impulse)
	if c.grounded() {
		return StateGrounded
	}
	return StateInAir
}
