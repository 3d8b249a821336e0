package locomotion

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/stride/game"
)

// rotate applies look input to yaw and pitch. Look input below the threshold is ignored.
func (c *Controller) rotate(look mgl32.Vec2) {
	if look.LenSqr() < game.LookThreshold {
		return
	}
	c.pitch = game.ClampAngle(c.pitch+look.Y()*c.opts.RotationSpeed, c.opts.BottomClamp, c.opts.TopClamp)
	c.yaw = wrapYaw(c.yaw + look.X()*c.opts.RotationSpeed)
}

// wrapYaw wraps a yaw into [-180, 180).
func wrapYaw(yaw float32) float32 {
	yaw = game.WrapYawDelta(yaw)
	if yaw >= 180 {
		yaw -= 360
	}
	return yaw
}
