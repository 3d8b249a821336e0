package locomotion

import (
	"github.com/oomph-ac/stride/game"
)

// MotionIntensity drives camera wobble. Amplitude and Frequency blend towards their targets every frame.
type MotionIntensity struct {
	Amplitude float32
	Frequency float32
}

// updatePresentation blends the camera offset and wobble towards their targets and pushes them to the presenter.
func (c *Controller) updatePresentation(dt float32) {
	var target MotionIntensity
	if c.state == StateGrounded && !c.posture.Sliding && c.body.Velocity().Len() >= game.SpeedEpsilon {
		target = MotionIntensity{Amplitude: game.WobbleAmplitude, Frequency: game.WobbleFrequency}
	}
	t := game.WobbleBlendRate * dt
	c.intensity.Amplitude = game.Lerp(c.intensity.Amplitude, target.Amplitude, t)
	c.intensity.Frequency = game.Lerp(c.intensity.Frequency, target.Frequency, t)

	c.cameraOffset = game.SmoothDamp(c.cameraOffset, c.cameraTarget, &c.cameraVel, game.CameraSmoothTime, dt)

	if c.presenter != nil {
		c.presenter.SetMotionIntensity(c.intensity)
	}
}
