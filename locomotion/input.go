package locomotion

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/stride/game"
)

// InputSample represents a single frame of player input. Jump is consumed by the controller once acted upon
// (or rejected); CrouchSlide is a held input and is left untouched.
type InputSample struct {
	Move mgl32.Vec2
	Look mgl32.Vec2

	Jump        bool
	Sprint      bool
	CrouchSlide bool
}

// sanitized returns a copy of the sample with non-finite axes zeroed and the move vector clamped to unit length.
func (in InputSample) sanitized() InputSample {
	in.Move = game.SanitizeVec2(in.Move)
	if !game.Finite(in.Look[0]) {
		in.Look[0] = 0
	}
	if !game.Finite(in.Look[1]) {
		in.Look[1] = 0
	}
	return in
}

// Moving returns true if the move vector is outside the dead zone.
func (in InputSample) Moving() bool {
	return in.Move.Len() > game.MoveDeadZone
}
