package locomotion

import "fmt"

// State is the active locomotion state. Exactly one is active at any time.
type State uint8

const (
	StateGrounded State = iota
	StateInAir
	StateOnSlope
	StateOnEdge
	// StateOnWall is reserved: no transition enters it yet.
	StateOnWall
)

func (s State) String() string {
	switch s {
	case StateGrounded:
		return "grounded"
	case StateInAir:
		return "in_air"
	case StateOnSlope:
		return "on_slope"
	case StateOnEdge:
		return "on_edge"
	case StateOnWall:
		return "on_wall"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Supported reports whether the body stands on something (flat ground or a slope).
func (s State) Supported() bool {
	return s == StateGrounded || s == StateOnSlope
}
