package locomotion

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transition is a recorded change of locomotion state.
type Transition struct {
	Frame    uint64
	From, To State
}

// Snapshot is a read-only view of a controller at the end of a frame.
type Snapshot struct {
	Frame uint64
	State State

	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Yaw      float32
	Pitch    float32

	HorizontalSpeed float32
	TargetSpeed     float32
	// AverageSpeed and PeakSpeed cover the speed history kept by the controller.
	AverageSpeed float32
	PeakSpeed    float32

	Gear      int
	Posture   Posture
	Sprinting bool
	AirTime   float32
	Collider  Collider

	CameraTarget    mgl32.Vec3
	CameraOffset    mgl32.Vec3
	MotionIntensity MotionIntensity

	// Slope is set while on a slope.
	Slope *SlopeContact
	// Edge is set while on an edge.
	Edge *EdgeContact
}
