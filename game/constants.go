package game

const (
	// MoveDeadZone is the move input magnitude at or below which input is treated as absent.
	MoveDeadZone = float32(0.1)
	// LookThreshold is the squared look input magnitude required to rotate.
	LookThreshold = float32(0.01)
	// SpeedEpsilon is the speed below which a body is considered still.
	SpeedEpsilon = float32(0.1)

	// DefaultGroundedOffset is subtracted from the feet height to place the ground check, so a negative offset
	// raises it above the feet.
	DefaultGroundedOffset = float32(-0.14)
	DefaultGroundedRadius = float32(0.25)
	DefaultHeadHeight     = float32(1.64)

	DefaultTopClamp    = float32(90)
	DefaultBottomClamp = float32(-90)
)

// Collider and camera presets for each posture.
const (
	StandingHeight  = float32(1.82)
	StandingCenter  = float32(0.92)
	CrouchingHeight = float32(0.72)
	CrouchingCenter = float32(0.42)
	ColliderRadius  = float32(0.5)

	StandingCameraHeight  = float32(1.64)
	CrouchingCameraHeight = float32(0.9)
	CameraSmoothTime      = float32(0.1)
)

// Camera wobble targets and blend rate.
const (
	WobbleAmplitude = float32(0.4)
	WobbleFrequency = float32(4)
	WobbleBlendRate = float32(4.5)
)

// Reference body physics.
const (
	DefaultGravity      = float32(9.81)
	DefaultSnapDistance = float32(0.3)
)

// DefaultStepHeight is the highest surface above a body's feet the reference arena still reports as floor.
const DefaultStepHeight = float32(0.6)

// Simulation cadence.
const (
	DefaultFixedStep   = float32(0.02)
	DefaultMaxSubSteps = 8
	DefaultFrameStep   = float32(1) / 60
)
