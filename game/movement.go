package game

// Default locomotion tuning. Speeds are in units per second, accelerations in units per second squared and
// impulses in mass-units per second.
const (
	DefaultWalkSpeed         = float32(20)
	DefaultRunSpeed          = float32(50)
	DefaultCrouchSpeed       = float32(3)
	DefaultRunAcceleration   = float32(60)
	DefaultRunDeceleration   = float32(100)
	DefaultInAirSpeed        = float32(1)
	DefaultInAirAcceleration = float32(60)
	DefaultJumpForce         = float32(10)
	DefaultJumpTimeout       = float32(0.1)
	DefaultSlideImpulse      = float32(2)
	DefaultRotationSpeed     = float32(1)

	// AirControlWindow is the time spent airborne after which horizontal momentum is frozen.
	AirControlWindow = float32(0.9)
	// SprintForwardThreshold is the forward input required before sprinting is allowed.
	SprintForwardThreshold = float32(0.1)

	DefaultMaxGear = 3
)

// Default gear table, indexed by gear level.
var (
	DefaultGearSpeedMultipliers     = [...]float32{1, 2, 2.5, 3}
	DefaultGearAccelerations        = [...]float32{1, 1, 1, 1}
	DefaultGearAngularAccelerations = [...]float32{60, 40, 30, 20}
)

// Ledge handling.
const (
	DefaultMaxEdgeDistance     = float32(1)
	DefaultEdgeFacingDuration  = float32(0.5)
	DefaultEdgeRegrabDelay     = float32(0.3)
	DefaultClimbUpImpulse      = float32(12)
	DefaultClimbForwardImpulse = float32(4)
)
