package locomotion

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/stride/game"
	"github.com/oomph-ac/stride/oerror"
	"github.com/sirupsen/logrus"
)

// Options define controller tuning, feature toggles and optional collaborators.
type Options struct {
	WalkSpeed   float32
	RunSpeed    float32
	CrouchSpeed float32

	RunAcceleration float32
	RunDeceleration float32

	AirControl        bool
	InAirSpeed        float32
	InAirAcceleration float32
	// AirControlWindow is how long after leaving the ground air steering is allowed.
	AirControlWindow float32

	JumpForce float32
	// JumpTimeout is the time a body must stay supported after landing or jumping before it may jump again.
	JumpTimeout float32

	SlideImpulse float32
	// SlideTimeout limits how long a slide lasts. Zero lets a slide continue while speed allows it.
	SlideTimeout float32

	// SprintForwardThreshold is the forward move input required to sprint.
	SprintForwardThreshold float32

	RotationSpeed float32
	TopClamp      float32
	BottomClamp   float32

	Gears      GearTable
	MaxGear    int
	GearPolicy GearPolicy
	// LimitTurnRate bounds how fast the movement direction may turn by the gear's angular acceleration.
	LimitTurnRate bool

	// GroundedOffset is subtracted from the body position to find the centre of the ground check sphere.
	GroundedOffset float32
	GroundedRadius float32

	StandingCollider  Collider
	CrouchingCollider Collider
	StandingCamera    mgl32.Vec3
	CrouchingCamera   mgl32.Vec3

	MaxEdgeDistance    float32
	EdgeFacingDuration float32
	EdgeRegrabDelay    float32
	// EdgeClimb enables climbing when jumping off an edge with forward intent. When disabled the body stays
	// frozen on the edge instead.
	EdgeClimb           bool
	ClimbUpImpulse      float32
	ClimbForwardImpulse float32

	// HistorySize is the number of fixed steps of speed history kept for telemetry.
	HistorySize int

	// Edges overrides the edge detector. If nil, the Environment is used when it implements EdgeDetector.
	Edges     EdgeDetector
	Presenter Presenter

	Log   *logrus.Logger
	Debug DebugMode
}

// DefaultOptions returns the default controller tuning.
func DefaultOptions() Options {
	return Options{
		WalkSpeed:   game.DefaultWalkSpeed,
		RunSpeed:    game.DefaultRunSpeed,
		CrouchSpeed: game.DefaultCrouchSpeed,

		RunAcceleration: game.DefaultRunAcceleration,
		RunDeceleration: game.DefaultRunDeceleration,

		AirControl:        true,
		InAirSpeed:        game.DefaultInAirSpeed,
		InAirAcceleration: game.DefaultInAirAcceleration,
		AirControlWindow:  game.AirControlWindow,

		JumpForce:    game.DefaultJumpForce,
		JumpTimeout:  game.DefaultJumpTimeout,
		SlideImpulse: game.DefaultSlideImpulse,

		SprintForwardThreshold: game.SprintForwardThreshold,

		RotationSpeed: game.DefaultRotationSpeed,
		TopClamp:      game.DefaultTopClamp,
		BottomClamp:   game.DefaultBottomClamp,

		Gears:      DefaultGearTable(),
		MaxGear:    game.DefaultMaxGear,
		GearPolicy: ManualGears{},

		GroundedOffset: game.DefaultGroundedOffset,
		GroundedRadius: game.DefaultGroundedRadius,

		StandingCollider:  StandingCollider(),
		CrouchingCollider: CrouchingCollider(),
		StandingCamera:    mgl32.Vec3{0, game.StandingCameraHeight, 0},
		CrouchingCamera:   mgl32.Vec3{0, game.CrouchingCameraHeight, 0},

		MaxEdgeDistance:     game.DefaultMaxEdgeDistance,
		EdgeFacingDuration:  game.DefaultEdgeFacingDuration,
		EdgeRegrabDelay:     game.DefaultEdgeRegrabDelay,
		EdgeClimb:           true,
		ClimbUpImpulse:      game.DefaultClimbUpImpulse,
		ClimbForwardImpulse: game.DefaultClimbForwardImpulse,

		HistorySize: 64,
	}
}

// Validate returns an error describing the first invalid setting found.
func (o Options) Validate() error {
	positive := []struct {
		name  string
		value float32
	}{
		{"walk speed", o.WalkSpeed},
		{"run speed", o.RunSpeed},
		{"crouch speed", o.CrouchSpeed},
		{"run acceleration", o.RunAcceleration},
		{"run deceleration", o.RunDeceleration},
		{"grounded radius", o.GroundedRadius},
		{"edge facing duration", o.EdgeFacingDuration},
	}
	for _, p := range positive {
		if !(p.value > 0) || !game.Finite(p.value) {
			return oerror.New("%s must be positive (got %v)", p.name, p.value)
		}
	}

	nonNegative := []struct {
		name  string
		value float32
	}{
		{"in-air speed", o.InAirSpeed},
		{"in-air acceleration", o.InAirAcceleration},
		{"air control window", o.AirControlWindow},
		{"jump force", o.JumpForce},
		{"jump timeout", o.JumpTimeout},
		{"slide impulse", o.SlideImpulse},
		{"slide timeout", o.SlideTimeout},
		{"max edge distance", o.MaxEdgeDistance},
		{"edge regrab delay", o.EdgeRegrabDelay},
	}
	for _, p := range nonNegative {
		if !(p.value >= 0) || !game.Finite(p.value) {
			return oerror.New("%s must not be negative (got %v)", p.name, p.value)
		}
	}

	if o.BottomClamp > o.TopClamp {
		return oerror.New("bottom pitch clamp %v is above top clamp %v", o.BottomClamp, o.TopClamp)
	}
	if o.HistorySize < 0 {
		return oerror.New("history size must not be negative (got %d)", o.HistorySize)
	}
	return o.Gears.validate(o.MaxGear)
}

// topSpeed returns the top speed for the posture and sprint state in the given gear.
func (o Options) topSpeed(posture Posture, sprinting bool, gear Gear) float32 {
	speed := o.WalkSpeed
	if posture.Crouching {
		speed = o.CrouchSpeed
	} else if sprinting {
		speed = o.RunSpeed
	}
	return speed * gear.SpeedMultiplier
}
