package settings

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/stride/game"
	"github.com/oomph-ac/stride/locomotion"
	"github.com/oomph-ac/stride/oerror"
	"github.com/oomph-ac/stride/rigidbody"
	"github.com/oomph-ac/stride/simulation"
	"github.com/pelletier/go-toml"
	"github.com/sirupsen/logrus"
)

// Settings contains everything that can be tuned for the controller, the reference body and the simulation loop.
type Settings struct {
	Movement struct {
		WalkSpeed              float32
		RunSpeed               float32
		CrouchSpeed            float32
		RunAcceleration        float32
		RunDeceleration        float32
		SprintForwardThreshold float32
		RotationSpeed          float32
		TopClamp               float32
		BottomClamp            float32
		LimitTurnRate          bool
	}
	Air struct {
		Control       bool
		Speed         float32
		Acceleration  float32
		ControlWindow float32
	}
	Jump struct {
		Force float32
		// Timeout is the time spent supported before another jump is allowed.
		Timeout float32
	}
	Gears struct {
		// Policy is one of "manual", "timed" or "rev".
		Policy               string
		MaxGear              int
		SpeedMultipliers     []float32
		Accelerations        []float32
		AngularAccelerations []float32
		// Intervals are the sprint durations before each timed upshift.
		Intervals []float32
		// RevRatio is the fraction of a gear's top speed at which the rev matched policy shifts up.
		RevRatio float32
	}
	Posture struct {
		SlideImpulse float32
		// SlideTimeout limits slides to the given number of seconds. Zero disables the limit.
		SlideTimeout float32
	}
	Ground struct {
		GroundedOffset float32
		GroundedRadius float32
	}
	Edge struct {
		Enabled             bool
		MaxDistance         float32
		FacingDuration      float32
		RegrabDelay         float32
		Climb               bool
		ClimbUpImpulse      float32
		ClimbForwardImpulse float32
	}
	Camera struct {
		StandingHeight  float32
		CrouchingHeight float32
	}
	Body struct {
		Mass         float32
		Gravity      float32
		Drag         float32
		SnapDistance float32
	}
	Simulation struct {
		FixedStep   float32
		MaxSubSteps int
		FrameStep   float32
		HistorySize int
	}
	Logging struct {
		Level string
		// Debug lists the controller trace modes to enable.
		Debug []string
	}
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	settings := Settings{}
	opts := locomotion.DefaultOptions()

	settings.Movement.WalkSpeed = opts.WalkSpeed
	settings.Movement.RunSpeed = opts.RunSpeed
	settings.Movement.CrouchSpeed = opts.CrouchSpeed
	settings.Movement.RunAcceleration = opts.RunAcceleration
	settings.Movement.RunDeceleration = opts.RunDeceleration
	settings.Movement.SprintForwardThreshold = opts.SprintForwardThreshold
	settings.Movement.RotationSpeed = opts.RotationSpeed
	settings.Movement.TopClamp = opts.TopClamp
	settings.Movement.BottomClamp = opts.BottomClamp

	settings.Air.Control = opts.AirControl
	settings.Air.Speed = opts.InAirSpeed
	settings.Air.Acceleration = opts.InAirAcceleration
	settings.Air.ControlWindow = opts.AirControlWindow

	settings.Jump.Force = opts.JumpForce
	settings.Jump.Timeout = opts.JumpTimeout

	settings.Gears.Policy = "manual"
	settings.Gears.MaxGear = opts.MaxGear
	for _, g := range opts.Gears {
		settings.Gears.SpeedMultipliers = append(settings.Gears.SpeedMultipliers, g.SpeedMultiplier)
		settings.Gears.Accelerations = append(settings.Gears.Accelerations, g.Acceleration)
		settings.Gears.AngularAccelerations = append(settings.Gears.AngularAccelerations, g.AngularAcceleration)
	}
	settings.Gears.Intervals = []float32{1, 1.5, 2}
	settings.Gears.RevRatio = 0.95

	settings.Posture.SlideImpulse = opts.SlideImpulse
	settings.Posture.SlideTimeout = opts.SlideTimeout

	settings.Ground.GroundedOffset = opts.GroundedOffset
	settings.Ground.GroundedRadius = opts.GroundedRadius

	settings.Edge.Enabled = true
	settings.Edge.MaxDistance = opts.MaxEdgeDistance
	settings.Edge.FacingDuration = opts.EdgeFacingDuration
	settings.Edge.RegrabDelay = opts.EdgeRegrabDelay
	settings.Edge.Climb = opts.EdgeClimb
	settings.Edge.ClimbUpImpulse = opts.ClimbUpImpulse
	settings.Edge.ClimbForwardImpulse = opts.ClimbForwardImpulse

	settings.Camera.StandingHeight = game.StandingCameraHeight
	settings.Camera.CrouchingHeight = game.CrouchingCameraHeight

	body := rigidbody.DefaultConfig()
	settings.Body.Mass = body.Mass
	settings.Body.Gravity = body.Gravity
	settings.Body.Drag = body.Drag
	settings.Body.SnapDistance = body.SnapDistance

	sim := simulation.DefaultConfig()
	settings.Simulation.FixedStep = sim.FixedStep
	settings.Simulation.MaxSubSteps = sim.MaxSubSteps
	settings.Simulation.FrameStep = game.DefaultFrameStep
	settings.Simulation.HistorySize = opts.HistorySize

	settings.Logging.Level = logrus.InfoLevel.String()
	return settings
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	s := DefaultSettings()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if data, err := toml.Marshal(s); err != nil {
			return fmt.Errorf("failed encoding default settings: %v", err)
		} else if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed creating settings file: %v", err)
		}
		return nil
	}
	return errors.New("settings file already exists")
}

// Load will load the settings from your settings file, and return an error if the file does not exist or holds
// invalid settings.
func Load(path string) (Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Settings{}, errors.New("settings file doesn't exist")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("error reading config: %v", err)
	}

	settings := DefaultSettings()
	if err = toml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("error decoding config: %v", err)
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid config: %w", err)
	}
	return settings, nil
}

// Validate checks that the settings build a valid controller, body and simulation.
func (s Settings) Validate() error {
	if _, err := s.Options(nil); err != nil {
		return err
	}
	if err := s.BodyConfig().Validate(); err != nil {
		return err
	}
	if err := s.SimulationConfig().Validate(); err != nil {
		return err
	}
	if !(s.Simulation.FrameStep > 0) {
		return oerror.New("frame step must be positive (got %v)", s.Simulation.FrameStep)
	}
	_, err := s.LogLevel()
	return err
}

// Options converts the settings into controller options. The returned options are validated.
func (s Settings) Options(log *logrus.Logger) (locomotion.Options, error) {
	opts := locomotion.DefaultOptions()

	opts.WalkSpeed = s.Movement.WalkSpeed
	opts.RunSpeed = s.Movement.RunSpeed
	opts.CrouchSpeed = s.Movement.CrouchSpeed
	opts.RunAcceleration = s.Movement.RunAcceleration
	opts.RunDeceleration = s.Movement.RunDeceleration
	opts.SprintForwardThreshold = s.Movement.SprintForwardThreshold
	opts.RotationSpeed = s.Movement.RotationSpeed
	opts.TopClamp = s.Movement.TopClamp
	opts.BottomClamp = s.Movement.BottomClamp
	opts.LimitTurnRate = s.Movement.LimitTurnRate

	opts.AirControl = s.Air.Control
	opts.InAirSpeed = s.Air.Speed
	opts.InAirAcceleration = s.Air.Acceleration
	opts.AirControlWindow = s.Air.ControlWindow

	opts.JumpForce = s.Jump.Force
	opts.JumpTimeout = s.Jump.Timeout

	gears, err := s.gearTable()
	if err != nil {
		return opts, err
	}
	opts.Gears = gears
	opts.MaxGear = s.Gears.MaxGear
	if opts.GearPolicy, err = s.gearPolicy(); err != nil {
		return opts, err
	}

	opts.SlideImpulse = s.Posture.SlideImpulse
	opts.SlideTimeout = s.Posture.SlideTimeout

	opts.GroundedOffset = s.Ground.GroundedOffset
	opts.GroundedRadius = s.Ground.GroundedRadius

	opts.MaxEdgeDistance = s.Edge.MaxDistance
	if !s.Edge.Enabled {
		opts.MaxEdgeDistance = 0
	}
	opts.EdgeFacingDuration = s.Edge.FacingDuration
	opts.EdgeRegrabDelay = s.Edge.RegrabDelay
	opts.EdgeClimb = s.Edge.Climb
	opts.ClimbUpImpulse = s.Edge.ClimbUpImpulse
	opts.ClimbForwardImpulse = s.Edge.ClimbForwardImpulse

	opts.StandingCamera = mgl32.Vec3{0, s.Camera.StandingHeight, 0}
	opts.CrouchingCamera = mgl32.Vec3{0, s.Camera.CrouchingHeight, 0}

	opts.HistorySize = s.Simulation.HistorySize

	opts.Log = log
	for _, name := range s.Logging.Debug {
		mode, ok := locomotion.ParseDebugMode(name)
		if !ok {
			return opts, oerror.New(game.ErrorUnknownDebugMode, name)
		}
		opts.Debug |= mode
	}
	return opts, opts.Validate()
}

// BodyConfig returns the configuration of the reference body.
func (s Settings) BodyConfig() rigidbody.Config {
	return rigidbody.Config{
		Mass:         s.Body.Mass,
		Gravity:      s.Body.Gravity,
		Drag:         s.Body.Drag,
		SnapDistance: s.Body.SnapDistance,
	}
}

// SimulationConfig returns the cadence of the simulation loop.
func (s Settings) SimulationConfig() simulation.Config {
	return simulation.Config{
		FixedStep:   s.Simulation.FixedStep,
		MaxSubSteps: s.Simulation.MaxSubSteps,
	}
}

// LogLevel parses the configured log level.
func (s Settings) LogLevel() (logrus.Level, error) {
	level, err := logrus.ParseLevel(s.Logging.Level)
	if err != nil {
		return logrus.InfoLevel, oerror.New(game.ErrorUnknownLogLevel, s.Logging.Level, err)
	}
	return level, nil
}

func (s Settings) gearTable() (locomotion.GearTable, error) {
	n := len(s.Gears.SpeedMultipliers)
	if len(s.Gears.Accelerations) != n || len(s.Gears.AngularAccelerations) != n {
		return nil, oerror.New("gear tuning lists differ in length (%d speed multipliers, %d accelerations, %d angular accelerations)",
			n, len(s.Gears.Accelerations), len(s.Gears.AngularAccelerations))
	}
	table := make(locomotion.GearTable, n)
	for i := range table {
		table[i] = locomotion.Gear{
			SpeedMultiplier:     s.Gears.SpeedMultipliers[i],
			Acceleration:        s.Gears.Accelerations[i],
			AngularAcceleration: s.Gears.AngularAccelerations[i],
		}
	}
	return table, nil
}

func (s Settings) gearPolicy() (locomotion.GearPolicy, error) {
	switch s.Gears.Policy {
	case "", "manual":
		return locomotion.ManualGears{}, nil
	case "timed":
		if len(s.Gears.Intervals) < s.Gears.MaxGear {
			return nil, oerror.New("timed gears need %d intervals, got %d", s.Gears.MaxGear, len(s.Gears.Intervals))
		}
		return locomotion.TimedGears{Intervals: s.Gears.Intervals}, nil
	case "rev":
		if !(s.Gears.RevRatio > 0) || s.Gears.RevRatio > 1 {
			return nil, oerror.New("rev ratio must be within (0, 1] (got %v)", s.Gears.RevRatio)
		}
		return locomotion.RevMatchedGears{Ratio: s.Gears.RevRatio}, nil
	default:
		return nil, oerror.New(game.ErrorUnknownGearPolicy, s.Gears.Policy)
	}
}
