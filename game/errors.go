package game

const (
	ErrorUnknownGearPolicy = "unknown gear policy %q (expected manual, timed or rev)"
	ErrorUnknownDebugMode  = "unknown debug mode %q"
	ErrorUnknownLogLevel   = "unknown log level %q: %v"

	ErrorScenarioNoSegments    = "scenario %q has no segments"
	ErrorScenarioBadDuration   = "scenario %q has a non-positive duration %v"
	ErrorScenarioSegmentOrder  = "scenario %q: segment %d starts at %v, not after the previous segment"
	ErrorScenarioSegmentBounds = "scenario %q: segment %d starts at %v, outside [0, %v)"
	ErrorScenarioUnknownArena  = "scenario %q: unknown arena %q"
	ErrorScenarioBadVector     = "scenario %q: %s expects %d components, got %d"

	ErrorArenaInvalidRamp = "ramp %q has an empty footprint"
	ErrorArenaInvalidPad  = "jump pad %q has a non-positive force %v"
)
