package locomotion

import "github.com/go-gl/mathgl/mgl32"

// Environment bridges the collision/query service used to decide state transitions. Implementations must not
// mutate the controller.
type Environment interface {
	// Grounded reports whether a sphere at pos with the given radius touches walkable ground.
	Grounded(pos mgl32.Vec3, radius float32) bool
	// Slope reports whether a sphere at pos touches a slope, and the contact if it does.
	Slope(pos mgl32.Vec3, radius float32) (SlopeContact, bool)
}

// EdgeDetector casts rays for climbable ledges. It is optional: without one, ledge handling is disabled.
type EdgeDetector interface {
	Edge(ray Ray) (EdgeContact, bool)
}

// Body is the physics backend moving the controlled entity.
type Body interface {
	Position() mgl32.Vec3
	Velocity() mgl32.Vec3
	SetVelocity(vel mgl32.Vec3)
	ApplyImpulse(impulse mgl32.Vec3)
	SetKinematic(kinematic bool)
	Kinematic() bool
}

// ColliderSink is implemented by bodies whose collider shape follows the controller's posture.
type ColliderSink interface {
	SetCollider(c Collider)
}

// Presenter receives presentation values (camera rig offset, camera shake). It never feeds back into the
// controller.
type Presenter interface {
	SetCameraTarget(offset mgl32.Vec3)
	SetMotionIntensity(m MotionIntensity)
}

// Ray is a segment starting at Origin and extending Length units along Direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
	Length    float32
}

// End returns the end point of the ray.
func (r Ray) End() mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(r.Length))
}

// SlopeContact is the surface touched while on a slope. It is only meaningful while the controller is in
// StateOnSlope.
type SlopeContact struct {
	Normal mgl32.Vec3
	Point  mgl32.Vec3
}

// EdgeContact describes a climbable ledge hit by an edge ray.
type EdgeContact struct {
	// Direction is the direction a body hanging on the ledge should face.
	Direction mgl32.Vec3
	Point     mgl32.Vec3
	Ref       string
}
