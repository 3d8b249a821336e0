package locomotion

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

type mockEnv struct {
	grounded bool
	slope    *SlopeContact

	groundQueries int
}

func (e *mockEnv) Grounded(pos mgl32.Vec3, radius float32) bool {
	e.groundQueries++
	return e.grounded
}

func (e *mockEnv) Slope(pos mgl32.Vec3, radius float32) (SlopeContact, bool) {
	if e.slope == nil {
		return SlopeContact{}, false
	}
	return *e.slope, true
}

type mockLedgeEnv struct {
	*mockEnv
	edge *EdgeContact
	rays []Ray
}

func (e *mockLedgeEnv) Edge(ray Ray) (EdgeContact, bool) {
	e.rays = append(e.rays, ray)
	if e.edge == nil {
		return EdgeContact{}, false
	}
	return *e.edge, true
}

type mockBody struct {
	pos       mgl32.Vec3
	vel       mgl32.Vec3
	kinematic bool
	collider  Collider

	impulses []mgl32.Vec3
}

func (b *mockBody) Position() mgl32.Vec3 {
	return b.pos
}

func (b *mockBody) Velocity() mgl32.Vec3 {
	return b.vel
}

func (b *mockBody) SetVelocity(vel mgl32.Vec3) {
	b.vel = vel
}

func (b *mockBody) ApplyImpulse(impulse mgl32.Vec3) {
	b.impulses = append(b.impulses, impulse)
	if !b.kinematic {
		b.vel = b.vel.Add(impulse)
	}
}

func (b *mockBody) SetKinematic(kinematic bool) {
	b.kinematic = kinematic
}

func (b *mockBody) Kinematic() bool {
	return b.kinematic
}

func (b *mockBody) SetCollider(c Collider) {
	b.collider = c
}

type mockPresenter struct {
	camera    mgl32.Vec3
	intensity MotionIntensity
	updates   int
}

func (p *mockPresenter) SetCameraTarget(offset mgl32.Vec3) {
	p.camera = offset
}

func (p *mockPresenter) SetMotionIntensity(m MotionIntensity) {
	p.intensity = m
	p.updates++
}

func newTestController(t testing.TB, body Body, env Environment, mutate ...func(*Options)) *Controller {
	t.Helper()
	opts := DefaultOptions()
	for _, m := range mutate {
		m(&opts)
	}
	c, err := New(body, env, opts)
	if err != nil {
		t.Fatalf("failed to create controller: %v", err)
	}
	return c
}
