package rigidbody

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/stride/game"
	"github.com/oomph-ac/stride/locomotion"
	"github.com/oomph-ac/stride/oerror"
)

// Surface reports the height of the walkable surface under a position.
type Surface interface {
	// SurfaceHeight returns the height of the highest surface a circle of the given radius centred on pos rests
	// on, if there is one.
	SurfaceHeight(pos mgl32.Vec3, radius float32) (float32, bool)
}

// Config holds the physical properties of a body.
type Config struct {
	Mass    float32
	Gravity float32
	// Drag damps the whole velocity every step, as 1/(1+Drag*dt).
	Drag float32
	// SnapDistance is how far below a grounded body a surface may be while still pulling it down, which keeps
	// bodies on descending ramps.
	SnapDistance float32
}

// DefaultConfig returns the default body configuration.
func DefaultConfig() Config {
	return Config{
		Mass:         1,
		Gravity:      game.DefaultGravity,
		SnapDistance: game.DefaultSnapDistance,
	}
}

// Validate returns an error if the configuration cannot be simulated.
func (c Config) Validate() error {
	if !(c.Mass > 0) || !game.Finite(c.Mass) {
		return oerror.New("body mass must be positive (got %v)", c.Mass)
	}
	if !(c.Gravity >= 0) || !game.Finite(c.Gravity) {
		return oerror.New("gravity must not be negative (got %v)", c.Gravity)
	}
	if !(c.Drag >= 0) || !game.Finite(c.Drag) {
		return oerror.New("drag must not be negative (got %v)", c.Drag)
	}
	if !(c.SnapDistance >= 0) || !game.Finite(c.SnapDistance) {
		return oerror.New("snap distance must not be negative (got %v)", c.SnapDistance)
	}
	return nil
}

// Body is a point mass with a posture dependent collider, resting on an optional Surface. It implements
// locomotion.Body and locomotion.ColliderSink. Contact resolution is limited to keeping the body on top of the
// surface.
type Body struct {
	Pos, LastPos mgl32.Vec3
	Vel, LastVel mgl32.Vec3

	OnGround bool

	cfg       Config
	surface   Surface
	kinematic bool
	collider  locomotion.Collider
}

// New creates a body at pos. surface may be nil, in which case the body falls forever.
func New(pos mgl32.Vec3, cfg Config, surface Surface) (*Body, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Body{
		Pos:      pos,
		LastPos:  pos,
		cfg:      cfg,
		surface:  surface,
		collider: locomotion.StandingCollider(),
	}, nil
}

func (b *Body) Position() mgl32.Vec3 {
	return b.Pos
}

func (b *Body) SetPos(newPos mgl32.Vec3) {
	b.LastPos = b.Pos
	b.Pos = newPos
}

func (b *Body) Velocity() mgl32.Vec3 {
	return b.Vel
}

func (b *Body) SetVelocity(newVel mgl32.Vec3) {
	b.LastVel = b.Vel
	b.Vel = newVel
}

// ApplyImpulse changes the velocity by impulse/mass. Impulses are ignored while the body is kinematic.
func (b *Body) ApplyImpulse(impulse mgl32.Vec3) {
	if b.kinematic {
		return
	}
	b.SetVelocity(b.Vel.Add(impulse.Mul(1 / b.cfg.Mass)))
	if impulse.Y() > 0 {
		b.OnGround = false
	}
}

// SetKinematic suspends or resumes force driven motion. A body that turns kinematic stops in place.
func (b *Body) SetKinematic(kinematic bool) {
	if kinematic && !b.kinematic {
		b.SetVelocity(mgl32.Vec3{})
	}
	b.kinematic = kinematic
}

func (b *Body) Kinematic() bool {
	return b.kinematic
}

func (b *Body) SetCollider(c locomotion.Collider) {
	b.collider = c
}

func (b *Body) Collider() locomotion.Collider {
	return b.collider
}

// BBox returns the world space box enclosing the body's collider.
func (b *Body) BBox() cube.BBox {
	return b.collider.BBox(b.Pos)
}

// Step advances the body by dt seconds: gravity and drag are applied, the body moves by its velocity and is
// then kept on top of the surface.
func (b *Body) Step(dt float32) {
	if b.kinematic || !(dt > 0) {
		return
	}

	vel := b.Vel
	vel[1] -= b.cfg.Gravity * dt
	if b.cfg.Drag > 0 {
		vel = vel.Mul(1 / (1 + b.cfg.Drag*dt))
	}
	pos := b.Pos.Add(vel.Mul(dt))

	wasOnGround := b.OnGround
	b.OnGround = false
	if b.surface != nil && vel.Y() <= 0 {
		if h, ok := b.surface.SurfaceHeight(pos, b.collider.Radius); ok {
			snap := pos.Y() <= h || (wasOnGround && pos.Y()-h <= b.cfg.SnapDistance)
			if snap {
				pos[1] = h
				vel[1] = 0
				b.OnGround = true
			}
		}
	}

	b.SetVelocity(vel)
	b.SetPos(pos)
}
