package locomotion

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/stride/game"
)

// Collider holds the extents of the body's capsule. Center is the height of the capsule's centre above the
// body's feet.
type Collider struct {
	Height float32
	Radius float32
	Center float32
}

// StandingCollider returns the collider used while standing.
func StandingCollider() Collider {
	return Collider{Height: game.StandingHeight, Radius: game.ColliderRadius, Center: game.StandingCenter}
}

// CrouchingCollider returns the collider used while crouching or sliding.
func CrouchingCollider() Collider {
	return Collider{Height: game.CrouchingHeight, Radius: game.ColliderRadius, Center: game.CrouchingCenter}
}

// BBox returns the axis aligned box enclosing the collider for a body whose feet are at pos.
func (c Collider) BBox(pos mgl32.Vec3) cube.BBox {
	return game.AABBFromDimensions(c.Radius*2, c.Height).Translate(pos.Add(mgl32.Vec3{0, c.Center - c.Height/2}))
}
