package game

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// BoxFromCorners returns a bounding box spanning two opposite corners given in any order.
func BoxFromCorners(a, b mgl32.Vec3) cube.BBox {
	return cube.Box(a[0], a[1], a[2], b[0], b[1], b[2])
}

// AABBFromDimensions returns a bounding box from the given dimensions, centred horizontally on the origin.
func AABBFromDimensions(width, height float32) cube.BBox {
	h := width / 2
	return cube.Box(
		-h, 0, -h,
		h, height, h,
	)
}

// AABBVectorDistance calculates the distance between an AABB and a vector.
func AABBVectorDistance(a cube.BBox, v mgl32.Vec3) float32 {
	x := math32.Max(a.Min().X()-v.X(), math32.Max(0, v.X()-a.Max().X()))
	y := math32.Max(a.Min().Y()-v.Y(), math32.Max(0, v.Y()-a.Max().Y()))
	z := math32.Max(a.Min().Z()-v.Z(), math32.Max(0, v.Z()-a.Max().Z()))

	dist := math32.Sqrt(x*x + y*y + z*z)
	if math32.IsNaN(dist) {
		dist = 0
	}
	return dist
}

// FootprintContains returns true if the horizontal footprint of the box, grown by margin, contains pos.
func FootprintContains(a cube.BBox, pos mgl32.Vec3, margin float32) bool {
	return pos.X() >= a.Min().X()-margin && pos.X() <= a.Max().X()+margin &&
		pos.Z() >= a.Min().Z()-margin && pos.Z() <= a.Max().Z()+margin
}
