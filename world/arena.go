package world

import (
	"iter"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/stride/game"
	"github.com/oomph-ac/stride/locomotion"
	"github.com/oomph-ac/stride/oerror"
)

// Ramp is an inclined plane over a rectangular footprint. Its height rises by Gradient[0] per unit along X and
// Gradient[1] per unit along Z, starting from Base at the footprint's minimum corner.
type Ramp struct {
	Name     string
	Min, Max mgl32.Vec2
	Base     float32
	Gradient mgl32.Vec2
}

// Height returns the ramp's height at the horizontal position of pos, clamped to the footprint.
func (r Ramp) Height(pos mgl32.Vec3) float32 {
	x := game.ClampFloat(pos.X(), r.Min.X(), r.Max.X()) - r.Min.X()
	z := game.ClampFloat(pos.Z(), r.Min.Y(), r.Max.Y()) - r.Min.Y()
	return r.Base + r.Gradient.X()*x + r.Gradient.Y()*z
}

// Normal returns the ramp's unit surface normal.
func (r Ramp) Normal() mgl32.Vec3 {
	return mgl32.Vec3{-r.Gradient.X(), 1, -r.Gradient.Y()}.Normalize()
}

// Angle returns the ramp's incline in degrees.
func (r Ramp) Angle() float32 {
	return mgl32.RadToDeg(math32.Acos(r.Normal().Y()))
}

func (r Ramp) contains(pos mgl32.Vec3, margin float32) bool {
	return pos.X() >= r.Min.X()-margin && pos.X() <= r.Max.X()+margin &&
		pos.Z() >= r.Min.Y()-margin && pos.Z() <= r.Max.Y()+margin
}

// Ledge is a climbable box. Facing is the direction a body hanging from the ledge looks in, usually into the
// wall. A zero Facing uses the ray direction instead.
type Ledge struct {
	Name   string
	Box    cube.BBox
	Facing mgl32.Vec3
}

// Pad is a jump pad: a trigger volume that launches a body entering it straight up with Force.
type Pad struct {
	Name  string
	Box   cube.BBox
	Force float32
}

// Arena is a static collision world made of flat ground boxes, ramps, ledges and jump pads. It implements
// locomotion.Environment, locomotion.EdgeDetector, rigidbody.Surface and simulation.Triggers. An Arena is
// immutable once built and may be shared between simulations running on different goroutines.
type Arena struct {
	name   string
	ground []cube.BBox
	ramps  []Ramp
	ledges []Ledge
	pads   []Pad
}

// NewArena creates an arena from its parts. Ledge boxes also act as ground; pads are not solid.
func NewArena(name string, ground []cube.BBox, ramps []Ramp, ledges []Ledge, pads []Pad) (*Arena, error) {
	for _, r := range ramps {
		if !(r.Max.X() > r.Min.X()) || !(r.Max.Y() > r.Min.Y()) {
			return nil, oerror.New(game.ErrorArenaInvalidRamp, r.Name)
		}
	}
	for _, p := range pads {
		if !(p.Force > 0) || !game.Finite(p.Force) {
			return nil, oerror.New(game.ErrorArenaInvalidPad, p.Name, p.Force)
		}
	}
	return &Arena{name: name, ground: ground, ramps: ramps, ledges: ledges, pads: pads}, nil
}

// Name returns the name of the arena.
func (a *Arena) Name() string {
	return a.name
}

// Grounded reports whether a sphere at pos touches the top of a ground or ledge box. Touching only the side of a
// box does not count.
func (a *Arena) Grounded(pos mgl32.Vec3, radius float32) bool {
	for bb := range a.solids() {
		if pos.Y() >= bb.Max().Y()-radius && game.AABBVectorDistance(bb, pos) <= radius {
			return true
		}
	}
	return false
}

// Slope reports the ramp a sphere at pos touches. When several ramps are touched the closest one wins.
func (a *Arena) Slope(pos mgl32.Vec3, radius float32) (locomotion.SlopeContact, bool) {
	var (
		contact locomotion.SlopeContact
		best    = radius
		found   bool
	)
	for _, r := range a.ramps {
		if !r.contains(pos, 0) {
			continue
		}
		n := r.Normal()
		dist := (pos.Y() - r.Height(pos)) * n.Y()
		if math32.Abs(dist) > best {
			continue
		}
		best = math32.Abs(dist)
		contact = locomotion.SlopeContact{Normal: n, Point: pos.Sub(n.Mul(dist))}
		found = true
	}
	return contact, found
}

// Edge casts the ray against every ledge and returns the closest hit.
func (a *Arena) Edge(ray locomotion.Ray) (locomotion.EdgeContact, bool) {
	var (
		contact locomotion.EdgeContact
		best    = float32(math32.MaxFloat32)
		found   bool
	)
	end := ray.End()
	for _, l := range a.ledges {
		res, ok := trace.BBoxIntercept(l.Box, ray.Origin, end)
		if !ok {
			continue
		}
		dist := res.Position().Sub(ray.Origin).LenSqr()
		if dist >= best {
			continue
		}
		best = dist

		facing := game.SafeNormalize(game.Horizontal(l.Facing))
		if facing.LenSqr() == 0 {
			facing = game.SafeNormalize(game.Horizontal(ray.Direction))
		}
		contact = locomotion.EdgeContact{Direction: facing, Point: res.Position(), Ref: l.Name}
		found = true
	}
	return contact, found
}

// SurfaceHeight returns the highest floor under a circle at pos. Surfaces more than a step above the feet are
// walls rather than floors and are ignored.
func (a *Arena) SurfaceHeight(pos mgl32.Vec3, radius float32) (float32, bool) {
	var (
		height = float32(-math32.MaxFloat32)
		found  bool
	)
	limit := pos.Y() + game.DefaultStepHeight
	for bb := range a.solids() {
		top := bb.Max().Y()
		if top > limit || top <= height || !game.FootprintContains(bb, pos, radius) {
			continue
		}
		height, found = top, true
	}
	for _, r := range a.ramps {
		if !r.contains(pos, 0) {
			continue
		}
		if h := r.Height(pos); h <= limit && h > height {
			height, found = h, true
		}
	}
	return height, found
}

// Trigger returns the jump pad containing pos and the impulse it applies.
func (a *Arena) Trigger(pos mgl32.Vec3) (string, mgl32.Vec3, bool) {
	for _, p := range a.pads {
		if game.AABBVectorDistance(p.Box, pos) == 0 {
			return p.Name, mgl32.Vec3{0, p.Force}, true
		}
	}
	return "", mgl32.Vec3{}, false
}

// solids yields every box that can be stood on.
func (a *Arena) solids() iter.Seq[cube.BBox] {
	return func(yield func(cube.BBox) bool) {
		for _, bb := range a.ground {
			if !yield(bb) {
				return
			}
		}
		for _, l := range a.ledges {
			if !yield(l.Box) {
				return
			}
		}
	}
}
