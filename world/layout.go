package world

import (
	"sort"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/stride/game"
	"github.com/oomph-ac/stride/oerror"
)

// BoxLayout describes a box by two opposite corners.
type BoxLayout struct {
	Min []float32 `toml:"min"`
	Max []float32 `toml:"max"`
}

// RampLayout describes a ramp. Min and Max are the horizontal (x, z) corners of its footprint.
type RampLayout struct {
	Name     string    `toml:"name"`
	Min      []float32 `toml:"min"`
	Max      []float32 `toml:"max"`
	Base     float32   `toml:"base"`
	Gradient []float32 `toml:"gradient"`
}

// LedgeLayout describes a climbable box.
type LedgeLayout struct {
	Name   string    `toml:"name"`
	Min    []float32 `toml:"min"`
	Max    []float32 `toml:"max"`
	Facing []float32 `toml:"facing"`
}

// PadLayout describes a jump pad volume and the upward impulse it applies.
type PadLayout struct {
	Name  string    `toml:"name"`
	Min   []float32 `toml:"min"`
	Max   []float32 `toml:"max"`
	Force float32   `toml:"force"`
}

// Layout is the serialisable description of an arena.
type Layout struct {
	Name   string        `toml:"name"`
	Ground []BoxLayout   `toml:"ground"`
	Ramps  []RampLayout  `toml:"ramp"`
	Ledges []LedgeLayout `toml:"ledge"`
	Pads   []PadLayout   `toml:"pad"`
}

// Build creates the arena described by the layout.
func (l Layout) Build() (*Arena, error) {
	ground := make([]cube.BBox, 0, len(l.Ground))
	for i, g := range l.Ground {
		bb, err := box(g.Min, g.Max)
		if err != nil {
			return nil, oerror.New("arena %q: ground %d: %v", l.Name, i, err)
		}
		ground = append(ground, bb)
	}

	ramps := make([]Ramp, 0, len(l.Ramps))
	for i, r := range l.Ramps {
		lo, err := vec2(r.Min)
		if err != nil {
			return nil, oerror.New("arena %q: ramp %d min: %v", l.Name, i, err)
		}
		hi, err := vec2(r.Max)
		if err != nil {
			return nil, oerror.New("arena %q: ramp %d max: %v", l.Name, i, err)
		}
		gradient, err := vec2(r.Gradient)
		if err != nil {
			return nil, oerror.New("arena %q: ramp %d gradient: %v", l.Name, i, err)
		}
		ramps = append(ramps, Ramp{Name: r.Name, Min: lo, Max: hi, Base: r.Base, Gradient: gradient})
	}

	ledges := make([]Ledge, 0, len(l.Ledges))
	for i, le := range l.Ledges {
		bb, err := box(le.Min, le.Max)
		if err != nil {
			return nil, oerror.New("arena %q: ledge %d: %v", l.Name, i, err)
		}
		var facing mgl32.Vec3
		if len(le.Facing) != 0 {
			if facing, err = vec3(le.Facing); err != nil {
				return nil, oerror.New("arena %q: ledge %d facing: %v", l.Name, i, err)
			}
		}
		ledges = append(ledges, Ledge{Name: le.Name, Box: bb, Facing: facing})
	}

	pads := make([]Pad, 0, len(l.Pads))
	for i, pl := range l.Pads {
		bb, err := box(pl.Min, pl.Max)
		if err != nil {
			return nil, oerror.New("arena %q: pad %d: %v", l.Name, i, err)
		}
		pads = append(pads, Pad{Name: pl.Name, Box: bb, Force: pl.Force})
	}
	return NewArena(l.Name, ground, ramps, ledges, pads)
}

var builtin = map[string]Layout{
	"flat": {
		Name:   "flat",
		Ground: []BoxLayout{{Min: []float32{-1000, -1, -1000}, Max: []float32{1000, 0, 1000}}},
	},
	"proving": {
		Name: "proving",
		Ground: []BoxLayout{
			{Min: []float32{-200, -1, -200}, Max: []float32{200, 0, 200}},
			{Min: []float32{-5, 0, 20}, Max: []float32{5, 5, 30}},
		},
		Ramps: []RampLayout{
			{Name: "incline", Min: []float32{-5, 10}, Max: []float32{5, 20}, Gradient: []float32{0, 0.5}},
		},
		Ledges: []LedgeLayout{
			{Name: "wall", Min: []float32{-5, 0, 40}, Max: []float32{5, 4, 42}, Facing: []float32{0, 0, 1}},
		},
		Pads: []PadLayout{
			{Name: "launcher", Min: []float32{-32, 0, -12}, Max: []float32{-28, 0.5, -8}, Force: 12},
		},
	},
}

// Builtin returns a named built-in layout.
func Builtin(name string) (Layout, bool) {
	l, ok := builtin[name]
	return l, ok
}

// BuiltinNames returns the names of the built-in layouts in lexical order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func box(lo, hi []float32) (cube.BBox, error) {
	a, err := vec3(lo)
	if err != nil {
		return cube.BBox{}, err
	}
	b, err := vec3(hi)
	if err != nil {
		return cube.BBox{}, err
	}
	return game.BoxFromCorners(a, b), nil
}

func vec3(v []float32) (mgl32.Vec3, error) {
	if len(v) != 3 {
		return mgl32.Vec3{}, oerror.New("expected 3 components, got %d", len(v))
	}
	return mgl32.Vec3{v[0], v[1], v[2]}, nil
}

func vec2(v []float32) (mgl32.Vec2, error) {
	if len(v) != 2 {
		return mgl32.Vec2{}, oerror.New("expected 2 components, got %d", len(v))
	}
	return mgl32.Vec2{v[0], v[1]}, nil
}
