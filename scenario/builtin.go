package scenario

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	forward = []float32{0, 1}
	idle    = []float32{0, 0}
)

// builtin holds the constructors of the built-in scripts.
var builtin = map[string]func() (*Script, error){
	"walk": func() (*Script, error) {
		return NewScript("walk", 3,
			Segment{At: 0, Move: forward},
			Segment{At: 2, Move: idle},
		)
	},
	"sprint-gears": func() (*Script, error) {
		return NewScript("sprint-gears", 3,
			Segment{At: 0, Move: forward, Sprint: true},
			Segment{At: 1, Move: forward, Sprint: true, Gear: 1},
			Segment{At: 2, Move: forward, Sprint: true, Gear: 2},
			Segment{At: 2.5, Move: forward},
		)
	},
	"sprint-slide": func() (*Script, error) {
		return NewScript("sprint-slide", 3,
			Segment{At: 0, Move: forward, Sprint: true},
			Segment{At: 1.5, Move: forward, Crouch: true},
			Segment{At: 2.5, Move: idle},
		)
	},
	"jump": func() (*Script, error) {
		return NewScript("jump", 3.5,
			Segment{At: 0, Move: forward},
			Segment{At: 0.5, Move: forward, Jump: true},
		)
	},
	"jump-pad": func() (*Script, error) {
		s, err := NewScript("jump-pad", 3.5, Segment{At: 0, Move: forward})
		if err != nil {
			return nil, err
		}
		s.Arena, s.Start = "proving", mgl32.Vec3{-30, 0, -16}
		return s, nil
	},
	"ramp": func() (*Script, error) {
		s, err := NewScript("ramp", 1.2, Segment{At: 0, Move: forward})
		if err != nil {
			return nil, err
		}
		s.Arena, s.Start = "proving", mgl32.Vec3{0, 0, 5}
		return s, nil
	},
	"ledge-climb": func() (*Script, error) {
		s, err := NewScript("ledge-climb", 5,
			Segment{At: 0},
			Segment{At: 1.5, Move: forward, Jump: true},
			Segment{At: 1.6, Move: idle},
		)
		if err != nil {
			return nil, err
		}
		s.Arena, s.Start = "proving", mgl32.Vec3{0, 6, 39.2}
		return s, nil
	},
	"ledge-bounce": func() (*Script, error) {
		s, err := NewScript("ledge-bounce", 3,
			Segment{At: 0},
			Segment{At: 1.5, Jump: true},
		)
		if err != nil {
			return nil, err
		}
		s.Arena, s.Start = "proving", mgl32.Vec3{0, 6, 39.2}
		return s, nil
	},
}

// Builtin returns a new instance of a named built-in script.
func Builtin(name string) (*Script, bool) {
	f, ok := builtin[name]
	if !ok {
		return nil, false
	}
	s, err := f()
	if err != nil {
		panic(err)
	}
	return s, true
}

// BuiltinNames returns the names of the built-in scripts in lexical order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
