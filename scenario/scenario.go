package scenario

import (
	"os"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/stride/game"
	"github.com/oomph-ac/stride/locomotion"
	"github.com/oomph-ac/stride/oerror"
	"github.com/oomph-ac/stride/world"
	"github.com/pelletier/go-toml"
)

// Segment is a span of constant input in a script. It lasts until the next segment starts or the script ends.
type Segment struct {
	// At is the time in seconds the segment starts at.
	At     float32   `toml:"at"`
	Move   []float32 `toml:"move"`
	Look   []float32 `toml:"look"`
	Sprint bool      `toml:"sprint"`
	Crouch bool      `toml:"crouch"`
	// Jump is requested once, on the first frame of the segment.
	Jump bool `toml:"jump"`
	// Gear is shifted to on the first frame of the segment. Zero leaves the gear alone.
	Gear int `toml:"gear"`
}

// Input returns the held input of the segment. Jump is left for the player to request on the segment's first
// frame.
func (s Segment) Input() locomotion.InputSample {
	in := locomotion.InputSample{Sprint: s.Sprint, CrouchSlide: s.Crouch}
	if len(s.Move) == 2 {
		in.Move = mgl32.Vec2{s.Move[0], s.Move[1]}
	}
	if len(s.Look) == 2 {
		in.Look = mgl32.Vec2{s.Look[0], s.Look[1]}
	}
	return in
}

// Script is a timeline of input segments played against an arena.
type Script struct {
	Name     string
	Duration float32
	// Arena names a built-in arena. It is ignored when Layout describes any ground.
	Arena  string
	Layout world.Layout
	Start  mgl32.Vec3
	Yaw    float32

	timeline *orderedmap.OrderedMap[float32, Segment]
}

// NewScript creates a script on the flat arena from segments ordered by start time.
func NewScript(name string, duration float32, segments ...Segment) (*Script, error) {
	if !(duration > 0) || !game.Finite(duration) {
		return nil, oerror.New(game.ErrorScenarioBadDuration, name, duration)
	}
	if len(segments) == 0 {
		return nil, oerror.New(game.ErrorScenarioNoSegments, name)
	}

	s := &Script{Name: name, Duration: duration, Arena: "flat", timeline: orderedmap.NewOrderedMap[float32, Segment]()}
	for i, seg := range segments {
		if !(seg.At >= 0) || seg.At >= duration {
			return nil, oerror.New(game.ErrorScenarioSegmentBounds, name, i, seg.At, duration)
		}
		if back := s.timeline.Back(); back != nil && seg.At <= back.Key {
			return nil, oerror.New(game.ErrorScenarioSegmentOrder, name, i, seg.At)
		}
		if err := checkVector(name, "move", seg.Move, 2); err != nil {
			return nil, err
		}
		if err := checkVector(name, "look", seg.Look, 2); err != nil {
			return nil, err
		}
		s.timeline.Set(seg.At, seg)
	}
	return s, nil
}

// At returns the segment active at time t, which is the last segment starting at or before t.
func (s *Script) At(t float32) (Segment, bool) {
	var (
		active Segment
		found  bool
	)
	for el := s.timeline.Front(); el != nil && el.Key <= t; el = el.Next() {
		active, found = el.Value, true
	}
	return active, found
}

// Segments returns the segments of the script in start order.
func (s *Script) Segments() []Segment {
	segments := make([]Segment, 0, s.timeline.Len())
	for _, at := range s.timeline.Keys() {
		seg, _ := s.timeline.Get(at)
		segments = append(segments, seg)
	}
	return segments
}

// BuildArena builds the arena the script is played in.
func (s *Script) BuildArena() (*world.Arena, error) {
	if len(s.Layout.Ground) != 0 {
		layout := s.Layout
		if layout.Name == "" {
			layout.Name = s.Name
		}
		return layout.Build()
	}
	layout, ok := world.Builtin(s.Arena)
	if !ok {
		return nil, oerror.New(game.ErrorScenarioUnknownArena, s.Name, s.Arena)
	}
	return layout.Build()
}

// file is the TOML shape of a script.
type file struct {
	Name     string       `toml:"name"`
	Duration float32      `toml:"duration"`
	Arena    string       `toml:"arena"`
	Start    []float32    `toml:"start"`
	Yaw      float32      `toml:"yaw"`
	Layout   world.Layout `toml:"layout"`
	Segments []Segment    `toml:"segment"`
}

// Load reads a script from a TOML file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, oerror.New("error reading scenario %s: %v", path, err)
	}
	return Parse(data)
}

// Parse decodes a script from TOML.
func Parse(data []byte) (*Script, error) {
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, oerror.New("error decoding scenario: %v", err)
	}

	s, err := NewScript(f.Name, f.Duration, f.Segments...)
	if err != nil {
		return nil, err
	}
	if f.Arena != "" {
		s.Arena = f.Arena
	}
	s.Layout, s.Yaw = f.Layout, f.Yaw
	if len(f.Start) != 0 {
		if err := checkVector(f.Name, "start", f.Start, 3); err != nil {
			return nil, err
		}
		s.Start = mgl32.Vec3{f.Start[0], f.Start[1], f.Start[2]}
	}
	if len(s.Layout.Ground) == 0 {
		if _, ok := world.Builtin(s.Arena); !ok {
			return nil, oerror.New(game.ErrorScenarioUnknownArena, s.Name, s.Arena)
		}
	}
	return s, nil
}

func checkVector(name, field string, v []float32, n int) error {
	if len(v) != 0 && len(v) != n {
		return oerror.New(game.ErrorScenarioBadVector, name, field, n, len(v))
	}
	return nil
}
