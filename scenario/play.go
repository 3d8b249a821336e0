package scenario

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/stride/game"
	"github.com/oomph-ac/stride/locomotion"
	"github.com/oomph-ac/stride/oerror"
	"github.com/oomph-ac/stride/rigidbody"
	"github.com/oomph-ac/stride/settings"
	"github.com/oomph-ac/stride/simulation"
	"github.com/sirupsen/logrus"
)

// Build creates a runner for the script: a rigid body placed at the script's start in its arena, driven by a
// controller configured from s and facing the script's yaw. The arena's jump pads launch the body.
func Build(script *Script, s settings.Settings, log *logrus.Logger) (*simulation.Runner, error) {
	arena, err := script.BuildArena()
	if err != nil {
		return nil, err
	}
	body, err := rigidbody.New(script.Start, s.BodyConfig(), arena)
	if err != nil {
		return nil, err
	}
	opts, err := s.Options(log)
	if err != nil {
		return nil, err
	}
	c, err := locomotion.New(body, arena, opts)
	if err != nil {
		return nil, err
	}
	c.SetRotation(script.Yaw, 0)
	r, err := simulation.New(c, body, s.SimulationConfig(), log)
	if err != nil {
		return nil, err
	}
	r.SetTriggers(arena)
	return r, nil
}

// Report summarises a played script.
type Report struct {
	Name  string
	Arena string

	Frames  uint64
	Steps   uint64
	Dropped float32

	State    locomotion.State
	Position mgl32.Vec3
	// Distance is the horizontal distance between the start and final positions.
	Distance     float32
	PeakSpeed    float32
	AverageSpeed float32
	TopGear      int
	MaxAirTime   float32
	// Launches is the number of jump pads entered.
	Launches uint64

	// StateTime holds the seconds spent in each state, in the order the states were first entered.
	StateTime   *orderedmap.OrderedMap[locomotion.State, float32]
	Transitions []locomotion.Transition
}

// Play runs the script against r with frames of frameDt seconds. Held inputs follow the active segment; jumps and
// gear shifts fire on a segment's first frame.
func Play(r *simulation.Runner, script *Script, frameDt float32) (Report, error) {
	if !(frameDt > 0) || !game.Finite(frameDt) {
		return Report{}, oerror.New("scenario %q: frame step must be positive (got %v)", script.Name, frameDt)
	}
	c := r.Controller()
	start := c.Snapshot()

	report := Report{
		Name:      script.Name,
		Arena:     script.Arena,
		StateTime: orderedmap.NewOrderedMap[locomotion.State, float32](),
	}
	if len(script.Layout.Ground) != 0 {
		report.Arena = script.Layout.Name
	}

	var (
		current  Segment
		started  bool
		speedSum float32
	)
	frames := int(math32.Ceil(script.Duration/frameDt - 1e-4))
	for i := range frames {
		seg, ok := script.At(float32(i) * frameDt)
		in := seg.Input()
		if ok && (!started || seg.At != current.At) {
			started, current = true, seg
			in.Jump = seg.Jump
			if seg.Gear != 0 {
				if err := c.SetGear(seg.Gear); err != nil {
					return report, oerror.New("scenario %q: segment at %v: %v", script.Name, seg.At, err)
				}
			}
		}

		r.Frame(frameDt, &in)
		snap := c.Snapshot()
		if t, ok := c.LastTransition(); ok && t.Frame == snap.Frame {
			report.Transitions = append(report.Transitions, t)
		}
		spent, _ := report.StateTime.Get(snap.State)
		report.StateTime.Set(snap.State, spent+frameDt)

		speedSum += snap.HorizontalSpeed
		report.PeakSpeed = max(report.PeakSpeed, snap.HorizontalSpeed)
		report.TopGear = max(report.TopGear, snap.Gear)
		report.MaxAirTime = max(report.MaxAirTime, snap.AirTime)
	}

	end := c.Snapshot()
	report.Frames, report.Steps, report.Dropped = r.Frames(), r.Steps(), r.Dropped()
	report.Launches = r.Triggered()
	report.State, report.Position = end.State, end.Position
	report.Distance = game.HorizontalLen(end.Position.Sub(start.Position))
	if frames > 0 {
		report.AverageSpeed = speedSum / float32(frames)
	}
	return report, nil
}

// TimeIn returns the seconds spent in a state.
func (r Report) TimeIn(state locomotion.State) float32 {
	t, _ := r.StateTime.Get(state)
	return t
}

// StateTimes formats the time spent per state.
func (r Report) StateTimes() string {
	str := "["
	count := r.StateTime.Len()
	for el := r.StateTime.Front(); el != nil; el = el.Next() {
		str += fmt.Sprintf("%v=%.2fs", el.Key, el.Value)

		count--
		if count > 0 {
			str += " "
		}
	}
	return str + "]"
}

// Fields returns the report as log fields.
func (r Report) Fields() logrus.Fields {
	return logrus.Fields{
		"arena":       r.Arena,
		"frames":      r.Frames,
		"steps":       r.Steps,
		"dropped":     game.Round32(r.Dropped, 3),
		"state":       r.State.String(),
		"pos":         fmt.Sprintf("(%.2f, %.2f, %.2f)", r.Position.X(), r.Position.Y(), r.Position.Z()),
		"distance":    game.Round32(r.Distance, 2),
		"peak_speed":  game.Round32(r.PeakSpeed, 2),
		"avg_speed":   game.Round32(r.AverageSpeed, 2),
		"top_gear":    r.TopGear,
		"max_airtime": game.Round32(r.MaxAirTime, 2),
		"launches":    r.Launches,
		"states":      r.StateTimes(),
		"transitions": len(r.Transitions),
	}
}
