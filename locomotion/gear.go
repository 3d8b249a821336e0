package locomotion

import (
	"github.com/oomph-ac/stride/game"
	"github.com/oomph-ac/stride/oerror"
)

// Gear is one tier of the transmission model.
type Gear struct {
	// SpeedMultiplier scales the top speed of the active posture.
	SpeedMultiplier float32
	// Acceleration scales the run acceleration.
	Acceleration float32
	// AngularAcceleration is the maximum turn rate in degrees per second, used when turn limiting is enabled.
	AngularAcceleration float32
}

// GearTable is indexed by gear level.
type GearTable []Gear

// DefaultGearTable returns the four gear tuning used by default.
func DefaultGearTable() GearTable {
	table := make(GearTable, len(game.DefaultGearSpeedMultipliers))
	for i := range table {
		table[i] = Gear{
			SpeedMultiplier:     game.DefaultGearSpeedMultipliers[i],
			Acceleration:        game.DefaultGearAccelerations[i],
			AngularAcceleration: game.DefaultGearAngularAccelerations[i],
		}
	}
	return table
}

func (t GearTable) validate(maxGear int) error {
	if maxGear < 0 {
		return oerror.New("max gear must not be negative (got %d)", maxGear)
	}
	if len(t) <= maxGear {
		return oerror.New("gear table has %d entries but max gear is %d", len(t), maxGear)
	}
	for i, g := range t[:maxGear+1] {
		if g.SpeedMultiplier <= 0 || g.Acceleration <= 0 || g.AngularAcceleration <= 0 {
			return oerror.New("gear %d has non-positive tuning: %+v", i, g)
		}
	}
	return nil
}

// GearContext is handed to a GearPolicy every frame the body sprints forward.
type GearContext struct {
	Gear    int
	MaxGear int
	// Held is how long, in seconds, the body has sprinted forward in the current gear.
	Held float32
	// Speed is the current horizontal speed, TopSpeed the top speed of the current gear.
	Speed    float32
	TopSpeed float32
}

// GearPolicy decides gear progression while sprint-forward intent holds. The returned gear is clamped to
// [0, MaxGear].
type GearPolicy interface {
	Next(ctx GearContext) int
}

// ManualGears keeps whichever gear was set externally through the controller.
type ManualGears struct{}

func (ManualGears) Next(ctx GearContext) int {
	return ctx.Gear
}

// TimedGears shifts up once the body has sprinted in a gear for that gear's interval.
type TimedGears struct {
	Intervals []float32
}

func (p TimedGears) Next(ctx GearContext) int {
	if ctx.Gear >= ctx.MaxGear || ctx.Gear >= len(p.Intervals) {
		return ctx.Gear
	}
	if ctx.Held >= p.Intervals[ctx.Gear] {
		return ctx.Gear + 1
	}
	return ctx.Gear
}

// RevMatchedGears shifts up once the body reaches Ratio of the current gear's top speed.
type RevMatchedGears struct {
	Ratio float32
}

func (p RevMatchedGears) Next(ctx GearContext) int {
	if ctx.Gear >= ctx.MaxGear || ctx.TopSpeed <= 0 {
		return ctx.Gear
	}
	if ctx.Speed >= ctx.TopSpeed*p.Ratio {
		return ctx.Gear + 1
	}
	return ctx.Gear
}

// Gear returns the current gear level.
func (c *Controller) Gear() int {
	return c.gear
}

// SetGear sets the gear level. It returns an error if the gear is not within [0, MaxGear]. Gear resets to zero the
// next frame sprint-forward intent is absent.
func (c *Controller) SetGear(gear int) error {
	if gear < 0 || gear > c.opts.MaxGear {
		return oerror.New("gear %d out of range [0, %d]", gear, c.opts.MaxGear)
	}
	c.shift(gear)
	return nil
}

// ShiftUp moves one gear up, if possible.
func (c *Controller) ShiftUp() {
	if c.gear < c.opts.MaxGear {
		c.shift(c.gear + 1)
	}
}

// ShiftDown moves one gear down, if possible.
func (c *Controller) ShiftDown() {
	if c.gear > 0 {
		c.shift(c.gear - 1)
	}
}

func (c *Controller) shift(gear int) {
	if gear == c.gear {
		return
	}
	c.dbg.Notify(DebugModeGear, true, "gear %d -> %d (held=%.2fs)", c.gear, gear, c.gearHeld)
	c.gear = gear
	c.gearHeld = 0
}

// currentGear returns the tuning for the active gear.
func (c *Controller) currentGear() Gear {
	return c.opts.Gears[c.gear]
}

// updateGear runs the gear policy while sprint-forward intent holds, and resets to the first gear otherwise.
func (c *Controller) updateGear(dt float32) {
	if !c.sprinting {
		c.shift(0)
		c.gearHeld = 0
		return
	}
	c.gearHeld += dt

	next := c.opts.GearPolicy.Next(GearContext{
		Gear:     c.gear,
		MaxGear:  c.opts.MaxGear,
		Held:     c.gearHeld,
		Speed:    game.HorizontalLen(c.body.Velocity()),
		TopSpeed: c.opts.topSpeed(c.posture, true, c.currentGear()),
	})
	c.shift(min(max(next, 0), c.opts.MaxGear))
}
