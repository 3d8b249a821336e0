package locomotion

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// DebugMode selects which parts of the controller emit trace logs.
type DebugMode uint8

const (
	DebugModeTransitions DebugMode = 1 << iota
	DebugModeIntegrator
	DebugModePosture
	DebugModeEdge
	DebugModeGear

	DebugModeAll = DebugModeTransitions | DebugModeIntegrator | DebugModePosture | DebugModeEdge | DebugModeGear
)

var debugModeNames = [...]string{"transitions", "integrator", "posture", "edge", "gear"}

func (m DebugMode) String() string {
	var names []string
	for i, name := range debugModeNames {
		if m&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// ParseDebugMode parses a debug mode name as returned by DebugMode.String. "all" enables every mode.
func ParseDebugMode(name string) (DebugMode, bool) {
	if name == "all" {
		return DebugModeAll, true
	}
	for i, n := range debugModeNames {
		if n == name {
			return 1 << i, true
		}
	}
	return 0, false
}

// Debugger routes controller trace output to a logger.
type Debugger struct {
	Modes DebugMode
	log   *logrus.Logger
}

func newDebugger(log *logrus.Logger, modes DebugMode) *Debugger {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Debugger{Modes: modes, log: log}
}

// Toggle flips the given modes.
func (d *Debugger) Toggle(mode DebugMode) {
	d.Modes ^= mode
}

// Enabled returns true if every given mode is enabled.
func (d *Debugger) Enabled(mode DebugMode) bool {
	return d.Modes&mode == mode
}

// Notify logs a debug message if the mode is enabled and cond holds.
func (d *Debugger) Notify(mode DebugMode, cond bool, format string, args ...any) {
	if !cond || d.Modes&mode == 0 {
		return
	}
	d.log.WithField("mode", mode.String()).Debugf(format, args...)
}
