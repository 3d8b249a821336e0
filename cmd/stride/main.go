package main

import (
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/oomph-ac/stride/scenario"
	"github.com/oomph-ac/stride/settings"
	"github.com/oomph-ac/stride/worker"
	"github.com/sirupsen/logrus"
)

// The following program plays movement scenarios headlessly and logs a report for each of them.
func main() {
	settingsPath := flag.String("settings", "settings.toml", "path to the settings file, created with defaults if missing")
	frameStep := flag.Float64("frame", 0, "frame length in seconds, overriding the settings")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-settings path] [-frame seconds] [scenario.toml...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{ForceColors: true}

	s, err := loadSettings(*settingsPath, log)
	if err != nil {
		log.Fatal(err)
	}
	level, err := s.LogLevel()
	if err != nil {
		log.Fatal(err)
	}
	log.Level = level

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			log.Fatalf("failed to initialise sentry: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	if os.Getenv("PPROF_ENABLED") != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:8080"))

		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
	}

	scripts, err := loadScripts(flag.Args())
	if err != nil {
		log.Fatal(err)
	}

	dt := s.Simulation.FrameStep
	if *frameStep > 0 {
		dt = float32(*frameStep)
	}

	var (
		mu     sync.Mutex
		failed int
	)
	jobs := make([]func(), 0, len(scripts))
	for _, script := range scripts {
		jobs = append(jobs, func() {
			entry := log.WithField("scenario", script.Name)
			report, err := play(script, s, dt, log)
			if err != nil {
				entry.Errorf("scenario failed: %v", err)
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}
			entry.WithFields(report.Fields()).Info("scenario finished")
			for _, t := range report.Transitions {
				entry.Debugf("frame %d: %v -> %v", t.Frame, t.From, t.To)
			}
		})
	}
	worker.Run(jobs...)

	if failed > 0 {
		log.Errorf("%d of %d scenarios failed", failed, len(scripts))
		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}
}

// loadSettings loads the settings file, writing the defaults first if it does not exist yet.
func loadSettings(path string, log *logrus.Logger) (settings.Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := settings.SaveDefault(path); err != nil {
			return settings.Settings{}, err
		}
		log.Infof("wrote default settings to %s", path)
	}
	return settings.Load(path)
}

// loadScripts loads the scenario files given, or every built-in scenario when none are.
func loadScripts(paths []string) ([]*scenario.Script, error) {
	if len(paths) == 0 {
		names := scenario.BuiltinNames()
		scripts := make([]*scenario.Script, 0, len(names))
		for _, name := range names {
			s, _ := scenario.Builtin(name)
			scripts = append(scripts, s)
		}
		return scripts, nil
	}

	scripts := make([]*scenario.Script, 0, len(paths))
	for _, path := range paths {
		s, err := scenario.Load(path)
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, s)
	}
	return scripts, nil
}

func play(script *scenario.Script, s settings.Settings, dt float32, log *logrus.Logger) (scenario.Report, error) {
	r, err := scenario.Build(script, s, log)
	if err != nil {
		return scenario.Report{}, err
	}
	return scenario.Play(r, script, dt)
}
