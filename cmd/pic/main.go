// Command pic plots the phase space of a two-stream instability as it
// develops: particle position against velocity, one color per beam.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"runtime"

	"github.com/kjkrol/gokplot/pkg/glplot"
	"github.com/kjkrol/gokplot/pkg/plot"
	"github.com/kjkrol/gokplot/pkg/sim"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	verbose := flag.Bool("v", false, "log debug output")
	particles := flag.Int("particles", 100000, "number of simulated particles")
	fps := flag.Float64("fps", plot.DefaultFramerate, "frame rate cap, 0 for none")
	seed := flag.Uint64("seed", 251, "velocity spread seed")
	resources := flag.String("resources", plot.DefaultResourceRoot, "shader and image directory")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	plot.SetLogger(log)

	if err := run(*particles, *fps, *seed, *resources); err != nil {
		log.Error("pic failed", "err", err)
		os.Exit(1)
	}
}

func run(particles int, fps float64, seed uint64, resources string) error {
	conf := sim.DefaultConfig()
	conf.Particles = particles
	s, err := sim.New(conf, seed)
	if err != nil {
		return err
	}

	plotConf := plot.DefaultConfig("PIC phase plot")
	plotConf.ResourceRoot = resources
	p, err := glplot.New(plotConf)
	if err != nil {
		return err
	}
	defer p.Delete()

	if err := p.SetBounds(0, conf.Length, -30, 30); err != nil {
		return err
	}
	p.SetGridX(0, 2, 0x000000)
	p.SetGridY(0, 5, 0x000000)
	p.SetPointColor(0x000000)
	p.SetBGColor(0xffffff)
	p.SetPointSize(1)
	p.SetPointAlpha(1)
	p.SetFramerate(fps)

	ctx := context.Background()
	if err := s.Start(ctx); err != nil {
		return err
	}
	for {
		if err := s.Synchronize(ctx); err != nil {
			return err
		}
		if p.UpdateIfReady(s.X, s.V, s.Colors) == plot.StatusClosed {
			plot.Logger().Info("window closed", "steps", s.Steps(), "netCharge", s.NetCharge())
			return nil
		}
		if err := s.Advance(ctx); err != nil {
			return err
		}
	}
}
