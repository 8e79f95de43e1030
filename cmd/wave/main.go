// Command wave draws a standing sine wave as a connected line, redrawn at
// the frame rate cap.
package main

import (
	"flag"
	"log/slog"
	"math"
	"os"
	"runtime"

	"github.com/kjkrol/gokplot/pkg/glplot"
	"github.com/kjkrol/gokplot/pkg/plot"
	"gonum.org/v1/gonum/floats"
)

func init() {
	runtime.LockOSThread()
}

const samples = 512

func main() {
	verbose := flag.Bool("v", false, "log debug output")
	fps := flag.Float64("fps", plot.DefaultFramerate, "frame rate cap, 0 for none")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	plot.SetLogger(log)

	p, err := glplot.Init("standing wave")
	if err != nil {
		log.Error("open plot", "err", err)
		os.Exit(1)
	}
	defer p.Delete()

	if err := p.SetBounds(0, 2*math.Pi, -1.5, 1.5); err != nil {
		log.Error("bounds", "err", err)
		return
	}
	p.SetConnected(true)
	p.SetPointColor(0x33ccff)
	p.SetFramerate(*fps)

	x := floats.Span(make([]float64, samples), 0, 2*math.Pi)
	y := make([]float64, samples)
	for frame := 0; ; frame++ {
		amplitude := math.Cos(float64(frame) * 0.05)
		for i := range y {
			y[i] = amplitude * math.Sin(2*x[i])
		}
		if p.UpdateWait(x, y, nil) == plot.StatusClosed {
			return
		}
	}
}
