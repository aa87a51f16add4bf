// Package capture defines the upstream contract the matching core
// depends on but does not implement: delivering one complete 54-facelet
// BGR array per scan. Concrete collaborators — a BLE scanning dock, or a
// simulated device for development — live in subpackages.
package capture

import (
	"context"
	"errors"
	"math/rand"

	"github.com/SeamusWaldron/cubematch/internal/geometry"
)

// ErrDeviceNotFound is returned when no capture device answers a scan
// request within its discovery window.
var ErrDeviceNotFound = errors.New("capture: device not found")

// ErrCaptureTimeout is returned when a device accepts a scan request but
// does not deliver a complete frame before the context deadline.
var ErrCaptureTimeout = errors.New("capture: timed out waiting for scan")

// Frame is one complete 54-facelet BGR scan, in the fixed U,R,F,D,L,B
// row-major layout the matching core expects.
type Frame [geometry.NumFacelets][3]int

// Device is anything that can deliver a complete facelet scan. The
// capture subsystem is responsible for framing and pixel-averaging;
// Device implementations must hand back a complete frame and must not
// mutate it after returning.
type Device interface {
	Scan(ctx context.Context) (Frame, error)
	Close() error
}

// Simulated is a Device that requires no hardware: it reports a fixed
// face coloring, optionally perturbed with per-facelet color noise, for
// local development and tests.
type Simulated struct {
	colors [geometry.NumFacelets]geometry.Color
	swatch map[geometry.Color][3]int
	noise  float64
	rng    *rand.Rand
}

// defaultSwatch maps each color to a representative BGR triple. Any
// reasonably separated set of colors works; these are not meant to match
// real cube plastic, only to exercise the pipeline end to end.
var defaultSwatch = map[geometry.Color][3]int{
	geometry.U: {230, 230, 230}, // white
	geometry.R: {40, 40, 220},   // red
	geometry.F: {60, 180, 60},   // green
	geometry.D: {40, 210, 230},  // yellow
	geometry.L: {30, 120, 230},  // orange
	geometry.B: {200, 60, 30},   // blue
}

// NewSimulated builds a Simulated device that reports the given face
// coloring. noise, in [0,1], is the fraction of facelets perturbed to a
// random wrong color per scan; 0 always reports the true coloring.
func NewSimulated(colors [geometry.NumFacelets]geometry.Color, noise float64, rng *rand.Rand) *Simulated {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Simulated{colors: colors, swatch: defaultSwatch, noise: noise, rng: rng}
}

// Scan implements Device.
func (s *Simulated) Scan(ctx context.Context) (Frame, error) {
	select {
	case <-ctx.Done():
		return Frame{}, ctx.Err()
	default:
	}

	var f Frame
	for i, c := range s.colors {
		if s.noise > 0 && s.rng.Float64() < s.noise {
			c = geometry.Color((int(c) + 1 + s.rng.Intn(5)) % 6)
		}
		f[i] = s.swatch[c]
	}
	return f, nil
}

// Close implements Device.
func (s *Simulated) Close() error { return nil }
