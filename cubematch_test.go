package cubematch

import (
	"context"
	"encoding/binary"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/SeamusWaldron/cubematch/internal/capture"
	"github.com/SeamusWaldron/cubematch/internal/cubegen"
	"github.com/SeamusWaldron/cubematch/internal/geometry"
	"github.com/SeamusWaldron/cubematch/internal/prior"
)

// writePriorFixture builds a sparse prior-table file favoring one color
// per BGR key and returns its path.
func writePriorFixture(t *testing.T, swatch map[geometry.Color][3]int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prior.bin")

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := f.Truncate(prior.FileSize); err != nil {
		t.Fatal(err)
	}

	const entrySize = prior.NumColors * 2
	for color, bgr := range swatch {
		idx := ((bgr[0] * 256) + bgr[1]) * 256 + bgr[2]
		off := int64(idx) * entrySize
		buf := make([]byte, entrySize)
		binary.LittleEndian.PutUint16(buf[int(color)*2:int(color)*2+2], 1000)
		if _, err := f.WriteAt(buf, off); err != nil {
			t.Fatal(err)
		}
	}
	return path
}

// matchingSwatch mirrors the capture package's simulated-device swatch:
// each color maps to a distinct, well-separated BGR triple. It is
// defined independently here rather than imported, since it describes
// the fixture this test builds, not a capture concern.
var matchingSwatch = map[geometry.Color][3]int{
	geometry.U: {230, 230, 230},
	geometry.R: {40, 40, 220},
	geometry.F: {60, 180, 60},
	geometry.D: {40, 210, 230},
	geometry.L: {30, 120, 230},
	geometry.B: {200, 60, 30},
}

func TestLoadTableMissingFile(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "missing.bin"))
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestMatchEndToEndScrambledCube(t *testing.T) {
	tablePath := writePriorFixture(t, matchingSwatch)
	table, err := LoadTable(tablePath)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}

	c := cubegen.NewSolved()
	c.Scramble(15, rand.New(rand.NewSource(5)))
	colors := c.Colors()

	device := capture.NewSimulated(colors, 0, nil)
	frame, err := device.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	var bgrs [geometry.NumFacelets]BGR
	for i, triple := range frame {
		bgrs[i] = BGR{B: triple[0], G: triple[1], R: triple[2]}
	}

	face, err := Match(table, bgrs)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if want := c.FaceString(); face != want {
		t.Errorf("Match = %q, want %q", face, want)
	}
}

func TestMatchRespectsWithAttempts(t *testing.T) {
	tablePath := writePriorFixture(t, matchingSwatch)
	table, err := LoadTable(tablePath)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}

	c := cubegen.NewSolved()
	colors := c.Colors()
	device := capture.NewSimulated(colors, 0, nil)
	frame, err := device.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	var bgrs [geometry.NumFacelets]BGR
	for i, triple := range frame {
		bgrs[i] = BGR{B: triple[0], G: triple[1], R: triple[2]}
	}

	face, err := Match(table, bgrs, WithAttempts(1))
	if err != nil {
		t.Fatalf("Match with WithAttempts(1): %v", err)
	}
	if want := c.FaceString(); face != want {
		t.Errorf("Match = %q, want %q", face, want)
	}
}
