package cubegen

import (
	"math/rand"
	"testing"

	"github.com/SeamusWaldron/cubematch/internal/geometry"
)

func TestNewSolvedHasUniformFaces(t *testing.T) {
	c := NewSolved()
	colors := c.Colors()
	for face := 0; face < 6; face++ {
		want := colors[face*9+4]
		for pos := 0; pos < 9; pos++ {
			if got := colors[face*9+pos]; got != want {
				t.Errorf("face %d facelet %d = %v, want %v (uniform)", face, pos, got, want)
			}
		}
	}
}

func TestScramblePreservesColorCounts(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	c := NewSolved()
	c.Scramble(50, rng)

	var counts [6]int
	for _, col := range c.Colors() {
		counts[col]++
	}
	for col, n := range counts {
		if n != 9 {
			t.Errorf("color %d appears %d times after scramble, want 9", col, n)
		}
	}
}

func TestScrambleKeepsCentersFixed(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c := NewSolved()
	c.Scramble(30, rng)
	colors := c.Colors()

	want := []geometry.Color{geometry.U, geometry.R, geometry.F, geometry.D, geometry.L, geometry.B}
	for face := 0; face < 6; face++ {
		if got := colors[face*9+4]; got != want[face] {
			t.Errorf("center of face %d = %v, want %v (face turns never move centers)", face, got, want[face])
		}
	}
}

func TestFaceStringLength(t *testing.T) {
	c := NewSolved()
	s := c.FaceString()
	if len(s) != geometry.NumFacelets {
		t.Fatalf("FaceString length = %d, want %d", len(s), geometry.NumFacelets)
	}
}

func TestZeroScrambleIsIdentity(t *testing.T) {
	c := NewSolved()
	before := c.FaceString()
	c.Scramble(0, rand.New(rand.NewSource(1)))
	after := c.FaceString()
	if before != after {
		t.Errorf("Scramble(0, ...) changed the cube: %q -> %q", before, after)
	}
}
