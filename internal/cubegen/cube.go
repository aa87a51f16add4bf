// Package cubegen generates random, but always physically solvable,
// facelet colorings for testing the matching core. It reuses the
// rotation and edge-cycling logic a live cube tracker would use to
// follow move events off a physical device, repurposed here to produce
// scrambled fixtures instead.
package cubegen

import (
	"math/rand"

	"github.com/SeamusWaldron/cubematch/internal/geometry"
)

// face indexes a cube face using the same internal layout as the
// rotation logic below: U,D,F,B,R,L. This differs from the exported
// U,R,F,D,L,B facelet ordering; Colors converts between the two.
type face int

const (
	faceU face = 0
	faceD face = 1
	faceF face = 2
	faceB face = 3
	faceR face = 4
	faceL face = 5
)

// Cube is a minimal 3x3x3 facelet-rotation simulator, solved on
// construction and scrambled by random quarter turns.
type Cube struct {
	facelets [6][9]geometry.Color
}

// internal solved-color-per-face table, in internal face order.
var solvedColor = [6]geometry.Color{
	faceU: geometry.U,
	faceD: geometry.D,
	faceF: geometry.F,
	faceB: geometry.B,
	faceR: geometry.R,
	faceL: geometry.L,
}

// NewSolved returns a cube in the solved state.
func NewSolved() *Cube {
	c := &Cube{}
	for f := face(0); f < 6; f++ {
		for i := 0; i < 9; i++ {
			c.facelets[f][i] = solvedColor[f]
		}
	}
	return c
}

// Scramble applies n random quarter or half turns, each to a uniformly
// chosen face, using rng for both face and turn selection.
func (c *Cube) Scramble(n int, rng *rand.Rand) {
	faces := []face{faceU, faceD, faceF, faceB, faceR, faceL}
	turns := []int{1, -1, 2}
	for i := 0; i < n; i++ {
		f := faces[rng.Intn(len(faces))]
		t := turns[rng.Intn(len(turns))]
		c.move(f, t)
	}
}

// move applies turn quarter turns (1=CW, -1=CCW, 2=180) to face f.
func (c *Cube) move(f face, turn int) {
	switch turn {
	case 1:
		c.rotateCW(f)
		c.cycleEdges(f, 1)
	case -1:
		c.rotateCCW(f)
		c.cycleEdges(f, -1)
	case 2:
		c.move(f, 1)
		c.move(f, 1)
	}
}

func (c *Cube) rotateCW(f face) {
	p := &c.facelets[f]
	t := p[0]
	p[0], p[6], p[8], p[2] = p[6], p[8], p[2], t
	t = p[1]
	p[1], p[3], p[7], p[5] = p[3], p[7], p[5], t
}

func (c *Cube) rotateCCW(f face) {
	p := &c.facelets[f]
	t := p[0]
	p[0], p[2], p[8], p[6] = p[2], p[8], p[6], t
	t = p[1]
	p[1], p[5], p[7], p[3] = p[5], p[7], p[3], t
}

// cycleEdges cycles the four adjacent faces' border stickers around f.
// dir=1 is clockwise (as seen looking at f); dir=-1 reverses it.
func (c *Cube) cycleEdges(f face, dir int) {
	type strip struct {
		face    face
		indices [3]int
	}
	var order []strip
	switch f {
	case faceU:
		order = []strip{
			{faceF, [3]int{0, 1, 2}}, {faceL, [3]int{0, 1, 2}},
			{faceB, [3]int{0, 1, 2}}, {faceR, [3]int{0, 1, 2}},
		}
	case faceD:
		order = []strip{
			{faceF, [3]int{6, 7, 8}}, {faceR, [3]int{6, 7, 8}},
			{faceB, [3]int{6, 7, 8}}, {faceL, [3]int{6, 7, 8}},
		}
	case faceF:
		order = []strip{
			{faceU, [3]int{6, 7, 8}}, {faceR, [3]int{0, 3, 6}},
			{faceD, [3]int{2, 1, 0}}, {faceL, [3]int{8, 5, 2}},
		}
	case faceB:
		order = []strip{
			{faceU, [3]int{2, 1, 0}}, {faceL, [3]int{0, 3, 6}},
			{faceD, [3]int{6, 7, 8}}, {faceR, [3]int{8, 5, 2}},
		}
	case faceR:
		order = []strip{
			{faceU, [3]int{2, 5, 8}}, {faceB, [3]int{6, 3, 0}},
			{faceD, [3]int{2, 5, 8}}, {faceF, [3]int{2, 5, 8}},
		}
	case faceL:
		order = []strip{
			{faceU, [3]int{0, 3, 6}}, {faceF, [3]int{0, 3, 6}},
			{faceD, [3]int{0, 3, 6}}, {faceB, [3]int{8, 5, 2}},
		}
	}

	// Snapshot all four strips' old values before writing any of them.
	var old [4][3]geometry.Color
	for s, st := range order {
		for i, idx := range st.indices {
			old[s][i] = c.facelets[st.face][idx]
		}
	}

	// CW: strip s takes strip (s-1) mod 4's old value. CCW is the inverse
	// shift, strip s takes strip (s+1) mod 4's old value.
	for s, st := range order {
		var src int
		if dir == 1 {
			src = (s + 3) % 4
		} else {
			src = (s + 1) % 4
		}
		for i := range st.indices {
			c.facelets[st.face][st.indices[i]] = old[src][i]
		}
	}
}

// canonical face order for the 54-character layout: U,R,F,D,L,B.
var faceOrder = [6]face{faceU, faceR, faceF, faceD, faceL, faceB}

// Colors returns the 54 facelet colors in the canonical U,R,F,D,L,B,
// row-major layout.
func (c *Cube) Colors() [geometry.NumFacelets]geometry.Color {
	var out [geometry.NumFacelets]geometry.Color
	for i, f := range faceOrder {
		for pos := 0; pos < 9; pos++ {
			out[i*9+pos] = c.facelets[f][pos]
		}
	}
	return out
}

// FaceString renders Colors as a 54-character face string.
func (c *Cube) FaceString() string {
	colors := c.Colors()
	buf := make([]byte, geometry.NumFacelets)
	for i, col := range colors {
		buf[i] = col.Letter()
	}
	return string(buf)
}
