// Package geometry holds the fixed facelet/cubie geometry tables for a
// 3x3x3 cube. Nothing here depends on an observed coloring: every table is
// a constant derived from the cube's physical structure.
package geometry

// Color indexes the six face colors in the canonical U,R,F,D,L,B order.
type Color int

const (
	U Color = 0
	R Color = 1
	F Color = 2
	D Color = 3
	L Color = 4
	B Color = 5
)

// Letter returns the single-character face-string symbol for c.
func (c Color) Letter() byte {
	return "URFDLB"[c]
}

// NumFacelets is the number of stickers on a 3x3x3 cube.
const NumFacelets = 54

// NumCorners and NumEdges are the cubie-group sizes.
const (
	NumCorners = 8
	NumEdges   = 12
)

// CornerOrientations and EdgeOrientations are the per-group orientation
// domains: corners twist mod 3, edges flip mod 2.
const (
	CornerOrientations = 3
	EdgeOrientations   = 2
)

// Canonical corner slot order: URF, UFL, ULB, UBR, DFR, DLF, DBL, DRB.
const (
	URF = 0
	UFL = 1
	ULB = 2
	UBR = 3
	DFR = 4
	DLF = 5
	DBL = 6
	DRB = 7
)

// Canonical edge slot order: UR, UF, UL, UB, DR, DF, DL, DB, FR, FL, BL, BR.
const (
	UR = 0
	UF = 1
	UL = 2
	UB = 3
	DR = 4
	DF = 5
	DL = 6
	DB = 7
	FR = 8
	FL = 9
	BL = 10
	BR = 11
)

// CornerColors gives, for each corner slot in canonical order, the three
// sticker colors of that corner identity at orientation 0, listed in
// rotation order.
var CornerColors = [NumCorners][3]Color{
	URF: {U, R, F},
	UFL: {U, F, L},
	ULB: {U, L, B},
	UBR: {U, B, R},
	DFR: {D, F, R},
	DLF: {D, L, F},
	DBL: {D, B, L},
	DRB: {D, R, B},
}

// EdgeColors gives, for each edge slot in canonical order, the two sticker
// colors of that edge identity at orientation 0.
var EdgeColors = [NumEdges][2]Color{
	UR: {U, R},
	UF: {U, F},
	UL: {U, L},
	UB: {U, B},
	DR: {D, R},
	DF: {D, F},
	DL: {D, L},
	DB: {D, B},
	FR: {F, R},
	FL: {F, L},
	BL: {B, L},
	BR: {B, R},
}

// facelets are indexed f in [0,54), six 3x3 faces in order U,R,F,D,L,B,
// row-major within a face. Center facelets (f%9==4) carry no slot.
//
// slotOf/posOf mirror the facelet-to-cubie map of the original
// color-matching prototype this engine replaces: a facelet's cubie slot
// and its position within that cubie's sticker list are purely geometric,
// independent of which piece currently occupies the slot.
var slotOf = [NumFacelets]int{
	ULB, UB, UBR, UL, -1, UR, UFL, UF, URF,
	URF, UR, UBR, FR, -1, BR, DFR, DR, DRB,
	UFL, UF, URF, FL, -1, FR, DLF, DF, DFR,
	DLF, DF, DFR, DL, -1, DR, DBL, DB, DRB,
	ULB, UL, UFL, BL, -1, FL, DBL, DL, DLF,
	UBR, UB, ULB, BR, -1, BL, DRB, DB, DBL,
}

var posOf = [NumFacelets]int{
	0, 0, 0, 0, -1, 0, 0, 0, 0,
	1, 1, 2, 1, -1, 1, 2, 1, 1,
	1, 1, 2, 0, -1, 0, 2, 1, 1,
	0, 0, 0, 0, -1, 0, 0, 0, 0,
	1, 1, 2, 1, -1, 1, 2, 1, 1,
	1, 1, 2, 0, -1, 0, 2, 1, 1,
}

// IsCenter reports whether facelet f is one of the nine face centers.
func IsCenter(f int) bool { return f%9 == 4 }

// IsEdge reports whether facelet f sits on an edge cubie. Corner facelets
// are the remaining non-center facelets.
func IsEdge(f int) bool { return (f%9)%2 == 1 }

// CenterColor returns the fixed color of center facelet f.
func CenterColor(f int) Color { return Color(f / 9) }

// Slot returns the cubie slot (within its group) that facelet f occupies.
// Undefined for center facelets.
func Slot(f int) int { return slotOf[f] }

// Pos returns the position within the cubie's sticker list that facelet f
// occupies. Undefined for center facelets.
func Pos(f int) int { return posOf[f] }

// Rotate returns color at rotation offset o of a canonical n-color sticker
// pattern: pattern[(p+o)%n].
func Rotate(pattern []Color, o, p int) Color {
	n := len(pattern)
	return pattern[(p+o)%n]
}
