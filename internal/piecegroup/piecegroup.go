// Package piecegroup implements the constraint-propagation solver for one
// group of cubies (the eight corners, or the twelve edges). Each group
// tracks, per slot, the surviving (identity, orientation) options and
// folds in the cube-wide constraints that apply within the group: every
// identity appears exactly once, every color is used exactly four times,
// orientations sum to zero modulo the group's orientation count, and the
// permutation parity agrees with the sibling group's.
package piecegroup

import (
	"github.com/SeamusWaldron/cubematch/internal/geometry"
	"github.com/SeamusWaldron/cubematch/internal/optionset"
)

// NumColors is the size of the color alphabet.
const NumColors = 6

// Group is the propagation state for one cubie group (corners or edges).
//
// It is deliberately flat: fixed-size slices sized at construction, no
// pointers into other groups, no dynamically-growing structures besides
// the option sets themselves (which are bounded at n*k). This keeps
// Snapshot/Restore a handful of small, predictable copies instead of a
// deep object graph walk.
type Group struct {
	n, k int

	slots     []*optionset.Set
	oldColset []optionset.Colset

	colcounts [NumColors]int
	perm      []int // assigned identity per slot, -1 = undetermined
	oris      []int // assigned orientation per slot, -1 = undetermined
	orisum    int
	aperm     int
	aoris     int
	invcnt    int
	par       int // -1, 0, or 1

	errFlag bool
}

// NewCorners builds a fresh corner group (n=8, k=3).
func NewCorners() *Group {
	colors := make([][]geometry.Color, geometry.NumCorners)
	for i, c := range geometry.CornerColors {
		colors[i] = []geometry.Color{c[0], c[1], c[2]}
	}
	return newGroup(geometry.NumCorners, geometry.CornerOrientations, colors)
}

// NewEdges builds a fresh edge group (n=12, k=2).
func NewEdges() *Group {
	colors := make([][]geometry.Color, geometry.NumEdges)
	for i, p := range geometry.EdgeColors {
		colors[i] = []geometry.Color{p[0], p[1]}
	}
	return newGroup(geometry.NumEdges, geometry.EdgeOrientations, colors)
}

func newGroup(n, k int, canonical [][]geometry.Color) *Group {
	g := &Group{
		n:         n,
		k:         k,
		slots:     make([]*optionset.Set, n),
		oldColset: make([]optionset.Colset, n),
		perm:      make([]int, n),
		oris:      make([]int, n),
		par:       -1,
	}
	for i := range g.perm {
		g.perm[i] = -1
		g.oris[i] = -1
	}
	for c := 0; c < NumColors; c++ {
		g.colcounts[c] = 4
	}

	patternFor := func(identity int) []geometry.Color { return canonical[identity] }

	for slot := 0; slot < n; slot++ {
		opts := make([]optionset.Option, 0, n*k)
		for identity := 0; identity < n; identity++ {
			base := patternFor(identity)
			for o := 0; o < k; o++ {
				var pat [3]int
				var cs optionset.Colset
				for p := 0; p < len(base); p++ {
					c := int(base[(p+o)%len(base)])
					pat[p] = c
					cs = cs.Add(c)
				}
				opts = append(opts, optionset.Option{
					Identity: identity,
					Ori:      o,
					Pattern:  pat,
					Colset:   cs,
				})
			}
		}
		g.slots[slot] = optionset.New(opts)
		g.oldColset[slot] = g.slots[slot].Colset
	}
	return g
}

// N and K expose the group's size and orientation count.
func (g *Group) N() int { return g.n }
func (g *Group) K() int { return g.k }

// Identity returns the deduced identity for slot i, or -1.
func (g *Group) Identity(i int) int { return g.perm[i] }

// Orientation returns the deduced orientation for slot i, or -1.
func (g *Group) Orientation(i int) int { return g.oris[i] }

// Parity returns the group's permutation parity, or -1 if undetermined.
func (g *Group) Parity() int { return g.par }

// Err reports whether the group has hit a contradiction.
func (g *Group) Err() bool { return g.errFlag }

// AssignColor funnels an observation into slot's option set: the sticker
// at position pos of the cubie occupying slot must be color col. Does not
// itself propagate; call Propagate afterward.
func (g *Group) AssignColor(slot, pos, col int) {
	g.slots[slot].HasPosCol(pos, col)
}

// AssignParity injects a permutation parity deduced by the sibling group
// (corners and edges of a solvable cube always share parity).
func (g *Group) AssignParity(p int) {
	g.par = p
}

// Propagate runs the fixed-point constraint closure. Returns false if a
// slot's option set has been driven to empty.
func (g *Group) Propagate() bool {
	for {
		changed := false
		for i := 0; i < g.n; i++ {
			s := g.slots[i]
			if s.Err {
				g.errFlag = true
				return false
			}

			newColset := s.Colset
			diff := newColset ^ g.oldColset[i]
			if diff != 0 {
				changed = true
				for c := 0; c < NumColors; c++ {
					if diff.Has(c) {
						g.colcounts[c]--
						if g.colcounts[c] == 0 {
							g.exhaustColor(c)
						}
					}
				}
				g.oldColset[i] = newColset
			}

			if g.oris[i] == -1 && s.Ori != -1 {
				g.oris[i] = s.Ori
				g.orisum += s.Ori
				g.aoris++
				changed = true
			}

			if g.perm[i] == -1 && s.Identity != -1 {
				g.commitIdentity(i, s.Identity)
				changed = true
			}
		}

		if g.errFlag {
			return false
		}

		if g.applyLastOrientation() {
			changed = true
		}
		if g.applyLastTwoPieces() {
			changed = true
		}

		if !changed {
			return true
		}
	}
}

// exhaustColor prunes color c from every slot's remaining options once
// its group-wide quota reaches zero. Slots already certainly carrying c
// are skipped: the quota being zero means no *other* slot may offer c,
// not that the slots that used it up become invalid themselves.
func (g *Group) exhaustColor(c int) {
	for i := 0; i < g.n; i++ {
		if g.slots[i].Colset.Has(c) {
			continue
		}
		if g.slots[i].HasNotCol(c) {
			if g.slots[i].Err {
				g.errFlag = true
			}
		}
	}
}

// commitIdentity records slot i's deduced identity, updates the inversion
// count against already-assigned neighbors, and broadcasts the exclusion
// to every other slot in the group.
func (g *Group) commitIdentity(i, identity int) {
	g.perm[i] = identity
	g.invcnt += g.countInversions(i, identity, g.perm)
	g.aperm++

	for j := 0; j < g.n; j++ {
		if j == i {
			continue
		}
		if g.slots[j].IsNotCubie(identity) {
			if g.slots[j].Err {
				g.errFlag = true
			}
		}
	}

	if g.aperm == g.n {
		g.par = g.invcnt & 1
	}
}

// countInversions counts, against the already-assigned entries of perm
// (excluding slot i itself), how many would invert with identity placed
// at slot i: earlier slots with a greater identity, later slots with a
// lesser identity.
func (g *Group) countInversions(i, identity int, perm []int) int {
	count := 0
	for j, v := range perm {
		if j == i || v == -1 {
			continue
		}
		if j < i && v > identity {
			count++
		}
		if j > i && v < identity {
			count++
		}
	}
	return count
}

// applyLastOrientation implements the "last orientation by parity"
// closure rule: if exactly n-1 orientations are fixed, the last is forced
// by the requirement that orientations sum to zero mod k.
func (g *Group) applyLastOrientation() bool {
	if g.aoris != g.n-1 {
		return false
	}
	missing := -1
	for i := 0; i < g.n; i++ {
		if g.oris[i] == -1 {
			missing = i
			break
		}
	}
	if missing == -1 {
		return false
	}
	last := ((g.k - g.orisum%g.k) % g.k)
	if g.slots[missing].HasOri(last) {
		if g.slots[missing].Err {
			g.errFlag = true
		}
		return true
	}
	return false
}

// applyLastTwoPieces implements the "last two pieces by parity" closure
// rule: if the group's parity is known and exactly n-2 identities are
// fixed, the two missing identities must fill the two missing slots in
// the one order consistent with that parity.
func (g *Group) applyLastTwoPieces() bool {
	if g.par == -1 || g.aperm != g.n-2 {
		return false
	}

	var missingSlots, missingIdentities []int
	used := make([]bool, g.n)
	for i := 0; i < g.n; i++ {
		if g.perm[i] == -1 {
			missingSlots = append(missingSlots, i)
		} else {
			used[g.perm[i]] = true
		}
	}
	for c := 0; c < g.n; c++ {
		if !used[c] {
			missingIdentities = append(missingIdentities, c)
		}
	}
	if len(missingSlots) != 2 || len(missingIdentities) != 2 {
		return false
	}

	i1, i2 := missingSlots[0], missingSlots[1]
	c1, c2 := missingIdentities[0], missingIdentities[1]

	permCopy := append([]int(nil), g.perm...)
	addA := g.countInversions(i1, c1, permCopy)
	permCopy[i1] = c1
	addA += g.countInversions(i2, c2, permCopy)

	changed := false
	if (g.invcnt+addA)&1 == g.par {
		if g.slots[i1].IsCubie(c1) {
			changed = true
		}
		if g.slots[i2].IsCubie(c2) {
			changed = true
		}
	} else {
		if g.slots[i1].IsCubie(c2) {
			changed = true
		}
		if g.slots[i2].IsCubie(c1) {
			changed = true
		}
	}
	if changed && (g.slots[i1].Err || g.slots[i2].Err) {
		g.errFlag = true
	}
	return changed
}

// State is a flat, self-contained snapshot of a Group, used for
// speculative-assignment rollback. It holds no references back into the
// Group it was taken from.
type State struct {
	slots     []optionset.Set
	oldColset []optionset.Colset
	colcounts [NumColors]int
	perm      []int
	oris      []int
	orisum    int
	aperm     int
	aoris     int
	invcnt    int
	par       int
	errFlag   bool
}

// Snapshot captures g's current state for later Restore.
func (g *Group) Snapshot() State {
	st := State{
		slots:     make([]optionset.Set, g.n),
		oldColset: append([]optionset.Colset(nil), g.oldColset...),
		colcounts: g.colcounts,
		perm:      append([]int(nil), g.perm...),
		oris:      append([]int(nil), g.oris...),
		orisum:    g.orisum,
		aperm:     g.aperm,
		aoris:     g.aoris,
		invcnt:    g.invcnt,
		par:       g.par,
		errFlag:   g.errFlag,
	}
	for i, s := range g.slots {
		st.slots[i] = s.Snapshot()
	}
	return st
}

// Restore overwrites g's mutable state with a previously taken Snapshot.
func (g *Group) Restore(st State) {
	for i := range g.slots {
		g.slots[i].Restore(st.slots[i])
	}
	copy(g.oldColset, st.oldColset)
	g.colcounts = st.colcounts
	copy(g.perm, st.perm)
	copy(g.oris, st.oris)
	g.orisum = st.orisum
	g.aperm = st.aperm
	g.aoris = st.aoris
	g.invcnt = st.invcnt
	g.par = st.par
	g.errFlag = st.errFlag
}
