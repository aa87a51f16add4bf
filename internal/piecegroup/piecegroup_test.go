package piecegroup

import (
	"testing"

	"github.com/SeamusWaldron/cubematch/internal/geometry"
)

// solvedCorners assigns every corner slot its identity colors at
// orientation 0, matching a solved cube.
func solvedCorners(t *testing.T) *Group {
	t.Helper()
	g := NewCorners()
	for slot := 0; slot < geometry.NumCorners; slot++ {
		colors := geometry.CornerColors[slot]
		for pos, c := range colors {
			g.AssignColor(slot, pos, int(c))
		}
	}
	if !g.Propagate() {
		t.Fatal("propagate failed on a fully-specified solved corner group")
	}
	return g
}

func TestPropagateSolvesFullySpecifiedCorners(t *testing.T) {
	g := solvedCorners(t)
	for slot := 0; slot < geometry.NumCorners; slot++ {
		if g.Identity(slot) != slot {
			t.Errorf("slot %d: Identity() = %d, want %d", slot, g.Identity(slot), slot)
		}
		if g.Orientation(slot) != 0 {
			t.Errorf("slot %d: Orientation() = %d, want 0", slot, g.Orientation(slot))
		}
	}
	if g.Parity() != 0 {
		t.Errorf("Parity() = %d, want 0 (identity permutation is even)", g.Parity())
	}
	if g.Err() {
		t.Error("solved group should not be in error")
	}
}

func TestPropagateSolvesFullySpecifiedEdges(t *testing.T) {
	g := NewEdges()
	for slot := 0; slot < geometry.NumEdges; slot++ {
		colors := geometry.EdgeColors[slot]
		for pos, c := range colors {
			g.AssignColor(slot, pos, int(c))
		}
	}
	if !g.Propagate() {
		t.Fatal("propagate failed on a fully-specified solved edge group")
	}
	for slot := 0; slot < geometry.NumEdges; slot++ {
		if g.Identity(slot) != slot {
			t.Errorf("slot %d: Identity() = %d, want %d", slot, g.Identity(slot), slot)
		}
	}
	if g.Parity() != 0 {
		t.Errorf("Parity() = %d, want 0", g.Parity())
	}
}

func TestLastOrientationClosure(t *testing.T) {
	g := NewCorners()
	// Fully specify every corner except DRB. Its identity follows by
	// elimination, but all three of its orientations share one colset, so
	// only the orientation-sum rule can fix it.
	for slot := 0; slot < geometry.DRB; slot++ {
		colors := geometry.CornerColors[slot]
		for pos, c := range colors {
			g.AssignColor(slot, pos, int(c))
		}
	}
	if !g.Propagate() {
		t.Fatal("propagate failed with seven solved corners")
	}
	if g.Orientation(geometry.DRB) != 0 {
		t.Fatalf("expected DRB orientation forced to 0, got %d", g.Orientation(geometry.DRB))
	}
}

func TestLastTwoPiecesClosure(t *testing.T) {
	g := NewCorners()
	// Fully specify every corner except URF and UFL, whose identities are
	// left as a swap (odd permutation) so parity must resolve them.
	for slot := 2; slot < geometry.NumCorners; slot++ {
		colors := geometry.CornerColors[slot]
		for pos, c := range colors {
			g.AssignColor(slot, pos, int(c))
		}
	}
	if !g.Propagate() {
		t.Fatal("partial propagate should not fail")
	}
	if g.Identity(geometry.URF) != -1 || g.Identity(geometry.UFL) != -1 {
		t.Fatal("expected URF/UFL to remain undetermined before parity is known")
	}

	// Inject odd parity from the sibling group: with 6 identities already
	// placed in their canonical (even) slots, an odd parity forces URF and
	// UFL to swap identities relative to the solved assignment.
	g.AssignParity(1)
	if !g.Propagate() {
		t.Fatal("propagate after AssignParity should not fail")
	}
	if g.Identity(geometry.URF) != geometry.UFL || g.Identity(geometry.UFL) != geometry.URF {
		t.Fatalf("expected swapped identities, got URF=%d UFL=%d", g.Identity(geometry.URF), g.Identity(geometry.UFL))
	}
}

func TestContradictionSetsErr(t *testing.T) {
	g := NewCorners()
	// No corner identity repeats a color across its three stickers, so
	// requiring the same color at two different positions of one slot is
	// unsatisfiable by every (identity, orientation) option.
	g.AssignColor(geometry.URF, 0, int(geometry.U))
	g.AssignColor(geometry.URF, 1, int(geometry.U))
	if g.Propagate() {
		t.Fatal("expected propagate to fail on an unsatisfiable slot")
	}
	if !g.Err() {
		t.Fatal("expected Err() after an unsatisfiable assignment")
	}
}

func TestSnapshotRestoreRoundTrips(t *testing.T) {
	g := NewCorners()
	snap := g.Snapshot()

	g.AssignColor(geometry.URF, 0, int(geometry.U))
	g.AssignColor(geometry.URF, 1, int(geometry.R))
	g.AssignColor(geometry.URF, 2, int(geometry.F))
	if !g.Propagate() {
		t.Fatal("propagate should succeed")
	}
	if g.Identity(geometry.URF) != geometry.URF {
		t.Fatal("expected URF slot resolved after assignment")
	}

	g.Restore(snap)
	if g.Identity(geometry.URF) != -1 {
		t.Fatalf("Identity() after restore = %d, want -1", g.Identity(geometry.URF))
	}
	if g.Err() {
		t.Fatal("restored group should not be in error")
	}
}
