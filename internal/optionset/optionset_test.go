package optionset

import "testing"

func universe() []Option {
	// Three fake identities, two orientations each, over positions {0,1}.
	// identity i, orientation o: pattern [i, (i+o)%3]
	var opts []Option
	for id := 0; id < 3; id++ {
		for o := 0; o < 2; o++ {
			p0 := id
			p1 := (id + o) % 3
			var cs Colset
			cs = cs.Add(p0).Add(p1)
			opts = append(opts, Option{Identity: id, Ori: o, Pattern: [3]int{p0, p1}, Colset: cs})
		}
	}
	return opts
}

func TestNewStartsUndetermined(t *testing.T) {
	s := New(universe())
	if s.Rem() != 6 {
		t.Fatalf("Rem() = %d, want 6", s.Rem())
	}
	if s.Identity != -1 || s.Ori != -1 {
		t.Fatalf("New set should be undetermined, got identity=%d ori=%d", s.Identity, s.Ori)
	}
	if s.Err {
		t.Fatal("fresh set should not be in error")
	}
}

func TestHasPosColNarrowsToIdentity(t *testing.T) {
	s := New(universe())
	if !s.HasPosCol(0, 1) {
		t.Fatal("expected HasPosCol to change the set")
	}
	if s.Identity != 1 {
		t.Fatalf("Identity = %d, want 1", s.Identity)
	}
	if s.Rem() != 2 {
		t.Fatalf("Rem() = %d, want 2", s.Rem())
	}
}

func TestHasOriNarrowsToOrientation(t *testing.T) {
	s := New(universe())
	if !s.HasOri(0) {
		t.Fatal("expected HasOri to change the set")
	}
	if s.Ori != 0 {
		t.Fatalf("Ori = %d, want 0", s.Ori)
	}
	if s.Rem() != 3 {
		t.Fatalf("Rem() = %d, want 3", s.Rem())
	}
}

func TestIsNotCubieExcludesIdentity(t *testing.T) {
	s := New(universe())
	if !s.IsNotCubie(0) {
		t.Fatal("expected IsNotCubie to change the set")
	}
	if s.Rem() != 4 {
		t.Fatalf("Rem() = %d, want 4", s.Rem())
	}
	for _, o := range s.Options() {
		if o.Identity == 0 {
			t.Fatalf("identity 0 should have been excluded, found in %+v", o)
		}
	}
}

func TestFilterToEmptySetsErr(t *testing.T) {
	s := New(universe())
	s.HasPosCol(0, 0) // narrows to identity 0
	if s.Err {
		t.Fatal("should not be in error yet")
	}
	if !s.IsNotCubie(0) {
		t.Fatal("expected change")
	}
	if !s.Err {
		t.Fatal("expected Err after excluding the only remaining identity")
	}
	if s.Rem() != 0 {
		t.Fatalf("Rem() = %d, want 0", s.Rem())
	}
}

func TestFilterNoOpReturnsFalse(t *testing.T) {
	s := New(universe())
	s.HasPosCol(0, 1) // narrows to identity 1, 2 options remain

	// Re-applying an already-satisfied filter is a no-op.
	changed := s.HasPosCol(0, 1)
	if changed {
		t.Fatal("expected idempotent no-op filter to report no change")
	}
}

func TestSnapshotRestoreRoundTrips(t *testing.T) {
	s := New(universe())
	snap := s.Snapshot()

	s.HasPosCol(0, 1)
	if s.Rem() != 2 {
		t.Fatalf("Rem() after narrowing = %d, want 2", s.Rem())
	}

	s.Restore(snap)
	if s.Rem() != 6 {
		t.Fatalf("Rem() after restore = %d, want 6", s.Rem())
	}
	if s.Identity != -1 {
		t.Fatalf("Identity after restore = %d, want -1", s.Identity)
	}

	// Mutating s after restore must not perturb the snapshot's backing array.
	s.HasPosCol(0, 2)
	if snap.Rem() != 6 {
		t.Fatalf("snapshot mutated by later filtering: Rem() = %d", snap.Rem())
	}
}

func TestColsetBasics(t *testing.T) {
	var cs Colset
	if cs.Count() != 0 {
		t.Fatalf("empty Colset.Count() = %d, want 0", cs.Count())
	}
	cs = cs.Add(0).Add(3).Add(3)
	if cs.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", cs.Count())
	}
	if !cs.Has(0) || !cs.Has(3) || cs.Has(1) {
		t.Fatalf("Has() disagrees with Add(): %v", cs)
	}
}
