// Package optionset implements the per-cubie-slot option set: the set of
// (identity, orientation) hypotheses still consistent with everything
// observed and propagated so far, stored as a compacted array plus
// summary bits derived from it.
//
// The active prefix opts[0:rem] always holds exactly the surviving
// options; reductions compact it in place with a write-pointer sweep, the
// same technique internal/solver in this module's constraint-propagation
// sibling uses for candidate-mask pruning, adapted here to array
// compaction instead of bitmask clearing since options carry more than a
// single bit of payload.
package optionset

import "math/bits"

// Colset is a six-bit set of color indices, one bit per color U,R,F,D,L,B.
type Colset uint8

// Has reports whether c is a member of s.
func (s Colset) Has(c int) bool { return s&(1<<uint(c)) != 0 }

// Add returns s with color c added.
func (s Colset) Add(c int) Colset { return s | (1 << uint(c)) }

// Count returns the number of colors in s.
func (s Colset) Count() int { return bits.OnesCount8(uint8(s)) }

// maxPositions is the most sticker positions any cubie in either group
// carries (corners have 3, edges have 2); Option.Pattern is sized to the
// larger so both groups share one flat, fixed-size option type.
const maxPositions = 3

// Option is one (identity, orientation) hypothesis for a cubie slot.
// Pattern and Colset are fixed-size payload, not heap-allocated
// sub-structures, so an Option (and the Set holding a backing array of
// them) copies as flat, self-contained value data.
type Option struct {
	Identity int
	Ori      int
	Pattern  [maxPositions]int // sticker colors at each position; unused tail positions (edges only use 2) are zero and never read
	Colset   Colset            // bit-union of the positions actually in play
}

// Set is the option set for a single cubie slot.
type Set struct {
	opts []Option // full backing array, length n*k
	rem  int      // active prefix length

	Colset   Colset // AND of Colset across opts[0:rem]
	Ori      int    // deduced orientation, -1 if undetermined
	Identity int    // deduced identity, -1 if undetermined
	Err      bool   // set once rem reaches 0
}

// New builds a slot's option set from the full n*k (identity, orientation)
// universe, each with its pattern and colset already computed.
func New(opts []Option) *Set {
	s := &Set{
		opts:     append([]Option(nil), opts...),
		rem:      len(opts),
		Ori:      -1,
		Identity: -1,
	}
	s.recomputeColset()
	return s
}

// Rem returns the number of options still active.
func (s *Set) Rem() int { return s.rem }

// Options returns the active prefix. Callers must not mutate it.
func (s *Set) Options() []Option { return s.opts[:s.rem] }

// HasPosCol keeps only options whose color at sticker position p equals
// col.
func (s *Set) HasPosCol(p, col int) bool {
	return s.filter(func(o Option) bool { return o.Pattern[p] == col })
}

// HasNotCol keeps only options whose colset does not contain col.
func (s *Set) HasNotCol(col int) bool {
	return s.filter(func(o Option) bool { return !o.Colset.Has(col) })
}

// HasOri keeps only options with the given orientation.
func (s *Set) HasOri(o int) bool {
	return s.filter(func(opt Option) bool { return opt.Ori == o })
}

// IsCubie keeps only options with the given identity.
func (s *Set) IsCubie(c int) bool {
	return s.filter(func(o Option) bool { return o.Identity == c })
}

// IsNotCubie keeps only options whose identity differs from c.
func (s *Set) IsNotCubie(c int) bool {
	return s.filter(func(o Option) bool { return o.Identity != c })
}

// filter compacts opts[0:rem] to those satisfying keep, in place. Returns
// true if anything changed. A no-op filter (everything already satisfies
// keep) costs one pass with zero writes.
func (s *Set) filter(keep func(Option) bool) bool {
	if s.Err {
		return false
	}
	w := 0
	changed := false
	for r := 0; r < s.rem; r++ {
		if keep(s.opts[r]) {
			if w != r {
				s.opts[w] = s.opts[r]
			}
			w++
		} else {
			changed = true
		}
	}
	if !changed {
		return false
	}
	s.rem = w
	if s.rem == 0 {
		s.Err = true
		return true
	}
	s.recomputeColset()
	s.deduceOri()
	s.deduceIdentity()
	return true
}

func (s *Set) recomputeColset() {
	var cs Colset
	if s.rem == 0 {
		s.Colset = 0
		return
	}
	cs = s.opts[0].Colset
	for i := 1; i < s.rem; i++ {
		cs &= s.opts[i].Colset
	}
	s.Colset = cs
}

func (s *Set) deduceOri() {
	if s.Ori != -1 {
		return
	}
	o := s.opts[0].Ori
	for i := 1; i < s.rem; i++ {
		if s.opts[i].Ori != o {
			return
		}
	}
	s.Ori = o
}

func (s *Set) deduceIdentity() {
	if s.Identity != -1 {
		return
	}
	c := s.opts[0].Identity
	for i := 1; i < s.rem; i++ {
		if s.opts[i].Identity != c {
			return
		}
	}
	s.Identity = c
}

// Snapshot returns a deep copy suitable for rollback. The backing option
// array is flat (no pointers into shared state beyond the int/Colset
// payload), so this is a cheap bulk copy.
func (s *Set) Snapshot() Set {
	cp := *s
	cp.opts = append([]Option(nil), s.opts...)
	return cp
}

// Restore overwrites s with a previously taken Snapshot.
func (s *Set) Restore(snap Set) {
	*s = snap
	s.opts = append(s.opts[:0], snap.opts...)
}
