// Package matcher implements the matching driver: the heap-ordered
// control loop that commits the highest-confidence facelet/color
// candidates to the corner and edge piece-group propagators, rolling
// back and retrying on contradiction, until every facelet is assigned or
// the retry budget is exhausted.
package matcher

import (
	"container/heap"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SeamusWaldron/cubematch/internal/geometry"
	"github.com/SeamusWaldron/cubematch/internal/piecegroup"
	"github.com/SeamusWaldron/cubematch/internal/prior"
)

// DefaultAttempts is the default per-facelet retry budget.
const DefaultAttempts = 3

// ErrScanFailed is returned when propagation contradicts the prior so
// thoroughly that some facelet exhausts all six color candidates, or
// consumes its retry budget, before every facelet could be committed.
var ErrScanFailed = errors.New("matcher: scan failed")

// sentinel marks a (facelet, color) candidate as already tried. Scores
// from the table are always non-negative, so -1 cannot collide with a
// real score.
const sentinel int32 = -1

// candidate is one (facelet, color) hypothesis waiting in the frontier,
// ordered by score.
type candidate struct {
	score   int32
	facelet int
	color   int
}

// frontier is a max-heap of candidates. Ties break on facelet then color,
// a fixed total order chosen purely for reproducibility; any
// deterministic tiebreak would do.
type frontier []candidate

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].score != f[j].score {
		return f[i].score > f[j].score
	}
	if f[i].facelet != f[j].facelet {
		return f[i].facelet < f[j].facelet
	}
	return f[i].color < f[j].color
}
func (f frontier) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x any)        { *f = append(*f, x.(candidate)) }
func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}

// Match runs the matching core against one 54-facelet BGR scan. bgrs[f]
// is {B,G,R} for facelet f. nAttempts is the per-facelet retry budget;
// pass DefaultAttempts for the default of 3.
//
// On success, returns a 54-character face string over {U,R,F,D,L,B},
// face-major and row-major. On failure, returns ("", ErrScanFailed).
func Match(table *prior.Table, bgrs [geometry.NumFacelets][3]int, nAttempts int) (string, error) {
	if nAttempts <= 0 {
		nAttempts = DefaultAttempts
	}

	var score [geometry.NumFacelets][6]int32
	var result [geometry.NumFacelets]int
	for f := range result {
		result[f] = -1
	}

	attempts := make([]int, geometry.NumFacelets)
	for f := range attempts {
		attempts[f] = nAttempts
	}

	fr := &frontier{}
	for f := 0; f < geometry.NumFacelets; f++ {
		b, g, r := bgrs[f][0], bgrs[f][1], bgrs[f][2]
		s := table.Score(b, g, r)
		score[f] = s

		if geometry.IsCenter(f) {
			result[f] = int(geometry.CenterColor(f))
			continue
		}

		c := argmax(score[f])
		heap.Push(fr, candidate{score: score[f][c], facelet: f, color: c})
		score[f][c] = sentinel
	}

	corners := piecegroup.NewCorners()
	edges := piecegroup.NewEdges()

	for fr.Len() > 0 {
		cand := heap.Pop(fr).(candidate)
		f, c := cand.facelet, cand.color

		slot, pos := geometry.Slot(f), geometry.Pos(f)
		active, passive := corners, edges
		if geometry.IsEdge(f) {
			active, passive = edges, corners
		}

		activeSnap := active.Snapshot()
		active.AssignColor(slot, pos, c)
		ok := active.Propagate()

		bridged := false
		var passiveSnap piecegroup.State
		if ok && active.Parity() != -1 && passive.Parity() == -1 {
			passiveSnap = passive.Snapshot()
			bridged = true
			passive.AssignParity(active.Parity())
			ok = passive.Propagate()
		}

		if ok {
			result[f] = c
			continue
		}

		active.Restore(activeSnap)
		if bridged {
			passive.Restore(passiveSnap)
		}

		next := argmax(score[f])
		if score[f][next] == sentinel {
			slog.Debug("matcher: facelet exhausted all colors", "facelet", f)
			return "", ErrScanFailed
		}
		heap.Push(fr, candidate{score: score[f][next], facelet: f, color: next})
		score[f][next] = sentinel

		attempts[f]--
		if attempts[f] < 0 {
			slog.Debug("matcher: facelet exhausted retry budget", "facelet", f)
			return "", ErrScanFailed
		}
	}

	return assemble(result)
}

// argmax returns the index of the largest score, breaking ties toward
// the lowest color index (the sentinel value -1 never wins a tie against
// a real, non-negative score).
func argmax(s [6]int32) int {
	best := 0
	for c := 1; c < 6; c++ {
		if s[c] > s[best] {
			best = c
		}
	}
	return best
}

func assemble(result [geometry.NumFacelets]int) (string, error) {
	buf := make([]byte, geometry.NumFacelets)
	for f, c := range result {
		if c < 0 {
			return "", fmt.Errorf("matcher: facelet %d never assigned: %w", f, ErrScanFailed)
		}
		buf[f] = geometry.Color(c).Letter()
	}
	return string(buf), nil
}
