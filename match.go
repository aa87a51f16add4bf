package cubematch

import (
	"errors"
	"fmt"

	"github.com/SeamusWaldron/cubematch/internal/geometry"
	"github.com/SeamusWaldron/cubematch/internal/matcher"
)

// BGR is one facelet's averaged color sample, each component in [0,256).
type BGR struct {
	B, G, R int
}

// Match runs the color-matching core against one complete 54-facelet
// scan. bgrs must list facelets in the fixed layout: six 3x3 faces in
// order U,R,F,D,L,B, row-major within each face.
//
// On success it returns a 54-character face string over {U,R,F,D,L,B} in
// the same layout, consistent with all cube constraints: each color
// appears exactly nine times, permutation parities agree between corners
// and edges, and orientations sum to zero mod their group's orientation
// count. It is not guaranteed solvable beyond what those constraints
// enforce.
//
// On failure it returns ("", ErrScanFailed); callers should reframe or
// relight and retry rather than trust a partial result.
func Match(table *Table, bgrs [geometry.NumFacelets]BGR, opts ...Option) (string, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	var raw [geometry.NumFacelets][3]int
	for i, s := range bgrs {
		raw[i] = [3]int{s.B, s.G, s.R}
	}

	face, err := matcher.Match(table.inner, raw, cfg.attempts)
	if err != nil {
		if errors.Is(err, matcher.ErrScanFailed) {
			return "", fmt.Errorf("%w", ErrScanFailed)
		}
		return "", err
	}
	return face, nil
}
