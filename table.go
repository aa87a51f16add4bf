package cubematch

import (
	"errors"
	"fmt"

	"github.com/SeamusWaldron/cubematch/internal/prior"
)

// Table is the loaded color-classifier prior: a dense, read-only lookup
// from every 24-bit BGR value to a six-element score vector over colors
// U,R,F,D,L,B. Once loaded it is immutable and safe for concurrent use by
// any number of Match calls.
type Table struct {
	inner *prior.Table
}

// LoadTable reads a prior table file fully into memory. The file must be
// exactly 16,777,216 * 6 * 2 bytes: one entry per BGR value at index
// ((b*256)+g)*256+r, each entry six little-endian uint16 scores in
// U,R,F,D,L,B order. A missing file is reported as ErrTableMissing and a
// file of any other size as ErrTableTruncated; other I/O errors are
// returned as they come.
func LoadTable(path string) (*Table, error) {
	t, err := prior.Load(path)
	if err != nil {
		switch {
		case errors.Is(err, prior.ErrTableMissing):
			return nil, fmt.Errorf("%w: %v", ErrTableMissing, err)
		case errors.Is(err, prior.ErrTableTruncated):
			return nil, fmt.Errorf("%w: %v", ErrTableTruncated, err)
		default:
			return nil, err
		}
	}
	return &Table{inner: t}, nil
}
