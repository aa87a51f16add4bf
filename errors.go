package cubematch

import "errors"

// Sentinel errors for the cubematch package.
var (
	// ErrTableMissing and ErrTableTruncated are initialization errors:
	// the prior table file is absent or the wrong size. Fatal — the
	// matching core cannot run without a valid table.
	ErrTableMissing   = errors.New("cubematch: prior table file not found")
	ErrTableTruncated = errors.New("cubematch: prior table file is the wrong size")

	// ErrScanFailed is a scan error: propagation contradicted the prior
	// so thoroughly that some facelet exhausted all six color
	// candidates, or consumed its retry budget. No partial result is
	// returned; callers should reframe or relight and retry.
	ErrScanFailed = errors.New("cubematch: scan failed")
)
