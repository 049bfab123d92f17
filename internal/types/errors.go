package types

import "errors"

// Error kinds surfaced at the data boundary. Wrap with fmt.Errorf("...: %w", Err...)
// so callers can branch with errors.Is.
var (
	// ErrConfiguration covers malformed or structurally invalid input:
	// missing keys, bad enum values, negative counts, empty players or rounds.
	ErrConfiguration = errors.New("configuration error")

	// ErrDataConsistency covers inputs that are well-formed but mutually
	// inconsistent, e.g. a position update naming an unknown player.
	ErrDataConsistency = errors.New("data consistency error")
)
