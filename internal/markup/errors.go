package markup

import "errors"

// Sentinel errors for markup interpretation.
var (
	ErrInterpreterUsed = errors.New("interpreter already ran")
)
