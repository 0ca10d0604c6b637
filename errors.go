package dpf

import "errors"

// Sentinel error kinds surfaced at the Gen/GenZ/FullDomainEval/
// FullDomainEvalZ operation boundary. Callers distinguish kinds with
// errors.Is, never by matching error strings or doing a type assertion.
// Argument, entropy and size failures each wrap exactly one of these with
// fmt.Errorf's %w; failures reported by the PRF façade, the digit helper or
// the output extender are wrapped as they come and carry none of them.
var (
	// ErrInvalidArgument is returned when parameters violate a domain
	// precondition: alpha >= B^n, n == 0, B < 2, m == 0, a PRF key count
	// that doesn't match B, a key buffer of the wrong length, or an
	// out-of-range key accessor index.
	ErrInvalidArgument = errors.New("dpf: invalid argument")

	// ErrInsufficientEntropy is returned when the random source used by
	// Gen/GenZ fails to deliver the requested number of bytes.
	ErrInsufficientEntropy = errors.New("dpf: insufficient entropy")

	// ErrIntegerOverflow is returned when B^n or B^n*m would not fit the
	// platform's address space.
	ErrIntegerOverflow = errors.New("dpf: integer overflow")
)
