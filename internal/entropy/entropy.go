// Package entropy is the CSPRNG façade the generator draws its initial
// seeds and per-level correction-word nonces from. It wraps crypto/rand
// and turns a short read into an explicit, typed failure instead of the
// silent best-effort behavior crypto/rand.Read already tends to avoid —
// the point is to give the generator a single place to translate "the
// random source ran dry" into the InsufficientEntropy error kind spec'd
// for this module, rather than letting a partial read through unnoticed.
package entropy

import (
	"crypto/rand"
	"fmt"
)

// ErrShortRead is wrapped into the error RandomBytes returns when the
// CSPRNG delivers fewer bytes than requested.
var ErrShortRead = fmt.Errorf("entropy: random source returned fewer bytes than requested")

// RandomBytes returns n cryptographically random bytes, or an error
// wrapping ErrShortRead if fewer than n bytes could be read.
func RandomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	got, err := rand.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("entropy: %w", err)
	}
	if got != n {
		return nil, fmt.Errorf("entropy: read %d of %d requested bytes: %w", got, n, ErrShortRead)
	}
	return buf, nil
}
