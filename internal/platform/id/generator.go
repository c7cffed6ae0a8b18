package id

import (
	"crypto/rand"
	"encoding/hex"
)

// NewRequestID is a best-effort short id for request correlation; on
// entropy failure it degrades to a fixed marker rather than erroring a
// request path.
func NewRequestID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "req-unknown"
	}
	return hex.EncodeToString(buf)
}
