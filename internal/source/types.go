package source

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// Snapshot fingerprints the exact bytes of a Buffer.
// Buffers with identical content share a Snapshot.
type Snapshot uint64

func (s Snapshot) String() string {
	return fmt.Sprintf("%016x", uint64(s))
}

// Fingerprint computes the Snapshot of content (first 8 bytes of SHA-256).
func Fingerprint(content string) Snapshot {
	sum := sha256.Sum256([]byte(content))
	return Snapshot(binary.BigEndian.Uint64(sum[:8]))
}

// LineCol represents a human-readable position in a buffer.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}

func (lc LineCol) String() string {
	return fmt.Sprintf("%d:%d", lc.Line, lc.Col)
}
