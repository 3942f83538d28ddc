package ingestion

import (
	"encoding/hex"

	"github.com/go-crypt/x/blake2b"
)

// contentDigest fingerprints fetched content with a 128-bit BLAKE2b hash.
func contentDigest(content []byte) string {
	h, _ := blake2b.New(16, nil) // 16 bytes = 128 bits
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}
