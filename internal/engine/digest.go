package engine

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// DigestDomain is the domain-separation prefix for source content digests.
// Version suffix enables future algorithm migration.
const DigestDomain = "fullscan/source/v1"

// newContentDigest creates a streaming BLAKE3 hasher seeded with the
// domain prefix. Format: BLAKE3(domain + 0x00 + raw...). The null byte
// separator prevents domain/data boundary ambiguity.
func newContentDigest() *blake3.Hasher {
	h := blake3.New()
	h.Write([]byte(DigestDomain))
	h.Write([]byte{0x00})
	return h
}

// Digest returns the hex-encoded BLAKE3 digest of all raw text ingested
// into the source so far, domain-separated under DigestDomain.
//
// Unlike Dump, this is a real content digest: two sources hold identical
// raw content iff their digests match. Empty string for unknown sources.
//
// Reading the digest does not disturb the stream; later ingests keep
// extending it.
func (e *Engine) Digest(sourceKey string) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	src, ok := e.sources[sourceKey]
	if !ok {
		return ""
	}
	return hex.EncodeToString(src.digest.Sum(nil))
}
