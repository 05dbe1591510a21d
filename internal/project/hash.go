package project

import (
	"crypto/sha256"
)

// Digest is a fixed 256-bit hash used for cache keys.
type Digest [32]byte

// HashBytes digests raw content.
func HashBytes(content []byte) Digest {
	return sha256.Sum256(content)
}

// Combine chains digests: H(first || rest1 || rest2 ...). Callers must pass
// rest in a deterministic order.
func Combine(first Digest, rest ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(first[:])
	for _, d := range rest {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// ConfigDigest folds the effective configuration into a digest so that any
// manifest change invalidates cached per-file results.
func (m *Manifest) ConfigDigest() Digest {
	h := sha256.New()
	mc := m.Config.Migrate
	for _, d := range mc.Decorators {
		_, _ = h.Write([]byte(d))
		_, _ = h.Write([]byte{0})
	}
	_, _ = h.Write([]byte(mc.InjectFn))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(mc.ImportFrom))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(mc.AccessPolicy))
	_, _ = h.Write([]byte{0})
	for _, e := range mc.Exclude {
		_, _ = h.Write([]byte(e))
		_, _ = h.Write([]byte{0})
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
