package cache

import (
	"encoding/hex"
	"slices"

	"github.com/zeebo/blake3"

	"numberplater/internal/plate"
)

// Digest identifies a word list together with the families it was rendered for.
type Digest [32]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// IsZero reports whether d was never computed.
func (d Digest) IsZero() bool { return d == Digest{} }

// KeyFor hashes the word list and family selection. Word order and
// duplicates do not change the key.
func KeyFor(words []plate.Word, families plate.FamilySet) Digest {
	sorted := slices.Clone(words)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	h := blake3.New()
	_, _ = h.Write([]byte{byte(schemaVersion >> 8), byte(schemaVersion), byte(families)})
	for _, w := range sorted {
		_, _ = h.Write([]byte(w))
		_, _ = h.Write([]byte{'\n'})
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
