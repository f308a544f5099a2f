package akari

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
)

// seedLength is the fixed width of a puzzle fingerprint.
const seedLength = 12

// Fingerprint hashes the grid's canonical wire serialization down to a
// short stable seed: same content, same seed; any cell change, a
// different seed with overwhelming probability. Used downstream as a
// dedup key, it is not a solver seed.
func Fingerprint(g Grid) string {
	payload, err := json.Marshal(g)
	if err != nil {
		// Only an illegal cell value can end up here.
		panic(AssertionError{err.Error()})
	}
	sum := md5.Sum(payload)
	return hex.EncodeToString(sum[:])[:seedLength]
}
