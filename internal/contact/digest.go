package contact

import (
	"github.com/cespare/xxhash/v2"
	"github.com/nvandessel/ballfall/internal/models"
)

// Digest hashes pairs exactly as they appear in the adjacency file, so two
// runs with the same contact graph log the same value.
func Digest(pairs []models.ContactPair) uint64 {
	h := xxhash.New()
	for _, p := range pairs {
		_, _ = h.WriteString(p.String())
		_, _ = h.WriteString("\n")
	}
	return h.Sum64()
}
