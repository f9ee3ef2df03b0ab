package catalog

import (
	"math/rand/v2"

	"github.com/katalogapp/katalog-server/internal/domain"
)

// DefaultBannerSize is how many covers the banner shows when the
// caller does not ask for a specific count.
const DefaultBannerSize = 8

// BannerSampler picks a random selection of cover-bearing records for
// the catalog banner. The random source is injected so the selection
// is reproducible under test; production passes nil and gets the
// auto-seeded generator.
type BannerSampler struct {
	rng *rand.Rand
}

// NewBannerSampler builds a sampler around rng. A nil rng falls back
// to a generator seeded from the process-wide source.
func NewBannerSampler(rng *rand.Rand) *BannerSampler {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &BannerSampler{rng: rng}
}

// Sample returns up to n records that reference a cover image, in
// random order. The dataset itself is never reordered.
func (b *BannerSampler) Sample(ds *domain.Dataset, n int) []*domain.Record {
	if n <= 0 {
		n = DefaultBannerSize
	}

	pool := make([]*domain.Record, 0, len(ds.Records))
	for _, rec := range ds.Records {
		if rec.HasCover() {
			pool = append(pool, rec)
		}
	}

	b.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	if len(pool) > n {
		pool = pool[:n]
	}
	return pool
}
