package catalog

import (
	"context"
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalogapp/katalog-server/internal/domain"
)

func bannerDataset(withCover, without int) *domain.Dataset {
	ds := &domain.Dataset{}
	for i := 0; i < withCover; i++ {
		ds.Records = append(ds.Records, &domain.Record{RawRecord: domain.RawRecord{
			ID: "c" + strconv.Itoa(i), Title: "Mit Cover", CoverLocal: "covers/x.jpg",
		}})
	}
	for i := 0; i < without; i++ {
		ds.Records = append(ds.Records, &domain.Record{RawRecord: domain.RawRecord{
			ID: "n" + strconv.Itoa(i), Title: "Ohne Cover",
		}})
	}
	return ds
}

func seeded(a, b uint64) *rand.Rand {
	return rand.New(rand.NewPCG(a, b))
}

func TestBannerSampler_OnlyCoverRecords(t *testing.T) {
	b := NewBannerSampler(seeded(1, 2))

	recs := b.Sample(bannerDataset(4, 6), 8)
	require.Len(t, recs, 4, "only cover-bearing records qualify")
	for _, rec := range recs {
		assert.True(t, rec.HasCover())
	}
}

func TestBannerSampler_CapsAtRequestedSize(t *testing.T) {
	b := NewBannerSampler(seeded(1, 2))

	assert.Len(t, b.Sample(bannerDataset(10, 0), 3), 3)
	assert.Len(t, b.Sample(bannerDataset(10, 0), 0), DefaultBannerSize)
}

func TestBannerSampler_DeterministicUnderFixedSeed(t *testing.T) {
	ds := bannerDataset(12, 3)

	first := NewBannerSampler(seeded(7, 7)).Sample(ds, 5)
	second := NewBannerSampler(seeded(7, 7)).Sample(ds, 5)

	require.Len(t, first, 5)
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestBanner_ServiceUsesInjectedSampler(t *testing.T) {
	svc := newTestService(t, &staticSource{rows: sampleRows()})
	require.NoError(t, svc.Load(context.Background()))
	svc.SetBannerSampler(NewBannerSampler(seeded(1, 2)))

	recs := svc.Banner(10)
	require.Len(t, recs, 1, "only one sample row carries a cover")
	assert.Equal(t, "1", recs[0].ID)
}
