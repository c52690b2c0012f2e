package yield

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Captured from a reference run of the formula.
var golden = []struct {
	id     string
	seed   int64
	band   Band
	series []float64
}{
	{"creator8", 808, Band{11.95, 31.79}, []float64{20.2, 18.51, 21.67, 19.4, 16, 24.76, 16.47, 19.05, 24.3, 20.56, 22.33, 26.35}},
	{"creator26", 856, Band{9.98, 27.09}, []float64{15.29, 13.76, 15.91, 20.23, 12.13, 19.1, 18.04, 13.68, 24.35, 16.19, 21.18, 16.34}},
	{"creator1", 801, Band{5.59, 27.91}, []float64{16.58, 6.64, 18.42, 15.43, 11.89, 13.91, 17.72, 15.46, 18.73, 16.99, 19.02, 15.43}},
	{"mrbeast", 750, Band{4.83, 23.8}, []float64{11.42, 7.11, 14.47, 9.21, 8.43, 15.95, 11.65, 12, 18.7, 12.64, 18.55, 16.23}},
	{"", 0, Band{7.04, 26.18}, []float64{7.04, 13.09, 13.89, 9.55, 16.69, 16.62, 10.63, 23.22, 14.16, 14.2, 21.4, 14.89}},
	{"🚀rocket", 112965, Band{6.49, 23.43}, []float64{14.36, 19.37, 7.68, 13.14, 13.79, 9.94, 16.33, 16.15, 10.96, 17.82, 14.01, 14.12}},
	{"x", 120, Band{24.9, 42.24}, []float64{30.64, 26.7, 33.47, 32.92, 27.96, 34.78, 30.85, 31.22, 37.26, 31.8, 37.16, 35.03}},
	{"creator 12", 883, Band{11.73, 33.55}, []float64{18.92, 18.51, 19.63, 26.18, 15.8, 21.54, 23.97, 16.83, 23.71, 21.08, 26.32, 21.78}},
}

var creatorIDs = []string{
	"creator1", "creator2", "creator3", "creator5", "creator8", "creator13",
	"creator21", "creator26", "creator34", "mrbeast", "emma-chamberlain",
	"pewdiepie", "lilly", "zz", "a", "🎨artist", "naïve", "日本語",
}

func TestSeed(t *testing.T) {
	for _, tc := range golden {
		assert.Equal(t, tc.seed, Seed(tc.id), tc.id)
	}

	t.Run("surrogate pairs count twice", func(t *testing.T) {
		// U+1F680 encodes as 0xD83D 0xDE80.
		assert.Equal(t, int64(0xD83D+0xDE80), Seed("🚀"))
	})

	t.Run("BMP characters count once", func(t *testing.T) {
		assert.Equal(t, int64(0xE9), Seed("é"))
	})
}

func TestGolden(t *testing.T) {
	for _, tc := range golden {
		t.Run(fmt.Sprintf("%q", tc.id), func(t *testing.T) {
			assert.Equal(t, tc.band, BandFor(tc.id))
			assert.Equal(t, tc.series, DeriveSeries(tc.id, MonthCount))
			assert.Equal(t, tc.series[MonthCount-1], SeriesFor(tc.id).Last())
		})
	}
}

func TestDeterminism(t *testing.T) {
	for _, id := range creatorIDs {
		assert.Equal(t, BandFor(id), BandFor(id))
		assert.Equal(t, SeriesFor(id), SeriesFor(id))
	}
}

func TestBandInvariants(t *testing.T) {
	for seed := int64(0); seed < 20000; seed += 7 {
		band := DeriveBand(seed)
		require.LessOrEqual(t, band.Min, band.Max, "seed %d", seed)
		require.GreaterOrEqual(t, band.Min, 2.23, "seed %d", seed)
		require.LessOrEqual(t, band.Min, 25.0, "seed %d", seed)
		require.LessOrEqual(t, band.Max, 42.24, "seed %d", seed)
	}
}

func TestSeriesInvariants(t *testing.T) {
	for _, id := range creatorIDs {
		band := BandFor(id)
		series := SeriesFor(id)
		require.Len(t, series, MonthCount, id)
		for i, p := range series {
			assert.Equal(t, MonthLabels[i], p.Label)
			assert.GreaterOrEqual(t, p.Value, band.Min, "%s month %d", id, i)
			assert.LessOrEqual(t, p.Value, band.Max, "%s month %d", id, i)
		}
	}
}

func TestTwoDecimalPlaces(t *testing.T) {
	for _, id := range creatorIDs {
		band := BandFor(id)
		values := append([]float64{band.Min, band.Max}, DeriveSeries(id, MonthCount)...)
		for _, v := range values {
			assert.GreaterOrEqual(t, decimal.NewFromFloat(v).Exponent(), int32(-2), "%s: %v", id, v)
		}
	}
}

func TestBandsMostlyDistinct(t *testing.T) {
	seen := make(map[Band]string)
	collisions := 0
	for _, id := range creatorIDs {
		b := BandFor(id)
		if other, ok := seen[b]; ok && Seed(other) != Seed(id) {
			collisions++
		}
		seen[b] = id
	}
	assert.LessOrEqual(t, collisions, 1)
}

func TestDeriveSeriesCount(t *testing.T) {
	assert.Len(t, DeriveSeries("creator8", 0), MonthCount)
	assert.Len(t, DeriveSeries("creator8", -3), MonthCount)

	long := DeriveSeries("creator8", 24)
	require.Len(t, long, 24)
	assert.Equal(t, DeriveSeries("creator8", MonthCount), long[:MonthCount])
}

func TestLabels(t *testing.T) {
	assert.Equal(t, MonthLabels[:], Labels(time.December, MonthCount))
	assert.Equal(t,
		[]string{"Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec", "Jan", "Feb", "Mar"},
		Labels(time.March, MonthCount))
	assert.Equal(t, []string{"Nov", "Dec", "Jan"}, Labels(time.January, 3))
	assert.Equal(t, MonthLabels[:], Labels(0, MonthCount))
}

func TestSeriesEndingAt(t *testing.T) {
	rolled := SeriesEndingAt("creator26", time.June)
	fixed := SeriesFor("creator26")
	require.Len(t, rolled, MonthCount)
	assert.Equal(t, "Jun", rolled[MonthCount-1].Label)
	for i := range rolled {
		assert.Equal(t, fixed[i].Value, rolled[i].Value)
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.01, Round2(1.005))
	assert.Equal(t, 2.35, Round2(2.345))
	assert.Equal(t, -2.35, Round2(-2.345))
	assert.Equal(t, 42.24, Round2(42.24))
}

func TestSnapshotFor(t *testing.T) {
	snap := SnapshotFor("creator26", 0)
	assert.Equal(t, "creator26", snap.CreatorID)
	assert.Equal(t, Band{9.98, 27.09}, snap.Band)
	assert.Equal(t, 16.34, snap.LastYield)
	assert.Equal(t, "Dec", snap.Series[MonthCount-1].Label)

	rolled := SnapshotFor("creator26", time.October)
	assert.Equal(t, "Oct", rolled.Series[MonthCount-1].Label)
	assert.Equal(t, snap.LastYield, rolled.LastYield)
}

func TestConcurrentCallers(t *testing.T) {
	var wg sync.WaitGroup
	results := make([]Series, len(creatorIDs))
	for i, id := range creatorIDs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			results[i] = SeriesFor(id)
		}(i, id)
	}
	wg.Wait()

	for i, id := range creatorIDs {
		assert.Equal(t, SeriesFor(id), results[i])
	}
}
