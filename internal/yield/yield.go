// internal/yield/yield.go
package yield

import (
	"math"
	"time"
	"unicode/utf16"

	"github.com/shopspring/decimal"
)

const (
	// MonthCount is the length of a yield series.
	MonthCount = 12

	bandFloor   = 2.23
	bandCeiling = 42.24
	minCeiling  = 25.0

	lcgModulus = 2147483647
	bandMod    = 233280
	monthStep  = 7919
)

// MonthLabels is the fixed label table, oldest first.
var MonthLabels = [MonthCount]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// Band is the min/max yield percentage range of a creator.
type Band struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Point is one month of a yield series.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Series holds MonthCount points, index 0 is the oldest month.
type Series []Point

// Last returns the last distributed yield, or 0 for an empty series.
func (s Series) Last() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].Value
}

// Seed sums the UTF-16 code units of identifier. Characters outside the BMP
// contribute both halves of their surrogate pair.
func Seed(identifier string) int64 {
	var sum int64
	for _, unit := range utf16.Encode([]rune(identifier)) {
		sum += int64(unit)
	}
	return sum
}

// DeriveBand computes the band for a seed. The arithmetic stays in float64 and
// uses math.Mod so results match the reference numbers bit for bit.
func DeriveBand(seed int64) Band {
	s := float64(seed)
	r1 := math.Mod(s*9301+49297, bandMod) / bandMod
	r2 := math.Mod((s*monthStep+12345)*16807, bandMod) / bandMod

	lo := bandFloor + r1*(minCeiling-bandFloor)
	spread := math.Min(bandCeiling-lo, 15+r2*10)
	hi := math.Min(bandCeiling, lo+spread)

	return Band{Min: Round2(lo), Max: Round2(hi)}
}

// BandFor returns the band of identifier.
func BandFor(identifier string) Band {
	return DeriveBand(Seed(identifier))
}

// DeriveSeries returns monthCount values for identifier, oldest first.
// A non-positive monthCount falls back to MonthCount.
func DeriveSeries(identifier string, monthCount int) []float64 {
	if monthCount <= 0 {
		monthCount = MonthCount
	}
	seed := Seed(identifier)
	band := DeriveBand(seed)
	width := band.Max - band.Min

	values := make([]float64, monthCount)
	for i := range values {
		base := float64(seed + int64(i)*monthStep)

		s1 := math.Mod(base*16807, lcgModulus)
		s2 := math.Mod(s1*48271, lcgModulus)
		s3 := math.Mod(s2*69621, lcgModulus)

		combined := 0.4*(s1/lcgModulus) + 0.35*(s2/lcgModulus) + 0.25*(s3/lcgModulus)
		variance := math.Sin(base*0.01) * 0.15
		// math.Mod keeps the sign of the dividend, Abs folds negatives back.
		final := math.Abs(math.Mod(combined+variance, 1))

		values[i] = Round2(band.Min + final*width)
	}
	return values
}

// SeriesFor returns the 12-month series of identifier labelled with MonthLabels.
func SeriesFor(identifier string) Series {
	return attach(DeriveSeries(identifier, MonthCount), MonthLabels[:])
}

// SeriesEndingAt labels the series with the rolling window that ends at end.
func SeriesEndingAt(identifier string, end time.Month) Series {
	return attach(DeriveSeries(identifier, MonthCount), Labels(end, MonthCount))
}

// Labels returns n month abbreviations ending at end, oldest first.
func Labels(end time.Month, n int) []string {
	if end < time.January || end > time.December {
		end = time.December
	}
	labels := make([]string, n)
	for i := 0; i < n; i++ {
		offset := int(end) - n + i
		idx := ((offset % MonthCount) + MonthCount) % MonthCount
		labels[i] = MonthLabels[idx]
	}
	return labels
}

// Round2 rounds v to 2 decimals, ties away from zero.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func attach(values []float64, labels []string) Series {
	series := make(Series, len(values))
	for i, v := range values {
		series[i] = Point{Label: labels[i], Value: v}
	}
	return series
}
