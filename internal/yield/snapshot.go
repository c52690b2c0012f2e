package yield

import "time"

// Snapshot bundles everything the display layer shows for one creator.
type Snapshot struct {
	CreatorID string  `json:"creator_id"`
	Band      Band    `json:"band"`
	Series    Series  `json:"series"`
	LastYield float64 `json:"last_yield"`
}

// SnapshotFor builds the snapshot of identifier. A zero end month keeps the
// fixed Jan..Dec labels.
func SnapshotFor(identifier string, end time.Month) Snapshot {
	series := SeriesFor(identifier)
	if end != 0 {
		series = SeriesEndingAt(identifier, end)
	}
	return Snapshot{
		CreatorID: identifier,
		Band:      BandFor(identifier),
		Series:    series,
		LastYield: series.Last(),
	}
}
