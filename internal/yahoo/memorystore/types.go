package memorystore

import "yfcollector/pkg/yahoo"

// SeriesMemory is a fetched series with its symbol attached.
type SeriesMemory struct {
	Symbol string           `json:"symbol"`
	Series yahoo.TimeSeries `json:"series"`
}
