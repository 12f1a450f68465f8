package stream

import "yfcollector/internal/yahoo/metrics"

// SummaryMessage is one per-symbol update pushed to the reporting endpoint.
type SummaryMessage struct {
	Topic string          `json:"topic"` // e.g. "summary.AAPL"
	Data  metrics.Summary `json:"data"`
	Ts    int64           `json:"ts"`   // send time in milliseconds since epoch
	Type  string          `json:"type"` // always "snapshot"
}

// BatchCompleteMessage closes a run so the consumer can swap its view.
type BatchCompleteMessage struct {
	Topic   string   `json:"topic"` // "batch.complete"
	Symbols []string `json:"symbols"`
	Ts      int64    `json:"ts"`
	Type    string   `json:"type"`
}

const (
	messageTypeSnapshot = "snapshot"
	topicBatchComplete  = "batch.complete"
)

func summaryTopic(symbol string) string {
	return "summary." + symbol
}
