package stream

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"yfcollector/internal/yahoo/metrics"
	"yfcollector/pkg/yahoo"
)

// reportingServer accepts one websocket and forwards every text frame.
func reportingServer(t *testing.T) (*httptest.Server, <-chan []byte) {
	t.Helper()
	frames := make(chan []byte, 16)
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			frames <- msg
		}
	}))
	t.Cleanup(srv.Close)
	return srv, frames
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func next(t *testing.T, frames <-chan []byte) []byte {
	t.Helper()
	select {
	case f := <-frames:
		return f
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for frame")
		return nil
	}
}

// go test -v --run TestPublish
func TestPublish(t *testing.T) {
	srv, frames := reportingServer(t)

	pub := NewPublisher(wsURL(srv), time.Second, zaptest.NewLogger(t))
	defer pub.Close()

	summaries := metrics.SummarizeAll(yahoo.BatchResult{
		"AAPL": {{Open: 100, Close: 110, Volume: 10}},
		"MSFT": {},
	})
	require.NoError(t, pub.Publish(testContext(t), summaries))

	var first SummaryMessage
	require.NoError(t, json.Unmarshal(next(t, frames), &first))
	assert.Equal(t, "summary.AAPL", first.Topic)
	assert.Equal(t, "snapshot", first.Type)
	assert.InDelta(t, 10.0, first.Data.ChangePercent, 1e-9)

	var second SummaryMessage
	require.NoError(t, json.Unmarshal(next(t, frames), &second))
	assert.Equal(t, "summary.MSFT", second.Topic)
	assert.Zero(t, second.Data.Bars)

	var done BatchCompleteMessage
	require.NoError(t, json.Unmarshal(next(t, frames), &done))
	assert.Equal(t, "batch.complete", done.Topic)
	assert.Equal(t, []string{"AAPL", "MSFT"}, done.Symbols)
}

func TestPublish_DialFailure(t *testing.T) {
	pub := NewPublisher("ws://127.0.0.1:1/none", 200*time.Millisecond, nil)
	err := pub.Publish(testContext(t), nil)
	assert.Error(t, err)
	assert.NoError(t, pub.Close())
}
