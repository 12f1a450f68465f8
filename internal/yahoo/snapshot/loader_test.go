package snapshot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type staticTrending struct {
	symbols []string
	limit   int
}

func (s *staticTrending) FetchTrending(_ context.Context, limit int) []string {
	s.limit = limit
	return s.symbols
}

func drain(ch <-chan string) []string {
	var out []string
	for s := range ch {
		out = append(out, s)
	}
	return out
}

func TestLoadSymbols_ConfiguredThenTrending(t *testing.T) {
	trending := &staticTrending{symbols: []string{"NVDA", "AAPL"}}
	loader := &SymbolLoader{
		Symbols:         []string{"AAPL", "MSFT"},
		IncludeTrending: true,
		TrendingCount:   10,
		Trending:        trending,
		Logger:          zaptest.NewLogger(t),
	}

	ch := make(chan string, 16)
	require.NoError(t, loader.LoadSymbols(testContext(t), ch))
	assert.Equal(t, []string{"AAPL", "MSFT", "NVDA", "AAPL"}, drain(ch))
	assert.Equal(t, 10, trending.limit)
}

func TestLoadSymbols_TrendingDisabled(t *testing.T) {
	trending := &staticTrending{symbols: []string{"NVDA"}}
	loader := &SymbolLoader{Symbols: []string{"SPY"}, TrendingCount: 10, Trending: trending}

	ch := make(chan string, 4)
	require.NoError(t, loader.LoadSymbols(testContext(t), ch))
	assert.Equal(t, []string{"SPY"}, drain(ch))
	assert.Zero(t, trending.limit)
}

func TestLoadSymbols_Canceled(t *testing.T) {
	loader := &SymbolLoader{Symbols: []string{"AAPL", "MSFT"}}

	ctx, cancel := context.WithCancel(testContext(t))
	cancel()

	// unbuffered and never read: only cancellation can unblock the send
	ch := make(chan string)
	err := loader.LoadSymbols(ctx, ch)
	assert.ErrorIs(t, err, context.Canceled)

	_, open := <-ch
	assert.False(t, open)
}
