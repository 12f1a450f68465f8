package memorystore

import (
	"sort"
	"sync"

	"yfcollector/pkg/yahoo"
)

// MemorySeriesStore keeps the latest fetched series per symbol. Series are
// replaced wholesale, never merged.
type MemorySeriesStore struct {
	globalMu sync.RWMutex
	data     map[string]*symbolSeriesStore
}

type symbolSeriesStore struct {
	mu     sync.Mutex
	series yahoo.TimeSeries
}

func NewSeriesStore() *MemorySeriesStore {
	return &MemorySeriesStore{
		data: make(map[string]*symbolSeriesStore),
	}
}

func (s *MemorySeriesStore) Put(m SeriesMemory) {
	// Fast path: lock per-symbol store only
	s.globalMu.RLock()
	store, ok := s.data[m.Symbol]
	s.globalMu.RUnlock()

	if !ok {
		s.globalMu.Lock()
		if store, ok = s.data[m.Symbol]; !ok {
			store = &symbolSeriesStore{}
			s.data[m.Symbol] = store
		}
		s.globalMu.Unlock()
	}

	cp := make(yahoo.TimeSeries, len(m.Series))
	copy(cp, m.Series)

	store.mu.Lock()
	store.series = cp
	store.mu.Unlock()
}

// PutBatch stores every entry of a batch result.
func (s *MemorySeriesStore) PutBatch(result yahoo.BatchResult) {
	for sym, series := range result {
		s.Put(SeriesMemory{Symbol: sym, Series: series})
	}
}

func (s *MemorySeriesStore) GetBySymbol(symbol string) (yahoo.TimeSeries, bool) {
	s.globalMu.RLock()
	store, ok := s.data[symbol]
	s.globalMu.RUnlock()
	if !ok {
		return nil, false
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	cp := make(yahoo.TimeSeries, len(store.series))
	copy(cp, store.series)
	return cp, true
}

func (s *MemorySeriesStore) GetAll() yahoo.BatchResult {
	s.globalMu.RLock()
	defer s.globalMu.RUnlock()

	result := make(yahoo.BatchResult, len(s.data))
	for sym, store := range s.data {
		store.mu.Lock()
		cp := make(yahoo.TimeSeries, len(store.series))
		copy(cp, store.series)
		store.mu.Unlock()
		result[sym] = cp
	}
	return result
}

// Symbols returns the stored symbols in lexical order.
func (s *MemorySeriesStore) Symbols() []string {
	s.globalMu.RLock()
	defer s.globalMu.RUnlock()

	out := make([]string, 0, len(s.data))
	for sym := range s.data {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

// CountAll returns the total number of bars stored across all symbols.
func (s *MemorySeriesStore) CountAll() int {
	s.globalMu.RLock()
	defer s.globalMu.RUnlock()

	total := 0
	for _, store := range s.data {
		store.mu.Lock()
		total += len(store.series)
		store.mu.Unlock()
	}
	return total
}
