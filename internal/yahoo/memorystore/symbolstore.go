package memorystore

import "sync"

// MemorySymbolStore holds the symbol universe of one collection run in
// insertion order, without duplicates.
type MemorySymbolStore struct {
	mu      sync.Mutex
	symbols []string
	seen    map[string]struct{}
}

func NewSymbolStore() *MemorySymbolStore {
	return &MemorySymbolStore{
		symbols: make([]string, 0),
		seen:    make(map[string]struct{}),
	}
}

// Add appends symbol unless it is empty or already present.
func (s *MemorySymbolStore) Add(symbol string) bool {
	if symbol == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.seen[symbol]; dup {
		return false
	}
	s.seen[symbol] = struct{}{}
	s.symbols = append(s.symbols, symbol)
	return true
}

// StartWorker drains ch into the store. The returned channel is closed once
// ch is closed and fully consumed.
func (s *MemorySymbolStore) StartWorker(ch <-chan string) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for symbol := range ch {
			s.Add(symbol)
		}
	}()
	return done
}

func (s *MemorySymbolStore) GetAll() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.symbols))
	copy(out, s.symbols)
	return out
}

func (s *MemorySymbolStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.symbols = s.symbols[:0]
	s.seen = make(map[string]struct{})
}
