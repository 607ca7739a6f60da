package fingerprint

import (
	"context"
	"sync"
	"time"
)

type localEntry struct {
	sum []byte
	exp time.Time // zero => no expiry
}

// Local keeps fingerprints in-process (the default). An optional sweep
// loop prunes expired entries so a long-lived registry watching a churning
// asset directory does not accumulate dead paths.
type Local struct {
	mu sync.RWMutex
	m  map[string]localEntry

	ticker *time.Ticker
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewLocal constructs a Local store. sweepInterval <= 0 disables the
// sweep loop; expired entries are then dropped lazily on Get.
func NewLocal(sweepInterval time.Duration) *Local {
	s := &Local{m: make(map[string]localEntry)}
	if sweepInterval > 0 {
		s.ticker = time.NewTicker(sweepInterval)
		s.stopCh = make(chan struct{})
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			for {
				select {
				case <-s.ticker.C:
					s.sweep(time.Now())
				case <-s.stopCh:
					return
				}
			}
		}()
	}
	return s
}

func (s *Local) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	e, ok := s.m[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !e.exp.IsZero() && time.Now().After(e.exp) {
		s.mu.Lock()
		delete(s.m, key)
		s.mu.Unlock()
		return nil, false, nil
	}
	return e.sum, true, nil
}

func (s *Local) Set(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	s.mu.Lock()
	s.m[key] = localEntry{sum: value, exp: exp}
	s.mu.Unlock()
	return true, nil
}

func (s *Local) Del(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.m, key)
	s.mu.Unlock()
	return nil
}

func (s *Local) Close(_ context.Context) error {
	if s.stopCh != nil {
		close(s.stopCh)
		s.ticker.Stop()
		s.wg.Wait()
	}
	return nil
}

func (s *Local) sweep(now time.Time) {
	s.mu.Lock()
	for k, e := range s.m {
		if !e.exp.IsZero() && e.exp.Before(now) {
			delete(s.m, k)
		}
	}
	s.mu.Unlock()
}
