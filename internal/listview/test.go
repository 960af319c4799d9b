package listview

import (
	"context"
	"sync"
	"time"

	"entq/internal/domain/entity"
)

// MockQueryClient records every fetch. Responses are served from Results
// in call order; once exhausted, Value and ErrorValue are returned.
type MockQueryClient struct {
	mu         sync.Mutex
	Calls      []*entity.QueryVariables
	Results    []MockResult
	Value      []*entity.Entity
	ErrorValue error
}

type MockResult struct {
	Value []*entity.Entity
	Err   error
}

func (m *MockQueryClient) Fetch(ctx context.Context, vars *entity.QueryVariables) ([]*entity.Entity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := len(m.Calls)
	m.Calls = append(m.Calls, vars)
	if i < len(m.Results) {
		return m.Results[i].Value, m.Results[i].Err
	}

	return m.Value, m.ErrorValue
}

func (m *MockQueryClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.Calls)
}

// MockScheduler never ticks on its own. Tick runs every active job.
type MockScheduler struct {
	Started   int
	Stopped   int
	Intervals []time.Duration
	// OnEvery runs inside Every before the stop function is returned.
	OnEvery func()
	jobs    map[int]func()
}

func (s *MockScheduler) Every(interval time.Duration, fn func()) func() {
	if s.jobs == nil {
		s.jobs = make(map[int]func())
	}
	id := s.Started
	s.Started++
	s.Intervals = append(s.Intervals, interval)
	s.jobs[id] = fn

	if s.OnEvery != nil {
		s.OnEvery()
	}

	return func() {
		if _, ok := s.jobs[id]; ok {
			delete(s.jobs, id)
			s.Stopped++
		}
	}
}

func (s *MockScheduler) Active() int {
	return len(s.jobs)
}

func (s *MockScheduler) Tick() {
	for _, fn := range s.jobs {
		fn()
	}
}

// InlineSpawn runs fetches synchronously.
func InlineSpawn(fn func()) { fn() }

// DeferredSpawn queues fetches until Run is called with their index, so
// tests can complete them in any order.
type DeferredSpawn struct {
	Pending []func()
}

func (d *DeferredSpawn) Spawn(fn func()) {
	d.Pending = append(d.Pending, fn)
}

func (d *DeferredSpawn) Run(i int) {
	d.Pending[i]()
}
