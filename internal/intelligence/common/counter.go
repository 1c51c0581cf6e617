package common

import "sync"

type syncCounter struct {
	mu *sync.Mutex
	m  map[string]int64
}

func newSyncCounter() syncCounter {
	return syncCounter{mu: &sync.Mutex{}, m: make(map[string]int64)}
}

func (s syncCounter) inc(k string) {
	s.mu.Lock()
	s.m[k]++
	s.mu.Unlock()
}

func (s syncCounter) get(k string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m[k]
}

//Personal.AI order the ending
