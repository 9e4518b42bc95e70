package main

import (
	"sync"

	"github.com/m4k3r-org/miniboot/components/storage/steeprom"
)

// emulatedStore serializes access to the timestamp store.
//
// The store itself is single-context by contract, while the HTTP handlers
// can be called from multiple goroutines.
type emulatedStore struct {
	mu    sync.Mutex
	store *steeprom.TimestampStore
	save  func() error
}

func (s *emulatedStore) ReadTimestamp() (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Read(), nil
}

func (s *emulatedStore) WriteTimestamp(value uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.Write(value)

	if s.save != nil {
		return s.save()
	}

	return nil
}
