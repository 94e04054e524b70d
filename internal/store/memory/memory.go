package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"banking-client/internal/errs"
	"banking-client/internal/models/history"
)

type Store struct {
	mu      sync.RWMutex
	values  map[string]string
	entries map[string]history.Entry
	idem    map[string]string
}

func NewStore() *Store {
	return &Store{
		values:  map[string]string{},
		entries: map[string]history.Entry{},
		idem:    map[string]string{},
	}
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return "", errs.ErrNotFound
	}

	return v, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value

	return nil
}

func (s *Store) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range keys {
		delete(s.values, k)
	}

	return nil
}

func (s *Store) AddEntry(_ context.Context, entry history.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.idem[entry.IdempotencyKey]; ok {
		return errs.ErrDuplicateEntry
	}

	s.entries[entry.ID] = entry
	s.idem[entry.IdempotencyKey] = entry.ID

	return nil
}

func (s *Store) UpdateEntryStatus(_ context.Context, id string, status history.Status, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return fmt.Errorf("entry '%s' - %w", id, errs.ErrNotFound)
	}

	entry.Status = status
	entry.Message = message
	s.entries[id] = entry

	return nil
}

func (s *Store) ListEntries(_ context.Context, kind history.Kind) ([]history.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]history.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		if kind != "" && e.Kind != kind {
			continue
		}
		result = append(result, e)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

func (s *Store) Close() error {
	return nil
}
