// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package wdb

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Handle identifies one decode held by a Store.
type Handle struct {
	Generation uint64    // Increases with every replacement
	ID         uuid.UUID // Unique per decode
	DecodedAt  time.Time
}

// Store keeps the most recently loaded Crystarium and caches its page
// groups until the next replacement. The latest load wins.
type Store struct {
	mu         sync.RWMutex
	current    *Crystarium
	handle     Handle
	pages      []PageGroup // cache for pagesGen
	pagesGen   uint64
	cacheBuilt bool
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Load decodes data and makes it current. A failed decode leaves the store
// unchanged.
func (s *Store) Load(data []byte, opts ...Option) (Handle, error) {
	c, err := Decode(data, opts...)
	if err != nil {
		return Handle{}, err
	}
	return s.Replace(c), nil
}

// Replace makes c current and drops the cached pages of the previous one.
// c.Directory may be nil for a Crystarium built in memory.
func (s *Store) Replace(c *Crystarium) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = c
	s.handle = Handle{
		Generation: s.handle.Generation + 1,
		ID:         uuid.New(),
		DecodedAt:  time.Now(),
	}
	s.pages = nil
	s.cacheBuilt = false

	return s.handle
}

// Clear drops the current Crystarium. The generation still advances so
// outstanding handles become stale.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	s.handle = Handle{Generation: s.handle.Generation + 1}
	s.pages = nil
	s.cacheBuilt = false
}

// Current returns the handle and Crystarium in use. ok is false when nothing
// is loaded.
func (s *Store) Current() (h Handle, c *Crystarium, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return Handle{}, nil, false
	}
	return s.handle, s.current, true
}

// Pages returns the page groups of the decode h refers to. Groups are
// computed once per generation.
func (s *Store) Pages(h Handle) ([]PageGroup, error) {
	s.mu.RLock()
	if err := s.checkHandle(h); err != nil {
		s.mu.RUnlock()
		return nil, err
	}
	if s.cacheBuilt && s.pagesGen == h.Generation {
		pages := s.pages
		s.mu.RUnlock()
		return pages, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// The store may have been replaced while the lock was released.
	if err := s.checkHandle(h); err != nil {
		return nil, err
	}
	if !s.cacheBuilt || s.pagesGen != h.Generation {
		s.pages = Group(s.current.Nodes)
		s.pagesGen = h.Generation
		s.cacheBuilt = true
	}
	return s.pages, nil
}

// CurrentPages is Pages for the current handle.
func (s *Store) CurrentPages() (Handle, []PageGroup, error) {
	h, _, ok := s.Current()
	if !ok {
		return Handle{}, nil, ErrNoData
	}
	pages, err := s.Pages(h)
	return h, pages, err
}

// checkHandle must be called with s.mu held.
func (s *Store) checkHandle(h Handle) error {
	if s.current == nil {
		return ErrNoData
	}
	if h.Generation != s.handle.Generation {
		return fmt.Errorf("generation %d, current %d: %w", h.Generation, s.handle.Generation, ErrStaleHandle)
	}
	return nil
}
