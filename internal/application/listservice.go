// Package application contains the console's workflow services. They depend
// only on port interfaces and domain types.
package application

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/credpanel/credpanel/internal/domain/model"
	"github.com/credpanel/credpanel/internal/domain/port/driven"
)

// ListService fetches the credential list view: one page of credentials and
// the permitted collection actions, merged into a single view model.
//
// Fetches are tagged with a monotonically increasing sequence number; a
// slow fetch that completes after a newer one never overwrites the cached
// view (latest trigger wins, stale results are discarded).
type ListService struct {
	api driven.CredentialAPI

	inflight atomic.Int32
	seq      atomic.Uint64

	mu      sync.Mutex
	applied uint64
	current *model.CredentialView
}

// NewListService creates a ListService backed by the given controller API.
func NewListService(api driven.CredentialAPI) *ListService {
	return &ListService{api: api}
}

// Fetch loads the page described by q together with the collection actions.
// Both reads run concurrently and both must succeed; on any failure the
// cached view is left untouched and the error is returned as-is for the
// content error channel. On success the merged view replaces the cached
// view atomically (unless a newer fetch already finished) and is returned.
func (s *ListService) Fetch(ctx context.Context, q model.Query) (*model.CredentialView, error) {
	id := s.seq.Add(1)

	s.inflight.Add(1)
	defer s.inflight.Add(-1)

	var page *model.CredentialPage
	var actions model.Actions

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page, err = s.api.ListCredentials(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		actions, err = s.api.CredentialActions(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	view := &model.CredentialView{
		Credentials: page.Credentials,
		Count:       page.Count,
		Actions:     actions,
	}

	s.mu.Lock()
	if id > s.applied {
		s.applied = id
		s.current = view
	}
	s.mu.Unlock()

	return view, nil
}

// Current returns the last successfully applied view, or nil before the
// first successful fetch.
func (s *ListService) Current() *model.CredentialView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Busy reports whether a fetch is in flight.
func (s *ListService) Busy() bool {
	return s.inflight.Load() > 0
}
