package application

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	multierror "github.com/hashicorp/go-multierror"

	"github.com/credpanel/credpanel/internal/domain/model"
	"github.com/credpanel/credpanel/internal/domain/port/driven"
)

// DeleteService removes credentials from the controller. The controller has
// no batch endpoint, so a bulk delete fans out one request per id and waits
// for all of them to settle.
type DeleteService struct {
	api driven.CredentialAPI

	inflight atomic.Int32
}

// NewDeleteService creates a DeleteService backed by the given controller API.
func NewDeleteService(api driven.CredentialAPI) *DeleteService {
	return &DeleteService{api: api}
}

// Delete removes the given credentials concurrently and waits for every
// request to settle. The result enumerates which ids were deleted and which
// failed; the returned error is non-nil iff at least one id failed and
// aggregates every per-id failure. Completion order is irrelevant; result
// slices are sorted by id for stable output. Server-side deletions that
// succeeded before a failure are not rolled back.
func (s *DeleteService) Delete(ctx context.Context, ids []string) (model.BulkDeleteResult, error) {
	result := model.BulkDeleteResult{Deleted: []string{}, Failed: []model.DeleteFailure{}}
	if len(ids) == 0 {
		return result, nil
	}

	s.inflight.Add(1)
	defer s.inflight.Add(-1)

	var mu sync.Mutex
	var wg sync.WaitGroup
	var errs *multierror.Error

	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()

			err := s.api.DeleteCredential(ctx, id)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed = append(result.Failed, model.DeleteFailure{ID: id, Reason: err.Error()})
				errs = multierror.Append(errs, fmt.Errorf("credential %s: %w", id, err))
				return
			}
			result.Deleted = append(result.Deleted, id)
		}(id)
	}
	wg.Wait()

	sort.Strings(result.Deleted)
	sort.Slice(result.Failed, func(i, j int) bool { return result.Failed[i].ID < result.Failed[j].ID })

	return result, errs.ErrorOrNil()
}

// Busy reports whether a bulk delete is in flight.
func (s *DeleteService) Busy() bool {
	return s.inflight.Load() > 0
}

// NextQueryAfterDelete computes the pagination correction applied after a
// successful bulk delete. If the entire visible page was deleted and the
// page number is greater than 1, the console navigates to the previous
// page; otherwise it re-fetches the current page (the count or contents may
// have shrunk without the page becoming empty). The second return reports
// whether the correction is a navigation (URL change) rather than a
// same-page refetch.
func NextQueryAfterDelete(q model.Query, selected, loaded int) (model.Query, bool) {
	if q.Page > 1 && selected == loaded {
		q.Page--
		return q, true
	}
	return q, false
}

// AnyBusy reports whether any of the given workflows has an operation in
// flight. The page exposes this as one combined disabling signal instead of
// re-deriving the OR at each call site.
func AnyBusy(workflows ...interface{ Busy() bool }) bool {
	for _, w := range workflows {
		if w.Busy() {
			return true
		}
	}
	return false
}
