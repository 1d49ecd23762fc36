// Package savedjobs keeps the candidate's saved-job set in sync with the
// server. Toggles are optimistic: the set flips immediately and flips back
// only when the server rejects the change.
package savedjobs

import (
	"context"
	"sync"

	"jobportal-client/internal/common/logger"
	"jobportal-client/internal/models"
	"jobportal-client/internal/optimistic"
)

// API is the slice of the candidate surface this store needs.
type API interface {
	SavedJobs(ctx context.Context) ([]models.Job, error)
	SaveJob(ctx context.Context, jobID string) error
	UnsaveJob(ctx context.Context, jobID string) error
}

// Set is the locally cached saved-job set.
type Set struct {
	api    API
	runner *optimistic.Runner
	logger logger.Logger

	mu   sync.Mutex
	ids  map[string]bool
	subs []func(map[string]bool)
}

// NewSet creates an empty set. Call Refresh to seed it from the server.
func NewSet(api API, runner *optimistic.Runner, log logger.Logger) *Set {
	return &Set{
		api:    api,
		runner: runner,
		logger: log.WithFields(map[string]interface{}{"component": "savedjobs"}),
		ids:    map[string]bool{},
	}
}

// Refresh replaces the set with the server's view.
func (s *Set) Refresh(ctx context.Context) error {
	jobs, err := s.api.SavedJobs(ctx)
	if err != nil {
		return err
	}

	ids := make(map[string]bool, len(jobs))
	for _, job := range jobs {
		ids[job.ID] = true
	}

	s.mu.Lock()
	s.ids = ids
	s.mu.Unlock()
	s.notify()
	return nil
}

// Contains reports whether a job is currently saved.
func (s *Set) Contains(jobID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ids[jobID]
}

// IDs returns a copy of the saved-job ids.
func (s *Set) IDs() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]bool, len(s.ids))
	for id, saved := range s.ids {
		out[id] = saved
	}
	return out
}

// Toggle saves an unsaved job or unsaves a saved one. The flip is applied
// locally before the call goes out and reverted on rejection, unless a
// newer toggle on the same job has started since.
func (s *Set) Toggle(ctx context.Context, jobID string) error {
	s.mu.Lock()
	wasSaved := s.ids[jobID]
	s.mu.Unlock()

	apply := func() {
		s.set(jobID, !wasSaved)
	}
	revert := func() {
		s.set(jobID, wasSaved)
	}
	call := func(ctx context.Context) error {
		if wasSaved {
			return s.api.UnsaveJob(ctx, jobID)
		}
		return s.api.SaveJob(ctx, jobID)
	}

	err := s.runner.Do(ctx, "saved-job:"+jobID, apply, revert, call)
	if err != nil {
		s.logger.WithError(err).Warn("saved-job toggle rejected", map[string]interface{}{
			"jobId": jobID,
		})
	}
	return err
}

// Subscribe registers an observer called with a copy of the set after
// every change.
func (s *Set) Subscribe(fn func(map[string]bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Set) set(jobID string, saved bool) {
	s.mu.Lock()
	if saved {
		s.ids[jobID] = true
	} else {
		delete(s.ids, jobID)
	}
	s.mu.Unlock()
	s.notify()
}

func (s *Set) notify() {
	s.mu.Lock()
	subs := make([]func(map[string]bool), len(s.subs))
	copy(subs, s.subs)
	snapshot := make(map[string]bool, len(s.ids))
	for id, saved := range s.ids {
		snapshot[id] = saved
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}
