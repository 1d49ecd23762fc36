package savedjobs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobportal-client/internal/common/logger"
	"jobportal-client/internal/models"
	"jobportal-client/internal/optimistic"
)

type mockAPI struct {
	SavedJobsFunc func(ctx context.Context) ([]models.Job, error)
	SaveJobFunc   func(ctx context.Context, jobID string) error
	UnsaveJobFunc func(ctx context.Context, jobID string) error
}

func (m *mockAPI) SavedJobs(ctx context.Context) ([]models.Job, error) {
	if m.SavedJobsFunc != nil {
		return m.SavedJobsFunc(ctx)
	}
	return nil, nil
}

func (m *mockAPI) SaveJob(ctx context.Context, jobID string) error {
	if m.SaveJobFunc != nil {
		return m.SaveJobFunc(ctx, jobID)
	}
	return nil
}

func (m *mockAPI) UnsaveJob(ctx context.Context, jobID string) error {
	if m.UnsaveJobFunc != nil {
		return m.UnsaveJobFunc(ctx, jobID)
	}
	return nil
}

func newTestSet(t *testing.T, api API) *Set {
	log := logger.NewTestLogger(t)
	return NewSet(api, optimistic.NewRunner(log), log)
}

func TestSetRefresh(t *testing.T) {
	api := &mockAPI{
		SavedJobsFunc: func(ctx context.Context) ([]models.Job, error) {
			return []models.Job{{ID: "j1"}, {ID: "j2"}}, nil
		},
	}
	s := newTestSet(t, api)

	require.NoError(t, s.Refresh(context.Background()))
	assert.True(t, s.Contains("j1"))
	assert.True(t, s.Contains("j2"))
	assert.False(t, s.Contains("j3"))
}

func TestSetToggleSave(t *testing.T) {
	saved := []string{}
	api := &mockAPI{
		SaveJobFunc: func(ctx context.Context, jobID string) error {
			saved = append(saved, jobID)
			return nil
		},
	}
	s := newTestSet(t, api)

	require.NoError(t, s.Toggle(context.Background(), "j1"))
	assert.True(t, s.Contains("j1"))
	assert.Equal(t, []string{"j1"}, saved)
}

func TestSetToggleUnsave(t *testing.T) {
	unsaved := []string{}
	api := &mockAPI{
		SavedJobsFunc: func(ctx context.Context) ([]models.Job, error) {
			return []models.Job{{ID: "j1"}}, nil
		},
		UnsaveJobFunc: func(ctx context.Context, jobID string) error {
			unsaved = append(unsaved, jobID)
			return nil
		},
	}
	s := newTestSet(t, api)
	require.NoError(t, s.Refresh(context.Background()))

	require.NoError(t, s.Toggle(context.Background(), "j1"))
	assert.False(t, s.Contains("j1"))
	assert.Equal(t, []string{"j1"}, unsaved)
}

func TestSetToggleRevertsOnRejection(t *testing.T) {
	api := &mockAPI{
		SaveJobFunc: func(ctx context.Context, jobID string) error {
			return errors.New("already saved")
		},
	}
	s := newTestSet(t, api)

	err := s.Toggle(context.Background(), "j1")
	require.Error(t, err)
	assert.False(t, s.Contains("j1"))
}

func TestSetSubscribe(t *testing.T) {
	s := newTestSet(t, &mockAPI{})

	var lastSeen map[string]bool
	s.Subscribe(func(ids map[string]bool) { lastSeen = ids })

	require.NoError(t, s.Toggle(context.Background(), "j1"))
	require.NotNil(t, lastSeen)
	assert.True(t, lastSeen["j1"])

	require.NoError(t, s.Toggle(context.Background(), "j1"))
	assert.False(t, lastSeen["j1"])
}
