package adscheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"evorgs/internal/domain/ads"
)

func newTestRunner(executor Executor) (*Runner, *MockScheduleRepository, *MockAdCatalog) {
	repo := new(MockScheduleRepository)
	adRepo := new(MockAdCatalog)
	r := NewRunner(repo, adRepo, executor, nil)
	r.now = func() time.Time { return time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC) }
	return r, repo, adRepo
}

func TestRunDue_CompletesSchedule(t *testing.T) {
	executed := 0
	r, repo, adRepo := newTestRunner(ExecutorFunc(func(ctx context.Context, s *Schedule, a *ads.Ad) error {
		executed++
		return nil
	}))

	due := []Schedule{{ID: 1, AdID: 7, Status: StatusScheduled, RunDate: monday, MaxRetries: 3}}
	repo.On("ListDue", mock.Anything, monday, mock.Anything, 100).Return(due, nil)
	repo.On("UpdateStatus", mock.Anything, int64(1), StatusRunning).Return(nil)
	adRepo.On("GetByID", mock.Anything, int64(7)).Return(activeAd(7), nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(s *Schedule) bool {
		return s.Status == StatusCompleted
	})).Return(nil)
	repo.On("AppendLog", mock.Anything, mock.Anything).Return(nil)

	n, err := r.RunDue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, executed)
}

func TestRunDue_FailureSchedulesRetryWithBackoff(t *testing.T) {
	r, repo, adRepo := newTestRunner(ExecutorFunc(func(ctx context.Context, s *Schedule, a *ads.Ad) error {
		return errors.New("provider timeout")
	}))

	due := []Schedule{{ID: 1, AdID: 7, Status: StatusScheduled, RunDate: monday, RetryCount: 0, MaxRetries: 3}}
	repo.On("ListDue", mock.Anything, monday, mock.Anything, 100).Return(due, nil)
	repo.On("UpdateStatus", mock.Anything, int64(1), StatusRunning).Return(nil)
	adRepo.On("GetByID", mock.Anything, int64(7)).Return(activeAd(7), nil)

	var saved *Schedule
	repo.On("Update", mock.Anything, mock.AnythingOfType("*adscheduling.Schedule")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*Schedule)
	}).Return(nil)
	repo.On("AppendLog", mock.Anything, mock.Anything).Return(nil)

	n, err := r.RunDue(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NotNil(t, saved)
	assert.Equal(t, StatusScheduled, saved.Status)
	assert.Equal(t, 1, saved.RetryCount)
	assert.Equal(t, "provider timeout", saved.FailureReason)
	require.NotNil(t, saved.NextRetryAt)
	assert.Equal(t, r.now().Add(time.Minute), *saved.NextRetryAt)
}

func TestRunDue_ExhaustedRetriesLandInFailed(t *testing.T) {
	r, repo, adRepo := newTestRunner(ExecutorFunc(func(ctx context.Context, s *Schedule, a *ads.Ad) error {
		return errors.New("still broken")
	}))

	due := []Schedule{{ID: 1, AdID: 7, Status: StatusScheduled, RunDate: monday, RetryCount: 2, MaxRetries: 3}}
	repo.On("ListDue", mock.Anything, monday, mock.Anything, 100).Return(due, nil)
	repo.On("UpdateStatus", mock.Anything, int64(1), StatusRunning).Return(nil)
	adRepo.On("GetByID", mock.Anything, int64(7)).Return(activeAd(7), nil)

	var saved *Schedule
	repo.On("Update", mock.Anything, mock.AnythingOfType("*adscheduling.Schedule")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*Schedule)
	}).Return(nil)
	repo.On("AppendLog", mock.Anything, mock.Anything).Return(nil)

	_, err := r.RunDue(context.Background())
	require.NoError(t, err)

	require.NotNil(t, saved)
	assert.Equal(t, StatusFailed, saved.Status)
	assert.Equal(t, 3, saved.RetryCount)
	assert.Nil(t, saved.NextRetryAt)
}

func TestRunDue_InactiveAdFails(t *testing.T) {
	r, repo, adRepo := newTestRunner(nil) // default DisplayExecutor

	due := []Schedule{{ID: 1, AdID: 7, Status: StatusScheduled, RunDate: monday, MaxRetries: 3}}
	repo.On("ListDue", mock.Anything, monday, mock.Anything, 100).Return(due, nil)
	repo.On("UpdateStatus", mock.Anything, int64(1), StatusRunning).Return(nil)
	adRepo.On("GetByID", mock.Anything, int64(7)).Return(&ads.Ad{ID: 7, Status: ads.StatusExpired}, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*adscheduling.Schedule")).Return(nil)
	repo.On("AppendLog", mock.Anything, mock.Anything).Return(nil)

	n, err := r.RunDue(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRunDue_OneBadScheduleDoesNotStallBatch(t *testing.T) {
	r, repo, adRepo := newTestRunner(ExecutorFunc(func(ctx context.Context, s *Schedule, a *ads.Ad) error {
		return nil
	}))

	due := []Schedule{
		{ID: 1, AdID: 7, Status: StatusScheduled, RunDate: monday, MaxRetries: 3},
		{ID: 2, AdID: 7, Status: StatusScheduled, RunDate: monday, MaxRetries: 3},
	}
	repo.On("ListDue", mock.Anything, monday, mock.Anything, 100).Return(due, nil)
	// The first schedule cannot even be claimed.
	repo.On("UpdateStatus", mock.Anything, int64(1), StatusRunning).Return(errors.New("db error"))
	repo.On("UpdateStatus", mock.Anything, int64(2), StatusRunning).Return(nil)
	adRepo.On("GetByID", mock.Anything, int64(7)).Return(activeAd(7), nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	repo.On("AppendLog", mock.Anything, mock.Anything).Return(nil)

	n, err := r.RunDue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
