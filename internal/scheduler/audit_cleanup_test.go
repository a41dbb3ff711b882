package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockEnqueuer struct {
	mu    sync.Mutex
	calls []int
	err   error
}

func (m *mockEnqueuer) EnqueueAuditCleanup(ctx context.Context, retentionDays int) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, retentionDays)
	if m.err != nil {
		return "", m.err
	}
	return "task-1", nil
}

func (m *mockEnqueuer) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func TestValidateCronSchedule(t *testing.T) {
	tests := []struct {
		schedule string
		wantErr  bool
	}{
		{"0 3 * * *", false},
		{"*/15 * * * *", false},
		{"@daily", false},
		{"0 3 * *", true},
		{"every night", true},
	}

	for _, tt := range tests {
		t.Run(tt.schedule, func(t *testing.T) {
			err := ValidateCronSchedule(tt.schedule)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuditCleanupScheduler_StartStop(t *testing.T) {
	s := NewAuditCleanupScheduler(&mockEnqueuer{}, "0 3 * * *", 30)

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
	assert.False(t, s.NextRun().IsZero())

	t.Run("second start is a no-op", func(t *testing.T) {
		require.NoError(t, s.Start(context.Background()))
	})

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.True(t, s.NextRun().IsZero())

	t.Run("second stop is a no-op", func(t *testing.T) {
		s.Stop()
	})
}

func TestAuditCleanupScheduler_InvalidSchedule(t *testing.T) {
	s := NewAuditCleanupScheduler(&mockEnqueuer{}, "whenever", 30)
	assert.Error(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
}

func TestAuditCleanupScheduler_StopsOnContextCancel(t *testing.T) {
	s := NewAuditCleanupScheduler(&mockEnqueuer{}, "0 3 * * *", 30)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, 2*time.Second, 10*time.Millisecond)
}

func TestAuditCleanupScheduler_RunNow(t *testing.T) {
	enqueuer := &mockEnqueuer{}
	s := NewAuditCleanupScheduler(enqueuer, "0 3 * * *", 14)

	id, err := s.RunNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "task-1", id)
	assert.Equal(t, []int{14}, enqueuer.calls)

	enqueuer.err = errors.New("queue closed")
	_, err = s.RunNow(context.Background())
	assert.Error(t, err)
}

func TestAuditCleanupScheduler_EnqueueSwallowsErrors(t *testing.T) {
	enqueuer := &mockEnqueuer{err: errors.New("queue closed")}
	s := NewAuditCleanupScheduler(enqueuer, "0 3 * * *", 30)

	s.enqueue(context.Background())
	assert.Equal(t, 1, enqueuer.callCount())
}
