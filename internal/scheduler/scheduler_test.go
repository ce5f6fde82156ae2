package scheduler

import (
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSweeper struct {
	calls atomic.Int32
}

func (c *countingSweeper) Sweep() int {
	c.calls.Add(1)
	return 0
}

func newTestScheduler() *Scheduler {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewScheduler(log)
}

func TestStartWithoutJobs(t *testing.T) {
	s := newTestScheduler()
	assert.Error(t, s.Start())
	assert.False(t, s.IsRunning())
}

func TestScenarioSweepRuns(t *testing.T) {
	s := newTestScheduler()
	sweeper := &countingSweeper{}

	require.NoError(t, s.ScheduleScenarioSweep(time.Second, sweeper))
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.True(t, s.IsRunning())
	assert.Len(t, s.Entries(), 1)
	assert.False(t, s.GetNextRun().IsZero())

	assert.Eventually(t, func() bool { return sweeper.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestCannotScheduleWhileRunning(t *testing.T) {
	s := newTestScheduler()
	require.NoError(t, s.ScheduleScenarioSweep(time.Minute, &countingSweeper{}))
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Error(t, s.ScheduleScenarioSweep(time.Minute, &countingSweeper{}))
	assert.Error(t, s.Start())
}

func TestStopIsIdempotent(t *testing.T) {
	s := newTestScheduler()
	require.NoError(t, s.ScheduleScenarioSweep(time.Minute, &countingSweeper{}))
	require.NoError(t, s.Start())

	assert.NoError(t, s.Stop())
	assert.False(t, s.IsRunning())
	assert.NoError(t, s.Stop())
	assert.True(t, s.GetNextRun().IsZero())
}
