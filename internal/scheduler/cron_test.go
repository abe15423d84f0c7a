package scheduler

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPruner struct {
	runs atomic.Int32
	err  error
}

func (p *countingPruner) PruneDownloads(ctx context.Context) (int, error) {
	p.runs.Add(1)
	return 0, p.err
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestStartRunsInitialPrune(t *testing.T) {
	pruner := &countingPruner{}
	s := NewScheduler(pruner, testLogger())

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool { return pruner.runs.Load() >= 1 }, time.Second, 10*time.Millisecond)
	assert.Len(t, s.cron.Entries(), 1)
}

func TestPruneSpecIsHourly(t *testing.T) {
	schedule, err := cron.ParseStandard(PruneSpec)
	require.NoError(t, err)

	from := time.Date(2024, 1, 1, 10, 15, 0, 0, time.UTC)
	next := schedule.Next(from)
	assert.Equal(t, time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC), next)
	assert.Equal(t, time.Hour, schedule.Next(next).Sub(next))
}

func TestRunPruneSurvivesErrors(t *testing.T) {
	pruner := &countingPruner{err: errors.New("disk gone")}
	s := NewScheduler(pruner, testLogger())

	s.runPrune()
	assert.Equal(t, int32(1), pruner.runs.Load())
}
