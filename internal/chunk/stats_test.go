package chunk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestBuildStatsTimings(t *testing.T) {
	var s BuildStats
	assert.Zero(t, s.AverageBuildTime())

	s.recordBuild(30 * time.Millisecond)
	s.recordBuild(10 * time.Millisecond)
	s.recordBuild(20 * time.Millisecond)

	assert.Equal(t, 3, s.Builds)
	assert.Equal(t, 10*time.Millisecond, s.MinBuildTime)
	assert.Equal(t, 30*time.Millisecond, s.MaxBuildTime)
	assert.Equal(t, 20*time.Millisecond, s.AverageBuildTime())
}

func TestBuildStatsLogObject(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := BuildStats{Requested: 5, Completed: 3}
	s.recordBuild(time.Second)

	zap.New(core).Info("stats", zap.Object("build", s))

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()["build"].(map[string]any)
		assert.EqualValues(t, 5, fields["requested"])
		assert.EqualValues(t, 3, fields["completed"])
		assert.EqualValues(t, time.Second, fields["avg_build"])
	}
}
