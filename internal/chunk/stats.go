package chunk

import (
	"time"

	"go.uber.org/zap/zapcore"
)

// BuildStats counts what the loader did with build jobs.
// Values returned by Loader.Stats are snapshots.
type BuildStats struct {
	Requested    int // calls to Request
	Deduplicated int // requests absorbed by an existing entry
	Superseded   int // in-flight builds overtaken by a finer request
	Submitted    int // jobs accepted by the queue
	Rejected     int // jobs refused because the queue was full
	Started      int
	Completed    int
	Failed       int
	Discarded    int // results for released or superseded entries
	InFlight     int

	Builds         int // results that carried a duration
	TotalBuildTime time.Duration
	MinBuildTime   time.Duration
	MaxBuildTime   time.Duration
}

// AverageBuildTime returns the mean duration of all recorded builds.
func (s BuildStats) AverageBuildTime() time.Duration {
	if s.Builds == 0 {
		return 0
	}
	return s.TotalBuildTime / time.Duration(s.Builds)
}

func (s *BuildStats) recordBuild(d time.Duration) {
	if s.Builds == 0 || d < s.MinBuildTime {
		s.MinBuildTime = d
	}
	if d > s.MaxBuildTime {
		s.MaxBuildTime = d
	}
	s.TotalBuildTime += d
	s.Builds++
}

// MarshalLogObject lets the stats be logged with zap.Object.
func (s BuildStats) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("requested", s.Requested)
	enc.AddInt("deduplicated", s.Deduplicated)
	enc.AddInt("superseded", s.Superseded)
	enc.AddInt("submitted", s.Submitted)
	enc.AddInt("rejected", s.Rejected)
	enc.AddInt("completed", s.Completed)
	enc.AddInt("failed", s.Failed)
	enc.AddInt("discarded", s.Discarded)
	enc.AddInt("in_flight", s.InFlight)
	enc.AddDuration("avg_build", s.AverageBuildTime())
	enc.AddDuration("max_build", s.MaxBuildTime)
	return nil
}
