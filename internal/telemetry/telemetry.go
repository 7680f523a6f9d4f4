// SPDX-License-Identifier: Unlicense OR MIT

// Package telemetry logs per-frame run health the way inference-sim's
// simulator logs tick events via logrus: plain leveled Infof/Warnf calls,
// no structured field builder, since nothing downstream here parses the
// log stream.
package telemetry

import (
	"time"

	"github.com/sirupsen/logrus"

	"subdiv.dev/bisector"
)

// FrameStats is one frame's worth of counters, handed to Record after
// pipeline.Frame.Run (spec section 7: oversubscribed and invariant
// violations are non-fatal counters, not errors).
type FrameStats struct {
	FrameIndex     int
	Duration       time.Duration
	Oversubscribed uint32
	Violations     []bisector.Violation
	VisibleCount   int
	ModifiedCount  int
	BitCount       uint32
}

// Record logs FrameStats at a level matching spec section 7's severity:
// oversubscription and invariant violations are warnings (the pipeline
// keeps running), everything else is informational.
func Record(s FrameStats) {
	logrus.Infof("[frame %05d] visible=%d modified=%d bit_count=%d duration=%s",
		s.FrameIndex, s.VisibleCount, s.ModifiedCount, s.BitCount, s.Duration)

	if s.Oversubscribed > 0 {
		logrus.Warnf("[frame %05d] oversubscribed=%d: CBT free pool exhausted, %d requested slots reverted to Unchanged",
			s.FrameIndex, s.Oversubscribed, s.Oversubscribed)
	}

	for _, v := range s.Violations {
		logrus.Warnf("[frame %05d] invariant violation: %s", s.FrameIndex, v)
	}
}

// Totals accumulates FrameStats across a run, for the summary
// cmd/subdivctl prints once N frames finish.
type Totals struct {
	Frames              int
	TotalOversubscribed uint64
	TotalViolations     uint64
}

// Add folds one frame's stats into the running totals.
func (t *Totals) Add(s FrameStats) {
	t.Frames++
	t.TotalOversubscribed += uint64(s.Oversubscribed)
	t.TotalViolations += uint64(len(s.Violations))
}

// Summarize logs the final run totals: frame count, total oversubscribed
// and total invariant violations. The summary carries no bit_count; that
// is logged per frame by Record.
func (t *Totals) Summarize() {
	logrus.Infof("run complete: %d frames, %d total oversubscribed, %d total invariant violations",
		t.Frames, t.TotalOversubscribed, t.TotalViolations)
}
