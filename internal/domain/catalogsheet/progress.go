package catalogsheet

import (
	"math"
	"sync"
)

// Progress milestones of a generation run, in percent
const (
	FetchPhaseEnd  = 40
	RenderPhaseEnd = 95
	Complete       = 100
)

// ProgressFunc receives integer percentages in [0, 100]
type ProgressFunc func(percent int)

// FetchProgress is the percentage after done of total image fetches
func FetchProgress(done, total int) int {
	if total <= 0 {
		return FetchPhaseEnd
	}
	return int(math.Round(float64(done) / float64(total) * FetchPhaseEnd))
}

// RenderProgress is the percentage after done of total items were drawn
func RenderProgress(done, total int) int {
	span := RenderPhaseEnd - FetchPhaseEnd
	if total <= 0 {
		return RenderPhaseEnd
	}
	return FetchPhaseEnd + int(math.Round(float64(done)/float64(total)*float64(span)))
}

// ProgressReporter forwards percentages to a ProgressFunc, never letting the
// reported value go backwards. Safe for concurrent use.
type ProgressReporter struct {
	mu   sync.Mutex
	fn   ProgressFunc
	last int
	sent bool
}

// NewProgressReporter wraps fn; a nil fn discards reports
func NewProgressReporter(fn ProgressFunc) *ProgressReporter {
	return &ProgressReporter{fn: fn}
}

// Report sends percent when it does not move backwards
func (r *ProgressReporter) Report(percent int) {
	if r == nil || r.fn == nil {
		return
	}
	percent = min(max(percent, 0), Complete)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sent && percent < r.last {
		return
	}
	r.last = percent
	r.sent = true
	r.fn(percent)
}

// Last returns the most recent reported value
func (r *ProgressReporter) Last() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}
