// Package profiler tracks per-pass CPU cost for the occlusion pipeline.
// Outputs stats to the log at a configurable interval.
package profiler

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Carmen-Shannon/umbra-go/logger"
)

type passStats struct {
	total time.Duration
	count int
}

// Profiler accumulates named pass durations each frame and logs per-pass
// averages when the update interval has elapsed. Not safe for concurrent use;
// it belongs to the render thread like everything else in the per-frame path.
type Profiler struct {
	log            logger.Logger
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	passes         map[string]*passStats
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Parameters:
//   - log: the logger stats are written to, nil for the default
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(log logger.Logger) *Profiler {
	if log == nil {
		log = logger.New("[Profiler] ")
	}
	return &Profiler{
		log:            log,
		lastTime:       time.Now(),
		updateInterval: time.Second,
		passes:         make(map[string]*passStats),
	}
}

// SetInterval changes how often Tick logs. Non-positive intervals are
// ignored.
//
// Parameters:
//   - interval: the logging interval
func (p *Profiler) SetInterval(interval time.Duration) {
	if interval > 0 {
		p.updateInterval = interval
	}
}

// Track runs fn and records its wall time under the pass name.
//
// Parameters:
//   - pass: the pass name, e.g. "cascade plan" or "ao evaluate"
//   - fn: the work to time
func (p *Profiler) Track(pass string, fn func()) {
	start := time.Now()
	fn()
	p.Sample(pass, time.Since(start))
}

// Sample records one measured duration under the pass name.
//
// Parameters:
//   - pass: the pass name
//   - d: the measured duration
func (p *Profiler) Sample(pass string, d time.Duration) {
	s := p.passes[pass]
	if s == nil {
		s = &passStats{}
		p.passes[pass] = s
	}
	s.total += d
	s.count++
}

// Tick should be called once per frame. Logs per-pass average cost and frame
// rate when the update interval has elapsed, then resets the accumulators.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()

	names := make([]string, 0, len(p.passes))
	for name := range p.passes {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	fmt.Fprintf(&sb, "FPS: %.2f", fps)
	for _, name := range names {
		s := p.passes[name]
		avgMs := float64(s.total.Microseconds()) / float64(s.count) / 1000
		fmt.Fprintf(&sb, " | %s: %.3f ms", name, avgMs)
	}
	p.log.Printf("%s", sb.String())

	p.frameCount = 0
	p.lastTime = currentTime
	p.passes = make(map[string]*passStats)
	return true
}
