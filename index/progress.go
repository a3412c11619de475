package index

import (
	"fmt"
	"io"
	"time"
)

// progressTracker reports indexing progress to a writer, typically stderr.
// The indexer is single-threaded, so no locking is needed.
type progressTracker struct {
	writer         io.Writer
	total          int
	current        int
	reportInterval int
	lastReported   int
	startTime      time.Time
}

func newProgressTracker(writer io.Writer, total, reportInterval int) *progressTracker {
	if reportInterval < 1 {
		reportInterval = 1
	}
	return &progressTracker{
		writer:         writer,
		total:          total,
		reportInterval: reportInterval,
		startTime:      time.Now(),
	}
}

// add advances progress by delta and reports when an interval is crossed.
func (p *progressTracker) add(delta int) {
	if p == nil {
		return
	}
	p.current = min(p.current+delta, p.total)
	if p.current-p.lastReported >= p.reportInterval {
		p.report()
		p.lastReported = p.current
	}
}

// finish prints the final progress line.
func (p *progressTracker) finish() {
	if p == nil {
		return
	}
	p.report()
	fmt.Fprintln(p.writer)
}

func (p *progressTracker) report() {
	elapsed := time.Since(p.startTime)
	rate := float64(p.current) / elapsed.Seconds()

	percentage := 0.0
	if p.total > 0 {
		percentage = float64(p.current) / float64(p.total) * 100.0
	}

	fmt.Fprintf(p.writer, "\rIndexed: %d/%d (%.1f%%) - %.1f documents/s",
		p.current, p.total, percentage, rate)
}
