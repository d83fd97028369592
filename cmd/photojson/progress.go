package main

import (
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/mattn/go-isatty"

	"photojson/internal/catalog"
)

// progressReporter draws a single tracker while the walker inspects entries.
type progressReporter struct {
	writer  progress.Writer
	tracker *progress.Tracker
	total   int
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// newProgressReporter returns nil when out is not a terminal so redirected
// runs stay free of control sequences.
func newProgressReporter(out io.Writer) *progressReporter {
	if !isTerminal(out) {
		return nil
	}
	pw := progress.NewWriter()
	pw.SetOutputWriter(out)
	pw.SetAutoStop(false)
	pw.SetTrackerLength(30)
	pw.SetUpdateFrequency(100 * time.Millisecond)
	pw.SetStyle(progress.StyleDefault)
	pw.Style().Visibility.ETA = false
	pw.Style().Visibility.Value = true

	tracker := &progress.Tracker{Message: "Cataloging", Units: progress.UnitsDefault}
	pw.AppendTracker(tracker)
	go pw.Render()
	return &progressReporter{writer: pw, tracker: tracker}
}

func (p *progressReporter) observe(o catalog.Outcome) {
	if p == nil {
		return
	}
	if p.total != o.Total {
		p.total = o.Total
		p.tracker.UpdateTotal(int64(o.Total))
	}
	p.tracker.Increment(1)
}

func (p *progressReporter) stop() {
	if p == nil {
		return
	}
	p.tracker.MarkAsDone()
	p.writer.Stop()
	for p.writer.IsRenderInProgress() {
		time.Sleep(10 * time.Millisecond)
	}
}
