// Package packet models the controller-facing protocol surface the
// grading core feeds: per-case status messages and a batching dispatcher.
// The TLS bridge and wire framing that actually ships these over the
// network are external collaborators and are not implemented here.
package packet

import (
	"context"
	"time"

	"github.com/vuthanhtrung2010/judge-server/core/grading"
)

// TestCaseStatus is the per-case message sent upstream once a case has been
// fully judged.
type TestCaseStatus struct {
	SubmissionID int64
	CaseNumber   int
	BatchNumber  int
	Result       *grading.Result
}

// SubmissionTerminated reports the submission-level outcome once every case
// (or a short circuit) has run.
type SubmissionTerminated struct {
	SubmissionID int64
	Aborted      bool
}

// Dispatcher batches outgoing case-status updates on a fixed interval
// rather than sending one packet per finished case: a ticker periodically
// drains a bounded channel and hands the accumulated batch to Send.
type Dispatcher struct {
	Interval time.Duration
	Send     func(batch []TestCaseStatus)

	queue chan TestCaseStatus
}

// NewDispatcher creates a Dispatcher with the given queue depth and flush
// interval. A full queue applies backpressure to Enqueue instead of
// dropping updates.
func NewDispatcher(interval time.Duration, queueDepth int, send func(batch []TestCaseStatus)) *Dispatcher {
	return &Dispatcher{
		Interval: interval,
		Send:     send,
		queue:    make(chan TestCaseStatus, queueDepth),
	}
}

// Enqueue blocks until there is room in the dispatcher's queue or ctx ends.
func (d *Dispatcher) Enqueue(ctx context.Context, status TestCaseStatus) error {
	select {
	case d.queue <- status:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run drains the queue on d.Interval until ctx is cancelled, flushing
// whatever has accumulated on each tick and once more on exit.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.Interval)
	defer ticker.Stop()

	var batch []TestCaseStatus
	flush := func() {
		if len(batch) == 0 {
			return
		}
		d.Send(batch)
		batch = nil
	}

	for {
		select {
		case status := <-d.queue:
			batch = append(batch, status)
		case <-ticker.C:
			flush()
		case <-ctx.Done():
			flush()
			return
		}
	}
}
