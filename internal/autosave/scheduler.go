// Package autosave debounces persistence of the weekly plan. Every edit
// re-arms a fixed delay; only the last edit within the window triggers a
// write. Save status is reported through callbacks so the UI layer can show
// saving/success/error without the engine knowing about rendering.
package autosave

import (
	"context"
	"sync"
	"time"

	"menuplan-admin/internal/plan"
)

// DefaultDelay is the debounce window used when none is configured.
const DefaultDelay = 1500 * time.Millisecond

// Saver persists a plan. The plan carries its own (year, week) identity.
type Saver interface {
	SavePlan(ctx context.Context, p *plan.Plan) error
}

// SnapshotSource builds a facility snapshot from the current master data.
// Consulted only when the pending plan carries no snapshot yet.
type SnapshotSource interface {
	BuildSnapshot() *plan.Snapshot
}

// Callbacks report save progress. Any field may be nil.
type Callbacks struct {
	// OnSaving fires when the debounce window elapses and the write begins.
	OnSaving func()
	// OnSuccess fires when the write completed.
	OnSuccess func()
	// OnError fires once per failed write. There is no automatic retry;
	// the next edit re-arms the debounce and tries again.
	OnError func(error)
	// OnSnapshot fires when a snapshot was built and attached to the plan
	// being written, so the canonical plan can adopt it.
	OnSnapshot func(*plan.Snapshot)
}

// Scheduler holds its own timer and the latest pending plan. A newer
// Schedule call supersedes a pending (not yet fired) one; an in-flight write
// cannot be cancelled. Writes carry no sequence numbers: if the transport
// reorders responses, a slow earlier write can land after a faster later one.
type Scheduler struct {
	saver     Saver
	snapshots SnapshotSource
	cb        Callbacks
	delay     time.Duration
	updatedBy string

	mu      sync.Mutex
	timer   *time.Timer
	pending *plan.Plan
}

// NewScheduler creates a scheduler. A non-positive delay falls back to
// DefaultDelay.
func NewScheduler(saver Saver, snapshots SnapshotSource, delay time.Duration, updatedBy string, cb Callbacks) *Scheduler {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Scheduler{
		saver:     saver,
		snapshots: snapshots,
		cb:        cb,
		delay:     delay,
		updatedBy: updatedBy,
	}
}

// Schedule records p as the plan to persist and (re)arms the debounce timer.
func (s *Scheduler) Schedule(p *plan.Plan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = p.Clone()
	if s.timer == nil {
		s.timer = time.AfterFunc(s.delay, s.fire)
	} else {
		s.timer.Reset(s.delay)
	}
}

// Flush writes any pending plan immediately, bypassing the remaining delay.
func (s *Scheduler) Flush() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Unlock()
	s.fire()
}

// Stop cancels a pending save without writing. In-flight writes finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.pending = nil
}

func (s *Scheduler) fire() {
	s.mu.Lock()
	p := s.pending
	s.pending = nil
	s.mu.Unlock()
	if p == nil {
		return
	}

	if p.Snapshot == nil && s.snapshots != nil {
		snap := s.snapshots.BuildSnapshot()
		p.Snapshot = snap
		if s.cb.OnSnapshot != nil {
			s.cb.OnSnapshot(snap)
		}
	}
	p.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	p.UpdatedBy = s.updatedBy

	if s.cb.OnSaving != nil {
		s.cb.OnSaving()
	}
	if err := s.saver.SavePlan(context.Background(), p); err != nil {
		if s.cb.OnError != nil {
			s.cb.OnError(err)
		}
		return
	}
	if s.cb.OnSuccess != nil {
		s.cb.OnSuccess()
	}
}
