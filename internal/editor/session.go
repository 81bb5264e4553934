// Package editor wires the plan store, the drag/drop resolver and the
// autosave scheduler into one editing session: every successful store
// mutation re-arms the debounced save.
package editor

import (
	"menuplan-admin/internal/autosave"
	"menuplan-admin/internal/dragdrop"
	"menuplan-admin/internal/plan"
)

// Session is one open week in the editor.
type Session struct {
	Store    *plan.Store
	Resolver *dragdrop.Resolver
	Autosave *autosave.Scheduler
}

// NewSession connects the store's change notifications to the scheduler and
// returns the assembled session.
func NewSession(store *plan.Store, sched *autosave.Scheduler) *Session {
	store.Subscribe(sched.Schedule)
	return &Session{
		Store:    store,
		Resolver: dragdrop.NewResolver(store),
		Autosave: sched,
	}
}

// Close flushes any pending save and releases the scheduler.
func (s *Session) Close() {
	s.Autosave.Flush()
	s.Autosave.Stop()
}
