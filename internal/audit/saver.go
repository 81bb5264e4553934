package audit

import (
	"context"
	"log"
	"time"

	"menuplan-admin/internal/autosave"
	"menuplan-admin/internal/plan"
)

// RecordingSaver decorates a Saver with audit logging. Log failures are
// warnings, never save failures.
type RecordingSaver struct {
	Inner autosave.Saver
	Log   *Store
}

var _ autosave.Saver = (*RecordingSaver)(nil)

// SavePlan delegates to the inner saver and records the attempt.
func (r *RecordingSaver) SavePlan(ctx context.Context, p *plan.Plan) error {
	start := time.Now()
	err := r.Inner.SavePlan(ctx, p)

	entry := Entry{
		Year:      p.Year,
		Week:      p.Week,
		UpdatedBy: p.UpdatedBy,
		LatencyMS: time.Since(start).Milliseconds(),
		OK:        err == nil,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	if logErr := r.Log.Record(ctx, entry); logErr != nil {
		log.Printf("Warning: failed to record save log entry: %v", logErr)
	}
	return err
}
