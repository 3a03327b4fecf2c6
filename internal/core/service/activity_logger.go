package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/capsule/retail-inventory/internal/api/metrics"
	"github.com/capsule/retail-inventory/internal/core/domain"
	"github.com/capsule/retail-inventory/internal/core/ports"
)

// ActivityLogger writes activity records synchronously and swallows every
// failure, so a broken audit trail can never fail the operation being audited.
type ActivityLogger struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityLogger returns a best-effort ActivityRecorder backed by repo.
func NewActivityLogger(repo ports.ActivityRepository, log zerolog.Logger) *ActivityLogger {
	return &ActivityLogger{
		repo: repo,
		log:  log,
	}
}

// Record appends rec and, for inventory activity, the matching inventory log row.
func (l *ActivityLogger) Record(ctx context.Context, rec domain.ActivityRecord) {
	defer func() {
		if r := recover(); r != nil {
			metrics.ActivityRecordsTotal.WithLabelValues(string(rec.Type), "failed").Inc()
			l.log.Error().Interface("panic", r).Str("type", string(rec.Type)).Msg("activity write panicked")
		}
	}()

	if err := l.repo.Append(ctx, rec); err != nil {
		metrics.ActivityRecordsTotal.WithLabelValues(string(rec.Type), "failed").Inc()
		l.log.Error().Err(err).
			Int64("user_id", rec.UserID).
			Str("type", string(rec.Type)).
			Msg("error logging activity")
	} else {
		metrics.ActivityRecordsTotal.WithLabelValues(string(rec.Type), "written").Inc()
	}

	action := rec.Type.InventoryAction()
	if action == "" || rec.InventoryID == nil {
		return
	}
	if err := l.repo.AppendInventoryLog(ctx, rec.UserID, *rec.InventoryID, action); err != nil {
		l.log.Error().Err(err).
			Int64("user_id", rec.UserID).
			Int64("inventory_id", *rec.InventoryID).
			Msg("error logging inventory change")
	}
}
