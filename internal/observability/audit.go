package observability

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

const auditEventVersion = 1

// AuditEvent is the structured record written for every credential or
// identity change. It never carries passwords, hashes or session ids.
type AuditEvent struct {
	EventVersion int    `json:"event_version"`
	EventName    string `json:"event_name"`
	ActorUserID  string `json:"actor_user_id"`
	Outcome      string `json:"outcome"`
	Reason       string `json:"reason"`
	TS           string `json:"ts"`
}

func (e AuditEvent) Validate() error {
	var errs []error
	if e.EventVersion <= 0 {
		errs = append(errs, errors.New("event_version is required"))
	}
	if e.EventName == "" {
		errs = append(errs, errors.New("event_name is required"))
	}
	if e.Outcome == "" {
		errs = append(errs, errors.New("outcome is required"))
	}
	if e.TS == "" {
		errs = append(errs, errors.New("ts is required"))
	}
	return errors.Join(errs...)
}

// Audit logs an event at info level through logger.
func Audit(ctx context.Context, logger *slog.Logger, name, actor, outcome, reason string) AuditEvent {
	ev := AuditEvent{
		EventVersion: auditEventVersion,
		EventName:    name,
		ActorUserID:  actor,
		Outcome:      outcome,
		Reason:       reason,
		TS:           time.Now().UTC().Format(time.RFC3339),
	}
	if logger == nil {
		logger = Logger()
	}
	logger.InfoContext(ctx, "audit",
		"event_version", ev.EventVersion,
		"event_name", ev.EventName,
		"actor_user_id", ev.ActorUserID,
		"outcome", ev.Outcome,
		"reason", ev.Reason,
	)
	return ev
}
