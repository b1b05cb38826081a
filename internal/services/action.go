package services

import (
	"context"
	"fmt"
	"log"
	"time"
)

// ActionTracker drives the per-session idle -> busy -> idle cycle of one action.
type ActionTracker interface {
	Run(ctx context.Context, sessionID string, action Action, fn func(ctx context.Context) error) error
}

type actionTracker struct {
	lock      ActionLock
	publisher EventPublisher
	now       func() time.Time
}

func NewActionTracker(lock ActionLock, publisher EventPublisher) ActionTracker {
	if publisher == nil {
		publisher = NewNoopPublisher()
	}
	return &actionTracker{lock: lock, publisher: publisher, now: time.Now}
}

// Run executes fn under the session's busy flag for action. Calls without a
// session id run unguarded and emit no events.
func (t *actionTracker) Run(ctx context.Context, sessionID string, action Action, fn func(ctx context.Context) error) error {
	if sessionID == "" {
		return fn(ctx)
	}

	release, err := t.lock.Acquire(ctx, fmt.Sprintf("%s:%s", sessionID, lockScope(action)))
	if err != nil {
		return err
	}
	defer release()

	t.publish(ctx, sessionID, action, busyStatus(action), "")

	if err := fn(ctx); err != nil {
		t.publish(ctx, sessionID, action, StatusFailed, err.Error())
		return err
	}

	t.publish(ctx, sessionID, action, StatusIdle, "")
	return nil
}

func (t *actionTracker) publish(ctx context.Context, sessionID string, action Action, status ActionStatus, message string) {
	err := t.publisher.Publish(ctx, ActionEvent{
		SessionID: sessionID,
		Action:    action,
		Status:    status,
		Message:   message,
		Timestamp: t.now().UTC(),
	})
	if err != nil {
		log.Printf("⚠️  Failed to publish %s event for session %s: %v\n", status, sessionID, err)
	}
}
