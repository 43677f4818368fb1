package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"go-teamdesk/internal/events"
	"go-teamdesk/internal/notification"

	"go.uber.org/zap"
)

// Notifier stores an in-app notification.
type Notifier interface {
	Notify(ctx context.Context, userID, title, message string) (notification.NotificationResponse, error)
}

// ContactLookup resolves the e-mail of a user; "" means none on file.
type ContactLookup interface {
	EmailOf(ctx context.Context, userID string) (string, error)
}

// LifecycleHandler turns leave and ticket lifecycle events into
// notifications for the people they concern.
type LifecycleHandler struct {
	notifier Notifier
	contacts ContactLookup
	mailer   notification.Mailer
	logger   *zap.Logger
}

func NewLifecycleHandler(notifier Notifier, contacts ContactLookup, mailer notification.Mailer, logger *zap.Logger) *LifecycleHandler {
	return &LifecycleHandler{
		notifier: notifier,
		contacts: contacts,
		mailer:   mailer,
		logger:   logger.Named("kafka.consumer.lifecycle"),
	}
}

type notice struct {
	recipient string
	title     string
	message   string
}

// Handle returns ErrUnknownEvent for event types it does not handle; such
// messages are safe to commit.
func (h *LifecycleHandler) Handle(ctx context.Context, payload []byte) error {
	eventType, err := events.PeekType(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	n, err := buildNotice(eventType, payload)
	if err != nil {
		return err
	}
	if n.recipient == "" {
		h.logger.Debug("event has no recipient", zap.String("event_type", eventType))
		return nil
	}

	if _, err := h.notifier.Notify(ctx, n.recipient, n.title, n.message); err != nil {
		return err
	}
	h.mail(ctx, n)
	return nil
}

// mail is best effort; a delivery failure never blocks the commit.
func (h *LifecycleHandler) mail(ctx context.Context, n notice) {
	if h.mailer == nil || h.contacts == nil {
		return
	}
	to, err := h.contacts.EmailOf(ctx, n.recipient)
	if err != nil {
		h.logger.Warn("lookup recipient email failed", zap.String("user_id", n.recipient), zap.Error(err))
		return
	}
	if to == "" {
		return
	}
	if err := h.mailer.Send(ctx, to, n.title, n.message); err != nil {
		h.logger.Warn("send notification mail failed", zap.String("user_id", n.recipient), zap.Error(err))
	}
}

func buildNotice(eventType string, payload []byte) (notice, error) {
	switch eventType {
	case events.LeaveApplied:
		var e events.LeaveAppliedEvent
		if err := json.Unmarshal(payload, &e); err != nil {
			return notice{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
		}
		return notice{
			recipient: e.LeaderID,
			title:     "New leave application",
			message:   fmt.Sprintf("%s applied for leave from %s to %s.", e.Applicant, e.StartDate, e.EndDate),
		}, nil

	case events.LeaveStatusChanged:
		var e events.LeaveStatusChangedEvent
		if err := json.Unmarshal(payload, &e); err != nil {
			return notice{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
		}
		return notice{
			recipient: e.ApplicantID,
			title:     "Leave " + e.StatusLabel,
			message:   fmt.Sprintf("Your leave from %s to %s was %s.", e.StartDate, e.EndDate, e.StatusLabel),
		}, nil

	case events.TicketRaised:
		var e events.TicketRaisedEvent
		if err := json.Unmarshal(payload, &e); err != nil {
			return notice{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
		}
		return notice{
			recipient: e.LeaderID,
			title:     "Ticket " + e.TicketNumber + " raised",
			message:   fmt.Sprintf("A %s ticket %s was raised for your team.", e.TicketType, e.TicketNumber),
		}, nil

	case events.TicketStatusChanged:
		var e events.TicketStatusChangedEvent
		if err := json.Unmarshal(payload, &e); err != nil {
			return notice{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
		}
		msg := fmt.Sprintf("Ticket %s is now %s.", e.TicketNumber, e.StatusLabel)
		if e.Comments != "" {
			msg += " Comments: " + e.Comments
		}
		return notice{
			recipient: e.RaisedBy,
			title:     "Ticket " + e.TicketNumber + " " + e.StatusLabel,
			message:   msg,
		}, nil
	}
	return notice{}, fmt.Errorf("%w: %q", ErrUnknownEvent, eventType)
}
