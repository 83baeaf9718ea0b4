package usecases

import (
	"context"
	"fmt"

	"fieldops/internal/domain/notification"
	vo "fieldops/internal/domain/notification/valueobjects"
	"fieldops/internal/domain/shared/events"
	"fieldops/internal/domain/ticket"
	"fieldops/internal/shared/logger"
)

// CriticalAlertSender delivers out-of-band alerts for critical tickets.
// Implemented by the SMTP mailer; a no-op implementation is used when email
// is disabled.
type CriticalAlertSender interface {
	SendCriticalTicketAlert(ctx context.Context, ticketID uint, number, title string) error
}

// TicketEventNotifier turns ticket domain events into per-recipient in-app
// notifications. It runs as an event handler on the in-process dispatcher,
// so notification failures never fail the originating operation.
type TicketEventNotifier struct {
	notificationRepo notification.NotificationRepository
	ticketRepo       ticket.TicketRepository
	alerts           CriticalAlertSender
	logger           logger.Interface
}

func NewTicketEventNotifier(
	notificationRepo notification.NotificationRepository,
	ticketRepo ticket.TicketRepository,
	alerts CriticalAlertSender,
	log logger.Interface,
) *TicketEventNotifier {
	return &TicketEventNotifier{
		notificationRepo: notificationRepo,
		ticketRepo:       ticketRepo,
		alerts:           alerts,
		logger:           log.Named("ticket-event-notifier"),
	}
}

func (n *TicketEventNotifier) CanHandle(eventType string) bool {
	switch eventType {
	case ticket.EventTypeTicketCreated,
		ticket.EventTypeTicketAssigned,
		ticket.EventTypeTicketStatusChanged,
		ticket.EventTypeCommentAdded:
		return true
	}
	return false
}

func (n *TicketEventNotifier) Handle(event events.DomainEvent) error {
	ctx := context.Background()

	switch e := event.(type) {
	case ticket.TicketCreatedEvent:
		return n.handleCreated(ctx, e)
	case ticket.TicketAssignedEvent:
		return n.handleAssigned(ctx, e)
	case ticket.TicketStatusChangedEvent:
		return n.handleStatusChanged(ctx, e)
	case ticket.CommentAddedEvent:
		return n.handleCommentAdded(ctx, e)
	}
	return nil
}

func (n *TicketEventNotifier) handleCreated(ctx context.Context, e ticket.TicketCreatedEvent) error {
	if e.Priority != "critical" {
		return nil
	}
	if err := n.alerts.SendCriticalTicketAlert(ctx, e.TicketID, e.Number, e.Title); err != nil {
		n.logger.Errorw("failed to send critical ticket alert", "error", err, "ticket_id", e.TicketID)
	}
	return nil
}

func (n *TicketEventNotifier) handleAssigned(ctx context.Context, e ticket.TicketAssignedEvent) error {
	if e.AssigneeID == e.AssignedBy {
		return nil
	}
	return n.deliver(ctx, e.AssigneeID, vo.TypeTicketAssigned,
		"New ticket assignment",
		fmt.Sprintf("You have been assigned ticket #%d", e.TicketID),
		e.TicketID,
	)
}

func (n *TicketEventNotifier) handleStatusChanged(ctx context.Context, e ticket.TicketStatusChangedEvent) error {
	tk, err := n.ticketRepo.FindByID(ctx, e.TicketID)
	if err != nil || tk == nil {
		return err
	}
	if tk.CreatorID() == e.ChangedBy {
		return nil
	}
	return n.deliver(ctx, tk.CreatorID(), vo.TypeTicketStatusChanged,
		"Ticket status changed",
		fmt.Sprintf("Ticket %s moved from %s to %s", tk.Number(), e.OldStatus, e.NewStatus),
		e.TicketID,
	)
}

func (n *TicketEventNotifier) handleCommentAdded(ctx context.Context, e ticket.CommentAddedEvent) error {
	tk, err := n.ticketRepo.FindByID(ctx, e.TicketID)
	if err != nil || tk == nil {
		return err
	}

	recipients := make(map[uint]struct{})
	if tk.CreatorID() != e.AuthorID {
		recipients[tk.CreatorID()] = struct{}{}
	}
	if tk.AssigneeID() != nil && *tk.AssigneeID() != e.AuthorID {
		recipients[*tk.AssigneeID()] = struct{}{}
	}

	for userID := range recipients {
		if err := n.deliver(ctx, userID, vo.TypeTicketCommented,
			"New comment",
			fmt.Sprintf("New comment on ticket %s", tk.Number()),
			e.TicketID,
		); err != nil {
			n.logger.Errorw("failed to deliver comment notification", "error", err, "user_id", userID)
		}
	}
	return nil
}

func (n *TicketEventNotifier) deliver(ctx context.Context, userID uint, notifType vo.NotificationType, title, content string, ticketID uint) error {
	notif, err := notification.NewNotification(userID, notifType, title, content, &ticketID)
	if err != nil {
		return err
	}
	return n.notificationRepo.Save(ctx, notif)
}
