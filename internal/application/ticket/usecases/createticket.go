package usecases

import (
	"context"
	"time"

	"fieldops/internal/domain/shared/events"
	"fieldops/internal/domain/ticket"
	vo "fieldops/internal/domain/ticket/valueobjects"
	"fieldops/internal/shared/errors"
	"fieldops/internal/shared/logger"
)

type CreateTicketCommand struct {
	Title          string
	Description    string
	Type           string
	Priority       string
	Location       string
	Latitude       *float64
	Longitude      *float64
	EquipmentID    string
	EquipmentName  string
	DueDate        *time.Time
	EstimatedHours *float64
	CreatorID      uint
	CreatorName    string
}

type CreateTicketResult struct {
	TicketID  uint
	Number    string
	Status    string
	CreatedAt time.Time
}

type CreateTicketUseCase struct {
	ticketRepo   ticket.TicketRepository
	activityRepo ticket.ActivityRepository
	numberGen    ticket.NumberGenerator
	txManager    TransactionManager
	publisher    events.EventPublisher
	logger       logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	activityRepo ticket.ActivityRepository,
	numberGen ticket.NumberGenerator,
	txManager TransactionManager,
	publisher events.EventPublisher,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo:   ticketRepo,
		activityRepo: activityRepo,
		numberGen:    numberGen,
		txManager:    txManager,
		publisher:    publisher,
		logger:       logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error) {
	uc.logger.Infow("executing create ticket use case", "title", cmd.Title, "creator_id", cmd.CreatorID)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid create ticket command", "error", err)
		return nil, err
	}

	ticketType := vo.TicketType(cmd.Type)
	priority := vo.Priority(cmd.Priority)
	if cmd.Priority == "" {
		priority = vo.PriorityMedium
	}

	newTicket, err := ticket.NewTicket(
		cmd.Title,
		cmd.Description,
		ticketType,
		priority,
		cmd.Location,
		cmd.CreatorID,
	)
	if err != nil {
		uc.logger.Errorw("failed to create ticket entity", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	if cmd.Latitude != nil && cmd.Longitude != nil {
		if err := newTicket.SetCoordinates(*cmd.Latitude, *cmd.Longitude); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if cmd.EquipmentID != "" || cmd.EquipmentName != "" {
		newTicket.SetEquipment(cmd.EquipmentID, cmd.EquipmentName)
	}
	if cmd.DueDate != nil {
		newTicket.SetDueDate(*cmd.DueDate)
	}
	if cmd.EstimatedHours != nil {
		if err := newTicket.SetEstimatedHours(*cmd.EstimatedHours); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	number, err := uc.generateUniqueNumber(ctx)
	if err != nil {
		return nil, err
	}
	if err := newTicket.SetNumber(number); err != nil {
		return nil, errors.NewInternalError("failed to set ticket number", err.Error())
	}

	// The opening audit entry rides in the same transaction as the ticket
	// row, so a trail always starts with "ticket created".
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Save(txCtx, newTicket); err != nil {
			return err
		}
		opening, err := ticket.NewComment(newTicket.ID(), "ticket created", cmd.CreatorID, cmd.CreatorName)
		if err != nil {
			return errors.NewInternalError("failed to build creation activity", err.Error())
		}
		return uc.activityRepo.Save(txCtx, opening)
	})
	if err != nil {
		uc.logger.Errorw("failed to save ticket", "error", err)
		return nil, err
	}

	evt := ticket.NewTicketCreatedEvent(
		newTicket.ID(),
		newTicket.Number(),
		newTicket.Title(),
		newTicket.Priority().String(),
		newTicket.CreatorID(),
		newTicket.CreatedAt(),
	)
	if err := uc.publisher.Publish(evt); err != nil {
		uc.logger.Warnw("failed to publish ticket created event", "error", err, "ticket_id", newTicket.ID())
	}

	uc.logger.Infow("ticket created successfully", "ticket_id", newTicket.ID(), "number", newTicket.Number())

	return &CreateTicketResult{
		TicketID:  newTicket.ID(),
		Number:    newTicket.Number(),
		Status:    newTicket.Status().String(),
		CreatedAt: newTicket.CreatedAt(),
	}, nil
}

func (uc *CreateTicketUseCase) generateUniqueNumber(ctx context.Context) (string, error) {
	const maxAttempts = 5
	for i := 0; i < maxAttempts; i++ {
		number, err := uc.numberGen.Generate(ctx)
		if err != nil {
			return "", errors.NewInternalError("failed to generate ticket number", err.Error())
		}
		exists, err := uc.ticketRepo.ExistsByNumber(ctx, number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}
	return "", errors.NewInternalError("exhausted attempts to generate a unique ticket number")
}

func (uc *CreateTicketUseCase) validateCommand(cmd CreateTicketCommand) error {
	if len(cmd.Title) == 0 {
		return errors.NewValidationError("title is required")
	}
	if len(cmd.Title) > 200 {
		return errors.NewValidationError("title exceeds maximum length of 200 characters")
	}
	if len(cmd.Description) > 5000 {
		return errors.NewValidationError("description exceeds maximum length of 5000 characters")
	}
	if len(cmd.Location) == 0 {
		return errors.NewValidationError("location is required")
	}
	if cmd.CreatorID == 0 {
		return errors.NewValidationError("creator ID is required")
	}

	if !vo.TicketType(cmd.Type).IsValid() {
		return errors.NewValidationError("invalid ticket type")
	}
	if cmd.Priority != "" && !vo.Priority(cmd.Priority).IsValid() {
		return errors.NewValidationError("invalid priority")
	}
	if (cmd.Latitude == nil) != (cmd.Longitude == nil) {
		return errors.NewValidationError("latitude and longitude must be provided together")
	}

	return nil
}
