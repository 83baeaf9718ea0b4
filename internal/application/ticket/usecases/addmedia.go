package usecases

import (
	"context"
	"net/url"
	"time"

	"fieldops/internal/domain/shared/events"
	"fieldops/internal/domain/ticket"
	"fieldops/internal/shared/authorization"
	"fieldops/internal/shared/errors"
	"fieldops/internal/shared/logger"
)

type AddMediaCommand struct {
	TicketID       uint
	MediaURL       string
	UploadedBy     uint
	UploadedByName string
	Role           authorization.UserRole
}

type AddMediaResult struct {
	TicketID  uint
	MediaURLs []string
	UpdatedAt time.Time
}

type AddMediaUseCase struct {
	ticketRepo   ticket.TicketRepository
	activityRepo ticket.ActivityRepository
	txManager    TransactionManager
	publisher    events.EventPublisher
	logger       logger.Interface
}

func NewAddMediaUseCase(
	ticketRepo ticket.TicketRepository,
	activityRepo ticket.ActivityRepository,
	txManager TransactionManager,
	publisher events.EventPublisher,
	logger logger.Interface,
) *AddMediaUseCase {
	return &AddMediaUseCase{
		ticketRepo:   ticketRepo,
		activityRepo: activityRepo,
		txManager:    txManager,
		publisher:    publisher,
		logger:       logger,
	}
}

func (uc *AddMediaUseCase) Execute(ctx context.Context, cmd AddMediaCommand) (*AddMediaResult, error) {
	uc.logger.Infow("executing add media use case", "ticket_id", cmd.TicketID, "uploaded_by", cmd.UploadedBy)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if cmd.UploadedBy == 0 {
		return nil, errors.NewValidationError("uploaded by user ID is required")
	}
	parsed, err := url.Parse(cmd.MediaURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, errors.NewValidationError("media URL must be absolute")
	}

	tk, err := uc.ticketRepo.FindByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, err
	}
	if tk == nil || !tk.CanBeViewedBy(cmd.UploadedBy, cmd.Role) {
		return nil, errors.NewNotFoundError("ticket not found")
	}

	if err := tk.AddMediaURL(cmd.MediaURL); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	activity, err := ticket.NewMediaUploadActivity(tk.ID(), cmd.MediaURL, cmd.UploadedBy, cmd.UploadedByName)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Update(txCtx, tk); err != nil {
			return err
		}
		return uc.activityRepo.Save(txCtx, activity)
	})
	if err != nil {
		uc.logger.Errorw("failed to persist media upload", "error", err, "ticket_id", tk.ID())
		return nil, err
	}

	evt := ticket.NewMediaUploadedEvent(tk.ID(), cmd.MediaURL, cmd.UploadedBy, tk.UpdatedAt())
	if err := uc.publisher.Publish(evt); err != nil {
		uc.logger.Warnw("failed to publish media uploaded event", "error", err, "ticket_id", tk.ID())
	}

	return &AddMediaResult{
		TicketID:  tk.ID(),
		MediaURLs: tk.MediaURLs(),
		UpdatedAt: tk.UpdatedAt(),
	}, nil
}
