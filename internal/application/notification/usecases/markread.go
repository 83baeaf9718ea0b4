package usecases

import (
	"context"

	"fieldops/internal/domain/notification"
	"fieldops/internal/shared/errors"
	"fieldops/internal/shared/logger"
)

type MarkReadCommand struct {
	NotificationID uint
	UserID         uint
	// All marks every notification for the user instead of a single one.
	All bool
}

type MarkReadUseCase struct {
	repo   notification.NotificationRepository
	logger logger.Interface
}

func NewMarkReadUseCase(repo notification.NotificationRepository, log logger.Interface) *MarkReadUseCase {
	return &MarkReadUseCase{repo: repo, logger: log}
}

func (uc *MarkReadUseCase) Execute(ctx context.Context, cmd MarkReadCommand) error {
	if cmd.UserID == 0 {
		return errors.NewValidationError("user ID is required")
	}

	if cmd.All {
		if err := uc.repo.MarkAllAsRead(ctx, cmd.UserID); err != nil {
			uc.logger.Errorw("failed to mark all notifications read", "error", err, "user_id", cmd.UserID)
			return err
		}
		return nil
	}

	if cmd.NotificationID == 0 {
		return errors.NewValidationError("notification ID is required")
	}

	notif, err := uc.repo.FindByID(ctx, cmd.NotificationID)
	if err != nil {
		return err
	}
	if notif == nil || notif.UserID() != cmd.UserID {
		return errors.NewNotFoundError("notification not found")
	}

	notif.MarkAsRead()
	return uc.repo.Update(ctx, notif)
}
