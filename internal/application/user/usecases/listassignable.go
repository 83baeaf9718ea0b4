package usecases

import (
	"context"

	"fieldops/internal/application/ticket/dto"
	"fieldops/internal/domain/user"
	"fieldops/internal/shared/authorization"
	"fieldops/internal/shared/errors"
	"fieldops/internal/shared/logger"
)

type ListAssignableQuery struct {
	RequestedBy uint
	Role        authorization.UserRole
}

// ListAssignableUseCase returns the active users that tickets can be
// assigned to, for the assignment picker.
type ListAssignableUseCase struct {
	profileRepo user.ProfileRepository
	logger      logger.Interface
}

func NewListAssignableUseCase(profileRepo user.ProfileRepository, log logger.Interface) *ListAssignableUseCase {
	return &ListAssignableUseCase{profileRepo: profileRepo, logger: log}
}

func (uc *ListAssignableUseCase) Execute(ctx context.Context, query ListAssignableQuery) ([]*dto.ProfileDTO, error) {
	if query.RequestedBy == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}
	if !query.Role.CanAssignTickets() {
		return nil, errors.NewForbiddenError("only supervisors and admins can list assignable users")
	}

	profiles, err := uc.profileRepo.ListAssignable(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list assignable profiles", "error", err)
		return nil, err
	}

	dtos := make([]*dto.ProfileDTO, 0, len(profiles))
	for _, p := range profiles {
		dtos = append(dtos, dto.ToProfileDTO(p))
	}
	return dtos, nil
}
