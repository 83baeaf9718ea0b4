package usecases

import (
	"context"

	"fieldops/internal/application/ticket/dto"
	"fieldops/internal/domain/user"
	"fieldops/internal/shared/errors"
	"fieldops/internal/shared/logger"
)

type GetProfileQuery struct {
	UserID uint
}

type GetProfileUseCase struct {
	profileRepo user.ProfileRepository
	logger      logger.Interface
}

func NewGetProfileUseCase(profileRepo user.ProfileRepository, log logger.Interface) *GetProfileUseCase {
	return &GetProfileUseCase{profileRepo: profileRepo, logger: log}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, query GetProfileQuery) (*dto.ProfileDTO, error) {
	if query.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	profile, err := uc.profileRepo.FindByID(ctx, query.UserID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, errors.NewNotFoundError("profile not found")
	}

	return dto.ToProfileDTO(profile), nil
}
