package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldops/internal/application/user/usecases"
	"fieldops/internal/shared/authorization"
	"fieldops/internal/shared/constants"
	"fieldops/internal/shared/logger"
	"fieldops/internal/shared/utils"
)

type UserHandler struct {
	getProfile     *usecases.GetProfileUseCase
	listAssignable *usecases.ListAssignableUseCase
	logger         logger.Interface
}

func NewUserHandler(
	getProfile *usecases.GetProfileUseCase,
	listAssignable *usecases.ListAssignableUseCase,
	log logger.Interface,
) *UserHandler {
	return &UserHandler{
		getProfile:     getProfile,
		listAssignable: listAssignable,
		logger:         log.Named("user-handler"),
	}
}

// Me returns the caller's own profile.
func (h *UserHandler) Me(c *gin.Context) {
	raw, _ := c.Get(constants.ContextKeyUserID)
	userID, _ := raw.(uint)

	result, err := h.getProfile.Execute(c.Request.Context(), usecases.GetProfileQuery{UserID: userID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Assignable lists the active users tickets can be assigned to.
func (h *UserHandler) Assignable(c *gin.Context) {
	raw, _ := c.Get(constants.ContextKeyUserID)
	userID, _ := raw.(uint)
	role := authorization.UserRole(c.GetString(constants.ContextKeyUserRole))

	result, err := h.listAssignable.Execute(c.Request.Context(), usecases.ListAssignableQuery{
		RequestedBy: userID,
		Role:        role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"users": result})
}
