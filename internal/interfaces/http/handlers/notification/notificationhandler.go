package notification

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldops/internal/application/notification/usecases"
	"fieldops/internal/shared/constants"
	"fieldops/internal/shared/errors"
	"fieldops/internal/shared/logger"
	"fieldops/internal/shared/utils"
)

type NotificationHandler struct {
	listNotifications *usecases.ListNotificationsUseCase
	markRead          *usecases.MarkReadUseCase
	logger            logger.Interface
}

func NewNotificationHandler(
	listNotifications *usecases.ListNotificationsUseCase,
	markRead *usecases.MarkReadUseCase,
	log logger.Interface,
) *NotificationHandler {
	return &NotificationHandler{
		listNotifications: listNotifications,
		markRead:          markRead,
		logger:            log.Named("notification-handler"),
	}
}

func currentUserID(c *gin.Context) uint {
	raw, _ := c.Get(constants.ContextKeyUserID)
	userID, _ := raw.(uint)
	return userID
}

func (h *NotificationHandler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	result, err := h.listNotifications.Execute(c.Request.Context(), usecases.ListNotificationsQuery{
		UserID:   currentUserID(c),
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"notifications": result.Notifications,
		"total":         result.Total,
		"unread_count":  result.UnreadCount,
		"page":          result.Page,
		"page_size":     result.PageSize,
	})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notificationID, err := utils.ParseIDParam(c, "id", "notification")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	err = h.markRead.Execute(c.Request.Context(), usecases.MarkReadCommand{
		NotificationID: notificationID,
		UserID:         currentUserID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "notification marked as read", nil)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := currentUserID(c)
	if userID == 0 {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return
	}

	err := h.markRead.Execute(c.Request.Context(), usecases.MarkReadCommand{
		UserID: userID,
		All:    true,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "all notifications marked as read", nil)
}
