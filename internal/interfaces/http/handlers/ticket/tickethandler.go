package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldops/internal/application/ticket/usecases"
	"fieldops/internal/shared/authorization"
	"fieldops/internal/shared/constants"
	"fieldops/internal/shared/errors"
	"fieldops/internal/shared/logger"
	"fieldops/internal/shared/utils"
)

type TicketHandler struct {
	createTicket  usecases.CreateTicketExecutor
	updateTicket  usecases.UpdateTicketExecutor
	changeStatus  usecases.ChangeStatusExecutor
	assignTicket  usecases.AssignTicketExecutor
	addComment    usecases.AddCommentExecutor
	addMedia      usecases.AddMediaExecutor
	deleteTicket  usecases.DeleteTicketExecutor
	getTicket     usecases.GetTicketExecutor
	getActivities usecases.GetTicketActivitiesExecutor
	listTickets   usecases.ListTicketsExecutor
	getStats      usecases.GetTicketStatsExecutor
	logger        logger.Interface
}

func NewTicketHandler(
	createTicket usecases.CreateTicketExecutor,
	updateTicket usecases.UpdateTicketExecutor,
	changeStatus usecases.ChangeStatusExecutor,
	assignTicket usecases.AssignTicketExecutor,
	addComment usecases.AddCommentExecutor,
	addMedia usecases.AddMediaExecutor,
	deleteTicket usecases.DeleteTicketExecutor,
	getTicket usecases.GetTicketExecutor,
	getActivities usecases.GetTicketActivitiesExecutor,
	listTickets usecases.ListTicketsExecutor,
	getStats usecases.GetTicketStatsExecutor,
	log logger.Interface,
) *TicketHandler {
	return &TicketHandler{
		createTicket:  createTicket,
		updateTicket:  updateTicket,
		changeStatus:  changeStatus,
		assignTicket:  assignTicket,
		addComment:    addComment,
		addMedia:      addMedia,
		deleteTicket:  deleteTicket,
		getTicket:     getTicket,
		getActivities: getActivities,
		listTickets:   listTickets,
		getStats:      getStats,
		logger:        log.Named("ticket-handler"),
	}
}

// currentUser reads the caller's identity set by the auth middleware.
func currentUser(c *gin.Context) (uint, string, authorization.UserRole) {
	raw, _ := c.Get(constants.ContextKeyUserID)
	userID, _ := raw.(uint)
	name := c.GetString(constants.ContextKeyUserName)
	role := authorization.UserRole(c.GetString(constants.ContextKeyUserRole))
	return userID, name, role
}

func (h *TicketHandler) Create(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	userID, userName, _ := currentUser(c)

	result, err := h.createTicket.Execute(c.Request.Context(), req.ToCommand(userID, userName))
	if err != nil {
		h.logger.Errorw("failed to create ticket", "error", err, "user_id", userID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "ticket created")
}

func (h *TicketHandler) Get(c *gin.Context) {
	ticketID, err := utils.ParseIDParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	userID, _, role := currentUser(c)

	result, err := h.getTicket.Execute(c.Request.Context(), usecases.GetTicketQuery{
		TicketID: ticketID,
		UserID:   userID,
		Role:     role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *TicketHandler) Activities(c *gin.Context) {
	ticketID, err := utils.ParseIDParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	userID, _, role := currentUser(c)

	result, err := h.getActivities.Execute(c.Request.Context(), usecases.GetTicketActivitiesQuery{
		TicketID: ticketID,
		UserID:   userID,
		Role:     role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"activities": result})
}

func (h *TicketHandler) List(c *gin.Context) {
	var req ListTicketsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid query parameters", err.Error()))
		return
	}

	userID, _, role := currentUser(c)

	result, err := h.listTickets.Execute(c.Request.Context(), req.ToQuery(userID, role))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tickets, result.Total, result.Page, result.PageSize)
}

func (h *TicketHandler) Update(c *gin.Context) {
	ticketID, err := utils.ParseIDParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	userID, userName, role := currentUser(c)

	result, err := h.updateTicket.Execute(c.Request.Context(), req.ToCommand(ticketID, userID, userName, role))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "ticket updated", result)
}

func (h *TicketHandler) Delete(c *gin.Context) {
	ticketID, err := utils.ParseIDParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	userID, _, role := currentUser(c)

	result, err := h.deleteTicket.Execute(c.Request.Context(), usecases.DeleteTicketCommand{
		TicketID:  ticketID,
		DeletedBy: userID,
		Role:      role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if result.AlreadyAbsent {
		utils.SuccessResponseWithWarning(c, result, "ticket was already deleted")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "ticket deleted", result)
}

func (h *TicketHandler) ChangeStatus(c *gin.Context) {
	ticketID, err := utils.ParseIDParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	userID, userName, role := currentUser(c)

	result, err := h.changeStatus.Execute(c.Request.Context(), req.ToCommand(ticketID, userID, userName, role))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "ticket status changed", result)
}

func (h *TicketHandler) Assign(c *gin.Context) {
	ticketID, err := utils.ParseIDParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AssignTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	userID, userName, role := currentUser(c)

	result, err := h.assignTicket.Execute(c.Request.Context(), req.ToCommand(ticketID, userID, userName, role))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "ticket assignment updated", result)
}

func (h *TicketHandler) AddComment(c *gin.Context) {
	ticketID, err := utils.ParseIDParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	userID, userName, role := currentUser(c)

	result, err := h.addComment.Execute(c.Request.Context(), req.ToCommand(ticketID, userID, userName, role))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "comment added")
}

func (h *TicketHandler) AddMedia(c *gin.Context) {
	ticketID, err := utils.ParseIDParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AddMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	userID, userName, role := currentUser(c)

	result, err := h.addMedia.Execute(c.Request.Context(), req.ToCommand(ticketID, userID, userName, role))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "media attached", result)
}

func (h *TicketHandler) Stats(c *gin.Context) {
	userID, _, role := currentUser(c)

	result, err := h.getStats.Execute(c.Request.Context(), usecases.GetTicketStatsQuery{
		UserID: userID,
		Role:   role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
