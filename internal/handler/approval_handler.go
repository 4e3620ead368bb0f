package handler

import (
	"net/http"

	"github.com/waynemwendwa/TMS-sub000/internal/middleware"
	"github.com/waynemwendwa/TMS-sub000/internal/model"
	"github.com/waynemwendwa/TMS-sub000/internal/service"
	"github.com/waynemwendwa/TMS-sub000/pkg/response"

	"github.com/gin-gonic/gin"
)

type ApprovalHandler struct {
	approvalService service.ApprovalService
}

func NewApprovalHandler(approvalService service.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{approvalService: approvalService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *ApprovalHandler) RegisterRoutes(router *gin.RouterGroup) {
	approvals := router.Group("/approvals", middleware.RequireRole(model.AllRoles...))
	{
		approvals.POST("", h.CreateApproval)
		approvals.GET("", h.ListApprovals)
		approvals.GET("/:id", h.GetApproval)
		approvals.PATCH("/:id/status", h.DecideApproval)
		approvals.GET("/notifications/unread", h.UnreadNotifications)
		approvals.PATCH("/notifications/read-all", h.MarkAllNotificationsRead)
		approvals.PATCH("/notifications/:id/read", h.MarkNotificationRead)
	}
}

// CreateApproval handles POST /approvals
// @Summary      Create approval request
// @Description  Procurement raises an approval request, optionally backed by an order template
// @Tags         approvals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateApprovalRequestInput  true  "Approval Request Payload"
// @Success      201      {object}  response.Response{data=model.ApprovalRequest}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /approvals [post]
func (h *ApprovalHandler) CreateApproval(c *gin.Context) {
	userID, role := currentUser(c)

	var req service.CreateApprovalRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	approval, err := h.approvalService.Create(c.Request.Context(), userID, role, req)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, approval))
}

// ListApprovals handles GET /approvals
// @Summary      List approval requests
// @Description  Chairman sees every request; everyone else only their own
// @Tags         approvals
// @Produce      json
// @Security     BearerAuth
// @Param        status      query     string  false  "Filter by status"
// @Param        priority    query     string  false  "Filter by priority"
// @Param        project_id  query     string  false  "Filter by project"
// @Success      200         {object}  response.Response{data=[]model.ApprovalRequest}
// @Router       /approvals [get]
func (h *ApprovalHandler) ListApprovals(c *gin.Context) {
	userID, role := currentUser(c)

	filter := service.ApprovalListFilter{
		Status:    c.Query("status"),
		Priority:  c.Query("priority"),
		ProjectID: c.Query("project_id"),
	}

	approvals, err := h.approvalService.List(c.Request.Context(), userID, role, filter)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, approvals))
}

// GetApproval handles GET /approvals/:id
// @Summary      Get approval request
// @Description  Fetch one approval request with its template, requester and reviewer
// @Tags         approvals
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Approval Request ID"
// @Success      200  {object}  response.Response{data=model.ApprovalRequest}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /approvals/{id} [get]
func (h *ApprovalHandler) GetApproval(c *gin.Context) {
	userID, role := currentUser(c)

	approval, err := h.approvalService.Get(c.Request.Context(), userID, role, c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, approval))
}

// DecideApproval handles PATCH /approvals/:id/status
// @Summary      Decide approval request
// @Description  Chairman approves, rejects or parks a request under review
// @Tags         approvals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                       true  "Approval Request ID"
// @Param        payload  body      service.DecideApprovalInput  true  "Decision Payload"
// @Success      200      {object}  response.Response{data=model.ApprovalRequest}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /approvals/{id}/status [patch]
func (h *ApprovalHandler) DecideApproval(c *gin.Context) {
	userID, role := currentUser(c)

	var req service.DecideApprovalInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	approval, err := h.approvalService.Decide(c.Request.Context(), userID, role, c.Param("id"), req)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, approval))
}

// UnreadNotifications handles GET /approvals/notifications/unread
// @Summary      Unread notifications
// @Description  Lists the caller's unread approval notifications, newest first
// @Tags         approvals
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.ApprovalNotification}
// @Router       /approvals/notifications/unread [get]
func (h *ApprovalHandler) UnreadNotifications(c *gin.Context) {
	userID, _ := currentUser(c)

	notifs, err := h.approvalService.UnreadNotifications(c.Request.Context(), userID)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, notifs))
}

// MarkNotificationRead handles PATCH /approvals/notifications/:id/read
// @Summary      Mark notification read
// @Description  Marks one of the caller's notifications as read
// @Tags         approvals
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Notification ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /approvals/notifications/{id}/read [patch]
func (h *ApprovalHandler) MarkNotificationRead(c *gin.Context) {
	userID, _ := currentUser(c)

	if err := h.approvalService.MarkNotificationRead(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Notification marked as read"))
}

// MarkAllNotificationsRead handles PATCH /approvals/notifications/read-all
// @Summary      Mark all notifications read
// @Description  Marks every unread notification of the caller as read
// @Tags         approvals
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Router       /approvals/notifications/read-all [patch]
func (h *ApprovalHandler) MarkAllNotificationsRead(c *gin.Context) {
	userID, _ := currentUser(c)

	if err := h.approvalService.MarkAllNotificationsRead(c.Request.Context(), userID); err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "All notifications marked as read"))
}
