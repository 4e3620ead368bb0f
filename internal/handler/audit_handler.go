package handler

import (
	"net/http"

	"github.com/waynemwendwa/TMS-sub000/internal/middleware"
	"github.com/waynemwendwa/TMS-sub000/internal/model"
	"github.com/waynemwendwa/TMS-sub000/internal/service"
	"github.com/waynemwendwa/TMS-sub000/pkg/pagination"
	"github.com/waynemwendwa/TMS-sub000/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	// The audit trail is reserved for the chairman's office
	router.GET("/audit-logs", middleware.RequireRole(model.RoleChairman, model.RoleChairmanPA), h.ListAuditLogs)
}

// ListAuditLogs handles GET /audit-logs
// @Summary      List audit logs
// @Description  Retrieves the audit trail, newest first, optionally filtered by action
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        action  query     string  false  "Filter by action"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page (default 20)"
// @Success      200     {object}  response.Response{data=object}
// @Router       /audit-logs [get]
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	params := pagination.Parse(c)

	logs, total, err := h.auditService.List(c.Request.Context(), c.Query("action"), params.Page, params.Limit)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"logs":  logs,
		"total": total,
		"page":  params.Page,
		"limit": params.Limit,
	}))
}
