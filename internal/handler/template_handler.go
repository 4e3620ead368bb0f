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

type TemplateHandler struct {
	templateService service.TemplateService
}

func NewTemplateHandler(templateService service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *TemplateHandler) RegisterRoutes(router *gin.RouterGroup) {
	procurement := []string{model.RoleProcurement, model.RoleFinanceProcurement, model.RoleChairman, model.RoleChairmanPA}

	templates := router.Group("/templates")
	{
		templates.GET("", middleware.RequireRole(model.AllRoles...), h.ListTemplates)
		templates.GET("/:id", middleware.RequireRole(model.AllRoles...), h.GetTemplate)
		templates.POST("", middleware.RequireRole(procurement...), h.CreateTemplate)
		templates.DELETE("/:id", middleware.RequireRole(procurement...), h.DeleteTemplate)
	}
}

// CreateTemplate handles POST /templates
// @Summary      Create order template
// @Description  Records a reusable list of items; approval requests derive their total from it
// @Tags         templates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateTemplateInput  true  "Template Payload"
// @Success      201      {object}  response.Response{data=model.OrderTemplate}
// @Failure      400      {object}  response.Response
// @Router       /templates [post]
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	userID, _ := currentUser(c)

	var req service.CreateTemplateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	template, err := h.templateService.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, template))
}

// ListTemplates handles GET /templates
// @Summary      List order templates
// @Tags         templates
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Router       /templates [get]
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	params := pagination.Parse(c)

	templates, total, err := h.templateService.List(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"templates": templates,
		"total":     total,
		"page":      params.Page,
		"limit":     params.Limit,
	}))
}

// GetTemplate handles GET /templates/:id
// @Summary      Get order template
// @Tags         templates
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Template ID"
// @Success      200  {object}  response.Response{data=model.OrderTemplate}
// @Failure      404  {object}  response.Response
// @Router       /templates/{id} [get]
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	template, err := h.templateService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, template))
}

// DeleteTemplate handles DELETE /templates/:id
// @Summary      Delete order template
// @Tags         templates
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Template ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /templates/{id} [delete]
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	if err := h.templateService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Template deleted successfully"))
}
