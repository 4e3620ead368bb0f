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

type ProjectHandler struct {
	projectService service.ProjectService
}

func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *ProjectHandler) RegisterRoutes(router *gin.RouterGroup) {
	managers := []string{model.RoleProcurement, model.RoleFinanceProcurement, model.RoleChairman, model.RoleChairmanPA}

	projects := router.Group("/projects")
	{
		projects.GET("", middleware.RequireRole(model.AllRoles...), h.ListProjects)
		projects.GET("/:id", middleware.RequireRole(model.AllRoles...), h.GetProject)
		projects.POST("", middleware.RequireRole(managers...), h.CreateProject)
		projects.PUT("/:id", middleware.RequireRole(managers...), h.UpdateProject)
		projects.DELETE("/:id", middleware.RequireRole(model.RoleChairman, model.RoleChairmanPA), h.DeleteProject)
		projects.POST("/:id/assign", middleware.RequireRole(managers...), h.AssignSupervisor)
		projects.GET("/:id/boq", middleware.RequireRole(model.AllRoles...), h.GetBOQ)
		projects.POST("/:id/boq", middleware.RequireRole(managers...), h.AddBOQItem)
	}
}

// CreateProject handles POST /projects
// @Summary      Create project
// @Description  Registers a new construction project with a unique code
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.ProjectInput  true  "Project Payload"
// @Success      201      {object}  response.Response{data=model.Project}
// @Failure      400      {object}  response.Response
// @Router       /projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req service.ProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, project))
}

// ListProjects handles GET /projects
// @Summary      List projects
// @Description  Retrieves a paginated list of projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Router       /projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	params := pagination.Parse(c)

	projects, total, err := h.projectService.List(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"projects": projects,
		"total":    total,
		"page":     params.Page,
		"limit":    params.Limit,
	}))
}

// GetProject handles GET /projects/:id
// @Summary      Get project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  response.Response{data=model.Project}
// @Failure      404  {object}  response.Response
// @Router       /projects/{id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, err := h.projectService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, project))
}

// UpdateProject handles PUT /projects/:id
// @Summary      Update project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                true  "Project ID"
// @Param        payload  body      service.ProjectInput  true  "Project Payload"
// @Success      200      {object}  response.Response{data=model.Project}
// @Failure      400      {object}  response.Response
// @Router       /projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	var req service.ProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, project))
}

// DeleteProject handles DELETE /projects/:id
// @Summary      Delete project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	if err := h.projectService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Project deleted successfully"))
}

// AssignSupervisor handles POST /projects/:id/assign
// @Summary      Assign supervisor
// @Description  Binds a site supervisor to this project; a supervisor holds at most one assignment
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                         true  "Project ID"
// @Param        payload  body      service.AssignSupervisorInput  true  "Assignment Payload"
// @Success      200      {object}  response.Response{data=model.ProjectAssignment}
// @Failure      400      {object}  response.Response
// @Router       /projects/{id}/assign [post]
func (h *ProjectHandler) AssignSupervisor(c *gin.Context) {
	userID, _ := currentUser(c)

	var req service.AssignSupervisorInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	assignment, err := h.projectService.AssignSupervisor(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, assignment))
}

// GetBOQ handles GET /projects/:id/boq
// @Summary      Project bill of quantities
// @Description  Lists BOQ items for the project with the aggregate total
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  response.Response{data=service.BOQSummary}
// @Failure      404  {object}  response.Response
// @Router       /projects/{id}/boq [get]
func (h *ProjectHandler) GetBOQ(c *gin.Context) {
	summary, err := h.projectService.BOQ(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}

// AddBOQItem handles POST /projects/:id/boq
// @Summary      Add BOQ item
// @Description  Adds one bill-of-quantities line; the amount is derived from quantity and rate
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                true  "Project ID"
// @Param        payload  body      service.BOQItemInput  true  "BOQ Item Payload"
// @Success      201      {object}  response.Response{data=model.BOQItem}
// @Failure      400      {object}  response.Response
// @Router       /projects/{id}/boq [post]
func (h *ProjectHandler) AddBOQItem(c *gin.Context) {
	var req service.BOQItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	item, err := h.projectService.AddBOQItem(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, item))
}
