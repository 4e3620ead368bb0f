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

type PlanHandler struct {
	planService service.PlanService
}

func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *PlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	procurement := []string{model.RoleProcurement, model.RoleFinanceProcurement, model.RoleChairman, model.RoleChairmanPA}

	plans := router.Group("/plans")
	{
		plans.GET("", middleware.RequireRole(model.AllRoles...), h.ListPlans)
		plans.GET("/:id", middleware.RequireRole(model.AllRoles...), h.GetPlan)
		plans.POST("", middleware.RequireRole(procurement...), h.CreatePlan)
		plans.POST("/:id/items", middleware.RequireRole(procurement...), h.AddPlanItem)
		plans.PUT("/:id/finalize", middleware.RequireRole(procurement...), h.FinalizePlan)
		plans.DELETE("/:id", middleware.RequireRole(procurement...), h.DeletePlan)
	}
}

// CreatePlan handles POST /plans
// @Summary      Create procurement plan
// @Description  Opens a draft sourcing plan for a project period
// @Tags         plans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreatePlanInput  true  "Plan Payload"
// @Success      201      {object}  response.Response{data=model.ProcurementPlan}
// @Failure      400      {object}  response.Response
// @Router       /plans [post]
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	userID, _ := currentUser(c)

	var req service.CreatePlanInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	plan, err := h.planService.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, plan))
}

// ListPlans handles GET /plans
// @Summary      List procurement plans
// @Tags         plans
// @Produce      json
// @Security     BearerAuth
// @Param        project_id  query     string  false  "Filter by project"
// @Param        page        query     int     false  "Page number (default 1)"
// @Param        limit       query     int     false  "Number of items per page (default 20)"
// @Success      200         {object}  response.Response{data=object}
// @Router       /plans [get]
func (h *PlanHandler) ListPlans(c *gin.Context) {
	params := pagination.Parse(c)

	plans, total, err := h.planService.List(c.Request.Context(), c.Query("project_id"), params.Page, params.Limit)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"plans": plans,
		"total": total,
		"page":  params.Page,
		"limit": params.Limit,
	}))
}

// GetPlan handles GET /plans/:id
// @Summary      Get procurement plan
// @Tags         plans
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Plan ID"
// @Success      200  {object}  response.Response{data=model.ProcurementPlan}
// @Failure      404  {object}  response.Response
// @Router       /plans/{id} [get]
func (h *PlanHandler) GetPlan(c *gin.Context) {
	plan, err := h.planService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, plan))
}

// AddPlanItem handles POST /plans/:id/items
// @Summary      Add plan item
// @Description  Adds a planned purchase line to a draft plan
// @Tags         plans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                 true  "Plan ID"
// @Param        payload  body      service.PlanItemInput  true  "Plan Item Payload"
// @Success      201      {object}  response.Response{data=model.ProcurementPlanItem}
// @Failure      400      {object}  response.Response
// @Router       /plans/{id}/items [post]
func (h *PlanHandler) AddPlanItem(c *gin.Context) {
	var req service.PlanItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	item, err := h.planService.AddItem(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, item))
}

// FinalizePlan handles PUT /plans/:id/finalize
// @Summary      Finalize plan
// @Description  Locks a draft plan; a final plan accepts no further items
// @Tags         plans
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Plan ID"
// @Success      200  {object}  response.Response{data=model.ProcurementPlan}
// @Failure      400  {object}  response.Response
// @Router       /plans/{id}/finalize [put]
func (h *PlanHandler) FinalizePlan(c *gin.Context) {
	plan, err := h.planService.Finalize(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, plan))
}

// DeletePlan handles DELETE /plans/:id
// @Summary      Delete plan
// @Tags         plans
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Plan ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /plans/{id} [delete]
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	if err := h.planService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Plan deleted successfully"))
}
