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

type InventoryHandler struct {
	inventoryService service.InventoryService
}

func NewInventoryHandler(inventoryService service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	keepers := []string{model.RoleSiteSupervisor, model.RoleProcurement, model.RoleFinanceProcurement, model.RoleChairman, model.RoleChairmanPA}

	inventory := router.Group("/inventory")
	{
		inventory.GET("", middleware.RequireRole(model.AllRoles...), h.ListItems)
		inventory.POST("", middleware.RequireRole(keepers...), h.CreateItem)
		inventory.PUT("/:id", middleware.RequireRole(keepers...), h.UpdateItem)
		inventory.DELETE("/:id", middleware.RequireRole(keepers...), h.DeleteItem)
		inventory.POST("/:id/adjust", middleware.RequireRole(keepers...), h.AdjustStock)
		inventory.GET("/:id/logs", middleware.RequireRole(keepers...), h.StockLogs)
	}
}

// CreateItem handles POST /inventory
// @Summary      Create inventory item
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateInventoryItemRequest  true  "Inventory Item Payload"
// @Success      201      {object}  response.Response{data=model.InventoryItem}
// @Failure      400      {object}  response.Response
// @Router       /inventory [post]
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	userID, _ := currentUser(c)

	var req service.CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	item, err := h.inventoryService.CreateItem(c.Request.Context(), userID, req)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, item))
}

// ListItems handles GET /inventory
// @Summary      List inventory items
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Router       /inventory [get]
func (h *InventoryHandler) ListItems(c *gin.Context) {
	params := pagination.Parse(c)

	items, total, err := h.inventoryService.ListItems(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"items": items,
		"total": total,
		"page":  params.Page,
		"limit": params.Limit,
	}))
}

// UpdateItem handles PUT /inventory/:id
// @Summary      Update inventory item
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                              true  "Item ID"
// @Param        payload  body      service.UpdateInventoryItemRequest  true  "Inventory Item Payload"
// @Success      200      {object}  response.Response{data=model.InventoryItem}
// @Failure      400      {object}  response.Response
// @Router       /inventory/{id} [put]
func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	userID, _ := currentUser(c)

	var req service.UpdateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	item, err := h.inventoryService.UpdateItem(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, item))
}

// DeleteItem handles DELETE /inventory/:id
// @Summary      Delete inventory item
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Item ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /inventory/{id} [delete]
func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	userID, _ := currentUser(c)

	if err := h.inventoryService.DeleteItem(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Inventory item deleted successfully"))
}

// AdjustStock handles POST /inventory/:id/adjust
// @Summary      Adjust stock
// @Description  Applies a signed delta to the quantity on hand and records the stock log atomically
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                      true  "Item ID"
// @Param        payload  body      service.AdjustStockRequest  true  "Adjustment Payload"
// @Success      200      {object}  response.Response{data=model.InventoryItem}
// @Failure      400      {object}  response.Response
// @Router       /inventory/{id}/adjust [post]
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	userID, _ := currentUser(c)

	var req service.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	item, err := h.inventoryService.AdjustStock(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, item))
}

// StockLogs handles GET /inventory/:id/logs
// @Summary      Stock movement history
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true   "Item ID"
// @Param        page   query     int     false  "Page number (default 1)"
// @Param        limit  query     int     false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Router       /inventory/{id}/logs [get]
func (h *InventoryHandler) StockLogs(c *gin.Context) {
	params := pagination.Parse(c)

	logs, total, err := h.inventoryService.StockLogs(c.Request.Context(), c.Param("id"), params.Page, params.Limit)
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
