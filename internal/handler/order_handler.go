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

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup.
// Role gating beyond authentication lives in the service layer, where the
// decision also depends on the order's current status.
func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	orders := router.Group("/orders", middleware.RequireRole(model.AllRoles...))
	{
		orders.POST("", h.CreateOrder)
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)
		orders.PUT("/:id/approve-procurement", h.ApproveProcurement)
		orders.PUT("/:id/approve-chairman", h.ApproveChairman)
		orders.PUT("/:id/source", h.Source)
		orders.PUT("/:id/sourced", h.MarkSourced)
		orders.PUT("/:id/status", h.UpdateStatus)
		orders.DELETE("/:id", h.DeleteOrder)
	}
}

// CreateOrder handles POST /orders
// @Summary      Create order
// @Description  Site supervisor raises a material order for their assigned project
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateOrderRequest  true  "Create Order Payload"
// @Success      201      {object}  response.Response{data=model.Order}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userID, role := currentUser(c)

	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), userID, role, req)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, order))
}

// ListOrders handles GET /orders
// @Summary      List orders
// @Description  Lists orders visible to the caller, optionally filtered by status or project
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        status      query     string  false  "Filter by status"
// @Param        project_id  query     string  false  "Filter by project"
// @Param        page        query     int     false  "Page number (default 1)"
// @Param        limit       query     int     false  "Number of items per page (default 20)"
// @Success      200         {object}  response.Response{data=object}
// @Router       /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, role := currentUser(c)
	params := pagination.Parse(c)

	filter := service.OrderListFilter{
		Status:    c.Query("status"),
		ProjectID: c.Query("project_id"),
	}

	orders, total, err := h.orderService.List(c.Request.Context(), userID, role, filter, params.Page, params.Limit)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"orders": orders,
		"total":  total,
		"page":   params.Page,
		"limit":  params.Limit,
	}))
}

// GetOrder handles GET /orders/:id
// @Summary      Get order
// @Description  Fetch a single order with its items and delivery count
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  response.Response{data=service.OrderDetail}
// @Failure      404  {object}  response.Response
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, role := currentUser(c)

	order, err := h.orderService.Get(c.Request.Context(), userID, role, c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// ApproveProcurement handles PUT /orders/:id/approve-procurement
// @Summary      Procurement approval
// @Description  Procurement approves a pending order, moving it to the chairman's queue
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  response.Response{data=model.Order}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /orders/{id}/approve-procurement [put]
func (h *OrderHandler) ApproveProcurement(c *gin.Context) {
	userID, role := currentUser(c)

	order, err := h.orderService.ApproveProcurement(c.Request.Context(), userID, role, c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// ApproveChairman handles PUT /orders/:id/approve-chairman
// @Summary      Chairman decision
// @Description  Chairman approves or rejects an order awaiting final decision
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true  "Order ID"
// @Param        payload  body      object  true  "Decision Payload {approved bool}"
// @Success      200      {object}  response.Response{data=model.Order}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /orders/{id}/approve-chairman [put]
func (h *OrderHandler) ApproveChairman(c *gin.Context) {
	userID, role := currentUser(c)

	var req struct {
		Approved *bool `json:"approved" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: approved flag is required"))
		return
	}

	order, err := h.orderService.ApproveChairman(c.Request.Context(), userID, role, c.Param("id"), *req.Approved)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// Source handles PUT /orders/:id/source
// @Summary      Start sourcing
// @Description  Procurement starts sourcing suppliers for an approved order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  response.Response{data=model.Order}
// @Failure      400  {object}  response.Response
// @Router       /orders/{id}/source [put]
func (h *OrderHandler) Source(c *gin.Context) {
	userID, role := currentUser(c)

	order, err := h.orderService.Source(c.Request.Context(), userID, role, c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// MarkSourced handles PUT /orders/:id/sourced
// @Summary      Finish sourcing
// @Description  Procurement marks an order as fully sourced
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  response.Response{data=model.Order}
// @Failure      400  {object}  response.Response
// @Router       /orders/{id}/sourced [put]
func (h *OrderHandler) MarkSourced(c *gin.Context) {
	userID, role := currentUser(c)

	order, err := h.orderService.MarkSourced(c.Request.Context(), userID, role, c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// UpdateStatus handles PUT /orders/:id/status
// @Summary      Update order status
// @Description  Moves the order along the lifecycle within the caller's allowed targets
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true  "Order ID"
// @Param        payload  body      object  true  "Status Payload {status string}"
// @Success      200      {object}  response.Response{data=model.Order}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	userID, role := currentUser(c)

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: status is required"))
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), userID, role, c.Param("id"), req.Status)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// DeleteOrder handles DELETE /orders/:id
// @Summary      Delete order
// @Description  Removes an order that is still pending procurement review
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	userID, role := currentUser(c)

	if err := h.orderService.Delete(c.Request.Context(), userID, role, c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Order deleted successfully"))
}
