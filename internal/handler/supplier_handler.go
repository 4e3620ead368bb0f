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

type SupplierHandler struct {
	supplierService service.SupplierService
}

func NewSupplierHandler(supplierService service.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *SupplierHandler) RegisterRoutes(router *gin.RouterGroup) {
	procurement := []string{model.RoleProcurement, model.RoleFinanceProcurement, model.RoleChairman, model.RoleChairmanPA}

	suppliers := router.Group("/suppliers")
	{
		suppliers.GET("", middleware.RequireRole(model.AllRoles...), h.ListSuppliers)
		suppliers.GET("/:id", middleware.RequireRole(model.AllRoles...), h.GetSupplier)
		suppliers.POST("", middleware.RequireRole(procurement...), h.CreateSupplier)
		suppliers.PUT("/:id", middleware.RequireRole(procurement...), h.UpdateSupplier)
		suppliers.DELETE("/:id", middleware.RequireRole(procurement...), h.DeleteSupplier)
	}

	quotes := router.Group("/quotes")
	{
		// Suppliers submit their own quotes; procurement can record them too
		quotes.POST("", middleware.RequireRole(model.RoleSupplier, model.RoleProcurement, model.RoleFinanceProcurement), h.CreateQuote)
		quotes.GET("/compare/:orderId", middleware.RequireRole(procurement...), h.CompareQuotes)
	}
}

// CreateSupplier handles POST /suppliers
// @Summary      Create supplier
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.SupplierInput  true  "Supplier Payload"
// @Success      201      {object}  response.Response{data=model.Supplier}
// @Failure      400      {object}  response.Response
// @Router       /suppliers [post]
func (h *SupplierHandler) CreateSupplier(c *gin.Context) {
	var req service.SupplierInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	supplier, err := h.supplierService.Create(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, supplier))
}

// ListSuppliers handles GET /suppliers
// @Summary      List suppliers
// @Tags         suppliers
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Router       /suppliers [get]
func (h *SupplierHandler) ListSuppliers(c *gin.Context) {
	params := pagination.Parse(c)

	suppliers, total, err := h.supplierService.List(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"suppliers": suppliers,
		"total":     total,
		"page":      params.Page,
		"limit":     params.Limit,
	}))
}

// GetSupplier handles GET /suppliers/:id
// @Summary      Get supplier
// @Tags         suppliers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Supplier ID"
// @Success      200  {object}  response.Response{data=model.Supplier}
// @Failure      404  {object}  response.Response
// @Router       /suppliers/{id} [get]
func (h *SupplierHandler) GetSupplier(c *gin.Context) {
	supplier, err := h.supplierService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, supplier))
}

// UpdateSupplier handles PUT /suppliers/:id
// @Summary      Update supplier
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                 true  "Supplier ID"
// @Param        payload  body      service.SupplierInput  true  "Supplier Payload"
// @Success      200      {object}  response.Response{data=model.Supplier}
// @Failure      400      {object}  response.Response
// @Router       /suppliers/{id} [put]
func (h *SupplierHandler) UpdateSupplier(c *gin.Context) {
	var req service.SupplierInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	supplier, err := h.supplierService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, supplier))
}

// DeleteSupplier handles DELETE /suppliers/:id
// @Summary      Delete supplier
// @Tags         suppliers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Supplier ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /suppliers/{id} [delete]
func (h *SupplierHandler) DeleteSupplier(c *gin.Context) {
	if err := h.supplierService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Supplier deleted successfully"))
}

// CreateQuote handles POST /quotes
// @Summary      Submit quote
// @Description  Records a supplier's quote for a sourcing order
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateQuoteInput  true  "Quote Payload"
// @Success      201      {object}  response.Response{data=model.SupplierQuote}
// @Failure      400      {object}  response.Response
// @Router       /quotes [post]
func (h *SupplierHandler) CreateQuote(c *gin.Context) {
	var req service.CreateQuoteInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	quote, err := h.supplierService.CreateQuote(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, quote))
}

// CompareQuotes handles GET /quotes/compare/:orderId
// @Summary      Compare quotes
// @Description  Scores every quote for the order by price, lead time and supplier rating
// @Tags         quotes
// @Produce      json
// @Security     BearerAuth
// @Param        orderId  path      string  true  "Order ID"
// @Success      200      {object}  response.Response{data=[]service.QuoteComparison}
// @Failure      404      {object}  response.Response
// @Router       /quotes/compare/{orderId} [get]
func (h *SupplierHandler) CompareQuotes(c *gin.Context) {
	comparisons, err := h.supplierService.CompareQuotes(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, comparisons))
}
