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

type DocumentHandler struct {
	documentService service.DocumentService
}

func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *DocumentHandler) RegisterRoutes(router *gin.RouterGroup) {
	documents := router.Group("/documents", middleware.RequireRole(model.AllRoles...))
	{
		documents.POST("", h.UploadDocument)
		documents.GET("", h.ListDocuments)
		documents.GET("/:id", h.GetDocument)
		documents.GET("/:id/download", h.DownloadDocument)
		documents.DELETE("/:id", h.DeleteDocument)
	}
}

// UploadDocument handles POST /documents (multipart/form-data)
// @Summary      Upload document
// @Description  Stores a file on disk and records its metadata, optionally linked to a project or order
// @Tags         documents
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file        formData  file    true   "File to upload"
// @Param        project_id  formData  string  false  "Project to attach to"
// @Param        order_id    formData  string  false  "Order to attach to"
// @Success      201         {object}  response.Response{data=model.Document}
// @Failure      400         {object}  response.Response
// @Router       /documents [post]
func (h *DocumentHandler) UploadDocument(c *gin.Context) {
	userID, _ := currentUser(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "failed to read uploaded file"))
		return
	}
	defer file.Close()

	input := service.UploadDocumentInput{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		ProjectID:   c.PostForm("project_id"),
		OrderID:     c.PostForm("order_id"),
		UploadedBy:  userID,
	}

	doc, err := h.documentService.Upload(c.Request.Context(), input, file)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, doc))
}

// ListDocuments handles GET /documents
// @Summary      List documents
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        project_id  query     string  false  "Filter by project"
// @Param        order_id    query     string  false  "Filter by order"
// @Param        page        query     int     false  "Page number (default 1)"
// @Param        limit       query     int     false  "Number of items per page (default 20)"
// @Success      200         {object}  response.Response{data=object}
// @Router       /documents [get]
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	params := pagination.Parse(c)

	docs, total, err := h.documentService.List(c.Request.Context(), c.Query("project_id"), c.Query("order_id"), params.Page, params.Limit)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"documents": docs,
		"total":     total,
		"page":      params.Page,
		"limit":     params.Limit,
	}))
}

// GetDocument handles GET /documents/:id
// @Summary      Get document metadata
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  response.Response{data=model.Document}
// @Failure      404  {object}  response.Response
// @Router       /documents/{id} [get]
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	doc, err := h.documentService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, doc))
}

// DownloadDocument handles GET /documents/:id/download
// @Summary      Download document
// @Description  Streams the stored file back with its original name
// @Tags         documents
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        id  path  string  true  "Document ID"
// @Success      200
// @Failure      404  {object}  response.Response
// @Router       /documents/{id}/download [get]
func (h *DocumentHandler) DownloadDocument(c *gin.Context) {
	doc, file, err := h.documentService.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	defer file.Close()

	c.FileAttachment(doc.StoredPath, doc.FileName)
}

// DeleteDocument handles DELETE /documents/:id
// @Summary      Delete document
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /documents/{id} [delete]
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	if err := h.documentService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Document deleted successfully"))
}
