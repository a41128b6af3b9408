package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"lakehouse-scheduler/internal/model"
	"lakehouse-scheduler/internal/service"

	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	coord *service.Coordinator
}

func NewDocumentHandler(coord *service.Coordinator) *DocumentHandler {
	return &DocumentHandler{coord: coord}
}

// POST /api/documents/upload (multipart: file, description)
func (h *DocumentHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please select a file to upload"})
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable upload"})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, service.MaxDocumentSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable upload"})
		return
	}

	doc, err := h.coord.UploadDocument(c.Request.Context(), actor(c),
		file.Filename, file.Header.Get("Content-Type"), data, c.PostForm("description"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// GET /api/documents
func (h *DocumentHandler) List(c *gin.Context) {
	out, err := h.coord.Documents(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if out == nil {
		out = []model.Document{}
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/documents/my
func (h *DocumentHandler) My(c *gin.Context) {
	out, err := h.coord.MyDocuments(c.Request.Context(), actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if out == nil {
		out = []model.Document{}
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/documents/search?filename=
func (h *DocumentHandler) Search(c *gin.Context) {
	out, err := h.coord.SearchDocuments(c.Request.Context(), c.Query("filename"))
	if err != nil {
		writeError(c, err)
		return
	}
	if out == nil {
		out = []model.Document{}
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/documents/:id
func (h *DocumentHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	doc, err := h.coord.Document(c.Request.Context(), uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// GET /api/documents/:id/download
func (h *DocumentHandler) Download(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	doc, data, err := h.coord.DownloadDocument(c.Request.Context(), uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.OriginalFileName))
	c.Data(http.StatusOK, doc.ContentType, data)
}

// DELETE /api/documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.coord.DeleteDocument(c.Request.Context(), actor(c), uint(id)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "document deleted"})
}
