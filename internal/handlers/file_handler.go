package handlers

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"jobhive_backend/internal/middleware"
	"jobhive_backend/internal/storage"
	"jobhive_backend/pkg/apperrors"
)

// FileHandler отдает загруженные резюме. Пути вида resumes/<file>
// доступны только аутентифицированным пользователям.
type FileHandler struct {
	*BaseHandler
	storage storage.Storage
}

func NewFileHandler(base *BaseHandler, fileStorage storage.Storage) *FileHandler {
	return &FileHandler{
		BaseHandler: base,
		storage:     fileStorage,
	}
}

func (h *FileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	files := rg.Group("/files")
	files.Use(middleware.AuthMiddleware())
	{
		files.GET("/*path", h.ServeFile)
		files.HEAD("/*path", h.CheckFileExists)
	}
}

// ServeFile godoc
// @Summary      Download an uploaded file
// @Tags         files
// @Produce      octet-stream
// @Param        path path string true "File path"
// @Security     BearerAuth
// @Success      200 {file} binary
// @Router       /files/{path} [get]
func (h *FileHandler) ServeFile(c *gin.Context) {
	path := cleanFilePath(c.Param("path"))
	if path == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid file path"))
		return
	}

	ctx := c.Request.Context()

	reader, err := h.storage.Get(ctx, path)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewNotFoundError("File not found"))
		return
	}
	defer reader.Close()

	size, err := h.storage.GetSize(ctx, path)
	if err == nil {
		c.Header("Content-Length", strconv.FormatInt(size, 10))
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", "inline; filename="+strconv.Quote(filepath.Base(path)))

	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}

// CheckFileExists проверяет наличие файла без скачивания
func (h *FileHandler) CheckFileExists(c *gin.Context) {
	path := cleanFilePath(c.Param("path"))
	if path == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	exists, err := h.storage.Exists(c.Request.Context(), path)
	if err != nil || !exists {
		c.Status(http.StatusNotFound)
		return
	}

	c.Status(http.StatusOK)
}

// cleanFilePath нормализует путь и отсекает выход за пределы хранилища
func cleanFilePath(raw string) string {
	cleaned := filepath.Clean("/" + raw)
	if cleaned == "/" || cleaned == "/." {
		return ""
	}
	return cleaned[1:]
}
