package controller

import (
	"errors"
	"io"
	"net/http"

	"safai/lib"
	"safai/platform"
	"safai/service"

	"github.com/gin-gonic/gin"
)

type UploadController struct {
	uploadService *service.UploadService
}

func NewUploadController(config platform.Config) *UploadController {
	return &UploadController{uploadService: service.NewUploadService(config)}
}

func (u *UploadController) UploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file"})
		return
	}
	if fileHeader.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file selected"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Warnf("[%s] open uploaded file error, %s", c.GetString("requestId"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		logger.Warnf("[%s] read uploaded file error, %s", c.GetString("requestId"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}

	result, err := u.uploadService.Store(fileHeader.Filename, data)
	if err != nil {
		logger.Warnf("[%s] store uploaded file error, %s", c.GetString("requestId"), err)
		if errors.Is(err, lib.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file selected"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	logger.Infof("[%s] Stored upload as %s", c.GetString("requestId"), result.Filename)
	out := gin.H{"success": true, "filename": result.Filename, "url": result.URL}
	if result.Data != "" {
		out["data"] = result.Data
	}
	c.JSON(http.StatusOK, out)
}

// GetUpload serves a stored file back to its authenticated owner.
func (u *UploadController) GetUpload(c *gin.Context) {
	path, err := u.uploadService.Resolve(c.Param("filename"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.File(path)
}
