package handlers

import (
	"io"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"homeroom/config"
	"homeroom/models"
	"homeroom/utils"
)

const maxUploadSize = 10 * 1024 * 1024

// UploadFile stores the bytes and returns the attachment record a message
// carries: a reference URL plus metadata, nothing more.
func (h *Handler) UploadFile(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequest(c, "no file uploaded")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		utils.BadRequest(c, "file too large (max 10MB)")
		return
	}

	ext := filepath.Ext(header.Filename)
	filename := utils.GenerateUUID() + ext
	uploadPath := filepath.Join(config.Cfg.UploadDir, filename)

	out, err := os.Create(uploadPath)
	if err != nil {
		utils.InternalError(c, "failed to save file")
		return
	}
	defer out.Close()

	if _, err = io.Copy(out, file); err != nil {
		utils.InternalError(c, "failed to save file")
		return
	}

	utils.Success(c, models.Attachment{
		URL:      "/files/" + filename,
		Name:     header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Size:     header.Size,
	})
}

func (h *Handler) ServeFile(c *gin.Context) {
	filename := filepath.Base(c.Param("filename"))
	c.File(filepath.Join(config.Cfg.UploadDir, filename))
}
