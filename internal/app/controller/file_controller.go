package controller

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jai-app/jai-backend/internal/app/service"
	apperrors "github.com/jai-app/jai-backend/internal/errors"
	"github.com/jai-app/jai-backend/internal/middleware"
)

type FileController struct {
	fileService service.FileService
}

func NewFileController(fileService service.FileService) *FileController {
	return &FileController{
		fileService: fileService,
	}
}

// UploadFiles stores every file sent under the multipart field "files"
// POST /api/companies/:id/files
func (ctrl *FileController) UploadFiles(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseCompanyID(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		log.Warn("Invalid multipart request", map[string]interface{}{
			"company_id": id,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "requisição multipart inválida")
		return
	}

	headers := form.File["files"]
	inputs := make([]service.UploadInput, 0, len(headers))
	for _, header := range headers {
		header := header
		inputs = append(inputs, service.UploadInput{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Open: func() (io.ReadCloser, error) {
				return header.Open()
			},
		})
	}

	uploaded, failed, err := ctrl.fileService.UploadAttachments(c.Request.Context(), id, inputs)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCompanyNotFound):
			apperrors.NotFound(c, apperrors.CompanyNotFound, "empresa não encontrada")
		case errors.Is(err, service.ErrNoFilesSent):
			apperrors.BadRequest(c, apperrors.FileNoneSent, "nenhum arquivo enviado")
		case errors.Is(err, service.ErrFileTooLarge):
			apperrors.PayloadTooLarge(c, "arquivo excede o tamanho máximo de 50MB")
		default:
			log.Error("Upload failed", err, map[string]interface{}{
				"company_id": id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "upload files")
		}
		return
	}

	log.Info("Files uploaded", map[string]interface{}{
		"company_id": id,
		"uploaded":   len(uploaded),
		"failed":     len(failed),
	})

	response := gin.H{
		"success": true,
		"files":   uploaded,
	}
	if len(failed) > 0 {
		response["failed"] = failed
	}
	c.JSON(http.StatusCreated, response)
}

// ListFiles returns attachment metadata for a company
// GET /api/companies/:id/files
func (ctrl *FileController) ListFiles(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseCompanyID(c)
	if !ok {
		return
	}

	attachments, err := ctrl.fileService.ListAttachments(id)
	if err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			apperrors.NotFound(c, apperrors.CompanyNotFound, "empresa não encontrada")
			return
		}
		log.Error("Failed to list files", err, map[string]interface{}{
			"company_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list files")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(attachments),
		"files":   attachments,
	})
}

// DownloadFile streams one attachment, resolved by storage key or by the
// original filename
// GET /api/companies/:id/files/:filename
func (ctrl *FileController) DownloadFile(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseCompanyID(c)
	if !ok {
		return
	}
	filename := c.Param("filename")

	attachment, reader, err := ctrl.fileService.DownloadAttachment(c.Request.Context(), id, filename)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCompanyNotFound):
			apperrors.NotFound(c, apperrors.CompanyNotFound, "empresa não encontrada")
		case errors.Is(err, service.ErrFileNotFound):
			apperrors.NotFound(c, apperrors.FileNotFound, "arquivo não encontrado")
		default:
			log.Error("Download failed", err, map[string]interface{}{
				"company_id": id,
				"filename":   filename,
			})
			apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.FileStreamError, "erro ao baixar arquivo")
		}
		return
	}
	defer reader.Close()

	contentType := attachment.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", attachment.OriginalName))
	c.Header("Content-Length", strconv.FormatInt(attachment.Size, 10))
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)

	if _, err := io.Copy(c.Writer, reader); err != nil {
		// Headers are already out; nothing to do but log.
		log.Error("Stream interrupted during download", err, map[string]interface{}{
			"company_id":  id,
			"storage_key": attachment.StorageKey,
		})
	}
}

// DeleteFile removes one attachment
// DELETE /api/companies/:id/files/:filename
func (ctrl *FileController) DeleteFile(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseCompanyID(c)
	if !ok {
		return
	}
	filename := c.Param("filename")

	deleted, err := ctrl.fileService.DeleteAttachment(c.Request.Context(), id, filename)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCompanyNotFound):
			apperrors.NotFound(c, apperrors.CompanyNotFound, "empresa não encontrada")
		case errors.Is(err, service.ErrFileNotFound):
			apperrors.NotFound(c, apperrors.FileNotFound, "arquivo não encontrado")
		default:
			log.Error("Failed to delete file", err, map[string]interface{}{
				"company_id": id,
				"filename":   filename,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete file")
		}
		return
	}

	log.Info("File deleted", map[string]interface{}{
		"company_id":  id,
		"storage_key": deleted.StorageKey,
	})

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "arquivo removido com sucesso",
		"filename": deleted.StorageKey,
	})
}
