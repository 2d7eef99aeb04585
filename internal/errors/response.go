package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error envelope. Error carries the
// user-facing message (Portuguese); Code is the stable identifier the
// frontend maps on.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// RespondWithError writes the standard error envelope.
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error: message,
		Code:  errorCode,
	})
}

// Shortcuts for the common cases

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Token de acesso não fornecido. Use: Authorization: Bearer <token>"
	}
	RespondWithError(c, http.StatusUnauthorized, AuthUnauthorized, message)
}

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func NotFound(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusNotFound, errorCode, message)
}

func PayloadTooLarge(c *gin.Context, message string) {
	if message == "" {
		message = "Arquivo excede o tamanho máximo permitido"
	}
	RespondWithError(c, http.StatusRequestEntityTooLarge, FileTooLarge, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Erro interno do servidor. Tente novamente mais tarde"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}

// ValidationErrorResponse carries field-level validation detail.
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

func RespondWithValidationError(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, ValidationErrorResponse{
		Error:  "Dados inválidos. Verifique os campos obrigatórios",
		Code:   ValidationInvalidInput,
		Fields: fields,
	})
}
