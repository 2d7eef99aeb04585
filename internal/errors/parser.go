package errors

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ErrorInfo is a parsed, user-presentable view of a lower-level error.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError translates gorm/driver errors into the code taxonomy with a
// user-facing message. Sensitive driver detail stays out of the message.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Erro interno do servidor",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// Unique constraint violation (postgres 23505, sqlite "UNIQUE constraint failed")
	if strings.Contains(errStrLower, "duplicate key") ||
		strings.Contains(errStrLower, "unique constraint") {
		if strings.Contains(errStrLower, "email") {
			return ErrorInfo{Code: AuthEmailExists, Message: "Email já existe"}
		}
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "Registro já existente"}
	}

	// Foreign key constraint violation (postgres 23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return ErrorInfo{
			Code:    CompanyNotFound,
			Message: "Company não encontrada",
		}
	}

	// Not null constraint violation (postgres 23502)
	if strings.Contains(errStrLower, "null value") &&
		strings.Contains(errStrLower, "violates not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "Campo obrigatório não informado",
		}
	}

	// Connectivity failures against the DB or the blob store
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalStorageError,
			Message: "Falha de conexão com o armazenamento. Tente novamente mais tarde",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

// ParseAndRespond parses err and writes the error response. fallbackStatus is
// used unless the parsed code implies a more specific one.
func ParseAndRespond(c *gin.Context, fallbackStatus int, err error, context string) {
	info := ParseError(err, context)

	status := fallbackStatus
	switch info.Code {
	case ResourceNotFound, CompanyNotFound:
		status = 404
	case ResourceAlreadyExists, AuthEmailExists:
		status = 409
	case ValidationRequired:
		status = 400
	}

	RespondWithError(c, status, info.Code, info.Message)
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "company") || strings.Contains(contextLower, "empresa") {
		return "Company não encontrada"
	}
	if strings.Contains(contextLower, "file") || strings.Contains(contextLower, "arquivo") {
		return "Arquivo não encontrado"
	}
	if strings.Contains(contextLower, "admin") {
		return "Admin não encontrado"
	}

	return "Registro não encontrado"
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "create") || strings.Contains(contextLower, "criar") {
		return "Erro ao criar registro. Tente novamente mais tarde"
	}
	if strings.Contains(contextLower, "update") || strings.Contains(contextLower, "atualizar") {
		return "Erro ao atualizar registro. Tente novamente mais tarde"
	}
	if strings.Contains(contextLower, "delete") || strings.Contains(contextLower, "deletar") {
		return "Erro ao deletar registro. Tente novamente mais tarde"
	}
	if strings.Contains(contextLower, "upload") {
		return "Erro interno do servidor durante o upload"
	}
	if strings.Contains(contextLower, "download") {
		return "Erro interno do servidor durante o download"
	}

	return "Erro interno do servidor. Tente novamente mais tarde"
}
