package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jai-app/jai-backend/internal/app/model"
	"github.com/jai-app/jai-backend/internal/app/service"
	apperrors "github.com/jai-app/jai-backend/internal/errors"
	"github.com/jai-app/jai-backend/internal/middleware"
)

type CompanyController struct {
	companyService service.CompanyService
	fileService    service.FileService
	exportService  service.ExportService
}

func NewCompanyController(
	companyService service.CompanyService,
	fileService service.FileService,
	exportService service.ExportService,
) *CompanyController {
	return &CompanyController{
		companyService: companyService,
		fileService:    fileService,
		exportService:  exportService,
	}
}

// parseCompanyID reads the :id path param. On failure it writes the error
// response and returns false.
func parseCompanyID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID inválido")
		return 0, false
	}
	return uint(id), true
}

// CreateCompany registers a full onboarding form
// POST /api/companies
func (ctrl *CompanyController) CreateCompany(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var company model.Company
	if err := c.ShouldBindJSON(&company); err != nil {
		log.Warn("Invalid company payload", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "dados de entrada inválidos")
		return
	}

	created, err := ctrl.companyService.CreateCompany(&company)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			log.Warn("Company validation failed", map[string]interface{}{
				"fields": verr.Fields,
			})
			apperrors.RespondWithValidationError(c, verr.Fields)
			return
		}
		log.Error("Failed to create company", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create company")
		return
	}

	log.Info("Company created", map[string]interface{}{
		"company_id": created.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"company": created,
	})
}

// ListCompanies returns every company sorted by name
// GET /api/companies
func (ctrl *CompanyController) ListCompanies(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	companies, err := ctrl.companyService.ListCompanies()
	if err != nil {
		log.Error("Failed to list companies", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list companies")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"count":     len(companies),
		"companies": companies,
	})
}

// GetCompany fetches one company by numeric ID
// GET /api/companies/:id
func (ctrl *CompanyController) GetCompany(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseCompanyID(c)
	if !ok {
		return
	}

	company, err := ctrl.companyService.GetCompanyByID(id)
	if err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			apperrors.NotFound(c, apperrors.CompanyNotFound, "empresa não encontrada")
			return
		}
		log.Error("Failed to fetch company", err, map[string]interface{}{
			"company_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get company")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"company": company,
	})
}

// GetCompanyByName fetches one company by exact display name
// GET /api/companies/nome/:nome
func (ctrl *CompanyController) GetCompanyByName(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	name := c.Param("nome")
	company, err := ctrl.companyService.GetCompanyByName(name)
	if err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			apperrors.NotFound(c, apperrors.CompanyNotFound, "empresa não encontrada")
			return
		}
		log.Error("Failed to fetch company by name", err, map[string]interface{}{
			"nome_empresa": name,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get company")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"company": company,
	})
}

// UpdateCompany replaces the stored form
// PUT /api/companies/:id
func (ctrl *CompanyController) UpdateCompany(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseCompanyID(c)
	if !ok {
		return
	}

	var company model.Company
	if err := c.ShouldBindJSON(&company); err != nil {
		log.Warn("Invalid company payload", map[string]interface{}{
			"company_id": id,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "dados de entrada inválidos")
		return
	}

	updated, err := ctrl.companyService.UpdateCompany(id, &company)
	if err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			apperrors.NotFound(c, apperrors.CompanyNotFound, "empresa não encontrada")
			return
		}
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			apperrors.RespondWithValidationError(c, verr.Fields)
			return
		}
		log.Error("Failed to update company", err, map[string]interface{}{
			"company_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update company")
		return
	}

	log.Info("Company updated", map[string]interface{}{
		"company_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"company": updated,
	})
}

// DeleteCompany removes the company together with its attachments
// DELETE /api/companies/:id
func (ctrl *CompanyController) DeleteCompany(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseCompanyID(c)
	if !ok {
		return
	}

	result, err := ctrl.fileService.DeleteCompanyCascade(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			apperrors.NotFound(c, apperrors.CompanyNotFound, "empresa não encontrada")
			return
		}
		log.Error("Failed to delete company", err, map[string]interface{}{
			"company_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete company")
		return
	}

	log.Info("Company deleted", map[string]interface{}{
		"company_id":    id,
		"files_removed": result.FilesRemoved,
	})

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "empresa removida com sucesso",
		"nomeEmpresa":  result.CompanyName,
		"filesRemoved": result.FilesRemoved,
	})
}

// ExportCompanies streams an XLSX workbook with one row per company
// GET /api/companies/export
func (ctrl *CompanyController) ExportCompanies(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	data, err := ctrl.exportService.ExportCompaniesXLSX()
	if err != nil {
		log.Error("Failed to export companies", err, nil)
		apperrors.InternalError(c, "erro ao exportar empresas")
		return
	}

	filename := fmt.Sprintf("empresas-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
