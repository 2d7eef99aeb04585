package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jai-app/jai-backend/internal/app/model"
	"github.com/jai-app/jai-backend/internal/app/repository"
	"github.com/jai-app/jai-backend/internal/app/service"
	"github.com/jai-app/jai-backend/internal/db"
	"github.com/jai-app/jai-backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupFileControllerTest(t *testing.T) (*gin.Engine, *gorm.DB, *storage.MemoryStore, *model.Company) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	companyRepo := repository.NewCompanyRepository(testDB)
	attachmentRepo := repository.NewAttachmentRepository(testDB)
	blobs := storage.NewMemoryStore()

	fileService := service.NewFileService(companyRepo, attachmentRepo, blobs, 50*1024*1024)
	companyService := service.NewCompanyService(companyRepo)
	exportService := service.NewExportService(companyRepo)

	fileController := NewFileController(fileService)
	companyController := NewCompanyController(companyService, fileService, exportService)

	company := &model.Company{
		Profile: model.CompanyProfile{
			NomeEmpresa:      "Acme Gym",
			CNPJ:             "12.345.678/0001-90",
			EmailContato:     "contato@acme.com",
			EmailNotaFiscal:  "nf@acme.com",
			Telefone:         "+55 11 91234-5678",
			ResponsavelGeral: "Maria Silva",
		},
		ResponsavelFinanceiro: model.Responsavel{
			Nome: "Joao Souza", Email: "fin@acme.com", Telefone: "+55 11 95555-0001",
		},
		ResponsavelOperacao: model.Responsavel{
			Nome: "Ana Lima", Email: "ops@acme.com", Telefone: "+55 11 95555-0002",
		},
		ContratoAceito: true,
		IntegracaoTipo: model.IntegrationNone,
	}
	require.NoError(t, companyRepo.Create(company))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/companies/:id/files", fileController.UploadFiles)
	router.GET("/api/companies/:id/files", fileController.ListFiles)
	router.GET("/api/companies/:id/files/:filename", fileController.DownloadFile)
	router.DELETE("/api/companies/:id/files/:filename", fileController.DeleteFile)
	router.DELETE("/api/companies/:id", companyController.DeleteCompany)

	return router, testDB, blobs, company
}

func multipartBody(t *testing.T, files map[string]string) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, content := range files {
		part, err := writer.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestFileController_UploadFiles(t *testing.T) {
	router, _, blobs, company := setupFileControllerTest(t)

	body, contentType := multipartBody(t, map[string]string{
		"contrato.pdf": "pdf-bytes",
	})
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/companies/%d/files", company.ID), body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, blobs.Len())

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, true, response["success"])

	files := response["files"].([]interface{})
	require.Len(t, files, 1)
	first := files[0].(map[string]interface{})
	assert.Equal(t, "contrato.pdf", first["originalName"])
	assert.NotEqual(t, "contrato.pdf", first["filename"])
}

func TestFileController_UploadFiles_NoFiles(t *testing.T) {
	router, _, _, company := setupFileControllerTest(t)

	body, contentType := multipartBody(t, nil)
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/companies/%d/files", company.ID), body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "FILE_NONE_SENT")
}

func TestFileController_UploadFiles_UnknownCompany(t *testing.T) {
	router, _, _, _ := setupFileControllerTest(t)

	body, contentType := multipartBody(t, map[string]string{"contrato.pdf": "x"})
	req := httptest.NewRequest(http.MethodPost, "/api/companies/9999/files", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "COMPANY_NOT_FOUND")
}

func TestFileController_UploadFiles_InvalidID(t *testing.T) {
	router, _, _, _ := setupFileControllerTest(t)

	body, contentType := multipartBody(t, map[string]string{"contrato.pdf": "x"})
	req := httptest.NewRequest(http.MethodPost, "/api/companies/abc/files", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_INVALID_ID")
}

func TestFileController_DownloadFile(t *testing.T) {
	router, _, _, company := setupFileControllerTest(t)

	body, contentType := multipartBody(t, map[string]string{"contrato.pdf": "pdf-bytes"})
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/companies/%d/files", company.ID), body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	// Download by original name
	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/companies/%d/files/contrato.pdf", company.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pdf-bytes", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="contrato.pdf"`)
	assert.Equal(t, "9", w.Header().Get("Content-Length"))
}

func TestFileController_DownloadFile_NotFound(t *testing.T) {
	router, _, _, company := setupFileControllerTest(t)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/companies/%d/files/nao-existe.pdf", company.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "FILE_NOT_FOUND")
}

func TestFileController_DeleteFile(t *testing.T) {
	router, _, blobs, company := setupFileControllerTest(t)

	body, contentType := multipartBody(t, map[string]string{"contrato.pdf": "pdf-bytes"})
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/companies/%d/files", company.ID), body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/companies/%d/files/contrato.pdf", company.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, blobs.Len())
}

func TestFileController_DeleteCompanyCascade(t *testing.T) {
	router, testDB, blobs, company := setupFileControllerTest(t)

	body, contentType := multipartBody(t, map[string]string{
		"contrato.pdf":  "pdf-bytes",
		"planilha.xlsx": "xlsx-bytes",
	})
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/companies/%d/files", company.ID), body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/companies/%d", company.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Acme Gym", response["nomeEmpresa"])
	assert.Equal(t, float64(2), response["filesRemoved"])

	assert.Zero(t, blobs.Len())
	orphaned, err := repository.NewAttachmentRepository(testDB).FindOrphaned()
	require.NoError(t, err)
	assert.Empty(t, orphaned)
}
