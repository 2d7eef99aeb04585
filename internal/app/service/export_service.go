package service

import (
	"bytes"
	"strings"

	"github.com/jai-app/jai-backend/internal/app/model"
	"github.com/jai-app/jai-backend/internal/app/repository"
	"github.com/jai-app/jai-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

type ExportService interface {
	// ExportCompaniesXLSX renders every company as one spreadsheet row.
	ExportCompaniesXLSX() ([]byte, error)
}

type exportService struct {
	companyRepo repository.CompanyRepository
}

func NewExportService(companyRepo repository.CompanyRepository) ExportService {
	return &exportService{companyRepo: companyRepo}
}

var exportHeader = []string{
	"ID",
	"Nome da Empresa",
	"CNPJ",
	"Email de Contato",
	"Email Nota Fiscal",
	"Telefone",
	"Responsável Geral",
	"Responsável Financeiro",
	"Responsável Operação",
	"Contrato Aceito",
	"Integração",
	"Outro Sistema",
	"WhatsApp",
	"Robô",
	"Criado em",
}

func (s *exportService) ExportCompaniesXLSX() ([]byte, error) {
	logger.Info("Exporting companies to XLSX")

	companies, err := s.companyRepo.FindAll()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}

	for i, company := range companies {
		row := exportRow(&company)
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		logger.Error("Failed to write XLSX export", err, nil)
		return nil, err
	}

	logger.Info("Companies exported", map[string]interface{}{
		"count": len(companies),
	})
	return buf.Bytes(), nil
}

func exportRow(company *model.Company) []interface{} {
	contrato := "não"
	if company.ContratoAceito {
		contrato = "sim"
	}

	return []interface{}{
		company.ID,
		company.Profile.NomeEmpresa,
		company.Profile.CNPJ,
		company.Profile.EmailContato,
		company.Profile.EmailNotaFiscal,
		company.Profile.Telefone,
		company.Profile.ResponsavelGeral,
		contactCell(company.ResponsavelFinanceiro),
		contactCell(company.ResponsavelOperacao),
		contrato,
		string(company.IntegracaoTipo),
		company.OutroSistema,
		company.Whatsapp.Numero,
		company.Robot.Nome,
		company.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func contactCell(r model.Responsavel) string {
	parts := []string{r.Nome, r.Email, r.Telefone}
	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " / ")
}
