package service

import (
	"errors"

	"github.com/jai-app/jai-backend/internal/app/model"
	"github.com/jai-app/jai-backend/internal/app/repository"
	"github.com/jai-app/jai-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCompanyNotFound = errors.New("empresa não encontrada")
)

// ValidationError carries the per-field messages for a rejected form so the
// controller can return them all at once.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "dados da empresa inválidos"
}

type CompanyService interface {
	CreateCompany(company *model.Company) (*model.Company, error)
	GetCompanyByID(id uint) (*model.Company, error)
	GetCompanyByName(name string) (*model.Company, error)
	ListCompanies() ([]model.Company, error)
	UpdateCompany(id uint, input *model.Company) (*model.Company, error)
}

type companyService struct {
	companyRepo repository.CompanyRepository
}

func NewCompanyService(companyRepo repository.CompanyRepository) CompanyService {
	return &companyService{companyRepo: companyRepo}
}

func (s *companyService) CreateCompany(company *model.Company) (*model.Company, error) {
	logger.Info("Creating company", map[string]interface{}{
		"nome_empresa": company.Profile.NomeEmpresa,
	})

	if err := validateCompany(company); err != nil {
		logger.Warn("Company validation failed", map[string]interface{}{
			"nome_empresa": company.Profile.NomeEmpresa,
		})
		return nil, err
	}

	if err := s.companyRepo.Create(company); err != nil {
		logger.Error("Failed to create company", err, map[string]interface{}{
			"nome_empresa": company.Profile.NomeEmpresa,
		})
		return nil, err
	}

	logger.Info("Company created", map[string]interface{}{
		"company_id":   company.ID,
		"nome_empresa": company.Profile.NomeEmpresa,
	})
	return company, nil
}

func (s *companyService) GetCompanyByID(id uint) (*model.Company, error) {
	logger.Debug("Fetching company by ID", map[string]interface{}{
		"company_id": id,
	})

	company, err := s.companyRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Company not found", map[string]interface{}{
				"company_id": id,
			})
			return nil, ErrCompanyNotFound
		}
		logger.Error("Failed to fetch company", err, map[string]interface{}{
			"company_id": id,
		})
		return nil, err
	}

	return company, nil
}

func (s *companyService) GetCompanyByName(name string) (*model.Company, error) {
	logger.Debug("Fetching company by name", map[string]interface{}{
		"nome_empresa": name,
	})

	company, err := s.companyRepo.FindByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Company not found by name", map[string]interface{}{
				"nome_empresa": name,
			})
			return nil, ErrCompanyNotFound
		}
		logger.Error("Failed to fetch company by name", err, map[string]interface{}{
			"nome_empresa": name,
		})
		return nil, err
	}

	return company, nil
}

func (s *companyService) ListCompanies() ([]model.Company, error) {
	logger.Debug("Listing companies")

	companies, err := s.companyRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list companies", err)
		return nil, err
	}

	logger.Info("Companies fetched", map[string]interface{}{
		"count": len(companies),
	})
	return companies, nil
}

func (s *companyService) UpdateCompany(id uint, input *model.Company) (*model.Company, error) {
	logger.Info("Updating company", map[string]interface{}{
		"company_id": id,
	})

	existing, err := s.companyRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Company not found for update", map[string]interface{}{
				"company_id": id,
			})
			return nil, ErrCompanyNotFound
		}
		logger.Error("Failed to find company for update", err, map[string]interface{}{
			"company_id": id,
		})
		return nil, err
	}

	if err := validateCompany(input); err != nil {
		logger.Warn("Company validation failed on update", map[string]interface{}{
			"company_id": id,
		})
		return nil, err
	}

	// Full replacement: the client always submits the whole form.
	input.ID = existing.ID
	input.CreatedAt = existing.CreatedAt
	if err := s.companyRepo.Update(input); err != nil {
		logger.Error("Failed to update company", err, map[string]interface{}{
			"company_id": id,
		})
		return nil, err
	}

	logger.Info("Company updated", map[string]interface{}{
		"company_id": id,
	})
	return input, nil
}

func validateCompany(company *model.Company) error {
	fields := map[string]string{}

	requireField(fields, "company.nomeEmpresa", company.Profile.NomeEmpresa)
	requireField(fields, "company.cnpj", company.Profile.CNPJ)
	requireField(fields, "company.emailContato", company.Profile.EmailContato)
	requireField(fields, "company.emailNotaFiscal", company.Profile.EmailNotaFiscal)
	requireField(fields, "company.telefone", company.Profile.Telefone)
	requireField(fields, "company.responsavelGeral", company.Profile.ResponsavelGeral)

	requireField(fields, "responsavelFinanceiro.nome", company.ResponsavelFinanceiro.Nome)
	requireField(fields, "responsavelFinanceiro.email", company.ResponsavelFinanceiro.Email)
	requireField(fields, "responsavelFinanceiro.telefone", company.ResponsavelFinanceiro.Telefone)

	requireField(fields, "responsavelOperacao.nome", company.ResponsavelOperacao.Nome)
	requireField(fields, "responsavelOperacao.email", company.ResponsavelOperacao.Email)
	requireField(fields, "responsavelOperacao.telefone", company.ResponsavelOperacao.Telefone)

	// ContratoAceito binds to a plain bool, so an omitted flag arrives as
	// false and cannot be told apart from an explicit false. Requiring it
	// here would reject legitimate unaccepted submissions.
	switch company.IntegracaoTipo {
	case model.IntegrationEVO, model.IntegrationOther, model.IntegrationNone:
	case "":
		fields["integracaoTipo"] = "campo obrigatório"
	default:
		fields["integracaoTipo"] = "valor inválido"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func requireField(fields map[string]string, name, value string) {
	if value == "" {
		fields[name] = "campo obrigatório"
	}
}
