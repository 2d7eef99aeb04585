package repository

import (
	"github.com/jai-app/jai-backend/internal/app/model"
	"github.com/jai-app/jai-backend/pkg/logger"
	"gorm.io/gorm"
)

type CompanyRepository interface {
	Create(company *model.Company) error
	Update(company *model.Company) error
	Delete(id uint) error
	FindAll() ([]model.Company, error)
	FindByID(id uint) (*model.Company, error)
	FindByName(name string) (*model.Company, error)
}

type companyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(company *model.Company) error {
	logger.Debug("Creating company in database", map[string]interface{}{
		"nome_empresa": company.Profile.NomeEmpresa,
		"cnpj":         company.Profile.CNPJ,
	})

	if err := r.db.Create(company).Error; err != nil {
		logger.Error("Failed to create company in database", err, map[string]interface{}{
			"nome_empresa": company.Profile.NomeEmpresa,
		})
		return err
	}

	logger.Debug("Company created in database", map[string]interface{}{
		"company_id":   company.ID,
		"nome_empresa": company.Profile.NomeEmpresa,
	})
	return nil
}

func (r *companyRepository) Update(company *model.Company) error {
	logger.Debug("Updating company in database", map[string]interface{}{
		"company_id": company.ID,
	})

	if err := r.db.Save(company).Error; err != nil {
		logger.Error("Failed to update company in database", err, map[string]interface{}{
			"company_id": company.ID,
		})
		return err
	}

	logger.Debug("Company updated in database", map[string]interface{}{
		"company_id": company.ID,
	})
	return nil
}

func (r *companyRepository) Delete(id uint) error {
	logger.Debug("Deleting company from database", map[string]interface{}{
		"company_id": id,
	})

	if err := r.db.Delete(&model.Company{}, id).Error; err != nil {
		logger.Error("Failed to delete company from database", err, map[string]interface{}{
			"company_id": id,
		})
		return err
	}

	logger.Debug("Company deleted from database", map[string]interface{}{
		"company_id": id,
	})
	return nil
}

func (r *companyRepository) FindAll() ([]model.Company, error) {
	logger.Debug("Finding all companies")

	var companies []model.Company
	if err := r.db.Order("company_nome_empresa ASC").Find(&companies).Error; err != nil {
		logger.Error("Failed to find companies", err, nil)
		return nil, err
	}

	logger.Debug("Companies found", map[string]interface{}{
		"count": len(companies),
	})
	return companies, nil
}

func (r *companyRepository) FindByID(id uint) (*model.Company, error) {
	logger.Debug("Finding company by ID", map[string]interface{}{
		"company_id": id,
	})

	var company model.Company
	if err := r.db.First(&company, id).Error; err != nil {
		logger.Error("Failed to find company", err, map[string]interface{}{
			"company_id": id,
		})
		return nil, err
	}

	return &company, nil
}

func (r *companyRepository) FindByName(name string) (*model.Company, error) {
	logger.Debug("Finding company by name", map[string]interface{}{
		"nome_empresa": name,
	})

	var company model.Company
	if err := r.db.Where("company_nome_empresa = ?", name).First(&company).Error; err != nil {
		logger.Error("Failed to find company by name", err, map[string]interface{}{
			"nome_empresa": name,
		})
		return nil, err
	}

	return &company, nil
}
