package repository

import (
	"errors"

	"github.com/jai-app/jai-backend/internal/app/model"
	"github.com/jai-app/jai-backend/pkg/logger"
	"gorm.io/gorm"
)

// ErrInvalidAttachment rejects registry rows without a storage key or an
// owning company. The column constraints do not catch empty string or zero
// uint, so the check is explicit.
var ErrInvalidAttachment = errors.New("anexo requer chave de armazenamento e empresa")

type AttachmentRepository interface {
	Create(attachment *model.Attachment) error
	ListByCompany(companyID uint) ([]model.Attachment, error)
	// Resolve looks an attachment up by storage key first, then by
	// original filename, always scoped to the owning company.
	Resolve(companyID uint, filename string) (*model.Attachment, error)
	// DeleteByKey removes the registry row and returns it, or nil when
	// no row matched.
	DeleteByKey(companyID uint, key string) (*model.Attachment, error)
	// DeleteAllByCompany removes every registry row for the company and
	// returns the deleted rows so callers can clean up blobs.
	DeleteAllByCompany(companyID uint) ([]model.Attachment, error)
	// FindOrphaned returns attachments whose company no longer exists.
	FindOrphaned() ([]model.Attachment, error)
}

type attachmentRepository struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &attachmentRepository{db: db}
}

func (r *attachmentRepository) Create(attachment *model.Attachment) error {
	if attachment.StorageKey == "" || attachment.CompanyID == 0 {
		return ErrInvalidAttachment
	}

	logger.Debug("Creating attachment in database", map[string]interface{}{
		"storage_key":   attachment.StorageKey,
		"company_id":    attachment.CompanyID,
		"original_name": attachment.OriginalName,
	})

	if err := r.db.Create(attachment).Error; err != nil {
		logger.Error("Failed to create attachment in database", err, map[string]interface{}{
			"storage_key": attachment.StorageKey,
			"company_id":  attachment.CompanyID,
		})
		return err
	}

	return nil
}

func (r *attachmentRepository) ListByCompany(companyID uint) ([]model.Attachment, error) {
	logger.Debug("Listing attachments for company", map[string]interface{}{
		"company_id": companyID,
	})

	var attachments []model.Attachment
	if err := r.db.Where("company_id = ?", companyID).
		Order("upload_date ASC").
		Find(&attachments).Error; err != nil {
		logger.Error("Failed to list attachments", err, map[string]interface{}{
			"company_id": companyID,
		})
		return nil, err
	}

	logger.Debug("Attachments listed", map[string]interface{}{
		"company_id": companyID,
		"count":      len(attachments),
	})
	return attachments, nil
}

func (r *attachmentRepository) Resolve(companyID uint, filename string) (*model.Attachment, error) {
	var attachment model.Attachment
	err := r.db.Where("company_id = ? AND storage_key = ?", companyID, filename).
		First(&attachment).Error
	if err == nil {
		return &attachment, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to resolve attachment by key", err, map[string]interface{}{
			"company_id": companyID,
			"filename":   filename,
		})
		return nil, err
	}

	err = r.db.Where("company_id = ? AND original_name = ?", companyID, filename).
		Order("upload_date ASC").
		First(&attachment).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to resolve attachment by original name", err, map[string]interface{}{
				"company_id": companyID,
				"filename":   filename,
			})
		}
		return nil, err
	}

	return &attachment, nil
}

func (r *attachmentRepository) DeleteByKey(companyID uint, key string) (*model.Attachment, error) {
	var attachment model.Attachment
	err := r.db.Where("company_id = ? AND storage_key = ?", companyID, key).
		First(&attachment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if err := r.db.Delete(&attachment).Error; err != nil {
		logger.Error("Failed to delete attachment from database", err, map[string]interface{}{
			"storage_key": key,
			"company_id":  companyID,
		})
		return nil, err
	}

	logger.Debug("Attachment deleted from database", map[string]interface{}{
		"storage_key": key,
		"company_id":  companyID,
	})
	return &attachment, nil
}

func (r *attachmentRepository) DeleteAllByCompany(companyID uint) ([]model.Attachment, error) {
	var attachments []model.Attachment
	if err := r.db.Where("company_id = ?", companyID).Find(&attachments).Error; err != nil {
		return nil, err
	}
	if len(attachments) == 0 {
		return attachments, nil
	}

	if err := r.db.Where("company_id = ?", companyID).
		Delete(&model.Attachment{}).Error; err != nil {
		logger.Error("Failed to delete attachments for company", err, map[string]interface{}{
			"company_id": companyID,
		})
		return nil, err
	}

	logger.Debug("Attachments deleted for company", map[string]interface{}{
		"company_id": companyID,
		"count":      len(attachments),
	})
	return attachments, nil
}

func (r *attachmentRepository) FindOrphaned() ([]model.Attachment, error) {
	var attachments []model.Attachment
	err := r.db.
		Where("company_id NOT IN (?)", r.db.Model(&model.Company{}).Select("id")).
		Find(&attachments).Error
	if err != nil {
		logger.Error("Failed to find orphaned attachments", err, nil)
		return nil, err
	}
	return attachments, nil
}
