package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/jai-app/jai-backend/internal/app/model"
	"github.com/jai-app/jai-backend/internal/app/repository"
	"github.com/jai-app/jai-backend/internal/storage"
	"github.com/jai-app/jai-backend/pkg/logger"
	"github.com/jai-app/jai-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrFileNotFound = errors.New("arquivo não encontrado")
	ErrNoFilesSent  = errors.New("nenhum arquivo enviado")
	ErrFileTooLarge = errors.New("arquivo excede o tamanho máximo permitido")
)

// UploadInput is one file from a multipart request.
type UploadInput struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// UploadFailure records a file that could not be stored. The batch keeps
// going; the caller reports these alongside the successes.
type UploadFailure struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// CascadeResult summarizes a company removal.
type CascadeResult struct {
	CompanyName  string
	FilesRemoved int
}

type FileService interface {
	UploadAttachments(ctx context.Context, companyID uint, files []UploadInput) ([]model.Attachment, []UploadFailure, error)
	ListAttachments(companyID uint) ([]model.Attachment, error)
	DownloadAttachment(ctx context.Context, companyID uint, filename string) (*model.Attachment, io.ReadCloser, error)
	DeleteAttachment(ctx context.Context, companyID uint, filename string) (*model.Attachment, error)
	DeleteCompanyCascade(ctx context.Context, companyID uint) (*CascadeResult, error)
}

type fileService struct {
	companyRepo    repository.CompanyRepository
	attachmentRepo repository.AttachmentRepository
	blobs          storage.BlobStore
	maxFileSize    int64
}

func NewFileService(
	companyRepo repository.CompanyRepository,
	attachmentRepo repository.AttachmentRepository,
	blobs storage.BlobStore,
	maxFileSize int64,
) FileService {
	return &fileService{
		companyRepo:    companyRepo,
		attachmentRepo: attachmentRepo,
		blobs:          blobs,
		maxFileSize:    maxFileSize,
	}
}

func (s *fileService) UploadAttachments(ctx context.Context, companyID uint, files []UploadInput) ([]model.Attachment, []UploadFailure, error) {
	logger.Info("Uploading attachments", map[string]interface{}{
		"company_id": companyID,
		"count":      len(files),
	})

	if _, err := s.requireCompany(companyID); err != nil {
		return nil, nil, err
	}

	if len(files) == 0 {
		return nil, nil, ErrNoFilesSent
	}

	// The size ceiling rejects the whole batch before any byte lands.
	for _, file := range files {
		if file.Size > s.maxFileSize {
			logger.Warn("Upload rejected, file exceeds size limit", map[string]interface{}{
				"company_id": companyID,
				"filename":   file.Filename,
				"size":       file.Size,
				"max_size":   s.maxFileSize,
			})
			return nil, nil, ErrFileTooLarge
		}
	}

	var uploaded []model.Attachment
	var failed []UploadFailure

	for _, file := range files {
		attachment, err := s.storeOne(ctx, companyID, file)
		if err != nil {
			logger.Error("Failed to store attachment, continuing batch", err, map[string]interface{}{
				"company_id": companyID,
				"filename":   file.Filename,
			})
			failed = append(failed, UploadFailure{
				Filename: file.Filename,
				Reason:   err.Error(),
			})
			continue
		}
		uploaded = append(uploaded, *attachment)
	}

	logger.Info("Attachment batch finished", map[string]interface{}{
		"company_id": companyID,
		"uploaded":   len(uploaded),
		"failed":     len(failed),
	})
	return uploaded, failed, nil
}

func (s *fileService) storeOne(ctx context.Context, companyID uint, file UploadInput) (*model.Attachment, error) {
	reader, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	key := util.GenerateStorageKey(file.Filename)
	if err := s.blobs.Put(ctx, key, reader, file.Size); err != nil {
		return nil, err
	}

	attachment := &model.Attachment{
		StorageKey:   key,
		CompanyID:    companyID,
		OriginalName: file.Filename,
		ContentType:  file.ContentType,
		Size:         file.Size,
		UploadDate:   time.Now(),
	}
	if err := s.attachmentRepo.Create(attachment); err != nil {
		// Registry write failed, the blob has no row pointing at it.
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			logger.Error("Failed to remove blob after registry failure", delErr, map[string]interface{}{
				"storage_key": key,
				"company_id":  companyID,
			})
		}
		return nil, err
	}

	return attachment, nil
}

func (s *fileService) ListAttachments(companyID uint) ([]model.Attachment, error) {
	if _, err := s.requireCompany(companyID); err != nil {
		return nil, err
	}
	return s.attachmentRepo.ListByCompany(companyID)
}

func (s *fileService) DownloadAttachment(ctx context.Context, companyID uint, filename string) (*model.Attachment, io.ReadCloser, error) {
	logger.Debug("Downloading attachment", map[string]interface{}{
		"company_id": companyID,
		"filename":   filename,
	})

	if _, err := s.requireCompany(companyID); err != nil {
		return nil, nil, err
	}

	attachment, err := s.attachmentRepo.Resolve(companyID, filename)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrFileNotFound
		}
		return nil, nil, err
	}

	reader, err := s.blobs.Open(ctx, attachment.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrBlobNotFound) {
			// Registry row exists but the bytes are gone. Worth its own
			// log line so operators can spot the drift.
			logger.Error("Attachment metadata present but blob missing", err, map[string]interface{}{
				"company_id":  companyID,
				"storage_key": attachment.StorageKey,
				"filename":    filename,
			})
			return nil, nil, ErrFileNotFound
		}
		logger.Error("Failed to open attachment blob", err, map[string]interface{}{
			"company_id":  companyID,
			"storage_key": attachment.StorageKey,
		})
		return nil, nil, err
	}

	return attachment, reader, nil
}

func (s *fileService) DeleteAttachment(ctx context.Context, companyID uint, filename string) (*model.Attachment, error) {
	logger.Info("Deleting attachment", map[string]interface{}{
		"company_id": companyID,
		"filename":   filename,
	})

	if _, err := s.requireCompany(companyID); err != nil {
		return nil, err
	}

	attachment, err := s.attachmentRepo.Resolve(companyID, filename)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}

	// Registry row goes first so a failed blob delete leaves an orphan
	// blob, never a dangling row.
	deleted, err := s.attachmentRepo.DeleteByKey(companyID, attachment.StorageKey)
	if err != nil {
		return nil, err
	}
	if deleted == nil {
		return nil, ErrFileNotFound
	}

	if err := s.blobs.Delete(ctx, deleted.StorageKey); err != nil {
		logger.Error("Failed to delete attachment blob", err, map[string]interface{}{
			"company_id":  companyID,
			"storage_key": deleted.StorageKey,
		})
	}

	logger.Info("Attachment deleted", map[string]interface{}{
		"company_id":  companyID,
		"storage_key": deleted.StorageKey,
	})
	return deleted, nil
}

func (s *fileService) DeleteCompanyCascade(ctx context.Context, companyID uint) (*CascadeResult, error) {
	logger.Info("Deleting company and attachments", map[string]interface{}{
		"company_id": companyID,
	})

	company, err := s.requireCompany(companyID)
	if err != nil {
		return nil, err
	}

	attachments, err := s.attachmentRepo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}

	// Blobs first, best effort. A blob that refuses to die must not keep
	// the company record alive.
	for _, attachment := range attachments {
		if err := s.blobs.Delete(ctx, attachment.StorageKey); err != nil {
			logger.Error("Failed to delete blob during cascade", err, map[string]interface{}{
				"company_id":  companyID,
				"storage_key": attachment.StorageKey,
			})
		}
	}

	removed, err := s.attachmentRepo.DeleteAllByCompany(companyID)
	if err != nil {
		return nil, err
	}

	// Company record last: if anything above failed hard we still know
	// which company the leftovers belong to.
	if err := s.companyRepo.Delete(companyID); err != nil {
		return nil, err
	}

	logger.Info("Company deleted with attachments", map[string]interface{}{
		"company_id":    companyID,
		"files_removed": len(removed),
	})
	return &CascadeResult{
		CompanyName:  company.Profile.NomeEmpresa,
		FilesRemoved: len(removed),
	}, nil
}

func (s *fileService) requireCompany(companyID uint) (*model.Company, error) {
	company, err := s.companyRepo.FindByID(companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Company not found", map[string]interface{}{
				"company_id": companyID,
			})
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return company, nil
}
