package repository

import (
	"testing"
	"time"

	"github.com/jai-app/jai-backend/internal/app/model"
	"github.com/jai-app/jai-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAttachmentTest(t *testing.T) (*gorm.DB, AttachmentRepository, *model.Company) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	company := newTestCompany("Academia Exemplo")
	require.NoError(t, NewCompanyRepository(testDB).Create(company))

	repo := NewAttachmentRepository(testDB)
	return testDB, repo, company
}

func newTestAttachment(companyID uint, key, originalName string) *model.Attachment {
	return &model.Attachment{
		StorageKey:   key,
		CompanyID:    companyID,
		OriginalName: originalName,
		ContentType:  "application/pdf",
		Size:         2048,
		UploadDate:   time.Now(),
	}
}

func TestAttachmentRepository_Create(t *testing.T) {
	testDB, repo, company := setupAttachmentTest(t)
	defer db.CleanupTestDB(testDB)

	attachment := newTestAttachment(company.ID, "abc123.pdf", "contrato.pdf")
	err := repo.Create(attachment)

	assert.NoError(t, err)

	// Duplicate storage key must be rejected
	err = repo.Create(newTestAttachment(company.ID, "abc123.pdf", "outro.pdf"))
	assert.Error(t, err)
}

func TestAttachmentRepository_Create_MissingRequiredFields(t *testing.T) {
	testDB, repo, company := setupAttachmentTest(t)
	defer db.CleanupTestDB(testDB)

	tests := []struct {
		name       string
		attachment *model.Attachment
	}{
		{
			name:       "Empty storage key",
			attachment: newTestAttachment(company.ID, "", "contrato.pdf"),
		},
		{
			name:       "No owning company",
			attachment: newTestAttachment(0, "abc123.pdf", "contrato.pdf"),
		},
		{
			name:       "Neither field set",
			attachment: &model.Attachment{OriginalName: "contrato.pdf"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(tt.attachment)
			assert.ErrorIs(t, err, ErrInvalidAttachment)
		})
	}

	var count int64
	require.NoError(t, testDB.Model(&model.Attachment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAttachmentRepository_ListByCompany(t *testing.T) {
	testDB, repo, company := setupAttachmentTest(t)
	defer db.CleanupTestDB(testDB)

	first := newTestAttachment(company.ID, "aaa.pdf", "contrato.pdf")
	first.UploadDate = time.Now().Add(-time.Hour)
	second := newTestAttachment(company.ID, "bbb.pdf", "planilha.xlsx")
	require.NoError(t, repo.Create(first))
	require.NoError(t, repo.Create(second))

	other := newTestCompany("Outra Academia")
	require.NoError(t, NewCompanyRepository(testDB).Create(other))
	require.NoError(t, repo.Create(newTestAttachment(other.ID, "ccc.pdf", "outro.pdf")))

	attachments, err := repo.ListByCompany(company.ID)
	require.NoError(t, err)
	require.Len(t, attachments, 2)
	assert.Equal(t, "aaa.pdf", attachments[0].StorageKey)
	assert.Equal(t, "bbb.pdf", attachments[1].StorageKey)
}

func TestAttachmentRepository_Resolve(t *testing.T) {
	testDB, repo, company := setupAttachmentTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(newTestAttachment(company.ID, "abc123.pdf", "contrato.pdf")))

	tests := []struct {
		name     string
		filename string
		wantKey  string
		wantErr  bool
	}{
		{
			name:     "By storage key",
			filename: "abc123.pdf",
			wantKey:  "abc123.pdf",
		},
		{
			name:     "By original name",
			filename: "contrato.pdf",
			wantKey:  "abc123.pdf",
		},
		{
			name:     "Unknown filename",
			filename: "nao-existe.pdf",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attachment, err := repo.Resolve(company.ID, tt.filename)

			if tt.wantErr {
				assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantKey, attachment.StorageKey)
			}
		})
	}
}

func TestAttachmentRepository_Resolve_OldestWinsOnDuplicateName(t *testing.T) {
	testDB, repo, company := setupAttachmentTest(t)
	defer db.CleanupTestDB(testDB)

	older := newTestAttachment(company.ID, "aaa.pdf", "contrato.pdf")
	older.UploadDate = time.Now().Add(-2 * time.Hour)
	newer := newTestAttachment(company.ID, "bbb.pdf", "contrato.pdf")
	newer.UploadDate = time.Now().Add(-time.Hour)
	require.NoError(t, repo.Create(newer))
	require.NoError(t, repo.Create(older))

	attachment, err := repo.Resolve(company.ID, "contrato.pdf")
	require.NoError(t, err)
	assert.Equal(t, "aaa.pdf", attachment.StorageKey)
}

func TestAttachmentRepository_Resolve_ScopedToCompany(t *testing.T) {
	testDB, repo, company := setupAttachmentTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(newTestAttachment(company.ID, "abc123.pdf", "contrato.pdf")))

	other := newTestCompany("Outra Academia")
	require.NoError(t, NewCompanyRepository(testDB).Create(other))

	_, err := repo.Resolve(other.ID, "abc123.pdf")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAttachmentRepository_DeleteByKey(t *testing.T) {
	testDB, repo, company := setupAttachmentTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(newTestAttachment(company.ID, "abc123.pdf", "contrato.pdf")))

	deleted, err := repo.DeleteByKey(company.ID, "abc123.pdf")
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, "contrato.pdf", deleted.OriginalName)

	// Second delete finds nothing and reports nil without error
	deleted, err = repo.DeleteByKey(company.ID, "abc123.pdf")
	assert.NoError(t, err)
	assert.Nil(t, deleted)
}

func TestAttachmentRepository_DeleteAllByCompany(t *testing.T) {
	testDB, repo, company := setupAttachmentTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(newTestAttachment(company.ID, "aaa.pdf", "contrato.pdf")))
	require.NoError(t, repo.Create(newTestAttachment(company.ID, "bbb.pdf", "planilha.xlsx")))

	other := newTestCompany("Outra Academia")
	require.NoError(t, NewCompanyRepository(testDB).Create(other))
	require.NoError(t, repo.Create(newTestAttachment(other.ID, "ccc.pdf", "outro.pdf")))

	deleted, err := repo.DeleteAllByCompany(company.ID)
	require.NoError(t, err)
	assert.Len(t, deleted, 2)

	remaining, err := repo.ListByCompany(company.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	kept, err := repo.ListByCompany(other.ID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestAttachmentRepository_FindOrphaned(t *testing.T) {
	testDB, repo, company := setupAttachmentTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(newTestAttachment(company.ID, "aaa.pdf", "contrato.pdf")))
	require.NoError(t, repo.Create(newTestAttachment(9999, "bbb.pdf", "orfao.pdf")))

	orphaned, err := repo.FindOrphaned()
	require.NoError(t, err)
	require.Len(t, orphaned, 1)
	assert.Equal(t, "bbb.pdf", orphaned[0].StorageKey)
}
