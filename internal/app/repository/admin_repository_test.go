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

func setupAdminTest(t *testing.T) (*gorm.DB, AdminRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewAdminRepository(testDB)
	return testDB, repo
}

func TestAdminRepository_Create(t *testing.T) {
	testDB, repo := setupAdminTest(t)
	defer db.CleanupTestDB(testDB)

	admin := &model.Admin{
		Email:        "admin@jai.app",
		PasswordHash: "hashedpassword",
		Name:         "Administrador JAI",
		IsActive:     true,
	}
	require.NoError(t, repo.Create(admin))
	assert.NotZero(t, admin.ID)

	// Duplicate email must be rejected
	err := repo.Create(&model.Admin{
		Email:        "admin@jai.app",
		PasswordHash: "otherhash",
		Name:         "Outro Admin",
		IsActive:     true,
	})
	assert.Error(t, err)
}

func TestAdminRepository_FindByEmail(t *testing.T) {
	testDB, repo := setupAdminTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(&model.Admin{
		Email:        "admin@jai.app",
		PasswordHash: "hashedpassword",
		Name:         "Administrador JAI",
		IsActive:     true,
	}))

	admin, err := repo.FindByEmail("admin@jai.app")
	require.NoError(t, err)
	assert.Equal(t, "Administrador JAI", admin.Name)

	_, err = repo.FindByEmail("desconhecido@jai.app")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAdminRepository_Count(t *testing.T) {
	testDB, repo := setupAdminTest(t)
	defer db.CleanupTestDB(testDB)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, repo.Create(&model.Admin{
		Email:        "admin@jai.app",
		PasswordHash: "hashedpassword",
		Name:         "Administrador JAI",
		IsActive:     true,
	}))

	count, err = repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestAdminRepository_Update_LastLogin(t *testing.T) {
	testDB, repo := setupAdminTest(t)
	defer db.CleanupTestDB(testDB)

	admin := &model.Admin{
		Email:        "admin@jai.app",
		PasswordHash: "hashedpassword",
		Name:         "Administrador JAI",
		IsActive:     true,
	}
	require.NoError(t, repo.Create(admin))
	require.Nil(t, admin.LastLogin)

	now := time.Now()
	admin.LastLogin = &now
	require.NoError(t, repo.Update(admin))

	found, err := repo.FindByID(admin.ID)
	require.NoError(t, err)
	require.NotNil(t, found.LastLogin)
	assert.WithinDuration(t, now, *found.LastLogin, time.Second)
}
