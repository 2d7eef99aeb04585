package service

import (
	"errors"
	"time"

	"github.com/jai-app/jai-backend/internal/app/model"
	"github.com/jai-app/jai-backend/internal/app/repository"
	"github.com/jai-app/jai-backend/pkg/logger"
	"github.com/jai-app/jai-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrSetupAlreadyDone   = errors.New("administrador já configurado")
	ErrInvalidCredentials = errors.New("credenciais inválidas")
	ErrAdminDisabled      = errors.New("administrador desativado")
	ErrPasswordTooShort   = errors.New("a senha deve ter no mínimo 6 caracteres")
	ErrAdminNotFound      = errors.New("administrador não encontrado")
)

const defaultAdminName = "Administrador JAI"

type AuthService interface {
	// Setup creates the first admin. It refuses to run twice.
	Setup(email, password, name string) (*model.Admin, error)
	Login(email, password string) (*model.Admin, string, error)
	GetAdminByID(id uint) (*model.Admin, error)
}

type authService struct {
	adminRepo   repository.AdminRepository
	jwtSecret   string
	tokenExpiry time.Duration
}

func NewAuthService(adminRepo repository.AdminRepository, jwtSecret string, tokenExpiry time.Duration) AuthService {
	return &authService{
		adminRepo:   adminRepo,
		jwtSecret:   jwtSecret,
		tokenExpiry: tokenExpiry,
	}
}

func (s *authService) Setup(email, password, name string) (*model.Admin, error) {
	logger.Info("Running admin setup", map[string]interface{}{
		"email": email,
	})

	count, err := s.adminRepo.Count()
	if err != nil {
		return nil, err
	}
	if count > 0 {
		logger.Warn("Admin setup refused, admin already exists", nil)
		return nil, ErrSetupAlreadyDone
	}

	if len(password) < 6 {
		return nil, ErrPasswordTooShort
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash admin password", err, nil)
		return nil, err
	}

	if name == "" {
		name = defaultAdminName
	}

	admin := &model.Admin{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		IsActive:     true,
	}
	if err := s.adminRepo.Create(admin); err != nil {
		logger.Error("Failed to create admin", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}

	logger.Info("Admin created", map[string]interface{}{
		"admin_id": admin.ID,
		"email":    admin.Email,
	})
	return admin, nil
}

func (s *authService) Login(email, password string) (*model.Admin, string, error) {
	logger.Info("Admin login attempt", map[string]interface{}{
		"email": email,
	})

	admin, err := s.adminRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed, admin not found", map[string]interface{}{
				"email": email,
			})
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !util.VerifyPassword(admin.PasswordHash, password) {
		logger.Warn("Login failed, wrong password", map[string]interface{}{
			"email": email,
		})
		return nil, "", ErrInvalidCredentials
	}

	if !admin.IsActive {
		logger.Warn("Login refused, admin disabled", map[string]interface{}{
			"admin_id": admin.ID,
		})
		return nil, "", ErrAdminDisabled
	}

	token, err := util.GenerateToken(admin.ID, admin.Email, s.jwtSecret, s.tokenExpiry)
	if err != nil {
		logger.Error("Failed to generate token", err, map[string]interface{}{
			"admin_id": admin.ID,
		})
		return nil, "", err
	}

	now := time.Now()
	admin.LastLogin = &now
	if err := s.adminRepo.Update(admin); err != nil {
		// Login still succeeds, the timestamp is informational.
		logger.Warn("Failed to record last login", map[string]interface{}{
			"admin_id": admin.ID,
			"error":    err.Error(),
		})
	}

	logger.Info("Admin logged in", map[string]interface{}{
		"admin_id": admin.ID,
	})
	return admin, token, nil
}

func (s *authService) GetAdminByID(id uint) (*model.Admin, error) {
	admin, err := s.adminRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return admin, nil
}
