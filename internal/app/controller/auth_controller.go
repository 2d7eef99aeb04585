package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jai-app/jai-backend/internal/app/model"
	"github.com/jai-app/jai-backend/internal/app/service"
	apperrors "github.com/jai-app/jai-backend/internal/errors"
	"github.com/jai-app/jai-backend/internal/middleware"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

type SetupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func adminJSON(admin *model.Admin) gin.H {
	return gin.H{
		"id":        admin.ID,
		"email":     admin.Email,
		"name":      admin.Name,
		"isActive":  admin.IsActive,
		"lastLogin": admin.LastLogin,
	}
}

// Setup creates the first admin account
// POST /api/auth/setup
func (ctrl *AuthController) Setup(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid setup request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "dados de entrada inválidos")
		return
	}

	admin, err := ctrl.authService.Setup(req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrSetupAlreadyDone) {
			log.Warn("Setup refused: admin already exists", nil)
			apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.AuthSetupDone, "administrador já configurado")
			return
		}
		if errors.Is(err, service.ErrPasswordTooShort) {
			apperrors.BadRequest(c, apperrors.ValidationTooShort, "a senha deve ter no mínimo 6 caracteres")
			return
		}
		log.Error("Setup failed", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create admin")
		return
	}

	log.Info("Admin setup completed", map[string]interface{}{
		"admin_id": admin.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"admin":   adminJSON(admin),
	})
}

// Login authenticates an admin and returns a JWT
// POST /api/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid login request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "dados de entrada inválidos")
		return
	}

	admin, token, err := ctrl.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			log.Warn("Login failed: invalid credentials", map[string]interface{}{
				"email": req.Email,
			})
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "email ou senha incorretos")
			return
		}
		if errors.Is(err, service.ErrAdminDisabled) {
			log.Warn("Login refused: admin disabled", map[string]interface{}{
				"email": req.Email,
			})
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthAdminDisabled, "administrador desativado")
			return
		}
		log.Error("Login failed", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "login")
		return
	}

	log.Info("Admin logged in", map[string]interface{}{
		"admin_id": admin.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"admin":   adminJSON(admin),
	})
}

// Me returns the authenticated admin
// GET /api/auth/me
func (ctrl *AuthController) Me(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	adminID, exists := middleware.GetAdminID(c)
	if !exists {
		apperrors.Unauthorized(c, "autenticação necessária")
		return
	}

	admin, err := ctrl.authService.GetAdminByID(adminID)
	if err != nil {
		if errors.Is(err, service.ErrAdminNotFound) {
			log.Warn("Admin not found", map[string]interface{}{
				"admin_id": adminID,
			})
			apperrors.NotFound(c, apperrors.ResourceNotFound, "administrador não encontrado")
			return
		}
		log.Error("Failed to load admin", err, map[string]interface{}{
			"admin_id": adminID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get admin")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"admin":   adminJSON(admin),
	})
}

// Logout acknowledges a logout. The token is stateless; the client drops it.
// POST /api/auth/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if adminID, exists := middleware.GetAdminID(c); exists {
		log.Info("Admin logged out", map[string]interface{}{
			"admin_id": adminID,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "logout realizado com sucesso",
	})
}
