package router

import (
	"github.com/gin-gonic/gin"
	"github.com/jai-app/jai-backend/config"
	"github.com/jai-app/jai-backend/internal/app/controller"
	"github.com/jai-app/jai-backend/internal/middleware"
)

type Router struct {
	authController    *controller.AuthController
	companyController *controller.CompanyController
	fileController    *controller.FileController
	authMiddleware    *middleware.AuthMiddleware
	config            *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	companyController *controller.CompanyController,
	fileController *controller.FileController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:    authController,
		companyController: companyController,
		fileController:    fileController,
		authMiddleware:    authMiddleware,
		config:            cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "healthy",
				"message": "JAI onboarding API is running",
			})
		})

		auth := api.Group("/auth")
		{
			auth.POST("/setup", r.authController.Setup)
			auth.POST("/login", r.authController.Login)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
		}

		companies := api.Group("/companies")
		{
			// The onboarding form is filled in by the client before any
			// admin exists, so creation and lookup stay open.
			companies.POST("", r.companyController.CreateCompany)
			companies.GET("/:id", r.companyController.GetCompany)
			companies.PUT("/:id", r.companyController.UpdateCompany)
			companies.DELETE("/:id", r.companyController.DeleteCompany)

			companies.GET("", r.authMiddleware.Authenticate(), r.companyController.ListCompanies)
			companies.GET("/export", r.authMiddleware.Authenticate(), r.companyController.ExportCompanies)
			companies.GET("/nome/:nome", r.authMiddleware.Authenticate(), r.companyController.GetCompanyByName)

			companies.POST("/:id/files", r.fileController.UploadFiles)
			companies.GET("/:id/files", r.authMiddleware.Authenticate(), r.fileController.ListFiles)
			companies.GET("/:id/files/:filename", r.fileController.DownloadFile)
			companies.DELETE("/:id/files/:filename", r.authMiddleware.Authenticate(), r.fileController.DeleteFile)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
