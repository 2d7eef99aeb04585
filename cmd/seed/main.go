package main

import (
	"fmt"
	"log"
	"os"

	"github.com/jai-app/jai-backend/config"
	"github.com/jai-app/jai-backend/internal/app/repository"
	"github.com/jai-app/jai-backend/internal/app/service"
	"github.com/jai-app/jai-backend/internal/db"
)

// Bootstraps the first admin account from the command line. Refuses to run
// when an admin already exists, same as the HTTP setup endpoint.
func main() {
	if len(os.Args) < 3 {
		log.Fatal("Usage: go run cmd/seed/main.go <email> <password> [name]")
	}

	email := os.Args[1]
	password := os.Args[2]
	name := ""
	if len(os.Args) > 3 {
		name = os.Args[3]
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	adminRepo := repository.NewAdminRepository(db.GetDB())
	authService := service.NewAuthService(adminRepo, cfg.JWT.Secret, cfg.JWT.TokenExpiry)

	admin, err := authService.Setup(email, password, name)
	if err != nil {
		log.Fatal("Failed to create admin:", err)
	}

	fmt.Printf("Admin created: id=%d email=%s name=%q\n", admin.ID, admin.Email, admin.Name)
}
