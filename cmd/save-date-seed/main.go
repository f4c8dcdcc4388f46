// Command save-date-seed creates a tenant together with its first admin user.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/savedate/save-date/internal/clock"
	"github.com/savedate/save-date/internal/config"
	"github.com/savedate/save-date/internal/models"
	repository "github.com/savedate/save-date/internal/repositories"
	service "github.com/savedate/save-date/internal/services"
	"github.com/savedate/save-date/internal/utils"
)

func main() {

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	tenantName := flag.String("tenant", "", "name of the tenant to create")
	adminName := flag.String("admin-name", "", "full name of the tenant's admin")
	adminEmail := flag.String("admin-email", "", "email of the tenant's admin")
	adminPassword := flag.String("admin-password", "", "initial password of the tenant's admin")

	cfg := config.MustLoad()
	if !flag.Parsed() {
		flag.Parse()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repos, err := repository.New(ctx, cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer repos.Close()

	// login is never exercised here, so no rate limiter is needed
	userService := service.NewUserService(repos.User, repos.Tenant, nil, []byte(cfg.Security.JWTKey),
		time.Duration(cfg.Security.JWTExpiryHours)*time.Hour, clock.New())

	adminReq := &models.CreateUserRequest{
		Name:     *adminName,
		Email:    *adminEmail,
		Password: *adminPassword,
	}
	if err := utils.ValidateStruct(validator.New(), adminReq); err != nil {
		slog.Error("❌ Invalid admin user", slog.String("error", err.Error()))
		os.Exit(2)
	}

	tenant, admin, err := userService.CreateTenant(ctx, *tenantName, adminReq)
	if err != nil {
		slog.Error("❌ Failed to seed tenant", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("✅ Tenant created",
		slog.String("tenantID", tenant.ID.String()),
		slog.String("adminID", admin.ID.String()),
		slog.String("adminEmail", admin.Email))
}
