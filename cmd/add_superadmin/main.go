// Command add_superadmin creates the first super-admin account so that the API can be used.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/fxdesk/remittance_backend/internal/apperrors"
	"github.com/fxdesk/remittance_backend/internal/core/domain"
	"github.com/fxdesk/remittance_backend/internal/core/services"
	"github.com/fxdesk/remittance_backend/internal/dto"
	"github.com/fxdesk/remittance_backend/internal/platform/config"
	"github.com/fxdesk/remittance_backend/internal/repositories/database/pgsql"
	"github.com/fxdesk/remittance_backend/pkg/database"
	"github.com/spf13/pflag"
)

// bootstrapActor is recorded as the creator of accounts made from the command line.
const bootstrapActor = "bootstrap"

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	username := pflag.StringP("username", "u", "", "login name of the super-admin (required)")
	email := pflag.StringP("email", "e", "", "email address, also used for Google sign-in (required)")
	name := pflag.StringP("name", "n", "Super Admin", "display name")
	password := pflag.StringP("password", "p", "", "password; defaults to $SUPERADMIN_PASSWORD")
	dbURL := pflag.String("db-url", "", "database URL; defaults to $PGSQL_URL")
	migrate := pflag.Bool("migrate", false, "apply pending migrations first")
	pflag.Parse()

	if *password == "" {
		*password = os.Getenv("SUPERADMIN_PASSWORD")
	}
	if *username == "" || *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "username, email and password are required")
		pflag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if *dbURL != "" {
		cfg.DatabaseURL = *dbURL
	}

	if *migrate {
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			logger.Error("Failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	ctx := context.Background()
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	repos := pgsql.NewRepositoryProvider(dbPool)
	userService := services.NewUserService(repos.UserRepo, repos.OrganisationRepo)

	actor := domain.Principal{UserID: bootstrapActor, Role: domain.RoleSuperAdmin}
	user, err := userService.CreateUser(ctx, actor, dto.CreateUserRequest{
		Username: *username,
		Email:    *email,
		Name:     *name,
		Password: *password,
		Role:     domain.RoleSuperAdmin,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("User already exists, nothing to do", slog.String("username", *username))
			return
		}
		logger.Error("Failed to create super-admin", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Super-admin created", slog.String("user_id", user.UserID), slog.String("username", user.Username))
}
