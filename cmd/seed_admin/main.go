// seed_admin crea (o reactiva) un usuario administrador en el directorio del medio configurado.
//
// Uso: go run ./cmd/seed_admin <username> <password> [email]
// Lee STORAGE_DRIVER, STORAGE_NAMESPACE, etc. igual que la API.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jhoicas/print3d-api/internal/application/auth"
	"github.com/jhoicas/print3d-api/internal/application/dto"
	"github.com/jhoicas/print3d-api/internal/application/session"
	"github.com/jhoicas/print3d-api/internal/domain"
	"github.com/jhoicas/print3d-api/internal/domain/entity"
	"github.com/jhoicas/print3d-api/internal/infrastructure/storage"
	"github.com/jhoicas/print3d-api/pkg/config"
	"github.com/jhoicas/print3d-api/pkg/logger"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "uso: seed_admin <username> <password> [email]")
		os.Exit(2)
	}
	username, password := os.Args[1], os.Args[2]
	email := ""
	if len(os.Args) > 3 {
		email = os.Args[3]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if err := run(context.Background(), cfg, log, username, password, email); err != nil {
		log.Error().Err(err).Str("username", username).Msg("seed admin")
		os.Exit(1)
	}
	log.Info().Str("username", username).Str("storage", cfg.Storage.Driver).Msg("administrador listo")
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger, username, password, email string) error {
	medium, err := storage.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("abrir almacenamiento: %w", err)
	}
	defer medium.Close()

	sess := session.New(medium.Store, cfg.Storage.Namespace, log)
	if err := sess.Open(ctx); err != nil {
		return err
	}
	defer sess.Close()

	// JWT no se usa aquí; solo se administra el directorio.
	uc := auth.NewAuthUseCase(sess, auth.JWTConfig{}, log)
	_, err = uc.CreateUser(ctx, dto.CreateUserRequest{
		Username: username,
		Email:    email,
		Password: password,
		Role:     entity.RoleAdmin,
	})
	if !errors.Is(err, domain.ErrDuplicate) {
		return err
	}

	// Ya existe: se promueve a admin, se actualiza la password y se reactiva.
	role := entity.RoleAdmin
	in := dto.UpdateUserRequest{Role: &role, Password: &password}
	if email != "" {
		in.Email = &email
	}
	user, err := uc.UpdateUser(ctx, username, in)
	if err != nil {
		return err
	}
	_, err = uc.SuspendUser(ctx, user.ID, false)
	return err
}
