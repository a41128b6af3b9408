package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"lakehouse-scheduler/internal/config"
	"lakehouse-scheduler/internal/handler"
	"lakehouse-scheduler/internal/logger"
	"lakehouse-scheduler/internal/model"
	"lakehouse-scheduler/internal/service"
	"lakehouse-scheduler/internal/storage"

	"gorm.io/gorm"
)

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	cfg := config.Load(*configFile)
	logger.Init(cfg.Log)

	db, err := cfg.OpenGormDB()
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	if err := db.AutoMigrate(
		&model.User{}, &model.Reservation{}, &model.Duty{},
		&model.DutyAssignment{}, &model.Document{},
	); err != nil {
		slog.Error("db migrate failed", "err", err)
		os.Exit(1)
	}

	blobs, err := storage.NewFileStore(cfg.Storage.Dir)
	if err != nil {
		slog.Error("storage init failed", "err", err)
		os.Exit(1)
	}

	users := service.NewUserService(db)
	coord := service.NewCoordinator(
		users,
		service.NewReservationService(db),
		service.NewDutyService(db),
		service.NewDocumentService(db, blobs),
	)
	authSvc := service.NewAuthService(db)

	if err := bootstrapAdmin(db, users, cfg.Auth.BootstrapAdmin); err != nil {
		slog.Error("admin bootstrap failed", "err", err)
		os.Exit(1)
	}

	r := handler.NewRouter(authSvc, coord, []byte(cfg.Auth.JWTSecret))

	slog.Info("server starting", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		slog.Error("server failed", "err", err)
	}
}

// bootstrapAdmin creates the configured administrator account when no
// admin exists yet, so a fresh install is never without one.
func bootstrapAdmin(db *gorm.DB, users *service.UserService, admin config.BootstrapAdmin) error {
	if admin.Username == "" || admin.Password == "" {
		return nil
	}
	ctx := context.Background()
	has, err := users.HasAdmin(ctx)
	if err != nil || has {
		return err
	}
	u, err := users.Create(ctx, model.CreateUserRequest{
		Username: admin.Username,
		Email:    admin.Email,
		Password: admin.Password,
		Role:     model.RoleAdmin,
	})
	if err != nil {
		return err
	}
	slog.Info("admin bootstrapped", "uid", u.ID, "username", u.Username)
	return nil
}
