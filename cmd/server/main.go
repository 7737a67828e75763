package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/Lerokbel/BarberShop/internal/config"
	"github.com/Lerokbel/BarberShop/internal/db"
	"github.com/Lerokbel/BarberShop/internal/model"
	"github.com/Lerokbel/BarberShop/internal/repository"
	"github.com/Lerokbel/BarberShop/internal/server"
	"github.com/Lerokbel/BarberShop/internal/service"
)

const shutdownPeriod = 30 * time.Second

func main() {
	// .env опционален; в проде конфигурация идёт из окружения.
	_ = godotenv.Load()

	// 1. Конфигурация из env.
	cfg, err := config.LoadServerConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// 2. Подключаемся к БД через GORM.
	gormDB, err := db.NewGormDB(&cfg.DB)
	if err != nil {
		log.Fatalf("init db: %v", err)
	}

	// 3. Миграции моделей.
	if err := model.AutoMigrate(gormDB); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("sql DB: %v", err)
	}
	defer sqlDB.Close()

	// 4. Репозитории (реализации на GORM).
	adminRepo := repository.NewGormAdminRepository(gormDB)
	masterRepo := repository.NewGormMasterRepository(gormDB)
	clientRepo := repository.NewGormClientRepository(gormDB)
	purposeRepo := repository.NewGormPurposeRepository(gormDB)
	recordRepo := repository.NewGormRecordRepository(gormDB)
	eventRepo := repository.NewGormEventRepository(gormDB)

	// 5. Стартовый администратор при пустой таблице admins.
	if err := seedAdmin(gormDB, adminRepo, cfg, logger); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	// 6. Сервисы и сервер протокола.
	identitySvc := service.NewIdentity(logger, adminRepo, masterRepo, clientRepo, eventRepo)
	bookingSvc := service.NewBooking(logger, purposeRepo, recordRepo, clientRepo, masterRepo, eventRepo)

	srv := server.New(server.Config{Addr: cfg.Addr, IdleTimeout: cfg.IdleTimeout}, logger, identitySvc, bookingSvc)

	// 7. Запускаем сервер в горутине.
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	// 8. Грейсфул-шатдаун по сигналу.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("serve: %v", err)
		}
	case <-stop:
		logger.Info("shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Fatalf("shutdown: %v", err)
		}
	}
}

func seedAdmin(gormDB *gorm.DB, admins repository.AdminRepository, cfg *config.ServerConfig, logger *slog.Logger) error {
	ctx := context.Background()

	existing, err := admins.List(ctx)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	admin := model.Admin{Login: cfg.AdminLogin, Password: cfg.AdminPassword}
	if err := admins.Create(ctx, &admin); err != nil {
		return err
	}
	logger.Info("seeded default admin", "login", admin.Login, "id", admin.ID)
	return nil
}
