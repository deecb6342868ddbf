// Файл: main.go

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"equipment-status/internal/routes"
	"equipment-status/pkg/config"
	"equipment-status/pkg/database"
	applogger "equipment-status/pkg/logger"
)

func main() {
	// 1. Конфиг и логгер
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	logger, err := applogger.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Ошибка создания логгера: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("Сервис остановлен с ошибкой", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Хранилище: открываем при старте, закрываем при остановке
	storage, err := database.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := storage.Close(); err != nil {
			logger.Warn("Не удалось закрыть соединение с БД", zap.Error(err))
		}
	}()
	logger.Info("✅ Подключено к БД", zap.String("driver", storage.Driver))

	if cfg.Database.AutoMigrate {
		if err := storage.Migrate(ctx, logger); err != nil {
			return err
		}
	}

	// 3. Echo, мидлвэры и маршруты
	e, err := routes.NewEcho(logger)
	if err != nil {
		return err
	}
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	routes.InitRouter(e, storage, logger)

	// 4. Запуск и корректная остановка
	errCh := make(chan error, 1)
	go func() {
		logger.Info("🚀 Сервер запущен", zap.String("addr", cfg.Address()))
		errCh <- e.Start(cfg.Address())
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("Получен сигнал остановки, завершаем работу")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
