package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"equipment-status/internal/repositories"
	"equipment-status/internal/services"
	"equipment-status/pkg/config"
	"equipment-status/pkg/database"
	"equipment-status/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runMigrate := flag.Bool("migrate", false, "Только применить миграции схемы")
	runDemo := flag.Bool("demo", false, "Применить миграции и записать демонстрационные статусы оборудования")
	flag.Parse()

	if !*runMigrate && !*runDemo {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры использования:")
		log.Println("  go run ./seeders/cmd/seed -migrate")
		log.Println("  go run ./seeders/cmd/seed -demo")
		log.Println("======================================================")
		return
	}

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("❌ Ошибка создания логгера: %v", err)
	}
	defer logger.Sync()

	log.Println("📦 Используется драйвер:", cfg.Database.Driver)
	storage, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Ошибка подключения к БД: %v", err)
	}
	defer storage.Close()

	ctx := context.Background()
	if err := storage.Migrate(ctx, logger); err != nil {
		log.Fatalf("❌ Ошибка применения миграций: %v", err)
	}
	log.Println("✅ Миграции применены")

	if *runDemo {
		statusService := services.NewEquipmentStatusService(
			repositories.NewEquipmentStatusRepository(storage, logger),
			logger,
		)
		n, err := seeders.SeedDemoStatuses(ctx, statusService)
		if err != nil {
			log.Fatalf("❌ Ошибка наполнения статусов (записано %d): %v", n, err)
		}
		log.Printf("✅ Записано демо-статусов: %d", n)
	}

	log.Println("======================================================")
}
