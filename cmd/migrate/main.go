// cmd/migrate/main.go
package main

import (
	"creator-yield/internal/config"
	"creator-yield/internal/logging"
	"creator-yield/migrations"
	"database/sql"
	"flag"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func main() {
	down := flag.Bool("down", false, "roll back the latest migration")
	flag.Parse()

	cfg := config.MustLoad()
	logger := logging.New(cfg.Logging)

	if cfg.DB.InMemory() {
		logger.Info("In-memory storage, nothing to migrate")
		return
	}

	db, err := sql.Open("pgx", cfg.DB.DSN)
	if err != nil {
		logger.Error("Не удалось открыть БД", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		logger.Error("goose dialect", "error", err)
		os.Exit(1)
	}

	if *down {
		err = goose.Down(db, ".")
	} else {
		err = goose.Up(db, ".")
	}
	if err != nil {
		logger.Error("Миграции завершились с ошибкой", "error", err)
		os.Exit(1)
	}

	logger.Info("✅ Миграции применены", "down", *down)
}
