// Основной пакет приложения LPBuilder. Отвечает за запуск приложения,
// инициализацию базы данных, миграцию моделей и запуск HTTP-сервера.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/aisa-it/lpbuilder/lpbuilder.go/internal/lpbuilder"
	"github.com/aisa-it/lpbuilder/lpbuilder.go/internal/lpbuilder/config"
	"github.com/aisa-it/lpbuilder/lpbuilder.go/internal/lpbuilder/dao"
	"github.com/aisa-it/lpbuilder/lpbuilder.go/internal/lpbuilder/gormlogger"
	"github.com/aisa-it/lpbuilder/lpbuilder.go/internal/lpbuilder/latex"
)

var version string = "DEV"

var models = []any{&dao.LearningPage{}, &dao.Question{}, &dao.Submission{}}

func main() {
	paramQueries := flag.Bool("paramQueries", true, "Mask queries params in log")
	noMigration := flag.Bool("noMigration", false, "Turn off DB migration")
	trace := flag.Bool("trace", false, "Verbose logs and sql trace")
	flag.Parse()

	PrintBanner()

	cfg := config.ReadConfig()

	if *trace {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	// Set prod log format
	if version != "DEV" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{})))
	}

	slog.Info("LPBuilder start.")

	db, err := gorm.Open(openDialector(cfg.DatabaseDSN), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.NewGormLogger(slog.Default(), time.Second*4, *paramQueries),
	})
	if err != nil {
		slog.Error("Fail init DB connection", "err", err)
		os.Exit(1)
	}

	if !*noMigration {
		if err := db.AutoMigrate(models...); err != nil {
			slog.Error("Fail migrate models", "err", err)
			os.Exit(1)
		}
	}

	converter, err := latex.NewConverter(cfg.LatexModel)
	if err != nil {
		slog.Error("Fail init Ollama client", "err", err)
		os.Exit(1)
	}

	lpbuilder.Server(db, cfg, converter, version)
}

// openDialector выбирает драйвер по DSN: postgres для полноценного
// развёртывания, встраиваемая SQLite для локального запуска.
func openDialector(dsn string) gorm.Dialector {
	if len(dsn) > 11 && (dsn[:11] == "postgresql:" || dsn[:9] == "postgres:") {
		return postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: false, // disables implicit prepared statement usage
		})
	}
	return sqlite.Open(dsn)
}

// PrintBanner выводит заголовок приложения с версией.
func PrintBanner() {
	banner := `
 _     ____  ____        _ _     _
| |   |  _ \|  _ \ _   _(_) | __| | ___ _ __
| |   | |_) | |_) | | | | | |/ _  |/ _ \ '__|
| |___|  __/|  _ <| |_| | | | (_| |  __/ |
|_____|_|   |_| \_\\__,_|_|_|\__,_|\___|_| %s
Learning page builder with embeddable questions
----------------------------------------------------
`
	colorReset := "\033[0m"
	colorYellow := "\033[33m"

	formattedVersion := version
	if version == "DEV" {
		formattedVersion = colorYellow + version + colorReset
	}

	fmt.Printf(banner, formattedVersion)
}
