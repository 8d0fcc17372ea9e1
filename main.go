package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/praveen0raj/flashcard-app/internal/database"
	"github.com/praveen0raj/flashcard-app/internal/excel"
	"github.com/praveen0raj/flashcard-app/internal/logger"
	"github.com/praveen0raj/flashcard-app/internal/notify"
	"github.com/praveen0raj/flashcard-app/internal/reminder"
	"github.com/praveen0raj/flashcard-app/internal/review"
)

func main() {
	importFile := flag.String("import", "", "import cards from an Excel/CSV file and exit")
	importUser := flag.Int64("user", 0, "Telegram chat ID to import cards for")
	flag.Parse()

	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	log, err := logger.New(logger.ConfigFromEnv())
	if err != nil {
		os.Stderr.WriteString("failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	db, err := database.Connect()
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	reviews := review.NewService(db, log)

	if *importFile != "" {
		if *importUser == 0 {
			log.Fatal("-import requires -user")
		}
		user, err := database.NewUserRepository(db).GetByTelegramID(context.Background(), *importUser)
		if err != nil {
			log.Fatal("failed to look up import user", zap.Int64("telegram_id", *importUser), zap.Error(err))
		}
		cfg := excel.DefaultImportConfig()
		cfg.FilePath = *importFile
		result, err := excel.NewImporter(db, reviews).ImportCards(context.Background(), user.ID, cfg)
		if err != nil {
			log.Fatal("import failed", zap.Error(err))
		}
		log.Info("import finished",
			zap.Int("processed", result.TotalProcessed),
			zap.Int("created", result.Created),
			zap.Int("skipped", result.Skipped),
			zap.Strings("errors", result.Errors))
		return
	}

	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN environment variable is not set")
	}
	notifier, err := notify.NewTelegram(token, log)
	if err != nil {
		log.Fatal("failed to create notifier", zap.Error(err))
	}

	reminders := reminder.New(db, reviews, notifier, log)
	reminders.Start()
	defer reminders.Stop()

	log.Info("reminder scheduler started, press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("received signal, shutting down", zap.String("signal", sig.String()))
}
