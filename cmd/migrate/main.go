package main

import (
	"log"
	"os"

	"ai-code-debugger/internal/model"
	"ai-code-debugger/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Starting GORM migration...")

	// pgcrypto provides gen_random_uuid for primary keys
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		color.Red("Failed to create extension: %v", err)
		os.Exit(1)
	}

	err = db.AutoMigrate(
		&model.AnalysisRecord{},
		&model.ChatSession{},
		&model.ChatMessage{},
	)
	if err != nil {
		color.Red("Migration failed: %v", err)
		os.Exit(1)
	}

	color.Green("Migration completed: analysis_records, chat_sessions, chat_messages")
}
