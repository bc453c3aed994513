package main

import (
	"context"
	"log"
	"os"

	"authapi/internal/database"

	"github.com/joho/godotenv"
)

// One-shot prune of expired refresh-token and blacklist rows, for cron use.
// The API process runs the same sweep in-process; this binary exists for
// deployments that prefer external scheduling.
func main() {
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	ctx := context.Background()

	res1 := db.WithContext(ctx).Exec(`DELETE FROM refresh_tokens WHERE expires_at < CURRENT_TIMESTAMP`)
	if res1.Error != nil {
		log.Fatalf("cleanup refresh_tokens failed: %v", res1.Error)
	}

	res2 := db.WithContext(ctx).Exec(`DELETE FROM token_blacklist WHERE expires_at < CURRENT_TIMESTAMP`)
	if res2.Error != nil {
		log.Fatalf("cleanup token_blacklist failed: %v", res2.Error)
	}

	log.Printf("token cleanup completed: refresh_tokens=%d token_blacklist=%d", res1.RowsAffected, res2.RowsAffected)
}
