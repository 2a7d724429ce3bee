// Command purge runs the retention sweeps once: hard-delete bookings past the
// soft-delete grace window and anonymize PII past the retention period. Meant
// to run from cron; both sweeps are idempotent.
package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"weddingstudio/internal/database"
	"weddingstudio/internal/modules/booking"
	"weddingstudio/internal/pkg/cipher"
)

func main() {
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	cipherKey := os.Getenv("FIELD_CIPHER_KEY")
	if cipherKey == "" {
		log.Fatal("FIELD_CIPHER_KEY is required")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	fieldCipher, err := cipher.New(cipherKey)
	if err != nil {
		log.Fatalf("cipher init failed: %v", err)
	}

	svc := booking.NewService(db, fieldCipher, nil)
	ctx := context.Background()

	purged, err := svc.PurgeExpired(ctx)
	if err != nil {
		log.Fatalf("purge failed: %v", err)
	}
	anonymized, err := svc.AnonymizeExpired(ctx)
	if err != nil {
		log.Fatalf("anonymize failed: %v", err)
	}

	log.Printf("retention sweep completed: purged=%d anonymized=%d", purged, anonymized)
}
