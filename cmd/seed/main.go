// Command seed prepares a fresh database: schema migration, the product rows
// for each sellable tier, and an initial admin staff account.
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"weddingstudio/internal/database"
	"weddingstudio/internal/domain"
	"weddingstudio/internal/modules/pricing"
)

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
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}

	log.Println("seeding products...")
	for _, tier := range []domain.ProductTier{domain.TierBasic, domain.TierStandard, domain.TierPremium} {
		product := domain.Product{Tier: tier, Name: string(tier), Price: pricing.TierPrice(tier)}
		if err := db.Where("tier = ?", tier).FirstOrCreate(&product).Error; err != nil {
			log.Fatalf("seed product %s failed: %v", tier, err)
		}
	}

	email := os.Getenv("SEED_STAFF_EMAIL")
	password := os.Getenv("SEED_STAFF_PASSWORD")
	if email == "" || password == "" {
		log.Println("SEED_STAFF_EMAIL/SEED_STAFF_PASSWORD not set, skipping staff account")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash staff password failed: %v", err)
	}
	staff := domain.Staff{Email: email, PasswordHash: string(hash), Role: "admin"}
	if err := db.Where("email = ?", email).FirstOrCreate(&staff).Error; err != nil {
		log.Fatalf("seed staff failed: %v", err)
	}
	log.Printf("seed completed: staff=%s", email)
}
