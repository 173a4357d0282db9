// Command seed populates the development database with demo data.
package main

import (
	"flag"
	"log"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "number of users to seed")
	numCreations := flag.Int("creations", 100, "number of creations to seed")
	clean := flag.Bool("clean", false, "delete existing data before seeding")
	premiumRatio := flag.Float64("premium-ratio", 0.3, "fraction of seeded users on the premium plan")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Env == "production" || cfg.Env == "prod" {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:     *numUsers,
		NumCreations: *numCreations,
		ShouldClean:  *clean,
		PremiumRatio: *premiumRatio,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
