// Command seed populates the development database with demo data.
package main

import (
	"flag"
	"log"

	"julie/internal/config"
	"julie/internal/database"
	"julie/internal/seed"
)

func main() {
	users := flag.Int("users", 5, "number of demo users to create")
	items := flag.Int("items", 8, "wardrobe items per user")
	password := flag.String("password", "demopass1", "password shared by demo users")
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
		log.Fatalf("Database connection failed: %v", err)
	}

	opts := seed.Options{
		Users:        *users,
		ItemsPerUser: *items,
		Password:     *password,
	}
	if err := seed.Run(db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Seeding complete")
}
