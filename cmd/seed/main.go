// Command main fills the database with demo applicants.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/config"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/database"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/seed"
)

func main() {
	numApplicants := flag.Int("applicants", 25, "Number of applicants to create")
	complete := flag.Bool("complete", true, "Fill every form page for each applicant")
	shouldClean := flag.Bool("clean", false, "Delete all existing rows before seeding")
	randSeed := flag.Int64("seed", 0, "Random seed for reproducible data (0 picks one)")
	dryRun := flag.Bool("dry-run", false, "Log what would be created without writing")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	if err := database.ApplySchema(ctx, db, cfg); err != nil {
		log.Fatalf("❌ Schema apply failed: %v", err)
	}

	_, err = seed.Seed(ctx, db, seed.Options{
		NumApplicants: *numApplicants,
		Complete:      *complete,
		ShouldClean:   *shouldClean,
		Seed:          *randSeed,
		DryRun:        *dryRun,
	})
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Printf("📧 All test applicants have the password: %s", seed.DefaultPassword)
}
