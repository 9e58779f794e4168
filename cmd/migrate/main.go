package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"food-ordering-web/internal/config"
	"food-ordering-web/internal/database"
	"food-ordering-web/internal/sessionstore"
)

func main() {
	var (
		statusFlag  = flag.Bool("status", false, "Show migration status")
		upFlag      = flag.Bool("up", false, "Run pending migrations")
		cleanupFlag = flag.Bool("cleanup", false, "Delete expired sessions")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if !cfg.Database.Enabled {
		log.Fatal("DATABASE_URL or DB_HOST is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// Connect to database
	db, err := database.NewConnection(ctx, database.Config{
		URL:      cfg.Database.URL,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	switch {
	case *statusFlag:
		if err := db.GetMigrationStatus(os.Stdout); err != nil {
			log.Fatalf("Failed to get migration status: %v", err)
		}
	case *upFlag:
		if err := db.RunMigrations(os.Stdout); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		fmt.Println("All migrations completed successfully!")
	case *cleanupFlag:
		n, err := sessionstore.New(db.DB, nil).Cleanup(ctx)
		if err != nil {
			log.Fatalf("Failed to clean up sessions: %v", err)
		}
		fmt.Printf("Deleted %d expired sessions\n", n)
	default:
		fmt.Println("Usage:")
		fmt.Println("  go run cmd/migrate/main.go -status    # Show migration status")
		fmt.Println("  go run cmd/migrate/main.go -up        # Run pending migrations")
		fmt.Println("  go run cmd/migrate/main.go -cleanup   # Delete expired sessions")
		os.Exit(1)
	}
}
