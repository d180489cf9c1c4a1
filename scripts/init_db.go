//go:build ignore
// +build ignore

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"subsidy-advisor-engine/internal/catalog"
	"subsidy-advisor-engine/internal/services/database"
)

func main() {
	fmt.Println("=== Database Initialization Script ===")
	fmt.Println()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️  Warning: Could not load .env file: %v\n", err)
	}

	// Get database URL
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		fmt.Println("❌ DATABASE_URL environment variable not set")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	// First connect to default 'postgres' database to create our database
	postgresURL := strings.Replace(databaseURL, "/subsidy_advisor", "/postgres", 1)
	fmt.Println("📡 Connecting to PostgreSQL server...")

	adminConn, err := pgx.Connect(ctx, postgresURL)
	if err != nil {
		fmt.Printf("❌ Failed to connect to PostgreSQL: %v\n", err)
		os.Exit(1)
	}

	// Check if database exists
	var exists bool
	err = adminConn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = 'subsidy_advisor')").Scan(&exists)
	if err != nil {
		fmt.Printf("❌ Failed to check database existence: %v\n", err)
		adminConn.Close(ctx)
		os.Exit(1)
	}

	if !exists {
		fmt.Println("📦 Creating 'subsidy_advisor' database...")
		_, err = adminConn.Exec(ctx, "CREATE DATABASE subsidy_advisor")
		if err != nil {
			fmt.Printf("❌ Failed to create database: %v\n", err)
			adminConn.Close(ctx)
			os.Exit(1)
		}
		fmt.Println("✅ Database 'subsidy_advisor' created!")
	} else {
		fmt.Println("✅ Database 'subsidy_advisor' already exists")
	}
	adminConn.Close(ctx)

	// Now connect to the subsidy_advisor database
	fmt.Println("📡 Connecting to subsidy_advisor database...")
	conn, err := pgx.Connect(ctx, databaseURL)
	if err != nil {
		fmt.Printf("❌ Failed to connect to database: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Connected to database successfully!")
	fmt.Println()

	// Read SQL file
	fmt.Println("📖 Reading SQL schema file...")
	sqlBytes, err := os.ReadFile("scripts/init_database.sql")
	if err != nil {
		fmt.Printf("❌ Failed to read SQL file: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ SQL file loaded successfully!")
	fmt.Println()

	// Execute SQL
	fmt.Println("🚀 Executing database schema...")
	_, err = conn.Exec(ctx, string(sqlBytes))
	if err != nil {
		fmt.Printf("❌ Failed to execute SQL: %v\n", err)
		os.Exit(1)
	}
	conn.Close(ctx)

	fmt.Println("✅ Database schema executed successfully!")
	fmt.Println()

	// Seed the built-in subsidy program catalog
	fmt.Println("🌱 Seeding subsidy program catalog...")
	db, err := database.NewFromURL(databaseURL)
	if err != nil {
		fmt.Printf("❌ Failed to create connection pool: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	programRepo := database.NewProgramRepository(db)
	seeded, err := programRepo.SeedPrograms(ctx, catalog.Builtin().All())
	if err != nil {
		fmt.Printf("❌ Failed to seed programs: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ Seeded %d subsidy programs!\n", seeded)
	fmt.Println()

	// Verify by listing programs
	fmt.Println("🔍 Verifying database setup...")
	programs, err := programRepo.GetAllActive(ctx)
	if err != nil {
		fmt.Printf("⚠️  Warning: Could not fetch programs: %v\n", err)
	} else {
		fmt.Println()
		fmt.Println("   📋 Subsidy Programs:")
		fmt.Println("   ─────────────────────────────────────────────────────────")
		for _, p := range programs {
			fmt.Printf("   %s. %s\n", p.ID, p.Name)
			fmt.Printf("      Max: ¥%.0f | Rate: %.0f%% | Period: %s\n", p.MaxAmount, p.SubsidyRate*100, p.ApplicationPeriod)
		}
		fmt.Println("   ─────────────────────────────────────────────────────────")
	}

	fmt.Println()
	fmt.Println("🎉 Database initialization completed successfully!")
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Test the connection: go run scripts/test_connection.go")
	fmt.Println("  2. Run the server locally or deploy to AWS")
}
