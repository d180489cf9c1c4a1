//go:build ignore
// +build ignore

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"subsidy-advisor-engine/internal/catalog"
	"subsidy-advisor-engine/internal/models"
	"subsidy-advisor-engine/internal/services/database"
	"subsidy-advisor-engine/internal/services/matcher"
	"subsidy-advisor-engine/internal/utils"

	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("=== Subsidy Advisor Engine - Local Test ===")
	fmt.Println()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️  Warning: Could not load .env file: %v\n", err)
	}

	_ = utils.InitLogger("info")
	defer utils.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Connect to database
	databaseURL := os.Getenv("DATABASE_URL")
	db, err := database.NewFromURL(databaseURL)
	if err != nil {
		fmt.Printf("❌ Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()
	fmt.Println("✅ Connected to database")

	// Parse sample CSV
	fmt.Println()
	fmt.Println("📖 Parsing sample CSV...")

	csvContent, err := os.ReadFile("data/sample_companies.csv")
	if err != nil {
		fmt.Printf("❌ Failed to read CSV: %v\n", err)
		os.Exit(1)
	}

	parser := utils.NewCSVParser()
	companies, errors := parser.ParseCompanies(string(csvContent), "test-batch-001")
	if len(errors) > 0 {
		fmt.Printf("⚠️  CSV parsing errors: %v\n", errors)
	}
	fmt.Printf("✅ Parsed %d companies from CSV\n", len(companies))

	// Insert companies into database
	fmt.Println()
	fmt.Println("📥 Inserting companies into database...")

	companyRepo := database.NewCompanyRepository(db)
	result, err := companyRepo.BulkInsert(ctx, companies)
	if err != nil {
		fmt.Printf("❌ Failed to insert companies: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ Companies inserted: %d (failed: %d)\n", result.InsertedCount, result.FailedCount)

	// Run matching against the built-in catalog
	fmt.Println()
	fmt.Println("🎯 Running subsidy matching...")

	m := matcher.NewMatcher(catalog.Builtin())
	recRepo := database.NewRecommendationRepository(db)

	stored, err := companyRepo.GetByBatchID(ctx, "test-batch-001")
	if err != nil {
		fmt.Printf("❌ Failed to load companies: %v\n", err)
		os.Exit(1)
	}

	var recCreates []*models.RecommendationCreate
	for _, company := range stored {
		profile := company.Profile()
		recs, err := m.Recommend(&profile, &models.ProjectInfo{Budget: 5_000_000}, 0)
		if err != nil {
			fmt.Printf("   ⚠️  Matching failed for %s: %v\n", company.CompanyID, err)
			continue
		}

		fmt.Printf("🏢 Company: %s (%s, %d employees)\n", company.CompanyID, company.Industry, company.EmployeeCount)
		for _, rec := range recs {
			fmt.Printf("   ✓ %s (score %.2f, est. ¥%.0f)\n", rec.Program.Name, rec.MatchScore, rec.EstimatedAmount)
			recCreates = append(recCreates, rec.ToCreate(company.ID, company.BatchID))
		}
		fmt.Println()
	}

	fmt.Printf("🎉 Found %d total recommendations!\n", len(recCreates))

	// Insert recommendations into database
	fmt.Println()
	fmt.Println("💾 Saving recommendations to database...")

	inserted, failed, err := recRepo.BulkInsert(ctx, recCreates)
	if err != nil {
		fmt.Printf("⚠️  Error saving recommendations: %v\n", err)
	} else {
		fmt.Printf("✅ Saved %d recommendations (failed: %d)\n", inserted, failed)
	}

	// Summary
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════")
	fmt.Println("              TEST COMPLETE")
	fmt.Println("═══════════════════════════════════════════")

	var totalCompanies, totalPrograms, totalRecs int
	db.QueryRowContext(ctx, "SELECT COUNT(*) FROM companies").Scan(&totalCompanies)
	db.QueryRowContext(ctx, "SELECT COUNT(*) FROM subsidy_programs").Scan(&totalPrograms)
	db.QueryRowContext(ctx, "SELECT COUNT(*) FROM recommendations").Scan(&totalRecs)

	fmt.Printf("🏢 Companies:       %d\n", totalCompanies)
	fmt.Printf("📦 Programs:        %d\n", totalPrograms)
	fmt.Printf("🎯 Recommendations: %d\n", totalRecs)
	fmt.Println("═══════════════════════════════════════════")
}
