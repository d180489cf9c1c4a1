// Package main provides a local HTTP server for development and testing
// This server integrates with n8n workflows and provides the API endpoints
// needed by the frontend for questionnaire upload, matching and drafting
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"subsidy-advisor-engine/internal/catalog"
	"subsidy-advisor-engine/internal/config"
	"subsidy-advisor-engine/internal/models"
	"subsidy-advisor-engine/internal/services/database"
	"subsidy-advisor-engine/internal/services/eligibility"
	"subsidy-advisor-engine/internal/services/generator"
	"subsidy-advisor-engine/internal/services/matcher"
	"subsidy-advisor-engine/internal/services/quality"
	"subsidy-advisor-engine/internal/utils"

	"github.com/rs/cors"
)

// Server holds all dependencies
type Server struct {
	db          *database.DB
	companyRepo *database.CompanyRepository
	programRepo *database.ProgramRepository
	recRepo     *database.RecommendationRepository
	catalog     *catalog.Catalog
	filter      *eligibility.Filter
	matcher     *matcher.Matcher
	scorer      *quality.Scorer
	advisor     *quality.Advisor
	drafter     *generator.Drafter
	config      *config.Config
}

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// UploadResponse contains CSV upload processing results
type UploadResponse struct {
	BatchID         string `json:"batch_id"`
	TotalRows       int    `json:"total_rows"`
	ValidCompanies  int    `json:"valid_companies"`
	Errors          int    `json:"errors"`
	Recommendations int    `json:"recommendations"`
	ProcessingMs    int64  `json:"processing_ms"`
}

// MatchRequest is the request body for eligibility and recommendation calls.
type MatchRequest struct {
	Company models.CompanyProfile `json:"company"`
	Project *models.ProjectInfo   `json:"project"`
	TopN    int                   `json:"top_n"`
}

// QualityRequest is the request body for quality analysis calls.
type QualityRequest struct {
	Document models.Document `json:"document"`
	Profile  string          `json:"profile,omitempty"`
}

// DraftRequest is the request body for document drafting calls.
type DraftRequest struct {
	Company       models.CompanyProfile `json:"company"`
	Project       *models.ProjectInfo   `json:"project"`
	ProgramID     string                `json:"program_id"`
	MaxIterations int                   `json:"max_iterations,omitempty"`
	TargetScore   float64               `json:"target_score,omitempty"`
}

func main() {
	// Initialize logger first
	if err := utils.InitLogger("info"); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer utils.Logger.Sync()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Warning: Could not load config from environment: %v", err)
		cfg = &config.Config{}
	}

	weights, err := quality.ProfileByName(cfg.ScoringProfile)
	if err != nil {
		log.Printf("Warning: Unknown scoring profile %q, using default: %v", cfg.ScoringProfile, err)
		weights = quality.ProfileMonozukuri
	}

	scorer, err := quality.NewScorer(weights)
	if err != nil {
		log.Fatalf("Failed to create quality scorer: %v", err)
	}

	cat := catalog.Builtin()

	server := &Server{
		catalog: cat,
		filter:  eligibility.NewFilter(cat),
		matcher: matcher.NewMatcher(cat),
		scorer:  scorer,
		advisor: quality.NewAdvisor(),
		drafter: generator.NewDrafter(scorer),
		config:  cfg,
	}

	// Initialize database
	db, err := database.New(cfg)
	if err != nil {
		log.Printf("Warning: Could not connect to database: %v", err)
		log.Println("Server will run in demo mode without database")
	}

	server.db = db
	if db != nil {
		server.companyRepo = database.NewCompanyRepository(db)
		server.programRepo = database.NewProgramRepository(db)
		server.recRepo = database.NewRecommendationRepository(db)
	}

	// Setup routes
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", server.healthHandler)
	mux.HandleFunc("/api/health", server.healthHandler)

	// Subsidy program catalog
	mux.HandleFunc("/api/programs", server.programsHandler)

	// Eligibility pre-filter and full recommendation
	mux.HandleFunc("/api/eligibility", server.eligibilityHandler)
	mux.HandleFunc("/api/recommend", server.recommendHandler)

	// Document quality scoring and advice report
	mux.HandleFunc("/api/quality/analyze", server.qualityAnalyzeHandler)
	mux.HandleFunc("/api/quality/report", server.qualityReportHandler)

	// Application document drafting
	mux.HandleFunc("/api/draft", server.draftHandler)

	// Direct CSV upload endpoint (for local testing)
	mux.HandleFunc("/api/upload", server.uploadHandler)

	// Stored recommendations
	mux.HandleFunc("/api/recommendations", server.recommendationsHandler)

	// Trigger n8n workflows
	mux.HandleFunc("/api/trigger/matching", server.triggerMatchingHandler)
	mux.HandleFunc("/api/trigger/notification", server.triggerNotificationHandler)

	// Serve static files (frontend)
	mux.HandleFunc("/", server.staticHandler)

	// Setup CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	handler := c.Handler(mux)

	port := getEnvOrDefault("PORT", "8080")
	addr := fmt.Sprintf("0.0.0.0:%s", port)

	log.Printf("Subsidy Advisor Engine API Server")
	log.Printf("Listening on http://localhost:%s", port)
	log.Printf("Catalog: %d programs loaded", cat.Len())
	log.Printf("Health: http://localhost:%s/health", port)
	log.Println("")

	// Start server (this blocks until error)
	log.Printf("Starting HTTP server on %s...", addr)
	serverErr := http.ListenAndServe(addr, handler)
	if serverErr != nil {
		log.Fatalf("Server failed: %v", serverErr)
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	dbStatus := "disconnected"
	if s.db != nil {
		if err := s.db.HealthCheck(r.Context()); err == nil {
			dbStatus = "connected"
		}
	}

	response := Response{
		Success: true,
		Message: "Subsidy Advisor Engine API is running",
		Data: map[string]interface{}{
			"status":    "healthy",
			"database":  dbStatus,
			"programs":  s.catalog.Len(),
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   "1.0.0",
		},
	}

	writeJSON(w, http.StatusOK, response)
}

func (s *Server) programsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Prefer the database when seeded, fall back to the built-in catalog
	if s.programRepo != nil {
		programs, err := s.programRepo.GetAllActive(r.Context())
		if err == nil && len(programs) > 0 {
			writeJSON(w, http.StatusOK, Response{Success: true, Data: programs})
			return
		}
		if err != nil {
			log.Printf("Error fetching programs from database: %v", err)
		}
	}

	if category := r.URL.Query().Get("category"); category != "" {
		writeJSON(w, http.StatusOK, Response{
			Success: true,
			Data:    s.catalog.ByCategory(models.SubsidyCategory(category)),
		})
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    s.catalog.All(),
	})
}

func (s *Server) eligibilityHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	programs, err := s.filter.CheckEligibility(&req.Company)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: fmt.Sprintf("%d programs eligible", len(programs)),
		Data:    programs,
	})
}

func (s *Server) recommendHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	recs, err := s.matcher.Recommend(&req.Company, req.Project, req.TopN)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: fmt.Sprintf("%d recommendations", len(recs)),
		Data:    recs,
	})
}

func (s *Server) qualityAnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	result, ok := s.analyzeFromRequest(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

func (s *Server) qualityReportHandler(w http.ResponseWriter, r *http.Request) {
	result, ok := s.analyzeFromRequest(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"analysis": result,
			"report":   s.advisor.Report(result),
			"level":    s.advisor.QualityLevel(result.OverallScore),
		},
	})
}

// analyzeFromRequest decodes a quality request and runs the scorer, writing
// the error response itself when something is wrong.
func (s *Server) analyzeFromRequest(w http.ResponseWriter, r *http.Request) (*models.QualityAnalysisResult, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return nil, false
	}

	var req QualityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return nil, false
	}

	scorer := s.scorer
	if req.Profile != "" {
		weights, err := quality.ProfileByName(req.Profile)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, Response{
				Success: false,
				Error:   err.Error(),
			})
			return nil, false
		}
		scorer, err = quality.NewScorer(weights)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, Response{
				Success: false,
				Error:   err.Error(),
			})
			return nil, false
		}
	}

	result, err := scorer.Analyze(req.Document)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return nil, false
	}

	return result, true
}

func (s *Server) draftHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req DraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	program := s.catalog.ByID(req.ProgramID)
	if program == nil {
		writeJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   fmt.Sprintf("Unknown program: %s", req.ProgramID),
		})
		return
	}

	maxIterations := req.MaxIterations
	if maxIterations <= 0 {
		maxIterations = s.config.MaxDraftIterations
	}
	targetScore := req.TargetScore
	if targetScore <= 0 {
		targetScore = s.config.TargetQualityScore
	}

	result, err := s.drafter.Draft(&req.Company, req.Project, program, maxIterations, targetScore)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: fmt.Sprintf("Draft completed in %d iterations (score %.1f)", result.Iterations, result.Analysis.OverallScore),
		Data:    result,
	})
}

func (s *Server) uploadHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPut {
		// Handle presigned URL upload (S3-style)
		s.handlePresignedUpload(w, r)
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	log.Printf("CSV upload request received")

	// Handle multipart form upload
	if err := r.ParseMultipartForm(10 << 20); err != nil { // 10MB max
		log.Printf("Failed to parse form: %v", err)
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Failed to parse form: " + err.Error(),
		})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Printf("No file in form: %v", err)
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "No file provided",
		})
		return
	}
	defer file.Close()

	log.Printf("Processing file: %s (%.2f KB)", header.Filename, float64(header.Size)/1024)

	// Validate file type
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Only CSV files are allowed",
		})
		return
	}

	// Read file content
	content, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to read file",
		})
		return
	}

	// Process the CSV
	result, err := s.processCSVContent(r.Context(), content, header.Filename)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "CSV processed successfully",
		Data:    result,
	})
}

func (s *Server) handlePresignedUpload(w http.ResponseWriter, r *http.Request) {
	// Read the raw body (CSV content)
	content, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusInternalServerError)
		return
	}
	defer r.Body.Close()

	// Store temporarily for processing
	key := r.URL.Query().Get("key")
	filename := filepath.Base(key)
	if filename == "" {
		filename = "upload.csv"
	}

	// Save to temp file
	tempDir := os.TempDir()
	tempFile := filepath.Join(tempDir, filename)
	if err := os.WriteFile(tempFile, content, 0644); err != nil {
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Server) processCSVContent(ctx context.Context, content []byte, filename string) (*UploadResponse, error) {
	startTime := time.Now()
	batchID := fmt.Sprintf("batch_%d", time.Now().Unix())

	log.Printf("Processing CSV: %s (BatchID: %s)", filename, batchID)

	// Parse CSV
	parser := utils.NewCSVParser()
	companies, parseErrors := parser.ParseCompanies(string(content), batchID)

	log.Printf("Parsed: %d valid companies, %d errors", len(companies), len(parseErrors))

	// Log first few errors for debugging
	if len(parseErrors) > 0 {
		log.Printf("Parse errors:")
		for i, err := range parseErrors {
			if i >= 5 { // Only log first 5 errors
				log.Printf("   ... and %d more errors", len(parseErrors)-5)
				break
			}
			log.Printf("   - %v", err)
		}
	}

	result := &UploadResponse{
		BatchID:        batchID,
		TotalRows:      len(companies) + len(parseErrors),
		ValidCompanies: len(companies),
		Errors:         len(parseErrors),
	}

	// If no database connection, match in memory without persisting
	if s.db == nil || s.companyRepo == nil {
		for _, c := range companies {
			recs, err := s.matchCompanyCreate(c)
			if err != nil {
				continue
			}
			result.Recommendations += len(recs)
		}
		result.ProcessingMs = time.Since(startTime).Milliseconds()
		return result, nil
	}

	// Save companies and compute recommendations per company
	var recCreates []*models.RecommendationCreate
	for _, c := range companies {
		id, err := s.companyRepo.Create(ctx, c)
		if err != nil {
			log.Printf("Warning: Could not save company %s: %v", c.CompanyID, err)
			continue
		}

		recs, err := s.matchCompanyCreate(c)
		if err != nil {
			log.Printf("Warning: Matching failed for %s: %v", c.CompanyID, err)
			continue
		}
		for _, rec := range recs {
			recCreates = append(recCreates, rec.ToCreate(id, batchID))
		}
	}

	if s.recRepo != nil && len(recCreates) > 0 {
		inserted, failed, err := s.recRepo.BulkInsert(ctx, recCreates)
		if err != nil {
			log.Printf("Warning: Could not save recommendations: %v", err)
		} else {
			result.Recommendations = inserted
			if failed > 0 {
				log.Printf("Warning: %d recommendations failed to save", failed)
			}
		}
	}

	result.ProcessingMs = time.Since(startTime).Milliseconds()
	return result, nil
}

// matchCompanyCreate scores one parsed questionnaire row against the
// catalog. Rows without a stated project budget use a conservative default
// so amount fit stays meaningful.
func (s *Server) matchCompanyCreate(c *models.CompanyCreate) ([]*models.SubsidyRecommendation, error) {
	profile := c.Profile()
	project := c.Project()
	if project.Budget <= 0 {
		project.Budget = 5_000_000
	}
	return s.matcher.Recommend(&profile, &project, 0)
}

func (s *Server) recommendationsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if s.recRepo == nil {
		writeJSON(w, http.StatusOK, Response{
			Success: true,
			Data:    []models.Recommendation{},
		})
		return
	}

	ctx := r.Context()

	// Get enriched recommendations with company and program information
	query := `
		SELECT
			rec.id,
			rec.company_id,
			rec.program_id,
			rec.match_score,
			rec.estimated_amount,
			rec.success_probability,
			rec.status,
			c.company_id as company_code,
			c.email as company_email,
			p.name as program_name
		FROM recommendations rec
		JOIN companies c ON rec.company_id = c.id
		JOIN subsidy_programs p ON rec.program_id = p.id
		ORDER BY rec.created_at DESC, rec.match_score DESC
		LIMIT 100
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Printf("Error fetching recommendations: %v", err)
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to fetch recommendations",
		})
		return
	}
	defer rows.Close()

	var recs []map[string]interface{}
	for rows.Next() {
		var id, companyID int64
		var matchScore, estimatedAmount, successProbability float64
		var programID, status, companyCode, companyEmail, programName string

		if err := rows.Scan(&id, &companyID, &programID, &matchScore, &estimatedAmount,
			&successProbability, &status, &companyCode, &companyEmail, &programName); err != nil {
			log.Printf("Failed to scan recommendation: %v", err)
			continue
		}

		recs = append(recs, map[string]interface{}{
			"id":                  id,
			"company_id":          companyID,
			"program_id":          programID,
			"match_score":         matchScore,
			"estimated_amount":    estimatedAmount,
			"success_probability": successProbability,
			"status":              status,
			"company_code":        companyCode,
			"company_email":       companyEmail,
			"program_name":        programName,
		})
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    recs,
	})
}

func (s *Server) triggerMatchingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		BatchID    string `json:"batch_id"`
		ProcessAll bool   `json:"process_all"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		req.ProcessAll = true // Default to process all
	}

	// Trigger n8n matching workflow
	n8nURL := getEnvOrDefault("N8N_WEBHOOK_URL", "http://localhost:5678")
	webhookURL := fmt.Sprintf("%s/webhook/match-companies", n8nURL)

	log.Printf("Calling n8n webhook: %s", webhookURL)
	payload, _ := json.Marshal(req)
	resp, err := http.Post(webhookURL, "application/json", strings.NewReader(string(payload)))
	if err != nil {
		// Fallback to local matcher over stored companies
		if s.companyRepo != nil {
			count, matchErr := s.matchStoredCompanies(r.Context(), req.BatchID)
			if matchErr != nil {
				writeJSON(w, http.StatusInternalServerError, Response{
					Success: false,
					Error:   "Matching failed: " + matchErr.Error(),
				})
				return
			}

			writeJSON(w, http.StatusOK, Response{
				Success: true,
				Message: "Matching completed (local)",
				Data: map[string]interface{}{
					"recommendations": count,
				},
			})
			return
		}

		writeJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Matching trigger sent (n8n may be offline)",
		})
		return
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Matching workflow triggered",
		Data: map[string]interface{}{
			"n8n_status": resp.StatusCode,
			"response":   string(body),
		},
	})
}

// matchStoredCompanies re-runs matching over companies already in the
// database, scoped to a batch when one is given.
func (s *Server) matchStoredCompanies(ctx context.Context, batchID string) (int, error) {
	var companies []*models.Company
	var err error
	if batchID != "" {
		companies, err = s.companyRepo.GetByBatchID(ctx, batchID)
	} else {
		companies, err = s.companyRepo.GetAllActive(ctx)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load companies: %w", err)
	}

	var recCreates []*models.RecommendationCreate
	for _, company := range companies {
		profile := company.Profile()
		recs, err := s.matcher.Recommend(&profile, &models.ProjectInfo{Budget: 5_000_000}, 0)
		if err != nil {
			log.Printf("Warning: Matching failed for %s: %v", company.CompanyID, err)
			continue
		}
		for _, rec := range recs {
			recCreates = append(recCreates, rec.ToCreate(company.ID, company.BatchID))
		}
	}

	if len(recCreates) == 0 {
		return 0, nil
	}

	inserted, _, err := s.recRepo.BulkInsert(ctx, recCreates)
	if err != nil {
		return 0, fmt.Errorf("failed to save recommendations: %w", err)
	}
	return inserted, nil
}

func (s *Server) triggerNotificationHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	var reqBody struct {
		BatchID string `json:"batch_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	// Check if database is available
	if s.db == nil || s.recRepo == nil {
		writeJSON(w, http.StatusServiceUnavailable, Response{
			Success: false,
			Error:   "Database not available",
		})
		return
	}

	pending, err := s.recRepo.GetPendingNotifications(ctx, reqBody.BatchID)
	if err != nil {
		log.Printf("Failed to fetch pending notifications: %v", err)
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to fetch pending notifications",
		})
		return
	}

	if len(pending) == 0 {
		writeJSON(w, http.StatusOK, Response{
			Success: false,
			Error:   "No pending notifications found",
		})
		return
	}

	// Group per company for the n8n payload
	byCompany := make(map[string][]map[string]interface{})
	for _, rec := range pending {
		byCompany[rec.CompanyEmail] = append(byCompany[rec.CompanyEmail], map[string]interface{}{
			"program_name":        rec.ProgramName,
			"max_amount":          rec.MaxAmount,
			"subsidy_rate":        rec.SubsidyRate,
			"estimated_amount":    rec.EstimatedAmount,
			"match_score":         rec.MatchScore,
			"success_probability": rec.SuccessProbability,
			"application_period":  rec.ApplicationPeriod,
		})
	}

	payload := map[string]interface{}{
		"batch_id":  reqBody.BatchID,
		"companies": byCompany,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	payloadJSON, _ := json.Marshal(payload)

	// Trigger n8n notification workflow
	n8nURL := getEnvOrDefault("N8N_WEBHOOK_URL", "http://localhost:5678")
	webhookURL := fmt.Sprintf("%s/webhook/notify-companies", n8nURL)

	log.Printf("Calling n8n webhook: %s", webhookURL)

	resp, err := http.Post(webhookURL, "application/json", strings.NewReader(string(payloadJSON)))
	if err != nil {
		writeJSON(w, http.StatusOK, Response{
			Success: false,
			Message: "Notification trigger failed (n8n may be offline)",
			Data: map[string]interface{}{
				"n8n_url": webhookURL,
				"error":   err.Error(),
			},
		})
		return
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	// Mark everything we handed to n8n as notified
	for _, rec := range pending {
		if err := s.recRepo.MarkAsNotified(ctx, rec.ID); err != nil {
			log.Printf("Warning: Could not mark recommendation %d as notified: %v", rec.ID, err)
		}
	}

	writeJSON(w, http.StatusOK, Response{
		Success: resp.StatusCode == 200,
		Message: "Notification workflow triggered",
		Data: map[string]interface{}{
			"n8n_status":     resp.StatusCode,
			"response":       string(respBody),
			"notified_count": len(pending),
			"company_count":  len(byCompany),
		},
	})
}

func (s *Server) staticHandler(w http.ResponseWriter, r *http.Request) {
	// Serve frontend files - use absolute path or relative to executable
	frontendDir := "./frontend"

	// Try to find frontend directory
	if _, err := os.Stat(frontendDir); os.IsNotExist(err) {
		// If not found, try parent directory (when running from bin/)
		frontendDir = "../frontend"
	}

	path := r.URL.Path
	if path == "/" {
		path = "/index.html"
	}

	filePath := filepath.Join(frontendDir, path)

	// Security check: prevent directory traversal
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}

	absFrontendDir, _ := filepath.Abs(frontendDir)
	if !strings.HasPrefix(absPath, absFrontendDir) {
		http.Error(w, "Access denied", http.StatusForbidden)
		return
	}

	// Check if file exists
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		// Serve index.html for SPA routing or return 404
		indexPath := filepath.Join(frontendDir, "index.html")
		if _, err := os.Stat(indexPath); os.IsNotExist(err) {
			http.Error(w, "Frontend not found", http.StatusNotFound)
			return
		}
		filePath = indexPath
	}

	http.ServeFile(w, r, filePath)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
