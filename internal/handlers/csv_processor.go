// Package handlers provides HTTP handlers for the subsidy advisor engine.
package handlers

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"subsidy-advisor-engine/internal/catalog"
	appConfig "subsidy-advisor-engine/internal/config"
	"subsidy-advisor-engine/internal/models"
	"subsidy-advisor-engine/internal/services/database"
	"subsidy-advisor-engine/internal/services/matcher"
	s3service "subsidy-advisor-engine/internal/services/s3"
	"subsidy-advisor-engine/internal/utils"
)

// CSVProcessorHandler handles S3 events for questionnaire CSV processing.
// Each uploaded file is parsed, persisted, and matched against the catalog.
type CSVProcessorHandler struct {
	storage     *s3service.Service
	db          *database.DB
	companyRepo *database.CompanyRepository
	recRepo     *database.RecommendationRepository
	matcher     *matcher.Matcher
	webhookURL  string
}

// NewCSVProcessorHandler creates a new CSV processor handler.
func NewCSVProcessorHandler() (*CSVProcessorHandler, error) {
	storage, err := s3service.NewService(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 service: %w", err)
	}

	cfg, err := appConfig.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load app config: %w", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &CSVProcessorHandler{
		storage:     storage,
		db:          db,
		companyRepo: database.NewCompanyRepository(db),
		recRepo:     database.NewRecommendationRepository(db),
		matcher:     matcher.NewMatcher(catalog.Builtin()),
		webhookURL:  cfg.N8NWebhookURL,
	}, nil
}

// CSVProcessResult is the result of processing a CSV file.
type CSVProcessResult struct {
	Message         string   `json:"message"`
	BatchID         string   `json:"batch_id"`
	Inserted        int      `json:"inserted"`
	Failed          int      `json:"failed"`
	Recommendations int      `json:"recommendations"`
	Errors          []string `json:"errors,omitempty"`
}

// Handle processes S3 events for uploaded questionnaire CSV files.
func (h *CSVProcessorHandler) Handle(ctx context.Context, s3Event events.S3Event) (CSVProcessResult, error) {
	logger := utils.GetLogger()

	if len(s3Event.Records) == 0 {
		return CSVProcessResult{Message: "No records to process"}, nil
	}

	record := s3Event.Records[0]
	bucket := record.S3.Bucket.Name
	key, err := url.QueryUnescape(record.S3.Object.Key)
	if err != nil {
		return CSVProcessResult{}, fmt.Errorf("failed to decode S3 key: %w", err)
	}

	logger.Info("Processing questionnaire CSV",
		utils.String("bucket", bucket),
		utils.String("key", key))

	// Download CSV from S3
	csvContent, err := h.downloadCSV(ctx, key)
	if err != nil {
		logger.Error("Failed to download CSV", utils.Error(err))
		return CSVProcessResult{}, fmt.Errorf("failed to download CSV: %w", err)
	}

	// Generate batch ID
	batchID := generateBatchID(key)

	// Parse CSV
	parser := utils.NewCSVParser()
	companies, parseErrors := parser.ParseCompanies(csvContent, batchID)

	if len(companies) == 0 {
		errMsgs := make([]string, len(parseErrors))
		for i, e := range parseErrors {
			errMsgs[i] = e.Error()
		}
		return CSVProcessResult{
			Message: "No valid companies found in CSV",
			BatchID: batchID,
			Errors:  errMsgs,
		}, nil
	}

	logger.Info("Parsed CSV",
		utils.String("batchID", batchID),
		utils.Int("validCompanies", len(companies)),
		utils.Int("parseErrors", len(parseErrors)))

	// Insert companies into database
	result, err := h.companyRepo.BulkInsert(ctx, companies)
	if err != nil {
		logger.Error("Failed to insert companies", utils.Error(err))
		return CSVProcessResult{}, fmt.Errorf("failed to insert companies: %w", err)
	}

	logger.Info("Inserted companies",
		utils.String("batchID", batchID),
		utils.Int("inserted", result.InsertedCount),
		utils.Int("failed", result.FailedCount))

	// Match the new batch against the catalog and store recommendations
	recCount, err := h.matchBatch(ctx, batchID)
	if err != nil {
		logger.Warn("Matching failed for batch", utils.Error(err))
	}

	// Trigger n8n webhook if companies were inserted
	if result.InsertedCount > 0 && h.webhookURL != "" {
		if err := h.triggerWebhook(ctx, batchID, result.InsertedCount, recCount); err != nil {
			logger.Warn("Failed to trigger n8n webhook", utils.Error(err))
		}
	}

	// Archive processed file
	if err := h.storage.ArchiveProcessedFile(ctx, key); err != nil {
		logger.Warn("Failed to archive file", utils.Error(err))
	}

	// Combine parse errors with insert errors
	allErrors := make([]string, 0)
	for _, e := range parseErrors {
		allErrors = append(allErrors, e.Error())
	}
	allErrors = append(allErrors, result.Errors...)

	// Limit errors in response
	if len(allErrors) > 10 {
		allErrors = allErrors[:10]
	}

	return CSVProcessResult{
		Message:         "CSV processed successfully",
		BatchID:         batchID,
		Inserted:        result.InsertedCount,
		Failed:          result.FailedCount + len(parseErrors),
		Recommendations: recCount,
		Errors:          allErrors,
	}, nil
}

// defaultProjectBudget is assumed when a questionnaire omits the project
// budget column.
const defaultProjectBudget = 5_000_000

// matchBatch computes and persists recommendations for every company in the
// batch. Companies without a stated project budget are matched with a
// conservative default budget so amount fit stays meaningful.
func (h *CSVProcessorHandler) matchBatch(ctx context.Context, batchID string) (int, error) {
	companies, err := h.companyRepo.GetByBatchID(ctx, batchID)
	if err != nil {
		return 0, fmt.Errorf("failed to load batch companies: %w", err)
	}

	var creates []*models.RecommendationCreate
	for _, company := range companies {
		profile := company.Profile()
		project := &models.ProjectInfo{Budget: defaultProjectBudget}

		recs, err := h.matcher.Recommend(&profile, project, 0)
		if err != nil {
			utils.GetLogger().Warn("Failed to match company",
				utils.String("companyID", company.CompanyID),
				utils.Error(err))
			continue
		}

		for _, rec := range recs {
			creates = append(creates, rec.ToCreate(company.ID, batchID))
		}
	}

	if len(creates) == 0 {
		return 0, nil
	}

	inserted, failed, err := h.recRepo.BulkInsert(ctx, creates)
	if err != nil {
		return inserted, fmt.Errorf("failed to store recommendations: %w", err)
	}
	if failed > 0 {
		utils.GetLogger().Warn("Some recommendations failed to store",
			utils.Int("failed", failed))
	}

	return inserted, nil
}

// downloadCSV downloads CSV content from S3.
func (h *CSVProcessorHandler) downloadCSV(ctx context.Context, key string) (string, error) {
	data, err := h.storage.DownloadFile(ctx, key)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("CSV file is empty")
	}
	return string(data), nil
}

// generateBatchID generates a unique batch ID for this upload.
func generateBatchID(key string) string {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	hash := sha256.Sum256([]byte(key + timestamp))
	return hex.EncodeToString(hash[:])[:16]
}

// triggerWebhook triggers the n8n notification workflow.
func (h *CSVProcessorHandler) triggerWebhook(ctx context.Context, batchID string, companyCount, recommendationCount int) error {
	payload := map[string]interface{}{
		"batch_id":             batchID,
		"company_count":        companyCount,
		"recommendation_count": recommendationCount,
		"trigger_type":         "csv_upload",
		"timestamp":            time.Now().UTC().Format(time.RFC3339),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", h.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}

// Close cleans up resources.
func (h *CSVProcessorHandler) Close() {
	if h.db != nil {
		h.db.Close()
	}
}

// HandleWithConfig processes S3 events with a custom config (for testing).
func HandleWithConfig(ctx context.Context, s3Event events.S3Event, dbURL, webhookURL string) (CSVProcessResult, error) {
	db, err := database.NewFromURL(dbURL)
	if err != nil {
		return CSVProcessResult{}, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	storage, err := s3service.NewService(ctx)
	if err != nil {
		return CSVProcessResult{}, fmt.Errorf("failed to create S3 service: %w", err)
	}

	handler := &CSVProcessorHandler{
		storage:     storage,
		db:          db,
		companyRepo: database.NewCompanyRepository(db),
		recRepo:     database.NewRecommendationRepository(db),
		matcher:     matcher.NewMatcher(catalog.Builtin()),
		webhookURL:  webhookURL,
	}

	return handler.Handle(ctx, s3Event)
}

// GetBucketFromEnv returns the S3 bucket name from environment.
func GetBucketFromEnv() string {
	return os.Getenv("S3_BUCKET")
}
