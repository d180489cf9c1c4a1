package handlers

import (
	"context"
	"fmt"

	appConfig "subsidy-advisor-engine/internal/config"
	"subsidy-advisor-engine/internal/models"
	"subsidy-advisor-engine/internal/services/database"
	"subsidy-advisor-engine/internal/services/ses"
	"subsidy-advisor-engine/internal/utils"
)

// NotificationHandler sends recommendation emails for an intake batch.
// Pending recommendations are grouped per company, rendered into one email
// each, and marked as notified once the send succeeds.
type NotificationHandler struct {
	db           *database.DB
	recRepo      *database.RecommendationRepository
	emailer      *ses.Service
	dashboardURL string
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler() (*NotificationHandler, error) {
	cfg, err := appConfig.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load app config: %w", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	emailer, err := ses.NewService(context.Background())
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create SES service: %w", err)
	}

	return &NotificationHandler{
		db:           db,
		recRepo:      database.NewRecommendationRepository(db),
		emailer:      emailer,
		dashboardURL: cfg.DashboardURL,
	}, nil
}

// NotificationRequest selects which batch to notify. An empty batch ID
// notifies every pending recommendation.
type NotificationRequest struct {
	BatchID string `json:"batch_id"`
}

// NotificationResult summarizes one notification run.
type NotificationResult struct {
	Message           string   `json:"message"`
	BatchID           string   `json:"batch_id,omitempty"`
	CompaniesNotified int      `json:"companies_notified"`
	EmailsFailed      int      `json:"emails_failed"`
	Errors            []string `json:"errors,omitempty"`
}

// Handle sends pending recommendation notifications for the requested batch.
func (h *NotificationHandler) Handle(ctx context.Context, request NotificationRequest) (NotificationResult, error) {
	logger := utils.GetLogger()

	pending, err := h.recRepo.GetPendingNotifications(ctx, request.BatchID)
	if err != nil {
		return NotificationResult{}, fmt.Errorf("failed to load pending notifications: %w", err)
	}

	if len(pending) == 0 {
		return NotificationResult{
			Message: "No pending notifications",
			BatchID: request.BatchID,
		}, nil
	}

	grouped := groupByCompany(pending)

	result := NotificationResult{BatchID: request.BatchID}
	for _, details := range grouped {
		params := ses.BuildRecommendationNotificationParams(details, h.dashboardURL)

		if _, err := h.emailer.SendRecommendationNotification(ctx, params); err != nil {
			result.EmailsFailed++
			result.Errors = append(result.Errors, err.Error())
			continue
		}

		for _, d := range details {
			if err := h.recRepo.MarkAsNotified(ctx, d.ID); err != nil {
				logger.Warn("Failed to mark recommendation as notified",
					utils.Int("recommendationID", int(d.ID)),
					utils.Error(err))
			}
		}
		result.CompaniesNotified++
	}

	logger.Info("Notification run complete",
		utils.String("batchID", request.BatchID),
		utils.Int("companiesNotified", result.CompaniesNotified),
		utils.Int("emailsFailed", result.EmailsFailed))

	result.Message = "Notifications processed"
	if len(result.Errors) > 10 {
		result.Errors = result.Errors[:10]
	}
	return result, nil
}

// groupByCompany buckets pending recommendations per company, preserving the
// score order the query returned within each bucket.
func groupByCompany(pending []*models.RecommendationWithDetails) [][]*models.RecommendationWithDetails {
	index := make(map[int64]int)
	var grouped [][]*models.RecommendationWithDetails
	for _, d := range pending {
		i, ok := index[d.CompanyID]
		if !ok {
			i = len(grouped)
			index[d.CompanyID] = i
			grouped = append(grouped, nil)
		}
		grouped[i] = append(grouped[i], d)
	}
	return grouped
}

// Close cleans up resources.
func (h *NotificationHandler) Close() {
	if h.db != nil {
		h.db.Close()
	}
}
