// Package models defines the data structures for the subsidy advisor engine.
package models

import (
	"time"
)

// RecommendationStatus represents the lifecycle of a stored recommendation.
type RecommendationStatus string

const (
	RecommendationStatusPending     RecommendationStatus = "pending"
	RecommendationStatusRecommended RecommendationStatus = "recommended"
	RecommendationStatusNotified    RecommendationStatus = "notified"
	RecommendationStatusExpired     RecommendationStatus = "expired"
)

// SubScores holds the six weighted components of a match score. Each is
// clamped to [0,1] before combination.
type SubScores struct {
	CategoryFit float64 `json:"category_fit"`
	AmountFit   float64 `json:"amount_fit"`
	IndustryFit float64 `json:"industry_fit"`
	ContentFit  float64 `json:"content_fit"`
	SuccessFit  float64 `json:"success_fit"`
	TimingFit   float64 `json:"timing_fit"`
}

// SubsidyRecommendation is one ranked match between a company/project pair
// and a catalog program.
type SubsidyRecommendation struct {
	Program            *SubsidyProgram `json:"program"`
	MatchScore         float64         `json:"match_score"`
	SubScores          SubScores       `json:"sub_scores"`
	Reasons            []string        `json:"reasons,omitempty"`
	Warnings           []string        `json:"warnings,omitempty"`
	EstimatedAmount    float64         `json:"estimated_amount"`
	SuccessProbability float64         `json:"success_probability"`
}

// Recommendation represents a persisted company-program recommendation.
type Recommendation struct {
	ID                 int64                `json:"id" db:"id"`
	CompanyID          int64                `json:"company_id" db:"company_id"`
	ProgramID          string               `json:"program_id" db:"program_id"`
	MatchScore         float64              `json:"match_score" db:"match_score"`
	Status             RecommendationStatus `json:"status" db:"status"`
	Reasons            []string             `json:"reasons,omitempty" db:"reasons"`
	Warnings           []string             `json:"warnings,omitempty" db:"warnings"`
	EstimatedAmount    float64              `json:"estimated_amount" db:"estimated_amount"`
	SuccessProbability float64              `json:"success_probability" db:"success_probability"`
	BatchID            string               `json:"batch_id,omitempty" db:"batch_id"`
	CreatedAt          time.Time            `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at" db:"updated_at"`
	NotifiedAt         *time.Time           `json:"notified_at,omitempty" db:"notified_at"`
}

// RecommendationCreate represents data needed to persist a recommendation.
type RecommendationCreate struct {
	CompanyID          int64                `json:"company_id" validate:"required"`
	ProgramID          string               `json:"program_id" validate:"required"`
	MatchScore         float64              `json:"match_score" validate:"gte=0,lte=1"`
	Status             RecommendationStatus `json:"status"`
	Reasons            []string             `json:"reasons,omitempty"`
	Warnings           []string             `json:"warnings,omitempty"`
	EstimatedAmount    float64              `json:"estimated_amount"`
	SuccessProbability float64              `json:"success_probability"`
	BatchID            string               `json:"batch_id,omitempty"`
}

// ToCreate converts a computed recommendation to its persistence form.
func (r *SubsidyRecommendation) ToCreate(companyDBID int64, batchID string) *RecommendationCreate {
	return &RecommendationCreate{
		CompanyID:          companyDBID,
		ProgramID:          r.Program.ID,
		MatchScore:         r.MatchScore,
		Status:             RecommendationStatusRecommended,
		Reasons:            r.Reasons,
		Warnings:           r.Warnings,
		EstimatedAmount:    r.EstimatedAmount,
		SuccessProbability: r.SuccessProbability,
		BatchID:            batchID,
	}
}

// RecommendationWithDetails joins a stored recommendation with the company
// and program fields needed to render a notification.
type RecommendationWithDetails struct {
	Recommendation
	CompanyEmail      string  `json:"company_email"`
	CompanyName       string  `json:"company_name"`
	ProgramName       string  `json:"program_name"`
	MaxAmount         float64 `json:"max_amount"`
	SubsidyRate       float64 `json:"subsidy_rate"`
	ApplicationPeriod string  `json:"application_period"`
}

// BatchRecommendSummary provides summary statistics for one intake batch.
type BatchRecommendSummary struct {
	BatchID                 string  `json:"batch_id"`
	TotalCompanies          int     `json:"total_companies"`
	TotalPrograms           int     `json:"total_programs"`
	TotalRecommendations    int     `json:"total_recommendations"`
	CompaniesWithMatches    int     `json:"companies_with_matches"`
	AvgMatchesPerCompany    float64 `json:"avg_matches_per_company"`
	ProcessingTimeSeconds   float64 `json:"processing_time_seconds"`
	EligiblePairs           int     `json:"eligible_pairs"`
	AboveThresholdMatches   int     `json:"above_threshold_matches"`
	NotificationsDispatched int     `json:"notifications_dispatched"`
}
