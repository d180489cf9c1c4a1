// Package ses provides email notification services via AWS SES
package ses

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"

	appConfig "subsidy-advisor-engine/internal/config"
	"subsidy-advisor-engine/internal/models"
	"subsidy-advisor-engine/internal/utils"
)

// Service handles SES email operations
type Service struct {
	client    *ses.Client
	fromEmail string
}

// EmailParams represents parameters for sending an email
type EmailParams struct {
	To        string
	Subject   string
	HTMLBody  string
	TextBody  string
	ReplyTo   string
	CC        []string
	BCC       []string
	ConfigSet string
}

// RecommendationNotificationParams contains data for a recommendation email
type RecommendationNotificationParams struct {
	CompanyName    string
	CompanyEmail   string
	ProgramCount   int
	TopPrograms    []ProgramInfo
	DashboardURL   string
}

// ProgramInfo contains info about a single recommended program for email
type ProgramInfo struct {
	ProgramName        string
	MaxAmount          float64
	SubsidyRate        float64
	EstimatedAmount    float64
	MatchScore         float64
	SuccessProbability float64
	ApplicationPeriod  string
}

// SendEmailResult contains the result of sending an email
type SendEmailResult struct {
	MessageID string
	SentAt    time.Time
}

// NewService creates a new SES service
func NewService(ctx context.Context) (*Service, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	appCfg, err := appConfig.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load app config: %w", err)
	}

	client := ses.NewFromConfig(cfg)

	return &Service{
		client:    client,
		fromEmail: appCfg.SESSenderEmail,
	}, nil
}

// SendEmail sends a basic email
func (s *Service) SendEmail(ctx context.Context, params EmailParams) (*SendEmailResult, error) {
	input := &ses.SendEmailInput{
		Source: aws.String(s.fromEmail),
		Destination: &types.Destination{
			ToAddresses: []string{params.To},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(params.Subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{},
		},
	}

	// Add HTML body if provided
	if params.HTMLBody != "" {
		input.Message.Body.Html = &types.Content{
			Data:    aws.String(params.HTMLBody),
			Charset: aws.String("UTF-8"),
		}
	}

	// Add text body if provided
	if params.TextBody != "" {
		input.Message.Body.Text = &types.Content{
			Data:    aws.String(params.TextBody),
			Charset: aws.String("UTF-8"),
		}
	}

	// Add CC addresses
	if len(params.CC) > 0 {
		input.Destination.CcAddresses = params.CC
	}

	// Add BCC addresses
	if len(params.BCC) > 0 {
		input.Destination.BccAddresses = params.BCC
	}

	// Add reply-to
	if params.ReplyTo != "" {
		input.ReplyToAddresses = []string{params.ReplyTo}
	}

	// Add config set if specified
	if params.ConfigSet != "" {
		input.ConfigurationSetName = aws.String(params.ConfigSet)
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		utils.Logger.Error("Failed to send email",
			zap.String("to", params.To),
			zap.String("subject", params.Subject),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to send email: %w", err)
	}

	utils.Logger.Info("Email sent successfully",
		zap.String("to", params.To),
		zap.String("subject", params.Subject),
		zap.String("messageId", *result.MessageId),
	)

	return &SendEmailResult{
		MessageID: *result.MessageId,
		SentAt:    time.Now(),
	}, nil
}

// SendRecommendationNotification sends a subsidy recommendation email
func (s *Service) SendRecommendationNotification(ctx context.Context, params RecommendationNotificationParams) (*SendEmailResult, error) {
	htmlBody, err := s.renderRecommendationHTML(params)
	if err != nil {
		return nil, fmt.Errorf("failed to render email template: %w", err)
	}

	textBody := s.renderRecommendationText(params)

	subject := fmt.Sprintf("【補助金のご案内】%s様に%d件の補助金が見つかりました", params.CompanyName, params.ProgramCount)

	return s.SendEmail(ctx, EmailParams{
		To:       params.CompanyEmail,
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: textBody,
	})
}

// SendBatchRecommendationNotifications sends recommendation emails to
// multiple companies
func (s *Service) SendBatchRecommendationNotifications(ctx context.Context, notifications []RecommendationNotificationParams) ([]SendEmailResult, []error) {
	results := make([]SendEmailResult, 0, len(notifications))
	errors := make([]error, 0)

	for _, notif := range notifications {
		result, err := s.SendRecommendationNotification(ctx, notif)
		if err != nil {
			errors = append(errors, fmt.Errorf("failed to send to %s: %w", notif.CompanyEmail, err))
			continue
		}
		results = append(results, *result)
	}

	utils.Logger.Info("Batch notifications sent",
		zap.Int("total", len(notifications)),
		zap.Int("success", len(results)),
		zap.Int("failed", len(errors)),
	)

	return results, errors
}

// BuildRecommendationNotificationParams groups stored recommendations for
// one company into notification params. All details must belong to the same
// company; the first entry supplies the address fields.
func BuildRecommendationNotificationParams(details []*models.RecommendationWithDetails, dashboardURL string) RecommendationNotificationParams {
	if len(details) == 0 {
		return RecommendationNotificationParams{DashboardURL: dashboardURL}
	}

	topPrograms := make([]ProgramInfo, 0, len(details))
	for _, d := range details {
		topPrograms = append(topPrograms, ProgramInfo{
			ProgramName:        d.ProgramName,
			MaxAmount:          d.MaxAmount,
			SubsidyRate:        d.SubsidyRate,
			EstimatedAmount:    d.EstimatedAmount,
			MatchScore:         d.MatchScore,
			SuccessProbability: d.SuccessProbability,
			ApplicationPeriod:  d.ApplicationPeriod,
		})
	}

	name := details[0].CompanyName
	if name == "" {
		name = "ご担当者"
	}

	return RecommendationNotificationParams{
		CompanyName:  name,
		CompanyEmail: details[0].CompanyEmail,
		ProgramCount: len(topPrograms),
		TopPrograms:  topPrograms,
		DashboardURL: dashboardURL,
	}
}

// renderRecommendationHTML renders the HTML email template
func (s *Service) renderRecommendationHTML(params RecommendationNotificationParams) (string, error) {
	tmpl := `
<!DOCTYPE html>
<html lang="ja">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body { font-family: 'Hiragino Kaku Gothic ProN', 'Yu Gothic', Meiryo, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #2b6cb0 0%, #2c5282 100%); color: white; padding: 30px; border-radius: 10px 10px 0 0; text-align: center; }
        .header h1 { margin: 0; font-size: 22px; }
        .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; }
        .program-card { background: white; border-radius: 8px; padding: 20px; margin: 15px 0; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        .program-card h3 { margin: 0 0 10px 0; color: #2b6cb0; }
        .program-card .period { color: #666; font-size: 14px; margin-bottom: 10px; }
        .program-card .details { display: flex; justify-content: space-between; flex-wrap: wrap; }
        .program-card .detail-item { margin: 5px 0; }
        .program-card .detail-label { font-size: 12px; color: #999; }
        .program-card .detail-value { font-weight: bold; color: #333; }
        .score-badge { display: inline-block; background: #2f855a; color: white; padding: 5px 12px; border-radius: 20px; font-weight: bold; }
        .cta-button { display: inline-block; background: #2b6cb0; color: white; padding: 15px 30px; text-decoration: none; border-radius: 8px; font-weight: bold; margin-top: 20px; }
        .footer { text-align: center; margin-top: 30px; color: #999; font-size: 12px; }
    </style>
</head>
<body>
    <div class="header">
        <h1>補助金マッチング結果のご案内</h1>
        <p>{{.CompanyName}}様に{{.ProgramCount}}件の補助金候補が見つかりました</p>
    </div>
    <div class="content">
        <p>ご入力いただいた企業情報をもとに、申請可能性の高い補助金を選定しました。</p>

        {{range .TopPrograms}}
        <div class="program-card">
            <h3>{{.ProgramName}}</h3>
            <p class="period">公募期間: {{.ApplicationPeriod}}</p>
            <div class="details">
                <div class="detail-item">
                    <div class="detail-label">補助上限額</div>
                    <div class="detail-value">{{printf "%.0f" .MaxAmount}}円</div>
                </div>
                <div class="detail-item">
                    <div class="detail-label">受給見込額</div>
                    <div class="detail-value">{{printf "%.0f" .EstimatedAmount}}円</div>
                </div>
                <div class="detail-item">
                    <div class="detail-label">適合度</div>
                    <div class="detail-value"><span class="score-badge">{{printf "%.0f" (mulf .MatchScore 100)}}%</span></div>
                </div>
            </div>
        </div>
        {{end}}

        {{if .DashboardURL}}
        <div style="text-align: center;">
            <a href="{{.DashboardURL}}" class="cta-button">詳細を確認する</a>
        </div>
        {{end}}
    </div>
    <div class="footer">
        <p>このメールは補助金アドバイザーエンジンから送信されています。</p>
        <p>アンケートにご回答いただいた企業様にお送りしています。</p>
    </div>
</body>
</html>`

	t, err := template.New("recommendation_notification").Funcs(template.FuncMap{
		"mulf": func(a, b float64) float64 { return a * b },
	}).Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, params); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// renderRecommendationText renders plain text version
func (s *Service) renderRecommendationText(params RecommendationNotificationParams) string {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s様\n\n", params.CompanyName))
	buf.WriteString(fmt.Sprintf("ご入力いただいた企業情報をもとに、%d件の補助金候補が見つかりました。\n\n", params.ProgramCount))

	for i, program := range params.TopPrograms {
		buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, program.ProgramName))
		buf.WriteString(fmt.Sprintf("   補助上限額: %.0f円（補助率 %.0f%%）\n", program.MaxAmount, program.SubsidyRate*100))
		buf.WriteString(fmt.Sprintf("   受給見込額: %.0f円\n", program.EstimatedAmount))
		buf.WriteString(fmt.Sprintf("   適合度: %.0f%% / 採択見込み: %.0f%%\n", program.MatchScore*100, program.SuccessProbability*100))
		buf.WriteString(fmt.Sprintf("   公募期間: %s\n\n", program.ApplicationPeriod))
	}

	if params.DashboardURL != "" {
		buf.WriteString(fmt.Sprintf("詳細はこちら: %s\n\n", params.DashboardURL))
	}

	buf.WriteString("補助金アドバイザーエンジン\n")

	return buf.String()
}

// VerifyEmailAddress verifies an email address for sending
func (s *Service) VerifyEmailAddress(ctx context.Context, email string) error {
	input := &ses.VerifyEmailAddressInput{
		EmailAddress: aws.String(email),
	}

	_, err := s.client.VerifyEmailAddress(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to verify email: %w", err)
	}

	utils.Logger.Info("Email verification initiated", zap.String("email", email))
	return nil
}

// GetSendQuota returns the current SES sending quota
func (s *Service) GetSendQuota(ctx context.Context) (*ses.GetSendQuotaOutput, error) {
	result, err := s.client.GetSendQuota(ctx, &ses.GetSendQuotaInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to get send quota: %w", err)
	}
	return result, nil
}
