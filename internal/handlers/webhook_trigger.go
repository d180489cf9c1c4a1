// Package handlers provides HTTP handlers for the subsidy advisor engine.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"

	appConfig "subsidy-advisor-engine/internal/config"
	"subsidy-advisor-engine/internal/utils"
)

// Workflow names accepted by the trigger endpoint.
const (
	WorkflowMatching     = "matching"
	WorkflowNotification = "notification"
	WorkflowIntake       = "intake"
)

var (
	errUnknownWorkflow       = errors.New("unknown workflow type")
	errWorkflowNotConfigured = errors.New("workflow webhook not configured")
)

// WebhookTriggerHandler dispatches trigger requests to the n8n workflow
// webhooks. The workflow-to-URL table is built from config once at startup,
// so an unknown or unconfigured workflow is rejected before any request
// leaves the handler.
type WebhookTriggerHandler struct {
	webhooks map[string]string
	client   *http.Client
}

// NewWebhookTriggerHandler creates a webhook trigger handler from the
// application config.
func NewWebhookTriggerHandler() *WebhookTriggerHandler {
	cfg, err := appConfig.Load()
	if err != nil {
		cfg = &appConfig.Config{}
	}
	return newWebhookTriggerHandler(cfg)
}

func newWebhookTriggerHandler(cfg *appConfig.Config) *WebhookTriggerHandler {
	return &WebhookTriggerHandler{
		webhooks: map[string]string{
			WorkflowMatching:     cfg.N8NMatchingWebhookURL,
			WorkflowNotification: cfg.N8NNotificationWebhookURL,
			WorkflowIntake:       cfg.N8NWebhookURL,
		},
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// TriggerRequest is the request body for triggering a workflow.
type TriggerRequest struct {
	WorkflowType string                 `json:"workflow_type"`
	BatchID      string                 `json:"batch_id"`
	ExtraParams  map[string]interface{} `json:"extra_params,omitempty"`
}

// TriggerResponse is the response for a workflow trigger request.
type TriggerResponse struct {
	Message         string      `json:"message"`
	BatchID         string      `json:"batch_id"`
	WebhookResponse interface{} `json:"webhook_response,omitempty"`
}

// Handle processes API Gateway requests to trigger workflows.
func (h *WebhookTriggerHandler) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger := utils.GetLogger()

	headers := map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type,Authorization",
		"Access-Control-Allow-Methods": "POST,OPTIONS",
		"Content-Type":                 "application/json",
	}

	if request.HTTPMethod == "OPTIONS" {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusOK,
			Headers:    headers,
		}, nil
	}

	var req TriggerRequest
	if err := json.Unmarshal([]byte(request.Body), &req); err != nil {
		return errorResponse(headers, http.StatusBadRequest, "Invalid JSON in request body")
	}

	if req.BatchID == "" {
		return errorResponse(headers, http.StatusBadRequest, "Missing required field: batch_id")
	}
	if req.WorkflowType == "" {
		req.WorkflowType = WorkflowMatching
	}

	webhookURL, err := h.resolveWorkflow(req.WorkflowType)
	switch {
	case errors.Is(err, errUnknownWorkflow):
		return errorResponse(headers, http.StatusBadRequest,
			fmt.Sprintf("Unknown workflow type %q, expected one of: %s", req.WorkflowType, strings.Join(h.knownWorkflows(), ", ")))
	case errors.Is(err, errWorkflowNotConfigured):
		return errorResponse(headers, http.StatusServiceUnavailable,
			fmt.Sprintf("Workflow %q has no webhook URL configured", req.WorkflowType))
	}

	payload := map[string]interface{}{
		"batch_id":      req.BatchID,
		"workflow_type": req.WorkflowType,
		"source":        "lambda_trigger",
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range req.ExtraParams {
		payload[k] = v
	}

	webhookResp, err := h.post(ctx, webhookURL, payload)
	if err != nil {
		logger.Error("Failed to trigger webhook",
			utils.String("workflowType", req.WorkflowType),
			utils.Error(err))
		return errorResponse(headers, http.StatusInternalServerError, fmt.Sprintf("Failed to trigger workflow: %v", err))
	}

	logger.Info("Successfully triggered webhook",
		utils.String("workflowType", req.WorkflowType),
		utils.String("batchID", req.BatchID))

	response := TriggerResponse{
		Message:         fmt.Sprintf("Successfully triggered %s workflow", req.WorkflowType),
		BatchID:         req.BatchID,
		WebhookResponse: webhookResp,
	}

	body, _ := json.Marshal(response)

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    headers,
		Body:       string(body),
	}, nil
}

// resolveWorkflow maps a workflow name to its configured webhook URL.
func (h *WebhookTriggerHandler) resolveWorkflow(workflowType string) (string, error) {
	url, ok := h.webhooks[workflowType]
	if !ok {
		return "", errUnknownWorkflow
	}
	if url == "" {
		return "", errWorkflowNotConfigured
	}
	return url, nil
}

// knownWorkflows returns the accepted workflow names, sorted for stable
// error messages.
func (h *WebhookTriggerHandler) knownWorkflows() []string {
	names := make([]string, 0, len(h.webhooks))
	for name := range h.webhooks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// post sends the payload to the webhook and returns the parsed JSON
// response, or nil when the webhook answers with a non-JSON body.
func (h *WebhookTriggerHandler) post(ctx context.Context, webhookURL string, payload map[string]interface{}) (interface{}, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	var result interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, nil
	}
	return result, nil
}
