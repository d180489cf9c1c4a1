package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appConfig "subsidy-advisor-engine/internal/config"
)

func TestResolveWorkflow(t *testing.T) {
	h := newWebhookTriggerHandler(&appConfig.Config{
		N8NMatchingWebhookURL: "https://n8n.example.com/webhook/matching",
		N8NWebhookURL:         "https://n8n.example.com/webhook/intake",
	})

	url, err := h.resolveWorkflow(WorkflowMatching)
	require.NoError(t, err)
	assert.Equal(t, "https://n8n.example.com/webhook/matching", url)

	_, err = h.resolveWorkflow("crawler")
	assert.ErrorIs(t, err, errUnknownWorkflow)

	// Known workflow without a configured URL.
	_, err = h.resolveWorkflow(WorkflowNotification)
	assert.ErrorIs(t, err, errWorkflowNotConfigured)

	assert.Equal(t, []string{WorkflowIntake, WorkflowMatching, WorkflowNotification}, h.knownWorkflows())
}

func TestWebhookTriggerHandle_Validation(t *testing.T) {
	h := newWebhookTriggerHandler(&appConfig.Config{
		N8NMatchingWebhookURL: "https://n8n.example.com/webhook/matching",
	})

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: "POST",
		Body:       `{"workflow_type":"matching"}`,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, resp.Body, "batch_id")

	resp, err = h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: "POST",
		Body:       `{"batch_id":"batch-1","workflow_type":"crawler"}`,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, resp.Body, "intake, matching, notification")

	resp, err = h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: "POST",
		Body:       `{"batch_id":"batch-1","workflow_type":"notification"}`,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp, err = h.Handle(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: "OPTIONS"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWebhookTriggerHandle_ForwardsPayload(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"execution_id":"exec-42"}`))
	}))
	defer server.Close()

	h := newWebhookTriggerHandler(&appConfig.Config{N8NMatchingWebhookURL: server.URL})

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: "POST",
		Body:       `{"batch_id":"batch-7","extra_params":{"top_n":5}}`,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Empty workflow_type defaults to matching and extra params ride along.
	assert.Equal(t, "batch-7", received["batch_id"])
	assert.Equal(t, WorkflowMatching, received["workflow_type"])
	assert.Equal(t, "lambda_trigger", received["source"])
	assert.Equal(t, float64(5), received["top_n"])

	var triggerResp TriggerResponse
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &triggerResp))
	assert.Equal(t, "batch-7", triggerResp.BatchID)
	assert.Equal(t, map[string]interface{}{"execution_id": "exec-42"}, triggerResp.WebhookResponse)
}

func TestWebhookTriggerHandle_WebhookFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	h := newWebhookTriggerHandler(&appConfig.Config{N8NMatchingWebhookURL: server.URL})

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: "POST",
		Body:       `{"batch_id":"batch-7"}`,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, resp.Body, "status 502")
}
