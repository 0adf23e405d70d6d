// Package jira provides a client for the Jira REST API.
//
// This package handles:
// - Creating issues from validated modal submissions
// - Validating issue fields against Jira's length constraints
// - Bearer-token authentication and error surfacing for all API calls
//
// The client is a thin, single-attempt RPC wrapper: failed calls are
// reported to the caller and never retried.
package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cosmix/workbot/pkg/constants"
	"github.com/cosmix/workbot/pkg/metrics"
	"go.uber.org/zap"
)

// Client manages interactions with the Jira REST API.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewClient creates a new Jira API client.
//
// Parameters:
// - baseURL: Jira instance base URL (e.g. "https://jira.example.net")
// - apiToken: personal access token used as a bearer token
// - logger: Zap logger for structured logging
func NewClient(baseURL, apiToken string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiToken: apiToken,
		httpClient: &http.Client{
			Timeout: constants.DefaultHTTPTimeout,
		},
		logger: logger,
	}
}

// IssueRequest carries the validated fields extracted from a Jira-issue
// modal submission. Description is optional; every other field is required.
type IssueRequest struct {
	Summary     string
	Description string
	ProjectKey  string
	IssueType   string
}

// Wire types for the POST /rest/api/2/issue body.
type createIssueRequest struct {
	Fields issueFields `json:"fields"`
}

type issueFields struct {
	Project     issueProject `json:"project"`
	Summary     string       `json:"summary"`
	Description string       `json:"description,omitempty"`
	IssueType   issueType    `json:"issuetype"`
}

type issueProject struct {
	Key string `json:"key"`
}

type issueType struct {
	Name string `json:"name"`
}

type createIssueResponse struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self"`
}

// Validate checks that all required issue fields are present after trimming.
func (r *IssueRequest) Validate() error {
	if strings.TrimSpace(r.Summary) == "" {
		return fmt.Errorf("summary cannot be empty")
	}
	if len(r.Summary) > constants.MaxTitleLength {
		return fmt.Errorf("summary exceeds maximum length of %d characters (current: %d)",
			constants.MaxTitleLength, len(r.Summary))
	}
	if strings.TrimSpace(r.ProjectKey) == "" {
		return fmt.Errorf("project key cannot be empty")
	}
	if strings.TrimSpace(r.IssueType) == "" {
		return fmt.Errorf("issue type cannot be empty")
	}
	return nil
}

// CreateIssue creates a new Jira issue and returns its key (e.g. "PROJ-42").
//
// The request is validated, marshalled into the Jira create-issue shape and
// sent in a single attempt. API errors include the response body so
// operators can diagnose schema mismatches from the logs.
func (c *Client) CreateIssue(ctx context.Context, req IssueRequest) (string, error) {
	done := c.startJiraRequest("create_issue")

	if err := req.Validate(); err != nil {
		done(err)
		return "", err
	}

	body, err := json.Marshal(createIssueRequest{
		Fields: issueFields{
			Project:     issueProject{Key: strings.TrimSpace(req.ProjectKey)},
			Summary:     strings.TrimSpace(req.Summary),
			Description: strings.TrimSpace(req.Description),
			IssueType:   issueType{Name: strings.TrimSpace(req.IssueType)},
		},
	})
	if err != nil {
		done(err)
		return "", fmt.Errorf("failed to marshal issue request: %w", err)
	}

	resp, err := c.makeJiraRequest(ctx, http.MethodPost, c.baseURL+"/rest/api/2/issue", body)
	if err != nil {
		done(err)
		return "", err
	}
	defer resp.Body.Close()

	var created createIssueResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		done(err)
		return "", fmt.Errorf("failed to decode issue response: %w", err)
	}

	done(nil)
	c.logger.Info("created Jira issue",
		zap.String("key", created.Key),
		zap.String("project", req.ProjectKey),
		zap.String("issue_type", req.IssueType),
	)
	return created.Key, nil
}

// HealthCheck performs a lightweight call to verify Jira API connectivity.
func (c *Client) HealthCheck(ctx context.Context) error {
	done := c.startJiraRequest("health_check")

	resp, err := c.makeJiraRequest(ctx, http.MethodGet, c.baseURL+"/rest/api/2/myself", nil)
	if err != nil {
		done(err)
		return err
	}
	resp.Body.Close()

	done(nil)
	return nil
}

// makeJiraRequest creates and executes an HTTP request to the Jira API.
//
// Handles authentication and error handling for all Jira API calls.
// Non-2xx responses include the full response body in the error message.
func (c *Client) makeJiraRequest(ctx context.Context, method, endpoint string, body []byte) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewBuffer(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		bodyBytes, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("jira API error (status %d): failed to read response body: %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("jira API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	return resp, nil
}
