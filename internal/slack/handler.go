package slack

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cosmix/workbot/internal/jira"
	"github.com/cosmix/workbot/pkg/catalog"
	"github.com/cosmix/workbot/pkg/config"
	"github.com/cosmix/workbot/pkg/constants"
	"github.com/cosmix/workbot/pkg/metrics"
	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

// IssueCreator creates an issue in the external tracker from a validated
// submission. Satisfied by *jira.Client in production and by fakes in tests.
type IssueCreator interface {
	CreateIssue(ctx context.Context, req jira.IssueRequest) (string, error)
}

type Handler struct {
	config         *Config
	gateway        Gateway
	directory      Directory
	issues         IssueCreator
	jiraClient     *jira.Client
	catalog        *catalog.Catalog
	ccUserIDs      []string
	meetingChannel string
	logger         *zap.Logger
	metrics        *metrics.Metrics
}

type Config struct {
	SigningSecret string
	BotToken      string
}

type slackRequest struct {
	Body   []byte
	Values url.Values
}

func NewHandler(cfg *config.Config, cat *catalog.Catalog, logger *zap.Logger) *Handler {
	api := slack.New(cfg.SlackBotToken)
	client := NewAPIClient(api, logger)
	jiraClient := jira.NewClient(cfg.JiraBaseURL, cfg.JiraAPIToken, logger)

	return &Handler{
		config: &Config{
			SigningSecret: cfg.SlackSigningSecret,
			BotToken:      cfg.SlackBotToken,
		},
		gateway:        client,
		directory:      client,
		issues:         jiraClient,
		jiraClient:     jiraClient,
		catalog:        cat,
		ccUserIDs:      cfg.CCUserIDs,
		meetingChannel: cfg.MeetingRequestChannel,
		logger:         logger,
	}
}

// HealthCheckSlack verifies the bot token against the Slack API.
func (h *Handler) HealthCheckSlack(ctx context.Context) error {
	return h.gateway.AuthTest(ctx)
}

// HealthCheckJira verifies connectivity and authentication against Jira.
func (h *Handler) HealthCheckJira(ctx context.Context) error {
	return h.jiraClient.HealthCheck(ctx)
}

// CatalogSize returns the number of work types in the catalog.
func (h *Handler) CatalogSize() int {
	return h.catalog.Len()
}

// HandleSlashCommand handles incoming Slack slash commands
func (h *Handler) HandleSlashCommand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Validate and parse Slack request
	req, ok := h.validateSlackRequest(w, r)
	if !ok {
		return
	}

	cmd := SlashCommand{
		Command:   req.Values.Get("command"),
		UserID:    req.Values.Get("user_id"),
		UserName:  req.Values.Get("user_name"),
		TriggerID: req.Values.Get("trigger_id"),
		Text:      strings.TrimSpace(req.Values.Get("text")),
	}

	h.logger.Info("received slash command",
		zap.String("command", cmd.Command),
		zap.String("text", cmd.Text),
		zap.String("user", cmd.UserName),
		zap.String("trigger_id", cmd.TriggerID),
	)

	action := Route(cmd)

	switch action.Kind {
	case ActionReply:
		h.recordSlackCommand(cmd.Command, "replied")
		respondToSlack(w, action.ResponseType, action.Text)

	case ActionGreet:
		h.handleGreetCommand(w, r, cmd)

	case ActionOpenModal:
		h.handleOpenModalCommand(w, cmd, action.Workflow)
	}
}

// handleGreetCommand fetches the member directory and replies in-channel
// with the greeting roster.
//
// Directory pagination failures degrade rather than fail: whatever pages
// were fetched before the error still make it into the roster.
func (h *Handler) handleGreetCommand(w http.ResponseWriter, r *http.Request, cmd SlashCommand) {
	members, err := h.directory.ListMembers(r.Context())
	if err != nil && len(members) == 0 {
		h.logger.Error("failed to list workspace members", zap.Error(err))
		h.recordSlackCommand(cmd.Command, "error")
		respondToSlack(w, ResponseTypeEphemeral, "Failed to fetch the member list. Please try again.")
		return
	}
	if err != nil {
		h.logger.Warn("member list incomplete, greeting fetched members only",
			zap.Error(err),
			zap.Int("members_fetched", len(members)),
		)
	}

	roster := RenderRoster(members, constants.MaxRosterChars)
	h.recordRosterSize(members)
	h.recordSlackCommand(cmd.Command, "success")
	respondToSlack(w, ResponseTypeInChannel, GreetingReply(cmd.UserName, roster))
}

// handleOpenModalCommand opens the workflow's modal for the slash command's
// trigger ID.
func (h *Handler) handleOpenModalCommand(w http.ResponseWriter, cmd SlashCommand, workflow WorkflowKind) {
	modal := BuildModal(workflow, h.catalog)

	if err := h.gateway.OpenView(cmd.TriggerID, modal); err != nil {
		h.logger.Error("failed to open modal",
			zap.Error(err),
			zap.String("command", cmd.Command),
		)
		h.recordSlackCommand(cmd.Command, "error")
		respondToSlack(w, ResponseTypeEphemeral, "Failed to open the form. Please try again.")
		return
	}

	h.recordSlackCommand(cmd.Command, "success")

	// Respond with 200 OK immediately (empty response)
	w.WriteHeader(http.StatusOK)
}

// HandleInteractions handles incoming Slack interactive component submissions
func (h *Handler) HandleInteractions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Validate and parse Slack request
	req, ok := h.validateSlackRequest(w, r)
	if !ok {
		return
	}

	payload, err := h.parseInteractionPayload(req.Values)
	if err != nil {
		h.handleError(w, err, "Bad request", http.StatusBadRequest)
		return
	}

	if err := payload.Validate(); err != nil {
		h.handleError(w, err, "Invalid interaction payload", http.StatusBadRequest)
		return
	}

	h.logger.Info("received interaction",
		zap.String("type", payload.Type),
		zap.String("callback_id", payload.View.CallbackID),
		zap.String("user", payload.User.Username),
	)

	h.recordSlackInteraction(payload.Type, payload.View.CallbackID, "received")

	if payload.Type != InteractionTypeViewSubmission {
		h.logger.Info("ignoring interaction",
			zap.String("type", payload.Type),
			zap.String("callback_id", payload.View.CallbackID),
		)
		h.recordSlackInteraction(payload.Type, payload.View.CallbackID, "ignored")
		w.WriteHeader(http.StatusOK)
		return
	}

	h.handleViewSubmission(w, r, payload)
}

// handleViewSubmission dispatches a modal submission to its workflow.
//
// Unknown callback IDs are acknowledged and dropped: a 200 with no body,
// so stale modals from older deployments close cleanly.
func (h *Handler) handleViewSubmission(w http.ResponseWriter, r *http.Request, payload *InteractionPayload) {
	switch parseCallbackKind(payload.View.CallbackID) {
	case callbackWorkRequest:
		h.handleWorkRequestSubmission(w, r, payload)

	case callbackJiraIssue:
		h.handleJiraIssueSubmission(w, r, payload)

	case callbackMeetingRequest:
		h.handleMeetingRequestSubmission(w, r, payload)

	case callbackUnknown:
		h.logger.Warn("ignoring submission with unknown callback_id",
			zap.String("callback_id", payload.View.CallbackID),
		)
		h.recordSlackInteraction(payload.Type, payload.View.CallbackID, "unknown_callback")
		w.WriteHeader(http.StatusOK)
	}
}

// handleWorkRequestSubmission renders the work-request message and posts it
// to the work type's channel.
func (h *Handler) handleWorkRequestSubmission(w http.ResponseWriter, r *http.Request, payload *InteractionPayload) {
	msg, err := buildWorkRequestMessage(payload.View.State, h.catalog)
	if err != nil {
		h.respondSubmissionError(w, payload, err, BlockIDTitle)
		return
	}

	h.postAndRespond(w, r, payload, msg, "work_request")
}

// handleMeetingRequestSubmission renders the meeting-request message and
// posts it to the fixed meeting channel.
func (h *Handler) handleMeetingRequestSubmission(w http.ResponseWriter, r *http.Request, payload *InteractionPayload) {
	msg, err := buildMeetingRequestMessage(payload.View.State, h.meetingChannel, h.ccUserIDs)
	if err != nil {
		h.respondSubmissionError(w, payload, err, BlockIDTitle)
		return
	}

	h.postAndRespond(w, r, payload, msg, "meeting_request")
}

// handleJiraIssueSubmission extracts the issue fields and hands them off to
// the issue creator.
func (h *Handler) handleJiraIssueSubmission(w http.ResponseWriter, r *http.Request, payload *InteractionPayload) {
	req, err := extractIssueRequest(payload.View.State)
	if err != nil {
		h.respondSubmissionError(w, payload, err, BlockIDSummary)
		return
	}

	key, err := h.issues.CreateIssue(r.Context(), req)
	if err != nil {
		h.logger.Error("failed to create Jira issue", zap.Error(err))
		h.recordSlackInteraction(payload.Type, payload.View.CallbackID, "jira_error")
		h.recordModalSubmission("error")
		respondWithErrors(w, map[string]string{
			BlockIDSummary: fmt.Sprintf("Failed to create issue: %v", err),
		})
		return
	}

	h.logger.Info("created Jira issue",
		zap.String("issue_key", key),
		zap.String("user", payload.User.Username),
	)
	h.recordSlackInteraction(payload.Type, payload.View.CallbackID, "success")
	h.recordModalSubmission("success")
	h.respondClear(w)
}

// postAndRespond delivers the outbound message and translates the delivery
// result into a view submission response.
func (h *Handler) postAndRespond(w http.ResponseWriter, r *http.Request, payload *InteractionPayload, msg OutboundMessage, workflow string) {
	result := h.gateway.Post(r.Context(), msg.ChannelID, msg.Text, msg.Blocks)
	if !result.OK {
		h.logger.Error("failed to post message",
			zap.String("channel_id", msg.ChannelID),
			zap.String("error", result.Error),
		)
		h.recordSlackInteraction(payload.Type, payload.View.CallbackID, "delivery_error")
		h.recordModalSubmission("error")
		h.recordMessagePosted(workflow, "error")
		respondWithErrors(w, map[string]string{
			BlockIDTitle: "Failed to deliver the message. Please try again.",
		})
		return
	}

	h.logger.Info("posted message",
		zap.String("channel_id", msg.ChannelID),
		zap.String("user", payload.User.Username),
	)
	h.recordSlackInteraction(payload.Type, payload.View.CallbackID, "success")
	h.recordModalSubmission("success")
	h.recordMessagePosted(workflow, "success")
	h.respondClear(w)
}

// respondSubmissionError maps a builder error onto a view submission
// response. Field validation problems go back to the user against their
// blocks; anything else means the modal and the extraction code disagree,
// which is logged and surfaced against fallbackBlockID.
func (h *Handler) respondSubmissionError(w http.ResponseWriter, payload *InteractionPayload, err error, fallbackBlockID string) {
	var validationErr fieldValidationError
	if errors.As(err, &validationErr) {
		h.logger.Warn("field validation failed", zap.Error(err))
		h.recordSlackInteraction(payload.Type, payload.View.CallbackID, "validation_error")
		h.recordModalSubmission("validation_error")
		h.recordValidationError(payload.View.CallbackID)
		respondWithErrors(w, validationErr.errors)
		return
	}

	h.logger.Error("failed to extract submission fields", zap.Error(err))
	h.recordSlackInteraction(payload.Type, payload.View.CallbackID, "extraction_error")
	h.recordModalSubmission("error")
	respondWithErrors(w, map[string]string{
		fallbackBlockID: "The submission could not be processed. Please try again.",
	})
}

// parseInteractionPayload parses and unmarshals the interaction payload from the request
func (h *Handler) parseInteractionPayload(values url.Values) (*InteractionPayload, error) {
	payloadStr := values.Get("payload")
	if payloadStr == "" {
		return nil, fmt.Errorf("missing payload in request")
	}

	var payload InteractionPayload
	if err := json.Unmarshal([]byte(payloadStr), &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return &payload, nil
}

// respondClear sends a view submission response that closes the modal
func (h *Handler) respondClear(w http.ResponseWriter) {
	response := ViewSubmissionResponse{
		ResponseAction: ResponseActionClear,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode submission response", zap.Error(err))
	}
}

// handleError handles errors consistently across all handlers by logging the error
// and sending an appropriate HTTP response with a user-friendly message
func (h *Handler) handleError(w http.ResponseWriter, err error, userMessage string, statusCode int) {
	h.logger.Error("handler error",
		zap.Error(err),
		zap.String("user_message", userMessage),
		zap.Int("status_code", statusCode),
	)
	http.Error(w, userMessage, statusCode)
}

// validateSlackRequest validates and parses a Slack request
// Returns the parsed request and true if valid, or nil and false if invalid (error response already written)
func (h *Handler) validateSlackRequest(w http.ResponseWriter, r *http.Request) (*slackRequest, bool) {
	// Read body
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.handleError(w, err, "Bad request", http.StatusBadRequest)
		return nil, false
	}

	// Verify Slack request signature
	if !h.verifySlackRequest(r.Header, body) {
		h.handleError(w, fmt.Errorf("invalid Slack signature"), "Unauthorized", http.StatusUnauthorized)
		return nil, false
	}

	// Parse form data
	values, err := url.ParseQuery(string(body))
	if err != nil {
		h.handleError(w, err, "Bad request", http.StatusBadRequest)
		return nil, false
	}

	return &slackRequest{
		Body:   body,
		Values: values,
	}, true
}

// verifySlackRequest verifies that the request came from Slack
func (h *Handler) verifySlackRequest(headers http.Header, body []byte) bool {
	timestamp := headers.Get(HeaderSlackRequestTimestamp)
	signature := headers.Get(HeaderSlackSignature)

	if timestamp == "" || signature == "" {
		return false
	}

	// Check timestamp is within 5 minutes
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return false
	}
	if time.Now().Unix()-ts > constants.MaxSlackRequestAge {
		return false
	}

	// Compute signature
	sigBaseString := fmt.Sprintf("%s:%s:%s", SignatureVersion, timestamp, string(body))
	mac := hmac.New(sha256.New, []byte(h.config.SigningSecret))
	mac.Write([]byte(sigBaseString))
	expectedSignature := SignaturePrefix + hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expectedSignature), []byte(signature))
}

// respondToSlack sends an immediate slash command response back to Slack
func respondToSlack(w http.ResponseWriter, responseType, message string) {
	response := map[string]string{
		"response_type": responseType,
		"text":          message,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// respondWithErrors sends a view submission response with validation errors
func respondWithErrors(w http.ResponseWriter, errors map[string]string) {
	response := ViewSubmissionResponse{
		ResponseAction: ResponseActionErrors,
		Errors:         errors,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
