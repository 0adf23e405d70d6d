package slack

import (
	"github.com/cosmix/workbot/pkg/metrics"
)

// SetMetrics sets the metrics instance for the handler and its dependencies
func (h *Handler) SetMetrics(m *metrics.Metrics) {
	h.metrics = m
	// Also set metrics on the Jira client
	if h.jiraClient != nil {
		h.jiraClient.SetMetrics(m)
	}
}

// recordSlackCommand records metrics for slash command invocations
func (h *Handler) recordSlackCommand(command, status string) {
	if h.metrics != nil {
		h.metrics.SlackCommandsTotal.WithLabelValues(command, status).Inc()
	}
}

// recordSlackInteraction records metrics for interactive component events
func (h *Handler) recordSlackInteraction(interactionType, callbackID, status string) {
	if h.metrics != nil {
		h.metrics.SlackInteractionsTotal.WithLabelValues(interactionType, callbackID, status).Inc()
	}
}

// recordModalSubmission records metrics for modal submissions
func (h *Handler) recordModalSubmission(status string) {
	if h.metrics != nil {
		h.metrics.SlackModalSubmissions.WithLabelValues(status).Inc()
	}
}

// recordMessagePosted records metrics for outbound channel messages
func (h *Handler) recordMessagePosted(workflow, status string) {
	if h.metrics != nil {
		h.metrics.MessagesPostedTotal.WithLabelValues(workflow, status).Inc()
	}
}

// recordValidationError records metrics for field validation errors
func (h *Handler) recordValidationError(field string) {
	if h.metrics != nil {
		h.metrics.ValidationErrorsTotal.WithLabelValues(field).Inc()
	}
}

// recordRosterSize records the size of the last fetched member roster
func (h *Handler) recordRosterSize(members []Member) {
	if h.metrics != nil {
		h.metrics.RosterMembersListed.Set(float64(len(members)))
	}
}
