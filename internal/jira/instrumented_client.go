package jira

import (
	"context"
	"time"

	"github.com/cosmix/workbot/pkg/metrics"
)

// SetMetrics sets the metrics instance for the client
func (c *Client) SetMetrics(m *metrics.Metrics) {
	c.metrics = m
}

// startJiraRequest begins timing a Jira API operation and returns a
// completion callback that records duration, status and error metrics.
func (c *Client) startJiraRequest(operation string) func(err error) {
	start := time.Now()
	return func(err error) {
		c.recordJiraRequest(operation, start, err)
	}
}

// recordJiraRequest records metrics for Jira API requests
func (c *Client) recordJiraRequest(operation string, startTime time.Time, err error) {
	if c.metrics == nil {
		return
	}

	duration := time.Since(startTime).Seconds()
	c.metrics.JiraAPIRequestDuration.WithLabelValues(operation).Observe(duration)

	status := "success"
	if err != nil {
		status = "error"
		errorType := "api_error"
		if err == context.DeadlineExceeded {
			errorType = "timeout"
		} else if err == context.Canceled {
			errorType = "canceled"
		}
		c.metrics.JiraAPIErrors.WithLabelValues(operation, errorType).Inc()
	}

	c.metrics.JiraAPIRequestsTotal.WithLabelValues(operation, status).Inc()
}
