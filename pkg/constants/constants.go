// Package constants defines constant values shared across the application.
//
// This package centralizes:
// - Business rule limits (roster character budget, input length limits)
// - Time-based constraints and timeouts
// - Slack request security limits
// - Default configuration values
//
// Centralizing constants here ensures consistency across the application
// and makes it easy to adjust business rules without touching core logic.
package constants

import "time"

// Roster rendering limits.
const (
	// MaxRosterChars is the character budget for the member roster reply.
	// Slack enforces a hard message-length ceiling, so the roster is
	// truncated at a line boundary before this budget is exceeded.
	MaxRosterChars = 3000

	// RosterTruncationMarker is appended on its own line when the roster
	// is truncated.
	RosterTruncationMarker = "... omitted"
)

// Input length limits for modal text fields.
const (
	// MaxTitleLength is the maximum character limit for title fields.
	MaxTitleLength = 2000

	// MaxContentLength is the maximum character limit for multiline fields.
	MaxContentLength = 2000
)

// Time-based security limits.
const (
	// MaxSlackRequestAge is the maximum age of a Slack request signature.
	// Requests older than this are rejected to prevent replay attacks.
	// Slack recommends 5 minutes as a reasonable window.
	MaxSlackRequestAge = 300 // seconds (5 minutes)
)

// Timeouts for various operations.
const (
	// DefaultHTTPTimeout is the default timeout for outbound HTTP clients.
	// Used for Jira API calls.
	DefaultHTTPTimeout = 30 * time.Second

	// ServerReadTimeout is the maximum duration for reading the entire request.
	// Prevents slow client attacks.
	ServerReadTimeout = 10 * time.Second

	// ServerWriteTimeout is the maximum duration before timing out writes.
	// Allows time for Slack and Jira API calls and response generation.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum amount of time to wait for the next
	// request when keep-alives are enabled.
	ServerIdleTimeout = 120 * time.Second

	// GracefulShutdownTimeout is the maximum time to wait for graceful shutdown.
	// Allows in-flight requests to complete before forcing shutdown.
	GracefulShutdownTimeout = 30 * time.Second
)

// Slack API configuration constants.
const (
	// SlackUsersPageSize is the number of members requested per users.list page.
	SlackUsersPageSize = 200
)

// Default configuration values.
const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"
)
