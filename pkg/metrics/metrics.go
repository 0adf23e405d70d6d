package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
	HTTPResponseSize     *prometheus.HistogramVec

	// Slack-specific metrics
	SlackCommandsTotal     *prometheus.CounterVec
	SlackInteractionsTotal *prometheus.CounterVec
	SlackModalSubmissions  *prometheus.CounterVec
	MessagesPostedTotal    *prometheus.CounterVec
	RosterMembersListed    prometheus.Gauge

	// Jira API metrics
	JiraAPIRequestsTotal   *prometheus.CounterVec
	JiraAPIRequestDuration *prometheus.HistogramVec
	JiraAPIErrors          *prometheus.CounterVec

	// Application metrics
	ValidationErrorsTotal *prometheus.CounterVec
	RequestTimeoutsTotal  *prometheus.CounterVec
	PanicRecoveriesTotal  prometheus.Counter
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics() *Metrics {
	return &Metrics{
		// HTTP request counter by endpoint and status code
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workbot_http_requests_total",
				Help: "Total number of HTTP requests by endpoint and status code",
			},
			[]string{"endpoint", "method", "status"},
		),

		// HTTP request duration histogram by endpoint
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "workbot_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint", "method"},
		),

		// HTTP requests currently in flight
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "workbot_http_requests_in_flight",
				Help: "Current number of HTTP requests being processed",
			},
		),

		// HTTP response size histogram
		HTTPResponseSize: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "workbot_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 8), // 100B to 100MB
			},
			[]string{"endpoint", "method"},
		),

		// Slack slash command invocations
		SlackCommandsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workbot_slack_commands_total",
				Help: "Total number of Slack slash commands received",
			},
			[]string{"command", "status"},
		),

		// Slack interactive component submissions
		SlackInteractionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workbot_slack_interactions_total",
				Help: "Total number of Slack interactive component events received",
			},
			[]string{"type", "callback_id", "status"},
		),

		// Modal submissions specifically
		SlackModalSubmissions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workbot_slack_modal_submissions_total",
				Help: "Total number of Slack modal submissions",
			},
			[]string{"status"},
		),

		// Messages posted to channels by workflow
		MessagesPostedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workbot_messages_posted_total",
				Help: "Total number of messages posted to Slack channels",
			},
			[]string{"workflow", "status"},
		),

		// Members listed by the most recent roster command
		RosterMembersListed: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "workbot_roster_members_listed",
				Help: "Number of active members rendered by the most recent roster command",
			},
		),

		// Jira API request counter
		JiraAPIRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workbot_jira_api_requests_total",
				Help: "Total number of Jira API requests",
			},
			[]string{"operation", "status"},
		),

		// Jira API request duration
		JiraAPIRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "workbot_jira_api_request_duration_seconds",
				Help:    "Jira API request duration in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}, // Up to 30s timeout
			},
			[]string{"operation"},
		),

		// Jira API errors
		JiraAPIErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workbot_jira_api_errors_total",
				Help: "Total number of Jira API errors",
			},
			[]string{"operation", "error_type"},
		),

		// Form validation errors
		ValidationErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workbot_validation_errors_total",
				Help: "Total number of form validation errors",
			},
			[]string{"field"},
		),

		// Requests cancelled by the timeout middleware
		RequestTimeoutsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workbot_request_timeouts_total",
				Help: "Total number of HTTP requests cancelled by the timeout middleware",
			},
			[]string{"path"},
		),

		// Panic recoveries
		PanicRecoveriesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "workbot_panic_recoveries_total",
				Help: "Total number of panic recoveries in HTTP handlers",
			},
		),
	}
}

// GetMetrics returns the singleton metrics instance
var defaultMetrics *Metrics

// Init initializes the default metrics instance
func Init() *Metrics {
	if defaultMetrics == nil {
		defaultMetrics = NewMetrics()
	}
	return defaultMetrics
}

// Get returns the default metrics instance
func Get() *Metrics {
	if defaultMetrics == nil {
		return Init()
	}
	return defaultMetrics
}
