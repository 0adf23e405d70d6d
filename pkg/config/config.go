package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type Config struct {
	SlackSigningSecret string
	SlackBotToken      string
	JiraBaseURL        string
	JiraAPIToken       string

	// WorkChannelOverrides maps work-type codes to destination channel IDs,
	// overriding the built-in defaults. Parsed from a JSON object.
	WorkChannelOverrides map[string]string

	// DefaultWorkChannel receives work requests whose work-type code is not
	// present in the channel table.
	DefaultWorkChannel string

	// MeetingRequestChannel receives all meeting-request messages.
	MeetingRequestChannel string

	// CCUserIDs are the reviewer user IDs always mentioned on meeting
	// requests, independent of submitted data.
	CCUserIDs []string

	Port string
}

func Load() (*Config, error) {
	cfg := &Config{
		SlackSigningSecret:    os.Getenv("SLACK_SIGNING_SECRET"),
		SlackBotToken:         os.Getenv("SLACK_BOT_TOKEN"),
		JiraBaseURL:           os.Getenv("JIRA_BASE_URL"),
		JiraAPIToken:          os.Getenv("JIRA_API_TOKEN"),
		DefaultWorkChannel:    os.Getenv("DEFAULT_WORK_CHANNEL"),
		MeetingRequestChannel: os.Getenv("MEETING_REQUEST_CHANNEL"),
		CCUserIDs:             splitIDList(os.Getenv("CC_USER_IDS")),
		Port:                  os.Getenv("PORT"),
	}

	if raw := os.Getenv("WORK_CHANNEL_MAP"); raw != "" {
		overrides := make(map[string]string)
		if err := json.Unmarshal([]byte(raw), &overrides); err != nil {
			return nil, fmt.Errorf("WORK_CHANNEL_MAP is not a valid JSON object: %w", err)
		}
		cfg.WorkChannelOverrides = overrides
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SlackSigningSecret == "" {
		return fmt.Errorf("SLACK_SIGNING_SECRET is required")
	}
	if c.SlackBotToken == "" {
		return fmt.Errorf("SLACK_BOT_TOKEN is required")
	}
	if c.JiraBaseURL == "" {
		return fmt.Errorf("JIRA_BASE_URL is required")
	}
	if c.JiraAPIToken == "" {
		return fmt.Errorf("JIRA_API_TOKEN is required")
	}
	if c.MeetingRequestChannel == "" {
		return fmt.Errorf("MEETING_REQUEST_CHANNEL is required")
	}
	return nil
}

// splitIDList parses a comma-separated user ID list, dropping empty entries.
func splitIDList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}
