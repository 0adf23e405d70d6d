// Package slack provides handlers and types for Slack integration.
//
// This file implements the messaging gateway: a thin RPC wrapper over the
// platform's message-posting and modal-opening capabilities. Every call is
// a single best-effort attempt; failures are reported to the caller and
// never retried.
package slack

import (
	"context"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

// DeliveryResult reports the outcome of a single message delivery attempt.
type DeliveryResult struct {
	OK    bool
	Error string
}

// Gateway posts messages and opens modal views on the messaging platform.
type Gateway interface {
	// Post delivers a message to channelID. text is the notification
	// fallback; blocks, when non-empty, carry the formatted body.
	Post(ctx context.Context, channelID, text string, blocks []slack.Block) DeliveryResult

	// OpenView opens a modal in response to the interaction identified
	// by triggerID.
	OpenView(triggerID string, view slack.ModalViewRequest) error

	// AuthTest verifies the bot token against the platform.
	AuthTest(ctx context.Context) error
}

// APIClient implements Gateway and Directory over the Slack Web API.
type APIClient struct {
	api    *slack.Client
	logger *zap.Logger
}

// NewAPIClient wraps an authenticated Slack API client.
func NewAPIClient(api *slack.Client, logger *zap.Logger) *APIClient {
	return &APIClient{
		api:    api,
		logger: logger,
	}
}

// Post delivers a message via chat.postMessage. Single attempt, no retry.
func (c *APIClient) Post(ctx context.Context, channelID, text string, blocks []slack.Block) DeliveryResult {
	opts := []slack.MsgOption{slack.MsgOptionText(text, false)}
	if len(blocks) > 0 {
		opts = append(opts, slack.MsgOptionBlocks(blocks...))
	}

	_, ts, err := c.api.PostMessageContext(ctx, channelID, opts...)
	if err != nil {
		c.logger.Error("failed to post message",
			zap.String("channel", channelID),
			zap.Error(err),
		)
		return DeliveryResult{OK: false, Error: err.Error()}
	}

	c.logger.Info("message posted",
		zap.String("channel", channelID),
		zap.String("ts", ts),
	)
	return DeliveryResult{OK: true}
}

// OpenView opens a modal via views.open.
func (c *APIClient) OpenView(triggerID string, view slack.ModalViewRequest) error {
	resp, err := c.api.OpenView(triggerID, view)
	if err != nil {
		return err
	}

	c.logger.Info("modal opened", zap.String("view_id", resp.ID))
	return nil
}

// AuthTest verifies connectivity and token validity via auth.test.
func (c *APIClient) AuthTest(ctx context.Context) error {
	_, err := c.api.AuthTestContext(ctx)
	return err
}
