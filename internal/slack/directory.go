// Package slack provides handlers and types for Slack integration.
//
// This file implements the workspace directory service: a paginated fetch
// of all members via users.list. Pagination is a sequential blocking loop
// accumulating every page before returning — callers need the full
// filtered set to compute roster truncation, so this is not a lazy stream.
package slack

import (
	"context"

	"github.com/cosmix/workbot/pkg/constants"
	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

// Member is a workspace member as seen by the directory service.
type Member struct {
	ID          string
	DisplayName string
	IsBot       bool
	IsDeleted   bool
}

// Directory lists workspace members.
type Directory interface {
	// ListMembers returns all workspace members. On a mid-pagination
	// failure it returns the pages accumulated so far together with the
	// error; callers use the partial result as-is (degraded, non-fatal).
	ListMembers(ctx context.Context) ([]Member, error)
}

// ListMembers fetches every page of users.list, following the opaque
// cursor until the platform reports no further page. Results are
// re-fetched from scratch on every call; nothing is cached between
// invocations.
func (c *APIClient) ListMembers(ctx context.Context) ([]Member, error) {
	var members []Member
	var err error

	pagination := c.api.GetUsersPaginated(slack.GetUsersOptionLimit(constants.SlackUsersPageSize))
	for {
		pagination, err = pagination.Next(ctx)
		if err != nil {
			break
		}
		for _, u := range pagination.Users {
			members = append(members, Member{
				ID:          u.ID,
				DisplayName: displayName(u),
				IsBot:       u.IsBot,
				IsDeleted:   u.Deleted,
			})
		}
	}

	if failure := pagination.Failure(err); failure != nil {
		c.logger.Warn("member listing aborted mid-pagination, using partial result",
			zap.Int("members_fetched", len(members)),
			zap.Error(failure),
		)
		return members, failure
	}

	return members, nil
}

// displayName prefers the profile real name and falls back to the handle.
func displayName(u slack.User) string {
	if u.RealName != "" {
		return u.RealName
	}
	return u.Name
}
