// Package slack provides handlers and types for Slack integration.
//
// This file implements the member roster rendering used by the /hi
// command: one mention line per active member, truncated to a fixed
// character budget because Slack enforces a hard message-length ceiling.
package slack

import (
	"fmt"
	"strings"

	"github.com/cosmix/workbot/pkg/constants"
)

// RenderRoster renders the member list as line-per-member mention text.
//
// Deactivated and bot accounts are filtered out. When the rendered text
// would exceed budget, it is truncated at a line boundary — a mention
// token is never split — and the truncation marker is appended as the
// final line. The result never exceeds budget.
func RenderRoster(members []Member, budget int) string {
	if budget <= 0 {
		budget = constants.MaxRosterChars
	}

	lines := make([]string, 0, len(members))
	for _, m := range members {
		if m.IsDeleted || m.IsBot {
			continue
		}
		lines = append(lines, fmt.Sprintf("<@%s> HI", m.ID))
	}

	full := strings.Join(lines, "\n")
	if len(full) <= budget {
		return full
	}

	// Reserve room for the marker line, then keep whole lines only.
	reserved := budget - len(constants.RosterTruncationMarker) - 1
	size := 0
	kept := 0
	for _, line := range lines {
		lineCost := len(line)
		if kept > 0 {
			lineCost++ // joining newline
		}
		if size+lineCost > reserved {
			break
		}
		size += lineCost
		kept++
	}

	truncated := strings.Join(lines[:kept], "\n")
	if truncated == "" {
		return constants.RosterTruncationMarker
	}
	return truncated + "\n" + constants.RosterTruncationMarker
}

// GreetingReply composes the /hi command reply around a rendered roster.
func GreetingReply(userName, roster string) string {
	return fmt.Sprintf("hi %s! say hello to everyone:\n%s", userName, roster)
}
