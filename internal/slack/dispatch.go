// Package slack provides handlers and types for Slack integration.
//
// This file implements slash command dispatch. Routing is a pure function
// of the command text: each known command maps to a member of a closed
// enumeration, so adding a workflow is a compile-time-checked extension
// rather than a string-comparison fallthrough.
package slack

import "fmt"

// SlashCommand is the request-scoped value object parsed from an inbound
// slash command webhook. It is consumed once by Route and discarded.
type SlashCommand struct {
	Command   string
	UserID    string
	UserName  string
	TriggerID string
	Text      string
}

// commandKind enumerates the slash commands this bot understands.
type commandKind int

const (
	commandUnknown commandKind = iota
	commandGreet
	commandWorkRequest
	commandJiraIssue
	commandMeetingRequest
)

// parseCommandKind maps command text onto the closed command enumeration.
func parseCommandKind(command string) commandKind {
	switch command {
	case CommandGreet:
		return commandGreet
	case CommandWorkRequest:
		return commandWorkRequest
	case CommandJiraIssue:
		return commandJiraIssue
	case CommandMeetingRequest:
		return commandMeetingRequest
	default:
		return commandUnknown
	}
}

// WorkflowKind enumerates the modal workflows this bot serves.
type WorkflowKind int

const (
	WorkflowWorkRequest WorkflowKind = iota
	WorkflowJiraIssue
	WorkflowMeetingRequest
)

// ActionKind enumerates the dispatcher's possible decisions.
type ActionKind int

const (
	// ActionReply sends an immediate slash-command reply.
	ActionReply ActionKind = iota

	// ActionGreet fetches the member directory and replies with the roster.
	ActionGreet

	// ActionOpenModal opens the modal for Workflow.
	ActionOpenModal
)

// DispatchAction is the dispatcher's decision for one slash command.
type DispatchAction struct {
	Kind         ActionKind
	ResponseType string // for ActionReply: "ephemeral" or "in_channel"
	Text         string // for ActionReply
	Workflow     WorkflowKind
}

// ephemeralReply builds a private immediate-reply action.
func ephemeralReply(text string) DispatchAction {
	return DispatchAction{
		Kind:         ActionReply,
		ResponseType: ResponseTypeEphemeral,
		Text:         text,
	}
}

// Route decides what to do with a slash command.
//
// Route is pure: no I/O, no state carried between calls. Unknown commands
// produce an ephemeral reply naming the unrecognized command verbatim so
// operators can diagnose app misconfiguration from the user's screenshot.
// Modal commands invoked without a trigger_id (i.e. not as a true
// interactive slash command) produce an ephemeral reply explaining the
// trigger requirement.
func Route(cmd SlashCommand) DispatchAction {
	kind := parseCommandKind(cmd.Command)

	switch kind {
	case commandGreet:
		return DispatchAction{Kind: ActionGreet}

	case commandWorkRequest, commandJiraIssue, commandMeetingRequest:
		if cmd.TriggerID == "" {
			return ephemeralReply("A trigger_id is required. This command only works as an interactive Slack slash command.")
		}
		return DispatchAction{Kind: ActionOpenModal, Workflow: workflowFor(kind)}

	case commandUnknown:
		return ephemeralReply(fmt.Sprintf("Unknown command (%s).", cmd.Command))
	}

	// Unreachable: parseCommandKind covers the enumeration.
	return ephemeralReply(fmt.Sprintf("Unknown command (%s).", cmd.Command))
}

// workflowFor maps a modal-opening command onto its workflow.
func workflowFor(kind commandKind) WorkflowKind {
	switch kind {
	case commandJiraIssue:
		return WorkflowJiraIssue
	case commandMeetingRequest:
		return WorkflowMeetingRequest
	default:
		return WorkflowWorkRequest
	}
}
