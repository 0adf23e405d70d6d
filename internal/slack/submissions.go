// Package slack provides handlers and types for Slack integration.
//
// This file implements modal-submission handling: each known callback ID
// maps to a member of a closed enumeration, and each workflow extracts its
// fields from the view state, renders a formatted message and routes it to
// its destination channel. Rendering is kept in pure functions so the
// formatting rules are testable without any HTTP plumbing.
package slack

import (
	"fmt"
	"strings"

	"github.com/cosmix/workbot/internal/jira"
	"github.com/cosmix/workbot/pkg/catalog"
	"github.com/cosmix/workbot/pkg/constants"
	"github.com/slack-go/slack"
)

// callbackKind enumerates the modal callbacks this bot understands.
type callbackKind int

const (
	callbackUnknown callbackKind = iota
	callbackWorkRequest
	callbackJiraIssue
	callbackMeetingRequest
)

// parseCallbackKind maps a callback ID onto the closed callback enumeration.
func parseCallbackKind(callbackID string) callbackKind {
	switch callbackID {
	case CallbackIDWorkRequest:
		return callbackWorkRequest
	case CallbackIDJiraIssue:
		return callbackJiraIssue
	case CallbackIDMeetingRequest:
		return callbackMeetingRequest
	default:
		return callbackUnknown
	}
}

// OutboundMessage is a transient channel message: constructed from a
// submission and immediately sent.
type OutboundMessage struct {
	ChannelID string
	Text      string
	Blocks    []slack.Block
}

// fieldValidationError wraps validation errors with the block-keyed error
// map Slack expects in a "response_action: errors" reply.
type fieldValidationError struct {
	errors map[string]string
}

func (e fieldValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.errors)
}

// renderPeriod renders the work-request period. Both dates present yields
// "{start} ~ {end}"; anything else yields the fixed sentinel — never a
// partial range.
func renderPeriod(startDate, endDate string) string {
	if startDate != "" && endDate != "" {
		return fmt.Sprintf("%s ~ %s", startDate, endDate)
	}
	return PeriodNotSet
}

// orNone substitutes the "none" placeholder for blank optional values.
func orNone(value string) string {
	if strings.TrimSpace(value) == "" {
		return NoneProvided
	}
	return value
}

// mentionTokens renders user IDs as a space-joined sequence of mention tokens.
func mentionTokens(userIDs []string) string {
	tokens := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		tokens = append(tokens, fmt.Sprintf("<@%s>", id))
	}
	return strings.Join(tokens, " ")
}

// mrkdwnField builds a one-field section block in the request-card style.
func mrkdwnField(label, value string) *slack.SectionBlock {
	text := slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("- *%s:*\n%s", label, value), false, false)
	return slack.NewSectionBlock(nil, []*slack.TextBlockObject{text}, nil)
}

// buildWorkRequestMessage extracts the work-request fields from the view
// state and renders the outbound channel message.
//
// The destination channel is resolved through the catalog; codes absent
// from the catalog fall back to the configured default channel. The
// notification text is prefixed with the work type's short label
// concatenated directly onto it (e.g. "UI-Work request: ...").
//
// A fieldValidationError is returned for user input problems. Any other
// error means the modal and this extraction code have drifted apart.
func buildWorkRequestMessage(state ViewState, cat *catalog.Catalog) (OutboundMessage, error) {
	workType, err := state.GetSelectedOption(BlockIDWorkType, ActionIDWorkTypeSelect)
	if err != nil {
		return OutboundMessage{}, err
	}

	title, err := state.GetValue(BlockIDTitle, ActionIDTitleInput)
	if err != nil {
		return OutboundMessage{}, err
	}

	content, err := state.GetValue(BlockIDContent, ActionIDContentInput)
	if err != nil {
		return OutboundMessage{}, err
	}

	planURL, err := state.GetValue(BlockIDPlanURL, ActionIDPlanURLInput)
	if err != nil {
		return OutboundMessage{}, err
	}

	assigneeID, err := state.GetSelectedUser(BlockIDAssignee, ActionIDAssigneeInput)
	if err != nil {
		return OutboundMessage{}, err
	}

	startDate, err := state.GetSelectedDate(BlockIDStartDate, ActionIDStartDateInput)
	if err != nil {
		return OutboundMessage{}, err
	}

	endDate, err := state.GetSelectedDate(BlockIDEndDate, ActionIDEndDateInput)
	if err != nil {
		return OutboundMessage{}, err
	}

	validationErrors := make(map[string]string)
	title = strings.TrimSpace(title)
	if title == "" {
		validationErrors[BlockIDTitle] = "Title is required"
	} else if len(title) > constants.MaxTitleLength {
		validationErrors[BlockIDTitle] = fmt.Sprintf("Title exceeds maximum length of %d characters (current: %d)",
			constants.MaxTitleLength, len(title))
	}
	content = strings.TrimSpace(content)
	if content == "" {
		validationErrors[BlockIDContent] = "Details are required"
	} else if len(content) > constants.MaxContentLength {
		validationErrors[BlockIDContent] = fmt.Sprintf("Details exceed maximum length of %d characters (current: %d)",
			constants.MaxContentLength, len(content))
	}
	if workType == "" {
		validationErrors[BlockIDWorkType] = "Department is required"
	}
	if assigneeID == "" {
		validationErrors[BlockIDAssignee] = "Assignee is required"
	}
	if len(validationErrors) > 0 {
		return OutboundMessage{}, fieldValidationError{errors: validationErrors}
	}

	prefix := cat.PrefixFor(workType)
	period := renderPeriod(startDate, endDate)

	blocks := []slack.Block{
		slack.NewDividerBlock(),
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*<%sWork Request>*", prefix), false, false),
			nil, nil,
		),
		mrkdwnField("Title", title),
		mrkdwnField("Details", content),
		mrkdwnField("Period", period),
		mrkdwnField("Plan", orNone(planURL)),
		mrkdwnField("Assignee", fmt.Sprintf("<@%s>", assigneeID)),
		slack.NewDividerBlock(),
	}

	return OutboundMessage{
		ChannelID: cat.ChannelFor(workType),
		Text:      fmt.Sprintf("%sWork request: %s", prefix, title),
		Blocks:    blocks,
	}, nil
}

// buildMeetingRequestMessage extracts the meeting-request fields and
// renders the outbound message for the fixed meeting channel.
//
// The configured CC reviewer mentions are always appended regardless of
// submitted data — a standing notification policy, not user input.
func buildMeetingRequestMessage(state ViewState, channelID string, ccUserIDs []string) (OutboundMessage, error) {
	title, err := state.GetValue(BlockIDTitle, ActionIDTitleInput)
	if err != nil {
		return OutboundMessage{}, err
	}

	assignees, err := state.GetSelectedUsers(BlockIDAssignee, ActionIDAssigneeInput)
	if err != nil {
		return OutboundMessage{}, err
	}

	document, err := state.GetValue(BlockIDDocument, ActionIDDocumentInput)
	if err != nil {
		return OutboundMessage{}, err
	}

	content, err := state.GetValue(BlockIDContent, ActionIDContentInput)
	if err != nil {
		return OutboundMessage{}, err
	}

	validationErrors := make(map[string]string)
	title = strings.TrimSpace(title)
	if title == "" {
		validationErrors[BlockIDTitle] = "Title is required"
	}
	if len(assignees) == 0 {
		validationErrors[BlockIDAssignee] = "At least one assignee is required"
	}
	if len(validationErrors) > 0 {
		return OutboundMessage{}, fieldValidationError{errors: validationErrors}
	}

	lines := []string{
		"*[Meeting review request]*",
		fmt.Sprintf("Title: << %s >>", title),
		fmt.Sprintf("Document: %s", orNone(document)),
		fmt.Sprintf("Details: %s", orNone(content)),
		fmt.Sprintf("Assignees: %s", mentionTokens(assignees)),
		fmt.Sprintf("CC: %s", mentionTokens(ccUserIDs)),
	}

	return OutboundMessage{
		ChannelID: channelID,
		Text:      strings.Join(lines, "\n"),
	}, nil
}

// extractIssueRequest extracts the Jira-issue fields from the view state.
//
// The handler's job ends at validated extraction; issue creation itself is
// handed off to the IssueCreator.
func extractIssueRequest(state ViewState) (jira.IssueRequest, error) {
	summary, err := state.GetValue(BlockIDSummary, ActionIDSummaryInput)
	if err != nil {
		return jira.IssueRequest{}, err
	}

	description, err := state.GetValue(BlockIDDescription, ActionIDDescriptionInput)
	if err != nil {
		return jira.IssueRequest{}, err
	}

	projectKey, err := state.GetValue(BlockIDProject, ActionIDProjectInput)
	if err != nil {
		return jira.IssueRequest{}, err
	}

	issueType, err := state.GetValue(BlockIDIssueType, ActionIDIssueTypeInput)
	if err != nil {
		return jira.IssueRequest{}, err
	}

	validationErrors := make(map[string]string)
	summary = strings.TrimSpace(summary)
	if summary == "" {
		validationErrors[BlockIDSummary] = "Summary is required"
	} else if len(summary) > constants.MaxTitleLength {
		validationErrors[BlockIDSummary] = fmt.Sprintf("Summary exceeds maximum length of %d characters (current: %d)",
			constants.MaxTitleLength, len(summary))
	}
	projectKey = strings.TrimSpace(projectKey)
	if projectKey == "" {
		validationErrors[BlockIDProject] = "Project key is required"
	}
	issueType = strings.TrimSpace(issueType)
	if issueType == "" {
		validationErrors[BlockIDIssueType] = "Issue type is required"
	}
	if len(validationErrors) > 0 {
		return jira.IssueRequest{}, fieldValidationError{errors: validationErrors}
	}

	return jira.IssueRequest{
		Summary:     summary,
		Description: strings.TrimSpace(description),
		ProjectKey:  projectKey,
		IssueType:   issueType,
	}, nil
}
