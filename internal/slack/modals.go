// Package slack provides handlers and types for Slack integration.
//
// This file implements the modal builders for the three workflows:
//
//   - work request: work type select, title, content, optional period,
//     optional plan URL, assignee
//   - Jira issue: summary, optional description, project key, issue type
//   - meeting request: title, assignees, optional document link, optional
//     content
//
// Builders are pure and stateless. Select options are drawn from the
// injected work-type catalog at build time, so configuration changes take
// effect without redeploying the field definitions.
package slack

import (
	"github.com/cosmix/workbot/pkg/catalog"
	"github.com/slack-go/slack"
)

// BuildModal constructs the modal view for the given workflow.
func BuildModal(workflow WorkflowKind, cat *catalog.Catalog) slack.ModalViewRequest {
	switch workflow {
	case WorkflowJiraIssue:
		return BuildJiraIssueModal()
	case WorkflowMeetingRequest:
		return BuildMeetingRequestModal()
	default:
		return BuildWorkRequestModal(cat)
	}
}

// BuildWorkRequestModal constructs the work-request modal.
//
// Fields:
//  1. Work type (required) - static select with catalog options
//  2. Title (required) - single-line text input
//  3. Details (required) - multiline text input
//  4. Start date (optional) - date picker
//  5. End date (optional) - date picker
//  6. Plan URL (optional) - single-line text input
//  7. Assignee (required) - single user select
func BuildWorkRequestModal(cat *catalog.Catalog) slack.ModalViewRequest {
	return slack.ModalViewRequest{
		Type:       slack.VTModal,
		CallbackID: CallbackIDWorkRequest,
		Title:      newPlainText(WorkRequestModalTitle),
		Submit:     newPlainText(ModalSubmitText),
		Close:      newPlainText(ModalCancelText),
		Blocks: slack.Blocks{
			BlockSet: []slack.Block{
				buildWorkTypeBlock(cat),
				createTextInputBlock(BlockIDTitle, ActionIDTitleInput, "Title", "Enter a descriptive title", true, false),
				createTextInputBlock(BlockIDContent, ActionIDContentInput, "Details", "Describe the requested work", true, true),
				createDatePickerBlock(BlockIDStartDate, ActionIDStartDateInput, "Start date", "Select start date"),
				createDatePickerBlock(BlockIDEndDate, ActionIDEndDateInput, "End date", "Select end date"),
				createTextInputBlock(BlockIDPlanURL, ActionIDPlanURLInput, "Plan (URL)", "Link to the plan document", false, false),
				buildAssigneeBlock(),
			},
		},
	}
}

// BuildJiraIssueModal constructs the Jira-issue-request modal.
//
// Fields:
//  1. Summary (required) - single-line text input
//  2. Description (optional) - multiline text input
//  3. Project key (required) - single-line text input
//  4. Issue type (required) - single-line text input
func BuildJiraIssueModal() slack.ModalViewRequest {
	return slack.ModalViewRequest{
		Type:       slack.VTModal,
		CallbackID: CallbackIDJiraIssue,
		Title:      newPlainText(JiraIssueModalTitle),
		Submit:     newPlainText(ModalSubmitText),
		Close:      newPlainText(ModalCancelText),
		Blocks: slack.Blocks{
			BlockSet: []slack.Block{
				createTextInputBlock(BlockIDSummary, ActionIDSummaryInput, "Summary", "Enter the issue title", true, false),
				createTextInputBlock(BlockIDDescription, ActionIDDescriptionInput, "Description", "Describe the issue", false, true),
				createTextInputBlock(BlockIDProject, ActionIDProjectInput, "Project key", "Project key (e.g. PROJ)", true, false),
				createTextInputBlock(BlockIDIssueType, ActionIDIssueTypeInput, "Issue type", "Issue type (e.g. Task)", true, false),
			},
		},
	}
}

// BuildMeetingRequestModal constructs the meeting-request modal.
//
// Fields:
//  1. Title (required) - single-line text input
//  2. Assignees (required) - multi user select
//  3. Document link (optional) - single-line text input
//  4. Details (optional) - multiline text input
func BuildMeetingRequestModal() slack.ModalViewRequest {
	return slack.ModalViewRequest{
		Type:       slack.VTModal,
		CallbackID: CallbackIDMeetingRequest,
		Title:      newPlainText(MeetingRequestModalTitle),
		Submit:     newPlainText(ModalSubmitText),
		Close:      newPlainText(ModalCancelText),
		Blocks: slack.Blocks{
			BlockSet: []slack.Block{
				createTextInputBlock(BlockIDTitle, ActionIDTitleInput, "Title", "Enter a meeting title", true, false),
				buildAssigneesBlock(),
				createTextInputBlock(BlockIDDocument, ActionIDDocumentInput, "Document link", "Link to the document", false, false),
				createTextInputBlock(BlockIDContent, ActionIDContentInput, "Details", "Add context for the meeting", false, true),
			},
		},
	}
}

// buildWorkTypeBlock creates the work-type select with one option per
// catalog entry: option value = work-type code, display = label.
func buildWorkTypeBlock(cat *catalog.Catalog) *slack.InputBlock {
	options := make([]*slack.OptionBlockObject, 0, cat.Len())
	for _, wt := range cat.Types() {
		options = append(options, slack.NewOptionBlockObject(wt.Code, newPlainText(wt.Label), nil))
	}

	element := slack.NewOptionsSelectBlockElement(
		slack.OptTypeStatic,
		newPlainText("Select a department"),
		ActionIDWorkTypeSelect,
		options...,
	)

	return slack.NewInputBlock(
		BlockIDWorkType,
		newPlainText("Department"),
		nil,
		element,
	)
}

// buildAssigneeBlock creates the required single user select for the
// work-request assignee.
func buildAssigneeBlock() *slack.InputBlock {
	element := slack.NewOptionsSelectBlockElement(
		slack.OptTypeUser,
		newPlainText("Select an assignee"),
		ActionIDAssigneeInput,
	)

	return slack.NewInputBlock(
		BlockIDAssignee,
		newPlainText("Assignee"),
		nil,
		element,
	)
}

// buildAssigneesBlock creates the required multi user select for
// meeting-request assignees.
func buildAssigneesBlock() *slack.InputBlock {
	element := slack.NewOptionsMultiSelectBlockElement(
		slack.MultiOptTypeUser,
		newPlainText("Select assignees"),
		ActionIDAssigneeInput,
	)

	return slack.NewInputBlock(
		BlockIDAssignee,
		newPlainText("Assignees"),
		nil,
		element,
	)
}

// createTextInputBlock creates a generic text input block.
//
// Parameters:
//   - blockID: Slack block identifier
//   - actionID: Slack action identifier for field value extraction
//   - label: field label displayed in the modal
//   - placeholder: placeholder text shown in the input
//   - isRequired: if true, Optional = false (required field)
//   - isMultiline: if true, allows multiple lines of input
func createTextInputBlock(
	blockID string,
	actionID string,
	label string,
	placeholder string,
	isRequired bool,
	isMultiline bool,
) *slack.InputBlock {
	element := slack.NewPlainTextInputBlockElement(
		newPlainText(placeholder),
		actionID,
	)
	element.Multiline = isMultiline

	block := slack.NewInputBlock(
		blockID,
		newPlainText(label),
		nil,
		element,
	)

	block.Optional = !isRequired

	return block
}

// createDatePickerBlock creates an optional date picker block.
func createDatePickerBlock(blockID, actionID, label, placeholder string) *slack.InputBlock {
	element := slack.NewDatePickerBlockElement(actionID)
	element.Placeholder = newPlainText(placeholder)

	block := slack.NewInputBlock(
		blockID,
		newPlainText(label),
		nil,
		element,
	)

	block.Optional = true

	return block
}

// newPlainText creates a Slack TextBlockObject of type "plain_text".
// Used for labels, placeholders and button text in modals.
func newPlainText(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.PlainTextType, text, false, false)
}
