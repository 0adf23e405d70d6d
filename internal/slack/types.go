// Package slack provides handlers and types for Slack integration.
//
// This package implements the core bot functionality including:
// - Slash command dispatch (/hi, /create_new_work, /jira_issue_create, /meeting_request)
// - Interactive modal views for the three request workflows
// - Form field extraction and message rendering
// - Slack request signature verification for security
//
// The package follows Slack's Block Kit modal architecture where users
// interact with forms through modal views triggered by slash commands,
// and submitted forms are relayed as formatted messages into fixed
// channels.
package slack

import (
	"encoding/json"
	"fmt"
)

// InteractionPayload represents the main payload structure for Slack interactions
// including modal submissions, button clicks, and other interactive components.
//
// When a user submits a modal or interacts with a component, Slack sends a POST
// request with this payload structure. The payload is URL-encoded in the "payload"
// form parameter and must be parsed and validated before use.
type InteractionPayload struct {
	Type        string    `json:"type"`
	User        User      `json:"user"`
	View        View      `json:"view"`
	TriggerID   string    `json:"trigger_id,omitempty"`
	Team        Team      `json:"team"`
	APIAppID    string    `json:"api_app_id"`
	Token       string    `json:"token"`
	ResponseURL string    `json:"response_url,omitempty"`
	Actions     []Action  `json:"actions,omitempty"`
	Container   Container `json:"container,omitempty"`
}

// User represents the Slack user who triggered the interaction
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	TeamID   string `json:"team_id"`
}

// Team represents the Slack workspace
type Team struct {
	ID     string `json:"id"`
	Domain string `json:"domain"`
}

// View represents a Slack modal view
type View struct {
	ID              string            `json:"id"`
	TeamID          string            `json:"team_id"`
	Type            string            `json:"type"`
	CallbackID      string            `json:"callback_id"`
	Title           ViewElement       `json:"title"`
	Close           ViewElement       `json:"close,omitempty"`
	Submit          ViewElement       `json:"submit,omitempty"`
	Blocks          []json.RawMessage `json:"blocks"`
	PrivateMetadata string            `json:"private_metadata,omitempty"`
	State           ViewState         `json:"state"`
	Hash            string            `json:"hash"`
	RootViewID      string            `json:"root_view_id,omitempty"`
	AppID           string            `json:"app_id,omitempty"`
	ExternalID      string            `json:"external_id,omitempty"`
	BotID           string            `json:"bot_id,omitempty"`
}

// ViewElement represents a text element in a view (title, submit button, etc.)
type ViewElement struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

// ViewState represents the state of a view, containing all input values.
//
// The structure is nested: state.values[block_id][action_id] -> StateValue
// Use the helper methods (GetValue, GetSelectedOption, GetSelectedUser,
// GetSelectedUsers, GetSelectedDate) to safely extract values from the state.
type ViewState struct {
	Values map[string]map[string]StateValue `json:"values"`
}

// StateValue represents a single input value from the view state.
//
// Slack sends different field structures based on the input type:
// - Text inputs: Value field contains the string
// - Single-select: SelectedOption contains the chosen option
// - Multi-select: SelectedOptions contains array of chosen options
// - Date/user pickers: SelectedDate / SelectedUser(s) contain the selection
//
// The Type field indicates which field(s) will be populated.
type StateValue struct {
	Type                 string           `json:"type"`
	Value                *string          `json:"value,omitempty"`
	SelectedDate         string           `json:"selected_date,omitempty"`
	SelectedTime         string           `json:"selected_time,omitempty"`
	SelectedUser         string           `json:"selected_user,omitempty"`
	SelectedUsers        []string         `json:"selected_users,omitempty"`
	SelectedChannel      string           `json:"selected_channel,omitempty"`
	SelectedConversation string           `json:"selected_conversation,omitempty"`
	SelectedOption       *SelectedOption  `json:"selected_option,omitempty"`
	SelectedOptions      []SelectedOption `json:"selected_options,omitempty"`
}

// SelectedOption represents a selected option from a select menu.
type SelectedOption struct {
	Text  OptionText `json:"text"`
	Value string     `json:"value"`
}

// OptionText represents the text of an option in a select menu.
type OptionText struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

// Action represents an action taken in an interactive component
type Action struct {
	Type            string           `json:"type"`
	ActionID        string           `json:"action_id"`
	BlockID         string           `json:"block_id"`
	Value           string           `json:"value,omitempty"`
	ActionTS        string           `json:"action_ts"`
	SelectedOption  *SelectedOption  `json:"selected_option,omitempty"`
	SelectedOptions []SelectedOption `json:"selected_options,omitempty"`
}

// Container represents the container of an interactive component
type Container struct {
	Type        string `json:"type"`
	MessageTS   string `json:"message_ts,omitempty"`
	ChannelID   string `json:"channel_id,omitempty"`
	IsEphemeral bool   `json:"is_ephemeral,omitempty"`
	ViewID      string `json:"view_id,omitempty"`
}

// ResponseAction represents the type of response action for view submissions.
//
// Slack supports different response actions when processing modal submissions:
// - errors: Display field-specific validation errors to the user
// - clear: Close the modal without showing errors
// - update: Update the current modal with new content
// - push: Push a new modal onto the stack (for multi-step flows)
type ResponseAction string

// Common response actions for modal submission responses.
const (
	// ResponseActionErrors displays validation errors to the user without closing the modal.
	// The Errors map should contain block_id -> error_message pairs.
	ResponseActionErrors ResponseAction = "errors"

	// ResponseActionClear closes the modal without showing any errors.
	ResponseActionClear ResponseAction = "clear"

	// ResponseActionUpdate updates the current modal view with new content.
	ResponseActionUpdate ResponseAction = "update"

	// ResponseActionPush pushes a new modal view onto the navigation stack.
	ResponseActionPush ResponseAction = "push"
)

// ViewSubmissionResponse represents the response structure for view submissions.
type ViewSubmissionResponse struct {
	ResponseAction ResponseAction    `json:"response_action,omitempty"`
	Errors         map[string]string `json:"errors,omitempty"`
	View           *View             `json:"view,omitempty"`
}

// Validate checks if the InteractionPayload has all required fields
func (ip *InteractionPayload) Validate() error {
	if ip.Type == "" {
		return fmt.Errorf("interaction type is required")
	}
	if ip.User.ID == "" {
		return fmt.Errorf("user ID is required")
	}
	if ip.Team.ID == "" {
		return fmt.Errorf("team ID is required")
	}
	return nil
}

// GetValue extracts a plain text value from the view state.
//
// Used for text input fields (plain_text_input or rich_text_input).
// Returns the text value if found, or an error if the block/action doesn't
// exist — a missing block is a programming error (the modal builder and the
// extraction code have drifted apart), never a user error.
// Returns an empty string (without error) if the field exists but has no value.
func (vs *ViewState) GetValue(blockID, actionID string) (string, error) {
	stateValue, err := vs.lookup(blockID, actionID)
	if err != nil {
		return "", err
	}

	if stateValue.Value != nil {
		return *stateValue.Value, nil
	}

	return "", nil
}

// GetSelectedOption extracts a selected option value from a single-select dropdown.
//
// Returns the selected option's value if one is chosen, or an empty string
// if no selection. Returns an error only if the block/action doesn't exist
// in the form.
//
// When no option is selected, Slack omits the SelectedOption field entirely,
// so it must be nil-checked before use.
func (vs *ViewState) GetSelectedOption(blockID, actionID string) (string, error) {
	stateValue, err := vs.lookup(blockID, actionID)
	if err != nil {
		return "", err
	}

	if stateValue.SelectedOption == nil {
		return "", nil
	}

	return stateValue.SelectedOption.Value, nil
}

// GetSelectedUser extracts the chosen user ID from a users_select element.
//
// Returns an empty string (without error) if no user is selected.
// Returns an error only if the block/action doesn't exist in the form.
func (vs *ViewState) GetSelectedUser(blockID, actionID string) (string, error) {
	stateValue, err := vs.lookup(blockID, actionID)
	if err != nil {
		return "", err
	}

	return stateValue.SelectedUser, nil
}

// GetSelectedUsers extracts the chosen user IDs from a multi_users_select element.
//
// Returns an empty slice if no users are selected.
// Returns an error only if the block/action doesn't exist in the form.
func (vs *ViewState) GetSelectedUsers(blockID, actionID string) ([]string, error) {
	stateValue, err := vs.lookup(blockID, actionID)
	if err != nil {
		return nil, err
	}

	var users []string
	for _, id := range stateValue.SelectedUsers {
		if id != "" {
			users = append(users, id)
		}
	}

	return users, nil
}

// GetSelectedDate extracts the chosen date (YYYY-MM-DD) from a datepicker element.
//
// Returns an empty string (without error) if no date is selected; optional
// date fields arrive with the block present and the date blank.
// Returns an error only if the block/action doesn't exist in the form.
func (vs *ViewState) GetSelectedDate(blockID, actionID string) (string, error) {
	stateValue, err := vs.lookup(blockID, actionID)
	if err != nil {
		return "", err
	}

	return stateValue.SelectedDate, nil
}

// lookup resolves the state value at values[blockID][actionID].
func (vs *ViewState) lookup(blockID, actionID string) (StateValue, error) {
	if vs.Values == nil {
		return StateValue{}, fmt.Errorf("view state values is nil")
	}

	block, exists := vs.Values[blockID]
	if !exists {
		return StateValue{}, fmt.Errorf("block %q not found in view state", blockID)
	}

	stateValue, exists := block[actionID]
	if !exists {
		return StateValue{}, fmt.Errorf("action %q not found in block %q", actionID, blockID)
	}

	return stateValue, nil
}
