package slack

import (
	"strings"
	"testing"
)

func strPtr(s string) *string {
	return &s
}

// TestInteractionPayloadValidate tests required-field validation
func TestInteractionPayloadValidate(t *testing.T) {
	tests := []struct {
		name    string
		payload InteractionPayload
		wantErr bool
	}{
		{
			name: "valid payload",
			payload: InteractionPayload{
				Type: InteractionTypeViewSubmission,
				User: User{ID: "U123"},
				Team: Team{ID: "T123"},
			},
			wantErr: false,
		},
		{
			name: "missing type",
			payload: InteractionPayload{
				User: User{ID: "U123"},
				Team: Team{ID: "T123"},
			},
			wantErr: true,
		},
		{
			name: "missing user ID",
			payload: InteractionPayload{
				Type: InteractionTypeViewSubmission,
				Team: Team{ID: "T123"},
			},
			wantErr: true,
		},
		{
			name: "missing team ID",
			payload: InteractionPayload{
				Type: InteractionTypeViewSubmission,
				User: User{ID: "U123"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestGetValue tests plain text extraction from the view state
func TestGetValue(t *testing.T) {
	state := ViewState{
		Values: map[string]map[string]StateValue{
			BlockIDTitle: {
				ActionIDTitleInput: {Type: "plain_text_input", Value: strPtr("My title")},
			},
			BlockIDPlanURL: {
				ActionIDPlanURLInput: {Type: "plain_text_input", Value: nil},
			},
		},
	}

	got, err := state.GetValue(BlockIDTitle, ActionIDTitleInput)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "My title" {
		t.Errorf("GetValue = %q, want %q", got, "My title")
	}

	// Field present with no value yields empty string, not an error
	got, err = state.GetValue(BlockIDPlanURL, ActionIDPlanURLInput)
	if err != nil {
		t.Fatalf("unexpected error for nil value: %v", err)
	}
	if got != "" {
		t.Errorf("GetValue = %q, want empty", got)
	}
}

// TestGetValue_MissingBlockFailsLoudly tests that absent blocks are errors, not empty values
func TestGetValue_MissingBlockFailsLoudly(t *testing.T) {
	state := ViewState{
		Values: map[string]map[string]StateValue{
			BlockIDTitle: {
				ActionIDTitleInput: {Value: strPtr("x")},
			},
		},
	}

	_, err := state.GetValue("no_such_block", ActionIDTitleInput)
	if err == nil {
		t.Fatal("expected error for missing block")
	}
	if !strings.Contains(err.Error(), "no_such_block") {
		t.Errorf("error %q should name the missing block", err)
	}

	_, err = state.GetValue(BlockIDTitle, "no_such_action")
	if err == nil {
		t.Fatal("expected error for missing action")
	}

	nilState := ViewState{}
	_, err = nilState.GetValue(BlockIDTitle, ActionIDTitleInput)
	if err == nil {
		t.Fatal("expected error for nil state values")
	}
}

// TestGetSelectedOption tests static-select extraction
func TestGetSelectedOption(t *testing.T) {
	state := ViewState{
		Values: map[string]map[string]StateValue{
			BlockIDWorkType: {
				ActionIDWorkTypeSelect: {
					Type:           "static_select",
					SelectedOption: &SelectedOption{Value: "ui_task"},
				},
			},
			"empty_select": {
				"empty_action": {Type: "static_select"},
			},
		},
	}

	got, err := state.GetSelectedOption(BlockIDWorkType, ActionIDWorkTypeSelect)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ui_task" {
		t.Errorf("GetSelectedOption = %q, want %q", got, "ui_task")
	}

	// No selection: Slack omits selected_option entirely
	got, err = state.GetSelectedOption("empty_select", "empty_action")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("GetSelectedOption = %q, want empty", got)
	}
}

// TestGetSelectedUser tests users_select extraction
func TestGetSelectedUser(t *testing.T) {
	state := ViewState{
		Values: map[string]map[string]StateValue{
			BlockIDAssignee: {
				ActionIDAssigneeInput: {Type: "users_select", SelectedUser: "U999"},
			},
		},
	}

	got, err := state.GetSelectedUser(BlockIDAssignee, ActionIDAssigneeInput)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "U999" {
		t.Errorf("GetSelectedUser = %q, want %q", got, "U999")
	}
}

// TestGetSelectedUsers tests multi_users_select extraction
func TestGetSelectedUsers(t *testing.T) {
	state := ViewState{
		Values: map[string]map[string]StateValue{
			BlockIDAssignee: {
				ActionIDAssigneeInput: {
					Type:          "multi_users_select",
					SelectedUsers: []string{"U111", "", "U222"},
				},
			},
		},
	}

	got, err := state.GetSelectedUsers(BlockIDAssignee, ActionIDAssigneeInput)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != "U111" || got[1] != "U222" {
		t.Errorf("GetSelectedUsers = %v, want [U111 U222]", got)
	}
}

// TestGetSelectedDate tests datepicker extraction for set and unset dates
func TestGetSelectedDate(t *testing.T) {
	state := ViewState{
		Values: map[string]map[string]StateValue{
			BlockIDStartDate: {
				ActionIDStartDateInput: {Type: "datepicker", SelectedDate: "2025-01-01"},
			},
			BlockIDEndDate: {
				ActionIDEndDateInput: {Type: "datepicker"},
			},
		},
	}

	got, err := state.GetSelectedDate(BlockIDStartDate, ActionIDStartDateInput)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2025-01-01" {
		t.Errorf("GetSelectedDate = %q, want %q", got, "2025-01-01")
	}

	got, err = state.GetSelectedDate(BlockIDEndDate, ActionIDEndDateInput)
	if err != nil {
		t.Fatalf("unexpected error for unset date: %v", err)
	}
	if got != "" {
		t.Errorf("GetSelectedDate = %q, want empty for unset date", got)
	}
}
