package slack

// Slash commands routed by the dispatcher
const (
	CommandGreet          = "/hi"
	CommandWorkRequest    = "/create_new_work"
	CommandJiraIssue      = "/jira_issue_create"
	CommandMeetingRequest = "/meeting_request"
)

// Modal callback IDs
const (
	CallbackIDWorkRequest    = "work_create_modal"
	CallbackIDJiraIssue      = "jira_issue_create_modal"
	CallbackIDMeetingRequest = "meeting_review_modal"
)

// Block IDs for modal form fields
const (
	BlockIDWorkType    = "work_type"
	BlockIDTitle       = "title"
	BlockIDContent     = "content"
	BlockIDStartDate   = "start_date"
	BlockIDEndDate     = "end_date"
	BlockIDPlanURL     = "plan_url"
	BlockIDAssignee    = "assignee"
	BlockIDSummary     = "summary"
	BlockIDDescription = "description"
	BlockIDProject     = "project"
	BlockIDIssueType   = "issuetype"
	BlockIDDocument    = "document"
)

// Action IDs for modal form fields
const (
	ActionIDWorkTypeSelect   = "work_type_select"
	ActionIDTitleInput       = "title_input"
	ActionIDContentInput     = "content_input"
	ActionIDStartDateInput   = "start_date_input"
	ActionIDEndDateInput     = "end_date_input"
	ActionIDPlanURLInput     = "plan_url_input"
	ActionIDAssigneeInput    = "assignee_input"
	ActionIDSummaryInput     = "summary_input"
	ActionIDDescriptionInput = "description_input"
	ActionIDProjectInput     = "project_input"
	ActionIDIssueTypeInput   = "issuetype_input"
	ActionIDDocumentInput    = "document_input"
)

// Modal UI text
const (
	WorkRequestModalTitle    = "New Work Request" // Must be < 25 chars (Slack limit)
	JiraIssueModalTitle      = "Create Jira Issue"
	MeetingRequestModalTitle = "Meeting Request"
	ModalSubmitText          = "Submit"
	ModalCancelText          = "Cancel"
)

// Rendering sentinels. Absent optional fields render as an explicit
// placeholder, never an empty string, so readers can tell "absent"
// from "empty".
const (
	PeriodNotSet = "period not set"
	NoneProvided = "none"
)

// Slack request headers
const (
	HeaderSlackRequestTimestamp = "X-Slack-Request-Timestamp"
	HeaderSlackSignature        = "X-Slack-Signature"
)

// Slack signature components
const (
	SignatureVersion = "v0"
	SignaturePrefix  = "v0="
)

// Interaction types
const (
	InteractionTypeViewSubmission = "view_submission"
)

// Slash command response types
const (
	ResponseTypeEphemeral = "ephemeral"
	ResponseTypeInChannel = "in_channel"
)
