package constants

// Session
const (
	SessionCookieName = "work_report_session"

	SessionKeyUsername      = "username"
	SessionKeyRole          = "role"
	SessionKeyJobCategories = "job_categories"
)

// Roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// AdminUsername is the built-in administrator account; it cannot be deleted.
const AdminUsername = "admin"

// CategoryAll is the sentinel category granting access to every work item.
const CategoryAll = "all"

// MaxHierarchyDepth is the deepest level a work-item tree may reach.
const MaxHierarchyDepth = 4

// Project status literals. Status is free text; only the done value has
// behavior attached (completed-date tracking).
const (
	ProjectStatusNotStarted = "未着手"
	ProjectStatusInProgress = "進行中"
	ProjectStatusDone       = "完了"
)

// Spreadsheet literals
const (
	LeadtimeYes = "あり"
	LeadtimeNo  = "なし"

	WorkItemSheetName = "作業項目"

	// MaxSheetNameLength is the Excel limit for worksheet names.
	MaxSheetNameLength = 31
)

const MinPasswordLength = 4
