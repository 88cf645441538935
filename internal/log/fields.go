package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldClientIP  = "client_ip"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldDuration  = "duration_ms"
	FieldError     = "error"
	FieldOperation = "operation"

	FieldProjectID   = "project_id"
	FieldProjectName = "project_name"
	FieldWeek        = "week_number"
	FieldAmountCents = "amount_cents"
	FieldTab         = "tab"
	FieldRow         = "row"
	FieldUsername    = "username"
	FieldBackend     = "backend"

	FieldSpreadsheetID = "spreadsheet_id"
	FieldDBPath        = "db_path"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentTracker = "tracker"
	ComponentSheets  = "sheets"
	ComponentStorage = "storage"
	ComponentAuth    = "auth"
	ComponentCache   = "cache"
	ComponentBackend = "backend"
)

// Operations defines standard operation names
const (
	OpRegisterProject = "register_project"
	OpUpdateProject   = "update_project"
	OpRegisterExpense = "register_expense"
	OpUpdateExpense   = "update_expense"
	OpSnapshot        = "snapshot"
	OpLogin           = "login"
	OpLogout          = "logout"
)
