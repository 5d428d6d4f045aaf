package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldOperation  = "operation"
	FieldError      = "error"
	FieldStatusCode = "status_code"
	FieldMethod     = "method"
	FieldURL        = "url"
	FieldDuration   = "duration_ms"
	FieldUserEmail  = "user_email"
	FieldUserType   = "user_type"
	FieldExpenseID  = "expense_id"
	FieldCategory   = "category"
	FieldMonth      = "month"
	FieldSortKey    = "sort_key"
	FieldRecords    = "records"
	FieldAmount     = "amount"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentSession  = "session"
	ComponentGateway  = "gateway"
	ComponentPipeline = "pipeline"
	ComponentStore    = "store"
	ComponentFunds    = "funds"
	ComponentCLI      = "cli"
)

// Operations defines standard operation names
const (
	OpLogin    = "login"
	OpLogout   = "logout"
	OpList     = "list"
	OpDetail   = "detail"
	OpCreate   = "create"
	OpAddFunds = "add_funds"
	OpExport   = "export"
	OpValidate = "validate"
)
