package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldEndpoint    = "endpoint"
	FieldMethod      = "method"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldSlice       = "slice"
	FieldGeneration  = "generation"
	FieldPage        = "page"
	FieldInvoiceID   = "invoice_id"
	FieldStatus      = "invoice_status"
	FieldTotal       = "total"
	FieldFingerprint = "query_fingerprint"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentAPI     = "api"
	ComponentStore   = "store"
	ComponentCache   = "cache"
	ComponentStorage = "storage"
	ComponentInvoice = "invoice"
	ComponentCLI     = "cli"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpList     = "list"
	OpFetch    = "fetch"
	OpValidate = "validate"
	OpSubmit   = "submit"
	OpClear    = "clear"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
