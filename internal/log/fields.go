package log

// Common field names for structured logging.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"

	FieldEntity      = "entity"
	FieldEntityID    = "entity_id"
	FieldMemberID    = "member_id"
	FieldCategoryID  = "category_id"
	FieldAmountCents = "amount_cents"
	FieldTxType      = "tx_type"
	FieldBackend     = "backend"
	FieldRevision    = "revision"
)

// Standard component names.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentStore   = "store"
	ComponentFinance = "finance"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentBackend = "backend"
)

// Standard operation names.
const (
	OpCreate   = "create"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpList     = "list"
	OpOverview = "overview"
	OpFilter   = "filter"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
