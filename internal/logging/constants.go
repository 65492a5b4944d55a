package logging

// Standard field names, so that log output can be filtered consistently.
const (
	FieldComponent     = "component"
	FieldUserID        = "user_id"
	FieldSessionID     = "session_id"
	FieldTransactionID = "transaction_id"
	FieldCategory      = "category"
	FieldMonth         = "month"
	FieldRule          = "rule"
	FieldCommand       = "command"
	FieldTranscript    = "transcript"
	FieldOperation     = "operation"
	FieldBackend       = "backend"
	FieldCount         = "count"
	FieldDuration      = "duration_ms"
	FieldPath          = "path"
	FieldReason        = "reason"
)
