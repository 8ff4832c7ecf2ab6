package bootstrap

import "context"

// AuditLog is a single auditable action: money movements, manual ledger
// corrections, server lifecycle.
type AuditLog struct {
	Action  string
	Actor   string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
