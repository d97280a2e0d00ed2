package models

import "encoding/json"

// AuditLog is one recorded mutation of a wallet, category or transaction.
// Changes holds the submitted fields as a JSON object, or nothing for deletes.
type AuditLog struct {
	Base
	UserID       string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Action       string          `gorm:"not null" json:"action" example:"UPDATE"`
	ResourceType string          `gorm:"not null;index:idx_audit_logs_resource,priority:1" json:"resource_type" example:"wallet"`
	ResourceID   string          `gorm:"type:uuid;index:idx_audit_logs_resource,priority:2" json:"resource_id"`
	IPAddress    string          `json:"ip_address"`
	Changes      json.RawMessage `gorm:"type:jsonb" json:"changes,omitempty" swaggertype:"object"`
}
