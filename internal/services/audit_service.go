package services

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	apperrors "finwallet/internal/errors"
	"finwallet/internal/logger"
	"finwallet/internal/models"
	"finwallet/internal/pagination"
)

// Audit actions.
const (
	AuditActionCreate = "CREATE"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"
)

// Audited resource types.
const (
	ResourceWallet      = "wallet"
	ResourceCategory    = "category"
	ResourceTransaction = "transaction"
)

// AuditFilter narrows an audit trail listing. Empty fields match everything.
type AuditFilter struct {
	ResourceType string `form:"resource_type" binding:"omitempty,oneof=wallet category transaction"`
	ResourceID   string `form:"resource_id" binding:"omitempty,uuid"`
}

type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log records an audit event. A failed write is logged and swallowed; the
// mutation it describes has already been committed.
func (s *auditService) Log(ctx context.Context, userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{}) {
	log := logger.FromContext(ctx).With(
		"user_id", userID,
		"action", action,
		"resource_type", resourceType,
		"resource_id", resourceID,
	)

	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
	}
	if len(changes) > 0 {
		data, err := json.Marshal(changes)
		if err != nil {
			log.Errorw("failed to marshal audit changes", "error", err)
			data = []byte("{}")
		}
		entry.Changes = data
	}

	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		log.Errorw("failed to write audit entry", "error", err)
	}
}

// ListUserEvents returns the user's audit entries, newest first.
func (s *auditService) ListUserEvents(ctx context.Context, userID string, filter AuditFilter, page pagination.PageRequest) (*pagination.PageResponse[models.AuditLog], error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.ResourceType != "" {
		query = query.Where("resource_type = ?", filter.ResourceType)
	}
	if filter.ResourceID != "" {
		query = query.Where("resource_id = ?", filter.ResourceID)
	}

	result, err := pagination.Find[models.AuditLog](query, page, pagination.OrderBy("created_at DESC, id DESC"))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &result, nil
}
