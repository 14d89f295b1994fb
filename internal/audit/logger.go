package audit

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/amizade-app/companion-api/internal/models"
)

// Entry builds an AuditLog row with JSON snapshots. A nil actor means
// the system itself.
func Entry(
	companionID uint,
	actorID *uint,
	action string,
	entity string,
	entityID *uint,
	before any,
	after any,
) *models.AuditLog {
	return &models.AuditLog{
		CompanionID: companionID,
		ActorID:     actorID,
		Action:      action,
		Entity:      entity,
		EntityID:    entityID,
		Before:      marshal(before),
		After:       marshal(after),
	}
}

func marshal(v any) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// WithTx writes the entry inside an open transaction so the audit trail
// and the mutation commit or roll back together.
func WithTx(tx *gorm.DB, entry *models.AuditLog) error {
	return tx.Create(entry).Error
}
