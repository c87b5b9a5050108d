package audit

import (
	"encoding/json"
	"fmt"

	"protezlab-backend/internal/database"
	"protezlab-backend/internal/keymap"
	"protezlab-backend/internal/models"
)

type LogOptions struct {
	UserID      uint
	UserName    string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

// WriteLog: before/after anlık görüntülerini snake_case anahtarlı JSON
// olarak saklar. Log hatası çağıran işlemi geri almaz.
func WriteLog(opts LogOptions) error {
	// PostgreSQL jsonb için boş string yerine "null" JSON kullanılır.
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		beforeStr = marshalSnake(opts.Before)
	}
	if opts.After != nil {
		afterStr = marshalSnake(opts.After)
	}

	entry := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		return fmt.Errorf("audit log kaydedilemedi: %w", err)
	}

	return nil
}

// marshalSnake: map anahtarları camelCase gelebilir (PATCH gövdeleri);
// saklamadan önce snake_case'e normalize edilir.
func marshalSnake(v any) string {
	if m, ok := v.(map[string]any); ok {
		v = keymap.ToSnakeKeys(m)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}
