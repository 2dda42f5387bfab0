package db

import (
	"gorm.io/gorm"
)

// GetAllWebhooks returns all webhooks ordered by name.
func GetAllWebhooks(gdb *gorm.DB) ([]Webhook, error) {
	var webhooks []Webhook
	err := gdb.Order("name").Find(&webhooks).Error
	return webhooks, err
}

// WebhookNameTaken reports whether a webhook with the given name already
// exists, compared case-insensitively. excludeID skips the webhook being
// updated; pass 0 for inserts.
func WebhookNameTaken(gdb *gorm.DB, name string, excludeID uint) (bool, error) {
	var count int64
	q := gdb.Model(&Webhook{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

// GetModWebhooks returns the webhooks assigned to a mod, ordered by name.
func GetModWebhooks(gdb *gorm.DB, modID uint) ([]Webhook, error) {
	var webhooks []Webhook
	err := gdb.
		Joins("JOIN mod_webhook_assignments mwa ON mwa.webhook_id = webhooks.id").
		Where("mwa.mod_id = ?", modID).
		Order("webhooks.name").
		Find(&webhooks).Error
	return webhooks, err
}

// DeleteWebhook removes a webhook, its assignments and its custom template.
// Callers are expected to run this inside a transaction together with the
// removal activity entry.
func DeleteWebhook(tx *gorm.DB, webhookID uint) error {
	if err := tx.Where("webhook_id = ?", webhookID).Delete(&ModWebhookAssignment{}).Error; err != nil {
		return err
	}
	if err := tx.Unscoped().Where("webhook_id = ?", webhookID).Delete(&WebhookTemplate{}).Error; err != nil {
		return err
	}
	return tx.Unscoped().Delete(&Webhook{}, webhookID).Error
}
