package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// GetDefaultTemplate returns the system-wide default notification template.
// A default always exists after Seed.
func GetDefaultTemplate(gdb *gorm.DB) (WebhookTemplate, error) {
	var tpl WebhookTemplate
	err := gdb.First(&tpl, "is_default = ?", true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tpl, fmt.Errorf("default webhook template is missing")
	}
	return tpl, err
}

// GetTemplateForWebhook resolves the template used for a webhook: its custom
// template when it opted into one and the row exists, else the default.
func GetTemplateForWebhook(gdb *gorm.DB, webhook *Webhook) (WebhookTemplate, error) {
	if !webhook.UseCustomTemplate {
		return GetDefaultTemplate(gdb)
	}
	var tpl WebhookTemplate
	err := gdb.First(&tpl, "webhook_id = ?", webhook.ID).Error
	if err == nil {
		return tpl, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return tpl, err
	}
	return GetDefaultTemplate(gdb)
}

// UpdateDefaultTemplate overwrites the fields of the default template.
func UpdateDefaultTemplate(gdb *gorm.DB, tpl WebhookTemplate) error {
	return gdb.Model(&WebhookTemplate{}).
		Where("is_default = ?", true).
		Updates(map[string]interface{}{
			"title":             tpl.Title,
			"color":             tpl.Color,
			"content":           tpl.Content,
			"use_embed":         tpl.UseEmbed,
			"author_name":       tpl.AuthorName,
			"author_icon_url":   tpl.AuthorIconURL,
			"footer_text":       tpl.FooterText,
			"footer_icon_url":   tpl.FooterIconURL,
			"include_timestamp": tpl.IncludeTimestamp,
			"embed_fields":      tpl.EmbedFields,
		}).Error
}

// UpsertCustomTemplate creates or replaces the custom template for a webhook
// and flags the webhook as using it, in one transaction.
func UpsertCustomTemplate(gdb *gorm.DB, webhookID uint, tpl WebhookTemplate) error {
	return gdb.Transaction(func(tx *gorm.DB) error {
		var existing WebhookTemplate
		err := tx.First(&existing, "webhook_id = ?", webhookID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			tpl.ID = 0
			tpl.IsDefault = false
			tpl.WebhookID = &webhookID
			if err := tx.Create(&tpl).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if err := tx.Model(&existing).Updates(map[string]interface{}{
				"title":             tpl.Title,
				"color":             tpl.Color,
				"content":           tpl.Content,
				"use_embed":         tpl.UseEmbed,
				"author_name":       tpl.AuthorName,
				"author_icon_url":   tpl.AuthorIconURL,
				"footer_text":       tpl.FooterText,
				"footer_icon_url":   tpl.FooterIconURL,
				"include_timestamp": tpl.IncludeTimestamp,
				"embed_fields":      tpl.EmbedFields,
			}).Error; err != nil {
				return err
			}
		}

		return tx.Model(&Webhook{}).Where("id = ?", webhookID).
			Update("use_custom_template", true).Error
	})
}

// DeleteCustomTemplate removes a webhook's custom template and resets it to
// the default, in one transaction.
func DeleteCustomTemplate(gdb *gorm.DB, webhookID uint) error {
	return gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("webhook_id = ?", webhookID).Delete(&WebhookTemplate{}).Error; err != nil {
			return err
		}
		return tx.Model(&Webhook{}).Where("id = ?", webhookID).
			Update("use_custom_template", false).Error
	})
}
