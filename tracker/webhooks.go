package tracker

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"curseforge-mod-tracker/db"
	"curseforge-mod-tracker/discord"
	"curseforge-mod-tracker/errs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AddWebhook creates a notification target. Names are unique
// case-insensitively; duplicates are rejected before any mutation.
func (t *Tracker) AddWebhook(webhook db.Webhook) (*db.Webhook, error) {
	if strings.TrimSpace(webhook.Name) == "" {
		return nil, errs.New(errs.Validation, "webhook name must not be empty")
	}
	if strings.TrimSpace(webhook.URL) == "" {
		return nil, errs.New(errs.Validation, "webhook URL must not be empty")
	}

	taken, err := db.WebhookNameTaken(t.db, webhook.Name, 0)
	if err != nil {
		return nil, errs.Wrap(errs.Database, err, "failed to check webhook name")
	}
	if taken {
		return nil, errs.Newf(errs.Validation, "a webhook named %q already exists", webhook.Name)
	}

	webhook.ID = 0
	if err := t.db.Create(&webhook).Error; err != nil {
		return nil, errs.Wrap(errs.Database, err, "failed to save webhook")
	}

	t.log.Infow("Added webhook", zap.String("name", webhook.Name))

	err = t.addActivity(t.db, "webhook_added", nil, "",
		fmt.Sprintf("Added webhook %q", webhook.Name),
		map[string]interface{}{
			"webhook_name": webhook.Name,
			"webhook_id":   webhook.ID,
		})
	if err != nil {
		return nil, err
	}

	return &webhook, nil
}

// Webhooks lists all notification targets.
func (t *Tracker) Webhooks() ([]db.Webhook, error) {
	webhooks, err := db.GetAllWebhooks(t.db)
	if err != nil {
		return nil, errs.Wrap(errs.Database, err, "failed to list webhooks")
	}
	return webhooks, nil
}

// UpdateWebhook overwrites a webhook's fields, keeping the case-insensitive
// name uniqueness rule.
func (t *Tracker) UpdateWebhook(webhook db.Webhook) error {
	var existing db.Webhook
	if err := t.db.First(&existing, webhook.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.New(errs.Validation, "webhook not found")
		}
		return errs.Wrap(errs.Database, err, "failed to load webhook")
	}

	taken, err := db.WebhookNameTaken(t.db, webhook.Name, webhook.ID)
	if err != nil {
		return errs.Wrap(errs.Database, err, "failed to check webhook name")
	}
	if taken {
		return errs.Newf(errs.Validation, "a webhook named %q already exists", webhook.Name)
	}

	if err := t.db.Model(&existing).Updates(map[string]interface{}{
		"name":                webhook.Name,
		"url":                 webhook.URL,
		"avatar_url":          webhook.AvatarURL,
		"username":            webhook.Username,
		"enabled":             webhook.Enabled,
		"use_custom_template": webhook.UseCustomTemplate,
	}).Error; err != nil {
		return errs.Wrap(errs.Database, err, "failed to update webhook")
	}

	return t.addActivity(t.db, "webhook_updated", nil, "",
		fmt.Sprintf("Updated webhook %q", webhook.Name),
		map[string]interface{}{
			"webhook_name": webhook.Name,
			"webhook_id":   webhook.ID,
		})
}

// DeleteWebhook removes a webhook, its mod assignments and its custom
// template, and records the removal, all in one transaction.
func (t *Tracker) DeleteWebhook(webhookID uint) error {
	return t.db.Transaction(func(tx *gorm.DB) error {
		var webhook db.Webhook
		if err := tx.First(&webhook, webhookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.New(errs.Validation, "webhook not found")
			}
			return errs.Wrap(errs.Database, err, "failed to load webhook")
		}

		if err := db.DeleteWebhook(tx, webhookID); err != nil {
			return errs.Wrap(errs.Database, err, "failed to delete webhook")
		}

		return t.addActivity(tx, "webhook_removed", nil, "",
			fmt.Sprintf("Removed webhook %q", webhook.Name),
			map[string]interface{}{
				"webhook_name": webhook.Name,
				"webhook_id":   webhookID,
			})
	})
}

// TestWebhook sends the fixed test message to a webhook URL.
func (t *Tracker) TestWebhook(webhook db.Webhook) error {
	msg := discord.TestMessage(webhook.Username, webhook.AvatarURL, time.Now())
	if err := t.hook.Send(webhook.URL, msg); err != nil {
		return errs.Wrap(errs.Delivery, err, "test message rejected")
	}
	return nil
}
