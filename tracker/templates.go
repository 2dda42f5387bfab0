package tracker

import (
	"errors"

	"curseforge-mod-tracker/db"
	"curseforge-mod-tracker/discord"
	"curseforge-mod-tracker/errs"

	"gorm.io/gorm"
)

// DefaultTemplate returns the seeded default notification template.
func (t *Tracker) DefaultTemplate() (*db.WebhookTemplate, error) {
	tpl, err := db.GetDefaultTemplate(t.db)
	if err != nil {
		return nil, errs.Wrap(errs.Database, err, "failed to load default template")
	}
	return &tpl, nil
}

// TemplateForWebhook returns the webhook's custom template if it opted into
// one, otherwise the default.
func (t *Tracker) TemplateForWebhook(webhookID uint) (*db.WebhookTemplate, error) {
	var webhook db.Webhook
	if err := t.db.First(&webhook, webhookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.New(errs.Validation, "webhook not found")
		}
		return nil, errs.Wrap(errs.Database, err, "failed to load webhook")
	}

	tpl, err := db.GetTemplateForWebhook(t.db, &webhook)
	if err != nil {
		return nil, errs.Wrap(errs.Database, err, "failed to load template")
	}
	return &tpl, nil
}

// UpdateDefaultTemplate overwrites the default template's fields. The stored
// embed fields JSON is validated before anything is written.
func (t *Tracker) UpdateDefaultTemplate(tpl db.WebhookTemplate) error {
	if err := validateTemplate(tpl); err != nil {
		return err
	}
	if err := db.UpdateDefaultTemplate(t.db, tpl); err != nil {
		return errs.Wrap(errs.Database, err, "failed to update default template")
	}
	return nil
}

// SetCustomTemplate stores a webhook-specific template and flips the webhook
// onto it, in one transaction.
func (t *Tracker) SetCustomTemplate(webhookID uint, tpl db.WebhookTemplate) error {
	if err := validateTemplate(tpl); err != nil {
		return err
	}

	var webhook db.Webhook
	if err := t.db.First(&webhook, webhookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.New(errs.Validation, "webhook not found")
		}
		return errs.Wrap(errs.Database, err, "failed to load webhook")
	}

	if err := db.UpsertCustomTemplate(t.db, webhookID, tpl); err != nil {
		return errs.Wrap(errs.Database, err, "failed to save custom template")
	}
	return nil
}

// DeleteCustomTemplate drops a webhook's custom template and points it back
// at the default.
func (t *Tracker) DeleteCustomTemplate(webhookID uint) error {
	var webhook db.Webhook
	if err := t.db.First(&webhook, webhookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.New(errs.Validation, "webhook not found")
		}
		return errs.Wrap(errs.Database, err, "failed to load webhook")
	}

	if err := db.DeleteCustomTemplate(t.db, webhookID); err != nil {
		return errs.Wrap(errs.Database, err, "failed to delete custom template")
	}
	return nil
}

func validateTemplate(tpl db.WebhookTemplate) error {
	if !tpl.UseEmbed {
		return nil
	}
	if _, err := discord.ParseEmbedFields(tpl.EmbedFields); err != nil {
		return errs.Wrap(errs.Validation, err, "invalid embed fields format")
	}
	return nil
}
