package tracker

import (
	"fmt"
	"time"

	"curseforge-mod-tracker/db"
	"curseforge-mod-tracker/discord"
	"curseforge-mod-tracker/errs"

	"go.uber.org/zap"
)

// SendUpdateNotification renders the webhook's template against the update
// and posts it. Success and failure are both recorded in the activity log.
func (t *Tracker) SendUpdateNotification(update ModUpdate, webhook db.Webhook) error {
	tpl, err := db.GetTemplateForWebhook(t.db, &webhook)
	if err != nil {
		return errs.Wrap(errs.Database, err, "failed to load template")
	}

	facts := discord.UpdateFacts{
		ModID:          update.CurseforgeID,
		ModName:        update.Name,
		ModAuthor:      update.Author,
		NewReleaseDate: discord.FormatReleaseDate(update.NewReleaseDate),
		OldReleaseDate: discord.FormatReleaseDate(update.OldReleaseDate),
		LatestFileName: update.LatestFileName,
	}

	msg, err := discord.RenderMessage(discord.Template{
		Title:            tpl.Title,
		Color:            tpl.Color,
		Content:          tpl.Content,
		UseEmbed:         tpl.UseEmbed,
		AuthorName:       tpl.AuthorName,
		AuthorIconURL:    tpl.AuthorIconURL,
		FooterText:       tpl.FooterText,
		FooterIconURL:    tpl.FooterIconURL,
		IncludeTimestamp: tpl.IncludeTimestamp,
		EmbedFields:      tpl.EmbedFields,
	}, facts, webhook.Username, webhook.AvatarURL, time.Now())
	if err != nil {
		return errs.Wrap(errs.Validation, err, "failed to render notification")
	}

	modID := update.ModID
	if err := t.hook.Send(webhook.URL, msg); err != nil {
		logErr := t.addActivity(t.db, "webhook_error", &modID, update.Name,
			fmt.Sprintf("Failed to notify webhook %q about %q", webhook.Name, update.Name),
			map[string]interface{}{
				"webhook_id":   webhook.ID,
				"webhook_name": webhook.Name,
				"error":        err.Error(),
			})
		if logErr != nil {
			t.log.Errorw("Failed to record webhook error", zap.Error(logErr))
		}
		return errs.Wrap(errs.Delivery, err, "webhook delivery failed")
	}

	return t.addActivity(t.db, "notification_sent", &modID, update.Name,
		fmt.Sprintf("Notified webhook %q about %q", webhook.Name, update.Name),
		map[string]interface{}{
			"webhook_id":   webhook.ID,
			"webhook_name": webhook.Name,
		})
}

// NotifyUpdate fans an update out to every enabled webhook assigned to the
// mod. Delivery failures are logged and do not stop the fan-out; the first
// failure is returned after all targets have been attempted.
func (t *Tracker) NotifyUpdate(update ModUpdate) error {
	webhooks, err := db.GetModWebhooks(t.db, update.ModID)
	if err != nil {
		return errs.Wrap(errs.Database, err, "failed to list assigned webhooks")
	}

	var firstErr error
	for _, webhook := range webhooks {
		if !webhook.Enabled {
			continue
		}
		if err := t.SendUpdateNotification(update, webhook); err != nil {
			t.log.Errorw("Notification failed",
				zap.String("webhook", webhook.Name),
				zap.String("mod", update.Name),
				zap.Error(err),
			)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
