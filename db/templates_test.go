package db

import "testing"

func TestGetTemplateForWebhook(t *testing.T) {
	gdb := openTestDB(t)
	webhook := createWebhook(t, gdb, "Main Channel")

	t.Run("falls back to default", func(t *testing.T) {
		tpl, err := GetTemplateForWebhook(gdb, &webhook)
		if err != nil {
			t.Fatalf("GetTemplateForWebhook() error: %v", err)
		}
		if !tpl.IsDefault {
			t.Error("expected the default template when no custom one exists")
		}
	})

	t.Run("custom template takes over", func(t *testing.T) {
		custom := WebhookTemplate{Title: "Custom Title", Color: 123, UseEmbed: true, EmbedFields: "[]"}
		if err := UpsertCustomTemplate(gdb, webhook.ID, custom); err != nil {
			t.Fatalf("UpsertCustomTemplate() error: %v", err)
		}

		// Resolution reads the flag off the webhook row
		if err := gdb.First(&webhook, webhook.ID).Error; err != nil {
			t.Fatalf("failed to reload webhook: %v", err)
		}
		if !webhook.UseCustomTemplate {
			t.Fatal("UpsertCustomTemplate() should flag the webhook")
		}

		tpl, err := GetTemplateForWebhook(gdb, &webhook)
		if err != nil {
			t.Fatalf("GetTemplateForWebhook() error: %v", err)
		}
		if tpl.IsDefault || tpl.Title != "Custom Title" {
			t.Errorf("expected custom template, got %+v", tpl)
		}
	})

	t.Run("delete restores default", func(t *testing.T) {
		if err := DeleteCustomTemplate(gdb, webhook.ID); err != nil {
			t.Fatalf("DeleteCustomTemplate() error: %v", err)
		}
		if err := gdb.First(&webhook, webhook.ID).Error; err != nil {
			t.Fatalf("failed to reload webhook: %v", err)
		}
		if webhook.UseCustomTemplate {
			t.Error("DeleteCustomTemplate() should clear the webhook flag")
		}

		tpl, err := GetTemplateForWebhook(gdb, &webhook)
		if err != nil {
			t.Fatalf("GetTemplateForWebhook() error: %v", err)
		}
		if !tpl.IsDefault {
			t.Error("expected the default template after the custom one was removed")
		}
	})
}

func TestUpsertCustomTemplateReplacesExisting(t *testing.T) {
	gdb := openTestDB(t)
	webhook := createWebhook(t, gdb, "Main Channel")

	if err := UpsertCustomTemplate(gdb, webhook.ID, WebhookTemplate{Title: "first", UseEmbed: true, EmbedFields: "[]"}); err != nil {
		t.Fatalf("UpsertCustomTemplate() error: %v", err)
	}
	if err := UpsertCustomTemplate(gdb, webhook.ID, WebhookTemplate{Title: "second", UseEmbed: true, EmbedFields: "[]"}); err != nil {
		t.Fatalf("UpsertCustomTemplate() second call error: %v", err)
	}

	var custom int64
	if err := gdb.Model(&WebhookTemplate{}).Where("webhook_id = ?", webhook.ID).Count(&custom).Error; err != nil {
		t.Fatalf("count error: %v", err)
	}
	if custom != 1 {
		t.Errorf("expected one custom template row, got %d", custom)
	}

	var tpl WebhookTemplate
	if err := gdb.First(&tpl, "webhook_id = ?", webhook.ID).Error; err != nil {
		t.Fatalf("failed to load custom template: %v", err)
	}
	if tpl.Title != "second" {
		t.Errorf("title = %q, want %q", tpl.Title, "second")
	}
}

func TestUpdateDefaultTemplate(t *testing.T) {
	gdb := openTestDB(t)

	if err := UpdateDefaultTemplate(gdb, WebhookTemplate{
		Title:       "New Title",
		Color:       42,
		UseEmbed:    true,
		EmbedFields: `[{"name":"n","value":"v","inline":false}]`,
	}); err != nil {
		t.Fatalf("UpdateDefaultTemplate() error: %v", err)
	}

	tpl, err := GetDefaultTemplate(gdb)
	if err != nil {
		t.Fatalf("GetDefaultTemplate() error: %v", err)
	}
	if tpl.Title != "New Title" || tpl.Color != 42 {
		t.Errorf("default template not updated: %+v", tpl)
	}
	if !tpl.IsDefault {
		t.Error("update must not clear the default flag")
	}
}
