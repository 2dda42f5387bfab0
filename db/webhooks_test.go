package db

import (
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"
)

func createWebhook(t *testing.T, gdb *gorm.DB, name string) Webhook {
	t.Helper()
	webhook := Webhook{Name: name, URL: "https://discord.com/api/webhooks/1/token", Enabled: true}
	if err := gdb.Create(&webhook).Error; err != nil {
		t.Fatalf("failed to create webhook %q: %v", name, err)
	}
	return webhook
}

func createMod(t *testing.T, gdb *gorm.DB, curseforgeID int64, name string) Mod {
	t.Helper()
	mod := Mod{CurseforgeID: curseforgeID, Name: name, GameName: "Minecraft", LastUpdated: "2024-11-01T14:42:00Z"}
	if err := gdb.Create(&mod).Error; err != nil {
		t.Fatalf("failed to create mod %q: %v", name, err)
	}
	return mod
}

func TestWebhookNameTaken(t *testing.T) {
	gdb := openTestDB(t)
	webhook := createWebhook(t, gdb, "Main Channel")

	tests := []struct {
		name      string
		lookup    string
		excludeID uint
		expected  bool
	}{
		{"exact match", "Main Channel", 0, true},
		{"case-insensitive match", "main channel", 0, true},
		{"upper case match", "MAIN CHANNEL", 0, true},
		{"different name", "Other Channel", 0, false},
		{"excluded id", "Main Channel", webhook.ID, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			taken, err := WebhookNameTaken(gdb, tt.lookup, tt.excludeID)
			if err != nil {
				t.Fatalf("WebhookNameTaken() error: %v", err)
			}
			if taken != tt.expected {
				t.Errorf("WebhookNameTaken(%q, %d) = %v, want %v", tt.lookup, tt.excludeID, taken, tt.expected)
			}
		})
	}
}

func TestAssignAndUnassignWebhook(t *testing.T) {
	gdb := openTestDB(t)
	mod := createMod(t, gdb, 238222, "Just Enough Items")
	webhook := createWebhook(t, gdb, "Main Channel")

	if err := AssignWebhook(gdb, mod.ID, webhook.ID); err != nil {
		t.Fatalf("AssignWebhook() error: %v", err)
	}
	// Re-assigning the same pair is a no-op
	if err := AssignWebhook(gdb, mod.ID, webhook.ID); err != nil {
		t.Fatalf("AssignWebhook() second call error: %v", err)
	}

	var count int64
	if err := gdb.Model(&ModWebhookAssignment{}).Count(&count).Error; err != nil {
		t.Fatalf("count error: %v", err)
	}
	if count != 1 {
		t.Errorf("assignment count = %d, want 1", count)
	}

	webhooks, err := GetModWebhooks(gdb, mod.ID)
	if err != nil {
		t.Fatalf("GetModWebhooks() error: %v", err)
	}
	if len(webhooks) != 1 || webhooks[0].ID != webhook.ID {
		t.Errorf("GetModWebhooks() = %+v", webhooks)
	}

	if err := UnassignWebhook(gdb, mod.ID, webhook.ID); err != nil {
		t.Fatalf("UnassignWebhook() error: %v", err)
	}
	webhooks, err = GetModWebhooks(gdb, mod.ID)
	if err != nil {
		t.Fatalf("GetModWebhooks() error: %v", err)
	}
	if len(webhooks) != 0 {
		t.Errorf("expected no assignments after unassign, got %d", len(webhooks))
	}
}

func TestDeleteWebhookCascades(t *testing.T) {
	gdb := openTestDB(t)
	mod := createMod(t, gdb, 238222, "Just Enough Items")
	webhook := createWebhook(t, gdb, "Main Channel")

	if err := AssignWebhook(gdb, mod.ID, webhook.ID); err != nil {
		t.Fatalf("AssignWebhook() error: %v", err)
	}
	if err := UpsertCustomTemplate(gdb, webhook.ID, WebhookTemplate{Title: "custom", UseEmbed: true, EmbedFields: "[]"}); err != nil {
		t.Fatalf("UpsertCustomTemplate() error: %v", err)
	}

	if err := DeleteWebhook(gdb, webhook.ID); err != nil {
		t.Fatalf("DeleteWebhook() error: %v", err)
	}

	var webhooks int64
	if err := gdb.Unscoped().Model(&Webhook{}).Count(&webhooks).Error; err != nil {
		t.Fatalf("count error: %v", err)
	}
	if webhooks != 0 {
		t.Errorf("webhook row survived deletion")
	}

	var assignments int64
	if err := gdb.Model(&ModWebhookAssignment{}).Count(&assignments).Error; err != nil {
		t.Fatalf("count error: %v", err)
	}
	if assignments != 0 {
		t.Errorf("assignment row survived webhook deletion")
	}

	var custom int64
	if err := gdb.Unscoped().Model(&WebhookTemplate{}).Where("is_default = ?", false).Count(&custom).Error; err != nil {
		t.Fatalf("count error: %v", err)
	}
	if custom != 0 {
		t.Errorf("custom template survived webhook deletion")
	}
}

func TestDeleteWebhookRollsBackOnFailure(t *testing.T) {
	gdb := openTestDB(t)
	mod := createMod(t, gdb, 238222, "Just Enough Items")
	webhook := createWebhook(t, gdb, "Main Channel")

	if err := AssignWebhook(gdb, mod.ID, webhook.ID); err != nil {
		t.Fatalf("AssignWebhook() error: %v", err)
	}
	if err := UpsertCustomTemplate(gdb, webhook.ID, WebhookTemplate{Title: "custom", UseEmbed: true, EmbedFields: "[]"}); err != nil {
		t.Fatalf("UpsertCustomTemplate() error: %v", err)
	}

	failure := errors.New("audit write failed")
	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := DeleteWebhook(tx, webhook.ID); err != nil {
			t.Fatalf("DeleteWebhook() error inside transaction: %v", err)
		}
		return failure
	})
	if !errors.Is(err, failure) {
		t.Fatalf("Transaction() error = %v, want %v", err, failure)
	}

	var kept Webhook
	if err := gdb.First(&kept, webhook.ID).Error; err != nil {
		t.Errorf("webhook row should survive a rolled-back deletion: %v", err)
	}

	var assignments int64
	if err := gdb.Model(&ModWebhookAssignment{}).Count(&assignments).Error; err != nil {
		t.Fatalf("count error: %v", err)
	}
	if assignments != 1 {
		t.Errorf("assignment count after rollback = %d, want 1", assignments)
	}

	var custom int64
	if err := gdb.Model(&WebhookTemplate{}).Where("is_default = ?", false).Count(&custom).Error; err != nil {
		t.Fatalf("count error: %v", err)
	}
	if custom != 1 {
		t.Errorf("custom template count after rollback = %d, want 1", custom)
	}
}

func TestDeleteModRollsBackOnFailure(t *testing.T) {
	gdb := openTestDB(t)
	mod := createMod(t, gdb, 238222, "Just Enough Items")
	webhook := createWebhook(t, gdb, "Main Channel")

	if err := AssignWebhook(gdb, mod.ID, webhook.ID); err != nil {
		t.Fatalf("AssignWebhook() error: %v", err)
	}
	modID := mod.ID
	activity := Activity{Kind: "mod_added", ModID: &modID, ModName: mod.Name, Timestamp: time.Now()}
	if err := AddActivity(gdb, &activity); err != nil {
		t.Fatalf("AddActivity() error: %v", err)
	}

	failure := errors.New("audit write failed")
	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := DeleteMod(tx, mod.ID); err != nil {
			t.Fatalf("DeleteMod() error inside transaction: %v", err)
		}
		return failure
	})
	if !errors.Is(err, failure) {
		t.Fatalf("Transaction() error = %v, want %v", err, failure)
	}

	var kept Mod
	if err := gdb.First(&kept, mod.ID).Error; err != nil {
		t.Errorf("mod row should survive a rolled-back deletion: %v", err)
	}

	var assignments int64
	if err := gdb.Model(&ModWebhookAssignment{}).Count(&assignments).Error; err != nil {
		t.Fatalf("count error: %v", err)
	}
	if assignments != 1 {
		t.Errorf("assignment count after rollback = %d, want 1", assignments)
	}

	var keptActivity Activity
	if err := gdb.First(&keptActivity, activity.ID).Error; err != nil {
		t.Fatalf("activity lookup error: %v", err)
	}
	if keptActivity.ModID == nil || *keptActivity.ModID != mod.ID {
		t.Errorf("activity mod reference should be untouched after rollback, got %v", keptActivity.ModID)
	}
}

func TestDeleteModNullsActivityReferences(t *testing.T) {
	gdb := openTestDB(t)
	mod := createMod(t, gdb, 238222, "Just Enough Items")
	webhook := createWebhook(t, gdb, "Main Channel")

	if err := AssignWebhook(gdb, mod.ID, webhook.ID); err != nil {
		t.Fatalf("AssignWebhook() error: %v", err)
	}
	modID := mod.ID
	activity := Activity{Kind: "mod_added", ModID: &modID, ModName: mod.Name, Timestamp: time.Now()}
	if err := AddActivity(gdb, &activity); err != nil {
		t.Fatalf("AddActivity() error: %v", err)
	}

	if err := DeleteMod(gdb, mod.ID); err != nil {
		t.Fatalf("DeleteMod() error: %v", err)
	}

	var mods int64
	if err := gdb.Unscoped().Model(&Mod{}).Count(&mods).Error; err != nil {
		t.Fatalf("count error: %v", err)
	}
	if mods != 0 {
		t.Errorf("mod row survived deletion")
	}

	var kept Activity
	if err := gdb.First(&kept, activity.ID).Error; err != nil {
		t.Fatalf("activity row should survive mod deletion: %v", err)
	}
	if kept.ModID != nil {
		t.Errorf("activity mod reference should be nulled, got %v", *kept.ModID)
	}
	if kept.ModName != "Just Enough Items" {
		t.Errorf("activity mod name should be kept, got %q", kept.ModName)
	}
}
