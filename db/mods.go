package db

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ModWithWebhooks pairs a mod with the ids of its assigned webhooks.
type ModWithWebhooks struct {
	Mod
	WebhookIDs []uint
}

// GetAllMods returns every tracked mod with its webhook assignments,
// ordered by game name then mod name.
func GetAllMods(gdb *gorm.DB) ([]ModWithWebhooks, error) {
	var mods []Mod
	if err := gdb.Order("game_name, name").Find(&mods).Error; err != nil {
		return nil, err
	}

	result := make([]ModWithWebhooks, 0, len(mods))
	for _, m := range mods {
		ids, err := assignedWebhookIDs(gdb, m.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, ModWithWebhooks{Mod: m, WebhookIDs: ids})
	}
	return result, nil
}

func assignedWebhookIDs(gdb *gorm.DB, modID uint) ([]uint, error) {
	var ids []uint
	err := gdb.Model(&ModWebhookAssignment{}).
		Where("mod_id = ?", modID).
		Order("webhook_id").
		Pluck("webhook_id", &ids).Error
	return ids, err
}

// AssignWebhook links a webhook to a mod. Assigning an already-assigned pair
// is a no-op.
func AssignWebhook(gdb *gorm.DB, modID, webhookID uint) error {
	assignment := ModWebhookAssignment{ModID: modID, WebhookID: webhookID}
	return gdb.Clauses(clause.OnConflict{DoNothing: true}).Create(&assignment).Error
}

// UnassignWebhook removes the link between a mod and a webhook, if present.
func UnassignWebhook(gdb *gorm.DB, modID, webhookID uint) error {
	return gdb.Where("mod_id = ? AND webhook_id = ?", modID, webhookID).
		Delete(&ModWebhookAssignment{}).Error
}

// DeleteMod removes a mod and its webhook assignments and nulls the mod
// reference on historical activity rows. Callers are expected to run this
// inside a transaction together with the removal activity entry.
func DeleteMod(tx *gorm.DB, modID uint) error {
	if err := tx.Where("mod_id = ?", modID).Delete(&ModWebhookAssignment{}).Error; err != nil {
		return err
	}
	if err := tx.Model(&Activity{}).Where("mod_id = ?", modID).Update("mod_id", nil).Error; err != nil {
		return err
	}
	return tx.Unscoped().Delete(&Mod{}, modID).Error
}
