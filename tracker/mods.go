package tracker

import (
	"errors"
	"fmt"

	"curseforge-mod-tracker/curseforge"
	"curseforge-mod-tracker/db"
	"curseforge-mod-tracker/errs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AddMod starts tracking a CurseForge mod. The mod's metadata and game name
// are fetched from the API, and the duplicate check runs before any HTTP
// call or mutation.
func (t *Tracker) AddMod(curseforgeID int64) (*db.ModWithWebhooks, error) {
	var count int64
	if err := t.db.Model(&db.Mod{}).Where("curseforge_id = ?", curseforgeID).Count(&count).Error; err != nil {
		return nil, errs.Wrap(errs.Database, err, "failed to check for existing mod")
	}
	if count > 0 {
		return nil, errs.New(errs.Validation, "a mod with this CurseForge ID is already tracked")
	}

	if err := t.requireAPI(); err != nil {
		return nil, err
	}

	cfMod, err := t.cf.GetMod(curseforgeID)
	if err != nil {
		if curseforge.IsNotFound(err) {
			return nil, errs.New(errs.UpstreamAPI, "mod not found on CurseForge")
		}
		return nil, errs.Wrap(errs.UpstreamAPI, err, "failed to fetch mod from CurseForge")
	}

	gameName, err := t.cf.GetGameName(cfMod.GameID)
	if err != nil {
		return nil, errs.Wrap(errs.UpstreamAPI, err, "failed to fetch game details")
	}

	mod := db.Mod{
		CurseforgeID: curseforgeID,
		Name:         cfMod.Name,
		GameName:     gameName,
		LastUpdated:  cfMod.DateReleased,
		PageURL:      cfMod.Links.WebsiteURL,
	}
	if err := t.db.Create(&mod).Error; err != nil {
		return nil, errs.Wrap(errs.Database, err, "failed to save mod")
	}

	t.log.Infow("Tracking new mod",
		zap.String("name", mod.Name),
		zap.String("game", gameName),
		zap.Int64("curseforge_id", curseforgeID),
	)

	modID := mod.ID
	err = t.addActivity(t.db, "mod_added", &modID, mod.Name,
		fmt.Sprintf("Added mod %q", mod.Name),
		map[string]interface{}{
			"game":                 gameName,
			"curseforge_id":        curseforgeID,
			"initial_version_date": mod.LastUpdated,
			"page_url":             mod.PageURL,
		})
	if err != nil {
		return nil, err
	}

	return &db.ModWithWebhooks{Mod: mod, WebhookIDs: []uint{}}, nil
}

// Mods lists every tracked mod with its webhook assignments.
func (t *Tracker) Mods() ([]db.ModWithWebhooks, error) {
	mods, err := db.GetAllMods(t.db)
	if err != nil {
		return nil, errs.Wrap(errs.Database, err, "failed to list mods")
	}
	return mods, nil
}

// DeleteMod removes a mod, its webhook assignments and its activity
// references (the rows stay, with a nulled mod id), and records the removal,
// all in one transaction.
func (t *Tracker) DeleteMod(modID uint) error {
	err := t.db.Transaction(func(tx *gorm.DB) error {
		var mod db.Mod
		if err := tx.First(&mod, modID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.New(errs.Validation, "mod not found")
			}
			return errs.Wrap(errs.Database, err, "failed to load mod")
		}

		if err := db.DeleteMod(tx, modID); err != nil {
			return errs.Wrap(errs.Database, err, "failed to delete mod")
		}

		return t.addActivity(tx, "mod_removed", nil, mod.Name,
			fmt.Sprintf("Removed mod %q", mod.Name),
			map[string]interface{}{
				"game":           mod.GameName,
				"deleted_mod_id": modID,
			})
	})
	if err != nil {
		return err
	}

	t.log.Infow("Deleted mod", zap.Uint("mod_id", modID))
	return nil
}

// AssignWebhook links a webhook to a mod. Re-assigning an existing pair is a
// no-op.
func (t *Tracker) AssignWebhook(modID, webhookID uint) error {
	mod, webhook, err := t.loadModAndWebhook(modID, webhookID)
	if err != nil {
		return err
	}

	if err := db.AssignWebhook(t.db, modID, webhookID); err != nil {
		return errs.Wrap(errs.Database, err, "failed to assign webhook")
	}

	return t.addActivity(t.db, "webhook_assigned", &modID, mod.Name,
		fmt.Sprintf("Assigned webhook %q to mod %q", webhook.Name, mod.Name),
		map[string]interface{}{
			"webhook_id":   webhookID,
			"webhook_name": webhook.Name,
		})
}

// UnassignWebhook removes the link between a mod and a webhook, if present.
func (t *Tracker) UnassignWebhook(modID, webhookID uint) error {
	mod, webhook, err := t.loadModAndWebhook(modID, webhookID)
	if err != nil {
		return err
	}

	if err := db.UnassignWebhook(t.db, modID, webhookID); err != nil {
		return errs.Wrap(errs.Database, err, "failed to remove webhook assignment")
	}

	return t.addActivity(t.db, "webhook_unassigned", &modID, mod.Name,
		fmt.Sprintf("Removed webhook %q from mod %q", webhook.Name, mod.Name),
		map[string]interface{}{
			"webhook_id":   webhookID,
			"webhook_name": webhook.Name,
		})
}

// ModWebhooks lists the webhooks assigned to a mod.
func (t *Tracker) ModWebhooks(modID uint) ([]db.Webhook, error) {
	webhooks, err := db.GetModWebhooks(t.db, modID)
	if err != nil {
		return nil, errs.Wrap(errs.Database, err, "failed to list assigned webhooks")
	}
	return webhooks, nil
}

func (t *Tracker) loadModAndWebhook(modID, webhookID uint) (db.Mod, db.Webhook, error) {
	var mod db.Mod
	if err := t.db.First(&mod, modID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return mod, db.Webhook{}, errs.New(errs.Validation, "mod not found")
		}
		return mod, db.Webhook{}, errs.Wrap(errs.Database, err, "failed to load mod")
	}

	var webhook db.Webhook
	if err := t.db.First(&webhook, webhookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return mod, webhook, errs.New(errs.Validation, "webhook not found")
		}
		return mod, webhook, errs.Wrap(errs.Database, err, "failed to load webhook")
	}

	return mod, webhook, nil
}
