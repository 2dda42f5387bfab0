package tracker

import (
	"fmt"

	"curseforge-mod-tracker/db"
	"curseforge-mod-tracker/errs"

	"go.uber.org/zap"
)

// ModUpdate describes a detected release-date change for one mod.
type ModUpdate struct {
	ModID          uint
	CurseforgeID   int64
	Name           string
	OldReleaseDate string
	NewReleaseDate string
	Author         string
	LatestFileName string
	LogoURL        string
	Changelog      string
	PageURL        string
}

// CheckModUpdate polls the CurseForge API for one mod and returns the update
// delta, or nil when the stored release date is unchanged. An unchanged date
// writes nothing.
func (t *Tracker) CheckModUpdate(modID uint) (*ModUpdate, error) {
	if err := t.requireAPI(); err != nil {
		return nil, err
	}

	var mod db.Mod
	if err := t.db.First(&mod, modID).Error; err != nil {
		return nil, errs.Wrap(errs.Database, err, "failed to load mod")
	}

	cfMod, err := t.cf.GetMod(mod.CurseforgeID)
	if err != nil {
		return nil, errs.Wrap(errs.UpstreamAPI, err, "failed to fetch mod from CurseForge")
	}

	if cfMod.DateReleased == mod.LastUpdated {
		return nil, nil
	}

	if len(cfMod.LatestFiles) == 0 {
		return nil, errs.Newf(errs.UpstreamAPI, "mod %q has a new release date but no files", mod.Name)
	}

	update := &ModUpdate{
		ModID:          mod.ID,
		CurseforgeID:   mod.CurseforgeID,
		Name:           cfMod.Name,
		OldReleaseDate: mod.LastUpdated,
		NewReleaseDate: cfMod.DateReleased,
		Author:         "Unknown Author",
		LatestFileName: cfMod.LatestFiles[0].FileName,
		PageURL:        cfMod.Links.WebsiteURL,
	}
	if len(cfMod.Authors) > 0 {
		update.Author = cfMod.Authors[0].Name
	}
	if cfMod.Logo != nil {
		update.LogoURL = cfMod.Logo.URL
	}

	// Changelog is best effort: a failed fetch never blocks the update
	if cfMod.MainFileID != 0 {
		changelog, err := t.cf.GetFileChangelog(mod.CurseforgeID, cfMod.MainFileID)
		if err != nil {
			t.log.Warnw("Failed to fetch changelog",
				zap.String("mod", mod.Name),
				zap.Error(err),
			)
		} else {
			update.Changelog = changelog
		}
	}

	updates := map[string]interface{}{
		"last_updated": cfMod.DateReleased,
		"name":         cfMod.Name,
		"page_url":     cfMod.Links.WebsiteURL,
	}
	if err := t.db.Model(&mod).Updates(updates).Error; err != nil {
		return nil, errs.Wrap(errs.Database, err, "failed to persist new release date")
	}

	err = t.addActivity(t.db, "mod_updated", &mod.ID, update.Name,
		fmt.Sprintf("Mod %q released a new file", update.Name),
		map[string]interface{}{
			"old_release_date": update.OldReleaseDate,
			"new_release_date": update.NewReleaseDate,
			"latest_file":      update.LatestFileName,
		})
	if err != nil {
		return nil, err
	}

	t.log.Infow("Detected mod update",
		zap.String("mod", update.Name),
		zap.String("new_release_date", update.NewReleaseDate),
	)

	return update, nil
}

// CheckAllMods polls every tracked mod and returns the detected updates. A
// failure on one mod is logged and does not stop the sweep.
func (t *Tracker) CheckAllMods() ([]ModUpdate, error) {
	if err := t.requireAPI(); err != nil {
		return nil, err
	}

	mods, err := db.GetAllMods(t.db)
	if err != nil {
		return nil, errs.Wrap(errs.Database, err, "failed to list mods")
	}

	var updates []ModUpdate
	for _, mod := range mods {
		update, err := t.CheckModUpdate(mod.ID)
		if err != nil {
			t.log.Errorw("Update check failed",
				zap.String("mod", mod.Name),
				zap.Error(err),
			)
			continue
		}
		if update != nil {
			updates = append(updates, *update)
		}
	}
	return updates, nil
}
