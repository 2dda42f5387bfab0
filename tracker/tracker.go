// Package tracker implements the operations exposed to the UI layer: mod and
// webhook CRUD, update checks against the CurseForge API, template
// management, settings and the activity log. Every operation returns typed
// results or an errs kind, and records an Activity entry for auditable
// events.
package tracker

import (
	"encoding/json"
	"time"

	"curseforge-mod-tracker/curseforge"
	"curseforge-mod-tracker/db"
	"curseforge-mod-tracker/discord"
	"curseforge-mod-tracker/errs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Tracker holds the collaborators every operation needs. The database handle
// is injected explicitly; there is no ambient application state.
type Tracker struct {
	db   *gorm.DB
	cf   *curseforge.Client
	hook *discord.Client
	log  *zap.SugaredLogger
}

// New creates a Tracker. cf may be nil when no API key is configured, in
// which case operations that reach the CurseForge API fail with a Validation
// error.
func New(gdb *gorm.DB, cf *curseforge.Client, hook *discord.Client, log *zap.SugaredLogger) *Tracker {
	if hook == nil {
		hook = discord.NewClient()
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Tracker{db: gdb, cf: cf, hook: hook, log: log}
}

func (t *Tracker) requireAPI() error {
	if t.cf == nil {
		return errs.New(errs.Validation, "CurseForge API key is not configured")
	}
	return nil
}

// addActivity appends an audit entry through the given handle (which may be
// a transaction).
func (t *Tracker) addActivity(tx *gorm.DB, kind string, modID *uint, modName, description string, metadata map[string]interface{}) error {
	var meta string
	if metadata != nil {
		raw, err := json.Marshal(metadata)
		if err != nil {
			return errs.Wrap(errs.Database, err, "failed to encode activity metadata")
		}
		meta = string(raw)
	}

	activity := db.Activity{
		Kind:        kind,
		ModID:       modID,
		ModName:     modName,
		Description: description,
		Timestamp:   time.Now().UTC(),
		Metadata:    meta,
	}
	if err := db.AddActivity(tx, &activity); err != nil {
		return errs.Wrap(errs.Database, err, "failed to log activity")
	}
	return nil
}
