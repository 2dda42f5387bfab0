package tracker

import (
	"curseforge-mod-tracker/db"
	"curseforge-mod-tracker/errs"
)

// Activities returns the most recent activity entries, newest first. A limit
// of zero or less returns up to the retention cap.
func (t *Tracker) Activities(limit int) ([]db.Activity, error) {
	activities, err := db.GetRecentActivities(t.db, limit)
	if err != nil {
		return nil, errs.Wrap(errs.Database, err, "failed to list activities")
	}
	return activities, nil
}

// ClearActivities deletes the whole activity log.
func (t *Tracker) ClearActivities() error {
	if err := db.ClearActivities(t.db); err != nil {
		return errs.Wrap(errs.Database, err, "failed to clear activities")
	}
	return nil
}
