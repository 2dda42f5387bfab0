package tracker

import (
	"strconv"
	"strings"

	"curseforge-mod-tracker/curseforge"
	"curseforge-mod-tracker/db"
	"curseforge-mod-tracker/errs"
)

// APIKey returns the stored CurseForge API key, or "" when unset.
func (t *Tracker) APIKey() (string, error) {
	key, err := db.GetAPIKey(t.db)
	if err != nil {
		return "", errs.Wrap(errs.Database, err, "failed to read API key")
	}
	return key, nil
}

// SetAPIKey stores the CurseForge API key and swaps in a fresh API client so
// the change takes effect immediately.
func (t *Tracker) SetAPIKey(key, userAgent string) error {
	key = strings.TrimSpace(key)
	if err := db.SetSetting(t.db, db.SettingAPIKey, key); err != nil {
		return errs.Wrap(errs.Database, err, "failed to store API key")
	}

	if key == "" {
		t.cf = nil
		return nil
	}
	cf, err := curseforge.NewClient(key, userAgent)
	if err != nil {
		return errs.Wrap(errs.Validation, err, "invalid API key")
	}
	t.cf = cf
	return nil
}

// UpdateInterval returns the polling interval in minutes.
func (t *Tracker) UpdateInterval() (int, error) {
	interval, err := db.GetUpdateInterval(t.db)
	if err != nil {
		return 0, errs.Wrap(errs.Database, err, "failed to read update interval")
	}
	return interval, nil
}

// SetUpdateInterval stores the polling interval. Values below one minute are
// rejected.
func (t *Tracker) SetUpdateInterval(minutes int) error {
	if minutes < 1 {
		return errs.New(errs.Validation, "update interval must be at least 1 minute")
	}
	if err := db.SetSetting(t.db, db.SettingUpdateInterval, strconv.Itoa(minutes)); err != nil {
		return errs.Wrap(errs.Database, err, "failed to store update interval")
	}
	return nil
}

// BoolSetting reads one of the boolean toggles, falling back to its default
// when the row is absent or unparsable.
func (t *Tracker) BoolSetting(key string, def bool) (bool, error) {
	value, err := db.GetBoolSetting(t.db, key, def)
	if err != nil {
		return def, errs.Wrap(errs.Database, err, "failed to read setting")
	}
	return value, nil
}

// SetBoolSetting stores one of the boolean toggles.
func (t *Tracker) SetBoolSetting(key string, value bool) error {
	if err := db.SetSetting(t.db, key, strconv.FormatBool(value)); err != nil {
		return errs.Wrap(errs.Database, err, "failed to store setting")
	}
	return nil
}
