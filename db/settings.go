package db

import (
	"errors"
	"strconv"

	"gorm.io/gorm"
)

// Settings keys. Rows for every key are seeded at initialization.
const (
	SettingAPIKey         = "api_key"
	SettingUpdateInterval = "update_interval"
	SettingShowQuickStart = "show_quick_start"
	SettingMinimizeToTray = "minimize_to_tray"
	SettingCloseToTray    = "close_to_tray"
)

// GetSetting returns the raw value for key, or nil if the row is absent or NULL.
func GetSetting(gdb *gorm.DB, key string) (*string, error) {
	var s Setting
	err := gdb.First(&s, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.Value, nil
}

// SetSetting upserts the value for key.
func SetSetting(gdb *gorm.DB, key, value string) error {
	res := gdb.Model(&Setting{}).Where("key = ?", key).Update("value", value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gdb.Create(&Setting{Key: key, Value: &value}).Error
	}
	return nil
}

// GetAPIKey returns the stored CurseForge API key, or "" if none is set.
func GetAPIKey(gdb *gorm.DB) (string, error) {
	v, err := GetSetting(gdb, SettingAPIKey)
	if err != nil || v == nil {
		return "", err
	}
	return *v, nil
}

// GetUpdateInterval returns the poll interval in minutes, falling back to the
// default when the row is absent or unparsable.
func GetUpdateInterval(gdb *gorm.DB) (int, error) {
	v, err := GetSetting(gdb, SettingUpdateInterval)
	if err != nil {
		return DefaultUpdateInterval, err
	}
	if v == nil {
		return DefaultUpdateInterval, nil
	}
	n, convErr := strconv.Atoi(*v)
	if convErr != nil || n <= 0 {
		return DefaultUpdateInterval, nil
	}
	return n, nil
}

// GetBoolSetting returns the boolean value for key, falling back to def when
// the row is absent or unparsable.
func GetBoolSetting(gdb *gorm.DB, key string, def bool) (bool, error) {
	v, err := GetSetting(gdb, key)
	if err != nil {
		return def, err
	}
	if v == nil {
		return def, nil
	}
	b, convErr := strconv.ParseBool(*v)
	if convErr != nil {
		return def, nil
	}
	return b, nil
}
