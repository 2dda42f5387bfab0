package db

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Defaults applied by Seed and used as fallbacks when a settings row is
// missing or unparsable.
const (
	DefaultTemplateTitle  = "🔄 Mod Update Available!"
	DefaultTemplateColor  = 5814783
	DefaultUpdateInterval = 30 // minutes
)

// DefaultEmbedFields is the embed-fields JSON for the system-wide default template.
const DefaultEmbedFields = `[{"name":"Mod Name","value":"{modName}","inline":true},{"name":"Author","value":"{modAuthorName}","inline":true},{"name":"Previous Release","value":"{oldPreviousDate}","inline":false},{"name":"New Release","value":"{newReleaseDate}","inline":false},{"name":"Latest File","value":"{lastestModFileName}","inline":false}]`

// Seed runs the explicit initialization step: it creates the default
// notification template and the default settings rows if they are missing.
// It is idempotent, and it fails if the singleton invariant (exactly one
// default template) is already violated.
func Seed(gdb *gorm.DB) error {
	var defaults int64
	if err := gdb.Model(&WebhookTemplate{}).Where("is_default = ?", true).Count(&defaults).Error; err != nil {
		return err
	}
	switch {
	case defaults > 1:
		return fmt.Errorf("expected exactly one default webhook template, found %d", defaults)
	case defaults == 0:
		tpl := WebhookTemplate{
			IsDefault:   true,
			Title:       DefaultTemplateTitle,
			Color:       DefaultTemplateColor,
			UseEmbed:    true,
			EmbedFields: DefaultEmbedFields,
		}
		if err := gdb.Create(&tpl).Error; err != nil {
			return err
		}
	}

	return seedSettings(gdb)
}

func seedSettings(gdb *gorm.DB) error {
	interval := fmt.Sprintf("%d", DefaultUpdateInterval)
	boolTrue := "true"

	seeds := []Setting{
		{Key: SettingAPIKey, Value: nil},
		{Key: SettingUpdateInterval, Value: &interval},
		{Key: SettingShowQuickStart, Value: &boolTrue},
		{Key: SettingMinimizeToTray, Value: &boolTrue},
		{Key: SettingCloseToTray, Value: &boolTrue},
	}

	for _, s := range seeds {
		if err := gdb.Clauses(clause.OnConflict{DoNothing: true}).Create(&s).Error; err != nil {
			return err
		}
	}
	return nil
}
