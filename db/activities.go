package db

import (
	"gorm.io/gorm"
)

// MaxActivities caps the activity table; inserting past the cap evicts the
// oldest rows first.
const MaxActivities = 50

// AddActivity appends an audit entry, evicting the oldest rows if the table
// is at capacity so it never exceeds MaxActivities after the insert.
func AddActivity(gdb *gorm.DB, activity *Activity) error {
	var count int64
	if err := gdb.Model(&Activity{}).Count(&count).Error; err != nil {
		return err
	}

	if count >= MaxActivities {
		toDelete := count - MaxActivities + 1
		err := gdb.Unscoped().
			Where("id IN (?)", gdb.Model(&Activity{}).
				Select("id").Order("timestamp ASC").Limit(int(toDelete))).
			Delete(&Activity{}).Error
		if err != nil {
			return err
		}
	}

	return gdb.Create(activity).Error
}

// GetRecentActivities returns up to limit entries, newest first. A limit of
// zero or less means the full cap.
func GetRecentActivities(gdb *gorm.DB, limit int) ([]Activity, error) {
	if limit <= 0 {
		limit = MaxActivities
	}
	var activities []Activity
	err := gdb.Order("timestamp DESC").Limit(limit).Find(&activities).Error
	return activities, err
}

// ClearActivities deletes all audit entries.
func ClearActivities(gdb *gorm.DB) error {
	return gdb.Unscoped().Where("1 = 1").Delete(&Activity{}).Error
}
