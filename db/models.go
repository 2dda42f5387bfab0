package db

import (
	"time"

	"gorm.io/gorm"
)

// Mod represents a tracked CurseForge mod in the database
type Mod struct {
	gorm.Model
	CurseforgeID int64  `gorm:"uniqueIndex"` // CurseForge mod ID (unique identifier)
	Name         string // Mod display name
	GameName     string // Name of the game the mod belongs to
	LastUpdated  string // Last known release date, as returned by the API
	PageURL      string // CurseForge website URL
}

// Webhook represents an outbound Discord notification target
type Webhook struct {
	gorm.Model
	Name              string `gorm:"uniqueIndex"` // Unique (case-insensitively, enforced on write)
	URL               string // Discord incoming-webhook URL
	AvatarURL         string // Optional avatar override
	Username          string // Optional display name override
	Enabled           bool
	UseCustomTemplate bool
}

// ModWebhookAssignment links a mod to a webhook. The composite primary key
// guarantees at most one assignment per pair.
type ModWebhookAssignment struct {
	ModID     uint `gorm:"primaryKey;autoIncrement:false"`
	WebhookID uint `gorm:"primaryKey;autoIncrement:false"`
}

// WebhookTemplate describes how an update notification is worded and formatted.
// Exactly one row has IsDefault set; a webhook may additionally own one custom row.
type WebhookTemplate struct {
	gorm.Model
	IsDefault        bool
	WebhookID        *uint `gorm:"uniqueIndex"` // Nil for the default template
	Title            string
	Color            int
	Content          string // Plain message body, used when UseEmbed is false
	UseEmbed         bool
	AuthorName       string
	AuthorIconURL    string
	FooterText       string
	FooterIconURL    string
	IncludeTimestamp bool
	EmbedFields      string // JSON array of {name, value, inline}
}

// Activity is an append-only audit entry. ModID is set to nil (not removed)
// when the referenced mod is deleted, so history survives deletions.
type Activity struct {
	gorm.Model
	Kind        string // "mod_added", "mod_updated", "mod_removed", etc.
	ModID       *uint
	ModName     string // Snapshot of the mod name at the time of the event
	Description string
	Timestamp   time.Time
	Metadata    string // JSON string for additional activity-specific data
}

// Setting is a key-value row seeded at initialization.
type Setting struct {
	Key   string `gorm:"primaryKey"`
	Value *string
}
