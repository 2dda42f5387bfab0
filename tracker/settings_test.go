package tracker

import (
	"testing"

	"curseforge-mod-tracker/db"
	"curseforge-mod-tracker/errs"
)

func TestSetUpdateInterval(t *testing.T) {
	tr, _ := newTestTracker(t, nil)

	if err := tr.SetUpdateInterval(0); !errs.IsKind(err, errs.Validation) {
		t.Errorf("expected a validation error for a zero interval, got %v", err)
	}
	if err := tr.SetUpdateInterval(-3); !errs.IsKind(err, errs.Validation) {
		t.Errorf("expected a validation error for a negative interval, got %v", err)
	}

	if err := tr.SetUpdateInterval(45); err != nil {
		t.Fatalf("SetUpdateInterval() error: %v", err)
	}
	interval, err := tr.UpdateInterval()
	if err != nil {
		t.Fatalf("UpdateInterval() error: %v", err)
	}
	if interval != 45 {
		t.Errorf("interval = %d, want 45", interval)
	}
}

func TestSetAPIKeyEnablesAPI(t *testing.T) {
	tr, _ := newTestTracker(t, nil)

	// No key yet: API operations are rejected up front
	if _, err := tr.AddMod(238222); !errs.IsKind(err, errs.Validation) {
		t.Fatalf("expected a validation error without a key, got %v", err)
	}

	if err := tr.SetAPIKey("new-key", "curseforge-mod-tracker/test (tester)"); err != nil {
		t.Fatalf("SetAPIKey() error: %v", err)
	}
	key, err := tr.APIKey()
	if err != nil {
		t.Fatalf("APIKey() error: %v", err)
	}
	if key != "new-key" {
		t.Errorf("stored key = %q", key)
	}
	if tr.cf == nil {
		t.Error("SetAPIKey() should construct an API client")
	}

	// Clearing the key disables the client again
	if err := tr.SetAPIKey("", "curseforge-mod-tracker/test (tester)"); err != nil {
		t.Fatalf("SetAPIKey(\"\") error: %v", err)
	}
	if tr.cf != nil {
		t.Error("clearing the key should drop the API client")
	}
}

func TestBoolSettingRoundTrip(t *testing.T) {
	tr, _ := newTestTracker(t, nil)

	if err := tr.SetBoolSetting(db.SettingCloseToTray, false); err != nil {
		t.Fatalf("SetBoolSetting() error: %v", err)
	}
	value, err := tr.BoolSetting(db.SettingCloseToTray, true)
	if err != nil {
		t.Fatalf("BoolSetting() error: %v", err)
	}
	if value {
		t.Error("expected false after storing false")
	}
}
