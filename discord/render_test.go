package discord

import (
	"testing"
	"time"
)

var testFacts = UpdateFacts{
	ModID:          238222,
	ModName:        "Just Enough Items",
	ModAuthor:      "mezz",
	NewReleaseDate: "1st November 2024 at 14:42 UTC",
	OldReleaseDate: "29th October 2024 at 09:05 UTC",
	LatestFileName: "jei-1.21.1-19.21.0.246.jar",
}

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"mod name", "Update for {modName}!", "Update for Just Enough Items!"},
		{"mod id", "id={modID}", "id=238222"},
		{"author", "by {modAuthorName}", "by mezz"},
		{"new date", "{newReleaseDate}", "1st November 2024 at 14:42 UTC"},
		{"old date", "{oldPreviousDate}", "29th October 2024 at 09:05 UTC"},
		{"file name", "{lastestModFileName}", "jei-1.21.1-19.21.0.246.jar"},
		{"everyone", "{everyone} update!", "@everyone update!"},
		{"here", "ping {here}", "ping @here"},
		{"role mention", "{&123456789}", "<@&123456789>"},
		{"channel mention", "see {#987654321}", "see <#987654321>"},
		{"malformed role id kept verbatim", "{&notanumber}", "{&notanumber}"},
		{"malformed channel id kept verbatim", "{#12a34}", "{#12a34}"},
		{"unknown token kept verbatim", "{bogus}", "{bogus}"},
		{"unterminated brace stops scan", "before {modName after", "before {modName after"},
		{"empty braces kept verbatim", "{}", "{}"},
		{"multiple tokens", "{modName} by {modAuthorName}", "Just Enough Items by mezz"},
		{"no tokens", "plain text", "plain text"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Substitute(tt.input, testFacts)
			if result != tt.expected {
				t.Errorf("Substitute(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSubstituteSinglePass(t *testing.T) {
	// A substituted value containing braces must not be re-expanded
	facts := UpdateFacts{ModName: "{modAuthorName}", ModAuthor: "mezz"}
	result := Substitute("{modName}", facts)
	if result != "{modAuthorName}" {
		t.Errorf("Substitute() re-expanded substituted value: got %q", result)
	}
}

func TestFormatReleaseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"first of month", "2024-11-01T14:42:00Z", "1st November 2024 at 14:42 UTC"},
		{"second", "2024-11-02T00:00:00Z", "2nd November 2024 at 00:00 UTC"},
		{"third", "2024-11-03T23:59:00Z", "3rd November 2024 at 23:59 UTC"},
		{"fourth", "2024-11-04T10:00:00Z", "4th November 2024 at 10:00 UTC"},
		{"eleventh uses th", "2024-11-11T12:30:00Z", "11th November 2024 at 12:30 UTC"},
		{"twelfth uses th", "2024-11-12T12:30:00Z", "12th November 2024 at 12:30 UTC"},
		{"thirteenth uses th", "2024-11-13T12:30:00Z", "13th November 2024 at 12:30 UTC"},
		{"twenty-first", "2024-11-21T12:30:00Z", "21st November 2024 at 12:30 UTC"},
		{"timezone normalized to UTC", "2024-11-01T15:42:00+01:00", "1st November 2024 at 14:42 UTC"},
		{"fractional seconds", "2024-12-25T08:05:30.123Z", "25th December 2024 at 08:05 UTC"},
		{"unparsable passthrough", "not-a-date", "not-a-date"},
		{"empty passthrough", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatReleaseDate(tt.input)
			if result != tt.expected {
				t.Errorf("FormatReleaseDate(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestRenderMessagePlainContent(t *testing.T) {
	tpl := Template{
		UseEmbed: false,
		Content:  "{modName} updated to {lastestModFileName}",
	}

	msg, err := RenderMessage(tpl, testFacts, "", "", time.Now())
	if err != nil {
		t.Fatalf("RenderMessage() error: %v", err)
	}
	if msg.Content != "Just Enough Items updated to jei-1.21.1-19.21.0.246.jar" {
		t.Errorf("unexpected content: %q", msg.Content)
	}
	if len(msg.Embeds) != 0 {
		t.Errorf("plain-content message should carry no embeds, got %d", len(msg.Embeds))
	}
	if msg.Username != "Mod Tracker" {
		t.Errorf("expected default username, got %q", msg.Username)
	}
}

func TestRenderMessagePlainContentFallback(t *testing.T) {
	msg, err := RenderMessage(Template{UseEmbed: false}, testFacts, "", "", time.Now())
	if err != nil {
		t.Fatalf("RenderMessage() error: %v", err)
	}
	if msg.Content != FallbackContent {
		t.Errorf("expected fallback content %q, got %q", FallbackContent, msg.Content)
	}
}

func TestRenderMessageEmbed(t *testing.T) {
	now := time.Date(2024, 11, 1, 14, 42, 0, 0, time.UTC)
	tpl := Template{
		Title:            "🔄 {modName} updated!",
		Color:            5814783,
		UseEmbed:         true,
		AuthorName:       "{modAuthorName}",
		FooterText:       "Mod Tracker",
		IncludeTimestamp: true,
		EmbedFields:      `[{"name":"New Release","value":"{newReleaseDate}","inline":true}]`,
	}

	msg, err := RenderMessage(tpl, testFacts, "Custom Name", "https://example.com/avatar.png", now)
	if err != nil {
		t.Fatalf("RenderMessage() error: %v", err)
	}

	if msg.Username != "Custom Name" {
		t.Errorf("username = %q, want %q", msg.Username, "Custom Name")
	}
	if msg.AvatarURL != "https://example.com/avatar.png" {
		t.Errorf("avatar url = %q", msg.AvatarURL)
	}
	if len(msg.Embeds) != 1 {
		t.Fatalf("expected 1 embed, got %d", len(msg.Embeds))
	}

	embed := msg.Embeds[0]
	if embed.Title != "🔄 Just Enough Items updated!" {
		t.Errorf("title = %q", embed.Title)
	}
	if embed.Color != 5814783 {
		t.Errorf("color = %d", embed.Color)
	}
	if len(embed.Fields) != 1 || embed.Fields[0].Value != "1st November 2024 at 14:42 UTC" {
		t.Errorf("fields not substituted: %+v", embed.Fields)
	}
	if embed.Author == nil || embed.Author.Name != "mezz" {
		t.Errorf("author not substituted: %+v", embed.Author)
	}
	if embed.Footer == nil || embed.Footer.Text != "Mod Tracker" {
		t.Errorf("footer missing: %+v", embed.Footer)
	}
	if embed.Timestamp != "2024-11-01T14:42:00Z" {
		t.Errorf("timestamp = %q", embed.Timestamp)
	}
}

func TestRenderMessageOmitsEmptyBlocks(t *testing.T) {
	tpl := Template{
		Title:       "Update",
		UseEmbed:    true,
		EmbedFields: `[]`,
	}

	msg, err := RenderMessage(tpl, testFacts, "", "", time.Now())
	if err != nil {
		t.Fatalf("RenderMessage() error: %v", err)
	}
	embed := msg.Embeds[0]
	if embed.Author != nil {
		t.Errorf("expected no author block, got %+v", embed.Author)
	}
	if embed.Footer != nil {
		t.Errorf("expected no footer block, got %+v", embed.Footer)
	}
	if embed.Timestamp != "" {
		t.Errorf("expected no timestamp, got %q", embed.Timestamp)
	}
}

func TestRenderMessageFooterVariants(t *testing.T) {
	t.Run("icon only keeps the footer", func(t *testing.T) {
		tpl := Template{
			UseEmbed:      true,
			FooterIconURL: "https://example.com/icon.png",
			EmbedFields:   `[]`,
		}
		msg, err := RenderMessage(tpl, testFacts, "", "", time.Now())
		if err != nil {
			t.Fatalf("RenderMessage() error: %v", err)
		}
		footer := msg.Embeds[0].Footer
		if footer == nil {
			t.Fatal("footer dropped when only the footer icon is set")
		}
		if footer.IconURL != "https://example.com/icon.png" || footer.Text != "" {
			t.Errorf("footer = %+v", footer)
		}
	})

	t.Run("timestamp flag alone keeps the footer", func(t *testing.T) {
		tpl := Template{
			UseEmbed:         true,
			IncludeTimestamp: true,
			EmbedFields:      `[]`,
		}
		msg, err := RenderMessage(tpl, testFacts, "", "", time.Now())
		if err != nil {
			t.Fatalf("RenderMessage() error: %v", err)
		}
		if msg.Embeds[0].Footer == nil {
			t.Error("footer dropped when only the timestamp flag is set")
		}
		if msg.Embeds[0].Timestamp == "" {
			t.Error("timestamp missing")
		}
	})

	t.Run("text and icon populated independently", func(t *testing.T) {
		tpl := Template{
			UseEmbed:      true,
			FooterText:    "{modName}",
			FooterIconURL: "https://example.com/icon.png",
			EmbedFields:   `[]`,
		}
		msg, err := RenderMessage(tpl, testFacts, "", "", time.Now())
		if err != nil {
			t.Fatalf("RenderMessage() error: %v", err)
		}
		footer := msg.Embeds[0].Footer
		if footer == nil {
			t.Fatal("footer missing")
		}
		if footer.Text != "Just Enough Items" || footer.IconURL != "https://example.com/icon.png" {
			t.Errorf("footer = %+v", footer)
		}
	})
}

func TestRenderMessageMalformedFields(t *testing.T) {
	tpl := Template{
		UseEmbed:    true,
		EmbedFields: `[{"name":"missing value and inline"}]`,
	}

	if _, err := RenderMessage(tpl, testFacts, "", "", time.Now()); err == nil {
		t.Error("RenderMessage() should fail on malformed embed fields")
	}
}
