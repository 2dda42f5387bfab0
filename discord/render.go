package discord

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FallbackContent is used when a plain-content template has no body.
const FallbackContent = "🔄 Mod Update Available!"

// defaultUsername is used when a webhook has no display-name override.
const defaultUsername = "Mod Tracker"

// Template is the renderer's view of a stored notification template.
type Template struct {
	Title            string
	Color            int
	Content          string
	UseEmbed         bool
	AuthorName       string
	AuthorIconURL    string
	FooterText       string
	FooterIconURL    string
	IncludeTimestamp bool
	EmbedFields      string // JSON array of {name, value, inline}
}

// UpdateFacts is the fact set a template is rendered against. The release
// dates are expected in display form (see FormatReleaseDate).
type UpdateFacts struct {
	ModID          int64
	ModName        string
	ModAuthor      string
	NewReleaseDate string
	OldReleaseDate string
	LatestFileName string
}

// RenderMessage produces the webhook payload for an update notification.
// Rendering is a pure function of (template, facts, now); a malformed stored
// embed-fields list aborts the render.
func RenderMessage(tpl Template, facts UpdateFacts, username, avatarURL string, now time.Time) (*Message, error) {
	msg := &Message{
		Username: defaultUsername,
	}
	if strings.TrimSpace(username) != "" {
		msg.Username = username
	}
	if strings.TrimSpace(avatarURL) != "" {
		msg.AvatarURL = avatarURL
	}

	if !tpl.UseEmbed {
		content := tpl.Content
		if content == "" {
			content = FallbackContent
		}
		msg.Content = Substitute(content, facts)
		return msg, nil
	}

	fields, err := ParseEmbedFields(tpl.EmbedFields)
	if err != nil {
		return nil, fmt.Errorf("invalid embed fields: %w", err)
	}
	for i := range fields {
		fields[i].Name = Substitute(fields[i].Name, facts)
		fields[i].Value = Substitute(fields[i].Value, facts)
	}

	embed := Embed{
		Title:  Substitute(tpl.Title, facts),
		Color:  tpl.Color,
		Fields: fields,
	}

	if strings.TrimSpace(tpl.AuthorName) != "" {
		author := &EmbedAuthor{Name: Substitute(tpl.AuthorName, facts)}
		if strings.TrimSpace(tpl.AuthorIconURL) != "" {
			author.IconURL = Substitute(tpl.AuthorIconURL, facts)
		}
		embed.Author = author
	}

	hasFooterText := strings.TrimSpace(tpl.FooterText) != ""
	hasFooterIcon := strings.TrimSpace(tpl.FooterIconURL) != ""
	if hasFooterText || hasFooterIcon || tpl.IncludeTimestamp {
		footer := &EmbedFooter{}
		if hasFooterText {
			footer.Text = Substitute(tpl.FooterText, facts)
		}
		if hasFooterIcon {
			footer.IconURL = Substitute(tpl.FooterIconURL, facts)
		}
		embed.Footer = footer
	}

	if tpl.IncludeTimestamp {
		embed.Timestamp = now.UTC().Format(time.RFC3339)
	}

	msg.Embeds = []Embed{embed}
	return msg, nil
}

// Substitute rewrites placeholder tokens in a templated string. It is a
// single pass over the text: each {token} is resolved against the fact set or
// the mention grammars, unknown tokens are emitted verbatim, and an
// unterminated brace ends scanning with the remainder copied through.
func Substitute(text string, facts UpdateFacts) string {
	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(text); {
		if text[i] != '{' {
			next := strings.IndexByte(text[i:], '{')
			if next < 0 {
				b.WriteString(text[i:])
				break
			}
			b.WriteString(text[i : i+next])
			i += next
			continue
		}

		end := strings.IndexByte(text[i:], '}')
		if end < 0 {
			// Unterminated brace: the rest is literal
			b.WriteString(text[i:])
			break
		}

		token := text[i+1 : i+end]
		if replacement, ok := resolveToken(token, facts); ok {
			b.WriteString(replacement)
		} else {
			b.WriteString(text[i : i+end+1])
		}
		i += end + 1
	}

	return b.String()
}

// resolveToken maps a placeholder token (without braces) to its value.
// The token spellings match the stored-template wire format.
func resolveToken(token string, facts UpdateFacts) (string, bool) {
	switch token {
	case "modID":
		return strconv.FormatInt(facts.ModID, 10), true
	case "modName":
		return facts.ModName, true
	case "modAuthorName":
		return facts.ModAuthor, true
	case "newReleaseDate":
		return facts.NewReleaseDate, true
	case "oldPreviousDate":
		return facts.OldReleaseDate, true
	case "lastestModFileName":
		return facts.LatestFileName, true
	case "everyone":
		return "@everyone", true
	case "here":
		return "@here", true
	}

	// Role ({&id}) and channel ({#id}) mentions require a numeric id
	if len(token) > 1 && (token[0] == '&' || token[0] == '#') {
		id, err := strconv.ParseUint(token[1:], 10, 64)
		if err != nil {
			return "", false
		}
		if token[0] == '&' {
			return fmt.Sprintf("<@&%d>", id), true
		}
		return fmt.Sprintf("<#%d>", id), true
	}

	return "", false
}

// FormatReleaseDate renders an RFC 3339 timestamp as a human-readable UTC
// date like "1st November 2024 at 14:42 UTC". Unparsable input is returned
// unchanged.
func FormatReleaseDate(dateStr string) string {
	t, err := time.Parse(time.RFC3339, dateStr)
	if err != nil {
		return dateStr
	}
	t = t.UTC()
	return fmt.Sprintf("%d%s %s %d at %02d:%02d UTC",
		t.Day(), ordinalSuffix(t.Day()), t.Month(), t.Year(), t.Hour(), t.Minute())
}

func ordinalSuffix(day int) string {
	if day%100 >= 11 && day%100 <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
