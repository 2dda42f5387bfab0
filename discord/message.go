package discord

import (
	"encoding/json"
	"fmt"
)

// Message is the wire body POSTed to a Discord incoming webhook.
type Message struct {
	Username  string  `json:"username"`
	AvatarURL string  `json:"avatar_url,omitempty"`
	Content   string  `json:"content,omitempty"`
	Embeds    []Embed `json:"embeds,omitempty"`
}

// Embed is a rich message block.
type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
	Author      *EmbedAuthor `json:"author,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
}

// EmbedField is a single name/value pair inside an embed.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// EmbedAuthor is the optional author block of an embed.
type EmbedAuthor struct {
	Name    string `json:"name"`
	IconURL string `json:"icon_url,omitempty"`
}

// EmbedFooter is the optional footer block of an embed.
type EmbedFooter struct {
	Text    string `json:"text,omitempty"`
	IconURL string `json:"icon_url,omitempty"`
}

// ParseEmbedFields decodes and validates the stored embed-fields JSON.
// Every element must be an object carrying a string name, a string value and
// a boolean inline flag.
func ParseEmbedFields(fieldsJSON string) ([]EmbedField, error) {
	var raw []struct {
		Name   *string `json:"name"`
		Value  *string `json:"value"`
		Inline *bool   `json:"inline"`
	}
	if err := json.Unmarshal([]byte(fieldsJSON), &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	fields := make([]EmbedField, 0, len(raw))
	for i, f := range raw {
		if f.Name == nil {
			return nil, fmt.Errorf("field %d missing 'name' property", i)
		}
		if f.Value == nil {
			return nil, fmt.Errorf("field %d missing 'value' property", i)
		}
		if f.Inline == nil {
			return nil, fmt.Errorf("field %d missing 'inline' property", i)
		}
		fields = append(fields, EmbedField{Name: *f.Name, Value: *f.Value, Inline: *f.Inline})
	}
	return fields, nil
}
