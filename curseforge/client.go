package curseforge

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	curseforgeAPIURL = "https://api.curseforge.com/v1"
	defaultTimeout   = 10 * time.Second
)

// Client handles communication with the CurseForge API.
type Client struct {
	BaseURL    string
	APIKey     string
	UserAgent  string
	HTTPClient *http.Client
}

// NewClient creates a new CurseForge API client. The API key is required for
// every endpoint.
func NewClient(apiKey, userAgent string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("CurseForge API key is not configured")
	}
	if userAgent == "" {
		return nil, fmt.Errorf("USERAGENT is not configured")
	}

	return &Client{
		BaseURL:   curseforgeAPIURL,
		APIKey:    apiKey,
		UserAgent: userAgent,
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}, nil
}

func (c *Client) makeRequest(path string, target interface{}) error {
	req, err := http.NewRequest(http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-key", c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Try to read body for more error info, but don't fail if it's unreadable
		bodyBytes, _ := io.ReadAll(resp.Body)
		return &StatusError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("failed to decode json response: %w", err)
		}
	}

	return nil
}

// StatusError is returned for non-2xx API responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api request failed: status %d, body: %s", e.StatusCode, e.Body)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// GetMod retrieves metadata for a specific mod.
func (c *Client) GetMod(modID int64) (*Mod, error) {
	var resp modResponse
	if err := c.makeRequest(fmt.Sprintf("/mods/%d", modID), &resp); err != nil {
		return nil, fmt.Errorf("failed to get mod %d: %w", modID, err)
	}
	return &resp.Data, nil
}

// GetGameName resolves a numeric game id to its display name.
func (c *Client) GetGameName(gameID int64) (string, error) {
	var resp gameResponse
	if err := c.makeRequest(fmt.Sprintf("/games/%d", gameID), &resp); err != nil {
		return "", fmt.Errorf("failed to get game %d: %w", gameID, err)
	}
	return resp.Data.Name, nil
}

// GetFileChangelog fetches the HTML changelog for a specific file and returns
// it sanitized to plain text.
func (c *Client) GetFileChangelog(modID, fileID int64) (string, error) {
	var resp changelogResponse
	if err := c.makeRequest(fmt.Sprintf("/mods/%d/files/%d/changelog", modID, fileID), &resp); err != nil {
		return "", fmt.Errorf("failed to get changelog for mod %d file %d: %w", modID, fileID, err)
	}
	return SanitizeChangelog(resp.Data), nil
}

// --- Structs for API responses ---

type modResponse struct {
	Data Mod `json:"data"`
}

type gameResponse struct {
	Data Game `json:"data"`
}

type changelogResponse struct {
	Data string `json:"data"`
}

// Mod represents a CurseForge mod.
type Mod struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	DateModified string   `json:"dateModified"`
	DateReleased string   `json:"dateReleased"`
	DateCreated  string   `json:"dateCreated"`
	Authors      []Author `json:"authors"`
	LatestFiles  []File   `json:"latestFiles"`
	GameID       int64    `json:"gameId"`
	Logo         *Logo    `json:"logo"`
	Links        Links    `json:"links"`
	MainFileID   int64    `json:"mainFileId"`
}

// Author represents a mod author.
type Author struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// File represents a file within a mod's latest-files list.
type File struct {
	FileName string `json:"fileName"`
}

// Logo represents a mod's logo asset.
type Logo struct {
	ID           int64  `json:"id"`
	ModID        int64  `json:"modId"`
	ThumbnailURL string `json:"thumbnailUrl"`
	URL          string `json:"url"`
}

// Links holds a mod's external link set.
type Links struct {
	WebsiteURL string `json:"websiteUrl"`
	WikiURL    string `json:"wikiUrl"`
	IssuesURL  string `json:"issuesUrl"`
	SourceURL  string `json:"sourceUrl"`
}

// Game represents a CurseForge game.
type Game struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
