package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"github.com/Dw4n7/Playlist/internal/models"
	"github.com/Dw4n7/Playlist/internal/shared"
	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "http://127.0.0.1:8000"

// Service defines the backend operations the client exposes. The workspace
// and the CLI runner consume this interface; [*Client] implements it.
type Service interface {
	ListPlaylists(ctx context.Context) ([]models.Playlist, error)
	LikePlaylist(ctx context.Context, id int64) (int, error)
	CreatePlaylist(ctx context.Context, name, genre string) error
	UpdatePlaylist(ctx context.Context, id int64, name, genre string) error
	DeletePlaylist(ctx context.Context, id int64) error
	AddSong(ctx context.Context, playlistID int64, title, artist, duration string) error
	UpdateSong(ctx context.Context, id int64, title, artist, duration string) error
	DeleteSong(ctx context.Context, id int64) error
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	ExchangeSpotifyCode(ctx context.Context, code string) (string, error)
}

var _ Service = (*Client)(nil)

// Client is an HTTP client for the playlist backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// New creates a backend client. When httpClient is nil a client with an
// in-memory cookie jar is used; callers that want the session cookie to
// survive restarts pass a client backed by a persistent jar.
func New(baseURL string, httpClient *http.Client, rateLimit float64, logger *log.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		jar, _ := cookiejar.New(nil)
		httpClient = &http.Client{Jar: jar}
	}
	if rateLimit <= 0 {
		rateLimit = 10
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(rateLimit), 1),
		logger:     logger,
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do issues the request through the shared client after waiting on the rate
// limiter, and collapses transport failures into a single wrapped error.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return resp, nil
}

// doForm sends a multipart form body and discards any response payload.
func (c *Client) doForm(ctx context.Context, method, path string, fields map[string]string) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			return fmt.Errorf("failed to encode form field %s: %w", key, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize form body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return c.checkStatus(method, path, resp.StatusCode)
}

// doJSON sends an optional JSON body and decodes an optional JSON result.
func (c *Client) doJSON(ctx context.Context, method, path string, body, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(method, path, resp.StatusCode); err != nil {
		io.Copy(io.Discard, resp.Body)
		return err
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: malformed response: %v", shared.ErrAPIRequest, err)
		}
	}

	return nil
}

func (c *Client) checkStatus(method, path string, status int) error {
	if status >= 200 && status < 300 {
		return nil
	}

	c.logger.Warnf("%s %s returned status %d", method, path, status)
	return fmt.Errorf("%w: %s %s: status %d", shared.ErrAPIRequest, method, path, status)
}

// ListPlaylists fetches the full playlist collection with nested songs.
//
// This is the fetch-all the workspace runs on entry and after every
// mutating operation except like.
func (c *Client) ListPlaylists(ctx context.Context) ([]models.Playlist, error) {
	var playlists []models.Playlist
	if err := c.doJSON(ctx, http.MethodGet, "/api/playlists/", nil, &playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

// LikePlaylist likes a playlist and returns the server's authoritative like
// count. Whether the backend treats like as a toggle or a monotonic counter
// is its business; the client renders whatever count comes back.
func (c *Client) LikePlaylist(ctx context.Context, id int64) (int, error) {
	var result models.LikeResult
	path := fmt.Sprintf("/api/playlists/%d/like/", id)
	if err := c.doJSON(ctx, http.MethodPost, path, nil, &result); err != nil {
		return 0, err
	}
	return result.Likes, nil
}

// CreatePlaylist creates a playlist from name and genre.
func (c *Client) CreatePlaylist(ctx context.Context, name, genre string) error {
	return c.doForm(ctx, http.MethodPost, "/api/playlists/", map[string]string{
		"name":  name,
		"genre": genre,
	})
}

// UpdatePlaylist replaces a playlist's name and genre.
func (c *Client) UpdatePlaylist(ctx context.Context, id int64, name, genre string) error {
	path := fmt.Sprintf("/api/playlists/%d", id)
	return c.doForm(ctx, http.MethodPut, path, map[string]string{
		"name":  name,
		"genre": genre,
	})
}

// DeletePlaylist deletes a playlist by id.
func (c *Client) DeletePlaylist(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/playlists/%d", id)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return c.checkStatus(http.MethodDelete, path, resp.StatusCode)
}

// AddSong adds a song to an existing playlist.
func (c *Client) AddSong(ctx context.Context, playlistID int64, title, artist, duration string) error {
	return c.doForm(ctx, http.MethodPost, "/api/add-song/", map[string]string{
		"playlistId": fmt.Sprintf("%d", playlistID),
		"title":      title,
		"artist":     artist,
		"duration":   duration,
	})
}

// UpdateSong replaces a song's title, artist and duration. The owning
// playlist link cannot change through this operation.
func (c *Client) UpdateSong(ctx context.Context, id int64, title, artist, duration string) error {
	path := fmt.Sprintf("/api/songs/%d", id)
	return c.doForm(ctx, http.MethodPut, path, map[string]string{
		"title":    title,
		"artist":   artist,
		"duration": duration,
	})
}

// DeleteSong deletes a song by id.
func (c *Client) DeleteSong(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/songs/%d", id)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return c.checkStatus(http.MethodDelete, path, resp.StatusCode)
}

// Login authenticates against the backend and returns the username the
// server acknowledged. The session cookie lands in the client's jar.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	creds := models.Credentials{Username: username, Password: password}

	var result models.LoginResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/login/", creds, &result); err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	return result.Username, nil
}

// Register creates a new account. Field validation (empty or duplicate
// usernames) is entirely the server's responsibility.
func (c *Client) Register(ctx context.Context, username, password string) error {
	creds := models.Credentials{Username: username, Password: password}

	if err := c.doJSON(ctx, http.MethodPost, "/api/register/", creds, nil); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	return nil
}

// Logout invalidates the server-side session.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/logout/", nil, nil)
}

// ExchangeSpotifyCode exchanges an authorization code for an access token
// through the backend's proxy endpoint.
func (c *Client) ExchangeSpotifyCode(ctx context.Context, code string) (string, error) {
	var result models.TokenResult
	path := "/api/spotify/callback?code=" + url.QueryEscape(code)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &result); err != nil {
		return "", err
	}

	if result.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token in response", shared.ErrAuthFailed)
	}

	return result.AccessToken, nil
}
