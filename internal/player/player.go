// Package player drives playback on the streaming provider's Web API using
// the bearer token captured by the auth bridge, the same direct calls the
// original front-end issued from the browser.
package player

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/Dw4n7/Playlist/internal/shared"
	"github.com/charmbracelet/log"
)

const defaultBaseURL = "https://api.spotify.com/v1"

// TokenFunc returns the current access token from durable storage. An empty
// token means the streaming account has not been linked.
type TokenFunc func() (string, error)

// Device is a playback device registered with the provider.
type Device struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Active bool   `json:"is_active"`
}

// Track is the subset of track metadata the player surfaces.
type Track struct {
	Name    string `json:"name"`
	URI     string `json:"uri"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
}

// State is the provider's current playback state.
type State struct {
	IsPlaying  bool   `json:"is_playing"`
	ProgressMS int    `json:"progress_ms"`
	Item       *Track `json:"item"`
	Device     Device `json:"device"`
}

// Player holds the connection to a playback device. The tracked device is
// state on the struct rather than a captured local, so Disconnect always
// acts on whatever device the player currently holds.
type Player struct {
	mu         sync.Mutex
	deviceID   string
	baseURL    string
	httpClient *http.Client
	token      TokenFunc
	logger     *log.Logger
}

// New creates a player reading its token through tokenFn. baseURL overrides
// the provider endpoint for tests; pass "" for the real API.
func New(tokenFn TokenFunc, baseURL string, httpClient *http.Client, logger *log.Logger) *Player {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Player{
		baseURL:    baseURL,
		httpClient: httpClient,
		token:      tokenFn,
		logger:     logger,
	}
}

// classifyStatus maps provider HTTP statuses onto the error categories the
// playback SDK reports through its listeners.
func classifyStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized:
		return shared.ErrPlayerAuth
	case status == http.StatusForbidden:
		return shared.ErrPlayerAccount
	case status == http.StatusNotFound:
		return shared.ErrNoDevice
	default:
		return shared.ErrPlayback
	}
}

// doRequest performs an authenticated request against the provider. The
// token is read per call, mirroring the original client reading durable
// storage on every action.
func (p *Player) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	token, err := p.token()
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrPlayerInit, err)
	}
	if token == "" {
		return fmt.Errorf("%w: no streaming token; run `badplay spotify link`", shared.ErrNotAuthenticated)
	}

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrPlayback, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		p.logger.Warnf("player request %s %s returned status %d", method, endpoint, resp.StatusCode)
		return fmt.Errorf("%w: status %d", classifyStatus(resp.StatusCode), resp.StatusCode)
	}

	if result != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: malformed response: %v", shared.ErrPlayback, err)
		}
	}

	return nil
}

// Devices lists the playback devices available to the linked account.
func (p *Player) Devices(ctx context.Context) ([]Device, error) {
	var response struct {
		Devices []Device `json:"devices"`
	}
	if err := p.doRequest(ctx, http.MethodGet, "/me/player/devices", nil, &response); err != nil {
		return nil, err
	}
	return response.Devices, nil
}

// Connect selects the active device, or the first available one, and tracks
// it for subsequent playback calls.
func (p *Player) Connect(ctx context.Context) (Device, error) {
	devices, err := p.Devices(ctx)
	if err != nil {
		return Device{}, err
	}
	if len(devices) == 0 {
		return Device{}, fmt.Errorf("%w: open a player on any device first", shared.ErrNoDevice)
	}

	selected := devices[0]
	for _, d := range devices {
		if d.Active {
			selected = d
			break
		}
	}

	p.mu.Lock()
	p.deviceID = selected.ID
	p.mu.Unlock()

	p.logger.Infof("connected to playback device %s (%s)", selected.Name, selected.Type)
	return selected, nil
}

// Disconnect drops the tracked device. Safe to call when never connected.
func (p *Player) Disconnect() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deviceID = ""
}

// Device returns the tracked device id, if any.
func (p *Player) Device() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.deviceID, p.deviceID != ""
}

// State returns the current playback state, or nil when nothing is playing.
func (p *Player) State(ctx context.Context) (*State, error) {
	var state State
	if err := p.doRequest(ctx, http.MethodGet, "/me/player", nil, &state); err != nil {
		return nil, err
	}
	if state.Device.ID == "" && state.Item == nil {
		return nil, nil
	}
	return &state, nil
}

// Play resumes playback on the tracked device.
func (p *Player) Play(ctx context.Context) error {
	return p.doRequest(ctx, http.MethodPut, "/me/player/play"+p.deviceQuery(), nil, nil)
}

// Pause pauses playback.
func (p *Player) Pause(ctx context.Context) error {
	return p.doRequest(ctx, http.MethodPut, "/me/player/pause"+p.deviceQuery(), nil, nil)
}

// TogglePlay flips between play and pause based on the current state.
// When nothing is playing at all it attempts to start playback.
func (p *Player) TogglePlay(ctx context.Context) error {
	state, err := p.State(ctx)
	if err != nil {
		return err
	}

	if state != nil && state.IsPlaying {
		return p.Pause(ctx)
	}
	return p.Play(ctx)
}

// PlayTrack starts playback of a specific track URI on the tracked device.
func (p *Player) PlayTrack(ctx context.Context, uri string) error {
	if uri == "" {
		return fmt.Errorf("%w: track URI required", shared.ErrInvalidArgument)
	}

	body := struct {
		URIs []string `json:"uris"`
	}{URIs: []string{uri}}

	return p.doRequest(ctx, http.MethodPut, "/me/player/play"+p.deviceQuery(), body, nil)
}

func (p *Player) deviceQuery() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.deviceID == "" {
		return ""
	}
	return "?device_id=" + url.QueryEscape(p.deviceID)
}
