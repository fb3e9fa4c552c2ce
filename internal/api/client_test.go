package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dw4n7/Playlist/internal/models"
	"github.com/Dw4n7/Playlist/internal/shared"
)

func TestClient(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		t.Run("With Empty BaseURL Uses Default", func(t *testing.T) {
			c := New("", nil, 0, nil)
			if c.baseURL != defaultBaseURL {
				t.Errorf("expected default base URL, got %s", c.baseURL)
			}
		})

		t.Run("With Nil Client Installs Cookie Jar", func(t *testing.T) {
			c := New("http://example.com", nil, 0, nil)
			if c.httpClient.Jar == nil {
				t.Error("expected a cookie jar on the default client")
			}
		})

		t.Run("With Custom Client Keeps It", func(t *testing.T) {
			custom := &http.Client{}
			c := New("http://example.com", custom, 0, nil)
			if c.httpClient != custom {
				t.Error("expected custom client to be used")
			}
		})
	})

	t.Run("ListPlaylists", func(t *testing.T) {
		t.Run("Decodes Nested Songs", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet || r.URL.Path != "/api/playlists/" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode([]models.Playlist{
					{ID: 1, Name: "Road Trip", Genre: "Rock", Likes: 3, Songs: []models.Song{
						{ID: 9, PlaylistID: 1, Title: "Highway", Artist: "Band", Duration: "4"},
					}},
				})
			}))
			defer server.Close()

			c := New(server.URL, nil, 0, nil)
			playlists, err := c.ListPlaylists(context.Background())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(playlists) != 1 {
				t.Fatalf("expected 1 playlist, got %d", len(playlists))
			}
			if playlists[0].Name != "Road Trip" || playlists[0].Likes != 3 {
				t.Errorf("unexpected playlist %+v", playlists[0])
			}
			if len(playlists[0].Songs) != 1 || playlists[0].Songs[0].ID != 9 {
				t.Errorf("unexpected songs %+v", playlists[0].Songs)
			}
		})

		t.Run("Non-2xx Wraps ErrAPIRequest", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer server.Close()

			c := New(server.URL, nil, 0, nil)
			if _, err := c.ListPlaylists(context.Background()); !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})

		t.Run("Malformed Body Wraps ErrAPIRequest", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			}))
			defer server.Close()

			c := New(server.URL, nil, 0, nil)
			if _, err := c.ListPlaylists(context.Background()); !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})
	})

	t.Run("LikePlaylist", func(t *testing.T) {
		t.Run("Returns Server Count", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/api/playlists/1/like/" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				json.NewEncoder(w).Encode(models.LikeResult{Likes: 4})
			}))
			defer server.Close()

			c := New(server.URL, nil, 0, nil)
			likes, err := c.LikePlaylist(context.Background(), 1)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if likes != 4 {
				t.Errorf("expected 4 likes, got %d", likes)
			}
		})
	})

	t.Run("CreatePlaylist", func(t *testing.T) {
		t.Run("Sends Multipart Form Fields", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/api/playlists/" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				if err := r.ParseMultipartForm(1 << 20); err != nil {
					t.Fatalf("expected multipart body: %v", err)
				}
				if r.FormValue("name") != "Road Trip" || r.FormValue("genre") != "Rock" {
					t.Errorf("unexpected form values name=%q genre=%q", r.FormValue("name"), r.FormValue("genre"))
				}
				w.WriteHeader(http.StatusCreated)
			}))
			defer server.Close()

			c := New(server.URL, nil, 0, nil)
			if err := c.CreatePlaylist(context.Background(), "Road Trip", "Rock"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	})

	t.Run("UpdatePlaylist Uses PUT Keyed By ID", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut || r.URL.Path != "/api/playlists/7" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			r.ParseMultipartForm(1 << 20)
			if r.FormValue("name") != "Chill" {
				t.Errorf("unexpected name %q", r.FormValue("name"))
			}
		}))
		defer server.Close()

		c := New(server.URL, nil, 0, nil)
		if err := c.UpdatePlaylist(context.Background(), 7, "Chill", "Lofi"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("DeletePlaylist Issues DELETE", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete || r.URL.Path != "/api/playlists/7" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		c := New(server.URL, nil, 0, nil)
		if err := c.DeletePlaylist(context.Background(), 7); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("AddSong Sends Playlist Link", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/api/add-song/" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			r.ParseMultipartForm(1 << 20)
			if r.FormValue("playlistId") != "3" || r.FormValue("title") != "Song" {
				t.Errorf("unexpected form values %v", r.MultipartForm.Value)
			}
		}))
		defer server.Close()

		c := New(server.URL, nil, 0, nil)
		if err := c.AddSong(context.Background(), 3, "Song", "Artist", "4"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("UpdateSong Omits Playlist Link", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut || r.URL.Path != "/api/songs/9" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			r.ParseMultipartForm(1 << 20)
			if _, ok := r.MultipartForm.Value["playlistId"]; ok {
				t.Error("song update must not carry the playlist link")
			}
		}))
		defer server.Close()

		c := New(server.URL, nil, 0, nil)
		if err := c.UpdateSong(context.Background(), 9, "Song", "Artist", "4"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("Login", func(t *testing.T) {
		t.Run("Sends JSON And Keeps Session Cookie", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				switch r.URL.Path {
				case "/api/login/":
					if ct := r.Header.Get("Content-Type"); ct != "application/json" {
						t.Errorf("expected JSON body, got %s", ct)
					}
					var creds models.Credentials
					json.NewDecoder(r.Body).Decode(&creds)
					if creds.Username != "kevin" || creds.Password != "secret" {
						t.Errorf("unexpected credentials %+v", creds)
					}
					http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "abc"})
					json.NewEncoder(w).Encode(models.LoginResult{Username: "kevin"})
				case "/api/playlists/":
					if cookie, err := r.Cookie("sessionid"); err != nil || cookie.Value != "abc" {
						t.Error("expected session cookie on subsequent call")
					}
					w.Write([]byte("[]"))
				}
			}))
			defer server.Close()

			c := New(server.URL, nil, 0, nil)
			username, err := c.Login(context.Background(), "kevin", "secret")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if username != "kevin" {
				t.Errorf("expected username kevin, got %s", username)
			}

			if _, err := c.ListPlaylists(context.Background()); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})

		t.Run("Rejected Credentials Wrap ErrAuthFailed", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			}))
			defer server.Close()

			c := New(server.URL, nil, 0, nil)
			if _, err := c.Login(context.Background(), "kevin", "wrong"); !errors.Is(err, shared.ErrAuthFailed) {
				t.Errorf("expected ErrAuthFailed, got %v", err)
			}
		})
	})

	t.Run("Register Posts JSON", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/api/register/" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			w.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		c := New(server.URL, nil, 0, nil)
		if err := c.Register(context.Background(), "kevin", "secret"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("Logout Posts To Trailing Slash Path", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/api/logout/" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
		}))
		defer server.Close()

		c := New(server.URL, nil, 0, nil)
		if err := c.Logout(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("ExchangeSpotifyCode", func(t *testing.T) {
		t.Run("Returns Access Token", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/spotify/callback" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				if r.URL.Query().Get("code") != "auth-code" {
					t.Errorf("unexpected code %s", r.URL.Query().Get("code"))
				}
				json.NewEncoder(w).Encode(models.TokenResult{AccessToken: "token-123"})
			}))
			defer server.Close()

			c := New(server.URL, nil, 0, nil)
			token, err := c.ExchangeSpotifyCode(context.Background(), "auth-code")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if token != "token-123" {
				t.Errorf("expected token-123, got %s", token)
			}
		})

		t.Run("Empty Token Is An Error", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("{}"))
			}))
			defer server.Close()

			c := New(server.URL, nil, 0, nil)
			if _, err := c.ExchangeSpotifyCode(context.Background(), "auth-code"); !errors.Is(err, shared.ErrAuthFailed) {
				t.Errorf("expected ErrAuthFailed, got %v", err)
			}
		})
	})
}
