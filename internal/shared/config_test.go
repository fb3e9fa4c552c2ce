package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.API.BaseURL != "http://127.0.0.1:8000" {
			t.Errorf("unexpected base URL: %s", config.API.BaseURL)
		}
		if config.API.RateLimit != 10.0 {
			t.Errorf("unexpected rate limit: %f", config.API.RateLimit)
		}
		if config.Database.Path != "./badplay.db" {
			t.Errorf("unexpected database path: %s", config.Database.Path)
		}
		if config.Server.Addr() != "127.0.0.1:3000" {
			t.Errorf("unexpected server addr: %s", config.Server.Addr())
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		t.Run("parses a config file", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			content := `
[api]
base_url = "https://playlists.example.com"
rate_limit = 2.5

[server]
host = "localhost"
port = 9999
`
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			config, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if config.API.BaseURL != "https://playlists.example.com" {
				t.Errorf("unexpected base URL: %s", config.API.BaseURL)
			}
			if config.Server.Addr() != "localhost:9999" {
				t.Errorf("unexpected server addr: %s", config.Server.Addr())
			}
		})

		t.Run("missing file returns an error", func(t *testing.T) {
			if _, err := LoadConfig("/nonexistent/config.toml"); err == nil {
				t.Error("expected an error")
			}
		})

		t.Run("invalid toml returns an error", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			os.WriteFile(path, []byte("not [valid"), 0644)

			if _, err := LoadConfig(path); err == nil {
				t.Error("expected an error")
			}
		})
	})

	t.Run("Environment Overrides", func(t *testing.T) {
		t.Setenv("BADPLAY_API_URL", "https://override.example.com")
		t.Setenv("SPOTIFY_CLIENT_ID", "env-client")
		t.Setenv("SPOTIFY_CLIENT_SECRET", "env-secret")

		config := DefaultConfig()
		if config.API.BaseURL != "https://override.example.com" {
			t.Errorf("expected env override, got %s", config.API.BaseURL)
		}
		if config.Credentials.Spotify.ClientID != "env-client" {
			t.Errorf("expected env client id, got %s", config.Credentials.Spotify.ClientID)
		}
		if config.Credentials.Spotify.ClientSecret != "env-secret" {
			t.Error("expected env client secret")
		}
	})

	t.Run("SaveConfig Roundtrip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		config := DefaultConfig()
		config.API.BaseURL = "https://saved.example.com"
		if err := SaveConfig(path, config); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		loaded, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if loaded.API.BaseURL != "https://saved.example.com" {
			t.Errorf("unexpected base URL after roundtrip: %s", loaded.API.BaseURL)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		t.Run("writes the embedded template", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")

			if err := CreateConfigFile(path); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			config, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("created config should parse: %v", err)
			}
			if config.Database.Path != "./badplay.db" {
				t.Errorf("unexpected database path: %s", config.Database.Path)
			}
		})

		t.Run("refuses to overwrite", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			os.WriteFile(path, []byte("existing"), 0644)

			if err := CreateConfigFile(path); err == nil {
				t.Error("expected an error")
			}
		})
	})
}
