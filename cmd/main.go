package main

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"os"

	"github.com/Dw4n7/Playlist/internal/api"
	"github.com/Dw4n7/Playlist/internal/player"
	"github.com/Dw4n7/Playlist/internal/shared"
	"github.com/Dw4n7/Playlist/internal/store"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	// Environment overrides layered on top of config.toml, if a .env exists.
	if err := godotenv.Load(); err == nil {
		logger.Debug("loaded environment from .env")
	}

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		} else {
			logger.Warnf("failed to load config.toml, using defaults: %v", err)
		}
	}

	// Local storage backs the persistent cookie jar and the streaming token,
	// the way a browser keeps cookies and localStorage between visits. When
	// it cannot be opened the client degrades to an in-memory jar and the
	// session only lasts for this invocation.
	var localStore *store.Store
	httpClient := &http.Client{}
	if db, err := shared.NewDatabase(config.Database.Path); err != nil {
		logger.Warnf("local storage unavailable, session will not persist: %v", err)
		jar, _ := cookiejar.New(nil)
		httpClient.Jar = jar
	} else {
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		if localStore, err = store.New(db); err != nil {
			logger.Warnf("local storage unavailable, session will not persist: %v", err)
			jar, _ := cookiejar.New(nil)
			httpClient.Jar = jar
		} else {
			httpClient.Jar = localStore.Jar()
		}
	}

	backend := api.New(config.API.BaseURL, httpClient, config.API.RateLimit, logger)

	tokenFn := func() (string, error) {
		if localStore == nil {
			return "", nil
		}
		return localStore.Get(store.SpotifyTokenKey)
	}
	spotifyPlayer := player.New(tokenFn, "", nil, logger)

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: "config.toml",
		Backend:    backend,
		Player:     spotifyPlayer,
		Store:      localStore,
		HTTPClient: httpClient,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "badplay",
		Usage:    "Manage TheBadPlay playlists from the terminal",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
