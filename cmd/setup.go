package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Dw4n7/Playlist/internal/shared"
	"github.com/Dw4n7/Playlist/internal/store"
	"github.com/urfave/cli/v3"
)

// Setup creates config.toml from the embedded template and initializes the
// local storage database.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		r.logger.Infof("config file already exists at %v", configPath)
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warnf("failed to load config, using defaults: %v", err)
			config = shared.DefaultConfig()
		}
	} else {
		if err := shared.CreateConfigFile(configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		r.writePlain("✓ Config file created at %s\n", configPath)
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warnf("failed to load created config, using defaults: %v", err)
			config = shared.DefaultConfig()
		}
	}

	r.logger.Infof("initializing local storage at %v", config.Database.Path)

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	if _, err := store.New(db); err != nil {
		return fmt.Errorf("failed to initialize local storage: %w", err)
	}

	r.writePlain("✓ Local storage ready at %s\n", config.Database.Path)
	r.writePlainln("Next steps:")
	r.writePlain("1. Set api.base_url in %s to your backend\n", configPath)
	r.writePlain("2. Run 'badplay auth login <username>' to sign in\n")
	r.writePlain("3. Optionally set Spotify credentials and run 'badplay spotify link'\n")
	return nil
}
