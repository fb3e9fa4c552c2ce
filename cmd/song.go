package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

// SongAdd adds a song to a playlist.
func (r *Runner) SongAdd(ctx context.Context, cmd *cli.Command) error {
	playlistID, err := idArg(cmd, "playlist-id")
	if err != nil {
		return err
	}

	title := cmd.String("title")
	r.logger.Infof("adding song %v to playlist %v", title, playlistID)

	if err := r.backend.AddSong(ctx, playlistID, title, cmd.String("artist"), cmd.String("duration")); err != nil {
		return err
	}

	return r.writePlain("✓ Song %q added to playlist %d\n", title, playlistID)
}

// SongUpdate updates a song's title, artist and duration.
func (r *Runner) SongUpdate(ctx context.Context, cmd *cli.Command) error {
	id, err := idArg(cmd, "id")
	if err != nil {
		return err
	}

	r.logger.Infof("updating song %v", id)

	if err := r.backend.UpdateSong(ctx, id, cmd.String("title"), cmd.String("artist"), cmd.String("duration")); err != nil {
		return err
	}

	return r.writePlain("✓ Song %d updated\n", id)
}

// SongDelete deletes a song.
func (r *Runner) SongDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := idArg(cmd, "id")
	if err != nil {
		return err
	}

	r.logger.Infof("deleting song %v", id)

	if err := r.backend.DeleteSong(ctx, id); err != nil {
		return err
	}

	return r.writePlain("✓ Song %d deleted\n", id)
}
