package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Dw4n7/Playlist/internal/formatter"
	"github.com/Dw4n7/Playlist/internal/models"
	"github.com/Dw4n7/Playlist/internal/shared"
	"github.com/Dw4n7/Playlist/internal/tasks"
	"github.com/urfave/cli/v3"
)

// idArg parses the required numeric id argument.
func idArg(cmd *cli.Command, name string) (int64, error) {
	raw := strings.TrimSpace(cmd.StringArg(name))
	if raw == "" {
		return 0, fmt.Errorf("%w: %s argument is required", shared.ErrMissingArgument, name)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be numeric, got %q", shared.ErrInvalidArgument, name, raw)
	}
	return id, nil
}

// PlaylistList prints the playlist collection, optionally filtered by name
// and genre substrings.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	r.logger.Info("fetching playlists")

	playlists, err := r.backend.ListPlaylists(ctx)
	if err != nil {
		return err
	}

	playlists = models.FilterPlaylists(playlists, cmd.String("name"), cmd.String("genre"))

	if useJSON {
		return r.writeJSON(playlists, pretty)
	}

	r.writePlain("Found %d playlists:\n\n", len(playlists))
	for i, p := range playlists {
		r.writePlain("%d. %s\n", i+1, p.Name)
		r.writePlain("   ID: %d\n", p.ID)
		r.writePlain("   Genre: %s\n", p.Genre)
		r.writePlain("   Likes: %d\n", p.Likes)
		r.writePlain("   Songs: %d\n", len(p.Songs))
		for _, s := range p.Songs {
			r.writePlain("     [%d] %s - %s (%s)\n", s.ID, s.Artist, s.Title, s.Duration)
		}
		r.writePlain("\n")
	}

	return nil
}

// PlaylistCreate creates a playlist.
func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command) error {
	name := cmd.String("name")
	genre := cmd.String("genre")

	r.logger.Infof("creating playlist %v", name)

	if err := r.backend.CreatePlaylist(ctx, name, genre); err != nil {
		return err
	}

	return r.writePlain("✓ Playlist %q created\n", name)
}

// PlaylistUpdate updates a playlist's name and genre.
func (r *Runner) PlaylistUpdate(ctx context.Context, cmd *cli.Command) error {
	id, err := idArg(cmd, "id")
	if err != nil {
		return err
	}

	r.logger.Infof("updating playlist %v", id)

	if err := r.backend.UpdatePlaylist(ctx, id, cmd.String("name"), cmd.String("genre")); err != nil {
		return err
	}

	return r.writePlain("✓ Playlist %d updated\n", id)
}

// PlaylistDelete deletes a playlist.
func (r *Runner) PlaylistDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := idArg(cmd, "id")
	if err != nil {
		return err
	}

	r.logger.Infof("deleting playlist %v", id)

	if err := r.backend.DeletePlaylist(ctx, id); err != nil {
		return err
	}

	return r.writePlain("✓ Playlist %d deleted\n", id)
}

// PlaylistLike likes a playlist and prints the server's count.
func (r *Runner) PlaylistLike(ctx context.Context, cmd *cli.Command) error {
	id, err := idArg(cmd, "id")
	if err != nil {
		return err
	}

	likes, err := r.backend.LikePlaylist(ctx, id)
	if err != nil {
		return err
	}

	return r.writePlain("♥ Playlist %d now has %d likes\n", id, likes)
}

// PlaylistExport writes one playlist, or with --all the whole workspace, to
// the requested format on disk.
func (r *Runner) PlaylistExport(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("all") {
		return r.exportAll(ctx, cmd)
	}

	id, err := idArg(cmd, "id")
	if err != nil {
		return err
	}
	format := cmd.String("format")
	output := cmd.String("output")

	playlists, err := r.backend.ListPlaylists(ctx)
	if err != nil {
		return err
	}

	var playlist *models.Playlist
	for i := range playlists {
		if playlists[i].ID == id {
			playlist = &playlists[i]
			break
		}
	}
	if playlist == nil {
		return fmt.Errorf("%w: id %d", shared.ErrPlaylistNotFound, id)
	}

	r.logger.Infof("exporting playlist %v as %v", id, format)

	switch format {
	case "csv":
		result, err := formatter.WriteCSVExport(playlist, strings.TrimSuffix(output, ".csv"))
		if err != nil {
			return err
		}
		r.writePlain("✓ Playlist exported to %s\n", result.SongsFile)
		r.writePlain("  Metadata: %s\n", result.MetadataFile)
	case "md", "markdown":
		path, err := formatter.WriteMarkdownExport(playlist, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Playlist exported to %s\n", path)
	case "txt", "text":
		path, err := formatter.WriteTextExport(playlist, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Playlist exported to %s\n", path)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}

	r.writePlain("  Playlist: %s\n", playlist.Name)
	r.writePlain("  Songs: %d\n", len(playlist.Songs))
	return nil
}

// exportAll runs the bulk export engine over the whole workspace, draining
// progress updates to the terminal as they arrive.
func (r *Runner) exportAll(ctx context.Context, cmd *cli.Command) error {
	engine := tasks.NewExportEngine(r.backend, r.logger)

	prog := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range prog {
			if update.Total > 0 {
				r.writePlain("[%d/%d] %s\n", update.Step, update.Total, update.Message)
			} else {
				r.writePlain("%s\n", update.Message)
			}
		}
	}()

	result, err := engine.BulkExport(ctx, prog, tasks.BulkExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("output"),
		NumWorkers: int(cmd.Int("workers")),
	})
	close(prog)
	<-done
	if err != nil {
		return err
	}

	r.writePlainln("✓ Exported %d/%d playlists to %s", result.SuccessfulExports, result.TotalPlaylists, result.OutputDirectory)
	if result.FailedExports > 0 {
		r.writePlain("⚠ %d exports failed, see %s\n", result.FailedExports, result.ManifestPath)
	}
	return nil
}
