package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Dw4n7/Playlist/internal/api"
	"github.com/Dw4n7/Playlist/internal/formatter"
	"github.com/Dw4n7/Playlist/internal/models"
	"github.com/Dw4n7/Playlist/internal/shared"
	"github.com/charmbracelet/log"
)

// ProgressUpdate reports bulk export progress.
type ProgressUpdate struct {
	Step    int
	Total   int
	Message string
}

// ExportEngine coordinates bulk playlist exports against the backend.
type ExportEngine struct {
	backend api.Service
	logger  *log.Logger
}

// NewExportEngine creates an export engine.
func NewExportEngine(backend api.Service, logger *log.Logger) *ExportEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ExportEngine{backend: backend, logger: logger}
}

// BulkExportOpts contains configuration for bulk playlist exports.
type BulkExportOpts struct {
	Format     string // Export format: json, csv, markdown, txt
	OutputDir  string // Base output directory (default: playlist_export_{epoch})
	NumWorkers int    // Concurrent workers (default: 5, capped at 10)
}

// PlaylistExportResult describes the outcome for a single playlist.
type PlaylistExportResult struct {
	PlaylistID   int64    `json:"playlistId"`
	PlaylistName string   `json:"playlistName"`
	Files        []string `json:"files"`
	Success      bool     `json:"success"`
	Error        error    `json:"-"`
}

// BulkExportResult summarizes a bulk export run.
type BulkExportResult struct {
	TotalPlaylists    int                    `json:"totalPlaylists"`
	SuccessfulExports int                    `json:"successfulExports"`
	FailedExports     int                    `json:"failedExports"`
	OutputDirectory   string                 `json:"outputDirectory"`
	ManifestPath      string                 `json:"manifestPath"`
	Results           []PlaylistExportResult `json:"results"`
}

type exportJob struct {
	playlist models.Playlist
}

// BulkExport exports every playlist in the workspace concurrently.
//
// The snapshot is fetched once; a worker pool formats and writes the files.
// Partial failures are recorded per playlist and a manifest file summarizing
// the run is written to the output directory.
func (e *ExportEngine) BulkExport(ctx context.Context, prog chan<- ProgressUpdate, opts BulkExportOpts) (*BulkExportResult, error) {
	if e.backend == nil {
		return nil, fmt.Errorf("%w: backend not initialized", shared.ErrServiceUnavailable)
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("playlist_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	e.sendProgress(prog, ProgressUpdate{Message: "fetching playlists"})

	playlists, err := e.backend.ListPlaylists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch playlists: %w", err)
	}

	result := &BulkExportResult{
		TotalPlaylists:  len(playlists),
		OutputDirectory: opts.OutputDir,
		Results:         make([]PlaylistExportResult, 0, len(playlists)),
	}

	jobs := make(chan exportJob, len(playlists))
	results := make(chan PlaylistExportResult, len(playlists))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	for _, p := range playlists {
		jobs <- exportJob{playlist: p}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, ProgressUpdate{
				Step:    completed,
				Total:   len(playlists),
				Message: fmt.Sprintf("exported %s (%d files)", res.PlaylistName, len(res.Files)),
			})
		} else {
			result.FailedExports++
			e.logger.Warnf("export failed for %s: %v", res.PlaylistName, res.Error)
			e.sendProgress(prog, ProgressUpdate{
				Step:    completed,
				Total:   len(playlists),
				Message: fmt.Sprintf("failed %s: %v", res.PlaylistName, res.Error),
			})
		}
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	if err := writeManifest(result, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// sendProgress forwards an update without blocking when nobody is reading.
func (e *ExportEngine) sendProgress(prog chan<- ProgressUpdate, update ProgressUpdate) {
	if prog == nil {
		return
	}
	select {
	case prog <- update:
	default:
	}
}

// exportWorker is a worker goroutine that exports playlists from the jobs channel.
func (e *ExportEngine) exportWorker(ctx context.Context, wg *sync.WaitGroup, jobs <-chan exportJob, results chan<- PlaylistExportResult, opts BulkExportOpts) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- e.exportSinglePlaylist(job.playlist, opts)
	}
}

// exportSinglePlaylist writes a single playlist in the requested format.
func (e *ExportEngine) exportSinglePlaylist(playlist models.Playlist, opts BulkExportOpts) PlaylistExportResult {
	result := PlaylistExportResult{
		PlaylistID:   playlist.ID,
		PlaylistName: playlist.Name,
		Files:        []string{},
	}

	base := filepath.Join(opts.OutputDir, fmt.Sprintf("%d", playlist.ID))

	switch opts.Format {
	case "csv":
		csvRes, err := formatter.WriteCSVExport(&playlist, base)
		if err != nil {
			result.Error = fmt.Errorf("CSV export failed: %w", err)
			return result
		}
		result.Files = []string{csvRes.SongsFile, csvRes.MetadataFile}
		result.Success = true

	case "md", "markdown":
		path, err := formatter.WriteMarkdownExport(&playlist, base+".md")
		if err != nil {
			result.Error = fmt.Errorf("markdown export failed: %w", err)
			return result
		}
		result.Files = []string{path}
		result.Success = true

	case "txt", "text":
		path, err := formatter.WriteTextExport(&playlist, base+"_songs.txt")
		if err != nil {
			result.Error = fmt.Errorf("text export failed: %w", err)
			return result
		}
		result.Files = []string{path}
		result.Success = true

	case "json":
		fallthrough
	default:
		data, err := json.MarshalIndent(playlist, "", "  ")
		if err != nil {
			result.Error = fmt.Errorf("JSON marshal failed: %w", err)
			return result
		}
		jsonPath := base + ".json"
		if err := os.WriteFile(jsonPath, data, 0644); err != nil {
			result.Error = fmt.Errorf("JSON write failed: %w", err)
			return result
		}
		result.Files = []string{jsonPath}
		result.Success = true
	}

	return result
}

// manifestEntry is the serialized form of a per-playlist result.
type manifestEntry struct {
	PlaylistID   int64    `json:"playlistId"`
	PlaylistName string   `json:"playlistName"`
	Files        []string `json:"files"`
	Success      bool     `json:"success"`
	Error        string   `json:"error,omitempty"`
}

func writeManifest(result *BulkExportResult, path string) error {
	entries := make([]manifestEntry, 0, len(result.Results))
	for _, res := range result.Results {
		entry := manifestEntry{
			PlaylistID:   res.PlaylistID,
			PlaylistName: res.PlaylistName,
			Files:        res.Files,
			Success:      res.Success,
		}
		if res.Error != nil {
			entry.Error = res.Error.Error()
		}
		entries = append(entries, entry)
	}

	manifest := struct {
		ExportedAt        time.Time       `json:"exportedAt"`
		TotalPlaylists    int             `json:"totalPlaylists"`
		SuccessfulExports int             `json:"successfulExports"`
		FailedExports     int             `json:"failedExports"`
		Results           []manifestEntry `json:"results"`
	}{
		ExportedAt:        time.Now().UTC(),
		TotalPlaylists:    result.TotalPlaylists,
		SuccessfulExports: result.SuccessfulExports,
		FailedExports:     result.FailedExports,
		Results:           entries,
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
