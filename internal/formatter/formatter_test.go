package formatter

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Dw4n7/Playlist/internal/models"
	testutils "github.com/Dw4n7/Playlist/internal/testing"
)

func samplePlaylist() *models.Playlist {
	return &models.Playlist{
		ID: 1, Name: "Road Trip", Genre: "Rock", Likes: 3,
		Songs: []models.Song{
			{ID: 7, PlaylistID: 1, Title: "Highway Song", Artist: "The Vans", Duration: "3:45"},
			{ID: 9, PlaylistID: 1, Title: "Open Road", Artist: "The Vans", Duration: "4:02"},
		},
	}
}

func TestExportToCSV(t *testing.T) {
	t.Run("Writes Header And One Row Per Song", func(t *testing.T) {
		data, err := ExportToCSV(samplePlaylist())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected 3 lines, got %d", len(lines))
		}
		if lines[0] != "ID,Title,Artist,Duration" {
			t.Errorf("unexpected header: %s", lines[0])
		}
		if lines[1] != "7,Highway Song,The Vans,3:45" {
			t.Errorf("unexpected row: %s", lines[1])
		}
	})

	t.Run("Empty Playlist Yields Header Only", func(t *testing.T) {
		data, err := ExportToCSV(&models.Playlist{ID: 5, Name: "Empty"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if strings.TrimSpace(string(data)) != "ID,Title,Artist,Duration" {
			t.Errorf("unexpected output: %s", data)
		}
	})
}

func TestExportToMarkdown(t *testing.T) {
	data, err := ExportToMarkdown(samplePlaylist())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	content := string(data)
	for _, want := range []string{
		"# Road Trip",
		"**Genre**: Rock",
		"**Likes**: 3",
		"**Songs**: 2",
		"1. The Vans - Highway Song [3:45]",
		"2. The Vans - Open Road [4:02]",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("expected markdown to contain %q", want)
		}
	}
}

func TestExportToText(t *testing.T) {
	data, err := ExportToText(samplePlaylist())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	content := string(data)
	if !strings.Contains(content, "Playlist: Road Trip") {
		t.Errorf("expected playlist name, got %s", content)
	}
	if !strings.Contains(content, "1. The Vans - Highway Song") {
		t.Errorf("expected song line, got %s", content)
	}
}

func TestToMetadataJSON(t *testing.T) {
	data, err := ToMetadataJSON(*samplePlaylist())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var decoded models.Playlist
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.Name != "Road Trip" || decoded.Likes != 3 {
		t.Errorf("unexpected metadata: %+v", decoded)
	}
	if len(decoded.Songs) != 0 {
		t.Errorf("metadata should omit songs, got %d", len(decoded.Songs))
	}
}

func TestWriteExports(t *testing.T) {
	t.Run("CSV Export Writes Songs And Metadata Files", func(t *testing.T) {
		base := filepath.Join(t.TempDir(), "road_trip")

		result, err := WriteCSVExport(samplePlaylist(), base)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		testutils.AssertFileExists(t, result.SongsFile)
		testutils.AssertFileExists(t, result.MetadataFile)

		if !strings.Contains(testutils.MustReadFile(t, result.SongsFile), "Highway Song") {
			t.Error("songs file missing song data")
		}
	})

	t.Run("Markdown Export Writes File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "road_trip.md")

		got, err := WriteMarkdownExport(samplePlaylist(), path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got != path {
			t.Errorf("expected path %s, got %s", path, got)
		}
		testutils.AssertFileExists(t, path)
	})

	t.Run("Text Export Writes File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "road_trip.txt")

		if _, err := WriteTextExport(samplePlaylist(), path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		testutils.AssertFileExists(t, path)
	})
}
