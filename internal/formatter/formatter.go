// package formatter provides functions to export playlist data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/Dw4n7/Playlist/internal/models"
)

// ExportToCSV converts a playlist's songs to CSV format with columns: ID, Title, Artist, Duration
func ExportToCSV(playlist *models.Playlist) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Duration"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range playlist.Songs {
		record := []string{
			strconv.FormatInt(song.ID, 10),
			song.Title,
			song.Artist,
			song.Duration,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a playlist to Markdown format
func ExportToMarkdown(playlist *models.Playlist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", playlist.Name))
	buf.WriteString(fmt.Sprintf("**Genre**: %s\n", playlist.Genre))
	buf.WriteString(fmt.Sprintf("**Likes**: %d\n", playlist.Likes))
	buf.WriteString(fmt.Sprintf("**Songs**: %d\n\n", len(playlist.Songs)))

	buf.WriteString("## Songs\n\n")
	for i, song := range playlist.Songs {
		buf.WriteString(fmt.Sprintf("%d. %s - %s [%s]\n", i+1, song.Artist, song.Title, song.Duration))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a playlist to plain text format
func ExportToText(playlist *models.Playlist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", playlist.Name))
	buf.WriteString(fmt.Sprintf("Genre: %s\n", playlist.Genre))
	buf.WriteString(fmt.Sprintf("Likes: %d\n", playlist.Likes))
	buf.WriteString(fmt.Sprintf("Songs: %d\n\n", len(playlist.Songs)))

	for i, song := range playlist.Songs {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, song.Artist, song.Title))
	}

	return buf.Bytes(), nil
}

// ToMetadataJSON generates a JSON representation of playlist metadata (without songs)
func ToMetadataJSON(playlist models.Playlist) ([]byte, error) {
	playlist.Songs = nil
	return json.MarshalIndent(playlist, "", "  ")
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	SongsFile    string
	MetadataFile string
}

// WriteCSVExport exports a playlist to CSV format with an accompanying metadata JSON file.
//
// Defaults to the playlist ID as the base filename & creates {base}_songs.csv and {base}_metadata.json
func WriteCSVExport(playlist *models.Playlist, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = strconv.FormatInt(playlist.ID, 10)
	}

	csvData, err := ExportToCSV(playlist)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	songsFile := baseFilepath + "_songs.csv"
	if err := os.WriteFile(songsFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(*playlist)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		SongsFile:    songsFile,
		MetadataFile: metadataFile,
	}, nil
}

// WriteMarkdownExport exports a playlist to Markdown format.
//
// Defaults to {playlist.ID}.md as the filename.
func WriteMarkdownExport(playlist *models.Playlist, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%d.md", playlist.ID)
	}

	mdData, err := ExportToMarkdown(playlist)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}

	if err := os.WriteFile(filepath, mdData, 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return filepath, nil
}

// WriteTextExport exports a playlist to plain text format.
//
// Defaults to {playlist.ID}_songs.txt as the filename.
func WriteTextExport(playlist *models.Playlist, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%d_songs.txt", playlist.ID)
	}

	textData, err := ExportToText(playlist)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}
