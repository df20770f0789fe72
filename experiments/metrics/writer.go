package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// GameRecord ties a game's metric to an experiment-wide game ID.
type GameRecord struct {
	ID int
	GameMetric
}

// MoveRecord ties a move's metric to the game it was played in.
type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// Writer dumps experiment results as CSV files under one timestamped
// directory.
type Writer struct {
	baseDir string
}

func NewWriter(root string) (*Writer, error) {
	// Subfolder named by current timestamp
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &Writer{baseDir: baseDir}, nil
}

// BaseDir returns the directory records are written into.
func (w *Writer) BaseDir() string {
	return w.baseDir
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	path := filepath.Join(w.baseDir, "games.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create games file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "white", "black", "outcome", "plies", "duration_ms"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write games header: %w", err)
	}
	for _, record := range records {
		row := []string{
			strconv.Itoa(record.ID),
			record.White,
			record.Black,
			record.Outcome,
			strconv.Itoa(record.TotalPlies),
			strconv.FormatInt(record.Duration.Milliseconds(), 10),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write game row: %w", err)
		}
	}
	return nil
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	path := filepath.Join(w.baseDir, "moves.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create moves file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"game", "ply", "player", "difficulty", "move", "score", "depth", "nodes", "duration_ms"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write moves header: %w", err)
	}
	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Ply),
			record.Player,
			record.Difficulty,
			record.Move,
			strconv.Itoa(record.Score),
			strconv.Itoa(record.Depth),
			strconv.Itoa(record.Nodes),
			strconv.FormatInt(record.Duration.Milliseconds(), 10),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write move row: %w", err)
		}
	}
	return nil
}
