package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestNewWriterCreatesTimestampedDir(t *testing.T) {
	root := t.TempDir()

	w, err := NewWriter(root)
	require.NoError(t, err)
	require.Equal(t, root, filepath.Dir(w.BaseDir()))

	info, err := os.Stat(w.BaseDir())
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestWriteGameRecords(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)

	records := []GameRecord{
		{ID: 1, GameMetric: GameMetric{White: "easy", Black: "hard", Outcome: "0-1", TotalPlies: 34, Duration: 1500 * time.Millisecond}},
		{ID: 2, GameMetric: GameMetric{White: "medium", Black: "medium", Outcome: "1/2-1/2", TotalPlies: 80, Duration: 4 * time.Second}},
	}
	require.NoError(t, w.WriteGameRecords(records))

	rows := readCSV(t, filepath.Join(w.BaseDir(), "games.csv"))
	require.Len(t, rows, 3)
	require.Equal(t, []string{"id", "white", "black", "outcome", "plies", "duration_ms"}, rows[0])
	require.Equal(t, []string{"1", "easy", "hard", "0-1", "34", "1500"}, rows[1])
	require.Equal(t, []string{"2", "medium", "medium", "1/2-1/2", "80", "4000"}, rows[2])
}

func TestWriteMoveRecords(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)

	records := []MoveRecord{
		{Game: 1, MoveMetric: MoveMetric{Ply: 1, Player: "white", SearchMetric: SearchMetric{
			Difficulty: "easy", Move: "e4", Score: 40, Depth: 1, Nodes: 20, Duration: 12 * time.Millisecond,
		}}},
		{Game: 1, MoveMetric: MoveMetric{Ply: 2, Player: "black", SearchMetric: SearchMetric{
			Difficulty: "hard", Move: "c5", Score: 25, Depth: 3, Nodes: 5120, Duration: 430 * time.Millisecond,
		}}},
	}
	require.NoError(t, w.WriteMoveRecords(records))

	rows := readCSV(t, filepath.Join(w.BaseDir(), "moves.csv"))
	require.Len(t, rows, 3)
	require.Equal(t, []string{"game", "ply", "player", "difficulty", "move", "score", "depth", "nodes", "duration_ms"}, rows[0])
	require.Equal(t, []string{"1", "1", "white", "easy", "e4", "40", "1", "20", "12"}, rows[1])
	require.Equal(t, []string{"1", "2", "black", "hard", "c5", "25", "3", "5120", "430"}, rows[2])
}

func TestWriteEmptyRecords(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, w.WriteGameRecords(nil))
	require.NoError(t, w.WriteMoveRecords(nil))

	require.Len(t, readCSV(t, filepath.Join(w.BaseDir(), "games.csv")), 1)
	require.Len(t, readCSV(t, filepath.Join(w.BaseDir(), "moves.csv")), 1)
}

func TestCollectorRoundTrip(t *testing.T) {
	c := NewCollector()
	c.Start("easy", "medium")
	c.AddMove(MoveMetric{Ply: 1, Player: "white", SearchMetric: SearchMetric{Move: "d4"}})
	c.AddMove(MoveMetric{Ply: 2, Player: "black", SearchMetric: SearchMetric{Move: "d5"}})

	moves := c.Moves()
	require.Len(t, moves, 2)

	moves[0].Move = "mutated"
	require.Equal(t, "d4", c.Moves()[0].Move, "Moves returns a copy")

	summary := c.Complete("1-0")
	require.Equal(t, "easy", summary.White)
	require.Equal(t, "medium", summary.Black)
	require.Equal(t, "1-0", summary.Outcome)
	require.Equal(t, 2, summary.TotalPlies)
	require.False(t, summary.EndTime.Before(summary.StartTime))
}
