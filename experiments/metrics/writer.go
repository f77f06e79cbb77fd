package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type PerfRecord struct {
	ID      int
	Network string
	RolloutMetric
}

type GameRecord struct {
	ID      int
	Network string
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	RunID   string
	baseDir string
}

// NewWriter creates a run directory under root named by timestamp and run id.
func NewWriter(root string) (*Writer, error) {
	runID := uuid.NewString()
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, timestamp+"-"+runID[:8])
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		RunID:   runID,
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string { return w.baseDir }

// writeCSV creates name under the run directory and writes header then rows.
func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	for _, row := range rows {
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func (w *Writer) WritePerfRecords(records []PerfRecord) error {
	header := []string{"run", "id", "network", "goroutines", "msecs", "rollouts", "state_changes", "mean_depth", "max_depth", "rollouts_per_sec"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			w.RunID,
			strconv.Itoa(record.ID),
			record.Network,
			strconv.Itoa(record.Goroutines),
			strconv.FormatInt(record.Msecs(), 10),
			strconv.Itoa(record.Rollouts),
			strconv.Itoa(record.StateChanges),
			strconv.FormatFloat(record.MeanDepth(), 'f', 2, 64),
			strconv.Itoa(record.MaxDepth),
			strconv.FormatFloat(record.RolloutsPerSecond(), 'f', 1, 64),
		})
	}
	return w.writeCSV("perf_records.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"run", "id", "network", "players", "goals", "terminal", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		goals := make([]string, len(record.Goals))
		for i, g := range record.Goals {
			goals[i] = strconv.Itoa(g)
		}
		rows = append(rows, []string{
			w.RunID,
			strconv.Itoa(record.ID),
			record.Network,
			strings.Join(record.Players, ";"),
			strings.Join(goals, ";"),
			strconv.FormatBool(record.Terminal),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "role", "player", "move", "move_text", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Role),
			record.Player,
			strconv.Itoa(record.Move),
			record.MoveText,
			record.Duration.String(),
		})
	}
	return w.writeCSV("move_records.csv", header, rows)
}
