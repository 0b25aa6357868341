package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

type AgentConfig struct {
	ID          int
	Kind        string
	Cutoff      int
	Exploration float64
	FrameBudget int
}

type GameRecord struct {
	ID      int
	AgentID int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type moveRow struct {
	Game         int32  `parquet:"game"`
	Step         int32  `parquet:"step"`
	Action       string `parquet:"action,dict"`
	BudgetUsed   int32  `parquet:"budget_used"`
	DurationUS   int64  `parquet:"duration_us"`
	Episodes     int32  `parquet:"episodes"`
	FullPlayouts int32  `parquet:"full_playouts"`
	TreeSize     int32  `parquet:"tree_size"`
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp>-<run id> for the files of one
// experiment run.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	runID := uuid.NewString()[:8]
	baseDir := filepath.Join(root, name, timestamp+"-"+runID)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return f.Close()
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "kind", "cutoff", "exploration", "frame_budget"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Kind,
			strconv.Itoa(config.Cutoff),
			formatFloat(config.Exploration),
			strconv.Itoa(config.FrameBudget),
		})
	}
	return w.writeCSV("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent", "kind", "layout", "seed", "won", "lost", "score", "moves", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.AgentID),
			record.Agent,
			record.Layout,
			strconv.FormatUint(record.Seed, 10),
			strconv.FormatBool(record.Won),
			strconv.FormatBool(record.Lost),
			formatFloat(record.Score),
			strconv.Itoa(record.TotalMoves),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	return w.writeCSV("game_records.csv", header, rows)
}

// WriteMoveRecords stores one row per decision as zstd compressed parquet.
func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	rows := make([]moveRow, len(records))
	for i, record := range records {
		rows[i] = moveRow{
			Game:         int32(record.Game),
			Step:         int32(record.Step),
			Action:       record.Action,
			BudgetUsed:   int32(record.BudgetUsed),
			DurationUS:   record.Duration.Microseconds(),
			Episodes:     int32(record.Episodes),
			FullPlayouts: int32(record.FullPlayouts),
			TreeSize:     int32(record.TreeSize),
		}
	}

	path := filepath.Join(w.baseDir, "move_records.parquet")
	err := parquet.WriteFile(path, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "move_records_v1"),
	)
	if err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	return nil
}

func (w *Writer) WriteSummaries(summaries []Summary) error {
	header := []string{"agent", "kind", "layout", "games", "mean_score", "std_score", "win_rate", "lose_rate", "mean_moves"}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			strconv.Itoa(s.AgentID),
			s.Kind,
			s.Layout,
			strconv.Itoa(s.Games),
			formatFloat(s.MeanScore),
			formatFloat(s.StdScore),
			formatFloat(s.WinRate),
			formatFloat(s.LoseRate),
			formatFloat(s.MeanMoves),
		})
	}
	return w.writeCSV("summary.csv", header, rows)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
