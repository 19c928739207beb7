package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type GameRecord struct {
	ID       int
	Position int // seat of the agent under test
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// PositionSummary counts the wins per seat over the games played with the
// agent under test at Position.
type PositionSummary struct {
	Position int
	Games    int
	Wins     []int
}

// TestWins is the number of games the agent under test won.
func (p PositionSummary) TestWins() int {
	return p.Wins[p.Position]
}

type Writer struct {
	baseDir string
}

func NewWriter(dir, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(dir, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

// Dir is the directory the writer fills.
func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
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

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "position", "starting_player", "winner", "scores", "turns", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Position),
			strconv.Itoa(record.StartingPlayer),
			strconv.Itoa(record.Winner),
			joinInts(record.Scores),
			strconv.Itoa(record.Turns),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "turn", "player", "score", "strategy", "depth", "duration", "options", "evaluations", "applies"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Turn),
			strconv.Itoa(record.Player),
			strconv.FormatFloat(record.Score, 'f', -1, 64),
			record.Strategy,
			strconv.Itoa(record.Depth),
			record.Duration.String(),
			strconv.Itoa(record.Options),
			strconv.Itoa(record.Evaluations),
			strconv.Itoa(record.Applies),
		})
	}
	return w.write("move_records.csv", header, rows)
}

// WriteSummary writes one row per test position and a final row totalling
// them.
func (w *Writer) WriteSummary(summaries []PositionSummary) error {
	header := []string{"position", "games", "wins_by_seat", "test_wins", "win_rate"}
	rows := make([][]string, 0, len(summaries)+1)
	games, wins := 0, 0
	for _, s := range summaries {
		games += s.Games
		wins += s.TestWins()
		rows = append(rows, []string{
			strconv.Itoa(s.Position),
			strconv.Itoa(s.Games),
			joinInts(s.Wins),
			strconv.Itoa(s.TestWins()),
			strconv.FormatFloat(rate(s.TestWins(), s.Games), 'f', 4, 64),
		})
	}
	rows = append(rows, []string{"all", strconv.Itoa(games), "", strconv.Itoa(wins), strconv.FormatFloat(rate(wins, games), 'f', 4, 64)})
	return w.write("summary.csv", header, rows)
}

func rate(wins, games int) float64 {
	if games == 0 {
		return 0
	}
	return float64(wins) / float64(games)
}

func joinInts(xs []int) string {
	out := ""
	for i, x := range xs {
		if i > 0 {
			out += " "
		}
		out += strconv.Itoa(x)
	}
	return out
}
