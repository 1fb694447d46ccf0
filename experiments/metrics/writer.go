package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"metro/game"

	"github.com/google/uuid"
)

type GameRecord struct {
	ID        uuid.UUID
	Index     int // position in the batch, starting at 1
	Profile   string
	Map       string
	Seed      uint64
	Score     game.ScoreBreakdown
	Resolvers map[string]int // decisions made per resolver
	Err       error
	GameMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp> to hold the experiment's files.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
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

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{
		"id", "index", "profile", "map", "seed",
		"total", "completed_station_score", "transfer_score", "empty_node_score", "num_empty_nodes",
		"turns", "reshuffles", "nodes_marked", "transfers", "passes", "duration", "error",
	}
	return w.write("game_records.csv", header, func(write func([]string) error) error {
		for _, r := range records {
			errText := ""
			if r.Err != nil {
				errText = r.Err.Error()
			}
			row := []string{
				r.ID.String(),
				strconv.Itoa(r.Index),
				r.Profile,
				r.Map,
				strconv.FormatUint(r.Seed, 10),
				strconv.Itoa(r.Score.Total),
				strconv.Itoa(r.Score.CompletedStationScore),
				strconv.Itoa(r.Score.TransferScore),
				strconv.Itoa(r.Score.EmptyNodeScore),
				strconv.Itoa(r.Score.NumEmptyNodes),
				strconv.Itoa(r.Turns),
				strconv.Itoa(r.Reshuffles),
				strconv.Itoa(r.NodesMarked),
				strconv.Itoa(r.Transfers),
				strconv.Itoa(r.Passes),
				r.Duration.String(),
				errText,
			}
			if err := write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteResolverStats writes one row per game and resolver that made at least one decision.
func (w *Writer) WriteResolverStats(records []GameRecord) error {
	header := []string{"id", "resolver", "decisions"}
	return w.write("resolver_stats.csv", header, func(write func([]string) error) error {
		for _, r := range records {
			names := make([]string, 0, len(r.Resolvers))
			for name := range r.Resolvers {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				if err := write([]string{r.ID.String(), name, strconv.Itoa(r.Resolvers[name])}); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (w *Writer) write(file string, header []string, rows func(write func([]string) error) error) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", file, err)
	}
	if err := rows(writer.Write); err != nil {
		return fmt.Errorf("failed to write %s row: %w", file, err)
	}

	writer.Flush()
	return writer.Error()
}
