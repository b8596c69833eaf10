// Package replay archives self-play turns as parquet files.
//
// One row is written per bot turn. Rows are model-agnostic: the board is
// stored as the sixteen raw cell codes in row-major order, so readers can
// decode walls, frozen cells, ghosts and targets the same way the engine does.
package replay

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// SchemaVersion is written to the file metadata under the "schema" key.
const SchemaVersion = "rpg2048_turn_v1"

// Row is a single (run, turn) snapshot taken after the bot's move.
type Row struct {
	RunID     string  `parquet:"run_id,dict"`
	Seed      int64   `parquet:"seed"`
	Turn      int32   `parquet:"turn"`
	AtMillis  int64   `parquet:"at_ms"`
	Level     int32   `parquet:"level"`
	Boss      bool    `parquet:"boss"`
	Goal      string  `parquet:"goal,dict"`
	EnemyHP   int32   `parquet:"enemy_hp"`
	Direction string  `parquet:"direction,dict"`
	Damage    int32   `parquet:"damage"`
	Matched   int32   `parquet:"matched"`
	Resisted  bool    `parquet:"resisted"`
	Defeated  bool    `parquet:"defeated"`
	Empty     int32   `parquet:"empty"`
	MaxTile   int32   `parquet:"max_tile"`
	Board     []int32 `parquet:"board"`
}

// Recorder collects rows from one or more runs. It is safe for concurrent use.
type Recorder struct {
	mu   sync.Mutex
	rows []Row
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Add appends a row.
func (r *Recorder) Add(row Row) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, row)
}

// Len returns the number of buffered rows.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

// Rows returns a copy of the buffered rows.
func (r *Recorder) Rows() []Row {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Row, len(r.rows))
	copy(out, r.rows)
	return out
}

// Flush writes every buffered row to path and clears the buffer.
// Nothing is written when the buffer is empty.
func (r *Recorder) Flush(path string) (int, error) {
	r.mu.Lock()
	rows := r.rows
	r.rows = nil
	r.mu.Unlock()

	if len(rows) == 0 {
		return 0, nil
	}
	if err := WriteFile(path, rows); err != nil {
		r.mu.Lock()
		r.rows = append(rows, r.rows...)
		r.mu.Unlock()
		return 0, err
	}
	return len(rows), nil
}

// WriteFile writes rows to a zstd-compressed parquet file. The file is
// written next to its destination and renamed into place.
func WriteFile(outPath string, rows []Row) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("replay: create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", SchemaVersion),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replay: write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replay: rename parquet: %w", err)
	}
	return nil
}

// ReadFile loads every row of a replay file.
func ReadFile(path string) ([]Row, error) {
	rows, err := parquet.ReadFile[Row](path)
	if err != nil {
		return nil, fmt.Errorf("replay: read parquet: %w", err)
	}
	return rows, nil
}
