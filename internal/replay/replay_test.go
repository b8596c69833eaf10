package replay

import (
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
)

func sampleRows(runID string, n int) []Row {
	rows := make([]Row, n)
	for i := range rows {
		board := make([]int32, 16)
		board[i%16] = 2
		board[15] = -1
		rows[i] = Row{
			RunID:     runID,
			Seed:      42,
			Turn:      int32(i),
			AtMillis:  int64(i) * 500,
			Level:     int32(i / 10),
			Goal:      "HP_DAMAGE",
			EnemyHP:   int32(64 - i),
			Direction: "left",
			Damage:    int32(i % 3 * 4),
			Empty:     14,
			MaxTile:   2,
			Board:     board,
		}
	}
	return rows
}

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs", "bot.parquet")
	want := sampleRows("run-1", 25)

	if err := WriteFile(path, want); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("read %d rows, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Turn != want[i].Turn || got[i].EnemyHP != want[i].EnemyHP || !slices.Equal(got[i].Board, want[i].Board) {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "nope.parquet")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestRecorderFlush(t *testing.T) {
	rec := NewRecorder()

	var wg sync.WaitGroup
	for w := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, row := range sampleRows("run", 10) {
				row.Seed = int64(w)
				rec.Add(row)
			}
		}()
	}
	wg.Wait()

	if rec.Len() != 40 {
		t.Fatalf("Len() = %d, want 40", rec.Len())
	}

	path := filepath.Join(t.TempDir(), "out.parquet")
	n, err := rec.Flush(path)
	if err != nil || n != 40 {
		t.Fatalf("Flush() = %d, %v", n, err)
	}
	if rec.Len() != 0 {
		t.Errorf("buffer not cleared: %d rows", rec.Len())
	}

	rows, err := ReadFile(path)
	if err != nil || len(rows) != 40 {
		t.Fatalf("ReadFile() = %d rows, %v", len(rows), err)
	}

	if n, err := rec.Flush(filepath.Join(t.TempDir(), "empty.parquet")); n != 0 || err != nil {
		t.Errorf("empty Flush() = %d, %v", n, err)
	}
}
