package sqlite

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/qatrack/pkg/types"
)

// Export writes every entity table to <dir>/<table>.jsonl, one JSON record
// per line. Each file is replaced atomically. Users are not exported.
// Returns the number of records written per table.
func (b *Backend) Export(ctx context.Context, dir string) (map[string]int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}

	counts := make(map[string]int, len(types.StandardTableNames))
	for _, name := range types.StandardTableNames {
		t, err := b.GetTable(name)
		if err != nil {
			return nil, err
		}
		entities, err := t.List(ctx)
		if err != nil {
			return nil, err
		}
		records := make([]json.RawMessage, 0, len(entities))
		for _, e := range entities {
			data, err := json.Marshal(e)
			if err != nil {
				return nil, fmt.Errorf("encoding %s: %w", name, err)
			}
			records = append(records, data)
		}
		if err := writeJSONL(filepath.Join(dir, name+".jsonl"), records); err != nil {
			return nil, fmt.Errorf("exporting %s: %w", name, err)
		}
		counts[name] = len(records)
	}
	return counts, nil
}

// writeJSONL atomically writes records to a JSONL file using the temp-file,
// fsync, rename pattern.
func writeJSONL(path string, records []json.RawMessage) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	fail := func(format string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf(format, err)
	}

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			return fail("writing record: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fail("writing newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fail("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
