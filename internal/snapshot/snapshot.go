// Package snapshot keeps the data model's JSON text in the data directory
// so that separate CLI invocations see the same entries.
package snapshot

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/satchel/internal/model"
)

// FileName is the snapshot file inside the data directory.
const FileName = "model.json"

// Path returns the snapshot path for dataDir.
func Path(dataDir string) string {
	return filepath.Join(dataDir, FileName)
}

// Load reads the snapshot in dataDir. A missing file yields an empty model.
func Load(dataDir string) (*model.DataModel, error) {
	data, err := os.ReadFile(Path(dataDir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.New(), nil
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	m, err := model.FromJSON(string(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", Path(dataDir), err)
	}
	return m, nil
}

// Save writes m to dataDir, creating the directory if needed. The file is
// replaced atomically.
func Save(dataDir string, m *model.DataModel) error {
	text, err := m.ToJSON()
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	return writeAtomic(Path(dataDir), []byte(text+"\n"))
}

// writeAtomic writes data to a temp file in the target directory, syncs it,
// and renames it over path.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".model-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
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
