package highscore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cubesurvival/internal/logging"
)

// FileStore keeps the high score as a decimal number in a text file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// LoadHighScore returns 0 when the file is missing or unreadable.
func (f *FileStore) LoadHighScore() int {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logging.LogWarn("read high score %s: %v", f.path, err)
		}
		return 0
	}
	text := strings.TrimSpace(string(data))
	v, err := strconv.Atoi(text)
	if err != nil {
		// Older saves may hold a float.
		fv, ferr := strconv.ParseFloat(text, 64)
		if ferr != nil {
			logging.LogWarn("corrupt high score file %s, starting from 0", f.path)
			return 0
		}
		v = int(fv)
	}
	if v < 0 {
		return 0
	}
	return v
}

// SaveHighScore replaces the file atomically: write a temp file, then rename.
func (f *FileStore) SaveHighScore(score int) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create high score dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".highscore-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(strconv.Itoa(score)); err != nil {
		tmp.Close()
		return fmt.Errorf("write high score: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("replace high score file: %w", err)
	}
	return nil
}

func (f *FileStore) Close() error { return nil }
