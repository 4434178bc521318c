package gamelog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rustyeddy/starters/names"
)

// DirSource reads game logs stored as <Dir>/<FileToken(name)>.csv.
type DirSource struct {
	Dir string
}

// Path returns the file that holds the pitcher's log.
func (s DirSource) Path(pitcher string) string {
	return filepath.Join(s.Dir, names.FileToken(pitcher)+".csv")
}

// Exists reports whether a log is already stored for the pitcher.
func (s DirSource) Exists(pitcher string) bool {
	_, err := os.Stat(s.Path(pitcher))
	return err == nil
}

func (s DirSource) Load(ctx context.Context, pitcher string) ([]Appearance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := s.Path(pitcher)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoLog, path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	apps, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return apps, nil
}

// Save writes a raw game-log table for the pitcher. The file is written to a
// temporary name and renamed into place, so a failed write leaves nothing behind.
func (s DirSource) Save(pitcher string, header []string, rows [][]string) (string, error) {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", s.Dir, err)
	}
	path := s.Path(pitcher)

	tmp, err := os.CreateTemp(s.Dir, ".gamelog-*.csv")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if err := WriteCSV(tmp, header, rows); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}
	return path, nil
}
