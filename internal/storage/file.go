package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bethropolis/textring/internal/logger"
)

// ErrIsDirectory is returned when the target path names a directory.
var ErrIsDirectory = errors.New("path is a directory")

// Load reads the file at path into sink. A missing file is created empty.
func Load(path string, sink func(rune)) error {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return fmt.Errorf("unable to open '%s': %w", path, ErrIsDirectory)
	case errors.Is(err, os.ErrNotExist):
		logger.Debugf("Storage: '%s' does not exist, creating it", path)
		f, cerr := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
		if cerr != nil {
			return fmt.Errorf("failed to create '%s': %w", path, cerr)
		}
		return f.Close()
	case err != nil:
		return fmt.Errorf("failed to stat '%s': %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file '%s': %w", path, err)
	}
	defer f.Close()

	if err := LoadFrom(f, sink); err != nil {
		return fmt.Errorf("error reading file '%s': %w", path, err)
	}
	return nil
}

// Save writes the characters produced by next to path, replacing its contents.
// The text goes to a temporary file in the same directory which is renamed
// over path once complete, so a failed save leaves the old file intact.
func Save(path string, next func() (rune, bool)) error {
	if path == "" {
		return errors.New("no file path specified for saving")
	}

	perm := os.FileMode(0644)
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return fmt.Errorf("unable to save '%s': %w", path, ErrIsDirectory)
	case err == nil:
		perm = info.Mode().Perm()
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("failed to stat '%s': %w", path, err)
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}
	tmp := f.Name()
	committed := false
	defer func() {
		if !committed {
			f.Close()
			os.Remove(tmp)
		}
	}()

	if err := WriteTo(f, next); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}
	if err := f.Chmod(perm); err != nil {
		return fmt.Errorf("failed to set mode on '%s': %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close file '%s': %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace '%s': %w", path, err)
	}
	committed = true
	logger.Debugf("Storage: Saved '%s'", path)
	return nil
}
