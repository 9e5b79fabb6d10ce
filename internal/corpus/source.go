package corpus

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// FileIterator is a source stage that yields exactly one file path, once.
type FileIterator struct {
	filename string
	done     bool
}

// NewFileIterator creates a source over a single file path
func NewFileIterator(filename string) *FileIterator {
	return &FileIterator{filename: filename}
}

func (it *FileIterator) Next() (string, error) {
	if it.done {
		return "", Done
	}
	it.done = true
	return it.filename, nil
}

func (it *FileIterator) Metadata() Metadata {
	return Metadata{
		"class":     "FileIterator",
		"base_path": it.filename,
	}
}

// DirIterator is a source stage that walks a directory tree recursively
// (following symbolic links) and yields the absolute path of every regular
// file, in the order the filesystem returns entries. The walk is incremental:
// one directory is read per pull at most, so huge trees do not get buffered
// up front.
type DirIterator struct {
	dirname string
	logger  *zap.Logger

	started bool
	done    bool
	dirs    []string // directories not yet read
	files   []string // file paths queued from the last directory read
}

// NewDirIterator creates a source over all files under dirname
func NewDirIterator(dirname string, logger *zap.Logger) *DirIterator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirIterator{dirname: dirname, logger: logger}
}

func (it *DirIterator) Next() (string, error) {
	if it.done {
		return "", Done
	}
	if !it.started {
		it.started = true
		abs, err := filepath.Abs(it.dirname)
		if err != nil {
			it.done = true
			return "", fmt.Errorf("resolving corpus dir %s: %w", it.dirname, err)
		}
		it.dirs = []string{abs}
	}
	for {
		if len(it.files) > 0 {
			path := it.files[0]
			it.files = it.files[1:]
			it.logger.Info("processing", zap.String("path", path))
			return path, nil
		}
		if len(it.dirs) == 0 {
			it.done = true
			return "", Done
		}
		dir := it.dirs[0]
		it.dirs = it.dirs[1:]
		entries, err := os.ReadDir(dir)
		if err != nil {
			it.done = true
			return "", fmt.Errorf("reading dir %s: %w", dir, err)
		}
		for _, entry := range entries {
			full := filepath.Join(dir, entry.Name())
			// Stat (not Lstat) so symlinked dirs and files are followed
			info, err := os.Stat(full)
			if err != nil {
				// broken symlink or the like: queue it as a file so the
				// failure surfaces when a downstream stage opens it
				it.files = append(it.files, full)
				continue
			}
			if info.IsDir() {
				it.dirs = append(it.dirs, full)
			} else if info.Mode().IsRegular() {
				it.files = append(it.files, full)
			}
		}
	}
}

func (it *DirIterator) Metadata() Metadata {
	return Metadata{
		"class":     "DirIterator",
		"base_path": it.dirname,
	}
}
