package dupescan

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// WalkDir is the traversal collaborator: it walks dir recursively and
// returns one FileEntry per regular file found. Symlinks are not followed.
// Files below minSize are skipped (0 keeps everything, including empty
// files, which the engine reports separately).
//
// An unreadable root is a precondition failure and aborts with an error;
// unreadable entries below it are logged and skipped so one bad subtree
// cannot sink the scan.
func WalkDir(dir string, minSize int64) ([]FileEntry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	var entries []FileEntry
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == dir {
				return fmt.Errorf("failed to read directory %s: %w", dir, err)
			}
			log.Warnf("skipping unreadable entry %s: %v", path, err)
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if info.Size() < minSize {
			return nil
		}
		entries = append(entries, FileEntry{Path: path, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debugf("found %d files in [%s]", len(entries), dir)
	return entries, nil
}
