package dupescan

import "sort"

// FileEntry is one regular file reported by the traversal collaborator:
// a path plus the exact size observed at traversal time. Entries are
// immutable values; file content is re-opened on demand for each read.
type FileEntry struct {
	Path string
	Size int64
}

// FileError records a per-file read failure. The file is excluded from all
// grouping for the run; the error is carried in the report so callers can
// surface it.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// buildSizeBuckets routes entries into buckets keyed by exact file size.
// Zero-byte files never enter a bucket; they are returned separately,
// sorted, as the empty-file list. Buckets with a single member are dropped
// since no duplicate is possible there.
func buildSizeBuckets(entries []FileEntry) (map[int64][]FileEntry, []string) {
	buckets := make(map[int64][]FileEntry)
	var empty []string

	for _, entry := range entries {
		if entry.Size == 0 {
			empty = append(empty, entry.Path)
			continue
		}
		buckets[entry.Size] = append(buckets[entry.Size], entry)
	}

	for size, bucket := range buckets {
		if len(bucket) < 2 {
			delete(buckets, size)
		}
	}

	sort.Strings(empty)
	return buckets, empty
}

// sortedBucketSizes returns the bucket keys in ascending order. Buckets are
// always handed out in this order so group numbering is stable across runs.
func sortedBucketSizes(buckets map[int64][]FileEntry) []int64 {
	sizes := make([]int64, 0, len(buckets))
	for size := range buckets {
		sizes = append(sizes, size)
	}
	sort.Slice(sizes, func(i, j int) bool { return sizes[i] < sizes[j] })
	return sizes
}
