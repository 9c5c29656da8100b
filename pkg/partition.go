package dupescan

import (
	"sort"

	log "github.com/sirupsen/logrus"
)

// DuplicateGroup represents a finalized group of content-identical files
type DuplicateGroup struct {
	Index       int      `json:"index"`
	Size        int64    `json:"size"`
	Count       int      `json:"count"`
	Fingerprint string   `json:"fingerprint"`
	Paths       []string `json:"files"`
}

// bucketResult is the outcome of partitioning one size bucket: finalized
// groups (indices unassigned) plus the files dropped for read failures.
type bucketResult struct {
	groups   []DuplicateGroup
	failures []FileError
}

type fingerprintFunc func(FileEntry) (string, error)

// groupByFingerprint applies fp to every entry and groups entries by the
// resulting digest. A file whose fingerprint fails is logged, recorded as a
// failure and excluded; the rest of the bucket is unaffected.
func groupByFingerprint(bucket []FileEntry, fp fingerprintFunc) (map[string][]FileEntry, []FileError) {
	groups := make(map[string][]FileEntry)
	var failures []FileError

	for _, entry := range bucket {
		digest, err := fp(entry)
		if err != nil {
			log.Warnf("skipping unreadable file: %v", err)
			failures = append(failures, FileError{Path: entry.Path, Err: err})
			continue
		}
		groups[digest] = append(groups[digest], entry)
	}

	return groups, failures
}

// partitionBucket refines one size bucket into duplicate groups.
//
// Tier selection is per bucket: when every member fits the buffer limit the
// full-buffered fingerprint is authoritative on its own. Larger files are
// pre-filtered by the cheap head+tail partial fingerprint and only the
// surviving candidate groups pay for a full streamed read.
func (f *Finder) partitionBucket(size int64, bucket []FileEntry, buf []byte) bucketResult {
	var res bucketResult

	if size <= int64(f.opts.BufferLimit) {
		groups, failures := groupByFingerprint(bucket, func(e FileEntry) (string, error) {
			return fingerprintBuffered(e.Path, f.algo, buf[:f.opts.BufferLimit])
		})
		res.failures = failures
		for digest, files := range groups {
			if len(files) >= 2 {
				f.finalizeGroup(size, digest, files, buf, &res)
			}
		}
	} else {
		candidates, failures := groupByFingerprint(bucket, func(e FileEntry) (string, error) {
			return fingerprintPartial(e.Path, size, f.opts.SampleSize, f.algo, buf)
		})
		res.failures = failures

		for _, files := range candidates {
			if len(files) < 2 {
				continue
			}
			// Partial collision is only a candidate signal; confirm with
			// the streamed full-content tier.
			confirmed, streamFailures := groupByFingerprint(files, func(e FileEntry) (string, error) {
				return fingerprintStreamed(e.Path, f.algo, buf[:f.opts.ChunkSize])
			})
			res.failures = append(res.failures, streamFailures...)
			for digest, members := range confirmed {
				if len(members) >= 2 {
					f.finalizeGroup(size, digest, members, buf, &res)
				}
			}
		}
	}

	// Map iteration order is random; fix the order of groups within the
	// bucket by their first (smallest) member path.
	for i := range res.groups {
		sort.Strings(res.groups[i].Paths)
	}
	sort.Slice(res.groups, func(i, j int) bool {
		return res.groups[i].Paths[0] < res.groups[j].Paths[0]
	})
	sort.Slice(res.failures, func(i, j int) bool {
		return res.failures[i].Path < res.failures[j].Path
	})

	return res
}

// finalizeGroup emits a full-tier fingerprint collision as a duplicate
// group, optionally byte-comparing every member against the group's first
// file first.
func (f *Finder) finalizeGroup(size int64, digest string, files []FileEntry, buf []byte, res *bucketResult) {
	if f.opts.Paranoid {
		f.verifyGroup(size, digest, files, buf, res)
		return
	}
	res.groups = append(res.groups, newGroup(size, digest, files))
}

// verifyGroup splits a fingerprint group on direct byte comparison. A
// mismatch here means a genuine hash collision; it is logged loudly and the
// mismatching files are regrouped among themselves.
func (f *Finder) verifyGroup(size int64, digest string, files []FileEntry, buf []byte, res *bucketResult) {
	reference := files[0]
	matched := files[:1]
	var mismatched []FileEntry

	for _, entry := range files[1:] {
		equal, err := compareFiles(reference.Path, entry.Path, buf)
		if err != nil {
			log.Warnf("skipping unreadable file: %v", err)
			res.failures = append(res.failures, FileError{Path: entry.Path, Err: err})
			continue
		}
		if !equal {
			log.Errorf("fingerprint collision between %s and %s (algorithm %s)",
				reference.Path, entry.Path, f.algo.Name)
			mismatched = append(mismatched, entry)
			continue
		}
		matched = append(matched, entry)
	}

	if len(matched) >= 2 {
		res.groups = append(res.groups, newGroup(size, digest, matched))
	}
	if len(mismatched) >= 2 {
		f.verifyGroup(size, digest, mismatched, buf, res)
	}
}

func newGroup(size int64, digest string, files []FileEntry) DuplicateGroup {
	paths := make([]string, len(files))
	for i, entry := range files {
		paths[i] = entry.Path
	}
	return DuplicateGroup{
		Size:        size,
		Count:       len(paths),
		Fingerprint: FingerprintToHexString(digest),
		Paths:       paths,
	}
}
