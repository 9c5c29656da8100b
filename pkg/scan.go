package dupescan

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Options holds the tuning knobs for a Finder. Every field affects I/O
// cost only, never which files are reported as duplicates.
type Options struct {
	Algorithm   string // fingerprint algorithm name (see GetHashAlgorithm)
	BufferLimit int    // max size routed to the full-buffered tier
	SampleSize  int    // head and tail sample length for the partial tier
	ChunkSize   int    // read size for the full-streamed tier
	Workers     int    // concurrent bucket workers; 1 = fully sequential
	Paranoid    bool   // byte-compare group members after fingerprinting
}

// DefaultOptions returns the default tuning values
func DefaultOptions() Options {
	return Options{
		Algorithm:   "highway128",
		BufferLimit: DefaultBufferLimit,
		SampleSize:  DefaultSampleSize,
		ChunkSize:   DefaultChunkSize,
		Workers:     DefaultWorkers,
	}
}

// Finder locates groups of byte-identical files among a set of file entries
type Finder struct {
	opts Options
	algo *HashAlgorithm
}

// NewFinder validates opts and returns a ready Finder
func NewFinder(opts Options) (*Finder, error) {
	if opts.BufferLimit <= 0 {
		return nil, fmt.Errorf("buffer limit must be positive, got %d", opts.BufferLimit)
	}
	if opts.SampleSize <= 0 {
		return nil, fmt.Errorf("sample size must be positive, got %d", opts.SampleSize)
	}
	if opts.ChunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", opts.ChunkSize)
	}
	if opts.Workers < 1 {
		return nil, fmt.Errorf("worker count must be at least 1, got %d", opts.Workers)
	}

	algo, err := GetHashAlgorithm(opts.Algorithm)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"algorithm":    algo.Name,
		"buffer_limit": opts.BufferLimit,
		"sample_size":  opts.SampleSize,
		"chunk_size":   opts.ChunkSize,
		"workers":      opts.Workers,
		"paranoid":     opts.Paranoid,
	}).Debug("duplicate finder settings")

	return &Finder{opts: opts, algo: algo}, nil
}

// Run partitions entries into duplicate groups and builds the report.
//
// The size-bucket map is built single-threaded, then buckets are fanned out
// to the worker pool. Buckets are independent by construction (size is a
// perfect discriminator) and each worker owns its scratch buffer, so no
// locking is needed; results land in a slice indexed by ascending size, so
// worker count never changes the output.
func (f *Finder) Run(entries []FileEntry) *Report {
	buckets, empty := buildSizeBuckets(entries)
	sizes := sortedBucketSizes(buckets)
	results := make([]bucketResult, len(sizes))

	workers := f.opts.Workers
	if workers > len(sizes) {
		workers = len(sizes)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf := make([]byte, f.scratchSize())
			for job := range jobs {
				size := sizes[job]
				log.Debugf("partitioning bucket size=%d files=%d", size, len(buckets[size]))
				results[job] = f.partitionBucket(size, buckets[size], buf)
			}
		}()
	}
	for job := range sizes {
		jobs <- job
	}
	close(jobs)
	wg.Wait()

	return buildReport(results, empty, len(entries))
}

// FindDuplicates walks dir and runs a Finder over everything found. It is
// the convenience entry point used by the CLI.
func FindDuplicates(dir string, opts Options) (*Report, error) {
	finder, err := NewFinder(opts)
	if err != nil {
		return nil, err
	}

	entries, err := WalkDir(dir, 0)
	if err != nil {
		return nil, err
	}

	return finder.Run(entries), nil
}

// scratchSize returns the per-worker buffer size: large enough for the
// full-buffered tier, a concatenated head+tail sample, or the two lockstep
// halves of a paranoid compare, whichever is biggest.
func (f *Finder) scratchSize() int {
	need := f.opts.BufferLimit
	if s := 2 * f.opts.SampleSize; s > need {
		need = s
	}
	if c := 2 * f.opts.ChunkSize; c > need {
		need = c
	}
	return need
}
