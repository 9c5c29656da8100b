package dupescan

// Hash algorithm type IDs
const (
	HashTypeHighway128 uint16 = 1
	HashTypeSHA1       uint16 = 2
	HashTypeSHA256     uint16 = 3
)

// Hash digest sizes in bytes
const (
	HashSizeHighway128 = 16
	HashSizeSHA1       = 20
	HashSizeSHA256     = 32
)

// Default tuning values. These are I/O cost knobs only; changing them never
// changes which files end up grouped together.
const (
	// DefaultBufferLimit is the size boundary between the full-buffered
	// tier (whole file in one read) and the partial/streamed tiers.
	DefaultBufferLimit = 4 * 1024 * 1024

	// DefaultSampleSize is the length of the head sample and of the tail
	// sample hashed by the partial tier.
	DefaultSampleSize = 64 * 1024

	// DefaultChunkSize is the read size used by the full-streamed tier.
	DefaultChunkSize = 32 * 1024

	// DefaultWorkers is the number of concurrent bucket workers.
	DefaultWorkers = 4
)
