package dupescan

import (
	"bytes"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	"github.com/minio/highwayhash"
)

// Fixed key for the highwayhash fingerprint. The key only needs to be
// stable within a run; it is fixed so fingerprints are reproducible across
// runs as well.
var highwayKey []byte

func init() {
	key, err := hex.DecodeString("4475706c69636174655363616e4b6579f0e1d2c3b4a5968778695a4b3c2d1e0f")
	if err != nil {
		panic(err)
	}
	if _, err := highwayhash.New128(key); err != nil {
		panic(err)
	}
	highwayKey = key
}

// HashAlgorithm represents a fingerprint algorithm configuration
type HashAlgorithm struct {
	Name    string
	TypeID  uint16
	Size    int
	NewFunc func() hash.Hash
}

// GetHashAlgorithm returns the hash algorithm configuration for the given name
func GetHashAlgorithm(name string) (*HashAlgorithm, error) {
	switch strings.ToLower(name) {
	case "highway128":
		return &HashAlgorithm{
			Name:   "highway128",
			TypeID: HashTypeHighway128,
			Size:   HashSizeHighway128,
			NewFunc: func() hash.Hash {
				h, err := highwayhash.New128(highwayKey)
				if err != nil {
					panic(err) // key length validated in init
				}
				return h
			},
		}, nil
	case "sha1":
		return &HashAlgorithm{
			Name:    "sha1",
			TypeID:  HashTypeSHA1,
			Size:    HashSizeSHA1,
			NewFunc: func() hash.Hash { return sha1.New() },
		}, nil
	case "sha256":
		return &HashAlgorithm{
			Name:    "sha256",
			TypeID:  HashTypeSHA256,
			Size:    HashSizeSHA256,
			NewFunc: func() hash.Hash { return sha256.New() },
		}, nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm: %s", name)
	}
}

// GetHashAlgorithmByType returns the hash algorithm configuration for the given type ID
func GetHashAlgorithmByType(typeID uint16) (*HashAlgorithm, error) {
	switch typeID {
	case HashTypeHighway128:
		return GetHashAlgorithm("highway128")
	case HashTypeSHA1:
		return GetHashAlgorithm("sha1")
	case HashTypeSHA256:
		return GetHashAlgorithm("sha256")
	default:
		return nil, fmt.Errorf("unsupported hash type ID: %d", typeID)
	}
}

// fingerprintBuffered computes the full-content fingerprint of a file whose
// size fits in buf using a single bounded read. If the file shrank since it
// was bucketed, the bytes actually read are hashed; a concurrent truncation
// is the file's current content, not an error.
func fingerprintBuffered(path string, algo *HashAlgorithm, buf []byte) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	n, err := io.ReadFull(file, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}

	hasher := algo.NewFunc()
	hasher.Write(buf[:n])
	return string(hasher.Sum(nil)), nil
}

// fingerprintPartial computes the head+tail sample fingerprint of a large
// file: sample bytes from the start and sample bytes ending at EOF,
// concatenated in buf and hashed as one block. Equal partial fingerprints
// mark candidates only; differing ones prove the files distinct.
//
// buf must hold at least 2*sample bytes. For files shorter than 2*sample
// the windows overlap, which is fine: the computation stays a pure function
// of content and size, so it still partitions the bucket correctly.
func fingerprintPartial(path string, size int64, sample int, algo *HashAlgorithm, buf []byte) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	n, err := io.ReadFull(file, buf[:sample])
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("failed to read head of file %s: %w", path, err)
	}

	offset := size - int64(sample)
	if offset < 0 {
		offset = 0
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to seek to tail of file %s: %w", path, err)
	}

	m, err := io.ReadFull(file, buf[n:n+sample])
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("failed to read tail of file %s: %w", path, err)
	}

	hasher := algo.NewFunc()
	hasher.Write(buf[:n+m])
	return string(hasher.Sum(nil)), nil
}

// fingerprintStreamed computes the authoritative full-content fingerprint
// by feeding the whole file through the hash in chunk-sized reads. Equal
// streamed fingerprints define the files as content-identical.
func fingerprintStreamed(path string, algo *HashAlgorithm, chunk []byte) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	hasher := algo.NewFunc()
	for {
		n, err := file.Read(chunk)
		if n > 0 {
			hasher.Write(chunk[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read from file %s: %w", path, err)
		}
	}

	return string(hasher.Sum(nil)), nil
}

// compareFiles reports whether two files are byte-for-byte identical,
// reading both in lockstep through the two halves of buf. Used only by the
// paranoid check; fingerprint equality is otherwise taken as sufficient.
func compareFiles(pathA, pathB string, buf []byte) (bool, error) {
	half := len(buf) / 2
	bufA, bufB := buf[:half], buf[half:half*2]

	fileA, err := os.Open(pathA)
	if err != nil {
		return false, fmt.Errorf("failed to open file %s: %w", pathA, err)
	}
	defer fileA.Close()

	fileB, err := os.Open(pathB)
	if err != nil {
		return false, fmt.Errorf("failed to open file %s: %w", pathB, err)
	}
	defer fileB.Close()

	for {
		n, errA := io.ReadFull(fileA, bufA)
		m, errB := io.ReadFull(fileB, bufB)
		if errA != nil && errA != io.EOF && errA != io.ErrUnexpectedEOF {
			return false, fmt.Errorf("failed to read file %s: %w", pathA, errA)
		}
		if errB != nil && errB != io.EOF && errB != io.ErrUnexpectedEOF {
			return false, fmt.Errorf("failed to read file %s: %w", pathB, errB)
		}
		if n != m || !bytes.Equal(bufA[:n], bufB[:m]) {
			return false, nil
		}
		if errA == io.EOF || errA == io.ErrUnexpectedEOF ||
			errB == io.EOF || errB == io.ErrUnexpectedEOF {
			return true, nil
		}
	}
}

// FingerprintToHexString renders a raw fingerprint digest as hex for display
func FingerprintToHexString(digest string) string {
	return hex.EncodeToString([]byte(digest))
}
