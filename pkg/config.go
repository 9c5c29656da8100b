package dupescan

import (
	"fmt"
	"os"

	"github.com/go-ini/ini"
)

// Config represents the dupescan configuration file
type Config struct {
	configPath string
	ini        *ini.File
}

// FingerprintConfig represents fingerprint algorithm configuration
type FingerprintConfig struct {
	Algorithm string // Fingerprint algorithm name (default: highway128)
	Paranoid  bool   // Byte-compare groups after fingerprinting (default: false)
}

// PerformanceConfig represents performance-related configuration
type PerformanceConfig struct {
	BufferLimit string // Full-buffered tier size limit (default: "4M")
	SampleSize  string // Partial tier head/tail sample size (default: "64K")
	ChunkSize   string // Full-streamed tier read size (default: "32K")
	Workers     int    // Number of concurrent bucket workers (default: 4)
}

// WalkConfig represents traversal configuration
type WalkConfig struct {
	MinSize int64 // Minimum file size in bytes to consider (default: 0)
}

// LoadConfig loads configuration from the given path. A missing or empty
// path yields an in-memory config holding the defaults.
func LoadConfig(configPath string) (*Config, error) {
	cfg := &Config{
		configPath: configPath,
	}

	if configPath == "" {
		cfg.ini = ini.Empty()
		if err := cfg.setDefaults(); err != nil {
			return nil, fmt.Errorf("failed to set default config: %w", err)
		}
		return cfg, nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg.ini = ini.Empty()
		if err := cfg.setDefaults(); err != nil {
			return nil, fmt.Errorf("failed to set default config: %w", err)
		}
		return cfg, nil
	}

	iniFile, err := ini.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	cfg.ini = iniFile

	return cfg, nil
}

// setDefaults sets default configuration values
func (c *Config) setDefaults() error {
	fingerprintSection, err := c.ini.NewSection("fingerprint")
	if err != nil {
		return fmt.Errorf("failed to create fingerprint section: %w", err)
	}
	if _, err := fingerprintSection.NewKey("algorithm", "highway128"); err != nil {
		return fmt.Errorf("failed to set default algorithm: %w", err)
	}
	if _, err := fingerprintSection.NewKey("paranoid", "false"); err != nil {
		return fmt.Errorf("failed to set default paranoid mode: %w", err)
	}

	performanceSection, err := c.ini.NewSection("performance")
	if err != nil {
		return fmt.Errorf("failed to create performance section: %w", err)
	}
	if _, err := performanceSection.NewKey("buffer_limit", "4M"); err != nil {
		return fmt.Errorf("failed to set default buffer limit: %w", err)
	}
	if _, err := performanceSection.NewKey("sample_size", "64K"); err != nil {
		return fmt.Errorf("failed to set default sample size: %w", err)
	}
	if _, err := performanceSection.NewKey("chunk_size", "32K"); err != nil {
		return fmt.Errorf("failed to set default chunk size: %w", err)
	}
	if _, err := performanceSection.NewKey("workers", "4"); err != nil {
		return fmt.Errorf("failed to set default workers: %w", err)
	}

	walkSection, err := c.ini.NewSection("walk")
	if err != nil {
		return fmt.Errorf("failed to create walk section: %w", err)
	}
	if _, err := walkSection.NewKey("min_size", "0"); err != nil {
		return fmt.Errorf("failed to set default min size: %w", err)
	}

	return nil
}

// Save writes the configuration to its file
func (c *Config) Save() error {
	if c.configPath == "" {
		return fmt.Errorf("no config path set")
	}
	if err := c.ini.SaveTo(c.configPath); err != nil {
		return fmt.Errorf("failed to save config file: %w", err)
	}
	return nil
}

// GetFingerprintConfig returns the fingerprint configuration
func (c *Config) GetFingerprintConfig() *FingerprintConfig {
	fingerprintConfig := &FingerprintConfig{
		Algorithm: "highway128", // fallback default
		Paranoid:  false,
	}

	if c.ini.HasSection("fingerprint") {
		section := c.ini.Section("fingerprint")
		if section.HasKey("algorithm") {
			fingerprintConfig.Algorithm = section.Key("algorithm").String()
		}
		if section.HasKey("paranoid") {
			if paranoid, err := section.Key("paranoid").Bool(); err == nil {
				fingerprintConfig.Paranoid = paranoid
			}
		}
	}

	return fingerprintConfig
}

// GetPerformanceConfig returns the performance configuration
func (c *Config) GetPerformanceConfig() *PerformanceConfig {
	performanceConfig := &PerformanceConfig{
		BufferLimit: "4M",  // fallback defaults
		SampleSize:  "64K",
		ChunkSize:   "32K",
		Workers:     DefaultWorkers,
	}

	if c.ini.HasSection("performance") {
		section := c.ini.Section("performance")
		if section.HasKey("buffer_limit") {
			if limit := section.Key("buffer_limit").String(); limit != "" {
				performanceConfig.BufferLimit = limit
			}
		}
		if section.HasKey("sample_size") {
			if sample := section.Key("sample_size").String(); sample != "" {
				performanceConfig.SampleSize = sample
			}
		}
		if section.HasKey("chunk_size") {
			if chunk := section.Key("chunk_size").String(); chunk != "" {
				performanceConfig.ChunkSize = chunk
			}
		}
		if section.HasKey("workers") {
			if workers, err := section.Key("workers").Int(); err == nil {
				performanceConfig.Workers = workers
			}
		}
	}

	return performanceConfig
}

// GetWalkConfig returns the traversal configuration
func (c *Config) GetWalkConfig() *WalkConfig {
	walkConfig := &WalkConfig{
		MinSize: 0, // fallback default
	}

	if c.ini.HasSection("walk") {
		section := c.ini.Section("walk")
		if section.HasKey("min_size") {
			if minSize, err := section.Key("min_size").Int64(); err == nil {
				walkConfig.MinSize = minSize
			}
		}
	}

	return walkConfig
}

// ToOptions converts the configuration into Finder options, parsing the
// human-readable size values.
func (c *Config) ToOptions() (Options, error) {
	fingerprintConfig := c.GetFingerprintConfig()
	performanceConfig := c.GetPerformanceConfig()

	bufferLimit, err := ParseHumanSize(performanceConfig.BufferLimit)
	if err != nil {
		return Options{}, fmt.Errorf("invalid buffer_limit: %w", err)
	}
	sampleSize, err := ParseHumanSize(performanceConfig.SampleSize)
	if err != nil {
		return Options{}, fmt.Errorf("invalid sample_size: %w", err)
	}
	chunkSize, err := ParseHumanSize(performanceConfig.ChunkSize)
	if err != nil {
		return Options{}, fmt.Errorf("invalid chunk_size: %w", err)
	}

	return Options{
		Algorithm:   fingerprintConfig.Algorithm,
		BufferLimit: bufferLimit,
		SampleSize:  sampleSize,
		ChunkSize:   chunkSize,
		Workers:     performanceConfig.Workers,
		Paranoid:    fingerprintConfig.Paranoid,
	}, nil
}
