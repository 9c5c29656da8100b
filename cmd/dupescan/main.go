package main

import (
	"fmt"
	"os"
	"time"

	dupescan "github.com/mattkeenan/dupescan/pkg"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

var fs *pflag.FlagSet

func main() {
	fs = pflag.NewFlagSet("dupescan", pflag.ContinueOnError)

	// Handle options
	dir := fs.StringP("dir", "d", ".", "directory to search for duplicate files")
	configPath := fs.String("config", "", "path to an optional config file")
	workers := fs.Int("workers", dupescan.DefaultWorkers, "number of concurrent bucket workers")
	bufferLimit := fs.String("buffer-limit", "4M", "largest file size hashed in a single read")
	sampleSize := fs.String("sample-size", "64K", "head/tail sample size for large files")
	chunkSize := fs.String("chunk-size", "32K", "read size for streamed hashing")
	algorithm := fs.String("algorithm", "highway128", "fingerprint algorithm (highway128, sha1, sha256)")
	paranoid := fs.Bool("paranoid", false, "byte-compare duplicate groups after hashing")
	minSize := fs.Int64("min-size", 0, "minimum file size in bytes to consider")
	verbose := fs.BoolP("verbose", "v", false, "verbose output")

	fs.Usage = printHelp
	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		os.Exit(1)
	}

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	opts, walkMinSize, err := buildOptions(*configPath)
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}

	// Command line flags override config file values
	if fs.Changed("workers") {
		opts.Workers = *workers
	}
	if fs.Changed("algorithm") {
		opts.Algorithm = *algorithm
	}
	if fs.Changed("paranoid") {
		opts.Paranoid = *paranoid
	}
	if fs.Changed("min-size") {
		walkMinSize = *minSize
	}
	if opts.BufferLimit, err = overrideSize("buffer-limit", *bufferLimit, opts.BufferLimit); err != nil {
		log.Error(err)
		os.Exit(1)
	}
	if opts.SampleSize, err = overrideSize("sample-size", *sampleSize, opts.SampleSize); err != nil {
		log.Error(err)
		os.Exit(1)
	}
	if opts.ChunkSize, err = overrideSize("chunk-size", *chunkSize, opts.ChunkSize); err != nil {
		log.Error(err)
		os.Exit(1)
	}

	started := time.Now()

	finder, err := dupescan.NewFinder(opts)
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}

	entries, err := dupescan.WalkDir(*dir, walkMinSize)
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}

	report := finder.Run(entries)
	if err := dupescan.WriteReport(os.Stdout, report); err != nil {
		log.Error(err)
		os.Exit(1)
	}

	fmt.Printf("\nDone in %.3fs.\n", time.Since(started).Seconds())
}

// buildOptions loads the config file (or defaults) and converts it into
// finder options plus the traversal minimum size.
func buildOptions(configPath string) (dupescan.Options, int64, error) {
	cfg, err := dupescan.LoadConfig(configPath)
	if err != nil {
		return dupescan.Options{}, 0, err
	}

	opts, err := cfg.ToOptions()
	if err != nil {
		return dupescan.Options{}, 0, err
	}

	return opts, cfg.GetWalkConfig().MinSize, nil
}

// overrideSize applies a size flag over the configured value when the flag
// was given on the command line.
func overrideSize(name, value string, configured int) (int, error) {
	if !fs.Changed(name) {
		return configured, nil
	}
	parsed, err := dupescan.ParseHumanSize(value)
	if err != nil {
		return 0, fmt.Errorf("invalid --%s value: %w", name, err)
	}
	return parsed, nil
}

func init() {
	log.SetFormatter(&log.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})
}

func printHelp() {
	println("dupescan - find groups of byte-identical files")
	println("dupescan [options]")
	println("ex) dupescan -d /home/data -v")
	fs.PrintDefaults()
}
