// Package dupescan identifies groups of byte-identical regular files using
// a tiered fingerprinting strategy that keeps I/O to a minimum.
//
// # Core API
//
// The main entry point is Finder, which consumes (path, size) entries and
// produces a Report:
//
//	finder, err := dupescan.NewFinder(dupescan.DefaultOptions())
//	if err != nil {
//		return err
//	}
//	entries, err := dupescan.WalkDir("/path/to/dir", 0)
//	if err != nil {
//		return err
//	}
//	report := finder.Run(entries)
//	dupescan.WriteReport(os.Stdout, report)
//
// # Algorithm
//
// Files are first bucketed by exact size; only buckets with two or more
// members are fingerprinted. Buckets whose files fit the buffer limit get a
// single full-content fingerprint per file. Larger files are pre-filtered
// by a cheap head+tail sample fingerprint, and only surviving candidates
// pay for a streamed full-content pass. Equal full-content fingerprints
// define a duplicate group; an optional paranoid mode byte-compares group
// members as well.
//
// A read failure on one file removes that file from the run and is carried
// in Report.Failures; it never aborts the scan.
package dupescan
