package dupescan

import (
	"fmt"
	"io"
)

// Report is the complete result of one duplicate scan
type Report struct {
	EmptyFiles     []string         `json:"empty_files"`
	TotalFiles     int              `json:"total_files"`
	ScannedFiles   int              `json:"scanned_files"`
	Groups         []DuplicateGroup `json:"groups"`
	RedundantBytes int64            `json:"redundant_bytes"`
	Failures       []FileError      `json:"failures,omitempty"`
}

// buildReport flattens per-bucket results (already in ascending size order)
// into the final report: sequential group indices starting at 1 and the
// redundant-byte total, i.e. the bytes freed by keeping one copy per group.
func buildReport(results []bucketResult, empty []string, total int) *Report {
	report := &Report{
		EmptyFiles:   empty,
		TotalFiles:   total,
		ScannedFiles: total - len(empty),
	}

	index := 0
	for _, res := range results {
		for _, group := range res.groups {
			index++
			group.Index = index
			report.Groups = append(report.Groups, group)
			report.RedundantBytes += group.Size * int64(group.Count-1)
		}
		report.Failures = append(report.Failures, res.failures...)
	}

	return report
}

// WriteReport renders a report in the tool's plain-text layout: the
// empty-file list and counts up front, one stanza per duplicate group, then
// the redundant-byte footer.
func WriteReport(w io.Writer, report *Report) error {
	if _, err := fmt.Fprintf(w, "Empty file list:\n"); err != nil {
		return err
	}
	for _, path := range report.EmptyFiles {
		if _, err := fmt.Fprintf(w, "%s\n", path); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "\nEmpty: %d\nTotal: %d\n\n",
		len(report.EmptyFiles), report.TotalFiles); err != nil {
		return err
	}

	for _, group := range report.Groups {
		if _, err := fmt.Fprintf(w, " #%d (%d) %d B\n", group.Index, group.Count, group.Size); err != nil {
			return err
		}
		for _, path := range group.Paths {
			if _, err := fmt.Fprintf(w, "%s\n", path); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "\n"); err != nil {
			return err
		}
	}

	for _, failure := range report.Failures {
		if _, err := fmt.Fprintf(w, "unreadable: %s\n", failure.Error()); err != nil {
			return err
		}
	}
	if len(report.Failures) > 0 {
		if _, err := fmt.Fprintf(w, "\n"); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "Redundant data size: %d B\n", report.RedundantBytes)
	return err
}
