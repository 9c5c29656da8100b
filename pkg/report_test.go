package dupescan

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildReport(t *testing.T) {
	results := []bucketResult{
		{
			groups: []DuplicateGroup{
				{Size: 10, Count: 2, Fingerprint: "aa", Paths: []string{"a", "b"}},
				{Size: 10, Count: 3, Fingerprint: "bb", Paths: []string{"c", "d", "e"}},
			},
		},
		{
			failures: []FileError{{Path: "broken", Err: errors.New("permission denied")}},
		},
		{
			groups: []DuplicateGroup{
				{Size: 100, Count: 2, Fingerprint: "cc", Paths: []string{"f", "g"}},
			},
		},
	}

	report := buildReport(results, []string{"empty1", "empty2"}, 12)

	require.Len(t, report.Groups, 3)
	require.Equal(t, 1, report.Groups[0].Index)
	require.Equal(t, 2, report.Groups[1].Index)
	require.Equal(t, 3, report.Groups[2].Index)

	// 10*(2-1) + 10*(3-1) + 100*(2-1)
	require.Equal(t, int64(130), report.RedundantBytes)

	require.Equal(t, 12, report.TotalFiles)
	require.Equal(t, 10, report.ScannedFiles)
	require.Equal(t, []string{"empty1", "empty2"}, report.EmptyFiles)

	require.Len(t, report.Failures, 1)
	require.Equal(t, "broken", report.Failures[0].Path)
}

func TestBuildReport_NoDuplicates(t *testing.T) {
	report := buildReport(nil, nil, 5)

	require.Empty(t, report.Groups)
	require.Zero(t, report.RedundantBytes)
	require.Equal(t, 5, report.TotalFiles)
	require.Equal(t, 5, report.ScannedFiles)
}

func TestWriteReport(t *testing.T) {
	report := &Report{
		EmptyFiles:   []string{"/data/empty"},
		TotalFiles:   5,
		ScannedFiles: 4,
		Groups: []DuplicateGroup{
			{Index: 1, Size: 10, Count: 2, Fingerprint: "aa", Paths: []string{"/data/a", "/data/b"}},
		},
		RedundantBytes: 10,
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, report))

	expected := "Empty file list:\n" +
		"/data/empty\n" +
		"\n" +
		"Empty: 1\n" +
		"Total: 5\n" +
		"\n" +
		" #1 (2) 10 B\n" +
		"/data/a\n" +
		"/data/b\n" +
		"\n" +
		"Redundant data size: 10 B\n"
	require.Equal(t, expected, buf.String())
}

func TestWriteReport_Failures(t *testing.T) {
	report := &Report{
		TotalFiles:   2,
		ScannedFiles: 2,
		Failures:     []FileError{{Path: "/data/blocked", Err: errors.New("permission denied")}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, report))

	require.Contains(t, buf.String(), "unreadable: /data/blocked: permission denied\n")
	require.Contains(t, buf.String(), "Redundant data size: 0 B\n")
}

func TestFileError(t *testing.T) {
	cause := errors.New("i/o error")
	err := &FileError{Path: "/data/x", Err: cause}

	require.Equal(t, "/data/x: i/o error", err.Error())
	require.ErrorIs(t, err, cause)
}
