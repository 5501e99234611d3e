package ytdlp

import (
	"strconv"
	"strings"
)

// Progress values reported for post-processing phases. yt-dlp stops printing
// [download] percentages once the transfer is done, so the merge and ffmpeg
// phases are surfaced as near-complete.
const (
	mergeProgress       = 99.0
	postProcessProgress = 99.5
)

// ParseProgress inspects a single output line and, if it matches a known
// pattern, returns a completion percentage. Stateless: the same line always
// yields the same result.
//
// yt-dlp prints transfer progress as:
//
//	[download]  45.2% of 123.45MiB at 1.23MiB/s ETA 00:15
func ParseProgress(line string) (float64, bool) {
	if strings.Contains(line, "[Merger]") || strings.Contains(line, "Merging formats into") {
		return mergeProgress, true
	}

	if strings.Contains(line, "[ffmpeg]") {
		return postProcessProgress, true
	}

	if strings.Contains(line, "[download]") && strings.Contains(line, "%") {
		for _, token := range strings.Fields(line) {
			if !strings.HasSuffix(token, "%") {
				continue
			}
			pct, err := strconv.ParseFloat(strings.TrimSuffix(token, "%"), 64)
			if err != nil {
				// malformed token, keep scanning
				continue
			}
			return pct, true
		}
	}

	return 0, false
}

// PhaseStatus maps recognized post-processing markers to a status message.
// These overwrite the status text independently of numeric progress.
func PhaseStatus(line string) (string, bool) {
	switch {
	case strings.Contains(line, "[Merger]"):
		return "Merging audio and video...", true
	case strings.Contains(line, "[ExtractAudio]"):
		return "Extracting audio...", true
	case strings.Contains(line, "[ffmpeg]") && strings.Contains(line, "Merging"):
		return "Merging streams...", true
	case strings.Contains(line, "[ffmpeg]") && strings.Contains(line, "Converting"):
		return "Converting to " + OutputContainer + "...", true
	}
	return "", false
}
