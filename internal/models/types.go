package models

import "fmt"

// QualitySelector represents the stream variant the user asked for.
// Each selector maps to a fixed yt-dlp format-selection expression.
type QualitySelector string

const (
	QualityBest  QualitySelector = "best"
	Quality1080p QualitySelector = "1080p"
	Quality720p  QualitySelector = "720p"
	Quality480p  QualitySelector = "480p"
	QualityAudio QualitySelector = "audio"
)

// JobStatus represents the current state of a download job
type JobStatus string

const (
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusWarning   JobStatus = "warning" // non-zero exit without a fatal error line
	JobStatusFailed    JobStatus = "failed"
)

// FormatExpr returns the yt-dlp format-selection expression for the selector.
// The expression is interpreted entirely by the downloader executable.
func (q QualitySelector) FormatExpr() string {
	switch q {
	case Quality1080p:
		return "bestvideo[height<=1080]+bestaudio/best[height<=1080]"
	case Quality720p:
		return "bestvideo[height<=720]+bestaudio/best[height<=720]"
	case Quality480p:
		return "bestvideo[height<=480]+bestaudio/best[height<=480]"
	case QualityAudio:
		return "bestaudio/best"
	default:
		return "bestvideo+bestaudio/best"
	}
}

// DisplayName returns a human readable label for the selector
func (q QualitySelector) DisplayName() string {
	switch q {
	case Quality1080p:
		return "1080p (Full HD)"
	case Quality720p:
		return "720p (HD)"
	case Quality480p:
		return "480p (SD)"
	case QualityAudio:
		return "Audio Only"
	default:
		return "Best Quality"
	}
}

// ParseQuality validates a quality string coming from the API.
// An empty string falls back to the best quality selector.
func ParseQuality(s string) (QualitySelector, error) {
	switch QualitySelector(s) {
	case QualityBest, Quality1080p, Quality720p, Quality480p, QualityAudio:
		return QualitySelector(s), nil
	case "":
		return QualityBest, nil
	default:
		return "", fmt.Errorf("unknown quality %q", s)
	}
}

// DownloadRequest describes a single download attempt.
// Immutable once a run starts.
type DownloadRequest struct {
	URL     string          `json:"url"`
	Quality QualitySelector `json:"quality"`
}
