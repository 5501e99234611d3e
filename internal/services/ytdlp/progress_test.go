package ytdlp

import "testing"

func TestParseProgress(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected float64
		ok       bool
	}{
		{
			name:     "download line with percentage",
			line:     "[download]  45.2% of 123.45MiB at 1.23MiB/s ETA 00:15",
			expected: 45.2,
			ok:       true,
		},
		{
			name:     "download line at zero",
			line:     "[download]   0.0% of 10.00MiB at Unknown speed ETA Unknown",
			expected: 0.0,
			ok:       true,
		},
		{
			name:     "download line at completion",
			line:     "[download] 100% of 123.45MiB in 00:42",
			expected: 100,
			ok:       true,
		},
		{
			name:     "merger line reported as near-complete",
			line:     `[Merger] Merging formats into "x.mp4"`,
			expected: 99.0,
			ok:       true,
		},
		{
			name:     "merging formats phrase without bracket tag",
			line:     `Merging formats into "video.mp4"`,
			expected: 99.0,
			ok:       true,
		},
		{
			name:     "ffmpeg line reported as post-processing",
			line:     "[ffmpeg] Converting video",
			expected: 99.5,
			ok:       true,
		},
		{
			name:     "ffmpeg takes precedence over trailing download text",
			line:     "[ffmpeg] remuxing [download] 12.0%",
			expected: 99.5,
			ok:       true,
		},
		{
			name: "unrelated log line",
			line: "[youtube] dQw4w9WgXcQ: Downloading webpage",
			ok:   false,
		},
		{
			name: "blank line",
			line: "",
			ok:   false,
		},
		{
			name: "download line without percent sign",
			line: "[download] Destination: video.mp4",
			ok:   false,
		},
		{
			name: "malformed percentage token",
			line: "[download] ab% of 10MiB",
			ok:   false,
		},
		{
			name:     "malformed token followed by a valid one",
			line:     "[download] ab% 45.2% of 10MiB",
			expected: 45.2,
			ok:       true,
		},
		{
			name: "percent sign outside download line",
			line: "progress 45.2%",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pct, ok := ParseProgress(tt.line)

			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v for line %q", tt.ok, ok, tt.line)
			}
			if ok && pct != tt.expected {
				t.Errorf("expected %v, got %v for line %q", tt.expected, pct, tt.line)
			}
		})
	}
}

func TestParseProgressIsStateless(t *testing.T) {
	line := "[download]  45.2% of 123.45MiB at 1.23MiB/s ETA 00:15"

	first, okFirst := ParseProgress(line)
	second, okSecond := ParseProgress(line)

	if okFirst != okSecond || first != second {
		t.Errorf("same line parsed differently: (%v,%v) vs (%v,%v)", first, okFirst, second, okSecond)
	}
}

func TestPhaseStatus(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected string
		ok       bool
	}{
		{
			name:     "merger phase",
			line:     `[Merger] Merging formats into "x.mp4"`,
			expected: "Merging audio and video...",
			ok:       true,
		},
		{
			name:     "audio extraction phase",
			line:     "[ExtractAudio] Destination: song.mp3",
			expected: "Extracting audio...",
			ok:       true,
		},
		{
			name:     "ffmpeg merging phase",
			line:     "[ffmpeg] Merging streams",
			expected: "Merging streams...",
			ok:       true,
		},
		{
			name:     "ffmpeg converting phase",
			line:     "[ffmpeg] Converting video",
			expected: "Converting to mp4...",
			ok:       true,
		},
		{
			name: "ffmpeg line without a recognized verb",
			line: "[ffmpeg] Fixing malformed AAC bitstream",
			ok:   false,
		},
		{
			name: "plain download line",
			line: "[download]  45.2% of 123.45MiB",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, ok := PhaseStatus(tt.line)

			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v for line %q", tt.ok, ok, tt.line)
			}
			if ok && status != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, status)
			}
		})
	}
}
