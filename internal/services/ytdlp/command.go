package ytdlp

import "path/filepath"

// OutputContainer is the container every download is forced into. Streams
// fetched in a different native container are remuxed by the downloader.
const OutputContainer = "mp4"

// OutputTemplate names the downloaded file after the video title
const OutputTemplate = "%(title)s.%(ext)s"

// Options carries the filesystem paths the downloader needs at spawn time.
// How the executables get to those paths is a deployment concern.
type Options struct {
	DenoPath    string // script-runtime helper for site-side challenges
	FFmpegPath  string // remuxer, registered so yt-dlp does not need a system copy
	DownloadDir string // directory the output template is rooted in
}

// BuildArgs constructs the yt-dlp argument list for a single download.
func BuildArgs(url, formatExpr string, opts Options) []string {
	return []string{
		url,
		"-f", formatExpr,
		"-o", filepath.Join(opts.DownloadDir, OutputTemplate),
		"--merge-output-format", OutputContainer,
		"--remux-video", OutputContainer,
		"--js-runtimes", "deno:" + opts.DenoPath,
		"--ffmpeg-location", opts.FFmpegPath,
		"--newline",
		"--progress",
		"--no-warnings",
	}
}
