package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/amaumene/grabarr/internal/config"
	"github.com/sirupsen/logrus"
)

// Runner abstracts the downloader executable so the supervisor can be tested
// against a scripted fake process.
type Runner interface {
	Start(ctx context.Context, url, formatExpr string) (Process, error)
}

// Process is a handle on a started downloader subprocess. Both streams must
// be drained concurrently; the child can stall if either pipe fills up.
type Process interface {
	Stdout() io.Reader
	Stderr() io.Reader
	// Wait blocks until the process exits. A non-zero exit is reported as
	// *ExitError; any other error is an OS-level wait failure.
	Wait() error
}

// ExitError reports a non-zero subprocess exit code
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Client spawns the real yt-dlp executable
type Client struct {
	binPath string
	opts    Options
	logger  *logrus.Logger
}

// NewClient creates a new yt-dlp client from configuration
func NewClient(cfg *config.Config, logger *logrus.Logger) (*Client, error) {
	if cfg.YTDLPPath == "" {
		return nil, fmt.Errorf("yt-dlp path is required")
	}

	return &Client{
		binPath: cfg.YTDLPPath,
		opts: Options{
			DenoPath:    cfg.DenoPath,
			FFmpegPath:  cfg.FFmpegPath,
			DownloadDir: cfg.DownloadDir,
		},
		logger: logger,
	}, nil
}

// Start spawns yt-dlp with both output streams piped
func (c *Client) Start(ctx context.Context, url, formatExpr string) (Process, error) {
	args := BuildArgs(url, formatExpr, c.opts)

	c.logger.WithFields(logrus.Fields{
		"bin":    c.binPath,
		"url":    url,
		"format": formatExpr,
	}).Debug("Spawning yt-dlp")

	cmd := exec.CommandContext(ctx, c.binPath, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to pipe stdout: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to pipe stderr: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	return &execProcess{cmd: cmd, stdout: stdout, stderr: stderr}, nil
}

// execProcess wraps an os/exec command as a Process
type execProcess struct {
	cmd    *exec.Cmd
	stdout io.Reader
	stderr io.Reader
}

func (p *execProcess) Stdout() io.Reader { return p.stdout }
func (p *execProcess) Stderr() io.Reader { return p.stderr }

func (p *execProcess) Wait() error {
	err := p.cmd.Wait()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Code: exitErr.ExitCode()}
	}
	return err
}
