// Package logger configures the process-wide slog logger for the CLI.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/kamikazebr/wgtools/pkg/utils"
)

const (
	MaxLogSize   = 1 * 1024 * 1024  // 1MB per file
	MaxTotalSize = 10 * 1024 * 1024 // 10MB across rotated files
)

var logFile *os.File

// Options controls Init.
type Options struct {
	Verbose bool
	// FilePath, when set, receives log records in addition to stderr.
	FilePath string
	Stderr   io.Writer
}

// Init installs a text slog handler as the default logger and returns it.
func Init(opts Options) (*slog.Logger, error) {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	if opts.Stderr != nil {
		w = opts.Stderr
	}

	if opts.FilePath != "" {
		if err := utils.MkdirAllWithOwnership(filepath.Dir(opts.FilePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		if err := rotateIfNeeded(opts.FilePath); err != nil {
			return nil, fmt.Errorf("failed to rotate logs: %w", err)
		}

		f, err := utils.OpenFileWithOwnership(opts.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		logFile = f
		w = io.MultiWriter(w, f)
	}

	l := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(l)
	return l, nil
}

// rotateIfNeeded moves path aside once it reaches MaxLogSize.
func rotateIfNeeded(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	if info.Size() < MaxLogSize {
		return nil
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	rotatedPath := fmt.Sprintf("%s-%s%s", base, time.Now().Format("20060102-150405"), ext)

	if err := os.Rename(path, rotatedPath); err != nil {
		return err
	}

	return cleanupOldLogs(path)
}

// cleanupOldLogs removes the oldest rotated files until their total size is
// under MaxTotalSize.
func cleanupOldLogs(path string) error {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	files, err := filepath.Glob(base + "-*" + ext)
	if err != nil {
		return err
	}

	// timestamps in the names sort chronologically
	sort.Strings(files)

	var totalSize int64
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			continue
		}
		totalSize += info.Size()
	}

	for totalSize > MaxTotalSize && len(files) > 0 {
		oldest := files[0]
		info, err := os.Stat(oldest)
		if err == nil {
			totalSize -= info.Size()
		}
		os.Remove(oldest)
		files = files[1:]
	}

	return nil
}

// Close closes the log file opened by Init, if any.
func Close() error {
	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		return err
	}
	return nil
}
