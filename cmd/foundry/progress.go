// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// ProgressConfig determines if and how progress should be displayed.
type ProgressConfig struct {
	// Enabled is false under --json or -q, and when stderr is not a TTY.
	Enabled bool

	Writer  io.Writer
	NoColor bool
}

// NewProgressConfig creates a progress configuration from the global flags
// and TTY detection.
func NewProgressConfig(globals GlobalFlags) ProgressConfig {
	return ProgressConfig{
		Enabled: !globals.Quiet && isatty.IsTerminal(os.Stderr.Fd()),
		Writer:  os.Stderr,
		NoColor: globals.NoColor,
	}
}

// NewProgressBar returns a progress bar, or nil when progress is disabled.
// The returned bar may be passed to advance either way.
func NewProgressBar(cfg ProgressConfig, total int64, description string) *progressbar.ProgressBar {
	if !cfg.Enabled {
		return nil
	}

	return progressbar.NewOptions64(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(cfg.Writer),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionEnableColorCodes(!cfg.NoColor),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

// advance moves bar by one step. A nil bar is ignored.
func advance(bar *progressbar.ProgressBar, step string) {
	if bar == nil {
		return
	}
	bar.Describe(step)
	_ = bar.Add(1)
}

// finish completes bar. A nil bar is ignored.
func finish(bar *progressbar.ProgressBar) {
	if bar == nil {
		return
	}
	_ = bar.Finish()
}
