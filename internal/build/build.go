// Package build packages the application into a standalone bundle with the fyne CLI.
package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"hypernate/resources"
)

// ErrToolMissing indicates the fyne CLI is not installed.
var ErrToolMissing = errors.New("fyne CLI is not installed; run: go install fyne.io/tools/cmd/fyne@latest")

// Options controls a standalone build.
type Options struct {
	AppName   string
	AppID     string
	SourceDir string // package main directory
	IconPath  string // optional icon override
	TargetOS  string // defaults to runtime.GOOS
	Output    io.Writer
	Logger    *slog.Logger
}

// Standalone renders the tray icon into the source dir and runs `fyne package`.
func Standalone(ctx context.Context, options Options) error {
	tool, err := exec.LookPath("fyne")
	if err != nil {
		return ErrToolMissing
	}
	if options.TargetOS == "" {
		options.TargetOS = runtime.GOOS
	}
	if options.Output == nil {
		options.Output = os.Stdout
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	iconPath := filepath.Join(options.SourceDir, "Icon.png")
	if err := resources.WriteIcon(iconPath, options.IconPath); err != nil {
		return fmt.Errorf("build: %w", err)
	}

	args := Args(options, iconPath)
	logger.Info("packaging standalone app", "tool", tool, "args", args)

	cmd := exec.CommandContext(ctx, tool, args...)
	cmd.Stdout = options.Output
	cmd.Stderr = options.Output
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("build: fyne package: %w", err)
	}
	return nil
}

// Args returns the fyne package arguments for options.
func Args(options Options, iconPath string) []string {
	args := []string{
		"package",
		"--os", options.TargetOS,
		"--name", options.AppName,
		"--source-dir", options.SourceDir,
		"--icon", iconPath,
		"--release",
	}
	if options.AppID != "" {
		args = append(args, "--app-id", options.AppID)
	}
	return args
}
