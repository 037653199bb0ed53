package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"

	"hypernate/internal/build"
	"hypernate/internal/config"
	"hypernate/internal/core/controller"
	"hypernate/internal/core/worker"
	"hypernate/internal/logger"
	"hypernate/internal/platform"
	"hypernate/internal/platform/input"
	"hypernate/internal/platform/power"
	"hypernate/internal/ui/notify"
	"hypernate/internal/ui/tray"
	"hypernate/resources"
)

// rootFlags keeps cobra out of the run logic.
type rootFlags struct {
	ConfigPath string
	Interval   int
	StartOff   bool
	Build      bool
	IconPath   string
	LogDir     string
}

func newRootCmd() *cobra.Command {
	return bindRootCmd(&rootFlags{})
}

func bindRootCmd(flags *rootFlags) *cobra.Command {
	root := &cobra.Command{
		Use:   appSlug,
		Short: "Hypernate keeps your machine awake from the system tray",
		Long: `Hypernate nudges the mouse pointer by one pixel on a fixed interval so the
operating system never considers the session idle. It lives in the system tray,
can be switched on and off from its menu, and only one copy runs per machine.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, newEnvironment(cmd))
		},
	}

	root.Flags().StringVar(&flags.ConfigPath, "config", "", "Path to config.yaml (default: user config dir)")
	root.Flags().IntVar(&flags.Interval, "interval", 30, "Nudge interval in seconds (minimum 5)")
	root.Flags().BoolVar(&flags.StartOff, "start-off", false, "Start with Hypernate disabled")
	root.Flags().BoolVar(&flags.Build, "build", false, "Build a standalone app with the fyne CLI and exit")
	root.Flags().StringVar(&flags.IconPath, "icon", "", "Tray icon PNG (overrides HYPERNATE_ICON)")
	root.Flags().StringVar(&flags.LogDir, "log-dir", "", "Directory for hypernate.log (default: next to the executable)")

	root.AddCommand(newAutostartCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of hypernate",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s v%s\n", appSlug, version)
		},
	}
}

// environment holds the process-level collaborators of run.
type environment struct {
	notifier notify.Notifier
	verify   func() error
	acquire  func(slug string) (*platform.InstanceGuard, error)
	slug     string
	tray     func(cfg config.Config, log *slog.Logger, logPath string, notifier notify.Notifier) error
}

func newEnvironment(cmd *cobra.Command) environment {
	return environment{
		notifier: notify.New(cmd.OutOrStdout(), cmd.ErrOrStderr()),
		verify:   platform.VerifyEnvironment,
		acquire:  platform.AcquireSingleInstance,
		slug:     appSlug,
		tray:     runTray,
	}
}

// run returns nil when another instance already holds the lock, so the duplicate exits 0.
func run(cmd *cobra.Command, flags *rootFlags, env environment) error {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	log, logPath, closeLog := setupLogging(cfg)
	defer closeLog()
	log.Info(appName+" starting up", "version", version, "interval", cfg.Interval, "active", cfg.StartActive)

	notifier := env.notifier

	if flags.Build {
		return runBuild(cmd.Context(), cfg, log)
	}

	if err := env.verify(); err != nil {
		notifier.Notify(appName, err.Error(), true)
		return err
	}

	guard, err := env.acquire(env.slug)
	switch {
	case errors.Is(err, platform.ErrAlreadyRunning):
		log.Info("another instance holds the lock", "error", err)
		notifier.Notify(appName, appName+" is already running in the system tray.", false)
		return nil
	case err != nil:
		notifier.Notify(appName, fmt.Sprintf("Cannot check for a running instance: %v", err), true)
		return err
	}
	defer func() {
		if err := guard.Release(); err != nil {
			log.Warn("release instance guard", "error", err)
		}
	}()
	log.Info("instance guard acquired", "lock", guard.Name())

	return env.tray(cfg, log, logPath, notifier)
}

func runTray(cfg config.Config, log *slog.Logger, logPath string, notifier notify.Notifier) error {
	fyneApp := app.NewWithID(appID)
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		notifier.Notify(appName, "Tray failed to start: system tray unsupported on this platform", true)
		return fmt.Errorf("%w: system tray unsupported", controller.ErrPresentation)
	}

	activeIcon, inactiveIcon, err := resources.TrayIcons(cfg.IconPath)
	if err != nil {
		log.Warn("tray icon", "error", err)
	}
	if activeIcon != nil {
		fyneApp.SetIcon(activeIcon)
	}

	taskConfig := cfg.TaskConfig()
	task := worker.New(taskConfig.Interval, taskConfig.StartActive, input.NewMouseNudger(), worker.Options{Logger: log})
	ctrl := controller.New(task, fyneApp, controller.Options{
		AppName:   appName,
		OpenLog:   func() error { return openLog(fyneApp, logPath) },
		Notifier:  notifier,
		Inhibitor: power.New(appSlug),
		Logger:    log,
	})

	tray.New(desktopApp, appName, tray.Icons{Active: activeIcon, Inactive: inactiveIcon}, task.Active(), tray.Callbacks{
		OnToggle:  ctrl.HandleToggle,
		OnOpenLog: ctrl.HandleOpenLog,
		OnQuit:    ctrl.HandleQuit,
	})

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)
	go signalWatch{
		signals: signals,
		stop:    func() { signal.Stop(signals) },
		done:    ctrl.Done(),
		quit:    func() { fyne.Do(ctrl.HandleQuit) },
		grace:   shutdownGrace,
		exit:    os.Exit,
		logger:  log,
	}.run()

	if err := ctrl.Run(); err != nil {
		return err
	}
	log.Info(appName + " stopped")
	return nil
}

func runBuild(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	sourceDir := "."
	if _, err := os.Stat(filepath.Join("cmd", "main.go")); err == nil {
		sourceDir = "cmd"
	}
	return build.Standalone(ctx, build.Options{
		AppName:   appName,
		AppID:     appID,
		SourceDir: sourceDir,
		IconPath:  cfg.IconPath,
		Logger:    log,
	})
}

func loadConfig(cmd *cobra.Command, flags *rootFlags) (config.Config, error) {
	path := flags.ConfigPath
	if path == "" {
		if configDir, err := platform.NewService().GetConfigDir(); err == nil {
			path = config.DefaultPath(configDir, appSlug)
		}
	}

	var overrides config.Overrides
	if cmd.Flags().Changed("interval") {
		overrides.IntervalSeconds = &flags.Interval
	}
	if cmd.Flags().Changed("start-off") {
		overrides.StartOff = &flags.StartOff
	}
	if cmd.Flags().Changed("icon") {
		overrides.IconPath = &flags.IconPath
	}
	if cmd.Flags().Changed("log-dir") {
		overrides.LogDir = &flags.LogDir
	}
	return config.Load(path, overrides)
}

// setupLogging never fails: without a writable log file it logs to the console only.
func setupLogging(cfg config.Config) (*slog.Logger, string, func()) {
	logCfg := logger.Config{
		Dir:     cfg.LogDir,
		Console: os.Stderr,
		Color:   logger.IsTerminal(os.Stderr),
	}
	log, closer, err := logger.New(logCfg)
	if err != nil {
		log = slog.New(logger.NewColorTextHandler(os.Stderr, nil))
		log.Warn("log file unavailable, logging to console only", "error", err)
		closer = io.NopCloser(nil)
	}
	slog.SetDefault(log)
	return log, logCfg.Path(), func() { _ = closer.Close() }
}

func openLog(fyneApp fyne.App, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	target := &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	if err := fyneApp.OpenURL(target); err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	return nil
}
