package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/addonloadgo/internal/addon"
	"github.com/vk/addonloadgo/internal/ctxlog"
	"github.com/vk/addonloadgo/internal/session"
	"github.com/vk/addonloadgo/internal/watch"
)

// Run executes the main application logic: one init cycle, and in watch mode
// reload cycles until the context is cancelled. Teardown always runs before
// returning so host registrations never outlive the process's addon state.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	report, err := a.session.Init(ctx)
	if report != nil {
		a.summarize(report)
	}
	if err != nil && !a.config.Watch {
		return fmt.Errorf("addon init failed: %w", err)
	}
	if err != nil {
		// In watch mode a broken initial state is not fatal: the user is
		// expected to edit sources until a reload succeeds.
		a.logger.Error("Initial load failed, waiting for changes.", "error", err)
	}

	if a.config.Watch {
		if err := a.watch(ctx); err != nil {
			return err
		}
	}

	teardown := a.session.Teardown(ctx)
	for _, failure := range teardown.Failed {
		a.logger.Error("Class failed to unregister during teardown.",
			"class", failure.Class, "module", failure.Module, "error", failure.Err)
	}
	a.logger.Info("Teardown complete.", "unregistered", len(teardown.Unregistered), "failed", len(teardown.Failed))

	a.logger.Debug("App.Run method finished.")
	return nil
}

// watch blocks reloading on source changes until ctx is cancelled.
func (a *App) watch(ctx context.Context) error {
	w, err := watch.New(a.config.AddonPath, a.config.Debounce, func(ctx context.Context) error {
		report, reloadErr := a.reloadOnce(ctx)
		if report != nil {
			a.summarize(report)
		}
		return reloadErr
	})
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	return w.Run(ctx)
}

// reloadOnce reloads the session, falling back to a fresh Init when the
// initial load never succeeded.
func (a *App) reloadOnce(ctx context.Context) (*addon.LoadReport, error) {
	report, err := a.session.Reload(ctx)
	if errors.Is(err, session.ErrNotInitialized) {
		return a.session.Init(ctx)
	}
	return report, err
}

// summarize logs the outcome of one load cycle.
func (a *App) summarize(report *addon.LoadReport) {
	for _, cycle := range report.Cycles {
		a.logger.Error("Dependency cycle.", "modules", cycle)
	}
	for _, failure := range report.Failed {
		a.logger.Error("Module failed to load.", "module", failure.ID, "error", failure.Err)
	}
	for _, skipped := range report.Skipped {
		a.logger.Warn("Module skipped.", "module", skipped.ID, "failed_dependency", skipped.Cause)
	}
	for _, failure := range report.ClassFailures {
		a.logger.Error("Class failed to register.",
			"class", failure.Class, "module", failure.Module, "error", failure.Err)
	}
	a.logger.Info("Load cycle summary.",
		"loaded", len(report.Loaded),
		"failed", len(report.Failed),
		"skipped", len(report.Skipped),
		"classes", report.RegisteredClasses,
	)
}
