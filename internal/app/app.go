package app

import (
	"io"
	"log/slog"

	"github.com/vk/addonloadgo/internal/capability"
	"github.com/vk/addonloadgo/internal/inmemoryhost"
	"github.com/vk/addonloadgo/internal/session"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	caps    *capability.Registry
	host    *inmemoryhost.Host
	session *session.Session
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger, capability
// registry, host and session. Passing no modules wires the core kinds.
func NewApp(outW io.Writer, cfg *Config, modules ...capability.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	caps := capability.New()
	if len(modules) == 0 {
		modules = coreCapabilities
	}
	for _, mod := range modules {
		mod.Register(caps)
	}
	logger.Debug("Capability kinds registered.", "kinds", caps.BlockTypes())

	h := inmemoryhost.New()

	return &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		caps:    caps,
		host:    h,
		session: session.New(cfg.AddonPath, caps, h),
	}
}

// Logger returns the application's logger. This is primarily for testing.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Session returns the application's session. This is primarily for testing.
func (a *App) Session() *session.Session {
	return a.session
}

// Host returns the in-memory host. This is primarily for testing.
func (a *App) Host() *inmemoryhost.Host {
	return a.host
}
