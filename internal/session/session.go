package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/addonloadgo/internal/addon"
	"github.com/vk/addonloadgo/internal/analyze"
	"github.com/vk/addonloadgo/internal/capability"
	"github.com/vk/addonloadgo/internal/ctxlog"
	"github.com/vk/addonloadgo/internal/dag"
	"github.com/vk/addonloadgo/internal/discover"
	"github.com/vk/addonloadgo/internal/host"
	"github.com/vk/addonloadgo/internal/loader"
	"github.com/vk/addonloadgo/internal/registrar"
)

// ErrInitInProgress is returned when Init or Reload is called while another
// init cycle is still running.
var ErrInitInProgress = errors.New("session: init already in progress")

// ErrNotInitialized is returned by Reload before a successful Init.
var ErrNotInitialized = errors.New("session: not initialized")

// Session drives the load pipeline for one addon root. All methods are safe
// for concurrent use; overlapping init cycles are rejected, not queued.
type Session struct {
	root string
	caps *capability.Registry
	reg  *registrar.Registrar

	mu          sync.Mutex
	inProgress  bool
	initialized bool
	manifest    *addon.Manifest
	descs       map[string]*addon.Descriptor
	graph       *dag.Graph
}

// New creates a session for the addon rooted at root. Extension classes are
// registered with h as modules load.
func New(root string, caps *capability.Registry, h host.Host) *Session {
	return &Session{
		root: root,
		caps: caps,
		reg:  registrar.New(h),
	}
}

// Init runs the full pipeline: read the manifest, discover and analyze
// modules, order them, execute them and register their classes. The returned
// report is non-nil whenever the pipeline reached the ordering stage, even
// alongside an error.
func (s *Session) Init(ctx context.Context) (*addon.LoadReport, error) {
	return s.run(ctx, false)
}

// Reload repeats the pipeline against the current on-disk state. Classes of
// modules that changed are replaced; classes of modules that vanished are
// unregistered. Reload before Init is an error.
func (s *Session) Reload(ctx context.Context) (*addon.LoadReport, error) {
	s.mu.Lock()
	initialized := s.initialized
	s.mu.Unlock()
	if !initialized {
		return nil, ErrNotInitialized
	}
	return s.run(ctx, true)
}

func (s *Session) run(ctx context.Context, reload bool) (*addon.LoadReport, error) {
	if err := s.enter(); err != nil {
		return nil, err
	}
	defer s.leave()

	logger := ctxlog.FromContext(ctx)
	logger.Info("Starting addon init cycle.", "root", s.root, "reload", reload)

	manifest, err := addon.LoadManifest(s.root)
	if err != nil {
		return nil, err
	}

	descriptors, err := discover.Modules(ctx, s.root, manifest.Modules)
	if err != nil {
		return nil, err
	}

	descs := make(map[string]*addon.Descriptor, len(descriptors))
	for _, d := range descriptors {
		descs[d.ID] = d
	}

	// A fresh parser per cycle so reload re-reads every source file.
	parser := hclparse.NewParser()
	for _, d := range descriptors {
		if analyzeErr := analyze.Module(ctx, parser, s.root, d, descs); analyzeErr != nil {
			logger.Warn("Module failed static analysis.", "module", d.ID, "error", analyzeErr)
			d.State = addon.StateFailed
			d.Err = analyzeErr
		}
	}

	g := dag.New()
	for _, d := range descriptors {
		g.AddNode(d.ID, d.Index)
	}
	for _, d := range descriptors {
		for _, dep := range d.Deps {
			if edgeErr := g.AddEdge(dep, d.ID); edgeErr != nil {
				return nil, fmt.Errorf("building dependency graph: %w", edgeErr)
			}
		}
	}

	order, err := g.Sort()
	if err != nil {
		var cycleErr *dag.CycleError
		if errors.As(err, &cycleErr) {
			logger.Error("Dependency cycle detected, no modules loaded.", "error", cycleErr)
			return &addon.LoadReport{Cycles: cycleErr.Cycles}, cycleErr
		}
		return nil, err
	}

	if reload {
		s.unregisterVanished(ctx, descs)
	}

	report := loader.New(s.caps, s.reg).LoadAll(ctx, order, descs, g, reload)

	s.mu.Lock()
	s.initialized = true
	s.manifest = manifest
	s.descs = descs
	s.graph = g
	s.mu.Unlock()

	logger.Info("Addon init cycle complete.",
		"loaded", len(report.Loaded),
		"failed", len(report.Failed),
		"skipped", len(report.Skipped),
		"classes", report.RegisteredClasses,
	)
	return report, nil
}

// unregisterVanished removes registrations belonging to modules that the
// current discovery pass no longer finds. Modules still present keep their
// classes until the loader re-executes them.
func (s *Session) unregisterVanished(ctx context.Context, descs map[string]*addon.Descriptor) {
	logger := ctxlog.FromContext(ctx)
	for _, id := range s.reg.ModulesWithClasses() {
		if _, stillPresent := descs[id]; stillPresent {
			continue
		}
		logger.Info("Module no longer discovered, unregistering its classes.", "module", id)
		for _, failure := range s.reg.UnregisterModule(ctx, id) {
			logger.Error("Failed to unregister class of vanished module.",
				"class", failure.Class, "module", failure.Module, "error", failure.Err)
		}
	}
}

// Teardown unregisters every class in exact reverse registration order and
// clears the session. A failing class is reported and does not stop the rest.
func (s *Session) Teardown(ctx context.Context) *addon.UnregisterReport {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Tearing down session.", "root", s.root)

	report := s.reg.TeardownAll(ctx)

	s.mu.Lock()
	s.initialized = false
	s.manifest = nil
	s.descs = nil
	s.graph = nil
	s.mu.Unlock()

	return report
}

// Reset discards all session state without touching the host. It exists for
// test isolation; production callers want Teardown, which unregisters.
func (s *Session) Reset() {
	s.reg.Reset()

	s.mu.Lock()
	s.inProgress = false
	s.initialized = false
	s.manifest = nil
	s.descs = nil
	s.graph = nil
	s.mu.Unlock()
}

// Manifest returns the manifest of the last successful init cycle, or nil.
func (s *Session) Manifest() *addon.Manifest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.manifest
}

// Modules returns the descriptors of the last init cycle in discovery order.
func (s *Session) Modules() []*addon.Descriptor {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*addon.Descriptor, 0, len(s.descs))
	for _, d := range s.descs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// Module returns one descriptor by dotted id.
func (s *Session) Module(id string) (*addon.Descriptor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.descs[id]
	return d, ok
}

// RegisteredClassIDs returns the ids of currently registered classes in
// registration order.
func (s *Session) RegisteredClassIDs() []host.ClassID {
	return s.reg.ClassIDs()
}

func (s *Session) enter() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inProgress {
		return ErrInitInProgress
	}
	s.inProgress = true
	return nil
}

func (s *Session) leave() {
	s.mu.Lock()
	s.inProgress = false
	s.mu.Unlock()
}
