package addon

// ModuleFailure records one module that failed during a load cycle.
type ModuleFailure struct {
	ID  string
	Err error
}

// SkippedModule records a module that was not executed because a transitive
// dependency failed.
type SkippedModule struct {
	ID string
	// Cause is the id of the failed module that doomed this one.
	Cause string
}

// ClassFailure records one extension class the host rejected, or that failed
// to unregister during teardown.
type ClassFailure struct {
	Class  string
	Module string
	Err    error
}

// LoadReport is the aggregate outcome of one init run. Only configuration
// and cycle errors abort a run; everything else lands here so the caller can
// decide whether partial success is acceptable.
type LoadReport struct {
	// Order is the computed topological load order over the discovered set.
	// Empty when the graph is cyclic.
	Order []string
	// Loaded lists modules that reached the registered state, in load order.
	Loaded []string
	// Failed lists per-module parse and execution failures.
	Failed []ModuleFailure
	// Skipped lists modules not executed due to upstream failures.
	Skipped []SkippedModule
	// Cycles names the members of each dependency cycle when sorting failed.
	Cycles [][]string
	// ClassFailures lists extension classes the host rejected.
	ClassFailures []ClassFailure
	// RegisteredClasses is the total number of classes registered with the
	// host during this run.
	RegisteredClasses int
}

// FailedIDs returns just the ids of the failed modules, in report order.
func (r *LoadReport) FailedIDs() []string {
	ids := make([]string, 0, len(r.Failed))
	for _, f := range r.Failed {
		ids = append(ids, f.ID)
	}
	return ids
}

// SkippedIDs returns just the ids of the skipped modules, in report order.
func (r *LoadReport) SkippedIDs() []string {
	ids := make([]string, 0, len(r.Skipped))
	for _, s := range r.Skipped {
		ids = append(ids, s.ID)
	}
	return ids
}

// UnregisterReport is the aggregate outcome of teardown.
type UnregisterReport struct {
	// Unregistered lists class ids in the order they were unregistered,
	// which is the exact reverse of registration order.
	Unregistered []string
	// Failed lists classes whose unregistration failed. A failure never
	// stops attempts on the remaining classes.
	Failed []ClassFailure
}
