// Package session owns the lifecycle of one loaded addon: discovery,
// static analysis, dependency ordering, execution and class registration
// live behind a single Init/Reload/Teardown surface. A session is the
// in-process equivalent of enabling an addon in its host.
package session
