// Package dag models the "must load before" graph over discovered modules
// and computes a deterministic topological load order with Kahn's algorithm.
// The node set is exactly the discovered module set; references to anything
// outside it never become edges.
package dag
