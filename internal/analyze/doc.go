// Package analyze performs static reference extraction over a module's
// source. It never evaluates anything: inferred dependencies come from
// variable traversals in expressions, explicit ones from the module's
// optional requires list, and the union is the module's outgoing edge set.
package analyze
