// Package loader executes modules' top-level code in topological order. A
// module's "top-level code" is the evaluation of its export blocks and
// extension declarations against the exports of already-loaded modules.
// Failures are contained per module: the failing module and everything that
// transitively depends on it are taken out of the run, independent branches
// keep loading.
package loader
