// Package capability holds the registry of capability kinds: the block types
// a module may declare extension classes with, and how each declaration is
// built into a registrable class. Kinds are compiled into the binary and
// registered at startup; module sources can only use kinds that exist here.
package capability
