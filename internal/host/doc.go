// Package host defines the contract between the loader and the host
// framework: the Host surface classes are registered with, the Extension
// lifecycle every registrable class must satisfy, and the errors a host may
// return. The loader treats extension classes as opaque; only this contract
// matters.
package host
