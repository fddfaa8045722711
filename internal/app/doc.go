// Package app contains the core application logic. It wires the capability
// kinds, the host and the session together and drives the load lifecycle,
// decoupled from any specific entrypoint like a CLI.
package app
