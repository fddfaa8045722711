// Package registrar registers extension classes with the host in load order
// and unregisters them in exact reverse order. It owns the record of every
// live registration; the session consults it during teardown and reload.
package registrar
