// Package addon holds the shared data model of the load pipeline: module
// descriptors and their lifecycle states, the addon manifest, the error
// taxonomy, and the report types returned by init and teardown.
package addon
