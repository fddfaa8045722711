// Package discover resolves the manifest's ordered module patterns into a
// concrete, ordered list of module descriptors. Discovery is pure: it reads
// the addon tree but never parses or evaluates module code.
package discover
