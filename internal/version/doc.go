// Package version gates configuration entries by the version of the requesting app.
//
// Versions have the form major.minor.patch with an optional +build suffix, e.g. 4.0.10+80.
// A stored version is a minimum: an app sees the entry once its own version reaches it.
// Missing constraints and malformed version strings never hide an entry.
package version
