// Package appconfig composes the stores, the version gate and the value resolver into the
// configuration lookups served to clients.
//
// Entries of inactive, missing or version incompatible groups are never served. An entry's
// own version constraint takes precedence over its group's.
package appconfig
