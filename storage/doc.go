// Package storage defines the persistence interface for security events
// and the MUS serialization helpers shared by its backends.
package storage
