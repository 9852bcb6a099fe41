// Package feed builds Atom feeds from stored articles and sources.
// It maps entities onto the pkg/atom model and renders the documents
// served over HTTP and written by the exporter.
package feed

import "errors"

// Sentinel errors for feed use case operations.
var (
	// ErrInvalidSourceID indicates that the provided source ID is not a positive integer.
	ErrInvalidSourceID = errors.New("invalid source ID")

	// ErrSourceNotFound indicates that no active source has the requested ID.
	ErrSourceNotFound = errors.New("source not found")
)
