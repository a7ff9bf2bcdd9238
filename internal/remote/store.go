// Package remote defines the boundary to the hosted document store. The
// core consumes this interface only; concrete drivers live under
// internal/adapter. Date fields inside documents carry wiretime.Timestamp,
// never bare integers; callers convert through the wiretime codec.
package remote

import (
	"context"
)

// Document is one remote document: a store-assigned id plus its fields.
type Document struct {
	ID     string
	Fields map[string]any
}

// FilterOp is a comparison operator supported by Query.
type FilterOp string

const (
	OpEqual          FilterOp = "=="
	OpGreaterOrEqual FilterOp = ">="
	OpLessOrEqual    FilterOp = "<="
)

// Filter restricts a query to documents whose field compares true
// against the value.
type Filter struct {
	Field string
	Op    FilterOp
	Value any
}

// Order sorts query results by a field.
type Order struct {
	Field string
	Desc  bool
}

// Store is the asynchronous document API the sync core runs against.
// Collections nest via slash-separated paths (e.g. "posts/<id>/comments").
type Store interface {
	// Get returns the document at path, or domain.ErrNotFound.
	Get(ctx context.Context, path string) (*Document, error)
	// Query returns documents of a collection matching every filter,
	// ordered as requested. limit <= 0 means no limit.
	Query(ctx context.Context, collection string, filters []Filter, orderBy []Order, limit int) ([]Document, error)
	// Add creates a document with a store-assigned id and returns that id.
	Add(ctx context.Context, collection string, fields map[string]any) (string, error)
	// Set creates or replaces the document at a caller-chosen path.
	Set(ctx context.Context, path string, fields map[string]any) error
	// Update applies a partial patch to the document at path.
	Update(ctx context.Context, path string, patch map[string]any) error
	// Delete removes the document at path.
	Delete(ctx context.Context, path string) error
}
