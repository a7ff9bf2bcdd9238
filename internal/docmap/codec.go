// Package docmap maps domain records to and from remote store documents.
// Every date conversion funnels through the wiretime codec here, on copies:
// encoding never mutates the caller's value, and nothing outside this
// package handles a wire timestamp.
package docmap

import (
	"github.com/taranenko/taskfeed/internal/remote"
)

// Codec converts one entity family between its domain record and its
// document representation.
type Codec[T any] interface {
	// Collection is the family's root collection path.
	Collection() string
	// Encode builds the document fields for a record, wire timestamps
	// included. The record itself is left untouched.
	Encode(v T) map[string]any
	// Decode builds a record from a fetched document.
	Decode(doc remote.Document) (T, error)
	// WithID returns a copy of the record carrying the given id.
	WithID(v T, id string) T
	// EncodePatch wire-converts the date fields of a patch, on a copy.
	EncodePatch(patch map[string]any) map[string]any
	// ApplyPatch returns a copy of the record with the patch applied.
	// Patch values use cache representations (epoch-ms integers).
	ApplyPatch(v T, patch map[string]any) (T, error)
}

// SubcollectionCodec extends Codec for families whose documents own
// subcollections cached as embedded arrays.
type SubcollectionCodec[T any] interface {
	Codec[T]
	// EncodeChild wire-converts the date fields of a new subcollection
	// child's payload, on a copy.
	EncodeChild(sub string, fields map[string]any) (map[string]any, error)
	// ChildID returns the natural id for a new child, or "" when the
	// store should assign one.
	ChildID(sub string, fields map[string]any) string
	// ApplyChild returns a copy of the parent with the subcollection
	// child merged into the matching embedded array.
	ApplyChild(parent T, sub string, child remote.Document) (T, error)
	// RemoveChild returns a copy of the parent with the child removed
	// from the matching embedded array.
	RemoveChild(parent T, sub string, childID string) (T, error)
}
