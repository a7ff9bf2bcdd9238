package remote

import (
	"fmt"
	"strings"
)

// DocPath builds the path of a document inside a collection.
func DocPath(collection, id string) string {
	return collection + "/" + id
}

// SubcollectionPath builds the path of a subcollection under a parent
// document, e.g. SubcollectionPath("posts", "p1", "comments") ->
// "posts/p1/comments".
func SubcollectionPath(collection, parentID, sub string) string {
	return collection + "/" + parentID + "/" + sub
}

// SplitDocPath splits a document path into its collection and document id.
// The id is the last segment; everything before it is the collection path.
func SplitDocPath(path string) (collection, id string, err error) {
	idx := strings.LastIndexByte(path, '/')
	if idx <= 0 || idx == len(path)-1 {
		return "", "", fmt.Errorf("malformed document path %q", path)
	}
	return path[:idx], path[idx+1:], nil
}
