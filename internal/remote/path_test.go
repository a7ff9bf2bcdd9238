package remote

import "testing"

func TestSplitDocPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		path           string
		wantCollection string
		wantID         string
		wantErr        bool
	}{
		{name: "top level", path: "tasks/t1", wantCollection: "tasks", wantID: "t1"},
		{name: "subcollection", path: "posts/p1/comments/c1", wantCollection: "posts/p1/comments", wantID: "c1"},
		{name: "no separator", path: "tasks", wantErr: true},
		{name: "trailing slash", path: "tasks/", wantErr: true},
		{name: "leading slash only", path: "/t1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			coll, id, err := SplitDocPath(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.path)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if coll != tt.wantCollection || id != tt.wantID {
				t.Errorf("got (%q, %q), want (%q, %q)", coll, id, tt.wantCollection, tt.wantID)
			}
		})
	}
}

func TestPathBuilders(t *testing.T) {
	t.Parallel()

	if got := DocPath("tasks", "t1"); got != "tasks/t1" {
		t.Errorf("DocPath: got %q", got)
	}
	if got := SubcollectionPath("posts", "p1", "likes"); got != "posts/p1/likes" {
		t.Errorf("SubcollectionPath: got %q", got)
	}
}
