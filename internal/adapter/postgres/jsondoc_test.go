package postgres

import (
	"testing"

	"github.com/taranenko/taskfeed/internal/wiretime"
)

func TestFieldsRoundTrip_Timestamps(t *testing.T) {
	t.Parallel()

	fields := map[string]any{
		"title":    "walk dog",
		"deadline": wiretime.ToWire(1_700_000_123_456),
		"tags": []any{
			map[string]any{"name": "home", "color": "#fff"},
		},
		"nested": map[string]any{
			"createdAt": wiretime.ToWire(-1),
		},
	}

	blob, err := encodeFields(fields)
	if err != nil {
		t.Fatalf("encodeFields() error = %v", err)
	}

	got, err := decodeFields(blob)
	if err != nil {
		t.Fatalf("decodeFields() error = %v", err)
	}

	ts, ok := got["deadline"].(wiretime.Timestamp)
	if !ok {
		t.Fatalf("deadline = %T, want wiretime.Timestamp", got["deadline"])
	}
	if wiretime.FromWire(ts) != 1_700_000_123_456 {
		t.Errorf("deadline round trip = %d, want 1700000123456", wiretime.FromWire(ts))
	}

	nested, ok := got["nested"].(map[string]any)
	if !ok {
		t.Fatalf("nested = %T, want map", got["nested"])
	}
	nts, ok := nested["createdAt"].(wiretime.Timestamp)
	if !ok {
		t.Fatalf("nested createdAt = %T, want wiretime.Timestamp", nested["createdAt"])
	}
	if wiretime.FromWire(nts) != -1 {
		t.Errorf("negative ms round trip = %d, want -1", wiretime.FromWire(nts))
	}

	if got["title"] != "walk dog" {
		t.Errorf("title = %v, want walk dog", got["title"])
	}
}

func TestEncodeFields_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	fields := map[string]any{"deadline": wiretime.ToWire(1000)}
	if _, err := encodeFields(fields); err != nil {
		t.Fatalf("encodeFields() error = %v", err)
	}
	if _, ok := fields["deadline"].(wiretime.Timestamp); !ok {
		t.Errorf("caller's field mutated: %T", fields["deadline"])
	}
}

func TestDecodeFields_MalformedTimestampTag(t *testing.T) {
	t.Parallel()

	if _, err := decodeFields([]byte(`{"deadline":{"$timestamp":"oops"}}`)); err == nil {
		t.Fatal("expected error for malformed timestamp tag")
	}
	if _, err := decodeFields([]byte(`{"deadline":{"$timestamp":{"seconds":1}}}`)); err == nil {
		t.Fatal("expected error for timestamp tag without nanos")
	}
}
