package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/taranenko/taskfeed/internal/wiretime"
)

// Wire timestamps survive the JSONB round trip as tagged objects:
// {"$timestamp": {"seconds": s, "nanos": n}}. Plain JSON has no timestamp
// type, and storing bare integers would lose which fields are dates.
const timestampTag = "$timestamp"

// encodeFields marshals document fields to JSONB bytes, tagging every
// wiretime.Timestamp on the way out.
func encodeFields(fields map[string]any) ([]byte, error) {
	blob, err := json.Marshal(tagTimestamps(fields))
	if err != nil {
		return nil, fmt.Errorf("encode fields: %w", err)
	}
	return blob, nil
}

// decodeFields unmarshals JSONB bytes back to document fields, restoring
// tagged objects to wiretime.Timestamp values.
func decodeFields(blob []byte) (map[string]any, error) {
	var raw map[string]any
	if err := json.Unmarshal(blob, &raw); err != nil {
		return nil, fmt.Errorf("decode fields: %w", err)
	}
	restored, err := untagValue(raw)
	if err != nil {
		return nil, fmt.Errorf("decode fields: %w", err)
	}
	return restored.(map[string]any), nil
}

func tagTimestamps(v any) any {
	switch val := v.(type) {
	case wiretime.Timestamp:
		return map[string]any{timestampTag: map[string]any{
			"seconds": val.Seconds,
			"nanos":   val.Nanos,
		}}
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = tagTimestamps(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = tagTimestamps(item)
		}
		return out
	default:
		return v
	}
}

func untagValue(v any) (any, error) {
	switch val := v.(type) {
	case map[string]any:
		if inner, ok := val[timestampTag]; ok && len(val) == 1 {
			return untagTimestamp(inner)
		}
		out := make(map[string]any, len(val))
		for k, item := range val {
			restored, err := untagValue(item)
			if err != nil {
				return nil, err
			}
			out[k] = restored
		}
		return out, nil
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			restored, err := untagValue(item)
			if err != nil {
				return nil, err
			}
			out[i] = restored
		}
		return out, nil
	default:
		return v, nil
	}
}

func untagTimestamp(inner any) (wiretime.Timestamp, error) {
	obj, ok := inner.(map[string]any)
	if !ok {
		return wiretime.Timestamp{}, fmt.Errorf("timestamp tag: want object, got %T", inner)
	}
	seconds, ok := obj["seconds"].(float64)
	if !ok {
		return wiretime.Timestamp{}, fmt.Errorf("timestamp tag: missing seconds")
	}
	nanos, ok := obj["nanos"].(float64)
	if !ok {
		return wiretime.Timestamp{}, fmt.Errorf("timestamp tag: missing nanos")
	}
	return wiretime.Timestamp{Seconds: int64(seconds), Nanos: int32(nanos)}, nil
}
