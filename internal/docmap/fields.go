package docmap

import (
	"fmt"

	"github.com/taranenko/taskfeed/internal/wiretime"
)

// Field readers shared by the family codecs. Required readers error on a
// missing or mistyped value; optional readers return nil instead.

func fieldString(fields map[string]any, key string) (string, error) {
	raw, ok := fields[key]
	if !ok || raw == nil {
		return "", fmt.Errorf("field %q: missing", key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("field %q: want string, got %T", key, raw)
	}
	return s, nil
}

func fieldOptString(fields map[string]any, key string) *string {
	raw, ok := fields[key]
	if !ok || raw == nil {
		return nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil
	}
	return &s
}

func fieldBool(fields map[string]any, key string) (bool, error) {
	raw, ok := fields[key]
	if !ok || raw == nil {
		return false, fmt.Errorf("field %q: missing", key)
	}
	b, ok := raw.(bool)
	if !ok {
		return false, fmt.Errorf("field %q: want bool, got %T", key, raw)
	}
	return b, nil
}

// fieldTimeMs reads a wire timestamp as epoch milliseconds. A missing or
// null value yields 0 with ok=false rather than an error; callers decide
// whether absence is acceptable.
func fieldTimeMs(fields map[string]any, key string) (int64, bool, error) {
	raw, ok := fields[key]
	if !ok || raw == nil {
		return 0, false, nil
	}
	ts, ok := raw.(wiretime.Timestamp)
	if !ok {
		return 0, false, fmt.Errorf("field %q: want wire timestamp, got %T", key, raw)
	}
	return wiretime.FromWire(ts), true, nil
}

// encodePatchDates returns a copy of the patch with the named date fields
// converted from epoch-ms integers to wire timestamps. The caller's patch
// map keeps its plain integers.
func encodePatchDates(patch map[string]any, dateFields map[string]struct{}) map[string]any {
	out := make(map[string]any, len(patch))
	for k, v := range patch {
		if _, isDate := dateFields[k]; isDate {
			switch ms := v.(type) {
			case int64:
				out[k] = wiretime.ToWire(ms)
				continue
			case int:
				out[k] = wiretime.ToWire(int64(ms))
				continue
			case nil:
				out[k] = nil
				continue
			}
		}
		out[k] = v
	}
	return out
}
