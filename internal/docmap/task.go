package docmap

import (
	"fmt"

	"github.com/taranenko/taskfeed/internal/domain"
	"github.com/taranenko/taskfeed/internal/remote"
	"github.com/taranenko/taskfeed/internal/wiretime"
)

// TaskCodec maps domain.Task to the "tasks" collection.
type TaskCodec struct{}

var _ Codec[domain.Task] = TaskCodec{}

var taskDateFields = map[string]struct{}{"deadline": {}}

func (TaskCodec) Collection() string { return "tasks" }

func (TaskCodec) Encode(t domain.Task) map[string]any {
	fields := map[string]any{
		"userId":     t.UserID,
		"title":      t.Title,
		"deadline":   wiretime.ToWire(t.Deadline),
		"isComplete": t.IsComplete,
		"tags":       encodeTags(t.Tags),
		"subtasks":   encodeSubtasks(t.Subtasks),
	}
	if t.Details != nil {
		fields["details"] = *t.Details
	}
	if t.Category != nil {
		fields["category"] = *t.Category
	}
	return fields
}

func (TaskCodec) Decode(doc remote.Document) (domain.Task, error) {
	var t domain.Task

	title, err := fieldString(doc.Fields, "title")
	if err != nil {
		return t, fmt.Errorf("decode task %s: %w", doc.ID, err)
	}
	userID, err := fieldString(doc.Fields, "userId")
	if err != nil {
		return t, fmt.Errorf("decode task %s: %w", doc.ID, err)
	}
	isComplete, err := fieldBool(doc.Fields, "isComplete")
	if err != nil {
		return t, fmt.Errorf("decode task %s: %w", doc.ID, err)
	}
	deadline, _, err := fieldTimeMs(doc.Fields, "deadline")
	if err != nil {
		return t, fmt.Errorf("decode task %s: %w", doc.ID, err)
	}
	tags, err := decodeTags(doc.Fields["tags"])
	if err != nil {
		return t, fmt.Errorf("decode task %s: %w", doc.ID, err)
	}
	subtasks, err := decodeSubtasks(doc.Fields["subtasks"])
	if err != nil {
		return t, fmt.Errorf("decode task %s: %w", doc.ID, err)
	}

	return domain.Task{
		ID:         doc.ID,
		UserID:     userID,
		Title:      title,
		Details:    fieldOptString(doc.Fields, "details"),
		Deadline:   deadline,
		IsComplete: isComplete,
		Category:   fieldOptString(doc.Fields, "category"),
		Tags:       tags,
		Subtasks:   subtasks,
	}, nil
}

func (TaskCodec) WithID(t domain.Task, id string) domain.Task {
	t.ID = id
	return t
}

func (TaskCodec) EncodePatch(patch map[string]any) map[string]any {
	return encodePatchDates(patch, taskDateFields)
}

func (TaskCodec) ApplyPatch(t domain.Task, patch map[string]any) (domain.Task, error) {
	out := t
	out.Tags = append([]domain.Tag(nil), t.Tags...)
	out.Subtasks = append([]domain.Subtask(nil), t.Subtasks...)

	for k, v := range patch {
		switch k {
		case "title":
			s, ok := v.(string)
			if !ok {
				return t, fmt.Errorf("patch title: want string, got %T", v)
			}
			out.Title = s
		case "details":
			p, err := patchOptString(v)
			if err != nil {
				return t, fmt.Errorf("patch details: %w", err)
			}
			out.Details = p
		case "deadline":
			ms, err := patchInt64(v)
			if err != nil {
				return t, fmt.Errorf("patch deadline: %w", err)
			}
			out.Deadline = ms
		case "isComplete":
			b, ok := v.(bool)
			if !ok {
				return t, fmt.Errorf("patch isComplete: want bool, got %T", v)
			}
			out.IsComplete = b
		case "category":
			p, err := patchOptString(v)
			if err != nil {
				return t, fmt.Errorf("patch category: %w", err)
			}
			out.Category = p
		case "tags":
			tags, ok := v.([]domain.Tag)
			if !ok {
				return t, fmt.Errorf("patch tags: want []domain.Tag, got %T", v)
			}
			out.Tags = append([]domain.Tag(nil), tags...)
		case "subtasks":
			subs, ok := v.([]domain.Subtask)
			if !ok {
				return t, fmt.Errorf("patch subtasks: want []domain.Subtask, got %T", v)
			}
			out.Subtasks = append([]domain.Subtask(nil), subs...)
		default:
			return t, fmt.Errorf("patch: unknown task field %q", k)
		}
	}
	return out, nil
}

func patchOptString(v any) (*string, error) {
	switch s := v.(type) {
	case nil:
		return nil, nil
	case string:
		return &s, nil
	case *string:
		return s, nil
	default:
		return nil, fmt.Errorf("want string or nil, got %T", v)
	}
}

func patchInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("want integer, got %T", v)
	}
}

func encodeTags(tags []domain.Tag) []any {
	out := make([]any, len(tags))
	for i, tag := range tags {
		out[i] = map[string]any{"name": tag.Name, "color": tag.Color}
	}
	return out
}

func decodeTags(raw any) ([]domain.Tag, error) {
	if raw == nil {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("tags: want array, got %T", raw)
	}
	tags := make([]domain.Tag, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("tags: want object element, got %T", item)
		}
		name, err := fieldString(m, "name")
		if err != nil {
			return nil, fmt.Errorf("tags: %w", err)
		}
		color, err := fieldString(m, "color")
		if err != nil {
			return nil, fmt.Errorf("tags: %w", err)
		}
		tags = append(tags, domain.Tag{Name: name, Color: color})
	}
	return tags, nil
}

func encodeSubtasks(subs []domain.Subtask) []any {
	out := make([]any, len(subs))
	for i, st := range subs {
		out[i] = map[string]any{"description": st.Description, "completed": st.Completed}
	}
	return out
}

func decodeSubtasks(raw any) ([]domain.Subtask, error) {
	if raw == nil {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("subtasks: want array, got %T", raw)
	}
	subs := make([]domain.Subtask, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("subtasks: want object element, got %T", item)
		}
		desc, err := fieldString(m, "description")
		if err != nil {
			return nil, fmt.Errorf("subtasks: %w", err)
		}
		done, err := fieldBool(m, "completed")
		if err != nil {
			return nil, fmt.Errorf("subtasks: %w", err)
		}
		subs = append(subs, domain.Subtask{Description: desc, Completed: done})
	}
	return subs, nil
}
