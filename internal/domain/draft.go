package domain

import (
	"strings"
)

// TaskDraft holds the user-entered fields for a new task, before the store
// assigns an id. Validation happens here, on the form side, so the mutation
// layer never re-checks these rules.
type TaskDraft struct {
	Title    string
	Details  *string
	Deadline int64
	Category *string
	Tags     []Tag
	Subtasks []Subtask
}

const (
	maxTitleLen   = 200
	maxDetailsLen = 2000
)

// Validate checks all fields and collects all errors.
// Tag names must be unique case-insensitively within the draft.
func (d TaskDraft) Validate() error {
	var errs []FieldError

	title := strings.TrimSpace(d.Title)
	if title == "" {
		errs = append(errs, FieldError{Field: "title", Message: "required"})
	}
	if len(title) > maxTitleLen {
		errs = append(errs, FieldError{Field: "title", Message: "max 200 characters"})
	}

	if d.Details != nil && len(strings.TrimSpace(*d.Details)) > maxDetailsLen {
		errs = append(errs, FieldError{Field: "details", Message: "max 2000 characters"})
	}

	if d.Deadline < 0 {
		errs = append(errs, FieldError{Field: "deadline", Message: "must be non-negative"})
	}

	seen := make(map[string]struct{}, len(d.Tags))
	for _, tag := range d.Tags {
		norm := NormalizeTagName(tag.Name)
		if norm == "" {
			errs = append(errs, FieldError{Field: "tags", Message: "tag name required"})
			continue
		}
		if _, dup := seen[norm]; dup {
			errs = append(errs, FieldError{Field: "tags", Message: "duplicate tag name: " + norm})
			continue
		}
		seen[norm] = struct{}{}
	}

	for _, st := range d.Subtasks {
		if strings.TrimSpace(st.Description) == "" {
			errs = append(errs, FieldError{Field: "subtasks", Message: "description required"})
			break
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// ToTask builds a Task owned by the given user. The id stays empty until
// the store assigns one.
func (d TaskDraft) ToTask(userID string) Task {
	return Task{
		UserID:   userID,
		Title:    strings.TrimSpace(d.Title),
		Details:  d.Details,
		Deadline: d.Deadline,
		Category: d.Category,
		Tags:     append([]Tag(nil), d.Tags...),
		Subtasks: append([]Subtask(nil), d.Subtasks...),
	}
}
