package domain

import (
	"errors"
	"testing"
)

func TestTaskDraftValidate_Success(t *testing.T) {
	t.Parallel()

	details := "pick the oat milk"
	draft := TaskDraft{
		Title:    "Buy milk",
		Details:  &details,
		Deadline: 1_700_000_000_000,
		Tags:     []Tag{{Name: "errand", Color: "#fff"}, {Name: "food", Color: "#000"}},
		Subtasks: []Subtask{{Description: "check fridge"}},
	}
	if err := draft.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTaskDraftValidate_EmptyTitle(t *testing.T) {
	t.Parallel()

	err := TaskDraft{Title: "   "}.Validate()
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if ve.Errors[0].Field != "title" {
		t.Errorf("field: got %q, want %q", ve.Errors[0].Field, "title")
	}
	if !errors.Is(err, ErrValidation) {
		t.Error("expected error to unwrap to ErrValidation")
	}
}

func TestTaskDraftValidate_DuplicateTagsCaseInsensitive(t *testing.T) {
	t.Parallel()

	err := TaskDraft{
		Title: "Plan week",
		Tags:  []Tag{{Name: "Work", Color: "#111"}, {Name: "  work ", Color: "#222"}},
	}.Validate()
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if ve.Errors[0].Field != "tags" {
		t.Errorf("field: got %q, want %q", ve.Errors[0].Field, "tags")
	}
}

func TestTaskDraftValidate_NegativeDeadline(t *testing.T) {
	t.Parallel()

	err := TaskDraft{Title: "ok", Deadline: -1}.Validate()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestTaskDraftToTask(t *testing.T) {
	t.Parallel()

	draft := TaskDraft{
		Title:    "  Buy milk ",
		Deadline: 42,
		Tags:     []Tag{{Name: "errand", Color: "#fff"}},
	}
	task := draft.ToTask("user-1")

	if task.ID != "" {
		t.Errorf("id must stay empty until the store assigns one, got %q", task.ID)
	}
	if task.UserID != "user-1" {
		t.Errorf("user id: got %q, want %q", task.UserID, "user-1")
	}
	if task.Title != "Buy milk" {
		t.Errorf("title: got %q, want %q", task.Title, "Buy milk")
	}

	// The task must not alias the draft's slices.
	draft.Tags[0].Name = "changed"
	if task.Tags[0].Name != "errand" {
		t.Error("tags slice aliases the draft")
	}
}
