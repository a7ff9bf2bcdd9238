package domain

// Task is a single to-do item owned by exactly one user.
// All date fields are epoch milliseconds; conversion to the remote store's
// wire timestamp happens only at the store boundary.
type Task struct {
	ID         string
	UserID     string
	Title      string
	Details    *string
	Deadline   int64
	IsComplete bool
	Category   *string
	Tags       []Tag
	Subtasks   []Subtask
}

// Tag is a named, colored label attached to a task.
// Tag names are unique case-insensitively within one task.
type Tag struct {
	Name  string
	Color string
}

// Subtask is a checklist item inside a task.
type Subtask struct {
	Description string
	Completed   bool
}

// EntityID returns the store-assigned task id.
func (t Task) EntityID() string { return t.ID }

// HasTag reports whether the task carries a tag with the given name,
// compared case-insensitively after normalization.
func (t Task) HasTag(name string) bool {
	norm := NormalizeTagName(name)
	for _, tag := range t.Tags {
		if NormalizeTagName(tag.Name) == norm {
			return true
		}
	}
	return false
}
