// Package validation checks mutation payload shapes before any business
// rule runs. Validators collect every violation instead of stopping at the
// first, and parse raw JSON maps so that absent, null, and present fields
// stay distinguishable for partial updates.
package validation

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tasknest/task-tracker-api/internal/constants"
	"github.com/tasknest/task-tracker-api/internal/permissions"
)

var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// TaskCreateInput is the validated payload for task creation.
type TaskCreateInput struct {
	Name        string
	Description *string
	Status      string
	DueDate     *time.Time
	TeamMembers []uint64
}

// TaskUpdateInput is the validated payload for a full (replace) update.
// A nil Status or DueDate means the field was absent and keeps its value;
// ClearDueDate records an explicit null. Description follows replace
// semantics: absent clears.
type TaskUpdateInput struct {
	Name         string
	Description  *string
	Status       *string
	DueDate      *time.Time
	ClearDueDate bool
}

// TaskPatchInput is the validated payload for a partial update. Present
// lists the fields supplied in the request, in wire terms, for the
// permission matrix. An empty Comment means no comment was supplied.
type TaskPatchInput struct {
	Name             *string
	Description      *string
	ClearDescription bool
	Status           *string
	DueDate          *time.Time
	ClearDueDate     bool
	Comment          string
	Present          []permissions.Field
}

// TaskCreate validates the raw creation payload and returns every violation.
func TaskCreate(raw map[string]any) (TaskCreateInput, []string) {
	var in TaskCreateInput
	var violations []string

	name, ok := requiredString(raw, "name", &violations)
	if ok && (len(name) < constants.MinTaskNameLength || len(name) > constants.MaxTaskNameLength) {
		violations = append(violations, fmt.Sprintf("name must be between %d and %d characters", constants.MinTaskNameLength, constants.MaxTaskNameLength))
	}
	in.Name = name

	in.Description, _, _ = nullableString(raw, "description", &violations)

	if status, present := optionalString(raw, "status", &violations); present {
		in.Status = status
	}

	if due, present, isNull := nullableDate(raw, "due_date", &violations); present && !isNull {
		in.DueDate = due
	}

	in.TeamMembers = optionalIDList(raw, "teamMembers", &violations)

	return in, violations
}

// TaskUpdate validates the raw full-update payload.
func TaskUpdate(raw map[string]any) (TaskUpdateInput, []string) {
	var in TaskUpdateInput
	var violations []string

	name, ok := requiredString(raw, "name", &violations)
	if ok && (len(name) < constants.MinTaskNameLength || len(name) > constants.MaxTaskNameLength) {
		violations = append(violations, fmt.Sprintf("name must be between %d and %d characters", constants.MinTaskNameLength, constants.MaxTaskNameLength))
	}
	in.Name = name

	in.Description, _, _ = nullableString(raw, "description", &violations)

	if status, present := optionalString(raw, "status", &violations); present {
		in.Status = &status
	}

	if due, present, isNull := nullableDate(raw, "due_date", &violations); present {
		if isNull {
			in.ClearDueDate = true
		} else {
			in.DueDate = due
		}
	}

	return in, violations
}

// TaskPatch validates the raw partial-update payload. Role rules are not
// applied here; the permission matrix consumes the Present field list.
func TaskPatch(raw map[string]any) (TaskPatchInput, []string) {
	var in TaskPatchInput
	var violations []string

	if _, present := raw["name"]; present {
		in.Present = append(in.Present, permissions.FieldName)
		name, ok := requiredString(raw, "name", &violations)
		if ok {
			if len(name) < constants.MinTaskNameLength || len(name) > constants.MaxTaskNameLength {
				violations = append(violations, fmt.Sprintf("name must be between %d and %d characters", constants.MinTaskNameLength, constants.MaxTaskNameLength))
			}
			in.Name = &name
		}
	}

	if desc, present, isNull := nullableString(raw, "description", &violations); present {
		in.Present = append(in.Present, permissions.FieldDescription)
		if isNull {
			in.ClearDescription = true
		} else {
			in.Description = desc
		}
	}

	if status, present := optionalString(raw, "status", &violations); present {
		in.Present = append(in.Present, permissions.FieldStatus)
		in.Status = &status
	}

	if due, present, isNull := nullableDate(raw, "due_date", &violations); present {
		in.Present = append(in.Present, permissions.FieldDueDate)
		if isNull {
			in.ClearDueDate = true
		} else {
			in.DueDate = due
		}
	}

	if comment, present := optionalString(raw, "comment", &violations); present {
		// An empty comment counts as absent: it can neither satisfy the
		// companion rule nor produce an audit record.
		if trimmed := strings.TrimSpace(comment); trimmed != "" {
			in.Present = append(in.Present, permissions.FieldComment)
			in.Comment = trimmed
		}
	}

	if len(in.Present) == 0 && len(violations) == 0 {
		violations = append(violations, "at least one field (name, description, due_date, status, comment) is required")
	}

	return in, violations
}

func requiredString(raw map[string]any, key string, violations *[]string) (string, bool) {
	value, present := raw[key]
	if !present || value == nil {
		*violations = append(*violations, key+" is required and must be a string")
		return "", false
	}
	s, ok := value.(string)
	if !ok || s == "" {
		*violations = append(*violations, key+" is required and must be a string")
		return "", false
	}
	return s, true
}

func optionalString(raw map[string]any, key string, violations *[]string) (string, bool) {
	value, present := raw[key]
	if !present {
		return "", false
	}
	s, ok := value.(string)
	if !ok {
		*violations = append(*violations, key+" must be a string")
		return "", false
	}
	return s, true
}

func nullableString(raw map[string]any, key string, violations *[]string) (*string, bool, bool) {
	value, present := raw[key]
	if !present {
		return nil, false, false
	}
	if value == nil {
		return nil, true, true
	}
	s, ok := value.(string)
	if !ok {
		*violations = append(*violations, key+" must be a string or null")
		return nil, true, false
	}
	return &s, true, false
}

func nullableDate(raw map[string]any, key string, violations *[]string) (*time.Time, bool, bool) {
	value, present := raw[key]
	if !present {
		return nil, false, false
	}
	if value == nil {
		return nil, true, true
	}
	s, ok := value.(string)
	if !ok {
		*violations = append(*violations, key+" must be a valid date or null")
		return nil, true, false
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, true, false
		}
	}
	*violations = append(*violations, key+" must be a valid date or null")
	return nil, true, false
}

func optionalIDList(raw map[string]any, key string, violations *[]string) []uint64 {
	value, present := raw[key]
	if !present || value == nil {
		return nil
	}
	list, ok := value.([]any)
	if !ok {
		*violations = append(*violations, key+" must be an array of integers")
		return nil
	}
	ids := make([]uint64, 0, len(list))
	for _, item := range list {
		// JSON numbers arrive as float64; reject fractional or negative ids.
		n, ok := item.(float64)
		if !ok || n < 0 || n != math.Trunc(n) {
			*violations = append(*violations, key+" must be an array of integers")
			return nil
		}
		ids = append(ids, uint64(n))
	}
	return ids
}
