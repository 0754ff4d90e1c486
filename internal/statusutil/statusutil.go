package statusutil

import (
	"fmt"
	"strings"

	"taskdeck/internal/listflow"
	"taskdeck/internal/model"
)

// Canonical converts user input to the wire enum form: trimmed, uppercased,
// spaces and dashes folded to underscores ("in progress" -> "IN_PROGRESS").
func Canonical(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return strings.ToUpper(s)
}

// Filter validates a filter token against the allowed values and returns
// its canonical form. Empty input and the ALL wildcard pass through.
func Filter[T ~string](s string, allowed []T) (string, error) {
	c := Canonical(s)
	if c == "" || c == listflow.FilterAll {
		return listflow.FilterAll, nil
	}
	for _, a := range allowed {
		if c == string(a) {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid value %q (one of: %s)", s, joined(allowed))
}

func joined[T ~string](vals []T) string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return strings.Join(out, ", ")
}

func TaskStatus(s string) (model.TaskStatus, error) {
	c, err := one(s, model.TaskStatuses)
	return model.TaskStatus(c), err
}

func TaskPriority(s string) (model.TaskPriority, error) {
	c, err := one(s, model.TaskPriorities)
	return model.TaskPriority(c), err
}

func ProjectStatus(s string) (model.ProjectStatus, error) {
	c, err := one(s, model.ProjectStatuses)
	return model.ProjectStatus(c), err
}

func ProjectPriority(s string) (model.ProjectPriority, error) {
	c, err := one(s, model.ProjectPriorities)
	return model.ProjectPriority(c), err
}

func Role(s string) (model.TeamRole, error) {
	c, err := one(s, model.TeamRoles)
	return model.TeamRole(c), err
}

// one is Filter without the wildcard: empty input is an error.
func one[T ~string](s string, allowed []T) (string, error) {
	c := Canonical(s)
	if c == "" {
		return "", fmt.Errorf("empty value (one of: %s)", joined(allowed))
	}
	for _, a := range allowed {
		if c == string(a) {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid value %q (one of: %s)", s, joined(allowed))
}
