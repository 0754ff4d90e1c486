// Package listflow implements the workflow shared by every list screen:
// load the full collection, derive a filtered view from local predicates,
// open a modal form, and reload after any dialog that reports success.
//
// Each entity screen instantiates Workflow with its own fetch/delete
// functions and field extractors; the control flow is identical everywhere.
package listflow

import "strings"

// FilterAll is the wildcard sentinel for enum filters.
const FilterAll = "ALL"

// FilterCriteria is the current search text plus enum selections.
// "ALL" matches any value; empty search text matches any item.
type FilterCriteria struct {
	SearchText string
	Status     string
	Priority   string
}

// DefaultCriteria returns the match-everything criteria.
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{Status: FilterAll, Priority: FilterAll}
}

// State is the load state machine: Idle -> Loading -> Loaded | LoadFailed.
type State int

const (
	Idle State = iota
	Loading
	Loaded
	LoadFailed
)

// Config declares how an entity participates in the workflow.
type Config[T any] struct {
	// SearchFields returns the text fields that case-insensitive substring
	// search runs over.
	SearchFields func(T) []string
	// Status and Priority return the enum values matched exactly against the
	// criteria ("" when the entity has no such field; those filters then
	// only pass on FilterAll).
	Status   func(T) string
	Priority func(T) string
}

// Workflow holds the full fetched collection and its derived filtered view.
//
// Invariant: Filtered is always exactly Items passed through the current
// criteria, in the same relative order. Every mutation of Items or the
// criteria recomputes it synchronously.
type Workflow[T any] struct {
	cfg      Config[T]
	state    State
	items    []T
	filtered []T
	criteria FilterCriteria

	loadSeq   int // last issued load
	appliedTo int // load whose response is currently applied

	pendingDelete bool
	lastErr       string
}

func New[T any](cfg Config[T]) *Workflow[T] {
	return &Workflow[T]{cfg: cfg, criteria: DefaultCriteria()}
}

func (w *Workflow[T]) State() State              { return w.state }
func (w *Workflow[T]) Items() []T                { return w.items }
func (w *Workflow[T]) Filtered() []T             { return w.filtered }
func (w *Workflow[T]) Criteria() FilterCriteria  { return w.criteria }
func (w *Workflow[T]) LastError() string         { return w.lastErr }
func (w *Workflow[T]) DeletePending() bool       { return w.pendingDelete }

// BeginLoad marks a load in flight and returns its sequence number. The
// caller passes the number back to FinishLoad; responses for superseded
// loads are ignored so an earlier response can never silently overwrite a
// later one.
func (w *Workflow[T]) BeginLoad() int {
	w.loadSeq++
	w.state = Loading
	return w.loadSeq
}

// FinishLoad applies a load result. Stale responses (seq older than the
// latest applied, or superseded by a newer issued load) are dropped. A
// failure keeps the previously loaded items: stale data beats empty data,
// but the failure is still surfaced via LastError.
func (w *Workflow[T]) FinishLoad(seq int, items []T, errMsg string) bool {
	if seq != w.loadSeq || seq <= w.appliedTo {
		return false
	}
	w.appliedTo = seq
	if errMsg != "" {
		w.state = LoadFailed
		w.lastErr = errMsg
		return true
	}
	w.state = Loaded
	w.lastErr = ""
	w.items = items
	w.ApplyFilters()
	return true
}

// SetCriteria replaces the criteria and re-derives the filtered view.
func (w *Workflow[T]) SetCriteria(c FilterCriteria) {
	w.criteria = c
	w.ApplyFilters()
}

// ClearFilters resets the criteria to match everything.
func (w *Workflow[T]) ClearFilters() {
	w.SetCriteria(DefaultCriteria())
}

// ApplyFilters re-derives Filtered from Items and the current criteria. It
// is pure over its inputs and idempotent: unchanged inputs yield an
// identical sequence in identical order.
func (w *Workflow[T]) ApplyFilters() {
	out := make([]T, 0, len(w.items))
	for _, it := range w.items {
		if w.matches(it) {
			out = append(out, it)
		}
	}
	w.filtered = out
}

func (w *Workflow[T]) matches(it T) bool {
	if q := strings.ToLower(strings.TrimSpace(w.criteria.SearchText)); q != "" {
		found := false
		if w.cfg.SearchFields != nil {
			for _, f := range w.cfg.SearchFields(it) {
				if strings.Contains(strings.ToLower(f), q) {
					found = true
					break
				}
			}
		}
		if !found {
			return false
		}
	}
	if w.criteria.Status != "" && w.criteria.Status != FilterAll {
		v := ""
		if w.cfg.Status != nil {
			v = w.cfg.Status(it)
		}
		if v != w.criteria.Status {
			return false
		}
	}
	if w.criteria.Priority != "" && w.criteria.Priority != FilterAll {
		v := ""
		if w.cfg.Priority != nil {
			v = w.cfg.Priority(it)
		}
		if v != w.criteria.Priority {
			return false
		}
	}
	return true
}

// DialogClosed reports whether a closing dialog requires a reload. The
// result is used only as a trigger: a truthy close means the mutation
// committed and the list must resynchronize from the backend. The client
// never merges a dialog's local edit into Items; server-computed fields
// (timestamps, owner) make a full reload the only consistent option.
func (w *Workflow[T]) DialogClosed(committed bool) bool {
	return committed
}

// RequestDelete arms the explicit confirmation step. No request is issued
// until ConfirmDelete; this is the only pre-flight guard against accidental
// data loss.
func (w *Workflow[T]) RequestDelete() {
	w.pendingDelete = true
}

// CancelDelete disarms a pending confirmation.
func (w *Workflow[T]) CancelDelete() {
	w.pendingDelete = false
}

// ConfirmDelete consumes the pending confirmation. It returns false (and
// does nothing) when no delete was requested.
func (w *Workflow[T]) ConfirmDelete() bool {
	if !w.pendingDelete {
		return false
	}
	w.pendingDelete = false
	return true
}
