// Package ordering maintains the zero-based position sequence of items inside
// a parent scope: the lists of one board or the cards of one list.
//
// Creation appends at the end, deletes are compacted by the store, and Reorder
// rewrites the whole scope in one transaction, so those operations keep
// positions dense (0..n-1). Move is the exception: it overwrites the moved
// item's parent and position without renumbering siblings in either scope,
// which can leave duplicates or gaps until the scope is reordered.
package ordering

import (
	"context"
	"fmt"
	"sort"
	"time"

	"kanboard/internal/apperr"
)

// Placement is the position assigned to one item of a scope.
type Placement struct {
	ID       string
	Position int
}

// PlanFunc computes the new placements of a scope from its current member ids.
// It runs inside the store transaction so membership cannot change under it.
type PlanFunc func(current []string) ([]Placement, error)

// Store is the persistence a scope needs from the entity store.
type Store interface {
	// CountInScope returns how many items currently belong to parentID.
	CountInScope(ctx context.Context, parentID string) (int64, error)
	// ReplacePositions loads the member ids of parentID, asks plan for the new
	// placements and writes all of them atomically, stamping updated_at with at.
	ReplacePositions(ctx context.Context, parentID string, plan PlanFunc, at time.Time) error
}

// Mover is implemented by stores whose items can change parent scope.
type Mover interface {
	MoveItem(ctx context.Context, id, parentID string, position int, at time.Time) error
}

// Engine applies ordering operations to one kind of scope.
type Engine struct {
	store Store
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// Append returns the position a new item takes at the end of parentID.
func (e *Engine) Append(ctx context.Context, parentID string) (int, error) {
	count, err := e.store.CountInScope(ctx, parentID)
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// Reorder assigns positions 0..n-1 to orderedIDs. The ids must be exactly the
// current members of parentID; anything else fails with INVALID_SCOPE and
// nothing is written.
func (e *Engine) Reorder(ctx context.Context, parentID string, orderedIDs []string, at time.Time) error {
	return e.store.ReplacePositions(ctx, parentID, func(current []string) ([]Placement, error) {
		return Plan(current, orderedIDs)
	}, at)
}

// Move relocates item id into parentID at position. Siblings are not
// renumbered.
func (e *Engine) Move(ctx context.Context, id, parentID string, position int, at time.Time) error {
	if position < 0 {
		return apperr.Validation("Position must be zero or greater")
	}
	mover, ok := e.store.(Mover)
	if !ok {
		return fmt.Errorf("ordering: store %T does not support move", e.store)
	}
	return mover.MoveItem(ctx, id, parentID, position, at)
}

// Plan validates that ordered is a permutation of current and returns the
// resulting placements in order.
func Plan(current, ordered []string) ([]Placement, error) {
	if err := ValidateScope(current, ordered); err != nil {
		return nil, err
	}
	placements := make([]Placement, len(ordered))
	for i, id := range ordered {
		placements[i] = Placement{ID: id, Position: i}
	}
	return placements, nil
}

// ValidateScope checks that ordered holds every id of current exactly once and
// nothing else.
func ValidateScope(current, ordered []string) error {
	members := make(map[string]bool, len(current))
	for _, id := range current {
		members[id] = false
	}

	for _, id := range ordered {
		seen, ok := members[id]
		if !ok {
			return apperr.InvalidScope(fmt.Sprintf("Id %q does not belong to this scope", id))
		}
		if seen {
			return apperr.InvalidScope(fmt.Sprintf("Id %q is listed more than once", id))
		}
		members[id] = true
	}

	if len(ordered) != len(current) {
		return apperr.InvalidScope(fmt.Sprintf("Expected %d ids, got %d", len(current), len(ordered)))
	}
	return nil
}

// IsDense reports whether positions, in any order, are exactly 0..n-1.
func IsDense(positions []int) bool {
	sorted := append([]int(nil), positions...)
	sort.Ints(sorted)
	for i, p := range sorted {
		if p != i {
			return false
		}
	}
	return true
}
