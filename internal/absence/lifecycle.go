package absence

import (
	"context"
	"fmt"

	"github.com/frahmantamala/absence-request/internal"
)

// CanTransition reports whether from -> to is an edge of the request state
// machine: pending moves to approved or rejected, nothing leaves a terminal state.
func CanTransition(from, to Status) bool {
	return from == StatusPending && to.IsTerminal()
}

// TransitionStore applies status writes. Both updates return the number of
// rows matched by (id, student_id).
type TransitionStore interface {
	UpdateStatus(ctx context.Context, key RequestKey, status Status) (int64, error)
	UpdateStatusIfPending(ctx context.Context, key RequestKey, status Status) (int64, error)
	Exists(ctx context.Context, key RequestKey) (bool, error)
}

// Lifecycle moves requests between states. In the default mode the status
// is overwritten whatever the current state, so repeating an update succeeds.
// Strict mode only moves pending requests.
type Lifecycle struct {
	store  TransitionStore
	strict bool
}

func NewLifecycle(store TransitionStore, strict bool) *Lifecycle {
	return &Lifecycle{store: store, strict: strict}
}

func (l *Lifecycle) Strict() bool {
	return l.strict
}

func (l *Lifecycle) Transition(ctx context.Context, key RequestKey, to Status) error {
	// Every legal edge starts at pending, so the target must be reachable from it.
	if !CanTransition(StatusPending, to) {
		return internal.ErrInvalidStatusTransition
	}

	if !l.strict {
		matched, err := l.store.UpdateStatus(ctx, key, to)
		if err != nil {
			return internal.NewStoreError(fmt.Errorf("update status: %w", err))
		}
		if matched == 0 {
			return internal.ErrRequestNotFound
		}
		return nil
	}

	matched, err := l.store.UpdateStatusIfPending(ctx, key, to)
	if err != nil {
		return internal.NewStoreError(fmt.Errorf("update pending status: %w", err))
	}
	if matched > 0 {
		return nil
	}

	exists, err := l.store.Exists(ctx, key)
	if err != nil {
		return internal.NewStoreError(fmt.Errorf("check request exists: %w", err))
	}
	if exists {
		return internal.ErrInvalidStatusTransition
	}
	return internal.ErrRequestNotFound
}
