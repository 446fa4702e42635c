package absence_test

import (
	"context"
	"errors"

	"github.com/frahmantamala/absence-request/internal"
	"github.com/frahmantamala/absence-request/internal/absence"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// fakeTransitionStore keeps statuses in memory keyed by (student_id, id).
type fakeTransitionStore struct {
	statuses map[absence.RequestKey]absence.Status
	err      error
	calls    []string
}

func newFakeTransitionStore() *fakeTransitionStore {
	return &fakeTransitionStore{statuses: make(map[absence.RequestKey]absence.Status)}
}

func (f *fakeTransitionStore) UpdateStatus(_ context.Context, key absence.RequestKey, status absence.Status) (int64, error) {
	f.calls = append(f.calls, "UpdateStatus")
	if f.err != nil {
		return 0, f.err
	}
	if _, ok := f.statuses[key]; !ok {
		return 0, nil
	}
	f.statuses[key] = status
	return 1, nil
}

func (f *fakeTransitionStore) UpdateStatusIfPending(_ context.Context, key absence.RequestKey, status absence.Status) (int64, error) {
	f.calls = append(f.calls, "UpdateStatusIfPending")
	if f.err != nil {
		return 0, f.err
	}
	if f.statuses[key] != absence.StatusPending {
		return 0, nil
	}
	f.statuses[key] = status
	return 1, nil
}

func (f *fakeTransitionStore) Exists(_ context.Context, key absence.RequestKey) (bool, error) {
	f.calls = append(f.calls, "Exists")
	_, ok := f.statuses[key]
	return ok, nil
}

var _ = Describe("Lifecycle", func() {
	var (
		ctx   context.Context
		store *fakeTransitionStore
		key   absence.RequestKey
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = newFakeTransitionStore()
		key = absence.RequestKey{StudentID: 12, ID: 1}
		store.statuses[key] = absence.StatusPending
	})

	Context("default mode", func() {
		var lc *absence.Lifecycle

		BeforeEach(func() {
			lc = absence.NewLifecycle(store, false)
		})

		It("overwrites the status and repeats idempotently", func() {
			Expect(lc.Transition(ctx, key, absence.StatusApproved)).To(Succeed())
			Expect(lc.Transition(ctx, key, absence.StatusApproved)).To(Succeed())
			Expect(store.statuses[key]).To(Equal(absence.StatusApproved))
		})

		It("lets a decided request be decided again", func() {
			Expect(lc.Transition(ctx, key, absence.StatusApproved)).To(Succeed())
			Expect(lc.Transition(ctx, key, absence.StatusRejected)).To(Succeed())
			Expect(store.statuses[key]).To(Equal(absence.StatusRejected))
		})

		It("reports a request owned by another student as not found", func() {
			err := lc.Transition(ctx, absence.RequestKey{StudentID: 99, ID: 1}, absence.StatusApproved)
			Expect(err).To(MatchError(internal.ErrRequestNotFound))
			Expect(store.statuses[key]).To(Equal(absence.StatusPending))
		})

		It("never writes pending back", func() {
			Expect(lc.Transition(ctx, key, absence.StatusPending)).To(MatchError(internal.ErrInvalidStatusTransition))
			Expect(store.calls).To(BeEmpty())
		})

		It("wraps store failures", func() {
			store.err = errors.New("connection reset")
			err := lc.Transition(ctx, key, absence.StatusApproved)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(500))
		})
	})

	Context("strict mode", func() {
		var lc *absence.Lifecycle

		BeforeEach(func() {
			lc = absence.NewLifecycle(store, true)
		})

		It("moves a pending request", func() {
			Expect(lc.Strict()).To(BeTrue())
			Expect(lc.Transition(ctx, key, absence.StatusRejected)).To(Succeed())
			Expect(store.statuses[key]).To(Equal(absence.StatusRejected))
			Expect(store.calls).To(Equal([]string{"UpdateStatusIfPending"}))
		})

		It("refuses to leave a terminal state", func() {
			Expect(lc.Transition(ctx, key, absence.StatusApproved)).To(Succeed())
			err := lc.Transition(ctx, key, absence.StatusRejected)
			Expect(err).To(MatchError(internal.ErrInvalidStatusTransition))
			Expect(store.statuses[key]).To(Equal(absence.StatusApproved))
		})

		It("tells a missing request apart from a decided one", func() {
			err := lc.Transition(ctx, absence.RequestKey{StudentID: 12, ID: 2}, absence.StatusApproved)
			Expect(err).To(MatchError(internal.ErrRequestNotFound))
			Expect(store.calls).To(Equal([]string{"UpdateStatusIfPending", "Exists"}))
		})
	})
})
