// Copyright (c) 2022-present Redmig Authors. All Rights Reserved.
// See License.txt for license information.

package migration

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/mattermost/mattermost-server/v6/shared/mlog"
	"github.com/pkg/errors"

	"github.com/redmig/redmig/model"
)

// LabelConvergenceError means the target system never reported the intended
// label set within the retry budget. Label mismatches right after creation
// are expected to be transient; one that survives every retry is not.
type LabelConvergenceError struct {
	IssueIndex int64
	Want       []int64
	Got        []int64
}

func (e *LabelConvergenceError) Error() string {
	return fmt.Sprintf("labels on issue %d never converged, want %v got %v", e.IssueIndex, e.Want, e.Got)
}

// Reconciler repairs the label set of a freshly created issue. The target
// system applies label associations asynchronously relative to issue
// creation, so the observed set can lag the intended one; re-asserting the
// same set is idempotent and safe to retry.
type Reconciler struct {
	issues     IssuesService
	repoOwner  string
	repoName   string
	maxRetries uint64
	interval   time.Duration
	onRetry    func()
}

func NewReconciler(config *Config, issues IssuesService, onRetry func()) *Reconciler {
	return &Reconciler{
		issues:     issues,
		repoOwner:  config.RepoOwner,
		repoName:   config.RepoName,
		maxRetries: uint64(config.LabelRetryMax),
		interval:   time.Duration(config.LabelRetryIntervalSeconds) * time.Second,
		onRetry:    onRetry,
	}
}

// EnsureLabels compares the observed label IDs against the intended set and,
// on mismatch, re-asserts the intended set until the target converges or the
// retry budget runs out.
func (r *Reconciler) EnsureLabels(ctx context.Context, issueIndex int64, want []int64, observed []*model.Label) error {
	got := labelIDs(observed)
	if labelSetsEqual(want, got) {
		return nil
	}

	mlog.Info("label set mismatch after creation, reconciling",
		mlog.Int64("issue", issueIndex),
		mlog.Any("want", want),
		mlog.Any("got", got))

	operation := func() error {
		if _, err := r.issues.AddLabels(ctx, r.repoOwner, r.repoName, issueIndex, want); err != nil {
			return err
		}

		current, err := r.issues.ListIssueLabels(ctx, r.repoOwner, r.repoName, issueIndex)
		if err != nil {
			return err
		}

		got = labelIDs(current)
		if !labelSetsEqual(want, got) {
			return errors.Errorf("labels not yet converged on issue %d", issueIndex)
		}

		return nil
	}

	notify := func(err error, next time.Duration) {
		mlog.Debug("retrying label reconciliation",
			mlog.Int64("issue", issueIndex),
			mlog.Err(err),
			mlog.String("next_attempt_in", next.String()))
		if r.onRetry != nil {
			r.onRetry()
		}
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = r.interval
	bo.MaxElapsedTime = 0 // the retry count is the cap, not wall time

	err := backoff.RetryNotify(operation, backoff.WithContext(backoff.WithMaxRetries(bo, r.maxRetries), ctx), notify)
	if err != nil {
		return &LabelConvergenceError{IssueIndex: issueIndex, Want: want, Got: got}
	}

	return nil
}

func labelIDs(labels []*model.Label) []int64 {
	ids := make([]int64, 0, len(labels))
	for _, label := range labels {
		ids = append(ids, label.ID)
	}

	return ids
}

// labelSetsEqual compares two ID sets ignoring order.
func labelSetsEqual(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}

	as := append([]int64(nil), a...)
	bs := append([]int64(nil), b...)
	sort.Slice(as, func(i, j int) bool { return as[i] < as[j] })
	sort.Slice(bs, func(i, j int) bool { return bs[i] < bs[j] })

	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}

	return true
}
