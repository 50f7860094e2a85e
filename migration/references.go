// Copyright (c) 2022-present Redmig Authors. All Rights Reserved.
// See License.txt for license information.

package migration

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/mattermost/mattermost-server/v6/shared/mlog"
	"github.com/pkg/errors"

	"github.com/redmig/redmig/model"
	"github.com/redmig/redmig/store"
)

// referencePattern matches the source tracker's inline issue references:
// a marker character followed by one or more digits.
var referencePattern = regexp.MustCompile(`#(\d+)`)

// ScanReferences finds the distinct issue-reference tokens in a text body,
// in order of first appearance. Most bodies contain none; callers only keep
// a DeferredReference when the result is non-empty.
func ScanReferences(text string) []model.RefToken {
	matches := referencePattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	tokens := make([]model.RefToken, 0, len(matches))
	for _, match := range matches {
		if seen[match[0]] {
			continue
		}
		seen[match[0]] = true

		id, err := strconv.ParseInt(match[1], 10, 64)
		if err != nil {
			continue
		}
		tokens = append(tokens, model.RefToken{Token: match[0], SourceID: id})
	}

	return tokens
}

// ReferenceRewriter performs the second migration phase: once the registry
// is complete, every deferred reference is rewritten in place on the target
// system. Tokens that resolve become "#new (originally #old)", keeping both
// identifiers visible; tokens that do not resolve are left untouched and
// reported, the referenced issue may have been private and skipped.
type ReferenceRewriter struct {
	registry  store.Registry
	issues    IssuesService
	repoOwner string
	repoName  string
}

func NewReferenceRewriter(registry store.Registry, issues IssuesService, repoOwner, repoName string) *ReferenceRewriter {
	return &ReferenceRewriter{
		registry:  registry,
		issues:    issues,
		repoOwner: repoOwner,
		repoName:  repoName,
	}
}

// Rewrite processes every deferred reference and returns the count of tokens
// that could not be resolved. Resolution failures are diagnostics, not
// errors; a failing edit call against the target system is an error.
func (rw *ReferenceRewriter) Rewrite(ctx context.Context, deferred []*model.DeferredReference) (int, error) {
	unresolved := 0

	for _, ref := range deferred {
		rewritten, failed := rw.rewriteText(ref.Text, ref.Tokens)
		for _, token := range failed {
			mlog.Warn("unable to resolve issue reference",
				mlog.String("token", token.Token),
				mlog.Int64("issue", ref.IssueIndex),
				mlog.Int64("comment", ref.CommentID))
		}
		unresolved += len(failed)

		if rewritten == ref.Text {
			continue
		}

		if err := rw.apply(ctx, ref, rewritten); err != nil {
			return unresolved, err
		}
	}

	return unresolved, nil
}

// rewriteText substitutes every resolvable token and returns the tokens that
// stayed unresolved. The substitution runs over the original text in one
// pass, so inserted references are never rescanned.
func (rw *ReferenceRewriter) rewriteText(text string, tokens []model.RefToken) (string, []model.RefToken) {
	resolved := make(map[string]int64, len(tokens))
	var failed []model.RefToken

	for _, token := range tokens {
		targetID, ok := rw.registry.Resolve(token.SourceID)
		if !ok {
			failed = append(failed, token)
			continue
		}
		resolved[token.Token] = targetID
	}

	if len(resolved) == 0 {
		return text, failed
	}

	rewritten := referencePattern.ReplaceAllStringFunc(text, func(token string) string {
		targetID, ok := resolved[token]
		if !ok {
			return token
		}
		return fmt.Sprintf("#%d (originally %s)", targetID, token)
	})

	return rewritten, failed
}

func (rw *ReferenceRewriter) apply(ctx context.Context, ref *model.DeferredReference, text string) error {
	if ref.InBody() {
		if _, err := rw.issues.Edit(ctx, rw.repoOwner, rw.repoName, ref.IssueIndex, &model.EditIssueRequest{Body: &text}); err != nil {
			return errors.Wrapf(err, "unable to rewrite body of issue %d", ref.IssueIndex)
		}
		return nil
	}

	if _, err := rw.issues.EditComment(ctx, rw.repoOwner, rw.repoName, ref.CommentID, &model.EditCommentRequest{Body: text}); err != nil {
		return errors.Wrapf(err, "unable to rewrite comment %d on issue %d", ref.CommentID, ref.IssueIndex)
	}

	return nil
}
