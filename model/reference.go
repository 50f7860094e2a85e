// Copyright (c) 2022-present Redmig Authors. All Rights Reserved.
// See License.txt for license information.

package model

// RefToken is one inline issue reference found in posted text: the literal
// token as it appears ("#482") and its numeric payload (482).
type RefToken struct {
	Token    string
	SourceID int64
}

// DeferredReference records text that was posted to the target system while
// it still contained source-issue references. Forward references cannot be
// resolved until every issue has been created, so the rewrite is deferred to
// the second migration phase. CommentID zero means the issue body itself.
type DeferredReference struct {
	RepoOwner  string
	RepoName   string
	IssueIndex int64
	CommentID  int64
	Text       string
	Tokens     []RefToken
}

// InBody reports whether the reference lives in the issue body rather than
// in a comment.
func (d *DeferredReference) InBody() bool {
	return d.CommentID == 0
}
