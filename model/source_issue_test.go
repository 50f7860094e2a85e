// Copyright (c) 2022-present Redmig Authors. All Rights Reserved.
// See License.txt for license information.

package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPresentCustomFields(t *testing.T) {
	issue := &SourceIssue{
		CustomFields: []CustomField{
			{Name: "Found in version", Value: "2.3.1"},
			{Name: "Empty", Value: ""},
			{Name: "Browser", Value: "Firefox"},
		},
	}

	fields := issue.PresentCustomFields()
	require.Len(t, fields, 2)
	require.Equal(t, "Found in version", fields[0].Name)
	require.Equal(t, "Browser", fields[1].Name)
}

func TestSourceIssueFromJSON(t *testing.T) {
	payload := `{
		"id": 482,
		"subject": "Crash on save",
		"tracker": {"id": 1, "name": "Bug"},
		"assigned_to": {"id": 5, "name": "Piet Jansen"},
		"is_private": true,
		"journals": [{"id": 900, "notes": "Confirmed."}]
	}`

	issue, err := SourceIssueFromJSON(strings.NewReader(payload))
	require.NoError(t, err)
	require.Equal(t, int64(482), issue.ID)
	require.Equal(t, "Bug", issue.Tracker.Name)
	require.NotNil(t, issue.AssignedTo)
	require.True(t, issue.IsPrivate)
	require.Len(t, issue.Journals, 1)

	out, err := issue.ToJSON()
	require.NoError(t, err)
	require.Contains(t, out, `"id":482`)

	_, err = SourceIssueFromJSON(strings.NewReader("not json"))
	require.Error(t, err)
}

func TestChangeEventIsEmpty(t *testing.T) {
	require.True(t, (&ChangeEvent{}).IsEmpty())
	require.False(t, (&ChangeEvent{Notes: "x"}).IsEmpty())
	require.False(t, (&ChangeEvent{Details: []FieldChange{{Name: "status_id"}}}).IsEmpty())
}

func TestDeferredReferenceInBody(t *testing.T) {
	require.True(t, (&DeferredReference{IssueIndex: 17}).InBody())
	require.False(t, (&DeferredReference{IssueIndex: 17, CommentID: 301}).InBody())
}
