// Copyright (c) 2022-present Redmig Authors. All Rights Reserved.
// See License.txt for license information.

package migration

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/redmig/redmig/model"
)

func testTables() *model.Tables {
	return &model.Tables{
		Statuses: map[int64]string{1: "New", 2: "In Progress", 3: "Resolved", 6: "Rejected"},
		Trackers: map[int64]string{1: "Bug", 2: "Feature"},
		Projects: map[int64]string{11: "Acme App", 12: "Acme Site"},
		Users:    map[int64]string{5: "Piet Jansen", 7: "Jan de Vries"},
	}
}

func testRenderer(t *testing.T) *JournalRenderer {
	t.Helper()

	config := testConfig()
	renderer, err := NewJournalRenderer(config, NewTranslator(config), testTables())
	require.NoError(t, err)

	return renderer
}

func testEvent(details ...model.FieldChange) *model.ChangeEvent {
	return &model.ChangeEvent{
		ID:        100,
		User:      model.Ref{ID: 7, Name: "Jan de Vries"},
		CreatedOn: time.Date(2014, 3, 2, 15, 4, 0, 0, time.UTC),
		Details:   details,
	}
}

func TestRenderFieldChanges(t *testing.T) {
	renderer := testRenderer(t)

	t.Run("status codes resolve through the table", func(t *testing.T) {
		body, err := renderer.Render(testEvent(model.FieldChange{Property: "attr", Name: "status_id", OldValue: "1", NewValue: "3"}))
		require.NoError(t, err)
		require.Contains(t, body, "*Status changed from New to Resolved*")
	})

	t.Run("unknown status code fails the render", func(t *testing.T) {
		_, err := renderer.Render(testEvent(model.FieldChange{Property: "attr", Name: "status_id", OldValue: "1", NewValue: "99"}))
		require.Error(t, err)
		require.Contains(t, err.Error(), "no status with code 99")
	})

	t.Run("done ratio values get a percent suffix", func(t *testing.T) {
		body, err := renderer.Render(testEvent(model.FieldChange{Property: "attr", Name: "done_ratio", OldValue: "20", NewValue: "50"}))
		require.NoError(t, err)
		require.Contains(t, body, "20%")
		require.Contains(t, body, "50%")
		require.Contains(t, body, "*% Done changed from 20% to 50%*")
	})

	t.Run("relation values read as cross references", func(t *testing.T) {
		body, err := renderer.Render(testEvent(model.FieldChange{Property: "relation", Name: "relates", OldValue: "", NewValue: "449"}))
		require.NoError(t, err)
		require.Contains(t, body, "*Related to changed from None to #449*")
	})

	t.Run("empty old value reads as None", func(t *testing.T) {
		body, err := renderer.Render(testEvent(model.FieldChange{Property: "attr", Name: "assigned_to_id", OldValue: "", NewValue: "5"}))
		require.NoError(t, err)
		require.Contains(t, body, "*Assignee changed from None to Piet Jansen*")
	})

	t.Run("unknown historic assignee keeps the raw code", func(t *testing.T) {
		body, err := renderer.Render(testEvent(model.FieldChange{Property: "attr", Name: "assigned_to_id", OldValue: "42", NewValue: "5"}))
		require.NoError(t, err)
		require.Contains(t, body, "*Assignee changed from 42 to Piet Jansen*")
	})

	t.Run("long text renders block quoted", func(t *testing.T) {
		body, err := renderer.Render(testEvent(model.FieldChange{
			Property: "attr",
			Name:     "subject",
			OldValue: "Old subject",
			NewValue: "New subject\nsecond line",
		}))
		require.NoError(t, err)
		require.Contains(t, body, "**Subject** changed from\n\n> Old subject\n\nto\n\n> New subject\n> second line")
	})

	t.Run("custom fields and unrecognized attrs fall through", func(t *testing.T) {
		body, err := renderer.Render(testEvent(
			model.FieldChange{Property: "cf", Name: "4", OldValue: "a", NewValue: "b"},
			model.FieldChange{Property: "attr", Name: "start_date", OldValue: "2014-01-01", NewValue: "2014-02-01"},
		))
		require.NoError(t, err)
		require.Contains(t, body, "*Custom field 4 changed from a to b*")
		require.Contains(t, body, "*Start date changed from 2014-01-01 to 2014-02-01*")
	})
}

func TestRenderComposition(t *testing.T) {
	renderer := testRenderer(t)

	t.Run("note and changes are separated by a rule", func(t *testing.T) {
		event := testEvent(model.FieldChange{Property: "attr", Name: "status_id", OldValue: "1", NewValue: "2"})
		event.Notes = "Looking into it.\r\nWill report back."

		body, err := renderer.Render(event)
		require.NoError(t, err)
		require.Contains(t, body, "Looking into it.\nWill report back.")
		require.Contains(t, body, "\n\n---\n\n")
		idx := strings.Index(body, "---")
		require.Greater(t, idx, strings.Index(body, "Looking into it."))
		require.Less(t, idx, strings.Index(body, "*Status changed"))
	})

	t.Run("note without changes has no rule", func(t *testing.T) {
		event := testEvent()
		event.Notes = "Just a comment."

		body, err := renderer.Render(event)
		require.NoError(t, err)
		require.NotContains(t, body, "---")
	})

	t.Run("empty event still renders the timestamp line", func(t *testing.T) {
		body, err := renderer.Render(testEvent())
		require.NoError(t, err)
		require.Equal(t, "*Originally posted on Mar 2, 2014 15:04 UTC*", body)
	})

	t.Run("timestamp renders in the configured zone", func(t *testing.T) {
		body, err := renderer.Render(testEvent())
		require.NoError(t, err)
		require.Contains(t, body, "*Originally posted on Mar 2, 2014 15:04 UTC*")
	})

	t.Run("fallback author gets an attribution line", func(t *testing.T) {
		event := testEvent()
		event.Notes = "Legacy note."
		event.User = model.Ref{ID: 99, Name: "Gone Person"}

		body, err := renderer.Render(event)
		require.NoError(t, err)
		require.True(t, strings.HasSuffix(body, "*Originally authored by Gone Person*"))
	})

	t.Run("mapped author has no attribution line", func(t *testing.T) {
		event := testEvent()
		event.Notes = "Regular note."

		body, err := renderer.Render(event)
		require.NoError(t, err)
		require.NotContains(t, body, "Originally authored")
	})

	t.Run("rendering is deterministic", func(t *testing.T) {
		event := testEvent(
			model.FieldChange{Property: "attr", Name: "status_id", OldValue: "1", NewValue: "3"},
			model.FieldChange{Property: "attr", Name: "done_ratio", OldValue: "20", NewValue: "50"},
		)
		event.Notes = "Same input, same output."

		first, err := renderer.Render(event)
		require.NoError(t, err)
		second, err := renderer.Render(event)
		require.NoError(t, err)
		require.Equal(t, first, second)
	})
}
