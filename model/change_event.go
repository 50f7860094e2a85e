// Copyright (c) 2022-present Redmig Authors. All Rights Reserved.
// See License.txt for license information.

package model

import "time"

// FieldChange is a single field-level diff inside a journal entry.
// Property tells which namespace Name belongs to: "attr" for regular issue
// attributes, "cf" for custom fields, "relation" for issue relations.
type FieldChange struct {
	Property string `json:"property"`
	Name     string `json:"name"`
	OldValue string `json:"old_value"`
	NewValue string `json:"new_value"`
}

// ChangeEvent is one journal entry of a source issue: zero or more field
// changes plus an optional free-text note, with the acting user and time.
type ChangeEvent struct {
	ID        int64         `json:"id"`
	User      Ref           `json:"user"`
	Notes     string        `json:"notes"`
	CreatedOn time.Time     `json:"created_on"`
	Details   []FieldChange `json:"details"`
}

// IsEmpty reports whether the event carries neither a note nor field changes.
// Such events still render as a bare timestamp line, they are evidence of
// activity on the source issue.
func (e *ChangeEvent) IsEmpty() bool {
	return e.Notes == "" && len(e.Details) == 0
}
