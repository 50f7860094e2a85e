// Copyright (c) 2022-present Redmig Authors. All Rights Reserved.
// See License.txt for license information.

package model

import (
	"encoding/json"
	"io"
	"time"
)

// Ref is a numeric identifier with its display name, as the source system
// embeds it in issue payloads (status, tracker, project, users).
type Ref struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CustomField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SourceIssue is a read-only snapshot of one issue as fetched from the
// source tracker. It is never mutated after the fetch.
type SourceIssue struct {
	ID           int64         `json:"id"`
	Project      Ref           `json:"project"`
	Tracker      Ref           `json:"tracker"`
	Status       Ref           `json:"status"`
	Priority     Ref           `json:"priority"`
	Author       Ref           `json:"author"`
	AssignedTo   *Ref          `json:"assigned_to,omitempty"`
	Category     *Ref          `json:"category,omitempty"`
	Subject      string        `json:"subject"`
	Description  string        `json:"description"`
	DoneRatio    int           `json:"done_ratio"`
	IsPrivate    bool          `json:"is_private"`
	CreatedOn    time.Time     `json:"created_on"`
	CustomFields []CustomField `json:"custom_fields"`
	Journals     []ChangeEvent `json:"journals"`
}

// PresentCustomFields returns the custom fields that carry a value.
// Empty values are noise in the source exports and are excluded everywhere.
func (i *SourceIssue) PresentCustomFields() []CustomField {
	fields := make([]CustomField, 0, len(i.CustomFields))
	for _, cf := range i.CustomFields {
		if cf.Value != "" {
			fields = append(fields, cf)
		}
	}

	return fields
}

func (i *SourceIssue) ToJSON() (string, error) {
	b, err := json.Marshal(i)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

func SourceIssueFromJSON(data io.Reader) (*SourceIssue, error) {
	var issue SourceIssue
	err := json.NewDecoder(data).Decode(&issue)
	if err != nil {
		return nil, err
	}

	return &issue, nil
}
