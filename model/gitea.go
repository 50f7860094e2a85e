// Copyright (c) 2022-present Redmig Authors. All Rights Reserved.
// See License.txt for license information.

package model

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Wire types for the target tracker's REST API. Only the fields the
// migration touches are modeled.

type Label struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Issue struct {
	ID     int64    `json:"id"`
	Number int64    `json:"number"`
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	State  string   `json:"state"`
	Labels []*Label `json:"labels"`
}

type Comment struct {
	ID   int64  `json:"id"`
	Body string `json:"body"`
}

type CreateIssueRequest struct {
	Title    string  `json:"title"`
	Body     string  `json:"body"`
	Closed   bool    `json:"closed"`
	Assignee string  `json:"assignee,omitempty"`
	Labels   []int64 `json:"labels,omitempty"`
}

type EditIssueRequest struct {
	Body *string `json:"body,omitempty"`
}

type CreateCommentRequest struct {
	Body string `json:"body"`
}

type EditCommentRequest struct {
	Body string `json:"body"`
}

// APIError is a non-2xx response from the target system.
type APIError struct {
	StatusCode int
	Message    string `json:"message"`
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %d %s", e.URL, e.StatusCode, e.Message)
}

// IsUnprocessable reports whether err is the target system rejecting the
// request payload, which is how an unknown assignee surfaces on creation.
func IsUnprocessable(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnprocessableEntity
}
