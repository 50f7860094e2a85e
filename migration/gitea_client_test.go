// Copyright (c) 2022-present Redmig Authors. All Rights Reserved.
// See License.txt for license information.

package migration

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/require"

	"github.com/redmig/redmig/model"
)

func testGiteaClient(t *testing.T) (*GiteaClient, *httpmock.MockTransport) {
	t.Helper()

	transport := httpmock.NewMockTransport()
	client, err := NewGiteaClient("https://gitea.example.com", "target-token", transport)
	require.NoError(t, err)

	return client, transport
}

func TestGiteaCreateIssue(t *testing.T) {
	client, transport := testGiteaClient(t)

	transport.RegisterResponder(http.MethodPost, "https://gitea.example.com/api/v1/repos/acme/acme-app/issues",
		func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "Bearer target-token", req.Header.Get("Authorization"))
			require.Equal(t, "jdvries", req.URL.Query().Get("sudo"))

			var body model.CreateIssueRequest
			require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			require.Equal(t, "Crash on save", body.Title)
			require.True(t, body.Closed)
			require.Equal(t, []int64{3}, body.Labels)

			return httpmock.NewJsonResponse(http.StatusCreated, &model.Issue{ID: 1001, Number: 17, Title: body.Title})
		})

	issue, err := client.Issues.Create(context.Background(), "acme", "acme-app", &model.CreateIssueRequest{
		Title:  "Crash on save",
		Closed: true,
		Labels: []int64{3},
	}, "jdvries")
	require.NoError(t, err)
	require.Equal(t, int64(17), issue.Number)
}

func TestGiteaCreateIssueWithoutSudo(t *testing.T) {
	client, transport := testGiteaClient(t)

	transport.RegisterResponder(http.MethodPost, "https://gitea.example.com/api/v1/repos/acme/acme-app/issues",
		func(req *http.Request) (*http.Response, error) {
			require.False(t, req.URL.Query().Has("sudo"))
			return httpmock.NewJsonResponse(http.StatusCreated, &model.Issue{Number: 18})
		})

	issue, err := client.Issues.Create(context.Background(), "acme", "acme-app", &model.CreateIssueRequest{Title: "No author mapping"}, "")
	require.NoError(t, err)
	require.Equal(t, int64(18), issue.Number)
}

func TestGiteaEditComment(t *testing.T) {
	client, transport := testGiteaClient(t)

	transport.RegisterResponder(http.MethodPatch, "https://gitea.example.com/api/v1/repos/acme/acme-app/issues/comments/301",
		func(req *http.Request) (*http.Response, error) {
			var body model.EditCommentRequest
			require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			require.Equal(t, "see #17 (originally #482)", body.Body)

			return httpmock.NewJsonResponse(http.StatusOK, &model.Comment{ID: 301, Body: body.Body})
		})

	comment, err := client.Issues.EditComment(context.Background(), "acme", "acme-app", 301,
		&model.EditCommentRequest{Body: "see #17 (originally #482)"})
	require.NoError(t, err)
	require.Equal(t, int64(301), comment.ID)
}

func TestGiteaListLabels(t *testing.T) {
	client, transport := testGiteaClient(t)

	transport.RegisterResponder(http.MethodGet, "https://gitea.example.com/api/v1/repos/acme/acme-app/labels",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, []*model.Label{
			{ID: 3, Name: "bug"},
			{ID: 9, Name: "wontfix"},
		}))

	labels, err := client.Labels.ListLabels(context.Background(), "acme", "acme-app")
	require.NoError(t, err)
	require.Len(t, labels, 2)
	require.Equal(t, "bug", labels[0].Name)
}

func TestGiteaAPIError(t *testing.T) {
	client, transport := testGiteaClient(t)

	transport.RegisterResponder(http.MethodPost, "https://gitea.example.com/api/v1/repos/acme/acme-app/issues",
		httpmock.NewJsonResponderOrPanic(http.StatusUnprocessableEntity, map[string]string{
			"message": "user does not exist [name: ghost]",
		}))

	_, err := client.Issues.Create(context.Background(), "acme", "acme-app",
		&model.CreateIssueRequest{Title: "x", Assignee: "ghost"}, "")
	require.Error(t, err)
	require.True(t, model.IsUnprocessable(err))

	var apiErr *model.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	require.Contains(t, apiErr.Message, "ghost")
}
