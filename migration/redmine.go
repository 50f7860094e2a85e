// Copyright (c) 2022-present Redmig Authors. All Rights Reserved.
// See License.txt for license information.

package migration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/die-net/lrucache"
	"github.com/m4ns0ur/httpcache"
	"github.com/pkg/errors"

	"github.com/redmig/redmig/model"
)

// SourceService is the read-only contract against the source tracker.
type SourceService interface {
	ListIssues(ctx context.Context) ([]*model.SourceIssue, error)
	GetIssue(ctx context.Context, id int64) (*model.SourceIssue, error)
	FetchTables(ctx context.Context) (*model.Tables, error)
}

const (
	sourceCacheSizeBytes = 20 * 1024 * 1024
	sourceCacheTTLSecs   = 3600
)

// RedmineClient fetches issues, journals and the directory tables from a
// Redmine instance. Directory endpoints are fetched repeatedly across a run,
// so the client sits on an in-memory caching transport.
type RedmineClient struct {
	baseURL    *url.URL
	project    string
	pageSize   int
	httpClient *http.Client
}

type apiKeyTransport struct {
	base   http.RoundTripper
	apiKey string
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("X-Redmine-API-Key", t.apiKey)
	clone.Header.Set("Accept", "application/json")

	return t.base.RoundTrip(clone)
}

// NewRedmineClient builds the source client. An optional base transport
// (metrics instrumentation) is layered below the cache.
func NewRedmineClient(config *Config, base http.RoundTripper) (*RedmineClient, error) {
	parsed, err := url.Parse(strings.TrimSuffix(config.RedmineURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "invalid redmine url")
	}

	if base == nil {
		base = http.DefaultTransport
	}

	cached := httpcache.NewTransport(lrucache.New(sourceCacheSizeBytes, sourceCacheTTLSecs))
	cached.Transport = base

	pageSize := config.IssuePageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	return &RedmineClient{
		baseURL:  parsed,
		project:  config.RedmineProject,
		pageSize: pageSize,
		httpClient: &http.Client{
			Transport: &apiKeyTransport{base: cached, apiKey: config.RedmineAPIToken},
		},
	}, nil
}

func (c *RedmineClient) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := *c.baseURL
	endpoint.Path = strings.TrimSuffix(endpoint.Path, "/") + path
	if query != nil {
		endpoint.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return errors.Wrap(err, "unable to build request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &model.APIError{StatusCode: resp.StatusCode, URL: endpoint.String()}
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "unable to decode response")
	}

	// The caching transport only stores a response once its body has been
	// read to EOF, so drain whatever the decoder left behind.
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

// ListIssues pages through every issue of the configured project regardless
// of status. The returned snapshots do not include journals; those are a
// per-issue fetch.
func (c *RedmineClient) ListIssues(ctx context.Context) ([]*model.SourceIssue, error) {
	var issues []*model.SourceIssue
	offset := 0

	for {
		var page struct {
			Issues     []*model.SourceIssue `json:"issues"`
			TotalCount int                  `json:"total_count"`
		}

		query := url.Values{
			"status_id": []string{"*"},
			"limit":     []string{fmt.Sprintf("%d", c.pageSize)},
			"offset":    []string{fmt.Sprintf("%d", offset)},
		}
		if err := c.get(ctx, fmt.Sprintf("/projects/%s/issues.json", c.project), query, &page); err != nil {
			return nil, errors.Wrap(err, "unable to list issues")
		}

		issues = append(issues, page.Issues...)
		offset += len(page.Issues)
		if offset >= page.TotalCount || len(page.Issues) == 0 {
			break
		}
	}

	return issues, nil
}

// GetIssue fetches one issue with its full journal history.
func (c *RedmineClient) GetIssue(ctx context.Context, id int64) (*model.SourceIssue, error) {
	var wrapper struct {
		Issue *model.SourceIssue `json:"issue"`
	}

	query := url.Values{"include": []string{"journals"}}
	if err := c.get(ctx, fmt.Sprintf("/issues/%d.json", id), query, &wrapper); err != nil {
		return nil, errors.Wrapf(err, "unable to fetch issue %d", id)
	}

	return wrapper.Issue, nil
}

// FetchTables loads the four directory tables journal rendering depends on.
func (c *RedmineClient) FetchTables(ctx context.Context) (*model.Tables, error) {
	tables := model.NewTables()

	var statuses struct {
		IssueStatuses []model.Ref `json:"issue_statuses"`
	}
	if err := c.get(ctx, "/issue_statuses.json", nil, &statuses); err != nil {
		return nil, errors.Wrap(err, "unable to fetch issue statuses")
	}
	for _, status := range statuses.IssueStatuses {
		tables.Statuses[status.ID] = status.Name
	}

	var trackers struct {
		Trackers []model.Ref `json:"trackers"`
	}
	if err := c.get(ctx, "/trackers.json", nil, &trackers); err != nil {
		return nil, errors.Wrap(err, "unable to fetch trackers")
	}
	for _, tracker := range trackers.Trackers {
		tables.Trackers[tracker.ID] = tracker.Name
	}

	var projects struct {
		Projects []model.Ref `json:"projects"`
	}
	if err := c.get(ctx, "/projects.json", url.Values{"limit": []string{"100"}}, &projects); err != nil {
		return nil, errors.Wrap(err, "unable to fetch projects")
	}
	for _, project := range projects.Projects {
		tables.Projects[project.ID] = project.Name
	}

	var users struct {
		Users []struct {
			ID        int64  `json:"id"`
			Firstname string `json:"firstname"`
			Lastname  string `json:"lastname"`
		} `json:"users"`
	}
	if err := c.get(ctx, "/users.json", url.Values{"limit": []string{"100"}}, &users); err != nil {
		return nil, errors.Wrap(err, "unable to fetch users")
	}
	for _, user := range users.Users {
		tables.Users[user.ID] = strings.TrimSpace(user.Firstname + " " + user.Lastname)
	}

	return tables, nil
}
