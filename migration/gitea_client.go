// Copyright (c) 2022-present Redmig Authors. All Rights Reserved.
// See License.txt for license information.

package migration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/redmig/redmig/model"
)

type addLabelsRequest struct {
	Labels []int64 `json:"labels"`
}

type IssuesService interface {
	Create(ctx context.Context, owner, repo string, req *model.CreateIssueRequest, sudo string) (*model.Issue, error)
	Edit(ctx context.Context, owner, repo string, index int64, req *model.EditIssueRequest) (*model.Issue, error)
	CreateComment(ctx context.Context, owner, repo string, index int64, req *model.CreateCommentRequest, sudo string) (*model.Comment, error)
	EditComment(ctx context.Context, owner, repo string, commentID int64, req *model.EditCommentRequest) (*model.Comment, error)
	ListIssueLabels(ctx context.Context, owner, repo string, index int64) ([]*model.Label, error)
	AddLabels(ctx context.Context, owner, repo string, index int64, labels []int64) ([]*model.Label, error)
}

type LabelsService interface {
	ListLabels(ctx context.Context, owner, repo string) ([]*model.Label, error)
}

// GiteaClient wraps the target tracker's API with narrow service interfaces
// so callers can be tested against mocks.
type GiteaClient struct {
	Issues IssuesService
	Labels LabelsService
}

// NewGiteaClient builds a client authenticating with a static access token.
// An optional base transport (caching, metrics) can be layered underneath
// the oauth2 transport.
func NewGiteaClient(baseURL, accessToken string, base http.RoundTripper) (*GiteaClient, error) {
	parsed, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "invalid gitea url")
	}

	ctx := context.Background()
	if base != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Transport: base})
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	httpClient := oauth2.NewClient(ctx, ts)

	svc := &giteaService{
		baseURL:    parsed,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(5), 10),
	}

	return &GiteaClient{
		Issues: &issuesService{svc},
		Labels: &labelsService{svc},
	}, nil
}

type giteaService struct {
	baseURL    *url.URL
	httpClient *http.Client
	limiter    *rate.Limiter
}

func (s *giteaService) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	endpoint := *s.baseURL
	endpoint.Path = strings.TrimSuffix(endpoint.Path, "/") + path
	if query != nil {
		endpoint.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "unable to marshal request body")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return errors.Wrap(err, "unable to build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &model.APIError{StatusCode: resp.StatusCode, URL: endpoint.String()}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func sudoQuery(sudo string) url.Values {
	if sudo == "" {
		return nil
	}

	return url.Values{"sudo": []string{sudo}}
}

type issuesService struct {
	*giteaService
}

func (s *issuesService) Create(ctx context.Context, owner, repo string, req *model.CreateIssueRequest, sudo string) (*model.Issue, error) {
	issue := &model.Issue{}
	path := fmt.Sprintf("/api/v1/repos/%s/%s/issues", owner, repo)
	if err := s.do(ctx, http.MethodPost, path, sudoQuery(sudo), req, issue); err != nil {
		return nil, err
	}

	return issue, nil
}

func (s *issuesService) Edit(ctx context.Context, owner, repo string, index int64, req *model.EditIssueRequest) (*model.Issue, error) {
	issue := &model.Issue{}
	path := fmt.Sprintf("/api/v1/repos/%s/%s/issues/%d", owner, repo, index)
	if err := s.do(ctx, http.MethodPatch, path, nil, req, issue); err != nil {
		return nil, err
	}

	return issue, nil
}

func (s *issuesService) CreateComment(ctx context.Context, owner, repo string, index int64, req *model.CreateCommentRequest, sudo string) (*model.Comment, error) {
	comment := &model.Comment{}
	path := fmt.Sprintf("/api/v1/repos/%s/%s/issues/%d/comments", owner, repo, index)
	if err := s.do(ctx, http.MethodPost, path, sudoQuery(sudo), req, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *issuesService) EditComment(ctx context.Context, owner, repo string, commentID int64, req *model.EditCommentRequest) (*model.Comment, error) {
	comment := &model.Comment{}
	path := fmt.Sprintf("/api/v1/repos/%s/%s/issues/comments/%d", owner, repo, commentID)
	if err := s.do(ctx, http.MethodPatch, path, nil, req, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *issuesService) ListIssueLabels(ctx context.Context, owner, repo string, index int64) ([]*model.Label, error) {
	var labels []*model.Label
	path := fmt.Sprintf("/api/v1/repos/%s/%s/issues/%d/labels", owner, repo, index)
	if err := s.do(ctx, http.MethodGet, path, nil, nil, &labels); err != nil {
		return nil, err
	}

	return labels, nil
}

func (s *issuesService) AddLabels(ctx context.Context, owner, repo string, index int64, labelIDs []int64) ([]*model.Label, error) {
	var labels []*model.Label
	path := fmt.Sprintf("/api/v1/repos/%s/%s/issues/%d/labels", owner, repo, index)
	if err := s.do(ctx, http.MethodPost, path, nil, &addLabelsRequest{Labels: labelIDs}, &labels); err != nil {
		return nil, err
	}

	return labels, nil
}

type labelsService struct {
	*giteaService
}

func (s *labelsService) ListLabels(ctx context.Context, owner, repo string) ([]*model.Label, error) {
	var labels []*model.Label
	path := fmt.Sprintf("/api/v1/repos/%s/%s/labels", owner, repo)
	if err := s.do(ctx, http.MethodGet, path, nil, nil, &labels); err != nil {
		return nil, err
	}

	return labels, nil
}
