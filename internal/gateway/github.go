// Package gateway provides a gateway to the GitHub REST API,
// reducing its responses to the records the browser renders.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"emperror.dev/errors"
	"github.com/google/go-github/v62/github"
	"github.com/sirupsen/logrus"

	"github.com/naka-gawa/repo-browser/internal/domain"
)

// ErrUpstreamStatus marks an answer from the GitHub API outside the 2xx range.
const ErrUpstreamStatus = errors.Sentinel("unexpected GitHub API status")

const userAgent = "repo-browser"

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	FetchRepositories(ctx context.Context, user string) ([]domain.Repository, error)
	FetchCommits(ctx context.Context, user, repo string) ([]domain.Commit, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
// Each call issues exactly one request; results are never paginated or cached.
type GitHubGateway struct {
	restClient *github.Client
	logger     *logrus.Logger
}

// NewGitHubGateway creates a gateway talking to the REST API rooted at apiURL.
// A nil httpClient falls back to http.DefaultClient.
func NewGitHubGateway(apiURL string, httpClient *http.Client, logger *logrus.Logger) (*GitHubGateway, error) {
	if !strings.HasSuffix(apiURL, "/") {
		apiURL += "/"
	}
	baseURL, err := url.Parse(apiURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse GitHub API URL %q", apiURL)
	}

	restClient := github.NewClient(httpClient)
	restClient.BaseURL = baseURL
	restClient.UserAgent = userAgent

	return &GitHubGateway{
		restClient: restClient,
		logger:     logger,
	}, nil
}

// FetchRepositories lists the public repositories of user (GET users/{user}/repos).
func (g *GitHubGateway) FetchRepositories(ctx context.Context, user string) ([]domain.Repository, error) {
	g.logger.WithField("user", user).Debug("Fetching repositories...")
	var repos []*github.Repository
	if err := g.get(ctx, fmt.Sprintf("users/%s/repos", url.PathEscape(user)), &repos); err != nil {
		return nil, errors.WithMessagef(err, "failed to list repositories for user %s", user)
	}

	result := make([]domain.Repository, 0, len(repos))
	for i, repo := range repos {
		if repo.GetName() == "" {
			return nil, errors.Errorf("failed to list repositories for user %s: item %d has no name", user, i)
		}
		result = append(result, domain.Repository{Name: repo.GetName()})
	}
	g.logger.WithField("user", user).Debugf("Decoded %d repositories.", len(result))
	return result, nil
}

// FetchCommits lists the commits of user/repo (GET repos/{user}/{repo}/commits).
func (g *GitHubGateway) FetchCommits(ctx context.Context, user, repo string) ([]domain.Commit, error) {
	fields := logrus.Fields{"user": user, "repo": repo}
	g.logger.WithFields(fields).Debug("Fetching commits...")
	var commits []*github.RepositoryCommit
	path := fmt.Sprintf("repos/%s/%s/commits", url.PathEscape(user), url.PathEscape(repo))
	if err := g.get(ctx, path, &commits); err != nil {
		return nil, errors.WithMessagef(err, "failed to list commits for %s/%s", user, repo)
	}

	result := make([]domain.Commit, 0, len(commits))
	for i, c := range commits {
		if c == nil {
			return nil, errors.Errorf("failed to list commits for %s/%s: item %d is null", user, repo, i)
		}
		// Author is null for commits not linked to a GitHub account.
		result = append(result, domain.Commit{
			AuthorLogin: c.GetAuthor().GetLogin(),
			Message:     c.GetCommit().GetMessage(),
		})
	}
	g.logger.WithFields(fields).Debugf("Decoded %d commits.", len(result))
	return result, nil
}

// get issues exactly one GET for path and strictly decodes the body, which
// must be a single JSON array, into v.
func (g *GitHubGateway) get(ctx context.Context, path string, v interface{}) error {
	req, err := g.restClient.NewRequest(http.MethodGet, path, nil)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}

	// Never let the client hold back a request after an exhausted rate limit.
	ctx = context.WithValue(ctx, github.BypassRateLimitCheck, true)

	var body bytes.Buffer
	resp, err := g.restClient.Do(ctx, req, &body)
	if err != nil {
		return upstreamError(resp, err)
	}
	return decodeArray(body.Bytes(), v)
}

// decodeArray rejects empty input, trailing data and a top-level null, all of
// which a streaming decoder would accept.
func decodeArray(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrap(err, "failed to decode response body")
	}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return errors.New("failed to decode response body: expected an array, got null")
	}
	return nil
}

// upstreamError tags err with ErrUpstreamStatus when GitHub answered outside 2xx.
// Transport and decoding failures are returned unchanged.
func upstreamError(resp *github.Response, err error) error {
	if resp == nil || resp.Response == nil {
		return err
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return err
	}
	return errors.Wrapf(ErrUpstreamStatus, "%s: %v", resp.Status, err)
}
